package sim

import (
	"github.com/san-kum/visualearn/internal/canvas"
	"github.com/san-kum/visualearn/internal/params"
)

type lineState struct {
	T, X float64
}

func (s lineState) Fields() []Field {
	return []Field{{Name: "t", Value: s.T}, {Name: "x", Value: s.X, Unit: "px"}}
}

// lineModel moves a point at constant speed and restarts after limit seconds.
type lineModel struct{}

func (lineModel) Name() string { return "line" }

func (lineModel) Params() []params.Spec {
	return []params.Spec{
		{Name: "speed", Min: 0, Max: 10, Step: 1, Default: 2},
		{Name: "limit", Min: 1, Max: 100, Step: 1, Default: 100},
	}
}

func (lineModel) Evaluate(t float64, p params.Values) lineState {
	return lineState{T: t, X: p.Get("speed") * t}
}

func (lineModel) Step(params.Values) float64 { return 0.5 }

func (lineModel) Wrap(t float64, p params.Values) (float64, bool) {
	if t >= p.Get("limit") {
		return 0, true
	}
	return t, false
}

var drawLine = RenderFunc[lineState](func(s canvas.Surface, st lineState, _ params.Values) {
	s.Circle(st.X, 10, 3, canvas.Style{Fill: canvas.RGB(0, 0, 0)})
})

type countingRecorder struct {
	rendered, skipped, wraps int
	events                   []string
}

func (c *countingRecorder) FrameRendered(string)          { c.rendered++ }
func (c *countingRecorder) FrameSkipped(string)           { c.skipped++ }
func (c *countingRecorder) ClockWrapped(string)           { c.wraps++ }
func (c *countingRecorder) Transition(_ string, e string) { c.events = append(c.events, e) }
