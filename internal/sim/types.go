package sim

import (
	"github.com/san-kum/visualearn/internal/canvas"
	"github.com/san-kum/visualearn/internal/params"
)

// Field is one named numeric readout of a physical state.
type Field struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Observation is any physical state that can report readouts.
type Observation interface {
	Fields() []Field
}

// Model is a closed-form simulation: state at time t is a pure function of
// t and the parameter snapshot.
type Model[S Observation] interface {
	Name() string
	Params() []params.Spec
	Evaluate(t float64, p params.Values) S
	// Step is the fixed clock increment applied after every rendered frame.
	Step(p params.Values) float64
}

// Looper is implemented by models whose clock restarts, e.g. a projectile
// replaying its flight after landing.
type Looper interface {
	Wrap(t float64, p params.Values) (float64, bool)
}

// Renderer draws a state onto a cleared surface.
type Renderer[S Observation] interface {
	Render(s canvas.Surface, state S, p params.Values)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc[S Observation] func(s canvas.Surface, state S, p params.Values)

func (f RenderFunc[S]) Render(s canvas.Surface, state S, p params.Values) {
	f(s, state, p)
}

// Observer is notified after every rendered frame with the state that was drawn.
type Observer interface {
	OnFrame(t float64, obs Observation)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(t float64, obs Observation)

func (f ObserverFunc) OnFrame(t float64, obs Observation) { f(t, obs) }

// Clock is the playback state owned by one simulation instance.
type Clock struct {
	Time    float64
	Playing bool
}

// Simulation is the type-erased playback surface every runner exposes.
type Simulation interface {
	Name() string
	Params() *params.Set
	Play()
	Pause()
	Toggle()
	Reset()
	Seek(t float64)
	Playing() bool
	Time() float64
	// Step is the clock advance of the next frame under the current parameters.
	Step() float64
	Frames() int
	State() Observation
	StateAt(t float64) Observation
	Attach(s canvas.Surface)
	Detach()
	Redraw() bool
	AddObserver(o Observer)
	Close()
}

// Lookup returns the value of the named field.
func Lookup(obs Observation, name string) (float64, bool) {
	for _, f := range obs.Fields() {
		if f.Name == name {
			return f.Value, true
		}
	}
	return 0, false
}
