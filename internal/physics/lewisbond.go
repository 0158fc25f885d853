package physics

import (
	"math"

	"github.com/san-kum/visualearn/internal/params"
	"github.com/san-kum/visualearn/internal/sim"
)

const atomSpacing = 150.0

type LewisBondState struct {
	T              float64
	LeftX, RightX  float64
	CenterY        float64
	PairX          float64
	PairVisibility float64 // 0..1
}

func (s LewisBondState) Fields() []sim.Field {
	return []sim.Field{
		{Name: "pair_x", Value: s.PairX, Unit: "px"},
		{Name: "visibility", Value: s.PairVisibility},
	}
}

// LewisBond pulses the shared electron pair between two nitrogen atoms.
type LewisBond struct{}

func (LewisBond) Name() string { return "lewisbond" }

func (LewisBond) Params() []params.Spec {
	return []params.Spec{
		{Name: "pulseSpeed", Label: "Pulse Speed", Min: 0.5, Max: 5, Step: 0.1, Default: 1},
	}
}

func (LewisBond) Step(params.Values) float64 { return 0.016 }

func (LewisBond) Evaluate(t float64, p params.Values) LewisBondState {
	s := LewisBondState{
		T:       t,
		LeftX:   Width/2 - atomSpacing,
		RightX:  Width/2 + atomSpacing,
		CenterY: Height / 2,
	}
	s.PairX = (s.LeftX + s.RightX) / 2
	s.PairVisibility = 0.5 + 0.5*math.Sin(t*p.Get("pulseSpeed")*2)
	return s
}
