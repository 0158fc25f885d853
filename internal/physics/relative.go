package physics

import (
	"github.com/san-kum/visualearn/internal/params"
	"github.com/san-kum/visualearn/internal/sim"
)

const (
	relativeStartX = 100.0
	relativeScale  = 20.0
	RelativeGround = 300.0
)

type RelativeState struct {
	T         float64
	ObjectX   float64
	ObserverX float64
	Relative  float64 // m/s, object speed seen by the observer
}

func (s RelativeState) Fields() []sim.Field {
	return []sim.Field{
		{Name: "object_x", Value: s.ObjectX, Unit: "px"},
		{Name: "observer_x", Value: s.ObserverX, Unit: "px"},
		{Name: "separation", Value: s.ObjectX - s.ObserverX, Unit: "px"},
		{Name: "relative_speed", Value: s.Relative, Unit: "m/s"},
	}
}

// Relative moves an object and an observer to the right from the same start.
type Relative struct{}

func (Relative) Name() string { return "relative" }

func (Relative) Params() []params.Spec {
	return []params.Spec{
		{Name: "objectSpeed", Label: "Object Speed", Unit: "m/s", Min: 0, Max: 10, Step: 0.1, Default: 5},
		{Name: "observerSpeed", Label: "Observer Speed", Unit: "m/s", Min: 0, Max: 10, Step: 0.1, Default: 2},
	}
}

func (Relative) Step(params.Values) float64 { return 0.016 }

func (Relative) Evaluate(t float64, p params.Values) RelativeState {
	obj := p.Get("objectSpeed")
	obs := p.Get("observerSpeed")
	return RelativeState{
		T:         t,
		ObjectX:   relativeStartX + obj*t*relativeScale,
		ObserverX: relativeStartX + obs*t*relativeScale,
		Relative:  obj - obs,
	}
}
