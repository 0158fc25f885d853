package physics

import (
	"math"

	"github.com/san-kum/visualearn/internal/params"
	"github.com/san-kum/visualearn/internal/sim"
)

const (
	dopplerFronts    = 15
	dopplerMaxRadius = 300.0
	dopplerFrontGap  = 10.0
)

// Wavefront is one expanding ring around the source.
type Wavefront struct {
	Radius float64
	Alpha  float64
}

// DopplerState places the source, the observer and the visible wavefronts.
type DopplerState struct {
	T          float64
	SourceX    float64
	ObserverX  float64
	CenterY    float64
	Frequency  float64
	Perceived  float64
	Direction  float64
	Approach   bool
	Wavefronts []Wavefront
}

// Pitch describes how the perceived frequency compares to the source.
func (s DopplerState) Pitch() string {
	switch {
	case s.Perceived > s.Frequency:
		return "Higher pitch"
	case s.Perceived < s.Frequency:
		return "Lower pitch"
	default:
		return "No change"
	}
}

func (s DopplerState) Fields() []sim.Field {
	return []sim.Field{
		{Name: "source_x", Value: s.SourceX, Unit: "px"},
		{Name: "observer_x", Value: s.ObserverX, Unit: "px"},
		{Name: "frequency", Value: s.Frequency, Unit: "Hz"},
		{Name: "perceived", Value: s.Perceived, Unit: "Hz"},
		{Name: "shift", Value: s.Perceived - s.Frequency, Unit: "Hz"},
		{Name: "fronts", Value: float64(len(s.Wavefronts))},
	}
}

// Doppler moves a sound source along the centre line past a fixed observer.
type Doppler struct{}

func (Doppler) Name() string { return "doppler" }

func (Doppler) Params() []params.Spec {
	return []params.Spec{
		{Name: "sourceSpeed", Label: "Source Speed", Min: 0, Max: 1, Step: 0.05, Default: 0.3},
		{Name: "frequency", Label: "Frequency", Unit: "Hz", Min: 0.1, Max: 1, Step: 0.05, Default: 0.3},
		{Name: "direction", Label: "Direction", Min: -1, Max: 1, Step: 2, Default: 1},
	}
}

func (Doppler) Step(params.Values) float64 { return 1 }

func (Doppler) Evaluate(t float64, p params.Values) DopplerState {
	speed := p.Get("sourceSpeed")
	f := p.Get("frequency")
	dir := 1.0
	if p.Get("direction") < 0 {
		dir = -1
	}

	s := DopplerState{
		T:         t,
		ObserverX: 0.8 * Width,
		CenterY:   Height / 2,
		Frequency: f,
		Direction: dir,
	}
	s.SourceX = Width/2 + math.Mod(dir*t*speed*2, 1.5*Width) - 0.75*Width

	side := 1.0
	if s.ObserverX-s.SourceX < 0 {
		side = -1
	}
	s.Perceived = f * (1 + dir*speed*side*0.5)
	s.Approach = dir*side > 0 && speed > 0

	base := 0.5 * t
	for i := 0; i < dopplerFronts; i++ {
		r := math.Mod(base-dopplerFrontGap*float64(i), dopplerMaxRadius)
		if r > 0 {
			s.Wavefronts = append(s.Wavefronts, Wavefront{Radius: r, Alpha: 1 - r/dopplerMaxRadius})
		}
	}
	return s
}
