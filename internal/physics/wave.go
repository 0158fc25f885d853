package physics

import (
	"math"

	"github.com/san-kum/visualearn/internal/params"
	"github.com/san-kum/visualearn/internal/sim"
)

// WaveState holds the wave height for every pixel column.
type WaveState struct {
	T          float64
	CenterY    float64
	Amplitude  float64
	Phase      float64
	Wavelength float64 // px
	Ys         []float64
}

// Displacement returns the upward offset from the centre line at column x.
func (s WaveState) Displacement(x int) float64 {
	if x < 0 || x >= len(s.Ys) {
		return 0
	}
	return s.CenterY - s.Ys[x]
}

func (s WaveState) Fields() []sim.Field {
	peak := 0.0
	for i := range s.Ys {
		peak = math.Max(peak, math.Abs(s.Displacement(i)))
	}
	return []sim.Field{
		{Name: "phase", Value: s.Phase, Unit: "rad"},
		{Name: "wavelength", Value: s.Wavelength, Unit: "px"},
		{Name: "y0", Value: s.Displacement(0), Unit: "px"},
		{Name: "y_mid", Value: s.Displacement(len(s.Ys) / 2), Unit: "px"},
		{Name: "peak", Value: peak, Unit: "px"},
	}
}

// Wave is y(x,t) = centerY − A·e^(−k·x/100)·sin(f·x·0.01 + v·t·0.02).
type Wave struct{}

func (Wave) Name() string { return "wave" }

func (Wave) Params() []params.Spec {
	return []params.Spec{
		{Name: "amplitude", Label: "Amplitude", Unit: "px", Min: 10, Max: 100, Step: 1, Default: 50},
		{Name: "frequency", Label: "Frequency", Unit: "Hz", Min: 0.5, Max: 5, Step: 0.1, Default: 1},
		{Name: "speed", Label: "Wave Speed", Min: 1, Max: 10, Step: 0.5, Default: 5},
		{Name: "damping", Label: "Damping", Min: 0, Max: 0.5, Step: 0.01, Default: 0},
	}
}

func (Wave) Step(params.Values) float64 { return 1 }

func (Wave) Evaluate(t float64, p params.Values) WaveState {
	amp := p.Get("amplitude")
	f := p.Get("frequency")
	k := p.Get("damping")

	s := WaveState{
		T:         t,
		CenterY:   Height / 2,
		Amplitude: amp,
		Phase:     t * p.Get("speed") * 0.02,
		Ys:        make([]float64, Width),
	}
	if f > 0 {
		s.Wavelength = 2 * math.Pi / (f * 0.01)
	}
	for x := range s.Ys {
		fx := float64(x)
		s.Ys[x] = s.CenterY - amp*math.Exp(-k*fx/100)*math.Sin(fx*f*0.01+s.Phase)
	}
	return s
}
