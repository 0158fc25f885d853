package audio

import "github.com/san-kum/visualearn/internal/sim"

// Tuner accepts a new output frequency.
type Tuner interface {
	SetFrequency(hz float64)
}

// Pitch maps a perceived frequency onto an audible one, keeping the ratio
// to the source frequency.
func Pitch(perceived, source, base float64) float64 {
	if source <= 0 {
		return base
	}
	return base * perceived / source
}

// Sonifier retunes a Tuner from the perceived and source frequencies of
// each Doppler frame.
type Sonifier struct {
	Tuner Tuner
	Base  float64
}

func NewSonifier(t Tuner) *Sonifier {
	return &Sonifier{Tuner: t, Base: BaseFrequency}
}

func (s *Sonifier) OnFrame(_ float64, obs sim.Observation) {
	perceived, ok := sim.Lookup(obs, "perceived")
	if !ok {
		return
	}
	source, ok := sim.Lookup(obs, "frequency")
	if !ok {
		return
	}
	s.Tuner.SetFrequency(Pitch(perceived, source, s.Base))
}
