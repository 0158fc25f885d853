package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"
)

// Tone is an endless sine streamer whose frequency may change while playing.
// The phase is carried across changes so retuning does not click.
type Tone struct {
	sr     beep.SampleRate
	freq   atomic.Uint64
	volume float64
	phase  float64
}

func NewTone(sr beep.SampleRate, freq, volume float64) *Tone {
	t := &Tone{sr: sr, volume: volume}
	t.SetFrequency(freq)
	return t
}

// SetFrequency retunes the tone; negative values are treated as silence.
func (t *Tone) SetFrequency(hz float64) {
	if hz < 0 || math.IsNaN(hz) {
		hz = 0
	}
	t.freq.Store(math.Float64bits(hz))
}

func (t *Tone) Frequency() float64 {
	return math.Float64frombits(t.freq.Load())
}

func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	step := t.Frequency() / float64(t.sr)
	for i := range samples {
		sample := t.volume * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = sample
		samples[i][1] = sample

		t.phase += step
		if t.phase >= 1 {
			t.phase -= math.Floor(t.phase)
		}
	}
	return len(samples), true
}

func (t *Tone) Err() error {
	return nil
}
