package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// BaseFrequency is the audible pitch of an unshifted source.
	BaseFrequency = 440.0
)

// Player sends a single retunable tone to the default output device.
type Player struct {
	mu          sync.Mutex
	tone        *Tone
	ctrl        *beep.Ctrl
	mixer       *beep.Mixer
	initialized bool
}

func NewPlayer() *Player {
	tone := NewTone(sampleRate, BaseFrequency, 0.15)
	return &Player{
		tone:  tone,
		ctrl:  &beep.Ctrl{Streamer: tone, Paused: true},
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker. The tone starts paused.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	p.mixer.Add(p.ctrl)
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetFrequency retunes the tone in place.
func (p *Player) SetFrequency(hz float64) {
	p.tone.SetFrequency(hz)
}

func (p *Player) Frequency() float64 {
	return p.tone.Frequency()
}

func (p *Player) SetPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		p.ctrl.Paused = paused
		return
	}
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// Close silences the tone and empties the mixer.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.ctrl.Paused = true
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
