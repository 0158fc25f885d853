package sim

import (
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/san-kum/visualearn/internal/canvas"
	"github.com/san-kum/visualearn/internal/logging"
	"github.com/san-kum/visualearn/internal/params"
)

// Recorder receives frame-loop events. telemetry.Metrics implements it.
type Recorder interface {
	FrameRendered(sim string)
	FrameSkipped(sim string)
	Transition(sim, event string)
	ClockWrapped(sim string)
}

type nopRecorder struct{}

func (nopRecorder) FrameRendered(string)      {}
func (nopRecorder) FrameSkipped(string)       {}
func (nopRecorder) Transition(string, string) {}
func (nopRecorder) ClockWrapped(string)       {}

// Option configures a Runner.
type Option func(*options)

type options struct {
	log      zerolog.Logger
	recorder Recorder
}

// WithLogger sets the logger lifecycle events are written to.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithRecorder sets the sink for frame counters.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// Runner drives one model through a self-rescheduling chain of frame
// callbacks. At most one callback is pending at any time, and only while
// playing with a surface attached.
type Runner[S Observation] struct {
	mu        sync.Mutex
	model     Model[S]
	renderer  Renderer[S]
	sched     Scheduler
	params    *params.Set
	clock     Clock
	surface   canvas.Surface
	cancel    CancelFunc
	gen       uint64
	frames    int
	closed    bool
	observers []Observer

	log      zerolog.Logger
	recorder Recorder
}

// NewRunner creates a paused runner at t=0 with default parameters.
func NewRunner[S Observation](model Model[S], renderer Renderer[S], sched Scheduler, opts ...Option) *Runner[S] {
	o := options{log: zerolog.Nop(), recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Runner[S]{
		model:    model,
		renderer: renderer,
		sched:    sched,
		params:   params.NewSet(model.Params()),
		log:      o.log.With().Str(logging.SIM, model.Name()).Logger(),
		recorder: o.recorder,
	}
}

func (r *Runner[S]) Name() string        { return r.model.Name() }
func (r *Runner[S]) Params() *params.Set { return r.params }
func (r *Runner[S]) Model() Model[S]     { return r.model }

func (r *Runner[S]) AddObserver(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

// Play starts or resumes the frame chain. It is a no-op when already playing
// or closed.
func (r *Runner[S]) Play() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.clock.Playing {
		return
	}
	r.clock.Playing = true
	r.event("play")
	r.arm()
}

// Pause stops the chain and cancels the pending frame. Time is kept.
func (r *Runner[S]) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || !r.clock.Playing {
		return
	}
	r.clock.Playing = false
	r.disarm()
	r.event("pause")
}

func (r *Runner[S]) Toggle() {
	if r.Playing() {
		r.Pause()
	} else {
		r.Play()
	}
}

// Reset rewinds to t=0 and pauses. Parameters are left as they are.
func (r *Runner[S]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.disarm()
	r.clock = Clock{}
	r.event("reset")
}

// Seek moves the clock to t, clamped at zero. Non-finite times seek to zero.
func (r *Runner[S]) Seek(t float64) {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		t = 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.clock.Time = t
}

func (r *Runner[S]) Playing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clock.Playing
}

func (r *Runner[S]) Time() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clock.Time
}

func (r *Runner[S]) Step() float64 {
	return r.model.Step(r.params.Values())
}

// Clock returns a copy of the playback state.
func (r *Runner[S]) Clock() Clock {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clock
}

// Frames returns the number of frames rendered since creation.
func (r *Runner[S]) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Evaluate returns the typed state at the current time.
func (r *Runner[S]) Evaluate() S {
	t := r.Time()
	return r.model.Evaluate(t, r.params.Values())
}

func (r *Runner[S]) State() Observation {
	return r.Evaluate()
}

func (r *Runner[S]) StateAt(t float64) Observation {
	return r.model.Evaluate(t, r.params.Values())
}

// Attach sets the drawing surface. A playing runner whose chain stopped for
// lack of a surface resumes.
func (r *Runner[S]) Attach(s canvas.Surface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.surface = s
	if r.clock.Playing && s != nil {
		r.arm()
	}
}

// Detach removes the surface. Frames already scheduled are skipped.
func (r *Runner[S]) Detach() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surface = nil
}

// Redraw paints the current time without advancing it. It returns false
// when there is nothing to draw on.
func (r *Runner[S]) Redraw() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.surface == nil {
		return false
	}
	vals := r.params.Values()
	state := r.model.Evaluate(r.clock.Time, vals)
	r.surface.Clear()
	r.renderer.Render(r.surface, state, vals)
	return true
}

// Close cancels any pending frame and detaches. A closed runner never renders.
func (r *Runner[S]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.disarm()
	r.clock.Playing = false
	r.surface = nil
	r.closed = true
	r.event("close")
}

// arm requests the next frame unless one is already pending. Callers hold mu.
func (r *Runner[S]) arm() {
	if r.cancel != nil {
		return
	}
	r.gen++
	g := r.gen
	r.cancel = r.sched.RequestFrame(func() { r.frame(g) })
}

// disarm cancels the pending frame. Callers hold mu.
func (r *Runner[S]) disarm() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.gen++
}

func (r *Runner[S]) frame(gen uint64) {
	r.mu.Lock()
	// stale callbacks from a cancelled chain must not advance the clock
	if r.closed || gen != r.gen || !r.clock.Playing {
		r.mu.Unlock()
		return
	}
	r.cancel = nil

	if r.surface == nil {
		r.recorder.FrameSkipped(r.model.Name())
		r.log.Debug().Str(logging.EVENT, "skip").Float64(logging.TIME, r.clock.Time).Msg("no surface attached")
		r.mu.Unlock()
		return
	}

	vals := r.params.Values()
	t := r.clock.Time
	state := r.model.Evaluate(t, vals)
	r.surface.Clear()
	r.renderer.Render(r.surface, state, vals)
	r.frames++
	r.recorder.FrameRendered(r.model.Name())

	r.clock.Time = t + r.model.Step(vals)
	if l, ok := r.model.(Looper); ok {
		if next, wrapped := l.Wrap(r.clock.Time, vals); wrapped {
			r.clock.Time = next
			r.recorder.ClockWrapped(r.model.Name())
		}
	}
	r.arm()

	observers := make([]Observer, len(r.observers))
	copy(observers, r.observers)
	r.mu.Unlock()

	for _, o := range observers {
		o.OnFrame(t, state)
	}
}

func (r *Runner[S]) event(name string) {
	r.recorder.Transition(r.model.Name(), name)
	r.log.Debug().Str(logging.EVENT, name).Float64(logging.TIME, r.clock.Time).Msg("")
}
