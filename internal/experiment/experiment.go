package experiment

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/visualearn/internal/canvas"
	"github.com/san-kum/visualearn/internal/metrics"
	"github.com/san-kum/visualearn/internal/sim"
)

type Config struct {
	Simulation string
	Frames     int
	Params     map[string]float64
	// Start seeks the clock before the first frame.
	Start float64
}

// Result is a recorded headless run: one row of field values per frame.
type Result struct {
	Simulation string
	Params     map[string]float64
	Fields     []string
	Units      []string
	Times      []float64
	Rows       [][]float64
	Metrics    map[string]float64
	Frames     int
}

// Column returns the recorded values of one field. Rows too short to hold
// the field read as NaN.
func (r *Result) Column(name string) ([]float64, bool) {
	idx := -1
	for i, f := range r.Fields {
		if f == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		if idx >= len(row) {
			out[i] = math.NaN()
			continue
		}
		out[i] = row[idx]
	}
	return out, true
}

// Experiment drives one simulation frame by frame without a display.
type Experiment struct {
	cfg     Config
	manual  *sim.ManualScheduler
	ticker  *sim.TickerScheduler
	sim     sim.Simulation
	metrics []metrics.Metric
	surface canvas.Surface
}

// New builds the simulation and applies cfg.Params with strict range checks.
// Frames are fired back to back.
func New(reg *Registry, cfg Config, opts ...sim.Option) (*Experiment, error) {
	sched := sim.NewManualScheduler()
	e, err := build(reg, cfg, sched, opts...)
	if err != nil {
		return nil, err
	}
	e.manual = sched
	return e, nil
}

// NewRealtime is like New but paces frames at fps on a ticker goroutine.
func NewRealtime(reg *Registry, cfg Config, fps int, opts ...sim.Option) (*Experiment, error) {
	if cfg.Frames <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrNoFrames, cfg.Frames)
	}
	if _, err := reg.Get(cfg.Simulation); err != nil {
		return nil, err
	}
	sched := sim.NewTickerScheduler(fps)
	e, err := build(reg, cfg, sched, opts...)
	if err != nil {
		_ = sched.Stop()
		return nil, err
	}
	e.ticker = sched
	return e, nil
}

func build(reg *Registry, cfg Config, sched sim.Scheduler, opts ...sim.Option) (*Experiment, error) {
	if cfg.Frames <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrNoFrames, cfg.Frames)
	}
	entry, err := reg.Get(cfg.Simulation)
	if err != nil {
		return nil, err
	}

	s := entry.New(sched, opts...)
	if err := s.Params().Apply(cfg.Params); err != nil {
		s.Close()
		return nil, err
	}

	e := &Experiment{
		cfg:     cfg,
		sim:     s,
		surface: canvas.Discard{},
	}
	if entry.Metrics != nil {
		e.metrics = entry.Metrics()
	}
	return e, nil
}

// AddMetric appends a metric to the defaults of the simulation.
func (e *Experiment) AddMetric(m metrics.Metric) { e.metrics = append(e.metrics, m) }

// SetSurface replaces the discard surface frames are drawn on.
func (e *Experiment) SetSurface(s canvas.Surface) { e.surface = s }

// Simulation returns the underlying instance for adding observers.
func (e *Experiment) Simulation() sim.Simulation { return e.sim }

// Run records cfg.Frames frames. A realtime experiment blocks until the
// ticker has fired them all.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	defer e.sim.Close()
	if e.ticker != nil {
		defer e.ticker.Stop()
	}

	result := &Result{
		Simulation: e.cfg.Simulation,
		Params:     e.sim.Params().Values(),
		Times:      make([]float64, 0, e.cfg.Frames),
		Rows:       make([][]float64, 0, e.cfg.Frames),
		Metrics:    make(map[string]float64),
	}
	for _, m := range e.metrics {
		m.Reset()
	}

	// written only from frame callbacks until done is closed
	var frameErr error
	finished := false
	done := make(chan struct{})
	finish := func() {
		finished = true
		close(done)
	}

	e.sim.AddObserver(sim.ObserverFunc(func(t float64, obs sim.Observation) {
		if finished {
			return
		}
		if err := sim.Validate(obs); err != nil {
			frameErr = &sim.SimulationError{Simulation: e.cfg.Simulation, Frame: len(result.Times), Time: t, Wrapped: err}
			finish()
			return
		}
		fields := obs.Fields()
		if result.Fields == nil {
			for _, f := range fields {
				result.Fields = append(result.Fields, f.Name)
				result.Units = append(result.Units, f.Unit)
			}
		}
		row := make([]float64, len(fields))
		for i, f := range fields {
			row[i] = f.Value
		}
		result.Times = append(result.Times, t)
		result.Rows = append(result.Rows, row)
		for _, m := range e.metrics {
			m.Observe(t, obs)
		}
		if len(result.Times) >= e.cfg.Frames {
			finish()
		}
	}))

	e.sim.Seek(e.cfg.Start)
	e.sim.Attach(e.surface)
	e.sim.Play()

	if e.ticker != nil {
		select {
		case <-ctx.Done():
			// no callback may touch result once Stop returns
			e.sim.Close()
			_ = e.ticker.Stop()
			return result, ctx.Err()
		case <-done:
		}
		e.sim.Close()
		_ = e.ticker.Stop()
	} else {
		for !finished {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			default:
			}
			if e.manual.Fire() == 0 {
				break
			}
		}
	}
	if frameErr != nil {
		return result, frameErr
	}
	result.Frames = len(result.Times)

	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
