package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/visualearn/internal/metrics"
	"github.com/san-kum/visualearn/internal/params"
	"github.com/san-kum/visualearn/internal/physics"
	"github.com/san-kum/visualearn/internal/scene"
	"github.com/san-kum/visualearn/internal/sim"
)

// Entry describes one registered simulation.
type Entry struct {
	Name    string
	Title   string
	Specs   []params.Spec
	Metrics func() []metrics.Metric

	build func(sched sim.Scheduler, opts ...sim.Option) sim.Simulation
}

// New creates a fresh, paused instance driven by sched.
func (e Entry) New(sched sim.Scheduler, opts ...sim.Option) sim.Simulation {
	return e.build(sched, opts...)
}

func entry[S sim.Observation](m sim.Model[S], render sim.RenderFunc[S], title string, mk func() []metrics.Metric) Entry {
	return Entry{
		Name:    m.Name(),
		Title:   title,
		Specs:   m.Params(),
		Metrics: mk,
		build: func(sched sim.Scheduler, opts ...sim.Option) sim.Simulation {
			return sim.NewRunner[S](m, render, sched, opts...)
		},
	}
}

type Registry struct {
	entries map[string]Entry
}

func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]Entry)}

	r.add(entry[physics.PendulumState](physics.Pendulum{}, scene.Pendulum, "Simple Pendulum", func() []metrics.Metric {
		return []metrics.Metric{metrics.NewDrift("energy"), metrics.NewPeak("theta"), metrics.NewCrossings("theta")}
	}))
	r.add(entry[physics.WaveState](physics.Wave{}, scene.Wave, "Wave Properties", func() []metrics.Metric {
		return []metrics.Metric{metrics.NewPeak("y0"), metrics.NewCrossings("y0")}
	}))
	r.add(entry[physics.DopplerState](physics.Doppler{}, scene.Doppler, "Doppler Effect", func() []metrics.Metric {
		return []metrics.Metric{metrics.NewMean("perceived"), metrics.NewPeak("shift")}
	}))
	r.add(entry[physics.ProjectileState](physics.Projectile{}, scene.Projectile, "Projectile Motion", func() []metrics.Metric {
		return []metrics.Metric{metrics.NewPeak("height"), metrics.NewMean("vy")}
	}))
	r.add(entry[physics.RelativeState](physics.Relative{}, scene.Relative, "Relative Motion", func() []metrics.Metric {
		return []metrics.Metric{metrics.NewPeak("separation"), metrics.NewMean("relative_speed")}
	}))
	r.add(entry[physics.LewisBondState](physics.LewisBond{}, scene.LewisBond, "Lewis Structure: N₂", func() []metrics.Metric {
		return []metrics.Metric{metrics.NewMean("visibility")}
	}))

	return r
}

func (r *Registry) add(e Entry) {
	r.entries[e.Name] = e
}

// Get looks up a registered simulation by name.
func (r *Registry) Get(name string) (Entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownSimulation, name)
	}
	return e, nil
}

// New creates an instance of the named simulation.
func (r *Registry) New(name string, sched sim.Scheduler, opts ...sim.Option) (sim.Simulation, error) {
	e, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return e.New(sched, opts...), nil
}

// Names returns registered simulation names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
