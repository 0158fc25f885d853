package metrics

import (
	"math"

	"github.com/san-kum/visualearn/internal/sim"
)

// Drift is the largest relative deviation of a field from its first sample.
// Applied to a conserved quantity it measures how far it wandered.
type Drift struct {
	field    string
	initial  float64
	maxDrift float64
	samples  int
}

func NewDrift(field string) *Drift {
	return &Drift{field: field}
}

func (d *Drift) Name() string { return d.field + "_drift" }

func (d *Drift) Observe(_ float64, obs sim.Observation) {
	v, ok := sim.Lookup(obs, d.field)
	if !ok {
		return
	}
	if d.samples == 0 {
		d.initial = v
	}
	d.samples++

	if d.initial != 0 {
		drift := math.Abs(v-d.initial) / math.Abs(d.initial)
		d.maxDrift = math.Max(d.maxDrift, drift)
	}
}

func (d *Drift) Value() float64 {
	return d.maxDrift
}

func (d *Drift) Reset() {
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
}

// Crossings counts sign changes of a field, e.g. pendulum swings through
// the vertical.
type Crossings struct {
	field string
	last  float64
	count int
	seen  bool
}

func NewCrossings(field string) *Crossings {
	return &Crossings{field: field}
}

func (c *Crossings) Name() string { return c.field + "_crossings" }

func (c *Crossings) Observe(_ float64, obs sim.Observation) {
	v, ok := sim.Lookup(obs, c.field)
	if !ok {
		return
	}
	if c.seen && (c.last < 0) != (v < 0) {
		c.count++
	}
	c.last = v
	c.seen = true
}

func (c *Crossings) Value() float64 { return float64(c.count) }

func (c *Crossings) Reset() {
	c.last = 0
	c.count = 0
	c.seen = false
}
