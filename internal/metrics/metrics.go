// Package metrics summarises a sequence of observations into scalars.
package metrics

import (
	"math"

	"github.com/san-kum/visualearn/internal/sim"
)

// Metric folds observations into a single value.
type Metric interface {
	Name() string
	Observe(t float64, obs sim.Observation)
	Value() float64
	Reset()
}

// Mean averages one field.
type Mean struct {
	field   string
	total   float64
	samples int
}

func NewMean(field string) *Mean {
	return &Mean{field: field}
}

func (m *Mean) Name() string { return "mean_" + m.field }

func (m *Mean) Observe(_ float64, obs sim.Observation) {
	v, ok := sim.Lookup(obs, m.field)
	if !ok {
		return
	}
	m.total += v
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *Mean) Reset() {
	m.total = 0
	m.samples = 0
}

// Peak tracks the largest absolute value of one field.
type Peak struct {
	field string
	peak  float64
}

func NewPeak(field string) *Peak {
	return &Peak{field: field}
}

func (p *Peak) Name() string { return "peak_" + p.field }

func (p *Peak) Observe(_ float64, obs sim.Observation) {
	if v, ok := sim.Lookup(obs, p.field); ok {
		p.peak = math.Max(p.peak, math.Abs(v))
	}
}

func (p *Peak) Value() float64 { return p.peak }

func (p *Peak) Reset() { p.peak = 0 }
