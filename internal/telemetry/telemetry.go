// Package telemetry exposes frame-loop counters to Prometheus.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "visualearn"

// Metrics holds the counter vectors shared by every runner in a process.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	frames      *prometheus.CounterVec
	skipped     *prometheus.CounterVec
	transitions *prometheus.CounterVec
	wraps       *prometheus.CounterVec
}

// New creates the counters and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "frame",
			Name:      "rendered_total",
			Help:      "Frames evaluated and drawn.",
		}, []string{"simulation"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "frame",
			Name:      "skipped_total",
			Help:      "Frames dropped because no surface was attached.",
		}, []string{"simulation"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "playback",
			Name:      "transitions_total",
			Help:      "Play, pause, reset and close calls.",
		}, []string{"simulation", "event"}),
		wraps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "clock",
			Name:      "wraps_total",
			Help:      "Times a looping simulation restarted its clock.",
		}, []string{"simulation"}),
	}
	reg.MustRegister(m.frames, m.skipped, m.transitions, m.wraps)
	return m
}

func (m *Metrics) FrameRendered(sim string) {
	if m == nil {
		return
	}
	m.frames.WithLabelValues(sim).Inc()
}

func (m *Metrics) FrameSkipped(sim string) {
	if m == nil {
		return
	}
	m.skipped.WithLabelValues(sim).Inc()
}

func (m *Metrics) Transition(sim, event string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(sim, event).Inc()
}

func (m *Metrics) ClockWrapped(sim string) {
	if m == nil {
		return
	}
	m.wraps.WithLabelValues(sim).Inc()
}
