package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	registry := prometheus.NewPedanticRegistry()
	m := New(registry)

	m.FrameRendered("wave")
	m.FrameRendered("wave")
	m.FrameSkipped("wave")
	m.Transition("wave", "play")
	m.ClockWrapped("projectile")

	if got := testutil.ToFloat64(m.frames.WithLabelValues("wave")); got != 2 {
		t.Errorf("expected 2 frames, got %v", got)
	}
	if got := testutil.ToFloat64(m.skipped.WithLabelValues("wave")); got != 1 {
		t.Errorf("expected 1 skipped, got %v", got)
	}
	if got := testutil.ToFloat64(m.transitions.WithLabelValues("wave", "play")); got != 1 {
		t.Errorf("expected 1 transition, got %v", got)
	}

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 4 {
		t.Errorf("expected 4 metric families, got %d", len(families))
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.FrameRendered("x")
	m.FrameSkipped("x")
	m.Transition("x", "play")
	m.ClockWrapped("x")
}
