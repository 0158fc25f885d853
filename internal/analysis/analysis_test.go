package analysis

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/visualearn/internal/experiment"
)

func sine(n int, freq, dt float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) * dt)
	}
	return out
}

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		name string
		freq float64
		dt   float64
	}{
		{"slow", 1, 0.01},
		{"fast", 12.5, 0.01},
		{"coarse", 0.25, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := sine(1024, tt.freq, tt.dt)
			got, mag, err := DominantFrequency(data, tt.dt)
			if err != nil {
				t.Fatal(err)
			}
			resolution := 1 / (1024 * tt.dt)
			if math.Abs(got-tt.freq) > resolution {
				t.Errorf("expected %f (±%f), got %f", tt.freq, resolution, got)
			}
			if mag <= 0 {
				t.Errorf("expected positive magnitude, got %f", mag)
			}
		})
	}
}

func TestDominantFrequencyShortSeries(t *testing.T) {
	if _, _, err := DominantFrequency([]float64{1, 2}, 0.1); !errors.Is(err, ErrTooFewSamples) {
		t.Errorf("expected ErrTooFewSamples, got %v", err)
	}
}

func TestPowerSpectrumIgnoresOffset(t *testing.T) {
	data := make([]float64, 64)
	for i := range data {
		data[i] = 5
	}
	for i, v := range PowerSpectrum(data) {
		if v > 1e-9 {
			t.Fatalf("constant series should have no power, bin %d = %f", i, v)
		}
	}
	if len(PowerSpectrum(data)) != 33 {
		t.Errorf("expected n/2+1 bins, got %d", len(PowerSpectrum(data)))
	}
}

func pendulumRun(t *testing.T, frames int) *experiment.Result {
	t.Helper()
	exp, err := experiment.New(experiment.NewRegistry(), experiment.Config{
		Simulation: "pendulum",
		Frames:     frames,
		Params:     map[string]float64{"damping": 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestPendulumSwingFrequency(t *testing.T) {
	res := pendulumRun(t, 2048)
	theta, ok := res.Column("theta")
	if !ok {
		t.Fatal("missing theta")
	}

	got, _, err := DominantFrequency(theta, 0.016)
	if err != nil {
		t.Fatal(err)
	}
	want := math.Sqrt(9.8/150) / (2 * math.Pi)
	if math.Abs(got-want) > 1/(2048*0.016) {
		t.Errorf("expected swing frequency %f, got %f", want, got)
	}
}

func TestPhasePortrait(t *testing.T) {
	res := pendulumRun(t, 400)

	portrait, err := NewPhasePortrait(res, "theta", "theta_dot")
	if err != nil {
		t.Fatal(err)
	}
	if len(portrait.Points) != 400 {
		t.Fatalf("expected 400 points, got %d", len(portrait.Points))
	}

	art := PhasePortraitToASCII(portrait, 40, 12)
	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	if len(lines) != 12 {
		t.Errorf("expected 12 rows, got %d", len(lines))
	}
	if !strings.Contains(art, "•") {
		t.Error("expected plotted points")
	}

	if _, err := NewPhasePortrait(res, "theta", "nope"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
	if PhasePortraitToASCII(nil, 10, 10) != "" {
		t.Error("nil portrait should render empty")
	}
}

func TestPoincareSection(t *testing.T) {
	res := pendulumRun(t, 2000)

	section, err := NewPoincareSection(res, "theta", 0, "theta", "theta_dot")
	if err != nil {
		t.Fatal(err)
	}
	if len(section.Points) == 0 {
		t.Fatal("expected upward crossings of theta")
	}
	for _, p := range section.Points {
		if p.Y <= 0 {
			t.Errorf("upward crossing should have positive velocity, got %f", p.Y)
		}
	}

	empty, _ := NewPoincareSection(res, "theta", 10, "theta", "theta_dot")
	if PoincareSectionToASCII(empty, 10, 5) != "No crossings detected" {
		t.Error("expected empty section message")
	}
}

func TestSweep(t *testing.T) {
	points, err := Sweep(context.Background(), experiment.NewRegistry(), SweepConfig{
		Simulation: "projectile",
		Param:      "angle",
		Min:        15,
		Max:        75,
		Steps:      5,
		Field:      "range",
		Record:     10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(points))
	}
	for _, p := range points {
		if len(p.Values) != 1 {
			t.Errorf("range is constant per launch, got %v at %f", p.Values, p.Param)
		}
	}
	// 45° gives the longest range
	if points[2].Values[0] < points[0].Values[0] || points[2].Values[0] < points[4].Values[0] {
		t.Errorf("expected peak range at 45°, got %+v", points)
	}
	if !strings.Contains(SweepToASCII(points, 20, 8), "•") {
		t.Error("expected plotted sweep")
	}
}

func TestSweepUnknownField(t *testing.T) {
	_, err := Sweep(context.Background(), experiment.NewRegistry(), SweepConfig{
		Simulation: "wave", Param: "amplitude", Min: 10, Max: 20, Steps: 2, Field: "nope", Record: 2,
	})
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}
