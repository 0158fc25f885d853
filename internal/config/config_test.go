package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/visualearn/internal/experiment"
	"github.com/san-kum/visualearn/internal/params"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Simulation != "pendulum" {
		t.Errorf("expected simulation pendulum, got %s", cfg.Simulation)
	}
	if cfg.Frames <= 0 {
		t.Error("frames should be positive")
	}
	if cfg.FPS != 60 {
		t.Errorf("expected 60 fps, got %d", cfg.FPS)
	}
}

func TestSaveLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	cfg := &Config{Simulation: "wave", Params: map[string]float64{"amplitude": 70}}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Simulation != "wave" || loaded.Params["amplitude"] != 70 {
		t.Errorf("unexpected config %+v", loaded)
	}
	// zero values from the file override defaults
	if loaded.Frames != 0 {
		t.Errorf("expected frames 0 from file, got %d", loaded.Frames)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pendulum", "small")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params["angle"] != 10 {
		t.Errorf("expected angle 10, got %f", cfg.Params["angle"])
	}

	cfg.Params["angle"] = 45
	if Presets["pendulum"]["small"].Params["angle"] != 10 {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("pendulum", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "small"); cfg != nil {
		t.Error("expected nil for nonexistent simulation")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("projectile")
	if len(presets) != 4 || presets[0] != "lob" {
		t.Errorf("unexpected presets %v", presets)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent simulation")
	}
}

func TestPresetsAreValid(t *testing.T) {
	reg := experiment.NewRegistry()
	for simName, presets := range Presets {
		for name, cfg := range presets {
			if cfg.Simulation != simName {
				t.Errorf("%s/%s: simulation mismatch %s", simName, name, cfg.Simulation)
			}
			if err := Validate(cfg, reg); err != nil {
				t.Errorf("%s/%s: %v", simName, name, err)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	reg := experiment.NewRegistry()
	tests := []struct {
		name  string
		cfg   *Config
		check func(error) bool
	}{
		{"default", DefaultConfig(), func(err error) bool { return err == nil }},
		{"missing simulation", &Config{Frames: 1, FPS: 60}, func(err error) bool {
			return FieldErrors(err)["simulation"] != ""
		}},
		{"bad frames", &Config{Simulation: "wave", FPS: 60}, func(err error) bool {
			return FieldErrors(err)["frames"] != ""
		}},
		{"unknown simulation", &Config{Simulation: "lorenz", Frames: 1, FPS: 60}, func(err error) bool {
			return errors.Is(err, experiment.ErrUnknownSimulation)
		}},
		{"out of range", &Config{Simulation: "pendulum", Frames: 1, FPS: 60, Params: map[string]float64{"length": 305}}, func(err error) bool {
			return errors.Is(err, params.ErrParameterBounds)
		}},
		{"at the boundary", &Config{Simulation: "pendulum", Frames: 1, FPS: 60, Params: map[string]float64{"length": 300}}, func(err error) bool {
			return err == nil
		}},
		{"unknown parameter", &Config{Simulation: "pendulum", Frames: 1, FPS: 60, Params: map[string]float64{"mass": 1}}, func(err error) bool {
			return errors.Is(err, params.ErrUnknownParameter)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.cfg, reg); !tt.check(err) {
				t.Errorf("unexpected result: %v", err)
			}
		})
	}
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	if FieldErrors(errors.New("boom")) != nil {
		t.Error("expected nil")
	}
}

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv("VISUALEARN_FPS", "30")
	t.Setenv("VISUALEARN_LOG_LEVEL", "debug")

	v := NewViper()
	s := LoadSettings(v)
	if s.FPS != 30 {
		t.Errorf("expected fps 30, got %d", s.FPS)
	}
	if s.LogLevel != "debug" {
		t.Errorf("expected debug, got %s", s.LogLevel)
	}
	if s.Addr != ":8080" {
		t.Errorf("expected default addr, got %s", s.Addr)
	}
}
