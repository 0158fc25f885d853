package config

import "sort"

var Presets = map[string]map[string]*Config{
	"pendulum": {
		"small": {
			Simulation: "pendulum", Frames: 1200, FPS: 60,
			Params: map[string]float64{"angle": 10, "damping": 0},
		},
		"large": {
			Simulation: "pendulum", Frames: 1200, FPS: 60,
			Params: map[string]float64{"angle": 80, "length": 250},
		},
		"undamped": {
			Simulation: "pendulum", Frames: 2000, FPS: 60,
			Params: map[string]float64{"damping": 0},
		},
		"overdamped": {
			Simulation: "pendulum", Frames: 1200, FPS: 60,
			Params: map[string]float64{"angle": 60, "damping": 0.1, "length": 50},
		},
	},
	"wave": {
		"calm": {
			Simulation: "wave", Frames: 600, FPS: 60,
			Params: map[string]float64{"amplitude": 20, "frequency": 0.5, "speed": 2},
		},
		"storm": {
			Simulation: "wave", Frames: 600, FPS: 60,
			Params: map[string]float64{"amplitude": 100, "frequency": 3, "speed": 10},
		},
		"damped": {
			Simulation: "wave", Frames: 600, FPS: 60,
			Params: map[string]float64{"damping": 0.3},
		},
	},
	"doppler": {
		"fast": {
			Simulation: "doppler", Frames: 2000, FPS: 60,
			Params: map[string]float64{"sourceSpeed": 0.9},
		},
		"receding": {
			Simulation: "doppler", Frames: 2000, FPS: 60,
			Params: map[string]float64{"direction": -1},
		},
		"stationary": {
			Simulation: "doppler", Frames: 1000, FPS: 60,
			Params: map[string]float64{"sourceSpeed": 0},
		},
	},
	"projectile": {
		"max-range": {
			Simulation: "projectile", Frames: 900, FPS: 60,
			Params: map[string]float64{"velocity": 50, "angle": 45},
		},
		"lob": {
			Simulation: "projectile", Frames: 900, FPS: 60,
			Params: map[string]float64{"velocity": 30, "angle": 75},
		},
		"moon": {
			Simulation: "projectile", Frames: 2400, FPS: 60,
			Params: map[string]float64{"velocity": 10, "gravity": 1.6},
		},
		"slow-motion": {
			Simulation: "projectile", Frames: 1200, FPS: 60,
			Params: map[string]float64{"timeScale": 0.3},
		},
	},
	"relative": {
		"same-speed": {
			Simulation: "relative", Frames: 600, FPS: 60,
			Params: map[string]float64{"objectSpeed": 5, "observerSpeed": 5},
		},
		"overtaken": {
			Simulation: "relative", Frames: 600, FPS: 60,
			Params: map[string]float64{"objectSpeed": 3, "observerSpeed": 8},
		},
	},
	"lewisbond": {
		"slow": {
			Simulation: "lewisbond", Frames: 600, FPS: 60,
			Params: map[string]float64{"pulseSpeed": 0.5},
		},
		"fast": {
			Simulation: "lewisbond", Frames: 600, FPS: 60,
			Params: map[string]float64{"pulseSpeed": 5},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(simulation, name string) *Config {
	if sim, ok := Presets[simulation]; ok {
		if cfg, ok := sim[name]; ok {
			return cfg.Clone()
		}
	}
	return nil
}

// ListPresets returns the preset names of a simulation in sorted order.
func ListPresets(simulation string) []string {
	sim, ok := Presets[simulation]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(sim))
	for name := range sim {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
