package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSimulation = "pendulum"
	DefaultFrames     = 600
	DefaultFPS        = 60
)

// Config describes one scene: which simulation to load, how long to run it
// headless, and the slider values to start from.
type Config struct {
	Simulation string             `yaml:"simulation" json:"simulation" validate:"required"`
	Frames     int                `yaml:"frames" json:"frames" validate:"gt=0,lte=1000000"`
	FPS        int                `yaml:"fps" json:"fps" validate:"gte=1,lte=240"`
	Start      float64            `yaml:"start,omitempty" json:"start,omitempty" validate:"gte=0"`
	Theme      string             `yaml:"theme,omitempty" json:"theme,omitempty"`
	Params     map[string]float64 `yaml:"params,omitempty" json:"params,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Simulation: DefaultSimulation,
		Frames:     DefaultFrames,
		FPS:        DefaultFPS,
		Params:     map[string]float64{},
	}
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Params = make(map[string]float64, len(c.Params))
	for k, v := range c.Params {
		out.Params[k] = v
	}
	return &out
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Params == nil {
		cfg.Params = map[string]float64{}
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
