package main

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/visualearn/internal/config"
)

// resolveScene builds the starting scene for simulation: defaults, then the
// preset, then the scene file, then flags the user actually set.
func resolveScene(cmd *cobra.Command, simulation string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if simulation != "" {
		cfg.Simulation = simulation
	}

	if preset != "" {
		p := config.GetPreset(cfg.Simulation, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Simulation))
		}
		cfg = p
	}

	// config file overrides preset
	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if simulation != "" && fileCfg.Simulation != simulation {
			return nil, fmt.Errorf("config %s is for %s, not %s", configFile, fileCfg.Simulation, simulation)
		}
		merged := maps.Clone(cfg.Params)
		if fileCfg.Simulation != cfg.Simulation || merged == nil {
			merged = map[string]float64{}
		}
		maps.Copy(merged, fileCfg.Params)
		fileCfg.Params = merged
		cfg = fileCfg
	}

	if cmd.Flags().Changed("frames") {
		cfg.Frames = frames
	}
	if cmd.Flags().Changed("start") {
		cfg.Start = start
	}
	if cmd.Flags().Changed("fps") || cfg.FPS == 0 {
		cfg.FPS = settings.FPS
	}
	if cfg.Theme == "" {
		cfg.Theme = settings.Theme
	}
	for name, raw := range setParams {
		val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", name, err)
		}
		if cfg.Params == nil {
			cfg.Params = map[string]float64{}
		}
		cfg.Params[name] = val
	}

	if err := config.Validate(cfg, registry); err != nil {
		if fe := config.FieldErrors(err); fe != nil {
			return nil, fmt.Errorf("invalid scene: %v", fe)
		}
		return nil, err
	}
	return cfg, nil
}
