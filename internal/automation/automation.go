package automation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/visualearn/internal/config"
	"github.com/san-kum/visualearn/internal/experiment"
	"github.com/san-kum/visualearn/internal/logging"
	"github.com/san-kum/visualearn/internal/params"
	"github.com/san-kum/visualearn/internal/sim"
)

var ErrUnknownPreset = errors.New("automation: unknown preset")

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Parallel    bool           `yaml:"parallel"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. Preset values are applied
// first and Params override them.
type ScenarioStep struct {
	Simulation string             `yaml:"simulation"`
	Preset     string             `yaml:"preset"`
	Frames     int                `yaml:"frames"`
	Start      float64            `yaml:"start"`
	Params     map[string]float64 `yaml:"params"`
	SaveAs     string             `yaml:"save_as"`
}

// SaveFunc persists one finished step. It may be nil.
type SaveFunc func(step ScenarioStep, result *experiment.Result) error

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s ScenarioStep) config() (experiment.Config, error) {
	cfg := experiment.Config{
		Simulation: s.Simulation,
		Frames:     s.Frames,
		Start:      s.Start,
		Params:     make(map[string]float64),
	}

	if s.Preset != "" {
		preset := config.GetPreset(s.Simulation, s.Preset)
		if preset == nil {
			return cfg, fmt.Errorf("%w: %s/%s", ErrUnknownPreset, s.Simulation, s.Preset)
		}
		for k, v := range preset.Params {
			cfg.Params[k] = v
		}
		if cfg.Frames == 0 {
			cfg.Frames = preset.Frames
		}
	}
	for k, v := range s.Params {
		cfg.Params[k] = v
	}
	if cfg.Frames == 0 {
		cfg.Frames = config.DefaultConfig().Frames
	}
	return cfg, nil
}

// Runner executes scenarios against a registry.
type Runner struct {
	Registry *experiment.Registry
	Save     SaveFunc
	log      zerolog.Logger
}

func NewRunner(reg *experiment.Registry, save SaveFunc, log zerolog.Logger) *Runner {
	return &Runner{
		Registry: reg,
		Save:     save,
		log:      logging.NewPackageLogger(log, "automation"),
	}
}

// RunScenario executes all steps in a scenario, in order or concurrently
// when the scenario is marked parallel. Results keep step order.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]*experiment.Result, error) {
	cfgs := make([]experiment.Config, len(scenario.Steps))
	for i, step := range scenario.Steps {
		cfg, err := step.config()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		cfgs[i] = cfg
	}

	var results []*experiment.Result
	if scenario.Parallel {
		var err error
		results, err = experiment.RunAll(ctx, r.Registry, cfgs)
		if err != nil {
			return nil, err
		}
	} else {
		results = make([]*experiment.Result, 0, len(cfgs))
		for i, cfg := range cfgs {
			r.log.Info().Str(logging.SIM, cfg.Simulation).Msgf("step %d/%d", i+1, len(cfgs))

			exp, err := experiment.New(r.Registry, cfg)
			if err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
			result, err := exp.Run(ctx)
			if err != nil {
				return results, fmt.Errorf("step %d run: %w", i+1, err)
			}
			results = append(results, result)
		}
	}

	if r.Save != nil {
		for i, result := range results {
			if err := r.Save(scenario.Steps[i], result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
	}
	return results, nil
}

// MonteCarloConfig defines a batch of runs with parameters drawn uniformly
// from their declared ranges.
type MonteCarloConfig struct {
	Simulation string
	NumTrials  int
	Frames     int
	Seed       int64
}

// MonteCarloResult holds the outcome of one randomized trial.
type MonteCarloResult struct {
	TrialID int
	Params  map[string]float64
	Metrics map[string]float64
	// Stable is false when any frame produced a non-finite reading.
	Stable bool
}

func randomParams(specs []params.Spec, rng *rand.Rand) map[string]float64 {
	out := make(map[string]float64, len(specs))
	for _, s := range specs {
		out[s.Name] = s.Clamp(s.Min + rng.Float64()*(s.Max-s.Min))
	}
	return out
}

// RunMonteCarlo executes multiple trials with random parameter sets
func (r *Runner) RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	entry, err := r.Registry.Get(cfg.Simulation)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		p := randomParams(entry.Specs, rng)

		exp, err := experiment.New(r.Registry, experiment.Config{
			Simulation: cfg.Simulation,
			Frames:     cfg.Frames,
			Params:     p,
		})
		if err != nil {
			return nil, err
		}

		stable := true
		result, err := exp.Run(ctx)
		if err != nil {
			var simErr *sim.SimulationError
			if !errors.As(err, &simErr) {
				return nil, err
			}
			r.log.Warn().Err(err).Int(logging.ID, trial).Msg("unstable trial")
			stable = false
		}

		results = append(results, MonteCarloResult{
			TrialID: trial,
			Params:  p,
			Metrics: result.Metrics,
			Stable:  stable,
		})

		if (trial+1)%10 == 0 {
			r.log.Info().Msgf("monte carlo: %d/%d trials complete", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
