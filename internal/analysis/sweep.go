package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/san-kum/visualearn/internal/experiment"
)

// SweepConfig describes a run per value of one parameter.
type SweepConfig struct {
	Simulation string
	Param      string
	Min, Max   float64
	Steps      int
	Field      string
	// Transient frames are run but not recorded.
	Transient int
	Record    int
	Params    map[string]float64
}

// SweepPoint holds the distinct values of the field seen at one parameter value.
type SweepPoint struct {
	Param  float64
	Values []float64
}

// Sweep runs the simulation once per parameter value, concurrently, and
// keeps the distinct field values from the recorded window.
func Sweep(ctx context.Context, reg *experiment.Registry, cfg SweepConfig) ([]SweepPoint, error) {
	steps := cfg.Steps
	if steps <= 1 {
		steps = 2
	}
	paramStep := (cfg.Max - cfg.Min) / float64(steps-1)

	cfgs := make([]experiment.Config, steps)
	values := make([]float64, steps)
	for i := range cfgs {
		p := make(map[string]float64, len(cfg.Params)+1)
		for k, v := range cfg.Params {
			p[k] = v
		}
		values[i] = cfg.Min + float64(i)*paramStep
		p[cfg.Param] = values[i]
		cfgs[i] = experiment.Config{
			Simulation: cfg.Simulation,
			Frames:     cfg.Transient + cfg.Record,
			Params:     p,
		}
	}

	results, err := experiment.RunAll(ctx, reg, cfgs)
	if err != nil {
		return nil, err
	}

	points := make([]SweepPoint, 0, steps)
	for i, res := range results {
		col, ok := res.Column(cfg.Field)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, cfg.Field)
		}
		start := cfg.Transient
		if start > len(col) {
			start = len(col)
		}

		distinct := make([]float64, 0, 100)
		seen := make(map[int]bool)
		for _, v := range col[start:] {
			// quantized to find distinct values
			key := int(v * 1000)
			if !seen[key] {
				seen[key] = true
				distinct = append(distinct, v)
			}
		}
		points = append(points, SweepPoint{Param: values[i], Values: distinct})
	}
	return points, nil
}

// SweepToASCII plots one column per parameter value.
func SweepToASCII(data []SweepPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		for _, v := range p.Values {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				grid[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
