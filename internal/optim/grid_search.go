// Package optim searches a simulation's parameter space for the settings
// that minimise or maximise one run metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/visualearn/internal/experiment"
)

var (
	ErrEmptyGrid     = errors.New("optim: empty grid")
	ErrUnknownMetric = errors.New("optim: unknown metric")
	ErrBadAxis       = errors.New("optim: malformed axis")
)

// Axis is one parameter and the values to try for it.
type Axis struct {
	Param  string
	Values []float64
}

// ParseAxis reads "name=min:max:step" or "name=v1,v2,v3".
func ParseAxis(s string) (Axis, error) {
	name, spec, ok := strings.Cut(s, "=")
	if !ok || name == "" || spec == "" {
		return Axis{}, fmt.Errorf("%w: %q", ErrBadAxis, s)
	}
	ax := Axis{Param: strings.TrimSpace(name)}

	if parts := strings.Split(spec, ":"); len(parts) == 3 {
		var r [3]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return Axis{}, fmt.Errorf("%w: %q: %v", ErrBadAxis, s, err)
			}
			r[i] = v
		}
		lo, hi, step := r[0], r[1], r[2]
		if step <= 0 || hi < lo {
			return Axis{}, fmt.Errorf("%w: %q", ErrBadAxis, s)
		}
		n := int(math.Floor((hi-lo)/step+1e-9)) + 1
		for i := 0; i < n; i++ {
			ax.Values = append(ax.Values, lo+float64(i)*step)
		}
		return ax, nil
	}

	for _, p := range strings.Split(spec, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Axis{}, fmt.Errorf("%w: %q: %v", ErrBadAxis, s, err)
		}
		ax.Values = append(ax.Values, v)
	}
	return ax, nil
}

type GridSearch struct {
	Simulation string
	Frames     int
	// Params are held fixed for every grid point.
	Params   map[string]float64
	Axes     []Axis
	Metric   string
	Maximize bool
}

// Result is the best grid point found.
type Result struct {
	Params map[string]float64
	Value  float64
	Tried  int
}

// Search runs every combination of axis values concurrently and keeps the
// best metric value. Ties keep the earliest point in grid order.
func (g *GridSearch) Search(ctx context.Context, reg *experiment.Registry) (*Result, error) {
	points := g.points()
	if len(points) == 0 {
		return nil, ErrEmptyGrid
	}

	cfgs := make([]experiment.Config, len(points))
	for i, p := range points {
		cfgs[i] = experiment.Config{
			Simulation: g.Simulation,
			Frames:     g.Frames,
			Params:     p,
		}
	}
	results, err := experiment.RunAll(ctx, reg, cfgs)
	if err != nil {
		return nil, err
	}

	best := &Result{Value: math.Inf(1), Tried: len(results)}
	if g.Maximize {
		best.Value = math.Inf(-1)
	}
	for i, res := range results {
		val, ok := res.Metrics[g.Metric]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, g.Metric)
		}
		if (g.Maximize && val > best.Value) || (!g.Maximize && val < best.Value) {
			best.Value = val
			best.Params = points[i]
		}
	}
	return best, nil
}

// points expands the axes into their cartesian product.
func (g *GridSearch) points() []map[string]float64 {
	if len(g.Axes) == 0 {
		return nil
	}
	var out []map[string]float64
	g.searchRecursive(0, copyParams(g.Params), &out)
	return out
}

func (g *GridSearch) searchRecursive(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.Axes) {
		*out = append(*out, current)
		return
	}
	ax := g.Axes[depth]
	for _, val := range ax.Values {
		next := copyParams(current)
		next[ax.Param] = val
		g.searchRecursive(depth+1, next, out)
	}
}

func copyParams(p map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	return out
}
