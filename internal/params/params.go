// Package params implements the bounded, user-tunable inputs of a simulation.
//
// A [Set] holds one value per declared [Spec]. Writes through [Set.Set] are
// clamped to the spec's range and snapped to its step, mirroring a slider;
// [Set.Validate] is the strict form used for config files and HTTP queries.
// Evaluators only ever see an immutable [Values] snapshot.
package params

import (
	"fmt"
	"math"
	"sync"
)

// Spec declares one slider-backed input.
type Spec struct {
	Name    string  `json:"name" yaml:"name"`
	Label   string  `json:"label" yaml:"label"`
	Unit    string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Step    float64 `json:"step" yaml:"step"`
	Default float64 `json:"default" yaml:"default"`
}

// Clamp limits v to [Min, Max] and snaps it to the nearest step above Min.
func (s Spec) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return s.Default
	}
	if v <= s.Min {
		return s.Min
	}
	if v >= s.Max {
		return s.Max
	}
	if s.Step > 0 {
		n := math.Round((v - s.Min) / s.Step)
		v = s.Min + n*s.Step
		// trim float noise, e.g. 9.799999999 -> 9.8
		v = math.Round(v*1e9) / 1e9
		if v > s.Max {
			v = s.Max
		}
	}
	return v
}

// Contains reports whether v lies inside the declared range.
func (s Spec) Contains(v float64) bool {
	return !math.IsNaN(v) && v >= s.Min && v <= s.Max
}

// Values is a read-only snapshot of a parameter set.
type Values map[string]float64

// Get returns the named value, or zero when absent.
func (v Values) Get(name string) float64 {
	return v[name]
}

// Set is the mutable parameter set owned by one simulation instance.
// It is safe for concurrent use.
type Set struct {
	mu     sync.RWMutex
	specs  []Spec
	index  map[string]int
	values []float64
}

// NewSet creates a set initialised to each spec's default.
func NewSet(specs []Spec) *Set {
	s := &Set{
		specs:  make([]Spec, len(specs)),
		index:  make(map[string]int, len(specs)),
		values: make([]float64, len(specs)),
	}
	copy(s.specs, specs)
	for i, sp := range s.specs {
		s.index[sp.Name] = i
		s.values[i] = sp.Clamp(sp.Default)
	}
	return s
}

// Specs returns the declared specs in declaration order.
func (s *Set) Specs() []Spec {
	out := make([]Spec, len(s.specs))
	copy(out, s.specs)
	return out
}

// Spec looks up a single spec by name.
func (s *Set) Spec(name string) (Spec, bool) {
	i, ok := s.index[name]
	if !ok {
		return Spec{}, false
	}
	return s.specs[i], true
}

// Names returns parameter names in declaration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.specs))
	for i, sp := range s.specs {
		names[i] = sp.Name
	}
	return names
}

// Get returns the current value of name.
func (s *Set) Get(name string) (float64, bool) {
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[i], true
}

// Set clamps value into range and stores it, returning the stored value.
func (s *Set) Set(name string, value float64) (float64, error) {
	i, ok := s.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownParameter, name)
	}
	v := s.specs[i].Clamp(value)
	s.mu.Lock()
	s.values[i] = v
	s.mu.Unlock()
	return v, nil
}

// Nudge moves name by the given number of slider steps.
func (s *Set) Nudge(name string, steps int) (float64, error) {
	i, ok := s.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownParameter, name)
	}
	sp := s.specs[i]
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[i] = sp.Clamp(s.values[i] + float64(steps)*sp.Step)
	return s.values[i], nil
}

// Validate checks value against the declared range without storing it.
func (s *Set) Validate(name string, value float64) error {
	i, ok := s.index[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParameter, name)
	}
	sp := s.specs[i]
	if !sp.Contains(value) {
		return &ParamError{Name: name, Value: value, Min: sp.Min, Max: sp.Max}
	}
	return nil
}

// Apply validates every entry of vals and stores them only if all pass.
func (s *Set) Apply(vals map[string]float64) error {
	for name, v := range vals {
		if err := s.Validate(name, v); err != nil {
			return err
		}
	}
	for name, v := range vals {
		if _, err := s.Set(name, v); err != nil {
			return err
		}
	}
	return nil
}

// Reset restores every value to its default.
func (s *Set) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sp := range s.specs {
		s.values[i] = sp.Clamp(sp.Default)
	}
}

// Values snapshots the current values.
func (s *Set) Values() Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Values, len(s.specs))
	for i, sp := range s.specs {
		out[sp.Name] = s.values[i]
	}
	return out
}
