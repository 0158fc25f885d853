package sim

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidState indicates a readout that is NaN or Inf.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrClosed indicates an operation on a closed simulation.
	ErrClosed = errors.New("sim: simulation closed")
)

// SimulationError wraps an error with frame context.
type SimulationError struct {
	Simulation string
	Frame      int
	Time       float64
	Wrapped    error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("%s: frame %d at t=%g: %v", e.Simulation, e.Frame, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

// Validate reports ErrInvalidState when any field is not finite.
func Validate(obs Observation) error {
	for _, f := range obs.Fields() {
		if math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
			return fmt.Errorf("%w: field %s", ErrInvalidState, f.Name)
		}
	}
	return nil
}
