package params

import (
	"errors"
	"fmt"
)

var (
	// ErrParameterBounds indicates a value outside the declared [min, max] range.
	ErrParameterBounds = errors.New("params: value out of declared range")

	// ErrUnknownParameter indicates a name the set does not declare.
	ErrUnknownParameter = errors.New("params: unknown parameter")
)

// ParamError reports a rejected value together with the range it violated.
type ParamError struct {
	Name  string
	Value float64
	Min   float64
	Max   float64
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("params: %s=%g outside [%g, %g]", e.Name, e.Value, e.Min, e.Max)
}

func (e *ParamError) Unwrap() error {
	return ErrParameterBounds
}
