package analysis

import "errors"

var (
	// ErrUnknownField indicates a field the recording does not contain.
	ErrUnknownField = errors.New("analysis: unknown field")

	// ErrTooFewSamples indicates a series too short to analyse.
	ErrTooFewSamples = errors.New("analysis: too few samples")
)
