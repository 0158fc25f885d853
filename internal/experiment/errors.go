package experiment

import "errors"

var (
	// ErrUnknownSimulation indicates a name the registry does not know.
	ErrUnknownSimulation = errors.New("experiment: unknown simulation")

	// ErrNoFrames indicates a run configured with a non-positive frame count.
	ErrNoFrames = errors.New("experiment: frames must be positive")
)
