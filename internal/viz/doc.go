// Package viz provides the interactive terminal view of a simulation.
//
// The package implements a TUI using the Bubble Tea framework:
//
//   - [Model]: one running simulation drawn on a Braille canvas
//   - [Menu]: topic picker that opens a [Model]
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Play/Pause
//	R     - Reset to t=0 (paused)
//	Tab   - Select next parameter
//	Up/K  - Raise parameter by one step
//	Down/J- Lower parameter by one step
//	D     - Restore default parameters
//	[ ]   - Scrub the clock backwards/forwards
//	C     - Chart the next readout
//	S     - Toggle Doppler tone
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
