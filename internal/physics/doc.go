// Package physics provides the closed-form models behind each simulation.
//
// Every model is a [sim.Model]: its state at time t is a pure function of t
// and a parameter snapshot, so any frame can be evaluated independently of
// the ones before it:
//
//   - [Pendulum]: damped small-angle pendulum with energy readouts
//   - [Wave]: damped travelling sine wave sampled per pixel column
//   - [Doppler]: moving source, fixed observer and expanding wavefronts
//   - [Projectile]: drag-free launch that replays once it lands
//   - [Relative]: two bodies moving along a line at different speeds
//   - [LewisBond]: shared electron pair pulsing between two atoms
//
// Coordinates are logical screen pixels on an 800x450 surface with y
// pointing down, matching the renderers in package scene.
//
// # Degenerate parameters
//
// Parameter ranges keep lengths and gravity positive, but the evaluators do
// not rely on it. A non-positive pendulum length yields the rest state and a
// non-positive projectile gravity yields a zero-length flight.
package physics
