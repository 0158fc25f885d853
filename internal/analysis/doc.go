// Package analysis inspects recorded simulation runs.
//
//   - [PowerSpectrum] and [DominantFrequency]: spectrum of a sampled field
//   - [NewPhasePortrait]: one field plotted against another
//   - [NewPoincareSection]: samples taken where a field crosses a threshold
//   - [Sweep]: distinct late-run values of a field across a parameter range
//
// A pendulum recording analysed for its swing frequency:
//
//	theta, _ := result.Column("theta")
//	freq, _ := analysis.DominantFrequency(theta, 0.016)
package analysis
