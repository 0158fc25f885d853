package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// PowerSpectrum returns magnitudes for bins 0..n/2 of the mean-removed,
// Hann-windowed series.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}
	window.Apply(centered, window.Hann)

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// BinFrequency converts a spectrum bin index to cycles per unit time.
func BinFrequency(bin, n int, dt float64) float64 {
	if n == 0 || dt <= 0 {
		return 0
	}
	return float64(bin) / (float64(n) * dt)
}

// DominantFrequency returns the frequency of the strongest non-DC bin
// and its magnitude. Samples are assumed dt apart.
func DominantFrequency(data []float64, dt float64) (float64, float64, error) {
	if len(data) < 4 {
		return 0, 0, fmt.Errorf("%w: need 4, got %d", ErrTooFewSamples, len(data))
	}

	ps := PowerSpectrum(data)
	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}

	return BinFrequency(best, len(data), dt), ps[best], nil
}
