// Package synth generates deterministic calibration signals for the
// fractal estimators: smooth tones, white noise, and power-law noise with
// a chosen Hurst exponent. Every generator is seed-stable so calibration
// runs are reproducible.
package synth

import (
	"math"
	"math/rand"

	"github.com/mjibson/go-dsp/fft"
)

// Sine generates n samples of a unit-amplitude sine wave at freq Hz
func Sine(freq float64, sampleRate, n int) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2.0 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return samples
}

// WhiteNoise generates n samples of zero-mean unit-variance Gaussian noise
func WhiteNoise(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = rng.NormFloat64()
	}
	return samples
}

// PowerLawNoise generates n samples of noise whose power spectrum follows
// f^(-beta) with beta = 2*hurst - 1, i.e. fractional Gaussian noise with
// the given Hurst exponent. DFA applied to the result recovers an exponent
// near hurst.
//
// Spectral synthesis method: shape the spectrum of Gaussian white noise by
// f^(-beta/2) and invert. The symmetric bin weighting preserves Hermitian
// symmetry, so the inverse transform is real up to rounding.
func PowerLawNoise(n int, hurst float64, seed int64) []float64 {
	if n < 2 {
		return make([]float64, n)
	}

	white := WhiteNoise(n, seed)
	spectrum := fft.FFTReal(white)

	beta := 2.0*hurst - 1.0
	spectrum[0] = 0 // drop DC so the output stays zero-mean
	for k := 1; k < n; k++ {
		// Mirror bins share a frequency magnitude
		f := float64(min(k, n-k))
		spectrum[k] *= complex(math.Pow(f, -beta/2.0), 0)
	}

	shaped := fft.IFFT(spectrum)

	samples := make([]float64, n)
	for i, v := range shaped {
		samples[i] = real(v)
	}

	normalize(samples)
	return samples
}

// normalize rescales in place to zero mean and unit variance
func normalize(samples []float64) {
	n := len(samples)
	if n < 2 {
		return
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range samples {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(n)

	if variance <= 0 {
		return
	}

	std := math.Sqrt(variance)
	for i := range samples {
		samples[i] = (samples[i] - mean) / std
	}
}
