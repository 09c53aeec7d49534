package testutil

import (
	"math"
	"math/rand"
)

// Sine returns n samples of amp*sin(2*pi*freq*t) starting at phase zero.
func Sine(freq, sampleRate, amp float64, n int) []float64 {
	w := 2 * math.Pi * freq / sampleRate
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(w*float64(i))
	}

	return out
}

// Noise returns n uniform samples in [-amp, amp) drawn from a source seeded
// with seed.
func Noise(seed int64, amp float64, n int) []float64 {
	src := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * (2*src.Float64() - 1)
	}

	return out
}

// ToneAmplitude projects x onto a complex exponential at freq and returns the
// peak amplitude of that component. Exact when x spans whole periods.
func ToneAmplitude(x []float64, freq, sampleRate float64) float64 {
	if len(x) == 0 {
		return 0
	}

	w := 2 * math.Pi * freq / sampleRate
	var acc complex128
	for i, v := range x {
		s, c := math.Sincos(w * float64(i))
		acc += complex(v*c, -v*s)
	}

	return 2 * math.Hypot(real(acc), imag(acc)) / float64(len(x))
}

// ZeroCrossingFrequency measures the fundamental of a tonal signal from the
// spacing of its interpolated upward zero crossings. It returns 0 when fewer
// than two crossings exist.
func ZeroCrossingFrequency(x []float64, sampleRate float64) float64 {
	var crossings []float64
	for i := 1; i < len(x); i++ {
		a, b := x[i-1], x[i]
		if a < 0 && b >= 0 {
			crossings = append(crossings, float64(i-1)+a/(a-b))
		}
	}

	if len(crossings) < 2 {
		return 0
	}

	span := crossings[len(crossings)-1] - crossings[0]

	return float64(len(crossings)-1) * sampleRate / span
}
