package core

import "math"

// NormalizeEpsilon keeps PeakNormalize finite on silent input.
const NormalizeEpsilon = 1e-9

// Clamp bounds v to [lo, hi]. Reversed bounds are swapped first.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	return math.Min(math.Max(v, lo), hi)
}

// IsFinite reports whether v is a real number, not NaN or ±Inf.
func IsFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// IsFinitePositive reports whether v is finite and strictly positive.
func IsFinitePositive(v float64) bool { return v > 0 && !math.IsInf(v, 1) }

// MaxAbs returns max |x[i]|; empty input gives 0.
func MaxAbs(x []float64) float64 {
	var m float64
	for _, v := range x {
		m = math.Max(m, math.Abs(v))
	}

	return m
}

// RMS returns the root-mean-square of x; empty input gives 0.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	var e float64
	for _, v := range x {
		e += v * v
	}

	return math.Sqrt(e / float64(len(x)))
}

// PeakNormalize returns x / (max|x| + eps) as a new slice. A non-positive eps
// means NormalizeEpsilon.
func PeakNormalize(x []float64, eps float64) []float64 {
	if eps <= 0 {
		eps = NormalizeEpsilon
	}

	g := 1 / (MaxAbs(x) + eps)
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = g * v
	}

	return out
}

// LimitPeak rescales x in place so its peak is 1, but only if it was above 1.
func LimitPeak(x []float64) {
	if p := MaxAbs(x); p > 1 {
		for i := range x {
			x[i] /= p
		}
	}
}

// LinearToDB returns 20*log10(a): -Inf at 0 and NaN for negative a.
func LinearToDB(a float64) float64 {
	switch {
	case a < 0:
		return math.NaN()
	case a == 0:
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}
