package core

// Clone returns a new slice with the contents of in. It never returns nil, so
// callers can write into the result without checking.
func Clone(in []float64) []float64 {
	return append(make([]float64, 0, len(in)), in...)
}

// FitLength copies in into a fresh slice of length n, dropping the tail or
// padding with zeros as needed. A negative n is treated as 0.
func FitLength(in []float64, n int) []float64 {
	out := make([]float64, max(n, 0))
	copy(out, in)

	return out
}
