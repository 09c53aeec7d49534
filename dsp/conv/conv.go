package conv

import "errors"

var (
	ErrEmptyInput  = errors.New("conv: empty input")
	ErrEmptyKernel = errors.New("conv: empty kernel")
)

// Mode selects how much of the linear convolution a*b is returned.
type Mode int

const (
	// ModeFull returns all len(a)+len(b)-1 samples.
	ModeFull Mode = iota
	// ModeHead returns the first len(a) samples; the tail past the end of a
	// is never computed.
	ModeHead
)

// directMaxKernel is the longest kernel Convolve handles in the time domain.
const directMaxKernel = 64

// Direct returns the full convolution of a and b in O(len(a)*len(b)).
func Direct(a, b []float64) ([]float64, error) {
	if err := check(a, b); err != nil {
		return nil, err
	}

	out := make([]float64, len(a)+len(b)-1)
	directInto(out, a, b)

	return out, nil
}

// directInto accumulates a*b into dst, dropping samples past len(dst).
func directInto(dst, a, b []float64) {
	for i, x := range a {
		if i >= len(dst) {
			return
		}

		if x == 0 {
			continue
		}

		seg := dst[i:min(len(dst), i+len(b))]
		for j := range seg {
			seg[j] += x * b[j]
		}
	}
}

// Convolve returns the full convolution, in the time domain when the shorter
// operand has at most 64 samples and by FFT overlap-add otherwise.
func Convolve(a, b []float64) ([]float64, error) {
	return ConvolveMode(a, b, ModeFull)
}

// ConvolveMode returns the part of a*b selected by mode, measured against a.
func ConvolveMode(a, b []float64, mode Mode) ([]float64, error) {
	if err := check(a, b); err != nil {
		return nil, err
	}

	n := len(a) + len(b) - 1
	if mode == ModeHead {
		n = len(a)
	}

	sig, ker := a, b
	if len(ker) > len(sig) {
		sig, ker = ker, sig
	}

	if len(ker) <= directMaxKernel {
		out := make([]float64, n)
		directInto(out, sig, ker)

		return out, nil
	}

	oa, err := NewOverlapAdd(ker, 0)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	if err := oa.convolveInto(out, sig); err != nil {
		return nil, err
	}

	return out, nil
}

func check(a, b []float64) error {
	switch {
	case len(a) == 0:
		return ErrEmptyInput
	case len(b) == 0:
		return ErrEmptyKernel
	}

	return nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
