package biquad

import (
	"slices"

	"github.com/cwbudde/algo-remix/dsp/core"
)

// PadLen returns the number of samples FiltFilt mirrors onto each end of the
// buffer: three times the transfer-function length (order + 1).
func (c *Chain) PadLen() int {
	return 3 * (c.Order() + 1)
}

// FiltFilt filters x forward and then backward through the cascade, giving a
// zero-phase response with squared magnitude. The input is not modified.
//
// Edges are handled by odd (point-symmetric) extension of PadLen samples and
// by starting each pass from the steady state for its first sample. Buffers
// no longer than PadLen are returned as an unfiltered copy.
//
// The chain state is reset on return.
func (c *Chain) FiltFilt(x []float64) []float64 {
	n := len(x)
	pad := c.PadLen()

	if n <= pad || len(c.sections) == 0 {
		return core.Clone(x)
	}

	ext := make([]float64, n+2*pad)
	for i := range pad {
		ext[i] = 2*x[0] - x[pad-i]
		ext[pad+n+i] = 2*x[n-1] - x[n-2-i]
	}

	copy(ext[pad:], x)

	c.Reset()
	c.SettleTo(ext[0])
	c.ProcessBlock(ext)

	slices.Reverse(ext)
	c.Reset()
	c.SettleTo(ext[0])
	c.ProcessBlock(ext)
	slices.Reverse(ext)

	c.Reset()

	out := make([]float64, n)
	copy(out, ext[pad:pad+n])

	return out
}

// Polynomial expands the cascade into transfer-function coefficients
// b (numerator) and a (denominator) in ascending powers of z^-1, with
// a[0] == 1. The chain gain is folded into b.
func (c *Chain) Polynomial() (b, a []float64) {
	b = []float64{c.gain}
	a = []float64{1}

	for i := range c.sections {
		s := c.sections[i].Coefficients
		b = polyMul(b, []float64{s.B0, s.B1, s.B2})
		a = polyMul(a, []float64{1, s.A1, s.A2})
	}

	return b, a
}

func polyMul(p, q []float64) []float64 {
	out := make([]float64, len(p)+len(q)-1)
	for i, x := range p {
		for j, y := range q {
			out[i+j] += x * y
		}
	}

	return out
}
