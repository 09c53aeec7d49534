package biquad

import (
	"math"
	"math/cmplx"
)

// Chain cascades sections in series behind an input gain. Butterworth
// designs of order > 2 run as a Chain.
type Chain struct {
	sections []Section
	gain     float64
}

// ChainOption configures NewChain.
type ChainOption func(*Chain)

// WithGain scales the input before the first section. The default is 1.
func WithGain(g float64) ChainOption {
	return func(c *Chain) { c.gain = g }
}

// NewChain builds a cascade at rest with one section per coefficient set.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs)), gain: 1}
	for i, k := range coeffs {
		c.sections[i].Coefficients = k
	}

	for _, o := range opts {
		if o != nil {
			o(c)
		}
	}

	return c
}

// Order is two per section.
func (c *Chain) Order() int { return 2 * len(c.sections) }

// Gain returns the input gain.
func (c *Chain) Gain() float64 { return c.gain }

// ProcessSample runs x through every section.
func (c *Chain) ProcessSample(x float64) float64 {
	y := c.gain * x
	for i := range c.sections {
		y = c.sections[i].ProcessSample(y)
	}

	return y
}

// ProcessBlock filters buf in place, one section at a time.
func (c *Chain) ProcessBlock(buf []float64) {
	if c.gain != 1 {
		for i := range buf {
			buf[i] *= c.gain
		}
	}

	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset puts every section at rest.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// State snapshots the delay lines, one entry per section.
func (c *Chain) State() [][2]float64 {
	st := make([][2]float64, 0, len(c.sections))
	for i := range c.sections {
		st = append(st, c.sections[i].State())
	}

	return st
}

// SetState loads delay lines captured by State.
func (c *Chain) SetState(st [][2]float64) {
	for i := range min(len(st), len(c.sections)) {
		c.sections[i].SetState(st[i])
	}
}

// SettleTo loads the state the cascade reaches under a constant input x, so
// that a block starting at level x has no start-up transient.
func (c *Chain) SettleTo(x float64) {
	u := c.gain * x
	for i := range c.sections {
		s := &c.sections[i]
		s.SetState(s.steadyState(u))
		u *= s.DCGain()
	}
}

// Response evaluates the cascade, gain included, at freqHz.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(c.gain, 0)
	for _, s := range c.sections {
		h *= s.Response(freqHz, sampleRate)
	}

	return h
}

// MagnitudeDB returns |H| at freqHz in dB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// ImpulseResponse returns the first n samples of the cascade's impulse
// response. The chain itself is not touched.
func (c *Chain) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	tmp := &Chain{sections: make([]Section, len(c.sections)), gain: c.gain}
	for i, s := range c.sections {
		tmp.sections[i].Coefficients = s.Coefficients
	}

	h := make([]float64, n)
	h[0] = 1
	tmp.ProcessBlock(h)

	return h
}
