package biquad

import (
	"math"
	"math/cmplx"
)

// Coefficients of one second-order section with a0 normalized to 1:
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// DCGain returns H(1). A pole at DC yields 0.
func (c Coefficients) DCGain() float64 {
	den := 1 + c.A1 + c.A2
	if den == 0 {
		return 0
	}

	return (c.B0 + c.B1 + c.B2) / den
}

// Response evaluates H(e^jw) at freqHz.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z1 := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate)
	num := complex(c.B0, 0) + z1*(complex(c.B1, 0)+z1*complex(c.B2, 0))
	den := 1 + z1*(complex(c.A1, 0)+z1*complex(c.A2, 0))

	return num / den
}

// steadyState is the transposed-form state reached after an infinitely long
// constant input u.
func (c Coefficients) steadyState(u float64) [2]float64 {
	y := c.DCGain() * u
	d1 := c.B2*u - c.A2*y

	return [2]float64{c.B1*u - c.A1*y + d1, d1}
}

// Section runs one biquad in transposed direct form II:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Section struct {
	Coefficients

	d0, d1 float64
}

// NewSection returns a section at rest.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters buf in place.
func (s *Section) ProcessBlock(buf []float64) {
	c := s.Coefficients
	d0, d1 := s.d0, s.d1

	for i, x := range buf {
		y := c.B0*x + d0
		d0 = c.B1*x - c.A1*y + d1
		d1 = c.B2*x - c.A2*y
		buf[i] = y
	}

	s.d0, s.d1 = d0, d1
}

// Reset puts the section at rest.
func (s *Section) Reset() { s.d0, s.d1 = 0, 0 }

// State returns the delay line [d0, d1].
func (s *Section) State() [2]float64 { return [2]float64{s.d0, s.d1} }

// SetState loads the delay line.
func (s *Section) SetState(st [2]float64) { s.d0, s.d1 = st[0], st[1] }
