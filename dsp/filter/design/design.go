package design

import (
	"math"

	"github.com/cwbudde/algo-remix/dsp/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

// rbj carries the intermediate terms shared by the RBJ cookbook formulas.
type rbj struct {
	cos, alpha float64
}

func newRBJ(freq, q, sampleRate float64) (rbj, bool) {
	if !ValidCutoff(freq, sampleRate) {
		return rbj{}, false
	}

	if !(q > 0) || math.IsInf(q, 0) {
		q = defaultQ
	}

	sin, cos := math.Sincos(2 * math.Pi * freq / sampleRate)

	return rbj{cos: cos, alpha: sin / (2 * q)}, true
}

// section divides every term by a0. A degenerate a0 gives zero coefficients.
func section(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	inv := 1 / a0

	return biquad.Coefficients{B0: b0 * inv, B1: b1 * inv, B2: b2 * inv, A1: a1 * inv, A2: a2 * inv}
}

// Lowpass returns a second-order lowpass at freq Hz. A q that is not positive
// falls back to 1/sqrt(2); an unusable freq gives zero coefficients.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	p, ok := newRBJ(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	k := (1 - p.cos) / 2

	return section(k, 2*k, k, 1+p.alpha, -2*p.cos, 1-p.alpha)
}

// Highpass is the mirror of Lowpass.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	p, ok := newRBJ(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	k := (1 + p.cos) / 2

	return section(k, -2*k, k, 1+p.alpha, -2*p.cos, 1-p.alpha)
}

// HighShelf boosts (or cuts, for negative gainDB) everything above freq while
// leaving DC at unity.
func HighShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	p, ok := newRBJ(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	a := math.Pow(10, gainDB/40)
	ap, am := a+1, a-1
	s := 2 * math.Sqrt(a) * p.alpha

	return section(
		a*(ap+am*p.cos+s),
		-2*a*(am+ap*p.cos),
		a*(ap+am*p.cos-s),
		ap-am*p.cos+s,
		2*(am-ap*p.cos),
		ap-am*p.cos-s,
	)
}

// ValidCutoff reports whether 0 < freq < sampleRate/2 with both values finite.
func ValidCutoff(freq, sampleRate float64) bool {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return false
	}

	return freq > 0 && freq < sampleRate/2
}
