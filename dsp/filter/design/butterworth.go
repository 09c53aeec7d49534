package design

import (
	"math"

	"github.com/cwbudde/algo-remix/dsp/filter/biquad"
)

// ButterworthLP designs a lowpass Butterworth cascade from RBJ sections with
// Butterworth Qs. The bilinear transform pre-warps the response at freq.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || !ValidCutoff(freq, sampleRate) {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, Lowpass(freq, butterworthQ(order, i), sampleRate))
	}

	if order%2 != 0 {
		sections = append(sections, firstOrderLP(freq, sampleRate))
	}

	return sections
}

// ButterworthHP designs a highpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || !ValidCutoff(freq, sampleRate) {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, Highpass(freq, butterworthQ(order, i), sampleRate))
	}

	if order%2 != 0 {
		sections = append(sections, firstOrderHP(freq, sampleRate))
	}

	return sections
}

// butterworthQ returns the quality factor of biquad section index
// (0 .. order/2-1) of an order-N Butterworth prototype.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return defaultQ
	}

	return 1 / (2 * s)
}

func firstOrderLP(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}

func firstOrderHP(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}
}
