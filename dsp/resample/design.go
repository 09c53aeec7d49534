package resample

import (
	"math"

	"github.com/cwbudde/algo-remix/dsp/window"
)

// prototype returns a Kaiser-windowed sinc lowpass of n taps (n odd) with
// cutoff fc in cycles per upsampled sample, scaled so its taps sum to gain.
func prototype(n int, fc, beta, gain float64) []float64 {
	h := window.Generate(window.TypeKaiser, n, window.WithBeta(beta))
	mid := (n - 1) / 2

	var sum float64

	for i := range h {
		x := 2 * fc * float64(i-mid)

		s := 1.0
		if x != 0 {
			s = math.Sin(math.Pi*x) / (math.Pi * x)
		}

		h[i] *= 2 * fc * s
		sum += h[i]
	}

	for i := range h {
		h[i] *= gain / sum
	}

	return h
}

// rateRatio returns up/down with up/down ≈ outRate/inRate.
func rateRatio(inRate, outRate float64, maxDen int) (up, down int) {
	if inRate == math.Trunc(inRate) && outRate == math.Trunc(outRate) {
		a, b := int(outRate), int(inRate)
		g := gcd(a, b)

		if b/g <= maxDen {
			return a / g, b / g
		}
	}

	return continuedFraction(outRate/inRate, maxDen)
}

// continuedFraction finds the best rational approximation of v whose
// denominator does not exceed maxDen.
func continuedFraction(v float64, maxDen int) (num, den int) {
	h0, h1 := 0, 1
	k0, k1 := 1, 0
	x := v

	for {
		a := math.Floor(x)
		h2 := int(a)*h1 + h0
		k2 := int(a)*k1 + k0

		if k2 > maxDen {
			break
		}

		h0, h1 = h1, h2
		k0, k1 = k1, k2

		frac := x - a
		if frac < 1e-12 {
			break
		}

		x = 1 / frac
	}

	if k1 == 0 {
		return 1, 1
	}

	return h1, k1
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	if a < 0 {
		return -a
	}

	return a
}
