//go:build !fastmath

package reverb

import "math"

func envelopeExp(x float64) float64 {
	return math.Exp(x)
}
