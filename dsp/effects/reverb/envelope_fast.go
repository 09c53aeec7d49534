//go:build fastmath

package reverb

import "github.com/meko-christian/algo-approx"

// envelopeExp evaluates the IR envelope with the polynomial exp approximation.
func envelopeExp(x float64) float64 {
	return approx.FastExp(x)
}
