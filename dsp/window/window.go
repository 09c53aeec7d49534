// Package window generates the analysis/synthesis windows used by the
// short-time spectral engines.
package window

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeKaiser
)

const defaultKaiserBeta = 8.6

var errMismatchedLength = errors.New("window: samples and coefficients must have same length")

// cosineSum holds a_k for w(x) = sum a_k cos(2*pi*k*x), x in [0, 1].
var cosineSum = map[Type][]float64{
	TypeRectangular: {1},
	TypeHann:        {0.5, -0.5},
	TypeHamming:     {0.54, -0.46},
	TypeBlackman:    {0.42, -0.5, 0.08},
}

type config struct {
	beta     float64
	periodic bool
}

// Option configures Generate and Apply.
type Option func(*config)

// WithBeta sets the Kaiser shape parameter. Negative values are ignored.
func WithBeta(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.beta = v
		}
	}
}

// WithPeriodic selects the DFT-even form used for STFT framing: the window
// is sampled over length+1 points and the last one dropped.
func WithPeriodic() Option {
	return func(c *config) { c.periodic = true }
}

// Generate returns length coefficients of window t, or nil for length <= 0.
// Unknown types are rectangular.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := config{beta: defaultKaiserBeta}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	span := float64(length - 1)
	if cfg.periodic {
		span = float64(length)
	}

	w := make([]float64, length)
	if span == 0 {
		w[0] = 1
		return w
	}

	coeffs, ok := cosineSum[t]
	if !ok && t != TypeKaiser {
		coeffs = cosineSum[TypeRectangular]
	}

	for i := range w {
		x := float64(i) / span
		if t == TypeKaiser {
			w[i] = kaiser(x, cfg.beta)
			continue
		}

		for k, a := range coeffs {
			w[i] += a * math.Cos(2*math.Pi*float64(k)*x)
		}
	}

	return w
}

// Apply multiplies buf in place by window t.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) > 0 {
		vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
	}
}

// ApplyCoefficients writes samples*coeffs into dst. dst may alias samples.
func ApplyCoefficients(dst, samples, coeffs []float64) error {
	if len(samples) != len(coeffs) || len(dst) != len(samples) {
		return errMismatchedLength
	}

	vecmath.MulBlock(dst, samples, coeffs)

	return nil
}

// OverlapGain returns the mean per-sample sum of w^2 when coeffs are
// overlap-added every hop samples; weighted overlap-add divides by it.
func OverlapGain(coeffs []float64, hop int) float64 {
	if len(coeffs) == 0 || hop <= 0 {
		return 0
	}

	var sum float64
	for _, c := range coeffs {
		sum += c * c
	}

	return sum / float64(hop)
}

func kaiser(x, beta float64) float64 {
	if beta <= 0 {
		return 1
	}

	r := 2*x - 1

	return besselI0(beta*math.Sqrt(math.Max(0, 1-r*r))) / besselI0(beta)
}

func besselI0(x float64) float64 {
	y := x * x / 4
	sum, term := 1.0, 1.0

	for k := 1.0; k < 100; k++ {
		term *= y / (k * k)
		sum += term

		if term < 1e-16*sum {
			break
		}
	}

	return sum
}
