package reverb

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-remix/dsp/core"
)

// DefaultDecay is the exponent reached by the IR envelope at its last sample.
const DefaultDecay = 3.0

// GenerateIR returns max(1, round(sampleRate*duration)) samples of Gaussian
// noise shaped by exp(-decay*i/(length-1)) and scaled to unit peak.
func GenerateIR(sampleRate, duration, decay float64, rng *rand.Rand) ([]float64, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("reverb: sample rate must be positive and finite, got %v: %w",
			sampleRate, core.ErrInvalidParameter)
	}

	if !core.IsFinitePositive(duration) {
		return nil, fmt.Errorf("reverb: IR duration must be positive and finite, got %v: %w",
			duration, core.ErrInvalidParameter)
	}

	if !core.IsFinite(decay) {
		return nil, fmt.Errorf("reverb: decay must be finite, got %v: %w", decay, core.ErrInvalidParameter)
	}

	if rng == nil {
		return nil, fmt.Errorf("reverb: nil random source: %w", core.ErrInvalidParameter)
	}

	n := max(1, int(math.Round(sampleRate*duration)))
	span := float64(max(1, n-1))

	ir := make([]float64, n)
	for i := range ir {
		ir[i] = rng.NormFloat64() * envelopeExp(-decay*float64(i)/span)
	}

	return core.PeakNormalize(ir, core.NormalizeEpsilon), nil
}
