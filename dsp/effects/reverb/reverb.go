package reverb

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/cwbudde/algo-remix/dsp/core"
)

type config struct {
	rng   *rand.Rand
	decay float64
}

// Option configures Apply.
type Option func(*config)

// WithRand sets the random source for IR generation. The source is consumed
// and must not be shared with other goroutines.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) { c.rng = rng }
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithDecay overrides DefaultDecay.
func WithDecay(decay float64) Option {
	return func(c *config) { c.decay = decay }
}

// Apply adds synthetic reverb to in. wet is the wet proportion (values above 1
// are clamped, values <= 0 return a copy). irDuration is the impulse response
// length in seconds. Without WithRand or WithSeed a time-seeded source is used.
//
// The result has len(in) samples and a peak magnitude below 1.
func Apply(in []float64, sampleRate, wet, irDuration float64, opts ...Option) ([]float64, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("reverb: sample rate must be positive and finite, got %v: %w",
			sampleRate, core.ErrInvalidParameter)
	}

	if math.IsNaN(wet) {
		return nil, fmt.Errorf("reverb: wet level is NaN: %w", core.ErrInvalidParameter)
	}

	if wet <= 0 {
		return core.Clone(in), nil
	}

	cfg := config{decay: DefaultDecay}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	ir, err := GenerateIR(sampleRate, irDuration, cfg.decay, cfg.rng)
	if err != nil {
		return nil, err
	}

	r, err := NewConvolutionReverb(ir)
	if err != nil {
		return nil, err
	}

	r.SetWet(wet)

	return r.Process(in)
}
