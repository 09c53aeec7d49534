package mood

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/cwbudde/algo-remix/dsp/core"
	"github.com/cwbudde/algo-remix/dsp/effects/pitch"
	"github.com/cwbudde/algo-remix/dsp/resample"
)

// tempoEpsilon is the distance from 1 below which a tempo control is skipped.
const tempoEpsilon = 1e-4

type config struct {
	rng      *rand.Rand
	registry *Registry
	interp   pitch.Interpolation
	quality  resample.Quality
}

// Option configures Apply and ApplyControls.
type Option func(*config)

// WithRand sets the random source used by reverb steps.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) { c.rng = rng }
}

// WithSeed seeds a private random source used by reverb steps.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRegistry replaces the built-in presets.
func WithRegistry(r *Registry) Option {
	return func(c *config) { c.registry = r }
}

// WithInterpolation selects the resampler used by pitch steps.
func WithInterpolation(i pitch.Interpolation) Option {
	return func(c *config) { c.interp = i }
}

// WithResampleQuality sets the polyphase filter quality of pitch steps.
func WithResampleQuality(q resample.Quality) Option {
	return func(c *config) { c.quality = q }
}

var defaultRegistry = DefaultRegistry()

func newConfig(opts []Option) config {
	cfg := config{registry: defaultRegistry, quality: resample.QualityBalanced}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if cfg.registry == nil {
		cfg.registry = defaultRegistry
	}

	return cfg
}

// Apply runs the preset registered under name on in and returns a new buffer.
// Unknown names and empty presets return a copy. A non-empty preset ends by
// scaling the result down to unit peak if it exceeds 1.
func Apply(in []float64, sampleRate float64, name string, opts ...Option) ([]float64, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("mood: sample rate must be positive and finite, got %v: %w",
			sampleRate, core.ErrInvalidParameter)
	}

	cfg := newConfig(opts)

	p, ok := cfg.registry.Lookup(name)
	if !ok || len(p.Steps) == 0 {
		return core.Clone(in), nil
	}

	return run(in, p, cfg.env(sampleRate))
}

// Run applies p directly, bypassing the registry.
func Run(in []float64, sampleRate float64, p Preset, opts ...Option) ([]float64, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("mood: sample rate must be positive and finite, got %v: %w",
			sampleRate, core.ErrInvalidParameter)
	}

	if len(p.Steps) == 0 {
		return core.Clone(in), nil
	}

	cfg := newConfig(opts)

	return run(in, p, cfg.env(sampleRate))
}

func (c config) env(sampleRate float64) runEnv {
	return runEnv{sampleRate: sampleRate, rng: c.rng, interp: c.interp, quality: c.quality}
}

func run(in []float64, p Preset, env runEnv) ([]float64, error) {
	out := in

	for i, st := range p.Steps {
		next, err := st.apply(out, env)
		if err != nil {
			return nil, fmt.Errorf("mood %s: step %d %s: %w", p.Name, i, st, err)
		}

		out = next
	}

	core.LimitPeak(out)

	return out, nil
}

// Controls are caller-supplied adjustments applied before a mood.
type Controls struct {
	Tempo float64 // rate multiplier; 1 keeps the duration
	Pitch float64 // semitones
}

// IsIdentity reports whether c leaves the signal unchanged.
func (c Controls) IsIdentity() bool {
	return c.tempoIsIdentity() && c.Pitch == 0
}

func (c Controls) tempoIsIdentity() bool {
	return math.Abs(c.Tempo-1) < tempoEpsilon
}

// ApplyControls time-stretches by c.Tempo and then pitch-shifts by c.Pitch.
// Each stage is skipped at its identity value. A Tempo that is not positive
// and finite, zero included, yields core.ErrInvalidParameter.
func ApplyControls(in []float64, sampleRate float64, c Controls, opts ...Option) ([]float64, error) {
	var steps []Step
	if !c.tempoIsIdentity() {
		steps = append(steps, Stretch(c.Tempo))
	}

	if c.Pitch != 0 {
		steps = append(steps, Pitch(c.Pitch))
	}

	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("mood: sample rate must be positive and finite, got %v: %w",
			sampleRate, core.ErrInvalidParameter)
	}

	if len(steps) == 0 {
		return core.Clone(in), nil
	}

	cfg := newConfig(opts)
	env := cfg.env(sampleRate)

	out := in

	for _, st := range steps {
		next, err := st.apply(out, env)
		if err != nil {
			return nil, fmt.Errorf("controls: %s: %w", st, err)
		}

		out = next
	}

	return out, nil
}
