package pitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-remix/dsp/core"
	"github.com/cwbudde/algo-remix/dsp/effects/stretch"
	"github.com/cwbudde/algo-remix/dsp/interp"
	"github.com/cwbudde/algo-remix/dsp/resample"
)

type config struct {
	interp      Interpolation
	quality     resample.Quality
	stretchOpts []stretch.Option
}

// Option configures Shift.
type Option func(*config)

// WithInterpolation selects the duration-restoring resampler.
func WithInterpolation(i Interpolation) Option {
	return func(c *config) { c.interp = i }
}

// WithResampleQuality sets the polyphase filter quality.
func WithResampleQuality(q resample.Quality) Option {
	return func(c *config) { c.quality = q }
}

// WithStretchOptions forwards options to the underlying time stretcher.
func WithStretchOptions(opts ...stretch.Option) Option {
	return func(c *config) { c.stretchOpts = append(c.stretchOpts, opts...) }
}

// Factor returns the frequency ratio 2^(semitones/12).
func Factor(semitones float64) float64 {
	return math.Pow(2, semitones/12)
}

// Shift raises (positive) or lowers (negative) the pitch of in by semitones.
// The result always has len(in) samples. semitones == 0 returns a copy.
//
// The realized factor is Hs/Ha, the synthesis hop ratio of the stretcher,
// which quantizes the requested factor to 1/Ha.
func Shift(in []float64, sampleRate, semitones float64, opts ...Option) ([]float64, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("pitch: sample rate must be positive and finite, got %v: %w",
			sampleRate, core.ErrInvalidParameter)
	}

	if !core.IsFinite(semitones) {
		return nil, fmt.Errorf("pitch: semitones must be finite, got %v: %w",
			semitones, core.ErrInvalidParameter)
	}

	cfg := config{quality: resample.QualityBalanced}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	if semitones == 0 || len(in) == 0 {
		return core.Clone(in), nil
	}

	s, err := stretch.New(cfg.stretchOpts...)
	if err != nil {
		return nil, err
	}

	ha := s.AnalysisHop()
	hs := s.SynthesisHop(1 / Factor(semitones))

	if hs == ha {
		return core.Clone(in), nil
	}

	stretched, err := s.Render(in, hs)
	if err != nil {
		return nil, err
	}

	stretched = core.FitLength(stretched, int(math.Round(float64(len(in))*float64(hs)/float64(ha))))

	var out []float64

	switch cfg.interp {
	case InterpCubic:
		out = interp.Stretch(stretched, len(in), interp.ModeHermite)
	case InterpLinear:
		out = interp.Stretch(stretched, len(in), interp.ModeLinear)
	default:
		out, err = resample.ResampleAligned(stretched, ha, hs, resample.WithQuality(cfg.quality))
		if err != nil {
			return nil, fmt.Errorf("pitch: resampling failed: %w", err)
		}
	}

	return core.FitLength(out, len(in)), nil
}
