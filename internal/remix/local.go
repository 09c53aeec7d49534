package remix

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-remix/dsp/core"
	"github.com/cwbudde/algo-remix/dsp/effects/pitch"
	"github.com/cwbudde/algo-remix/dsp/mood"
	"github.com/cwbudde/algo-remix/dsp/resample"
	"github.com/cwbudde/algo-remix/internal/audio"
	"github.com/cwbudde/algo-remix/internal/config"
)

// Local runs the mood pipeline in-process.
type Local struct {
	registry   *mood.Registry
	sampleRate int
	interp     pitch.Interpolation
	quality    resample.Quality
	bitDepth   int
}

// NewLocal builds the local pipeline from cfg.Remix and cfg.Moods.
func NewLocal(cfg config.Config) (*Local, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, fmt.Errorf("remix: %w", err)
	}

	return &Local{
		registry:   reg,
		sampleRate: cfg.Remix.SampleRate,
		interp:     cfg.Interpolation(),
		quality:    cfg.ResampleQuality(),
		bitDepth:   audio.DefaultBitDepth,
	}, nil
}

// Remix decodes in, applies tempo, pitch and mood, and encodes the result.
// The context is checked between stages; a running stage is not interrupted.
func (l *Local) Remix(ctx context.Context, in Input, p Params) (Result, error) {
	sig, err := audio.DecodeBytes(in.Data)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrProcessing, err)
	}

	out, err := l.Process(ctx, sig, p)
	if err != nil {
		return Result{}, err
	}

	data, err := audio.EncodeBytes(out, l.bitDepth)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrProcessing, err)
	}

	return Result{WAV: data, Signal: out}, nil
}

// Process runs the DSP stages on an already decoded signal. The input is
// resampled to the configured rate first when one is set.
func (l *Local) Process(ctx context.Context, sig core.Signal, p Params) (core.Signal, error) {
	if err := p.Validate(); err != nil {
		return core.Signal{}, err
	}

	samples := sig.Samples
	rate := sig.SampleRate

	if l.sampleRate > 0 && l.sampleRate != rate {
		converted, err := resample.ConvertRate(samples, float64(rate), float64(l.sampleRate), resample.WithQuality(l.quality))
		if err != nil {
			return core.Signal{}, fmt.Errorf("%w: resample %d -> %d Hz: %w", ErrProcessing, rate, l.sampleRate, err)
		}

		samples, rate = converted, l.sampleRate
	}

	opts := []mood.Option{
		mood.WithRegistry(l.registry),
		mood.WithInterpolation(l.interp),
		mood.WithResampleQuality(l.quality),
	}
	if p.Seed != 0 {
		opts = append(opts, mood.WithSeed(p.Seed))
	}

	stages := []func([]float64) ([]float64, error){
		func(x []float64) ([]float64, error) {
			return mood.ApplyControls(x, float64(rate), mood.Controls{Tempo: p.tempo(), Pitch: p.Pitch}, opts...)
		},
		func(x []float64) ([]float64, error) {
			return mood.Apply(x, float64(rate), p.Mood, opts...)
		},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return core.Signal{}, err
		}

		next, err := stage(samples)
		if err != nil {
			return core.Signal{}, fmt.Errorf("%w: %w", ErrProcessing, err)
		}

		samples = next
	}

	return core.Signal{Samples: samples, SampleRate: rate}, nil
}
