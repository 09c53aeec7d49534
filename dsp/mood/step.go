package mood

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-remix/dsp/effects/pitch"
	"github.com/cwbudde/algo-remix/dsp/effects/reverb"
	"github.com/cwbudde/algo-remix/dsp/effects/saturate"
	"github.com/cwbudde/algo-remix/dsp/effects/stretch"
	"github.com/cwbudde/algo-remix/dsp/filter/pass"
	"github.com/cwbudde/algo-remix/dsp/resample"
)

// Effect names one stage of a preset.
type Effect string

const (
	EffectStretch  Effect = "stretch"
	EffectPitch    Effect = "pitch"
	EffectReverb   Effect = "reverb"
	EffectHighpass Effect = "highpass"
	EffectLowpass  Effect = "lowpass"
	EffectSaturate Effect = "saturate"
)

// Step is one effect with its parameters. Only the fields relevant to Effect
// are read.
type Step struct {
	Effect Effect

	Rate       float64 // stretch
	Semitones  float64 // pitch
	Wet        float64 // reverb
	IRDuration float64 // reverb, seconds
	Decay      float64 // reverb envelope; 0 means reverb.DefaultDecay
	Cutoff     float64 // highpass, lowpass; Hz
	Drive      float64 // saturate
}

// Stretch changes tempo by rate without changing pitch.
func Stretch(rate float64) Step { return Step{Effect: EffectStretch, Rate: rate} }

// Pitch shifts by semitones without changing duration.
func Pitch(semitones float64) Step { return Step{Effect: EffectPitch, Semitones: semitones} }

// Reverb adds synthetic reverb.
func Reverb(wet, irDuration float64) Step {
	return Step{Effect: EffectReverb, Wet: wet, IRDuration: irDuration}
}

// Highpass removes content below cutoff Hz.
func Highpass(cutoff float64) Step { return Step{Effect: EffectHighpass, Cutoff: cutoff} }

// Lowpass removes content above cutoff Hz.
func Lowpass(cutoff float64) Step { return Step{Effect: EffectLowpass, Cutoff: cutoff} }

// Saturate soft-clips with tanh(drive*x).
func Saturate(drive float64) Step { return Step{Effect: EffectSaturate, Drive: drive} }

func (s Step) String() string {
	switch s.Effect {
	case EffectStretch:
		return fmt.Sprintf("stretch(%g)", s.Rate)
	case EffectPitch:
		return fmt.Sprintf("pitch(%+g)", s.Semitones)
	case EffectReverb:
		return fmt.Sprintf("reverb(%g, %gs)", s.Wet, s.IRDuration)
	case EffectHighpass, EffectLowpass:
		return fmt.Sprintf("%s(%g Hz)", s.Effect, s.Cutoff)
	case EffectSaturate:
		return fmt.Sprintf("saturate(%g)", s.Drive)
	default:
		return string(s.Effect)
	}
}

// runEnv carries per-call state shared by the steps of one Apply.
type runEnv struct {
	sampleRate float64
	rng        *rand.Rand
	interp     pitch.Interpolation
	quality    resample.Quality
}

func (s Step) apply(in []float64, env runEnv) ([]float64, error) {
	switch s.Effect {
	case EffectStretch:
		return stretch.Stretch(in, s.Rate)
	case EffectPitch:
		return pitch.Shift(in, env.sampleRate, s.Semitones,
			pitch.WithInterpolation(env.interp), pitch.WithResampleQuality(env.quality))
	case EffectReverb:
		opts := []reverb.Option{reverb.WithRand(env.rng)}
		if s.Decay != 0 {
			opts = append(opts, reverb.WithDecay(s.Decay))
		}

		return reverb.Apply(in, env.sampleRate, s.Wet, s.IRDuration, opts...)
	case EffectHighpass:
		return pass.Highpass(in, env.sampleRate, s.Cutoff), nil
	case EffectLowpass:
		return pass.Lowpass(in, env.sampleRate, s.Cutoff), nil
	case EffectSaturate:
		return saturate.Tanh(in, s.Drive), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, s.Effect)
	}
}
