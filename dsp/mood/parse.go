package mood

import (
	"fmt"

	"github.com/cwbudde/algo-remix/dsp/core"
	"github.com/cwbudde/algo-remix/dsp/effects/saturate"
)

// PresetSpec is the serialized form of a Preset.
type PresetSpec struct {
	Name  string     `yaml:"name"  json:"name"`
	Steps []StepSpec `yaml:"steps" json:"steps"`
}

// StepSpec is the serialized form of a Step.
type StepSpec struct {
	Effect     string  `yaml:"effect"                json:"effect"`
	Rate       float64 `yaml:"rate,omitempty"        json:"rate,omitempty"`
	Semitones  float64 `yaml:"semitones,omitempty"   json:"semitones,omitempty"`
	Wet        float64 `yaml:"wet,omitempty"         json:"wet,omitempty"`
	IRDuration float64 `yaml:"ir_duration,omitempty" json:"irDuration,omitempty"`
	Decay      float64 `yaml:"decay,omitempty"       json:"decay,omitempty"`
	Cutoff     float64 `yaml:"cutoff,omitempty"      json:"cutoff,omitempty"`
	Drive      float64 `yaml:"drive,omitempty"       json:"drive,omitempty"`
}

// ParsePreset validates spec and builds a Preset. A saturate step without a
// drive uses saturate.DefaultDrive.
func ParsePreset(spec PresetSpec) (Preset, error) {
	name := NormalizeName(spec.Name)
	if name == "" {
		return Preset{}, fmt.Errorf("mood: preset name is empty: %w", core.ErrInvalidParameter)
	}

	steps := make([]Step, 0, len(spec.Steps))

	for i, ss := range spec.Steps {
		st, err := parseStep(ss)
		if err != nil {
			return Preset{}, fmt.Errorf("mood %s: step %d: %w", name, i, err)
		}

		steps = append(steps, st)
	}

	return Preset{Name: name, Steps: steps}, nil
}

func parseStep(ss StepSpec) (Step, error) {
	switch Effect(NormalizeName(ss.Effect)) {
	case EffectStretch:
		if !core.IsFinitePositive(ss.Rate) {
			return Step{}, invalid("stretch rate", ss.Rate)
		}

		return Stretch(ss.Rate), nil
	case EffectPitch:
		if !core.IsFinite(ss.Semitones) {
			return Step{}, invalid("pitch semitones", ss.Semitones)
		}

		return Pitch(ss.Semitones), nil
	case EffectReverb:
		if !core.IsFinite(ss.Wet) || ss.Wet < 0 {
			return Step{}, invalid("reverb wet", ss.Wet)
		}

		if !core.IsFinitePositive(ss.IRDuration) {
			return Step{}, invalid("reverb ir_duration", ss.IRDuration)
		}

		if !core.IsFinite(ss.Decay) || ss.Decay < 0 {
			return Step{}, invalid("reverb decay", ss.Decay)
		}

		st := Reverb(ss.Wet, ss.IRDuration)
		st.Decay = ss.Decay

		return st, nil
	case EffectHighpass, EffectLowpass:
		if !core.IsFinitePositive(ss.Cutoff) {
			return Step{}, invalid(ss.Effect+" cutoff", ss.Cutoff)
		}

		return Step{Effect: Effect(NormalizeName(ss.Effect)), Cutoff: ss.Cutoff}, nil
	case EffectSaturate:
		drive := ss.Drive
		if drive == 0 {
			drive = saturate.DefaultDrive
		}

		if !core.IsFinitePositive(drive) {
			return Step{}, invalid("saturate drive", drive)
		}

		return Saturate(drive), nil
	default:
		return Step{}, fmt.Errorf("%w: %q", ErrUnknownEffect, ss.Effect)
	}
}

func invalid(what string, v float64) error {
	return fmt.Errorf("%s %v: %w", what, v, core.ErrInvalidParameter)
}
