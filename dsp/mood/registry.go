package mood

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownEffect is returned for a step whose effect name is not known.
	ErrUnknownEffect = errors.New("unknown effect")

	errDuplicatePreset = errors.New("duplicate preset")
)

// Built-in mood names.
const (
	Happy     = "happy"
	Sad       = "sad"
	Energetic = "energetic"
	Chill     = "chill"
	Neutral   = "neutral"
)

// Preset is a named, ordered chain of steps. An empty chain is the identity.
type Preset struct {
	Name  string
	Steps []Step
}

// Registry maps normalized mood names to presets.
type Registry struct {
	presets map[string]Preset
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{presets: make(map[string]Preset)}
}

// DefaultRegistry returns a new registry holding the built-in presets.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, p := range builtinPresets() {
		r.MustRegister(p)
	}

	return r
}

func builtinPresets() []Preset {
	return []Preset{
		{Name: Happy, Steps: []Step{Stretch(1.07), Pitch(1), Reverb(0.18, 0.5), Highpass(120)}},
		{Name: Sad, Steps: []Step{Stretch(0.92), Pitch(-1), Reverb(0.45, 1.0), Lowpass(6000)}},
		{Name: Energetic, Steps: []Step{Stretch(1.25), Saturate(1.2), Reverb(0.12, 0.25)}},
		{Name: Chill, Steps: []Step{Stretch(0.95), Reverb(0.3, 0.8)}},
		{Name: Neutral},
	}
}

// NormalizeName lower-cases and trims a mood name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds p. It fails on an empty or already registered name.
func (r *Registry) Register(p Preset) error {
	key := NormalizeName(p.Name)
	if key == "" {
		return errors.New("empty preset name")
	}

	if _, exists := r.presets[key]; exists {
		return fmt.Errorf("%w: %s", errDuplicatePreset, key)
	}

	r.Set(p)

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(p Preset) {
	if err := r.Register(p); err != nil {
		panic("mood registry: " + err.Error())
	}
}

// Set adds p, replacing any preset with the same normalized name.
func (r *Registry) Set(p Preset) {
	key := NormalizeName(p.Name)
	steps := make([]Step, len(p.Steps))
	copy(steps, p.Steps)

	r.presets[key] = Preset{Name: key, Steps: steps}
}

// Lookup returns the preset registered under name.
func (r *Registry) Lookup(name string) (Preset, bool) {
	p, ok := r.presets[NormalizeName(name)]
	return p, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for k := range r.presets {
		names = append(names, k)
	}

	sort.Strings(names)

	return names
}
