// Package mood maps named moods to fixed chains of effects and runs them on
// mono buffers.
//
// Built-in presets are happy, sad, energetic, chill and neutral. Lookup is by
// case-insensitive, whitespace-trimmed name; an unknown name is the identity
// transform, never an error. A [Registry] can hold additional presets, for
// example ones parsed from configuration with [ParsePreset].
package mood
