package core

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidParameter is wrapped by every engine that rejects a parameter
// (non-positive stretch rate, non-finite semitones, empty IR duration, ...).
var ErrInvalidParameter = errors.New("invalid parameter")

// Signal is a decoded mono buffer paired with its sample rate.
type Signal struct {
	Samples    []float64
	SampleRate int
}

// NewSignal validates sampleRate and wraps samples without copying.
func NewSignal(samples []float64, sampleRate int) (Signal, error) {
	if sampleRate <= 0 {
		return Signal{}, fmt.Errorf("%w: sample rate must be > 0: %d", ErrInvalidParameter, sampleRate)
	}
	return Signal{Samples: samples, SampleRate: sampleRate}, nil
}

// Len returns the number of samples.
func (s Signal) Len() int { return len(s.Samples) }

// Duration returns the playback length.
func (s Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(s.Samples)) / float64(s.SampleRate) * float64(time.Second))
}

// Clone returns a deep copy.
func (s Signal) Clone() Signal {
	return Signal{Samples: Clone(s.Samples), SampleRate: s.SampleRate}
}

// WithSamples returns a Signal sharing the sample rate of s.
func (s Signal) WithSamples(samples []float64) Signal {
	return Signal{Samples: samples, SampleRate: s.SampleRate}
}
