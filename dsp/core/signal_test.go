package core

import (
	"errors"
	"testing"
	"time"
)

func TestNewSignal(t *testing.T) {
	if _, err := NewSignal(nil, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("NewSignal(rate=0) error = %v, want ErrInvalidParameter", err)
	}

	s, err := NewSignal(make([]float64, 22050), 22050)
	if err != nil {
		t.Fatalf("NewSignal() error = %v", err)
	}

	if got := s.Duration(); got != time.Second {
		t.Fatalf("Duration() = %v, want 1s", got)
	}

	if s.Len() != 22050 {
		t.Fatalf("Len() = %d, want 22050", s.Len())
	}
}

func TestSignalCloneIsDeep(t *testing.T) {
	s := Signal{Samples: []float64{1, 2}, SampleRate: 8000}
	c := s.Clone()
	c.Samples[0] = 5

	if s.Samples[0] != 1 {
		t.Fatal("Clone() shares sample storage")
	}

	if w := s.WithSamples([]float64{3}); w.SampleRate != 8000 {
		t.Fatalf("WithSamples() sample rate = %d, want 8000", w.SampleRate)
	}
}
