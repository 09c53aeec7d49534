package summary

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/cwbudde/algo-remix/dsp/core"
	"github.com/cwbudde/algo-remix/internal/testutil"
)

func TestOfSine(t *testing.T) {
	sig := core.Signal{Samples: testutil.Sine(1000, 48000, 0.5, 48000), SampleRate: 48000}
	s := Of(sig)

	if s.Samples != 48000 || s.Duration != time.Second {
		t.Fatalf("Samples = %d, Duration = %v", s.Samples, s.Duration)
	}

	checks := []struct {
		name      string
		got, want float64
		tol       float64
	}{
		{"peak dB", s.PeakDB, -6.02, 0.01},
		{"rms dB", s.RMSDB, -9.03, 0.01},
		{"crest dB", s.CrestDB, 3.01, 0.01},
		{"dc", s.DC, 0, 1e-9},
		{"zcr", s.ZeroCrossingRate(), 2000, 5},
	}

	for _, c := range checks {
		if math.Abs(c.got-c.want) > c.tol {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if !strings.Contains(s.String(), "48000 Hz") {
		t.Fatalf("String() = %q", s.String())
	}
}

func TestOfSilence(t *testing.T) {
	tests := []struct {
		name string
		sig  core.Signal
	}{
		{"empty", core.Signal{SampleRate: 44100}},
		{"zeros", core.Signal{Samples: make([]float64, 4410), SampleRate: 44100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Of(tt.sig)
			if !math.IsInf(s.PeakDB, -1) || !math.IsInf(s.RMSDB, -1) || !math.IsInf(s.Loudness, -1) {
				t.Fatalf("got %+v, want -Inf levels", s)
			}
		})
	}
}

func TestLoudnessSine(t *testing.T) {
	// A full-scale 1 kHz sine reads about -3.03 LUFS through RBJ K-weighting.
	sig := testutil.Sine(1000, 48000, 1, 4*48000)

	if got := Loudness(sig, 48000); math.Abs(got+3.031) > 0.2 {
		t.Fatalf("Loudness() = %.3f LUFS, want -3.03", got)
	}
}

func TestLoudnessScalesWithLevel(t *testing.T) {
	loud := Loudness(testutil.Sine(1000, 48000, 1, 48000), 48000)
	quiet := Loudness(testutil.Sine(1000, 48000, 0.1, 48000), 48000)

	if d := loud - quiet; math.Abs(d-20) > 0.05 {
		t.Fatalf("level difference = %.3f LU, want 20", d)
	}
}

func TestLoudnessGatesQuietTail(t *testing.T) {
	high := testutil.Sine(1000, 48000, 1, 10*48000)
	low := testutil.Sine(1000, 48000, 0.0001, 10*48000)

	alone := Loudness(high, 48000)
	both := Loudness(append(append([]float64{}, high...), low...), 48000)

	if math.Abs(alone-both) > 0.1 {
		t.Fatalf("gated loudness %.3f differs from %.3f", both, alone)
	}
}

func TestLoudnessShortInput(t *testing.T) {
	got := Loudness(testutil.Sine(1000, 48000, 1, 1000), 48000)
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Fatalf("Loudness() = %v for a short tone", got)
	}
}
