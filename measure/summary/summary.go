// Package summary reports level and loudness statistics for a rendered
// signal, as printed by the remix CLI after processing a file.
package summary

import (
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/algo-remix/dsp/core"
)

// Summary holds time-domain statistics and integrated loudness of a mono
// signal. dB fields are -Inf for silence.
type Summary struct {
	Samples       int
	SampleRate    int
	Duration      time.Duration
	DC            float64
	Peak          float64
	PeakDB        float64
	RMS           float64
	RMSDB         float64
	CrestDB       float64
	ZeroCrossings int
	Loudness      float64 // LUFS
}

// Of computes the summary of sig in one pass plus a loudness pass.
func Of(sig core.Signal) Summary {
	s := Summary{
		Samples:    sig.Len(),
		SampleRate: sig.SampleRate,
		Duration:   sig.Duration(),
		PeakDB:     math.Inf(-1),
		RMSDB:      math.Inf(-1),
		Loudness:   math.Inf(-1),
	}

	n := len(sig.Samples)
	if n == 0 {
		return s
	}

	var sum, sumSq float64

	for i, x := range sig.Samples {
		sum += x
		sumSq += x * x

		if a := math.Abs(x); a > s.Peak {
			s.Peak = a
		}

		if i > 0 && sig.Samples[i-1]*x < 0 {
			s.ZeroCrossings++
		}
	}

	s.DC = sum / float64(n)
	s.RMS = math.Sqrt(sumSq / float64(n))
	s.PeakDB = ampToDB(s.Peak)
	s.RMSDB = ampToDB(s.RMS)

	if s.RMS > 0 {
		s.CrestDB = ampToDB(s.Peak / s.RMS)
	}

	if sig.SampleRate > 0 {
		s.Loudness = Loudness(sig.Samples, float64(sig.SampleRate))
	}

	return s
}

// ZeroCrossingRate returns crossings per second, a rough brightness cue.
func (s Summary) ZeroCrossingRate() float64 {
	if s.Duration <= 0 {
		return 0
	}

	return float64(s.ZeroCrossings) / s.Duration.Seconds()
}

func (s Summary) String() string {
	return fmt.Sprintf("%s @ %d Hz, peak %.2f dBFS, rms %.2f dBFS, crest %.2f dB, %.1f LUFS",
		s.Duration.Round(time.Millisecond), s.SampleRate, s.PeakDB, s.RMSDB, s.CrestDB, s.Loudness)
}

func ampToDB(v float64) float64 { return core.LinearToDB(math.Abs(v)) }
