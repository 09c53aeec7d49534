package pass

import (
	"github.com/cwbudde/algo-remix/dsp/core"
	"github.com/cwbudde/algo-remix/dsp/filter/biquad"
	"github.com/cwbudde/algo-remix/dsp/filter/design"
)

// Order is the Butterworth order used by Apply.
const Order = 4

// Kind selects the filter response.
type Kind int

const (
	// KindLow passes content below the cutoff.
	KindLow Kind = iota
	// KindHigh passes content above the cutoff.
	KindHigh
)

func (k Kind) String() string {
	switch k {
	case KindLow:
		return "lowpass"
	case KindHigh:
		return "highpass"
	default:
		return "unknown"
	}
}

// Design returns the second-order sections of the order-4 Butterworth filter,
// or nil when cutoff is not strictly inside (0, sampleRate/2).
func Design(sampleRate, cutoff float64, kind Kind) []biquad.Coefficients {
	switch kind {
	case KindLow:
		return design.ButterworthLP(cutoff, Order, sampleRate)
	case KindHigh:
		return design.ButterworthHP(cutoff, Order, sampleRate)
	default:
		return nil
	}
}

// Apply filters in with a zero-phase order-4 Butterworth response and returns
// a new buffer of the same length.
//
// An invalid cutoff (<= 0, >= Nyquist, or non-finite) or a buffer too short
// for edge padding returns an unmodified copy.
func Apply(in []float64, sampleRate, cutoff float64, kind Kind) []float64 {
	sections := Design(sampleRate, cutoff, kind)
	if sections == nil {
		return core.Clone(in)
	}

	return biquad.NewChain(sections).FiltFilt(in)
}

// Lowpass is Apply with KindLow.
func Lowpass(in []float64, sampleRate, cutoff float64) []float64 {
	return Apply(in, sampleRate, cutoff, KindLow)
}

// Highpass is Apply with KindHigh.
func Highpass(in []float64, sampleRate, cutoff float64) []float64 {
	return Apply(in, sampleRate, cutoff, KindHigh)
}
