package reverb

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-remix/dsp/conv"
	"github.com/cwbudde/algo-remix/dsp/core"
)

// ConvolutionReverb mixes a mono signal with its convolution by a fixed
// impulse response. The IR spectrum is computed once, so one reverb can
// process many buffers; it is not safe for concurrent use.
type ConvolutionReverb struct {
	oa  *conv.OverlapAdd
	wet float64
}

// NewConvolutionReverb creates a convolution reverb from a mono IR with a
// fully dry mix.
func NewConvolutionReverb(kernel []float64) (*ConvolutionReverb, error) {
	if len(kernel) == 0 {
		return nil, errors.New("reverb: empty impulse response kernel")
	}

	oa, err := conv.NewOverlapAdd(kernel, 0)
	if err != nil {
		return nil, fmt.Errorf("reverb: %w", err)
	}

	return &ConvolutionReverb{oa: oa}, nil
}

// SetWet sets the wet proportion, clamped to [0, 1]. The dry level is 1-wet.
func (r *ConvolutionReverb) SetWet(wet float64) {
	r.wet = core.Clamp(wet, 0, 1)
}

// Wet returns the wet proportion.
func (r *ConvolutionReverb) Wet() float64 { return r.wet }

// KernelLen returns the impulse response length.
func (r *ConvolutionReverb) KernelLen() int { return r.oa.KernelLen() }

// Process returns (1-wet)*in + wet*(in * ir) truncated to len(in), divided by
// its peak plus core.NormalizeEpsilon. A zero wet level returns a copy of in.
func (r *ConvolutionReverb) Process(in []float64) ([]float64, error) {
	if r.wet <= 0 || len(in) == 0 {
		return core.Clone(in), nil
	}

	wetSig, err := r.oa.ProcessHead(in)
	if err != nil {
		return nil, fmt.Errorf("reverb: convolution: %w", err)
	}

	dry := 1 - r.wet

	mix := make([]float64, len(in))
	for i, x := range in {
		mix[i] = dry*x + r.wet*wetSig[i]
	}

	return core.PeakNormalize(mix, core.NormalizeEpsilon), nil
}
