package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// minBlock is the smallest automatic input block.
const minBlock = 256

// OverlapAdd convolves signals with a fixed kernel by FFT: the input is cut
// into blocks, each block is multiplied with the kernel spectrum and the
// block results are summed at their offsets. The kernel spectrum is computed
// once.
//
// An OverlapAdd owns scratch buffers and is not safe for concurrent use.
type OverlapAdd struct {
	plan     *algofft.Plan[complex128]
	spectrum []complex128 // kernel FFT
	work     []complex128

	kernelLen int
	block     int
}

// NewOverlapAdd prepares a convolver for kernel. blockSize <= 0 picks the
// next power of two at or above the kernel length, but at least 256.
func NewOverlapAdd(kernel []float64, blockSize int) (*OverlapAdd, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	if blockSize <= 0 {
		blockSize = max(nextPowerOf2(len(kernel)), minBlock)
	}

	size := nextPowerOf2(blockSize + len(kernel) - 1)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("conv: FFT plan of size %d: %w", size, err)
	}

	oa := &OverlapAdd{
		plan:      plan,
		spectrum:  make([]complex128, size),
		work:      make([]complex128, size),
		kernelLen: len(kernel),
		block:     blockSize,
	}

	for i, h := range kernel {
		oa.spectrum[i] = complex(h, 0)
	}

	if err := plan.Forward(oa.spectrum, oa.spectrum); err != nil {
		return nil, fmt.Errorf("conv: kernel FFT: %w", err)
	}

	return oa, nil
}

// KernelLen returns the kernel length.
func (oa *OverlapAdd) KernelLen() int { return oa.kernelLen }

// BlockSize returns the input block length.
func (oa *OverlapAdd) BlockSize() int { return oa.block }

// FFTSize returns the transform length.
func (oa *OverlapAdd) FFTSize() int { return len(oa.work) }

// Process returns the full convolution of input with the kernel.
func (oa *OverlapAdd) Process(input []float64) ([]float64, error) {
	return oa.process(input, len(input)+oa.kernelLen-1)
}

// ProcessHead returns the first len(input) samples of the convolution.
// Blocks contribute only up to that length.
func (oa *OverlapAdd) ProcessHead(input []float64) ([]float64, error) {
	return oa.process(input, len(input))
}

func (oa *OverlapAdd) process(input []float64, n int) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	out := make([]float64, n)
	if err := oa.convolveInto(out, input); err != nil {
		return nil, err
	}

	return out, nil
}

// convolveInto adds input*kernel into dst, dropping samples past len(dst).
func (oa *OverlapAdd) convolveInto(dst, input []float64) error {
	for start := 0; start < len(input) && start < len(dst); start += oa.block {
		blk := input[start:min(start+oa.block, len(input))]

		for i := range oa.work {
			oa.work[i] = 0
		}

		for i, x := range blk {
			oa.work[i] = complex(x, 0)
		}

		if err := oa.plan.Forward(oa.work, oa.work); err != nil {
			return fmt.Errorf("conv: forward FFT: %w", err)
		}

		for i, k := range oa.spectrum {
			oa.work[i] *= k
		}

		if err := oa.plan.Inverse(oa.work, oa.work); err != nil {
			return fmt.Errorf("conv: inverse FFT: %w", err)
		}

		seg := dst[start:min(len(dst), start+len(blk)+oa.kernelLen-1)]
		for i := range seg {
			seg[i] += real(oa.work[i])
		}
	}

	return nil
}
