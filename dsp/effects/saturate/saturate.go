// Package saturate provides memoryless soft-clip waveshaping.
package saturate

import (
	"math"

	"github.com/cwbudde/algo-remix/dsp/core"
)

// DefaultDrive is the input gain used by the energetic mood.
const DefaultDrive = 1.2

// Tanh returns tanh(drive*x) for every sample. The result is a new buffer
// bounded to (-1, 1) for finite input.
func Tanh(in []float64, drive float64) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = math.Tanh(drive * x)
	}

	return out
}

// TanhInPlace applies tanh(drive*x) to buf.
func TanhInPlace(buf []float64, drive float64) {
	for i, x := range buf {
		buf[i] = math.Tanh(drive * x)
	}
}

// HardClip returns in clamped to [-level, level].
func HardClip(in []float64, level float64) []float64 {
	level = math.Abs(level)

	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = core.Clamp(x, -level, level)
	}

	return out
}
