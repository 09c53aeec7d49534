// Package conv provides the linear convolution used by the reverb engine.
//
// [Convolve] and [ConvolveMode] pick time-domain convolution when the
// shorter operand has at most 64 samples and FFT overlap-add otherwise. A
// synthetic room impulse response is thousands of samples long, so reverb
// always runs on the FFT path.
//
//	full, err := conv.Convolve(signal, kernel)
//	head, err := conv.ConvolveMode(signal, kernel, conv.ModeHead)
//
// [ModeHead] keeps the first len(signal) samples, which is how the reverb
// keeps the output as long as its input. Blocks are only accumulated up to
// that length, so the discarded tail costs nothing.
//
// A kernel applied to many signals can be prepared once:
//
//	oa, err := conv.NewOverlapAdd(kernel, 0)
//	out, err := oa.ProcessHead(signal)
package conv
