// Package stretch changes the duration of a mono buffer without changing its
// pitch, using an STFT phase vocoder.
//
// [Stretch] is the one-shot entry point. A [Stretcher] owns the FFT plan and
// scratch buffers and can be reused across calls by a single goroutine.
package stretch
