// Package reverb adds a synthetic room to a mono buffer by convolving it with
// an exponentially decaying Gaussian-noise impulse response.
//
// The impulse response is generated fresh for every call from an explicit
// *rand.Rand, so a fixed seed gives bit-identical output. The convolution
// tail past the input length is discarded.
package reverb
