// Package resample converts whole buffers between sample rates with a
// Kaiser-windowed polyphase FIR.
//
// The prototype filter has odd length, so its delay is an integer number of
// upsampled samples and Process can start each output at the delay-adjusted
// position: output sample m is aligned with input time m*down/up and the
// result has exactly round(n*up/down) samples. Pitch shifting and decoder
// rate conversion both depend on that alignment.
//
//	quality   taps/branch   stopband at 2:1
//	fast      16            ~60 dB
//	balanced  32            ~80 dB
//	best      64            ~110 dB
package resample
