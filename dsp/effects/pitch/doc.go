// Package pitch shifts the pitch of a mono buffer by a number of semitones
// while keeping its duration.
//
// The shift is a phase-vocoder time stretch by the pitch factor followed by a
// resampling pass back to the original length. The resampler is selectable:
// polyphase FIR (default), cubic Hermite, or linear.
package pitch
