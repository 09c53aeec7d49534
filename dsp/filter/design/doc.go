// Package design turns frequency targets into biquad coefficients:
// RBJ lowpass, highpass and high-shelf sections, plus Butterworth cascades
// for the remix band-pass stages.
package design
