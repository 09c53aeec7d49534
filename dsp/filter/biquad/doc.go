// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Multiple sections are
// cascaded via [Chain] for higher-order filters.
//
// [Chain.FiltFilt] runs the cascade forward and backward over a whole buffer
// for zero-phase filtering, and [Chain.Polynomial] expands the cascade into
// its transfer-function numerator and denominator.
//
// Coefficient design lives in dsp/filter/design.
package biquad
