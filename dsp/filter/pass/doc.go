// Package pass applies fixed-cutoff, zero-phase Butterworth low- and
// highpass filters to whole buffers.
//
// Filters are order 4, built from two RBJ sections (see dsp/filter/design),
// and run forward then backward so the output has no phase shift relative
// to the input. Out-of-range cutoffs are a no-op.
package pass
