// Package interp provides fractional-position interpolation used when
// re-reading a buffer at a non-integer speed.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear2]:  2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite
//
// [ReadAt] and [Stretch] apply either method over a whole buffer with
// clamped edge handling.
package interp
