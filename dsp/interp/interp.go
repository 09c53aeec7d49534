package interp

import "math"

// Mode selects the interpolation kernel.
type Mode int

const (
	ModeLinear Mode = iota
	ModeHermite
)

// Linear2 interpolates between x0 and x1 at t in [0,1].
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// ReadAt returns buf evaluated at fractional index pos. Indices outside the
// buffer are clamped to the first/last sample.
func ReadAt(buf []float64, pos float64, mode Mode) float64 {
	n := len(buf)
	if n == 0 {
		return 0
	}

	if pos <= 0 {
		return buf[0]
	}

	if pos >= float64(n-1) {
		return buf[n-1]
	}

	i := int(math.Floor(pos))
	t := pos - float64(i)

	if mode == ModeHermite {
		return Hermite4(t, at(buf, i-1), buf[i], at(buf, i+1), at(buf, i+2))
	}

	return Linear2(t, buf[i], buf[i+1])
}

// Stretch resamples buf to outLen samples by reading it at a constant speed
// of len(buf)/outLen source samples per output sample.
func Stretch(buf []float64, outLen int, mode Mode) []float64 {
	if outLen <= 0 {
		return []float64{}
	}

	out := make([]float64, outLen)
	if len(buf) == 0 {
		return out
	}

	speed := float64(len(buf)) / float64(outLen)
	for i := range out {
		out[i] = ReadAt(buf, float64(i)*speed, mode)
	}

	return out
}

func at(buf []float64, i int) float64 {
	if i < 0 {
		return buf[0]
	}

	if i >= len(buf) {
		return buf[len(buf)-1]
	}

	return buf[i]
}
