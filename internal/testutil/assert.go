package testutil

import (
	"math"
	"testing"
)

// RequireClose fails the test unless got and want have equal length and
// agree element-wise within tol.
func RequireClose(t *testing.T, got, want []float64, tol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, len(want) = %d", len(got), len(want))
	}

	for i, g := range got {
		if d := math.Abs(g - want[i]); d > tol {
			t.Fatalf("[%d] got %g want %g (|diff| %g > %g)", i, g, want[i], d, tol)
		}
	}
}

// RequireFinite fails the test on the first NaN or infinite sample.
func RequireFinite(t *testing.T, x []float64) {
	t.Helper()

	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("[%d] = %v is not finite", i, v)
		}
	}
}

// RequireBounded fails the test if any |x[i]| exceeds limit.
func RequireBounded(t *testing.T, x []float64, limit float64) {
	t.Helper()

	for i, v := range x {
		if math.Abs(v) > limit {
			t.Fatalf("[%d] = %v, limit %v", i, v, limit)
		}
	}
}

// RequireDistinct fails the test when got reuses the backing array of in.
func RequireDistinct(t *testing.T, got, in []float64) {
	t.Helper()

	if len(got) > 0 && len(in) > 0 && &got[0] == &in[0] {
		t.Fatal("output shares storage with input")
	}
}

// MaxAbsDiff returns max |a[i]-b[i]|, or +Inf when the lengths differ.
func MaxAbsDiff(a, b []float64) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}

	var m float64
	for i := range a {
		m = math.Max(m, math.Abs(a[i]-b[i]))
	}

	return m
}
