package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-ringdsp/dsp/core"
)

// RequireSliceNearlyEqual fails t unless got and want have the same length
// and every pair lies within eps. Integer slices compare exactly with eps 0,
// which suits written-back sample buffers.
func RequireSliceNearlyEqual[T core.Number](t *testing.T, got, want []T, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(float64(got[i]) - float64(want[i])); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if a correlation output holds NaN or Inf.
func RequireFinite(t *testing.T, out []float64) {
	t.Helper()
	for i, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest elementwise distance between a and b.
func MaxAbsDiff[T core.Number](a, b []T) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("testutil: length mismatch: %d vs %d", len(a), len(b))
	}
	var worst float64
	for i := range a {
		worst = max(worst, math.Abs(float64(a[i])-float64(b[i])))
	}
	return worst, nil
}
