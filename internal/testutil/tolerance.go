package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair differs by more than eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	d, at, err := scan(got, want, absDiff)
	if err != nil {
		t.Fatal(err)
	}
	if d > eps {
		t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", at, got[at], want[at], d, eps)
	}
}

// RequireRelNearlyEqual is [RequireSliceNearlyEqual] with a tolerance
// relative to want, for values spanning many decades such as PSDs.
// Elements where want is zero must match exactly.
func RequireRelNearlyEqual(t *testing.T, got, want []float64, rel float64) {
	t.Helper()
	for i := range want {
		if i < len(got) && want[i] == 0 && got[i] != 0 {
			t.Fatalf("index %d: got %v, want 0", i, got[i])
		}
	}
	d, at, err := scan(got, want, relDiff)
	if err != nil {
		t.Fatal(err)
	}
	if d > rel {
		t.Fatalf("index %d: got %v, want %v (relative diff %v > %v)", at, got[at], want[at], d, rel)
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest absolute element difference.
func MaxAbsDiff(a, b []float64) (float64, error) {
	d, _, err := scan(a, b, absDiff)
	return d, err
}

// MaxRelDiff returns max |got[i]-want[i]| / |want[i]| over all i with a
// non-zero reference value, and the index where it occurs (-1 if none).
func MaxRelDiff(got, want []float64) (float64, int, error) {
	return scan(got, want, relDiff)
}

func absDiff(got, want float64) (float64, bool) {
	return math.Abs(got - want), true
}

func relDiff(got, want float64) (float64, bool) {
	if want == 0 {
		return 0, false
	}
	return math.Abs(got-want) / math.Abs(want), true
}

// scan returns the largest metric value and its index.
func scan(got, want []float64, metric func(got, want float64) (float64, bool)) (float64, int, error) {
	if len(got) != len(want) {
		return 0, -1, fmt.Errorf("length mismatch: %d vs %d", len(got), len(want))
	}
	worst, at := 0.0, -1
	for i := range got {
		d, ok := metric(got[i], want[i])
		if ok && (at < 0 || d > worst) {
			worst, at = d, i
		}
	}
	return worst, at, nil
}
