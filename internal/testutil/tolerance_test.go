package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	a := []float64{1.0, 2.0, 3.0}
	b := []float64{1.0, 2.1, 3.0}

	d, err := MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if math.Abs(d-0.1) > 1e-15 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	_, err := MaxAbsDiff([]float64{1}, []float64{1, 2})
	if err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestRequireHelpersPass(t *testing.T) {
	RequireNearlyEqual(t, "value", 1.0, 1.0+1e-12, 1e-9)
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1, 2 + 1e-12}, 1e-9)
	RequireBitIdentical(t, []float64{0.1, -3}, []float64{0.1, -3})
	RequireFinite(t, []float64{0, 1, -1})
}

func TestNodes(t *testing.T) {
	nodes := Nodes([2]float64{0, 1}, [2]float64{2, -1})
	if len(nodes) != 2 || nodes[1].Time != 2 || nodes[1].Value != -1 {
		t.Fatalf("unexpected nodes %+v", nodes)
	}
	if nodes[0].OutTime != 0 || nodes[1].InValue != 0 {
		t.Fatal("handles should be zero")
	}
}

func TestTimes(t *testing.T) {
	ts := Times(1, 0.5, 3)
	if len(ts) != 3 || ts[0] != 1 || ts[2] != 2 {
		t.Fatalf("Times = %v", ts)
	}
}
