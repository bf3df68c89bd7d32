package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1) {
		t.Fatal("1 should be finite")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Fatal("NaN and Inf must not be finite")
	}
}

func TestTableLength(t *testing.T) {
	tests := []struct {
		resolution int
		length     float64
		want       int
	}{
		{resolution: 100, length: 1, want: 101},
		{resolution: 100, length: 0.005, want: 2},
		{resolution: 10, length: 2.25, want: 24},
		{resolution: 100, length: 0, want: 1},
		{resolution: 0, length: 3, want: 1},
	}

	for _, tt := range tests {
		if got := TableLength(tt.resolution, tt.length); got != tt.want {
			t.Fatalf("TableLength(%d, %g) = %d, want %d", tt.resolution, tt.length, got, tt.want)
		}
	}
}
