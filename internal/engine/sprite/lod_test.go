package sprite

import (
	gomath "math"
	"testing"
)

func TestApparentSizePositiveBounded(t *testing.T) {
	dists := []float32{0.0001, 0.1, 1, 10, 100, 1e5, 1e9}
	fovs := []float32{10, 45, 60, 90, 170}

	for _, d := range dists {
		for _, fov := range fovs {
			as := apparentSize(d, fov)
			if as <= 0 {
				t.Errorf("apparentSize(%g, %g) = %g, want positive", d, fov, as)
			}
			if as > ApparentSizeCeiling {
				t.Errorf("apparentSize(%g, %g) = %g exceeds ceiling", d, fov, as)
			}
			if gomath.IsNaN(float64(as)) || gomath.IsInf(float64(as), 0) {
				t.Errorf("apparentSize(%g, %g) = %g, want finite", d, fov, as)
			}
		}
	}
}

func TestApparentSizeNegativeDistance(t *testing.T) {
	// Behind-camera distances still yield a positive size
	as := apparentSize(-50, 45)
	if as <= 0 {
		t.Errorf("apparentSize(-50, 45) = %g, want positive", as)
	}

	pos := apparentSize(50, 45)
	if as != pos {
		t.Errorf("sign flip should mirror: got %g and %g", as, pos)
	}
}

func TestApparentSizeZeroDistanceClamps(t *testing.T) {
	as := apparentSize(0, 45)
	if as != ApparentSizeCeiling {
		t.Errorf("apparentSize(0, 45) = %g, want ceiling %g", as, float32(ApparentSizeCeiling))
	}
}

func TestLodTargetMonotonic(t *testing.T) {
	// Apparent size shrinks with distance, so the target must grow
	prev := float32(gomath.Inf(-1))
	for _, d := range []float32{1, 5, 25, 125, 625, 3125} {
		as := apparentSize(d, 45)
		target := lodTarget(as, 800, 600)
		if target <= prev {
			t.Fatalf("lodTarget not increasing with distance: %g then %g at distance %g", prev, target, d)
		}
		prev = target
	}
}

func TestSelectLevelBounds(t *testing.T) {
	// Saturates at 0 below the range and at n-1 above it (infinity
	// included), shifts with the scale constant in both directions, and
	// selects nothing from an empty list.
	tests := []struct {
		scale  float32
		target float32
		n      int
		want   int
		ok     bool
	}{
		{0, -10, 4, 0, true},
		{0, 0.5, 4, 0, true},
		{0, 2.5, 4, 2, true},
		{0, 100, 4, 3, true},
		{3, 0.5, 4, 3, true},
		{-2, 2.5, 4, 0, true},
		{0, float32(gomath.Inf(1)), 4, 3, true},
		{0, 0, 0, 0, false},
	}

	for _, tt := range tests {
		got, ok := selectLevel(tt.scale, tt.target, tt.n)
		if ok != tt.ok || got != tt.want {
			t.Errorf("selectLevel(%g, %g, %d) = (%d, %v), want (%d, %v)",
				tt.scale, tt.target, tt.n, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSelectLevelAlwaysInRange(t *testing.T) {
	for n := 1; n <= 5; n++ {
		for target := float32(-20); target <= 20; target += 0.37 {
			idx, ok := selectLevel(1.5, target, n)
			if !ok {
				t.Fatalf("selectLevel returned !ok for n=%d", n)
			}
			if idx < 0 || idx >= n {
				t.Fatalf("selectLevel(1.5, %g, %d) = %d out of range", target, n, idx)
			}
		}
	}
}
