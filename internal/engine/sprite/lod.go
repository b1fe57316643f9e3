package sprite

import gomath "math"

// ApparentSizeCeiling bounds the apparent size so downstream index arithmetic
// never sees an infinite or absurd value (near-zero camera distances).
const ApparentSizeCeiling = 1e7

// apparentSize converts a signed camera distance and a vertical field of view
// in degrees into a scale-invariant apparent size. The result is always
// positive and at most ApparentSizeCeiling.
func apparentSize(camDist, fovDeg float32) float32 {
	t := gomath.Tan(float64(fovDeg) * gomath.Pi / 360.0)
	as := 1.0 / (float64(camDist) * t)
	if as <= 0 {
		as = -as
	}
	if gomath.IsNaN(as) || as > ApparentSizeCeiling {
		as = ApparentSizeCeiling
	}
	return float32(as)
}

// lodTarget derives the logarithmic level-selection value from an apparent
// size and the viewport size in pixels. It grows as apparent size shrinks,
// so farther nodes select coarser levels.
func lodTarget(apparent, viewportW, viewportH float32) float32 {
	diag := gomath.Sqrt(float64(viewportW) * float64(viewportH))
	return float32(gomath.Log(1.0 / (diag * float64(apparent))))
}

// selectLevel picks an index into a list of n levels from a scale constant
// and the lod target. Indices saturate at both ends; n == 0 means there is
// nothing to select.
func selectLevel(scale, target float32, n int) (int, bool) {
	if n == 0 {
		return 0, false
	}
	f := gomath.Floor(float64(scale) + float64(target))
	if f < 0 {
		return 0, true
	}
	if f >= float64(n) {
		return n - 1, true
	}
	return int(f), true
}
