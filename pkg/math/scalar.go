package math

import "math"

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// Clamp saturates x to [lo, hi]. When lo > hi the result is lo.
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(x, hi))
}

// EuclideanMod returns x mod m with the sign of m, so the result for a
// positive m is always in [0, m).
func EuclideanMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	// r+m can round up to exactly m for tiny negative r.
	if r >= m {
		r = 0
	}
	return r
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// ApproxEqual reports whether a and b differ by at most eps.
func ApproxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
