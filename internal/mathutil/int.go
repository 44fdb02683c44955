package mathutil

import "math"

// IntMin returns the smaller of two ints (search: int-math).
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntMax returns the larger of two ints (search: int-math).
func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IntClamp limits x to the inclusive range [lo, hi] (search: int-math).
func IntClamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// DegToRad converts degrees to radians. Every trigonometric call site in the
// renderer goes through here so the whole module shares math.Pi.
func DegToRad(deg float64) float64 {
	return deg / 180 * math.Pi
}

// FloorMod returns x modulo m in the range [0, m), also for negative x.
func FloorMod(x, m float64) float64 {
	return x - math.Floor(x/m)*m
}

// ClampFloat limits x to [lo, hi]. NaN maps to lo.
func ClampFloat(x, lo, hi float64) float64 {
	if !(x >= lo) {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
