package emath

import "math"

// Some functions that only operate on basic types, that are useful

// GammaExpand maps a linear value in [0,1] to sRGB, so a gray ramp
// looks even to a human viewer.
// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
func GammaExpand(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055*math.Pow(f, 1.0/2.4) - 0.055
}

// Clamp01 pins f into [0,1]; NaN becomes 0.
func Clamp01(f float64) float64 {
	if !(f > 0) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
