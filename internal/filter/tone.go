package filter

import "math"

// Luminance returns the Rec. 709 luminance of a linear color.
func Luminance(r, g, b float32) float32 {
	return lumR*r + lumG*g + lumB*b
}

// Reinhard maps [0, inf) to [0, 1).
func Reinhard(v float32) float32 {
	if v <= 0 {
		return 0
	}
	return v / (1 + v)
}

// Gamma encodes a linear value with exponent 1/gamma, clamping to [0, 1].
func Gamma(v, gamma float32) float32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	return float32(math.Pow(float64(v), 1/float64(gamma)))
}

// Clamp01 clamps v to [0, 1].
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
