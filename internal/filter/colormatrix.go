package filter

// ColorMatrix is a 4x5 color transformation on linear RGBA in [0, 1]:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// The fifth column is an offset. Values are not clamped, so HDR input
// stays HDR.
type ColorMatrix [20]float32

// Rec. 709 luminance weights.
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

// IdentityMatrix returns a matrix that passes colors through unchanged.
func IdentityMatrix() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// BrightnessMatrix scales RGB by factor.
// factor: 0.0 = black, 1.0 = unchanged, 2.0 = twice as bright
func BrightnessMatrix(factor float32) ColorMatrix {
	return ColorMatrix{
		factor, 0, 0, 0, 0,
		0, factor, 0, 0, 0,
		0, 0, factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// ContrastMatrix scales RGB around mid-gray: (c - 0.5) * factor + 0.5.
// factor: 0.0 = gray, 1.0 = unchanged, 2.0 = high contrast
func ContrastMatrix(factor float32) ColorMatrix {
	offset := 0.5 * (1 - factor)
	return ColorMatrix{
		factor, 0, 0, 0, offset,
		0, factor, 0, 0, offset,
		0, 0, factor, 0, offset,
		0, 0, 0, 1, 0,
	}
}

// SaturationMatrix blends between luminance (0) and identity (1).
func SaturationMatrix(factor float32) ColorMatrix {
	inv := 1 - factor
	return ColorMatrix{
		lumR*inv + factor, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + factor, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Transform applies the matrix to one color.
func (m *ColorMatrix) Transform(r, g, b, a float32) (float32, float32, float32, float32) {
	return m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4],
		m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9],
		m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14],
		m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]
}

// Then returns the matrix that applies m first, then next.
func (m ColorMatrix) Then(next ColorMatrix) ColorMatrix {
	var out ColorMatrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += next[row*5+k] * m[k*5+col]
			}
			out[row*5+col] = sum
		}
		out[row*5+4] = next[row*5+0]*m[4] + next[row*5+1]*m[9] +
			next[row*5+2]*m[14] + next[row*5+3]*m[19] + next[row*5+4]
	}
	return out
}
