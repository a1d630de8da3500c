package filter

import (
	"math"

	"github.com/gogpu/postfx/internal/cache"
)

// GaussianKernel generates a normalized 1D Gaussian kernel with the given
// standard deviation. The kernel covers 3 sigma on each side, so its size
// is 2*ceil(3*sigma)+1.
//
// For sigma <= 0, returns a single-element kernel [1.0] (identity).
func GaussianKernel(sigma float64) []float32 {
	if sigma <= 0 || math.IsNaN(sigma) {
		return []float32{1.0}
	}

	halfSize := int(math.Ceil(sigma * 3))
	size := halfSize*2 + 1
	kernel := make([]float32, size)

	twoSigmaSq := 2 * sigma * sigma
	sum := float64(0)
	for i := 0; i < size; i++ {
		x := float64(i - halfSize)
		val := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(val)
		sum += val
	}

	invSum := float32(1.0 / sum)
	for i := range kernel {
		kernel[i] *= invSum
	}
	return kernel
}

// SigmaForWidth converts a blur kernel width in pixels to a Gaussian
// standard deviation: the width spans 3 sigma on each side.
func SigmaForWidth(width float64) float64 {
	return width / 6
}

// kernels caches Gaussian kernels keyed by sigma quantized to 0.01. Blur
// kernels change only when a target resizes, so the set stays small.
var kernels = cache.New[int, []float32](64)

// CachedGaussianKernel returns a cached Gaussian kernel for sigma,
// quantized to 0.01. The returned slice must not be modified.
func CachedGaussianKernel(sigma float64) []float32 {
	key := int(sigma * 100)
	return kernels.GetOrCreate(key, func() []float32 {
		return GaussianKernel(float64(key) / 100)
	})
}
