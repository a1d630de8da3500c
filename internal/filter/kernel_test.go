package filter

import (
	"math"
	"testing"
)

func TestGaussianKernelIdentity(t *testing.T) {
	for _, sigma := range []float64{0, -5, math.NaN()} {
		kernel := GaussianKernel(sigma)
		if len(kernel) != 1 || kernel[0] != 1.0 {
			t.Errorf("GaussianKernel(%v) = %v, want [1]", sigma, kernel)
		}
	}
}

func TestGaussianKernelNormalized(t *testing.T) {
	for _, sigma := range []float64{0.5, 1, 2, 5, 10.7} {
		var sum float32
		for _, v := range GaussianKernel(sigma) {
			sum += v
		}
		if math.Abs(float64(sum)-1.0) > 0.001 {
			t.Errorf("GaussianKernel(%v) sum = %v, want ~1.0", sigma, sum)
		}
	}
}

func TestGaussianKernelSymmetric(t *testing.T) {
	kernel := GaussianKernel(5)
	n := len(kernel)

	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if math.Abs(float64(kernel[i]-kernel[j])) > 0.0001 {
			t.Errorf("kernel[%d] = %v != kernel[%d] = %v (asymmetric)", i, kernel[i], j, kernel[j])
		}
	}
	if kernel[n/2] < kernel[0] {
		t.Errorf("kernel peak %v below edge %v", kernel[n/2], kernel[0])
	}
}

func TestGaussianKernelSize(t *testing.T) {
	tests := []struct {
		sigma    float64
		wantSize int
	}{
		{0.5, 5},   // ceil(1.5)*2+1
		{1.0, 7},   // ceil(3)*2+1
		{2.0, 13},  // ceil(6)*2+1
		{10.0, 61}, // ceil(30)*2+1
	}

	for _, tt := range tests {
		if got := len(GaussianKernel(tt.sigma)); got != tt.wantSize {
			t.Errorf("GaussianKernel(%v) len = %d, want %d", tt.sigma, got, tt.wantSize)
		}
	}
}

func TestSigmaForWidth(t *testing.T) {
	if got := SigmaForWidth(64); math.Abs(got-64.0/6) > 1e-12 {
		t.Errorf("SigmaForWidth(64) = %v", got)
	}
}

func TestCachedGaussianKernel(t *testing.T) {
	k1 := CachedGaussianKernel(5.0)
	k2 := CachedGaussianKernel(5.0)
	if len(k1) != len(k2) || &k1[0] != &k2[0] {
		t.Error("second lookup did not return the cached kernel")
	}

	if len(CachedGaussianKernel(10.0)) == len(k1) {
		t.Error("different sigmas should produce different kernel sizes")
	}
}

func TestCachedGaussianKernelQuantized(t *testing.T) {
	a := CachedGaussianKernel(2.001)
	b := CachedGaussianKernel(2.009)
	if &a[0] != &b[0] {
		t.Error("sigmas within 0.01 should share a kernel")
	}
	if got, want := len(a), len(GaussianKernel(2.0)); got != want {
		t.Errorf("len = %d, want %d", got, want)
	}
}

func TestColorMatrixIdentity(t *testing.T) {
	m := IdentityMatrix()
	r, g, b, a := m.Transform(2.5, 0.25, 0, 1)
	if r != 2.5 || g != 0.25 || b != 0 || a != 1 {
		t.Errorf("identity transform = (%v, %v, %v, %v)", r, g, b, a)
	}
}

func TestColorMatrixContrast(t *testing.T) {
	m := ContrastMatrix(2)
	r, _, _, _ := m.Transform(0.5, 0, 0, 1)
	if math.Abs(float64(r)-0.5) > 1e-6 {
		t.Errorf("mid-gray moved under contrast: %v", r)
	}
	r, _, _, _ = m.Transform(0.75, 0, 0, 1)
	if math.Abs(float64(r)-1.0) > 1e-6 {
		t.Errorf("contrast(2) of 0.75 = %v, want 1.0", r)
	}
}

func TestColorMatrixSaturationZeroIsGray(t *testing.T) {
	m := SaturationMatrix(0)
	r, g, b, _ := m.Transform(1, 0, 0, 1)
	if r != g || g != b {
		t.Errorf("saturation(0) = (%v, %v, %v), want gray", r, g, b)
	}
}

func TestColorMatrixThen(t *testing.T) {
	a := BrightnessMatrix(2)
	b := ContrastMatrix(0.5)
	combined := a.Then(b)

	r1, _, _, _ := a.Transform(0.3, 0, 0, 1)
	r1, _, _, _ = b.Transform(r1, 0, 0, 1)
	r2, _, _, _ := combined.Transform(0.3, 0, 0, 1)
	if math.Abs(float64(r1-r2)) > 1e-6 {
		t.Errorf("Then = %v, sequential = %v", r2, r1)
	}
}

func TestToneCurves(t *testing.T) {
	if got := Reinhard(1); got != 0.5 {
		t.Errorf("Reinhard(1) = %v, want 0.5", got)
	}
	if got := Reinhard(-1); got != 0 {
		t.Errorf("Reinhard(-1) = %v, want 0", got)
	}
	if got := Gamma(4, 2.2); got != 1 {
		t.Errorf("Gamma(4) = %v, want 1", got)
	}
	if got := Luminance(1, 1, 1); math.Abs(float64(got)-1) > 1e-6 {
		t.Errorf("Luminance(white) = %v, want 1", got)
	}
	if got := Clamp01(1.5); got != 1 {
		t.Errorf("Clamp01(1.5) = %v, want 1", got)
	}
	if got := Clamp01(-0.5); got != 0 {
		t.Errorf("Clamp01(-0.5) = %v, want 0", got)
	}
}

func BenchmarkCachedGaussianKernel(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = CachedGaussianKernel(10.66)
	}
}
