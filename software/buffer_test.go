package software

import (
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/postfx/internal/blend"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func nearColor(a, b blend.Color) bool {
	for i := range a {
		if !near(a[i], b[i]) {
			return false
		}
	}
	return true
}

func TestBufferSetPixel(t *testing.T) {
	b := NewBuffer(4, 3, gputypes.TextureFormatRGBA32Float)
	if b.Width() != 4 || b.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", b.Width(), b.Height())
	}
	if b.Format() != gputypes.TextureFormatRGBA32Float {
		t.Errorf("Format() = %v", b.Format())
	}

	c := blend.Color{2.5, 0.5, 0.25, 1}
	b.Set(1, 2, c)
	if got := b.Pixel(1, 2); got != c {
		t.Errorf("Pixel(1, 2) = %v, want %v (values are not clamped)", got, c)
	}

	b.Set(-1, 0, c)
	b.Set(4, 0, c)
	if got := b.Pixel(0, 0); got != (blend.Color{}) {
		t.Errorf("out-of-bounds Set wrote %v", got)
	}

	// Coordinates clamp to the edge.
	if got := b.Pixel(10, 10); got != b.Pixel(3, 2) {
		t.Errorf("Pixel(10, 10) = %v, want edge pixel", got)
	}
}

func TestBufferFillClear(t *testing.T) {
	b := NewBuffer(2, 2, gputypes.TextureFormatRGBA16Float)
	c := blend.Color{1, 0, 0, 1}
	b.Fill(c)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := b.Pixel(x, y); got != c {
				t.Errorf("Pixel(%d, %d) = %v, want %v", x, y, got, c)
			}
		}
	}
	b.Clear()
	if got := b.Pixel(1, 1); got != (blend.Color{}) {
		t.Errorf("Pixel after Clear = %v, want zero", got)
	}
}

func TestBufferSample(t *testing.T) {
	b := NewBuffer(2, 1, gputypes.TextureFormatRGBA32Float)
	b.Set(0, 0, blend.Color{0, 0, 0, 1})
	b.Set(1, 0, blend.Color{1, 1, 1, 1})

	tests := []struct {
		u    float32
		want float32
	}{
		{0.25, 0},  // center of texel 0
		{0.5, 0.5}, // halfway between texels
		{0.75, 1},  // center of texel 1
		{0, 0},     // clamp to edge
		{1, 1},
	}
	for _, tt := range tests {
		got := b.Sample(tt.u, 0.5)
		if !near(got[0], tt.want) {
			t.Errorf("Sample(%v).R = %v, want %v", tt.u, got[0], tt.want)
		}
	}
}

func TestBufferAt(t *testing.T) {
	b := NewBuffer(1, 1, gputypes.TextureFormatRGBA32Float)
	b.Set(0, 0, blend.Color{4, 0.5, -1, 1})

	got := b.At(0, 0).(color.RGBA64)
	want := color.RGBA64{R: 0xFFFF, G: 0x7FFF, B: 0, A: 0xFFFF}
	if got != want {
		t.Errorf("At(0, 0) = %v, want %v", got, want)
	}
	if b.ColorModel() != color.RGBA64Model {
		t.Error("ColorModel should be RGBA64")
	}
}

func TestBufferToRGBA(t *testing.T) {
	b := NewBuffer(4, 4, gputypes.TextureFormatRGBA32Float)
	b.Fill(blend.Color{1, 0, 0, 1})

	same := b.ToRGBA(4, 4)
	if got := same.RGBAAt(2, 2); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("ToRGBA(4, 4) pixel = %v, want opaque red", got)
	}

	scaled := b.ToRGBA(8, 2)
	if scaled.Bounds().Dx() != 8 || scaled.Bounds().Dy() != 2 {
		t.Fatalf("ToRGBA(8, 2) bounds = %v", scaled.Bounds())
	}
	if got := scaled.RGBAAt(5, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("scaled pixel = %v, want opaque red", got)
	}
}

func TestDeviceAllocateRelease(t *testing.T) {
	d := NewDevice()

	if _, err := d.Allocate(0, 4, gputypes.TextureFormatRGBA16Float); err == nil {
		t.Error("Allocate(0, 4) should fail")
	}

	a, err := d.Allocate(4, 4, gputypes.TextureFormatRGBA16Float)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	b, err := d.Allocate(2, 2, gputypes.TextureFormatRGBA16Float)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if d.Live() != 2 || d.Total() != 2 {
		t.Errorf("Live = %d, Total = %d, want 2 and 2", d.Live(), d.Total())
	}

	d.Release(a)
	d.Release(a)
	d.Release(NewBuffer(1, 1, gputypes.TextureFormatRGBA16Float))
	if d.Live() != 1 {
		t.Errorf("Live = %d, want 1", d.Live())
	}
	d.Release(b)
	if d.Live() != 0 || d.Total() != 2 {
		t.Errorf("Live = %d, Total = %d, want 0 and 2", d.Live(), d.Total())
	}
}

func TestDeviceMaxAllocations(t *testing.T) {
	d := NewDevice()
	d.MaxAllocations = 1

	first, err := d.Allocate(1, 1, gputypes.TextureFormatRGBA16Float)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if _, err := d.Allocate(1, 1, gputypes.TextureFormatRGBA16Float); err != ErrOutOfMemory {
		t.Errorf("Allocate over limit = %v, want ErrOutOfMemory", err)
	}
	d.Release(first)
	if _, err := d.Allocate(1, 1, gputypes.TextureFormatRGBA16Float); err != nil {
		t.Errorf("Allocate after release: %v", err)
	}
}

func TestDeviceProvider(t *testing.T) {
	d := &Device{}
	var provider gpucontext.DeviceProvider = d
	if provider.Device() != nil || provider.Queue() != nil || provider.Adapter() != nil {
		t.Error("software device should expose nil GPU handles")
	}
	if info := provider.AdapterInfo(); info.Type != gpucontext.AdapterTypeSoftware {
		t.Errorf("AdapterInfo().Type = %v, want Software", info.Type)
	}
	if d.SurfaceFormat() != gputypes.TextureFormatUndefined {
		t.Errorf("SurfaceFormat() = %v, want Undefined", d.SurfaceFormat())
	}

	// Zero value is usable.
	if _, err := d.Allocate(1, 1, gputypes.TextureFormatRGBA16Float); err != nil {
		t.Errorf("zero Device Allocate: %v", err)
	}
}
