// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/postfx/internal/blend"
	"github.com/gogpu/postfx/internal/filter"
	"github.com/gogpu/postfx/stage"
)

// HighlightsThreshold is the luminance at or above which the highlights
// stage keeps a pixel.
const HighlightsThreshold = 0.8

// shader computes the output color at normalized coordinates (u, v).
type shader func(src *Buffer, u, v float32) blend.Color

// effect is a software stage: a Base plus a per-pixel shader.
type effect struct {
	stage.Base
	blendFn blend.Func
	shade   shader
}

func newEffect(desc stage.Descriptor, alloc stage.Allocator, shade shader) *effect {
	e := &effect{shade: shade, blendFn: blendFor(desc)}
	e.Init(e, desc, alloc)
	return e
}

// blendFor compiles the descriptor's blend state. Stages without an alpha
// mode overwrite their destination.
func blendFor(desc stage.Descriptor) blend.Func {
	if desc.AlphaMode == stage.AlphaDisable {
		return blend.Compile(stage.BlendFor(stage.AlphaDisable, gputypes.Color{}))
	}
	return blend.Compile(desc.Blend)
}

// Apply renders src into dst through the shader and blend state.
func (e *effect) Apply(_ stage.Camera, src, dst stage.Target, clear bool) error {
	return run(src, dst, clear, e.blendFn, e.shade)
}

// run shades every destination pixel from src and blends it into dst.
func run(src, dst stage.Target, clear bool, fn blend.Func, shade shader) error {
	s, ok := src.(*Buffer)
	if !ok {
		return stage.ErrUnsupportedTarget
	}
	d, ok := dst.(*Buffer)
	if !ok {
		return stage.ErrUnsupportedTarget
	}
	if s == d {
		// Reading and writing the same target: shade from a snapshot.
		snapshot := NewBuffer(s.width, s.height, s.format)
		copy(snapshot.pix, s.pix)
		s = snapshot
	}
	if clear {
		d.Clear()
	}

	invW := 1 / float32(d.width)
	invH := 1 / float32(d.height)
	for y := 0; y < d.height; y++ {
		v := (float32(y) + 0.5) * invH
		for x := 0; x < d.width; x++ {
			u := (float32(x) + 0.5) * invW
			d.Set(x, y, fn(shade(s, u, v), d.Pixel(x, y)))
		}
	}
	return nil
}

// copyShader resamples the source.
func copyShader(src *Buffer, u, v float32) blend.Color {
	return src.Sample(u, v)
}

// highlightsShader keeps pixels whose luminance reaches the threshold.
func highlightsShader(src *Buffer, u, v float32) blend.Color {
	c := src.Sample(u, v)
	if filter.Luminance(c[0], c[1], c[2]) < HighlightsThreshold {
		return blend.Color{0, 0, 0, c[3]}
	}
	return c
}

// blurStage is a one-axis Gaussian blur with a kernel width that its
// activate hooks may change every frame.
type blurStage struct {
	effect
	axis   stage.Axis
	kernel float64
}

func newBlur(desc stage.Descriptor, alloc stage.Allocator) *blurStage {
	b := &blurStage{axis: desc.Axis, kernel: desc.Kernel}
	b.shade = b.shadeBlur
	b.blendFn = blendFor(desc)
	b.Init(b, desc, alloc)
	return b
}

// Axis returns the blur direction.
func (b *blurStage) Axis() stage.Axis { return b.axis }

// Kernel returns the kernel width in target pixels.
func (b *blurStage) Kernel() float64 { return b.kernel }

// SetKernel sets the kernel width in target pixels.
func (b *blurStage) SetKernel(kernel float64) { b.kernel = kernel }

func (b *blurStage) shadeBlur(src *Buffer, u, v float32) blend.Color {
	var du, dv float32
	extent := src.height
	if b.axis == stage.AxisX {
		du = 1 / float32(src.width)
		extent = src.width
	} else {
		dv = 1 / float32(src.height)
	}

	// Taps past the edge only repeat the edge pixel, so the half-width
	// never needs to exceed the source extent.
	width := min(b.kernel, float64(2*extent))
	weights := filter.CachedGaussianKernel(filter.SigmaForWidth(width))
	half := len(weights) / 2

	var out blend.Color
	for k, w := range weights {
		off := float32(k - half)
		c := src.Sample(u+off*du, v+off*dv)
		for i := range out {
			out[i] += c[i] * w
		}
	}
	return out
}

// ProcessingOptions configures the image-processing stage.
type ProcessingOptions struct {
	// Exposure multiplies linear color before tone mapping.
	Exposure float32

	// ToneMapping enables the Reinhard operator.
	ToneMapping bool

	// Brightness scales color after tone mapping.
	Brightness float32

	// Contrast is applied after brightness, around mid-gray.
	Contrast float32

	// Saturation blends between gray (0) and the input color (1). It is
	// applied last.
	Saturation float32

	// Gamma is the display gamma used for encoding.
	Gamma float32
}

// DefaultProcessingOptions returns Reinhard tone mapping with gamma 2.2
// and neutral exposure, brightness, contrast and saturation.
func DefaultProcessingOptions() ProcessingOptions {
	return ProcessingOptions{
		Exposure:    1,
		ToneMapping: true,
		Brightness:  1,
		Contrast:    1,
		Saturation:  1,
		Gamma:       2.2,
	}
}

// grading returns the color matrix for the brightness, contrast and
// saturation controls of o.
func (o ProcessingOptions) grading() filter.ColorMatrix {
	return filter.IdentityMatrix().
		Then(filter.BrightnessMatrix(o.Brightness)).
		Then(filter.ContrastMatrix(o.Contrast)).
		Then(filter.SaturationMatrix(o.Saturation))
}

// processingShader returns a shader applying o.
func processingShader(o ProcessingOptions) shader {
	m := o.grading()
	return func(src *Buffer, u, v float32) blend.Color {
		c := src.Sample(u, v)
		for i := 0; i < 3; i++ {
			c[i] *= o.Exposure
			if o.ToneMapping {
				c[i] = filter.Reinhard(c[i])
			}
		}
		r, g, b, _ := m.Transform(c[0], c[1], c[2], c[3])
		return blend.Color{
			filter.Gamma(r, o.Gamma),
			filter.Gamma(g, o.Gamma),
			filter.Gamma(b, o.Gamma),
			c[3],
		}
	}
}

// FXAA thresholds: an edge needs a luma range above both.
const (
	fxaaEdgeThreshold    = 0.125
	fxaaEdgeThresholdMin = 0.0312
)

// fxaaShader blends pixels on high-contrast luma edges with their
// neighborhood.
func fxaaShader(src *Buffer, u, v float32) blend.Color {
	x := clampInt(floor(u*float32(src.width)), 0, src.width-1)
	y := clampInt(floor(v*float32(src.height)), 0, src.height-1)

	c := src.Pixel(x, y)
	n := src.Pixel(x, y-1)
	s := src.Pixel(x, y+1)
	w := src.Pixel(x-1, y)
	e := src.Pixel(x+1, y)

	lc := filter.Luminance(c[0], c[1], c[2])
	lumaMin, lumaMax := lc, lc
	for _, p := range [4]blend.Color{n, s, w, e} {
		l := filter.Luminance(p[0], p[1], p[2])
		lumaMin = min(lumaMin, l)
		lumaMax = max(lumaMax, l)
	}
	if lumaMax-lumaMin < max(fxaaEdgeThresholdMin, lumaMax*fxaaEdgeThreshold) {
		return c
	}

	var out blend.Color
	for i := range out {
		out[i] = 0.5*c[i] + 0.125*(n[i]+s[i]+w[i]+e[i])
	}
	return out
}
