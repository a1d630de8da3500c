// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/postfx/internal/blend"
	"github.com/gogpu/postfx/internal/filter"
)

// Color is a linear RGBA pixel. Components are not clamped.
type Color = blend.Color

// Buffer is a CPU render target holding linear float RGBA pixels.
//
// Values are not clamped, so a Buffer can hold over-bright HDR content
// regardless of its declared format. Buffer implements image.Image with
// values clamped to [0, 1] for export.
type Buffer struct {
	width  int
	height int
	format gputypes.TextureFormat
	pix    []float32
}

// NewBuffer creates a zeroed buffer.
func NewBuffer(width, height int, format gputypes.TextureFormat) *Buffer {
	return &Buffer{
		width:  width,
		height: height,
		format: format,
		pix:    make([]float32, width*height*4),
	}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Format returns the declared texel format.
func (b *Buffer) Format() gputypes.TextureFormat { return b.format }

// Clear sets every pixel to transparent black.
func (b *Buffer) Clear() {
	clear(b.pix)
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c blend.Color) {
	for i := 0; i < len(b.pix); i += 4 {
		copy(b.pix[i:i+4], c[:])
	}
}

// Set writes one pixel. Out-of-bounds writes are ignored.
func (b *Buffer) Set(x, y int, c blend.Color) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	i := (y*b.width + x) * 4
	copy(b.pix[i:i+4], c[:])
}

// Pixel returns one pixel, clamping coordinates to the buffer edges.
func (b *Buffer) Pixel(x, y int) blend.Color {
	x = clampInt(x, 0, b.width-1)
	y = clampInt(y, 0, b.height-1)
	i := (y*b.width + x) * 4
	return blend.Color{b.pix[i], b.pix[i+1], b.pix[i+2], b.pix[i+3]}
}

// Sample returns the bilinearly filtered color at normalized coordinates
// (u, v) in [0, 1], with clamp-to-edge addressing.
func (b *Buffer) Sample(u, v float32) blend.Color {
	fx := u*float32(b.width) - 0.5
	fy := v*float32(b.height) - 0.5
	x0 := floor(fx)
	y0 := floor(fy)
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := b.Pixel(x0, y0)
	c10 := b.Pixel(x0+1, y0)
	c01 := b.Pixel(x0, y0+1)
	c11 := b.Pixel(x0+1, y0+1)

	var out blend.Color
	for i := range out {
		top := c00[i] + (c10[i]-c00[i])*tx
		bottom := c01[i] + (c11[i]-c01[i])*tx
		out[i] = top + (bottom-top)*ty
	}
	return out
}

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model { return color.RGBA64Model }

// Bounds implements image.Image.
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// At implements image.Image, clamping to [0, 1] and premultiplying.
func (b *Buffer) At(x, y int) color.Color {
	c := b.Pixel(x, y)
	a := filter.Clamp01(c[3])
	return color.RGBA64{
		R: uint16(filter.Clamp01(c[0]) * a * 0xFFFF),
		G: uint16(filter.Clamp01(c[1]) * a * 0xFFFF),
		B: uint16(filter.Clamp01(c[2]) * a * 0xFFFF),
		A: uint16(a * 0xFFFF),
	}
}

// ToRGBA converts the buffer to an 8-bit image of the given size, scaling
// with bilinear filtering.
func (b *Buffer) ToRGBA(width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if width == b.width && height == b.height {
		xdraw.Copy(dst, image.Point{}, b, b.Bounds(), xdraw.Src, nil)
		return dst
	}
	xdraw.BiLinear.Scale(dst, dst.Bounds(), b, b.Bounds(), xdraw.Src, nil)
	return dst
}

func floor(v float32) int {
	i := int(v)
	if v < 0 && float32(i) != v {
		i--
	}
	return i
}

func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
