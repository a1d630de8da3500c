// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stage

import "github.com/gogpu/gputypes"

// Kind identifies the effect a stage implements.
type Kind int

const (
	// KindPass copies its input to the output at the output resolution.
	KindPass Kind = iota

	// KindHighlights isolates over-bright pixels.
	KindHighlights

	// KindBlur blurs along one axis.
	KindBlur

	// KindCopyBack blends its input over the destination.
	KindCopyBack

	// KindImageProcessing applies exposure, tone mapping and gamma.
	KindImageProcessing

	// KindAntiAlias smooths geometric edges.
	KindAntiAlias

	// KindFinalMerge is a pass-through that ends the chain.
	KindFinalMerge
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPass:
		return "Pass"
	case KindHighlights:
		return "Highlights"
	case KindBlur:
		return "Blur"
	case KindCopyBack:
		return "CopyBack"
	case KindImageProcessing:
		return "ImageProcessing"
	case KindAntiAlias:
		return "AntiAlias"
	case KindFinalMerge:
		return "FinalMerge"
	default:
		return "Unknown"
	}
}

// Axis is a blur direction.
type Axis int

const (
	// AxisX blurs horizontally.
	AxisX Axis = iota

	// AxisY blurs vertically.
	AxisY
)

// String returns "X" or "Y".
func (a Axis) String() string {
	if a == AxisY {
		return "Y"
	}
	return "X"
}

// AlphaMode selects how a stage's output is combined with the destination.
type AlphaMode int

const (
	// AlphaDisable overwrites the destination.
	AlphaDisable AlphaMode = iota

	// AlphaScreen combines as src + dst*(1-src).
	AlphaScreen

	// AlphaInterpolate combines as src*k + dst*(1-k) for a constant k.
	AlphaInterpolate
)

// String returns the alpha mode name.
func (m AlphaMode) String() string {
	switch m {
	case AlphaDisable:
		return "Disable"
	case AlphaScreen:
		return "Screen"
	case AlphaInterpolate:
		return "Interpolate"
	default:
		return "Unknown"
	}
}

// BlendComponent describes a blend equation for color or alpha.
type BlendComponent struct {
	SrcFactor gputypes.BlendFactor
	DstFactor gputypes.BlendFactor
	Operation gputypes.BlendOperation
}

// BlendState describes how a stage's output is written to its destination.
type BlendState struct {
	Color BlendComponent
	Alpha BlendComponent

	// Constant is the blend constant referenced by the constant factors.
	Constant gputypes.Color
}

// BlendFor returns the blend state for an alpha mode. The constant is only
// meaningful for AlphaInterpolate.
func BlendFor(mode AlphaMode, constant gputypes.Color) BlendState {
	c := BlendComponent{
		SrcFactor: gputypes.BlendFactorOne,
		DstFactor: gputypes.BlendFactorZero,
		Operation: gputypes.BlendOperationAdd,
	}
	switch mode {
	case AlphaScreen:
		c.DstFactor = gputypes.BlendFactorOneMinusSrc
	case AlphaInterpolate:
		c.SrcFactor = gputypes.BlendFactorConstant
		c.DstFactor = gputypes.BlendFactorOneMinusConstant
		return BlendState{Color: c, Alpha: c, Constant: constant}
	}
	return BlendState{Color: c, Alpha: c}
}

// Descriptor holds the construction parameters of a stage.
type Descriptor struct {
	// ID is unique within a pipeline.
	ID string

	// Kind selects the effect.
	Kind Kind

	// Label is a debug name.
	Label string

	// Ratio scales the canvas size to the stage's target size.
	Ratio float64

	// ForcePOT rounds the target size up to powers of two.
	ForcePOT bool

	// AutoClear clears the input target before it is rendered into.
	AutoClear bool

	// Execute reports whether the stage runs in the chain. Stages that
	// are constructed but not executed still take part in bookkeeping.
	Execute bool

	// Format is the texel format of the stage's target.
	Format gputypes.TextureFormat

	// Axis is the blur direction (KindBlur only).
	Axis Axis

	// Kernel is the initial blur kernel width (KindBlur only).
	Kernel float64

	// AlphaMode and Blend control how the output is written.
	AlphaMode AlphaMode
	Blend     BlendState
}
