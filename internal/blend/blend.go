// Package blend evaluates fixed-function blend states on linear float
// colors, the way a GPU color target would.
//
// Colors are straight RGBA float32 values and are not clamped, so HDR
// content keeps its over-bright range through blending.
package blend

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/postfx/stage"
)

// Color is a linear RGBA color.
type Color [4]float32

// Func blends one source color over one destination color.
type Func func(src, dst Color) Color

// Compile returns the blend function for a state. States that write the
// source unchanged compile to a copy. Every operation is evaluated as add,
// the only operation the pipeline's stages use.
func Compile(state stage.BlendState) Func {
	if isReplace(state.Color) && isReplace(state.Alpha) {
		return replace
	}
	k := Color{
		float32(state.Constant.R),
		float32(state.Constant.G),
		float32(state.Constant.B),
		float32(state.Constant.A),
	}
	c, a := state.Color, state.Alpha
	return func(src, dst Color) Color {
		var out Color
		for i := 0; i < 3; i++ {
			out[i] = src[i]*factor(c.SrcFactor, src, k, i) + dst[i]*factor(c.DstFactor, src, k, i)
		}
		out[3] = src[3]*factor(a.SrcFactor, src, k, 3) + dst[3]*factor(a.DstFactor, src, k, 3)
		return out
	}
}

func replace(src, _ Color) Color {
	return src
}

func isReplace(c stage.BlendComponent) bool {
	return c.SrcFactor == gputypes.BlendFactorOne &&
		c.DstFactor == gputypes.BlendFactorZero &&
		c.Operation == gputypes.BlendOperationAdd
}

// factor evaluates a blend factor for channel i.
func factor(f gputypes.BlendFactor, src, constant Color, i int) float32 {
	switch f {
	case gputypes.BlendFactorZero:
		return 0
	case gputypes.BlendFactorOne:
		return 1
	case gputypes.BlendFactorSrc:
		return src[i]
	case gputypes.BlendFactorOneMinusSrc:
		return 1 - src[i]
	case gputypes.BlendFactorSrcAlpha:
		return src[3]
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return 1 - src[3]
	case gputypes.BlendFactorConstant:
		return constant[i]
	case gputypes.BlendFactorOneMinusConstant:
		return 1 - constant[i]
	default:
		return 1
	}
}
