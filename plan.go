// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/postfx/stage"
)

// Stage ids, unique within a pipeline.
const (
	PassID            = "PassPostProcessEffect"
	HighlightsID      = "HighLightsPostProcessEffect"
	BlurXID           = "BlurXPostProcessEffect"
	BlurYID           = "BlurYPostProcessEffect"
	CopyBackID        = "CopyBackPostProcessEffect"
	ImageProcessingID = "ImageProcessingPostProcessEffect"
	AntiAliasID       = "FxaaPostProcessEffect"
	FinalMergeID      = "FinalMergePostProcessEffect"
)

// initialBlurKernel is the blur kernel before the first activation
// replaces it with the scaled bloom kernel.
const initialBlurKernel = 10.0

// Variant names one of the eight topologies a configuration can select.
type Variant uint8

const (
	variantAntiAlias Variant = 1 << iota
	variantBloom
	variantHDR
)

// Topology variants.
const (
	VariantMinimal           Variant = 0
	VariantAntiAlias                 = variantAntiAlias
	VariantBloom                     = variantBloom
	VariantBloomAntiAlias            = variantBloom | variantAntiAlias
	VariantHDR                       = variantHDR
	VariantHDRAntiAlias              = variantHDR | variantAntiAlias
	VariantHDRBloom                  = variantHDR | variantBloom
	VariantHDRBloomAntiAlias         = variantHDR | variantBloom | variantAntiAlias
)

// Variants lists every variant.
var Variants = []Variant{
	VariantMinimal,
	VariantAntiAlias,
	VariantBloom,
	VariantBloomAntiAlias,
	VariantHDR,
	VariantHDRAntiAlias,
	VariantHDRBloom,
	VariantHDRBloomAntiAlias,
}

// HDR reports whether the variant processes in floating point.
func (v Variant) HDR() bool { return v&variantHDR != 0 }

// Bloom reports whether the variant includes the bloom sub-chain.
func (v Variant) Bloom() bool { return v&variantBloom != 0 }

// AntiAlias reports whether the variant ends with anti-aliasing.
func (v Variant) AntiAlias() bool { return v&variantAntiAlias != 0 }

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantMinimal:
		return "Minimal"
	case VariantAntiAlias:
		return "AntiAlias"
	case VariantBloom:
		return "Bloom"
	case VariantBloomAntiAlias:
		return "BloomAntiAlias"
	case VariantHDR:
		return "HDR"
	case VariantHDRAntiAlias:
		return "HDRAntiAlias"
	case VariantHDRBloom:
		return "HDRBloom"
	case VariantHDRBloomAntiAlias:
		return "HDRBloomAntiAlias"
	default:
		return "Unknown"
	}
}

// Plan returns the ordered stage descriptors for a configuration. Every
// descriptor is constructed on rebuild; only those with Execute set are
// registered for execution.
//
// The image-processing stage is planned for every variant but executes
// only under HDR.
func Plan(cfg Config, format gputypes.TextureFormat) []stage.Descriptor {
	v := cfg.Variant()
	descs := make([]stage.Descriptor, 0, 7)

	add := func(d stage.Descriptor) {
		d.Format = format
		if d.Blend == (stage.BlendState{}) {
			d.Blend = stage.BlendFor(d.AlphaMode, gputypes.Color{})
		}
		descs = append(descs, d)
	}

	if v.Bloom() {
		add(stage.Descriptor{
			ID: PassID, Kind: stage.KindPass, Label: "sceneRenderTarget",
			Ratio: 1, AutoClear: true, Execute: true,
		})

		// Non-float buffers clip over-bright values, so they have to be
		// isolated explicitly. HDR buffers keep them.
		if !v.HDR() {
			add(stage.Descriptor{
				ID: HighlightsID, Kind: stage.KindHighlights, Label: "highlights",
				Ratio: cfg.BloomScale, ForcePOT: true, Execute: true,
			})
		}

		add(stage.Descriptor{
			ID: BlurXID, Kind: stage.KindBlur, Label: "horizontal blur",
			Ratio: cfg.BloomScale, ForcePOT: true, Execute: true,
			Axis: stage.AxisX, Kernel: initialBlurKernel,
		})
		add(stage.Descriptor{
			ID: BlurYID, Kind: stage.KindBlur, Label: "vertical blur",
			Ratio: cfg.BloomScale, ForcePOT: true, Execute: true,
			Axis: stage.AxisY, Kernel: initialBlurKernel,
		})

		copyBack := stage.Descriptor{
			ID: CopyBackID, Kind: stage.KindCopyBack, Label: "bloomBlendBlit",
			Ratio: cfg.BloomScale, ForcePOT: true, Execute: true,
			AlphaMode: stage.AlphaScreen,
		}
		if v.HDR() {
			w := cfg.BloomWeight
			copyBack.AlphaMode = stage.AlphaInterpolate
			copyBack.Blend = stage.BlendFor(stage.AlphaInterpolate, gputypes.Color{R: w, G: w, B: w, A: w})
		}
		add(copyBack)
	}

	add(stage.Descriptor{
		ID: ImageProcessingID, Kind: stage.KindImageProcessing, Label: "imageProcessing",
		Ratio: 1, AutoClear: true, Execute: v.HDR(),
	})

	if v.AntiAlias() {
		add(stage.Descriptor{
			ID: AntiAliasID, Kind: stage.KindAntiAlias, Label: "fxaa",
			Ratio: 1, Execute: true,
		})
	} else {
		add(stage.Descriptor{
			ID: FinalMergeID, Kind: stage.KindFinalMerge, Label: "finalMerge",
			Ratio: 1, Execute: true,
		})
	}
	return descs
}

// Link makes Consumer reuse Producer's buffer.
type Link struct {
	Consumer string
	Producer string

	// DisableAutoClear turns off clearing on the consumer so the shared
	// buffer's content survives until it is overwritten.
	DisableAutoClear bool
}

// sharingTable holds the buffer-sharing links of every variant with bloom.
// A link is valid only where the producer's content is dead by the time
// the consumer's buffer is written.
var sharingTable = map[Variant][]Link{
	VariantBloom: {
		{Consumer: FinalMergeID, Producer: PassID},
	},
	VariantBloomAntiAlias: {
		{Consumer: AntiAliasID, Producer: PassID},
	},
	VariantHDRBloom: {
		{Consumer: CopyBackID, Producer: BlurXID},
		{Consumer: ImageProcessingID, Producer: PassID, DisableAutoClear: true},
	},
	VariantHDRBloomAntiAlias: {
		{Consumer: CopyBackID, Producer: BlurXID},
		{Consumer: ImageProcessingID, Producer: PassID, DisableAutoClear: true},
	},
}

// SharingLinks returns the buffer-sharing links for a configuration.
// Variants without bloom share nothing.
func SharingLinks(cfg Config) []Link {
	links := sharingTable[cfg.Variant()]
	out := make([]Link, len(links))
	copy(out, links)
	return out
}
