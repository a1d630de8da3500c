// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software provides a CPU implementation of the post-processing
// stage contract.
//
// It is the reference backend for tests and headless rendering: targets
// are float RGBA Buffers, so HDR values survive the chain, and the Device
// counts live allocations so leaks show up as a non-zero Live count.
//
// Usage:
//
//	dev := software.NewDevice()
//	factory := software.NewFactory(dev)
//	p, err := postfx.New("default", true, postfx.Environment{
//	    Manager: manager.New(),
//	    Factory: factory,
//	    Device:  dev,
//	})
//
// The stages implement the effects with simple, readable numerics:
//   - Pass, copy-back and final merge: bilinear resample plus blend state
//   - Highlights: luminance step at HighlightsThreshold
//   - Blur: separable Gaussian, sigma = kernel / 6
//   - Image processing: exposure, Reinhard, contrast, gamma
//   - Anti-alias: luma-contrast edge blend (FXAA-style)
package software
