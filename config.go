// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import (
	"math"

	"github.com/gogpu/gputypes"
)

// Default configuration values.
const (
	DefaultBloomScale  = 0.6
	DefaultBloomKernel = 64
	DefaultBloomWeight = 0.15
)

// Config is the pipeline configuration. It is a value: the With methods
// return modified copies, and a pipeline rebuilds only when the new value
// differs from the current one.
type Config struct {
	// HDR selects floating-point intermediate processing. Fixed at
	// pipeline construction.
	HDR bool

	// BloomEnabled adds the bloom sub-chain.
	BloomEnabled bool

	// AntiAliasEnabled ends the chain with an anti-alias stage instead
	// of a final merge.
	AntiAliasEnabled bool

	// BloomScale is the bloom resolution relative to the canvas (> 0).
	BloomScale float64

	// BloomKernel is the blur kernel width relative to the canvas (> 0).
	BloomKernel float64

	// BloomWeight is the bloom contribution under HDR, in practice [0, 1].
	BloomWeight float64
}

// DefaultConfig returns bloom and anti-aliasing disabled with default bloom
// parameters.
func DefaultConfig() Config {
	return Config{
		BloomScale:  DefaultBloomScale,
		BloomKernel: DefaultBloomKernel,
		BloomWeight: DefaultBloomWeight,
	}
}

// Validate checks the numeric parameters.
func (c Config) Validate() error {
	if err := positive("bloomScale", c.BloomScale); err != nil {
		return err
	}
	if err := positive("bloomKernel", c.BloomKernel); err != nil {
		return err
	}
	if math.IsNaN(c.BloomWeight) || math.IsInf(c.BloomWeight, 0) {
		return &ConfigError{Field: "bloomWeight", Value: c.BloomWeight, Reason: "must be finite"}
	}
	if c.BloomWeight < 0 {
		return &ConfigError{Field: "bloomWeight", Value: c.BloomWeight, Reason: "must be >= 0"}
	}
	return nil
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ConfigError{Field: field, Value: v, Reason: "must be finite"}
	}
	if v <= 0 {
		return &ConfigError{Field: field, Value: v, Reason: "must be > 0"}
	}
	return nil
}

// WithBloomEnabled returns a copy with BloomEnabled set.
func (c Config) WithBloomEnabled(enabled bool) Config {
	c.BloomEnabled = enabled
	return c
}

// WithAntiAliasEnabled returns a copy with AntiAliasEnabled set.
func (c Config) WithAntiAliasEnabled(enabled bool) Config {
	c.AntiAliasEnabled = enabled
	return c
}

// WithBloomScale returns a copy with BloomScale set.
func (c Config) WithBloomScale(scale float64) Config {
	c.BloomScale = scale
	return c
}

// WithBloomKernel returns a copy with BloomKernel set.
func (c Config) WithBloomKernel(kernel float64) Config {
	c.BloomKernel = kernel
	return c
}

// WithBloomWeight returns a copy with BloomWeight set.
func (c Config) WithBloomWeight(weight float64) Config {
	c.BloomWeight = weight
	return c
}

// Variant returns the topology variant selected by the boolean settings.
func (c Config) Variant() Variant {
	var v Variant
	if c.AntiAliasEnabled {
		v |= variantAntiAlias
	}
	if c.BloomEnabled {
		v |= variantBloom
	}
	if c.HDR {
		v |= variantHDR
	}
	return v
}

// Capabilities describes the device features the pipeline depends on.
type Capabilities struct {
	// SupportsFloatTargets reports whether 32-bit float render targets
	// are available.
	SupportsFloatTargets bool
}

// TextureFormatFor returns the texel format used by every stage: 32-bit
// float when supported, 16-bit float otherwise.
func TextureFormatFor(caps Capabilities) gputypes.TextureFormat {
	if caps.SupportsFloatTargets {
		return gputypes.TextureFormatRGBA32Float
	}
	return gputypes.TextureFormatRGBA16Float
}
