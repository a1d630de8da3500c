// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.HDR || cfg.BloomEnabled || cfg.AntiAliasEnabled {
		t.Errorf("DefaultConfig() flags = %+v, want all false", cfg)
	}
	if cfg.BloomScale != 0.6 || cfg.BloomKernel != 64 || cfg.BloomWeight != 0.15 {
		t.Errorf("DefaultConfig() params = %v/%v/%v", cfg.BloomScale, cfg.BloomKernel, cfg.BloomWeight)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.Variant() != VariantMinimal {
		t.Errorf("Variant() = %v, want Minimal", cfg.Variant())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"zero scale", DefaultConfig().WithBloomScale(0), "bloomScale"},
		{"negative scale", DefaultConfig().WithBloomScale(-0.5), "bloomScale"},
		{"nan scale", DefaultConfig().WithBloomScale(math.NaN()), "bloomScale"},
		{"zero kernel", DefaultConfig().WithBloomKernel(0), "bloomKernel"},
		{"inf kernel", DefaultConfig().WithBloomKernel(math.Inf(1)), "bloomKernel"},
		{"negative weight", DefaultConfig().WithBloomWeight(-1), "bloomWeight"},
		{"nan weight", DefaultConfig().WithBloomWeight(math.NaN()), "bloomWeight"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cerr.Field, tt.field)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("ConfigError should wrap ErrInvalidConfig")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Error() = %q, want field name", err.Error())
			}
		})
	}

	ok := DefaultConfig().WithBloomWeight(0).WithBloomScale(2).WithBloomKernel(0.5)
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate(%+v) = %v", ok, err)
	}
}

func TestConfigWithIsCopy(t *testing.T) {
	base := DefaultConfig()
	changed := base.WithBloomEnabled(true).WithAntiAliasEnabled(true)
	if base.BloomEnabled || base.AntiAliasEnabled {
		t.Error("With methods modified the receiver")
	}
	if changed == base {
		t.Error("changed config compares equal to base")
	}
	if changed.WithBloomEnabled(false).WithAntiAliasEnabled(false) != base {
		t.Error("reverting every field should compare equal")
	}
}

func TestTextureFormatFor(t *testing.T) {
	if got := TextureFormatFor(Capabilities{SupportsFloatTargets: true}); got != gputypes.TextureFormatRGBA32Float {
		t.Errorf("float targets = %v, want RGBA32Float", got)
	}
	if got := TextureFormatFor(Capabilities{}); got != gputypes.TextureFormatRGBA16Float {
		t.Errorf("no float targets = %v, want RGBA16Float", got)
	}
}

func TestErrorTypes(t *testing.T) {
	cause := errors.New("cause")

	rerr := &ResourceError{Pipeline: "p", StageID: BlurXID, Err: cause}
	if !errors.Is(rerr, ErrResourceAllocation) || !errors.Is(rerr, cause) {
		t.Error("ResourceError should wrap ErrResourceAllocation and its cause")
	}
	if !strings.Contains(rerr.Error(), BlurXID) {
		t.Errorf("ResourceError.Error() = %q", rerr.Error())
	}

	aerr := &AttachmentError{Pipeline: "p", Op: "attach", Err: cause}
	if !errors.Is(aerr, ErrAttachment) || !errors.Is(aerr, cause) {
		t.Error("AttachmentError should wrap ErrAttachment and its cause")
	}
	if !strings.Contains(aerr.Error(), "attach") {
		t.Errorf("AttachmentError.Error() = %q", aerr.Error())
	}
}
