// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"

	"github.com/gogpu/postfx/stage"
)

// Factory builds software stages that allocate their targets on Device.
type Factory struct {
	// Device allocates every stage's targets.
	Device *Device

	// Processing configures the image-processing stage.
	Processing ProcessingOptions

	// FailOn makes NewStage return the mapped error for a stage id.
	// Used to exercise construction failures.
	FailOn map[string]error

	// Created counts successful constructions.
	Created int
}

// NewFactory creates a factory on dev with default processing options.
func NewFactory(dev *Device) *Factory {
	return &Factory{
		Device:     dev,
		Processing: DefaultProcessingOptions(),
	}
}

// NewStage constructs the stage described by desc.
func (f *Factory) NewStage(desc stage.Descriptor) (stage.Stage, error) {
	if err, ok := f.FailOn[desc.ID]; ok {
		return nil, err
	}
	if f.Device == nil {
		return nil, fmt.Errorf("software: factory has no device")
	}

	var s stage.Stage
	switch desc.Kind {
	case stage.KindPass, stage.KindCopyBack, stage.KindFinalMerge:
		s = newEffect(desc, f.Device, copyShader)
	case stage.KindHighlights:
		s = newEffect(desc, f.Device, highlightsShader)
	case stage.KindBlur:
		s = newBlur(desc, f.Device)
	case stage.KindImageProcessing:
		s = newEffect(desc, f.Device, processingShader(f.Processing))
	case stage.KindAntiAlias:
		s = newEffect(desc, f.Device, fxaaShader)
	default:
		return nil, fmt.Errorf("software: unsupported stage kind %v", desc.Kind)
	}
	f.Created++
	return s, nil
}

// Ensure Factory implements stage.Factory and blur stages implement
// stage.Blur.
var (
	_ stage.Factory = (*Factory)(nil)
	_ stage.Blur    = (*blurStage)(nil)
)
