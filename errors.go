// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import (
	"errors"
	"fmt"
)

// Errors.
var (
	// ErrInvalidConfig is wrapped by every ConfigError.
	ErrInvalidConfig = errors.New("postfx: invalid configuration")

	// ErrResourceAllocation is wrapped by every ResourceError.
	ErrResourceAllocation = errors.New("postfx: resource allocation failed")

	// ErrAttachment is wrapped by every AttachmentError.
	ErrAttachment = errors.New("postfx: camera attachment failed")

	// ErrHDRImmutable is returned when a configuration change tries to
	// switch HDR after construction.
	ErrHDRImmutable = errors.New("postfx: hdr cannot change after construction")

	// ErrDisposed is returned by every mutating call after Dispose.
	ErrDisposed = errors.New("postfx: pipeline disposed")

	// ErrNoManager is returned when an Environment has no manager.
	ErrNoManager = errors.New("postfx: environment has no pipeline manager")

	// ErrNoFactory is returned when an Environment has no stage factory.
	ErrNoFactory = errors.New("postfx: environment has no stage factory")

	// ErrStageKind is returned when a factory returns a stage that does
	// not implement the interface its kind requires.
	ErrStageKind = errors.New("postfx: stage does not implement its kind")

	// ErrCustomType is returned when parsing a record of another
	// pipeline kind.
	ErrCustomType = errors.New("postfx: record is not a default rendering pipeline")
)

// ConfigError reports an invalid configuration value. The pipeline is left
// unchanged when a setter returns a ConfigError.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("postfx: invalid configuration: %s=%v (%s)", e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// ResourceError reports a stage that could not be constructed or wired.
// The pipeline is left with no stages until the next successful rebuild.
type ResourceError struct {
	Pipeline string
	StageID  string
	Err      error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("postfx: pipeline %s: stage %s: %v", e.Pipeline, e.StageID, e.Err)
}

// Unwrap returns ErrResourceAllocation and the underlying error.
func (e *ResourceError) Unwrap() []error {
	return []error{ErrResourceAllocation, e.Err}
}

// AttachmentError reports a failed attach or detach. The chain itself is
// intact, but cameras may not be rendering through it.
type AttachmentError struct {
	Pipeline string
	Op       string
	Err      error
}

func (e *AttachmentError) Error() string {
	return fmt.Sprintf("postfx: pipeline %s: %s cameras: %v", e.Pipeline, e.Op, e.Err)
}

// Unwrap returns ErrAttachment and the underlying error.
func (e *AttachmentError) Unwrap() []error {
	return []error{ErrAttachment, e.Err}
}
