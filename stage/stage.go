// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stage

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// Camera is a view that post-processing stages render for.
//
// Cameras are owned by the host application. Stages key their per-camera
// render targets by camera and release them on Dispose, but never dispose
// the camera itself.
type Camera interface {
	// Name returns a human-readable identifier used in logs.
	Name() string
}

// Size is a render target extent in pixels.
type Size struct {
	Width  int
	Height int
}

// Target is an offscreen image a stage reads from or renders into.
type Target interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the texel format of the target.
	Format() gputypes.TextureFormat
}

// Allocator creates and releases render targets.
//
// Every successful Allocate must be balanced by exactly one Release.
type Allocator interface {
	Allocate(width, height int, format gputypes.TextureFormat) (Target, error)
	Release(t Target)
}

// ActivateHook runs every time a stage is activated for a camera, after its
// render target has been resolved. Hooks recompute per-frame parameters
// that depend on the actual target size.
type ActivateHook func(s Stage, cam Camera, target, canvas Size)

// Stage is one post-processing effect: it consumes one image and produces one.
//
// A stage renders from its own input target into the input target of the
// next stage (or the screen). Output sharing makes a stage use another
// stage's input target instead of allocating its own.
type Stage interface {
	// Name returns the stage label.
	Name() string

	// Descriptor returns the construction parameters.
	Descriptor() Descriptor

	// AutoClear reports whether the input target is cleared before
	// another stage renders into it.
	AutoClear() bool

	// SetAutoClear enables or disables automatic clearing.
	SetAutoClear(enabled bool)

	// ShareOutputWith makes this stage reuse producer's target.
	ShareOutputWith(producer Stage)

	// SharedWith returns the stage whose target is reused, or nil.
	SharedWith() Stage

	// OnActivate registers a hook run on every activation.
	OnActivate(hook ActivateHook)

	// Activate resolves the input target for cam at the current canvas
	// size, allocating or resizing it as needed, and runs the hooks.
	Activate(cam Camera, canvas Size) (Target, error)

	// Input returns the resolved input target for cam, or nil.
	Input(cam Camera) Target

	// Apply renders src into dst. When clear is set, dst is cleared first.
	Apply(cam Camera, src, dst Target, clear bool) error

	// Dispose releases every resource the stage holds for cam.
	Dispose(cam Camera)

	// Cameras returns the cameras the stage currently holds targets for.
	Cameras() []Camera
}

// Blur is a directional blur stage with a mutable kernel width.
type Blur interface {
	Stage

	// Axis returns the blur direction.
	Axis() Axis

	// Kernel returns the kernel width in target pixels.
	Kernel() float64

	// SetKernel sets the kernel width in target pixels.
	SetKernel(kernel float64)
}

// Factory constructs stages from descriptors.
type Factory interface {
	NewStage(desc Descriptor) (Stage, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(desc Descriptor) (Stage, error)

// NewStage calls f(desc).
func (f FactoryFunc) NewStage(desc Descriptor) (Stage, error) {
	return f(desc)
}

// Errors.
var (
	// ErrSizeMismatch is returned by Apply when src and dst are
	// incompatible for the stage.
	ErrSizeMismatch = errors.New("stage: target size mismatch")

	// ErrUnsupportedTarget is returned when a backend receives a target
	// it did not allocate.
	ErrUnsupportedTarget = errors.New("stage: unsupported target")

	// ErrNotActivated is returned by Apply when the stage has no input
	// target for the camera.
	ErrNotActivated = errors.New("stage: not activated for camera")
)
