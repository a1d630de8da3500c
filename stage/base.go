// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stage

import "fmt"

// slot is the input target a stage holds for one camera.
type slot struct {
	target Target
	owned  bool
}

// Base implements the Stage bookkeeping shared by all backends.
// Embedders call Init once and implement Apply.
type Base struct {
	self      Stage
	desc      Descriptor
	alloc     Allocator
	autoClear bool
	shared    Stage
	hooks     []ActivateHook

	slots map[Camera]*slot
	order []Camera
}

// Init prepares the base for use. self is the embedding stage, passed to
// activate hooks.
func (b *Base) Init(self Stage, desc Descriptor, alloc Allocator) {
	b.self = self
	b.desc = desc
	b.alloc = alloc
	b.autoClear = desc.AutoClear
	b.slots = make(map[Camera]*slot)
}

// Name returns the stage label, or the id if no label is set.
func (b *Base) Name() string {
	if b.desc.Label != "" {
		return b.desc.Label
	}
	return b.desc.ID
}

// Descriptor returns the construction parameters.
func (b *Base) Descriptor() Descriptor {
	return b.desc
}

// AutoClear reports whether the input target is cleared before use.
func (b *Base) AutoClear() bool {
	return b.autoClear
}

// SetAutoClear enables or disables automatic clearing.
func (b *Base) SetAutoClear(enabled bool) {
	b.autoClear = enabled
}

// ShareOutputWith makes this stage reuse producer's input target.
// Passing nil restores a private target on the next activation.
func (b *Base) ShareOutputWith(producer Stage) {
	b.shared = producer
}

// SharedWith returns the producer whose target is reused, or nil.
func (b *Base) SharedWith() Stage {
	return b.shared
}

// OnActivate registers a hook run after every activation.
func (b *Base) OnActivate(hook ActivateHook) {
	if hook != nil {
		b.hooks = append(b.hooks, hook)
	}
}

// TargetSize returns the target extent for a canvas size.
func (b *Base) TargetSize(canvas Size) Size {
	w := scaleExtent(canvas.Width, b.desc.Ratio)
	h := scaleExtent(canvas.Height, b.desc.Ratio)
	if b.desc.ForcePOT {
		w = NextPowerOfTwo(w)
		h = NextPowerOfTwo(h)
	}
	return Size{Width: w, Height: h}
}

// Activate resolves the input target for cam and runs the hooks.
func (b *Base) Activate(cam Camera, canvas Size) (Target, error) {
	if cam == nil {
		return nil, fmt.Errorf("stage %s: nil camera", b.desc.ID)
	}

	var t Target
	if b.shared != nil {
		t = b.shared.Input(cam)
		if t == nil {
			var err error
			if t, err = b.shared.Activate(cam, canvas); err != nil {
				return nil, err
			}
		}
		b.setSlot(cam, t, false)
	} else {
		size := b.TargetSize(canvas)
		s := b.slots[cam]
		if s != nil && s.owned && s.target.Width() == size.Width && s.target.Height() == size.Height {
			t = s.target
		} else {
			var err error
			t, err = b.alloc.Allocate(size.Width, size.Height, b.desc.Format)
			if err != nil {
				return nil, fmt.Errorf("stage %s: allocate %dx%d: %w", b.desc.ID, size.Width, size.Height, err)
			}
			b.setSlot(cam, t, true)
		}
	}

	actual := Size{Width: t.Width(), Height: t.Height()}
	for _, hook := range b.hooks {
		hook(b.self, cam, actual, canvas)
	}
	return t, nil
}

// Input returns the resolved input target for cam, or nil.
func (b *Base) Input(cam Camera) Target {
	if s := b.slots[cam]; s != nil {
		return s.target
	}
	return nil
}

// Dispose releases the target held for cam. Shared targets are left to
// their producer.
func (b *Base) Dispose(cam Camera) {
	s, ok := b.slots[cam]
	if !ok {
		return
	}
	if s.owned {
		b.alloc.Release(s.target)
	}
	delete(b.slots, cam)
	for i, c := range b.order {
		if c == cam {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Cameras returns the cameras the stage holds targets for, in first
// activation order.
func (b *Base) Cameras() []Camera {
	out := make([]Camera, len(b.order))
	copy(out, b.order)
	return out
}

// setSlot replaces the slot for cam, releasing a previously owned target.
func (b *Base) setSlot(cam Camera, t Target, owned bool) {
	if s, ok := b.slots[cam]; ok {
		if s.owned && s.target != t {
			b.alloc.Release(s.target)
		}
		s.target = t
		s.owned = owned
		return
	}
	b.slots[cam] = &slot{target: t, owned: owned}
	b.order = append(b.order, cam)
}

// scaleExtent applies a ratio to an extent, truncating and keeping at
// least one pixel.
func scaleExtent(extent int, ratio float64) int {
	v := int(float64(extent) * ratio)
	if v < 1 {
		return 1
	}
	return v
}

// NextPowerOfTwo returns the smallest power of two >= v (1 for v <= 1).
func NextPowerOfTwo(v int) int {
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}
