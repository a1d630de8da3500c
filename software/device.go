// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/postfx/stage"
)

// ErrOutOfMemory is returned by Allocate when MaxAllocations live targets
// already exist.
var ErrOutOfMemory = errors.New("software: out of device memory")

// Device is a CPU device that allocates Buffers and tracks how many are
// live. It provides nil GPU handles, so it can stand in wherever a
// gpucontext.DeviceProvider is expected.
type Device struct {
	// MaxAllocations limits the number of live targets. Zero means
	// unlimited.
	MaxAllocations int

	mu    sync.Mutex
	live  map[*Buffer]struct{}
	total int
}

// NewDevice creates a device with no allocation limit.
func NewDevice() *Device {
	return &Device{live: make(map[*Buffer]struct{})}
}

// Allocate creates a zeroed Buffer.
func (d *Device) Allocate(width, height int, format gputypes.TextureFormat) (stage.Target, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("software: invalid target size %dx%d", width, height)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.live == nil {
		d.live = make(map[*Buffer]struct{})
	}
	if d.MaxAllocations > 0 && len(d.live) >= d.MaxAllocations {
		return nil, ErrOutOfMemory
	}
	b := NewBuffer(width, height, format)
	d.live[b] = struct{}{}
	d.total++
	return b, nil
}

// Release frees a Buffer. Releasing a target twice, or one this device did
// not allocate, is a no-op.
func (d *Device) Release(t stage.Target) {
	b, ok := t.(*Buffer)
	if !ok {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.live[b]; !ok {
		return
	}
	delete(d.live, b)
	b.pix = nil
}

// Live returns the number of allocated, unreleased targets.
func (d *Device) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.live)
}

// Total returns the number of targets allocated over the device lifetime.
func (d *Device) Total() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.total
}

// Device returns nil: there is no GPU device.
func (d *Device) Device() gpucontext.Device { return nil }

// Queue returns nil: there is no GPU queue.
func (d *Device) Queue() gpucontext.Queue { return nil }

// Adapter returns nil: there is no GPU adapter.
func (d *Device) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo describes the device as a software adapter.
func (d *Device) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "postfx software", Type: gpucontext.AdapterTypeSoftware}
}

// SurfaceFormat returns undefined: there is no surface.
func (d *Device) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure Device implements the device and allocator contracts.
var (
	_ gpucontext.DeviceProvider = (*Device)(nil)
	_ stage.Allocator           = (*Device)(nil)
)
