// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package manager

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/postfx/stage"
)

// StageGetter returns the current instance of a registered stage.
// It is resolved every frame so a pipeline can swap instances on rebuild.
type StageGetter func() stage.Stage

// Entry is one registration in a pipeline's stage registry.
type Entry struct {
	// ID is unique within the pipeline.
	ID string

	// Get returns the stage instance.
	Get StageGetter

	// Execute reports whether the stage runs each frame.
	Execute bool
}

// pipeline is the manager's view of a named pipeline.
type pipeline struct {
	name    string
	entries []Entry
	cameras []stage.Camera
}

// Manager tracks render pipelines, their stage registries and the cameras
// attached to them, and executes attached pipelines for a camera each frame.
//
// Example:
//
//	m := manager.New()
//	_ = m.AddPipeline("default")
//	_ = m.Register("default", "pass", func() stage.Stage { return pass }, true)
//	_ = m.Attach("default", []stage.Camera{cam})
//	err := m.Render(cam, canvas, drawScene, screen)
//
// Manager is safe for concurrent use. Render holds a read lock while it
// snapshots the registrations and runs stages without holding it.
type Manager struct {
	mu        sync.RWMutex
	pipelines map[string]*pipeline
	order     []string
}

// New creates an empty manager.
func New() *Manager {
	return &Manager{
		pipelines: make(map[string]*pipeline),
	}
}

// AddPipeline adds an empty pipeline.
func (m *Manager) AddPipeline(name string) error {
	if name == "" {
		return ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.pipelines[name]; ok {
		return fmt.Errorf("%w: %s", ErrPipelineExists, name)
	}
	m.pipelines[name] = &pipeline{name: name}
	m.order = append(m.order, name)
	return nil
}

// RemovePipeline removes a pipeline with its registrations and camera
// attachments. Removing an unknown pipeline is a no-op.
func (m *Manager) RemovePipeline(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.pipelines[name]; !ok {
		return
	}
	delete(m.pipelines, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Pipelines returns the pipeline names in insertion order.
func (m *Manager) Pipelines() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Register appends a stage to a pipeline's registry. Stages run in
// registration order.
func (m *Manager) Register(pipelineName, stageID string, get StageGetter, execute bool) error {
	if get == nil {
		return fmt.Errorf("manager: register %s/%s: nil getter", pipelineName, stageID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.lookup(pipelineName)
	if err != nil {
		return err
	}
	for _, e := range p.entries {
		if e.ID == stageID {
			return fmt.Errorf("%w: %s/%s", ErrDuplicateStage, pipelineName, stageID)
		}
	}
	p.entries = append(p.entries, Entry{ID: stageID, Get: get, Execute: execute})
	return nil
}

// Reset clears a pipeline's registry. Camera attachments are kept.
func (m *Manager) Reset(pipelineName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.lookup(pipelineName)
	if err != nil {
		return err
	}
	p.entries = nil
	return nil
}

// Entries returns the ids of the registered stages that execute, in order.
func (m *Manager) Entries(pipelineName string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.pipelines[pipelineName]
	if !ok {
		return nil
	}
	var ids []string
	for _, e := range p.entries {
		if e.Execute {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Attach attaches cameras to a pipeline. Cameras already attached are
// skipped, so repeated calls with the same set are no-ops.
func (m *Manager) Attach(pipelineName string, cams []stage.Camera) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.lookup(pipelineName)
	if err != nil {
		return err
	}
	for _, cam := range cams {
		if cam == nil {
			return ErrNilCamera
		}
	}
	for _, cam := range cams {
		if indexOf(p.cameras, cam) < 0 {
			p.cameras = append(p.cameras, cam)
		}
	}
	return nil
}

// Detach detaches cameras from a pipeline. Cameras not attached are
// skipped.
func (m *Manager) Detach(pipelineName string, cams []stage.Camera) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.lookup(pipelineName)
	if err != nil {
		return err
	}
	for _, cam := range cams {
		if cam == nil {
			return ErrNilCamera
		}
	}
	for _, cam := range cams {
		if i := indexOf(p.cameras, cam); i >= 0 {
			p.cameras = append(p.cameras[:i], p.cameras[i+1:]...)
		}
	}
	return nil
}

// Cameras returns the cameras attached to a pipeline.
func (m *Manager) Cameras(pipelineName string) []stage.Camera {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.pipelines[pipelineName]
	if !ok {
		return nil
	}
	out := make([]stage.Camera, len(p.cameras))
	copy(out, p.cameras)
	return out
}

// lookup returns a pipeline by name. Must be called with lock held.
func (m *Manager) lookup(name string) (*pipeline, error) {
	p, ok := m.pipelines[name]
	if !ok {
		return nil, &PipelineNotFoundError{Name: name}
	}
	return p, nil
}

func indexOf(cams []stage.Camera, cam stage.Camera) int {
	for i, c := range cams {
		if c == cam {
			return i
		}
	}
	return -1
}

// Errors.
var (
	// ErrEmptyName is returned when a pipeline is added without a name.
	ErrEmptyName = errors.New("manager: empty pipeline name")

	// ErrPipelineExists is returned when a pipeline name is already taken.
	ErrPipelineExists = errors.New("manager: pipeline already exists")

	// ErrDuplicateStage is returned when a stage id is registered twice
	// in the same pipeline.
	ErrDuplicateStage = errors.New("manager: duplicate stage id")

	// ErrNilCamera is returned when a nil camera is attached or detached.
	ErrNilCamera = errors.New("manager: nil camera")
)

// PipelineNotFoundError indicates a named pipeline is not registered.
type PipelineNotFoundError struct {
	Name string
}

func (e *PipelineNotFoundError) Error() string {
	return "manager: pipeline not found: " + e.Name
}
