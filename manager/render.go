// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package manager

import (
	"fmt"

	"github.com/gogpu/postfx/stage"
)

// SceneFunc draws the scene into the first target of the chain.
type SceneFunc func(dst stage.Target) error

// Render runs one frame for cam.
//
// The executed stages of every pipeline attached to cam are chained in
// pipeline insertion order, then registration order. Each stage is
// activated first, which resolves its input target and runs its hooks.
// The scene is drawn into the first input and owns clearing it. Each stage renders into the
// next stage's input, and the last stage renders into screen. A
// destination is cleared first when the stage owning it has auto-clear
// enabled; screen is never cleared.
//
// With no stages attached, the scene is drawn directly into screen.
func (m *Manager) Render(cam stage.Camera, canvas stage.Size, scene SceneFunc, screen stage.Target) error {
	if cam == nil {
		return ErrNilCamera
	}

	stages := m.chain(cam)
	if len(stages) == 0 {
		return scene(screen)
	}

	inputs := make([]stage.Target, len(stages))
	for i, s := range stages {
		t, err := s.Activate(cam, canvas)
		if err != nil {
			return fmt.Errorf("manager: activate %s: %w", s.Name(), err)
		}
		inputs[i] = t
	}

	if err := scene(inputs[0]); err != nil {
		return fmt.Errorf("manager: draw scene: %w", err)
	}

	for i, s := range stages {
		dst, clear := screen, false
		if i+1 < len(stages) {
			dst, clear = inputs[i+1], stages[i+1].AutoClear()
		}
		if err := s.Apply(cam, inputs[i], dst, clear); err != nil {
			return fmt.Errorf("manager: apply %s: %w", s.Name(), err)
		}
	}
	return nil
}

// chain resolves the executed stages for cam.
func (m *Manager) chain(cam stage.Camera) []stage.Stage {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var stages []stage.Stage
	for _, name := range m.order {
		p := m.pipelines[name]
		if indexOf(p.cameras, cam) < 0 {
			continue
		}
		for _, e := range p.entries {
			if !e.Execute {
				continue
			}
			if s := e.Get(); s != nil {
				stages = append(stages, s)
			}
		}
	}
	return stages
}
