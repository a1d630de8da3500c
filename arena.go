// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import "github.com/gogpu/postfx/stage"

// arena owns the stages of one build, indexed by id in construction order.
type arena struct {
	ids    []string
	stages map[string]stage.Stage
}

func (a *arena) add(id string, s stage.Stage) {
	if a.stages == nil {
		a.stages = make(map[string]stage.Stage)
	}
	a.ids = append(a.ids, id)
	a.stages[id] = s
}

func (a *arena) get(id string) stage.Stage {
	return a.stages[id]
}

func (a *arena) len() int {
	return len(a.ids)
}

// each calls fn for every stage in construction order.
func (a *arena) each(fn func(id string, s stage.Stage)) {
	for _, id := range a.ids {
		fn(id, a.stages[id])
	}
}

// disposeCameras releases every stage's targets for cams.
func (a *arena) disposeCameras(cams []stage.Camera) {
	for _, id := range a.ids {
		s := a.stages[id]
		for _, cam := range cams {
			s.Dispose(cam)
		}
	}
}

// clear disposes every stage for every camera in cams, then for any camera
// a stage still holds a target for, and drops all references. All cameras
// of one stage are released before moving to the next stage.
func (a *arena) clear(cams []stage.Camera) {
	for _, id := range a.ids {
		s := a.stages[id]
		for _, cam := range cams {
			s.Dispose(cam)
		}
		for _, cam := range s.Cameras() {
			s.Dispose(cam)
		}
	}
	a.ids = nil
	a.stages = nil
}
