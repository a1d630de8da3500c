// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/postfx/manager"
	"github.com/gogpu/postfx/stage"
)

// Environment holds the collaborators a pipeline is built against.
type Environment struct {
	// Manager runs the pipeline's stages for attached cameras. Required.
	Manager *manager.Manager

	// Factory constructs stage instances. Required.
	Factory stage.Factory

	// Caps selects the texel format, once, at construction.
	Caps Capabilities

	// Device is the host device the stages render on. Optional; the
	// pipeline only hands it back through Device.
	Device gpucontext.DeviceProvider
}

// Pipeline is the default post-processing pipeline: optional bloom, tone
// processing under HDR, and either anti-aliasing or a final merge.
//
// Every configuration change rebuilds the whole chain: the previous stages
// are disposed for all cameras, new stages are constructed from Plan,
// registered with the manager, linked for buffer sharing, and the cameras
// are re-attached. Stages are never reused across rebuilds.
//
// Pipeline is NOT thread-safe and not reentrant. Configuration changes
// must be serialized by the caller and must not be made from stage hooks.
type Pipeline struct {
	name    string
	env     Environment
	format  gputypes.TextureFormat
	cfg     Config
	cameras []stage.Camera
	stages  arena
	logger  *slog.Logger
	rootURL string

	disposed bool
}

// New creates a pipeline, registers it with the manager and builds its
// chain. Any failure, including a failed camera attachment, aborts
// construction and leaves the manager without the pipeline.
func New(name string, hdr bool, env Environment, opts ...Option) (*Pipeline, error) {
	if env.Manager == nil {
		return nil, ErrNoManager
	}
	if env.Factory == nil {
		return nil, ErrNoFactory
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	cfg := o.config
	cfg.HDR = hdr
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, cam := range o.cameras {
		if cam == nil {
			return nil, &AttachmentError{Pipeline: name, Op: "attach", Err: manager.ErrNilCamera}
		}
	}

	p := &Pipeline{
		name:    name,
		env:     env,
		format:  TextureFormatFor(env.Caps),
		cfg:     cfg,
		logger:  o.logger,
		rootURL: o.rootURL,
	}
	for _, cam := range o.cameras {
		p.addCamera(cam)
	}

	if err := env.Manager.AddPipeline(name); err != nil {
		return nil, err
	}
	if err := p.rebuild(); err != nil {
		p.stages.clear(p.cameras)
		env.Manager.RemovePipeline(name)
		return nil, err
	}

	p.log().Info("postfx: pipeline created",
		"name", name, "hdr", hdr, "format", p.format, "variant", cfg.Variant())
	return p, nil
}

// Name returns the pipeline name.
func (p *Pipeline) Name() string { return p.name }

// Config returns the current configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// HDR reports whether the pipeline processes in floating point.
func (p *Pipeline) HDR() bool { return p.cfg.HDR }

// BloomEnabled reports whether bloom is enabled.
func (p *Pipeline) BloomEnabled() bool { return p.cfg.BloomEnabled }

// AntiAliasEnabled reports whether anti-aliasing is enabled.
func (p *Pipeline) AntiAliasEnabled() bool { return p.cfg.AntiAliasEnabled }

// BloomScale returns the bloom resolution relative to the canvas.
func (p *Pipeline) BloomScale() float64 { return p.cfg.BloomScale }

// BloomKernel returns the bloom blur kernel width.
func (p *Pipeline) BloomKernel() float64 { return p.cfg.BloomKernel }

// BloomWeight returns the bloom weight used under HDR.
func (p *Pipeline) BloomWeight() float64 { return p.cfg.BloomWeight }

// TextureFormat returns the texel format of every stage.
func (p *Pipeline) TextureFormat() gputypes.TextureFormat { return p.format }

// Device returns the environment's device, or nil.
func (p *Pipeline) Device() gpucontext.DeviceProvider { return p.env.Device }

// RootURL returns the base location for assets referenced by the record.
func (p *Pipeline) RootURL() string { return p.rootURL }

// Cameras returns the cameras the pipeline is attached to.
func (p *Pipeline) Cameras() []stage.Camera {
	out := make([]stage.Camera, len(p.cameras))
	copy(out, p.cameras)
	return out
}

// SetBloomEnabled enables or disables bloom.
func (p *Pipeline) SetBloomEnabled(enabled bool) error {
	return p.update(p.cfg.WithBloomEnabled(enabled))
}

// SetAntiAliasEnabled enables or disables anti-aliasing.
func (p *Pipeline) SetAntiAliasEnabled(enabled bool) error {
	return p.update(p.cfg.WithAntiAliasEnabled(enabled))
}

// SetBloomScale sets the bloom resolution relative to the canvas.
func (p *Pipeline) SetBloomScale(scale float64) error {
	return p.update(p.cfg.WithBloomScale(scale))
}

// SetBloomKernel sets the bloom blur kernel width.
func (p *Pipeline) SetBloomKernel(kernel float64) error {
	return p.update(p.cfg.WithBloomKernel(kernel))
}

// SetBloomWeight sets the bloom weight used under HDR.
func (p *Pipeline) SetBloomWeight(weight float64) error {
	return p.update(p.cfg.WithBloomWeight(weight))
}

// SetConfig replaces the whole configuration. HDR must not change.
func (p *Pipeline) SetConfig(cfg Config) error {
	if p.disposed {
		return ErrDisposed
	}
	if cfg.HDR != p.cfg.HDR {
		return ErrHDRImmutable
	}
	return p.update(cfg)
}

// update validates next and rebuilds if it differs from the current
// configuration. An invalid value leaves the current chain untouched.
func (p *Pipeline) update(next Config) error {
	if p.disposed {
		return ErrDisposed
	}
	if err := next.Validate(); err != nil {
		return err
	}
	if next == p.cfg {
		return nil
	}
	p.cfg = next
	return p.rebuild()
}

// Rebuild tears down the current chain and builds a new one from the
// current configuration.
//
// If a stage cannot be constructed, the stages built so far are disposed
// and the pipeline is left with no stages until the next successful
// rebuild; the returned error is a *ResourceError. Cameras remain attached
// either way. A failed detach or attach is returned as an
// *AttachmentError after the chain is built.
func (p *Pipeline) Rebuild() error {
	if p.disposed {
		return ErrDisposed
	}
	return p.rebuild()
}

func (p *Pipeline) rebuild() error {
	log := p.log()
	mgr := p.env.Manager
	var attachErr error

	// Detach, then release every stage for every camera.
	if len(p.cameras) > 0 {
		if err := mgr.Detach(p.name, p.cameras); err != nil {
			attachErr = &AttachmentError{Pipeline: p.name, Op: "detach", Err: err}
		}
	}
	disposed := p.stages.len()
	p.stages.clear(p.cameras)

	var buildErr error
	if err := mgr.Reset(p.name); err != nil {
		buildErr = &ResourceError{Pipeline: p.name, StageID: "", Err: err}
	} else {
		buildErr = p.build()
	}
	if buildErr != nil {
		p.stages.clear(p.cameras)
		_ = mgr.Reset(p.name)
		log.Warn("postfx: rebuild failed, pipeline has no stages",
			"name", p.name, "variant", p.cfg.Variant(), "err", buildErr)
	}

	// Cameras stay attached to an empty pipeline so the next successful
	// rebuild picks them up.
	if len(p.cameras) > 0 {
		if err := mgr.Attach(p.name, p.cameras); err != nil && attachErr == nil {
			attachErr = &AttachmentError{Pipeline: p.name, Op: "attach", Err: err}
		}
	}
	if buildErr != nil {
		return buildErr
	}
	if attachErr != nil {
		log.Warn("postfx: cameras not re-attached", "name", p.name, "err", attachErr)
		return attachErr
	}

	log.Debug("postfx: rebuilt",
		"name", p.name,
		"variant", p.cfg.Variant(),
		"disposed", disposed,
		"constructed", p.stages.len(),
		"topology", p.Topology(),
		"cameras", len(p.cameras))
	return nil
}

// build constructs, registers and links the stages for the current
// configuration.
func (p *Pipeline) build() error {
	for _, desc := range Plan(p.cfg, p.format) {
		s, err := p.env.Factory.NewStage(desc)
		if err != nil {
			return &ResourceError{Pipeline: p.name, StageID: desc.ID, Err: err}
		}
		if s == nil {
			return &ResourceError{Pipeline: p.name, StageID: desc.ID, Err: fmt.Errorf("factory returned nil stage")}
		}
		p.stages.add(desc.ID, s)

		if desc.Kind == stage.KindBlur {
			b, ok := s.(stage.Blur)
			if !ok {
				return &ResourceError{Pipeline: p.name, StageID: desc.ID, Err: ErrStageKind}
			}
			p.hookBlur(b)
		}

		if desc.Execute {
			id := desc.ID
			get := func() stage.Stage { return p.stages.get(id) }
			if err := p.env.Manager.Register(p.name, id, get, true); err != nil {
				return &ResourceError{Pipeline: p.name, StageID: id, Err: err}
			}
		}
	}
	return p.applySharing()
}

// hookBlur scales the bloom kernel by the blur target's actual extent
// along its axis relative to the canvas, on every activation. Power-of-two
// rounding makes the target size differ from ratio x canvas.
func (p *Pipeline) hookBlur(b stage.Blur) {
	b.OnActivate(func(_ stage.Stage, _ stage.Camera, target, canvas stage.Size) {
		extent, full := target.Width, canvas.Width
		if b.Axis() == stage.AxisY {
			extent, full = target.Height, canvas.Height
		}
		if full <= 0 {
			return
		}
		b.SetKernel(p.cfg.BloomKernel * float64(extent) / float64(full))
	})
}

// applySharing links the stages that reuse another stage's buffer.
func (p *Pipeline) applySharing() error {
	for _, link := range SharingLinks(p.cfg) {
		consumer := p.stages.get(link.Consumer)
		producer := p.stages.get(link.Producer)
		if consumer == nil || producer == nil {
			return &ResourceError{
				Pipeline: p.name,
				StageID:  link.Consumer,
				Err:      fmt.Errorf("sharing link %s -> %s: stage missing", link.Consumer, link.Producer),
			}
		}
		consumer.ShareOutputWith(producer)
		if link.DisableAutoClear {
			consumer.SetAutoClear(false)
		}
		p.log().Debug("postfx: sharing buffer", "consumer", link.Consumer, "producer", link.Producer)
	}
	return nil
}

// AttachCameras attaches additional cameras. Cameras already attached are
// ignored.
func (p *Pipeline) AttachCameras(cams ...stage.Camera) error {
	if p.disposed {
		return ErrDisposed
	}
	var added []stage.Camera
	for _, cam := range cams {
		if cam == nil {
			return &AttachmentError{Pipeline: p.name, Op: "attach", Err: manager.ErrNilCamera}
		}
		if p.addCamera(cam) {
			added = append(added, cam)
		}
	}
	if len(added) == 0 {
		return nil
	}
	if err := p.env.Manager.Attach(p.name, added); err != nil {
		return &AttachmentError{Pipeline: p.name, Op: "attach", Err: err}
	}
	return nil
}

// DetachCameras detaches cameras and releases the stage targets held for
// them. The cameras themselves are not disposed.
func (p *Pipeline) DetachCameras(cams ...stage.Camera) error {
	if p.disposed {
		return ErrDisposed
	}
	var removed []stage.Camera
	for _, cam := range cams {
		if p.removeCamera(cam) {
			removed = append(removed, cam)
		}
	}
	if len(removed) == 0 {
		return nil
	}
	err := p.env.Manager.Detach(p.name, removed)
	p.stages.disposeCameras(removed)
	if err != nil {
		return &AttachmentError{Pipeline: p.name, Op: "detach", Err: err}
	}
	return nil
}

// Dispose detaches every camera, releases every stage and removes the
// pipeline from the manager. The pipeline cannot be used afterwards; a
// second call returns ErrDisposed.
func (p *Pipeline) Dispose() error {
	if p.disposed {
		return ErrDisposed
	}
	p.disposed = true

	var err error
	if len(p.cameras) > 0 {
		if derr := p.env.Manager.Detach(p.name, p.cameras); derr != nil {
			err = &AttachmentError{Pipeline: p.name, Op: "detach", Err: derr}
		}
	}
	p.stages.clear(p.cameras)
	p.env.Manager.RemovePipeline(p.name)

	p.log().Info("postfx: pipeline disposed", "name", p.name)
	return err
}

// Topology returns the ids of the executed stages in execution order.
func (p *Pipeline) Topology() []string {
	var ids []string
	p.stages.each(func(id string, s stage.Stage) {
		if s.Descriptor().Execute {
			ids = append(ids, id)
		}
	})
	return ids
}

// Stage returns a constructed stage by id, whether or not it executes.
func (p *Pipeline) Stage(id string) (stage.Stage, bool) {
	s := p.stages.get(id)
	return s, s != nil
}

// Stages returns every constructed stage in construction order.
func (p *Pipeline) Stages() []stage.Stage {
	out := make([]stage.Stage, 0, p.stages.len())
	p.stages.each(func(_ string, s stage.Stage) {
		out = append(out, s)
	})
	return out
}

func (p *Pipeline) addCamera(cam stage.Camera) bool {
	for _, c := range p.cameras {
		if c == cam {
			return false
		}
	}
	p.cameras = append(p.cameras, cam)
	return true
}

func (p *Pipeline) removeCamera(cam stage.Camera) bool {
	for i, c := range p.cameras {
		if c == cam {
			p.cameras = append(p.cameras[:i], p.cameras[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Pipeline) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return Logger()
}
