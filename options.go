// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import (
	"log/slog"

	"github.com/gogpu/postfx/stage"
)

// Option configures a Pipeline during creation.
//
// Example:
//
//	p, err := postfx.New("default", true, env,
//	    postfx.WithCameras(mainCam),
//	    postfx.WithConfig(postfx.DefaultConfig().WithBloomEnabled(true)),
//	)
type Option func(*options)

// options holds optional configuration for Pipeline creation.
type options struct {
	cameras []stage.Camera
	config  Config
	logger  *slog.Logger
	rootURL string
}

// defaultOptions returns the default pipeline options.
func defaultOptions() options {
	return options{
		config: DefaultConfig(),
		logger: nil, // Falls back to the package logger
	}
}

// WithCameras sets the cameras the pipeline is attached to initially.
func WithCameras(cams ...stage.Camera) Option {
	return func(o *options) {
		o.cameras = append(o.cameras, cams...)
	}
}

// WithConfig sets the initial configuration. Its HDR field is ignored in
// favor of the hdr argument of New.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithLogger sets a pipeline-specific logger instead of the package
// logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRootURL sets the base location for assets referenced by the
// pipeline's record.
func WithRootURL(rootURL string) Option {
	return func(o *options) {
		o.rootURL = rootURL
	}
}
