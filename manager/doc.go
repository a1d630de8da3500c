// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package manager tracks post-processing pipelines for a scene.
//
// Each pipeline has a stage registry: an ordered list of (stage id, getter,
// execute flag) registrations. The manager attaches cameras to pipelines
// and, each frame, runs the executed stages of every pipeline attached to a
// camera in registration order.
//
// The manager never constructs or disposes stages. Pipelines own their
// stages and use Reset, Register, Attach and Detach to publish a new chain.
package manager
