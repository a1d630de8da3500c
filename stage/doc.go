// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package stage defines the contract between a post-processing pipeline and
// the effects it chains together.
//
// A Stage owns one input render target per camera. The previous stage in
// the chain (or the scene, for the first stage) renders into that target,
// and the stage itself renders from it into the next stage's input target.
// Two stages can share one target when the producer's content is dead by the
// time the consumer is written, which saves one allocation per camera.
//
// # Base
//
// Base implements the bookkeeping every stage needs: target sizing
// (ratio of the canvas, optional power-of-two rounding), auto-clear,
// output sharing, per-camera targets and on-activate hooks. Backends embed
// Base and only implement Apply.
//
// # Thread Safety
//
// Stages are NOT thread-safe. A stage is driven by a single render loop.
package stage
