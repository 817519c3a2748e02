// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lsnn implements a layer of recurrent adaptive leaky
integrate-and-fire (ALIF) spiking neurons: a leaky-integrator membrane
potential driven by input current plus recurrent feedback from the
layer's own previous spike output, compared against a firing threshold
that itself adapts to recent spiking activity (see the adapt package).

The recurrent feedback is one of three connectivity modes: a dense
linear transform, a 2D convolution with same-size padding, or a
one-to-one elementwise scaling of the previous spikes.  Spiking resets
the potential according to one of three policies: subtract the
threshold, zero the potential, or no reset at all.

State is the triple (spike, potential, adaptation trace), shaped
(batch, units) or (batch, channels, Y, X) for the convolutional mode.
There are two calling conventions: in explicit mode the caller owns the
state and threads it through Step; in hidden mode the layer owns the
state across StepHidden calls, for chained sequential processing.
A given layer uses exactly one convention.

The per-step computation is purely numerical and synchronous: no
learning, gradient, or I/O machinery lives here.  Callers must
serialize calls that share a state instance.
*/
package lsnn

import "errors"

// Error sentinels for the three failure kinds.  All errors are
// returned synchronously, before any state mutation: a step either
// fully completes or changes nothing.
var (
	// ErrConfig is wrapped by construction-time errors from
	// contradictory or incomplete connectivity configuration.
	ErrConfig = errors.New("lsnn: invalid configuration")

	// ErrUsage is wrapped by calling-convention violations: explicit
	// Step on a hidden-state layer or StepHidden on an explicit one.
	ErrUsage = errors.New("lsnn: wrong calling convention")

	// ErrShape is wrapped when input or state tensor shapes are
	// incompatible with the configured connectivity.
	ErrShape = errors.New("lsnn: incompatible shape")
)
