// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lsnn is the overall repository for the recurrent adaptive
leaky integrate-and-fire (ALIF) spiking layer implemented in the
Go language (golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-repositories:

* lsnn: the core implementation: the per-step state transition for a
layer of recurrent leaky integrator neurons with an adaptive spiking
threshold, selectable recurrent connectivity (dense, convolutional, or
one-to-one feedback), three spike-reset policies, and two state-ownership
calling conventions (caller-passed vs. layer-owned hidden state).

* adapt: the threshold adaptation parameters: a leaky trace of spiking
activity that raises the effective firing threshold after spikes and
decays it geometrically back to baseline.

* wta: winner-take-all lateral inhibition, restricting spiking to the
single highest-potential unit per batch row.

* examples: compile into runnable programs exercising the layer --
examples/oscillate runs the basic subtract-reset oscillation regime
and records the state trajectory into an etable.
*/
package lsnn
