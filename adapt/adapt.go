// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package adapt provides the adaptive spiking threshold parameters
used by the lsnn layer: each unit maintains a leaky trace b of its own
spiking activity, and the effective firing threshold is the base
threshold plus the trace scaled by a coupling gain.

The trace rises immediately after a spike and decays geometrically back
toward zero with rate RhoB = exp(-Dt/Tau), so the threshold implements
spike-frequency adaptation: units that just fired require more drive to
fire again.
*/
package adapt

import "github.com/goki/mat32"

// Params are the spike-driven threshold adaptation parameters.
// The derived RhoB decay factor must be updated via Update after
// any change to Dt or Tau.
type Params struct {
	Thr  float32 `def:"0.01" desc:"base firing threshold -- the effective threshold decays back to this level in the absence of spiking"`
	Gain float32 `def:"1.8" desc:"coupling gain from the adaptation trace to the effective threshold -- 0 disables adaptation entirely"`
	Dt   float32 `def:"1" min:"0" desc:"simulation time step -- together with Tau determines the per-step trace decay"`
	Tau  float32 `def:"200" min:"1" desc:"adaptation time constant, in the same units as Dt -- roughly how long the threshold elevation persists after spiking"`

	RhoB float32 `inactive:"+" view:"-" json:"-" xml:"-" desc:"per-step trace decay factor = exp(-Dt/Tau)"`
}

func (ap *Params) Defaults() {
	ap.Thr = 0.01
	ap.Gain = 1.8
	ap.Dt = 1
	ap.Tau = 200
	ap.Update()
}

// Update must be called after any changes to parameters
func (ap *Params) Update() {
	ap.RhoB = mat32.Exp(-ap.Dt / ap.Tau)
}

// TraceFmSpike computes the new adaptation trace from the prior trace
// and the previous-step spike value (0 or 1):
// b' = RhoB*b + (1-RhoB)*spk.
// With spk held at 0 the trace decays geometrically toward 0, and with
// spk held at 1 it rises geometrically toward 1.  No clamping is applied.
func (ap *Params) TraceFmSpike(b, spk float32) float32 {
	return ap.RhoB*b + (1-ap.RhoB)*spk
}

// ThreshFmTrace returns the effective firing threshold for the given
// adaptation trace value: Thr + b*Gain.  The trace depends only on the
// spiking history, never on the potential or the threshold itself.
func (ap *Params) ThreshFmTrace(b float32) float32 {
	return ap.Thr + b*ap.Gain
}
