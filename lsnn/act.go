// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsnn

import (
	"github.com/emer/etable/etensor"
	"github.com/emer/lsnn/adapt"
	"github.com/emer/lsnn/wta"
	"github.com/goki/mat32"
)

///////////////////////////////////////////////////////////////////////
//  act.go contains the membrane potential params and step functions

// ActParams contains the per-timestep activation computation params
// for the ALIF neuron: leaky integration of the membrane potential,
// reset gating, adaptive threshold (Adapt), and spike emission with
// optional winner-take-all inhibition (Inhib).
type ActParams struct {
	Beta  float32          `def:"0.5" desc:"membrane potential decay rate -- raw value may be set outside [0,1] but is clamped to [0,1] at every use"`
	Betas *etensor.Float32 `desc:"optional per-unit decay rates overriding Beta -- length equals units per batch element"`
	Reset ResetMode        `desc:"reset policy applied to the potential of units that met threshold on the previous step"`
	Adapt adapt.Params     `view:"inline" desc:"adaptive threshold parameters -- trace decay and threshold coupling"`
	Inhib wta.Params       `view:"inline" desc:"winner-take-all lateral inhibition across units within a batch element"`
}

func (ac *ActParams) Defaults() {
	ac.Beta = 0.5
	ac.Reset = ResetZero
	ac.Adapt.Defaults()
	ac.Inhib.Defaults()
	ac.Update()
}

// Update must be called after any changes to parameters
func (ac *ActParams) Update() {
	ac.Adapt.Update()
	ac.Inhib.Update()
}

// BetaEff returns the effective decay rate for unit ui (index within
// one batch element), clamped to [0, 1] regardless of the raw value.
func (ac *ActParams) BetaEff(ui int) float32 {
	b := ac.Beta
	if ac.Betas != nil && ui < len(ac.Betas.Values) {
		b = ac.Betas.Values[ui]
	}
	return mat32.Min(mat32.Max(b, 0), 1)
}

// ResetGate returns 1 if the prior potential met or exceeded the given
// threshold, else 0.  It is computed from the state before the current
// potential update, using the freshly updated adaptive threshold.
func (ac *ActParams) ResetGate(pot, thresh float32) float32 {
	if pot >= thresh {
		return 1
	}
	return 0
}

// BasePot is the reset-free leaky integration for the explicit-state
// calling convention: beta*pot + (1-beta)*(in+fb).
func (ac *ActParams) BasePot(beta, pot, in, fb float32) float32 {
	return beta*pot + (1-beta)*(in+fb)
}

// BasePotHidden is the reset-free integration for the hidden-state
// calling convention: beta*pot + in + fb.  Unlike BasePot, the input
// and feedback terms are not scaled by (1-beta), so drive accumulates
// undamped.  The asymmetry between the two conventions is load-bearing
// for existing parameterizations and must not be unified -- whether it
// is a distinct integration mode or a latent inconsistency is an open
// question.
func (ac *ActParams) BasePotHidden(beta, pot, in, fb float32) float32 {
	return beta*pot + in + fb
}

// PotFmInput computes the new membrane potential from the prior
// potential, input current, and recurrent feedback, applying the
// configured reset policy gated by reset (0 or 1).  hidden selects the
// hidden-convention base integration (see BasePotHidden).
func (ac *ActParams) PotFmInput(beta, pot, reset, thresh, in, fb float32, hidden bool) float32 {
	base := ac.BasePot
	if hidden {
		base = ac.BasePotHidden
	}
	switch ac.Reset {
	case ResetSubtract:
		return base(beta, pot-reset*thresh, in, fb)
	case ResetZero:
		nw := base(beta, pot, in, fb)
		return nw - reset*nw
	default: // ResetNone: pure integration, reset has no effect
		return base(beta, pot, in, fb)
	}
}

// SpikeFmPot returns the spike output (0 or 1) for the updated
// potential against the current threshold.
func (ac *ActParams) SpikeFmPot(pot, thresh float32) float32 {
	if pot >= thresh {
		return 1
	}
	return 0
}
