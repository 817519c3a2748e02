// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsnn

import (
	"fmt"

	"github.com/emer/etable/etensor"
)

///////////////////////////////////////////////////////////////////////
//  hidden.go manages the layer-owned state lifecycle for the
//  hidden-state calling convention: deferred shape binding,
//  (re)initialization, and detachment.

// InitState returns a fresh all-zero (spike, potential, trace) triple
// for the given state shape (leading dimension = batch), for callers
// using the explicit-state convention.  The layer itself is not
// mutated.
func (ly *Layer) InitState(shape []int) (spk, pot, b *etensor.Float32, err error) {
	spk = etensor.NewFloat32(shape, nil, nil)
	if err = ly.CheckInput(spk); err != nil {
		return nil, nil, nil, err
	}
	pot = etensor.NewFloat32(shape, nil, nil)
	b = etensor.NewFloat32(shape, nil, nil)
	return
}

// InitHidden binds the owned state to the given shape (leading
// dimension = batch) and zeros it.  Calling StepHidden without
// InitHidden is also valid: the shape then binds from the first input.
func (ly *Layer) InitHidden(shape []int) error {
	if !ly.Hidden {
		return fmt.Errorf("%w: layer %s: InitHidden on an explicit-state layer", ErrUsage, ly.Nm)
	}
	chk := etensor.NewFloat32(shape, nil, nil)
	if err := ly.CheckInput(chk); err != nil {
		return err
	}
	ly.bindState(shape)
	return nil
}

// ResetHidden reinitializes the owned state to all zeros at the
// previously bound shape.  A reset followed by the next StepHidden is
// identical to a freshly initialized layer at that shape.
func (ly *Layer) ResetHidden() error {
	if !ly.Hidden {
		return fmt.Errorf("%w: layer %s: ResetHidden on an explicit-state layer", ErrUsage, ly.Nm)
	}
	if ly.Spk == nil {
		return fmt.Errorf("%w: layer %s: ResetHidden before any shape is bound", ErrUsage, ly.Nm)
	}
	ly.Spk.SetZeros()
	ly.Pot.SetZeros()
	ly.B.SetZeros()
	return nil
}

// DetachHidden severs the owned state from any storage previously
// handed out, preserving the numeric values: after Detach the state
// tensors share no backing memory with tensors returned from earlier
// StepHidden calls.  Used between truncated processing segments.
// No-op if the state is unbound.
func (ly *Layer) DetachHidden() {
	ly.Spk = cloneState(ly.Spk)
	ly.Pot = cloneState(ly.Pot)
	ly.B = cloneState(ly.B)
}

// bindState allocates zero-valued owned state at the given shape.
func (ly *Layer) bindState(shape []int) {
	ly.Spk = etensor.NewFloat32(shape, nil, nil)
	ly.Pot = etensor.NewFloat32(shape, nil, nil)
	ly.B = etensor.NewFloat32(shape, nil, nil)
}

func cloneState(st *etensor.Float32) *etensor.Float32 {
	if st == nil {
		return nil
	}
	nw := etensor.NewFloat32(st.Shp, nil, nil)
	copy(nw.Values, st.Values)
	return nw
}
