// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsnn

import (
	"fmt"
	"log"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/emer/etable/etensor"
)

// Layer is one layer of recurrent ALIF spiking neurons.  It owns the
// configuration and the recurrent feedback weights; whether it also
// owns the (spike, potential, trace) state depends on the calling
// convention: explicit layers are stateless between Step calls, hidden
// layers carry owned state across StepHidden calls.
type Layer struct {
	Nm     string        `desc:"name of the layer, for reporting"`
	Con    ConnectParams `view:"inline" desc:"recurrent connectivity configuration -- validated at construction"`
	Act    ActParams     `view:"add-fields" desc:"membrane potential, reset, threshold adaptation, and inhibition params"`
	Recur  Recurrent     `view:"-" desc:"recurrent feedback projection built from Con"`
	Hidden bool          `inactive:"+" desc:"hidden-state calling convention: state is owned by the layer and carried across StepHidden calls, instead of being passed to Step by the caller"`
	Output bool          `viewif:"Hidden" desc:"StepHidden also returns the membrane potential (read-out layer), not just the spikes"`

	// owned state, hidden convention only.  nil = uninitialized: the
	// shape binds lazily from the first input StepHidden sees.
	Spk *etensor.Float32 `view:"-" desc:"owned spike state"`
	Pot *etensor.Float32 `view:"-" desc:"owned membrane potential state"`
	B   *etensor.Float32 `view:"-" desc:"owned adaptation trace state"`
}

// NewLayer returns a new explicit-state layer with the given
// connectivity and activation params, or a configuration error.
// Explicit layers hold no state between calls: the caller threads the
// (spike, potential, trace) triple through Step.
func NewLayer(name string, con ConnectParams, act ActParams) (*Layer, error) {
	return newLayer(name, con, act, false, false)
}

// NewHiddenLayer returns a new hidden-state layer: the (spike,
// potential, trace) triple is owned by the layer and updated in place
// by StepHidden, for chained sequential processing without explicit
// state threading.  output selects whether StepHidden also returns the
// membrane potential.
func NewHiddenLayer(name string, con ConnectParams, act ActParams, output bool) (*Layer, error) {
	return newLayer(name, con, act, true, output)
}

func newLayer(name string, con ConnectParams, act ActParams, hidden, output bool) (*Layer, error) {
	if act.Reset < 0 || act.Reset >= ResetModeN {
		err := fmt.Errorf("%w: layer %s: unsupported reset policy %d", ErrConfig, name, act.Reset)
		log.Println(err)
		return nil, err
	}
	rc, err := BuildRecurrent(&con)
	if err != nil {
		err = fmt.Errorf("layer %s: %w", name, err)
		log.Println(err)
		return nil, err
	}
	act.Update()
	ly := &Layer{Nm: name, Con: con, Act: act, Recur: rc, Hidden: hidden, Output: output}
	return ly, nil
}

func (ly *Layer) Name() string { return ly.Nm }

// UpdateParams updates all derived parameters after any change.
func (ly *Layer) UpdateParams() {
	ly.Con.Update()
	ly.Act.Update()
}

//////////////////////////////////////////////////////////////////////////////////////
//  Shape checking

// CheckInput verifies that an input (or state) tensor shape is
// compatible with the configured connectivity.  The leading dimension
// is the batch.
func (ly *Layer) CheckInput(in *etensor.Float32) error {
	if in == nil || in.NumDims() < 1 || in.Dim(0) < 1 {
		return fmt.Errorf("%w: layer %s: input must have a leading batch dimension", ErrShape, ly.Nm)
	}
	un := in.Len() / in.Dim(0)
	switch ly.Con.Mode() {
	case Linear:
		if in.NumDims() != 2 || in.Dim(1) != ly.Con.LinearN {
			return fmt.Errorf("%w: layer %s: linear feedback needs (batch, %d) tensors, got %v", ErrShape, ly.Nm, ly.Con.LinearN, in.Shp)
		}
	case Conv2D:
		if in.NumDims() != 4 || in.Dim(1) != ly.Con.ConvChans {
			return fmt.Errorf("%w: layer %s: conv feedback needs (batch, %d, Y, X) tensors, got %v", ErrShape, ly.Nm, ly.Con.ConvChans, in.Shp)
		}
	default:
		if ly.Con.Vs != nil && ly.Con.Vs.Len() != un {
			return fmt.Errorf("%w: layer %s: per-unit feedback weights have %d values but input has %d units per batch element", ErrShape, ly.Nm, ly.Con.Vs.Len(), un)
		}
	}
	if ly.Act.Betas != nil && ly.Act.Betas.Len() != un {
		return fmt.Errorf("%w: layer %s: per-unit Betas have %d values but input has %d units per batch element", ErrShape, ly.Nm, ly.Act.Betas.Len(), un)
	}
	return nil
}

// checkState verifies input and the full state triple: all must share
// one shape compatible with the configuration.
func (ly *Layer) checkState(in, spk, pot, b *etensor.Float32) error {
	if err := ly.CheckInput(in); err != nil {
		return err
	}
	for _, st := range []*etensor.Float32{spk, pot, b} {
		if st == nil || !shapesEqual(st, in) {
			return fmt.Errorf("%w: layer %s: state tensors must match input shape %v", ErrShape, ly.Nm, in.Shp)
		}
	}
	return nil
}

func shapesEqual(a, b *etensor.Float32) bool {
	if a.NumDims() != b.NumDims() {
		return false
	}
	for i := 0; i < a.NumDims(); i++ {
		if a.Dim(i) != b.Dim(i) {
			return false
		}
	}
	return true
}

//////////////////////////////////////////////////////////////////////////////////////
//  Step

// Step advances the layer one timestep in the explicit-state calling
// convention: the caller owns the state and passes the previous
// (spike, potential, trace) triple, receiving the new triple.  The
// layer is not mutated; the returned tensors are freshly allocated and
// the inputs are left untouched.  Within the step, the adaptation
// trace updates first from the previous spikes, yielding the new
// threshold; the reset gate compares the prior potential against that
// threshold; the potential then integrates input plus recurrent
// feedback under the configured reset policy; finally spikes are
// emitted against the new threshold.
func (ly *Layer) Step(in, spk, pot, b *etensor.Float32) (nspk, npot, nb *etensor.Float32, err error) {
	if ly.Hidden {
		err = fmt.Errorf("%w: layer %s: Step called on a hidden-state layer -- use StepHidden", ErrUsage, ly.Nm)
		return
	}
	return ly.step(in, spk, pot, b, false)
}

// StepHidden advances the layer one timestep in the hidden-state
// calling convention, mutating the owned state.  On the first call
// (or after InitHidden with no shape), the state shape binds from the
// input and starts at zero.  Returns the new spikes, plus the new
// membrane potential if the layer was built with output enabled
// (nil otherwise).  On error the owned state is unchanged.
func (ly *Layer) StepHidden(in *etensor.Float32) (spk, pot *etensor.Float32, err error) {
	if !ly.Hidden {
		err = fmt.Errorf("%w: layer %s: StepHidden called on an explicit-state layer -- use Step", ErrUsage, ly.Nm)
		return
	}
	if ly.Spk == nil {
		if err = ly.CheckInput(in); err != nil {
			return
		}
		ly.bindState(in.Shp)
	}
	nspk, npot, nb, err := ly.step(in, ly.Spk, ly.Pot, ly.B, true)
	if err != nil {
		return nil, nil, err
	}
	ly.Spk, ly.Pot, ly.B = nspk, npot, nb
	if ly.Output {
		return ly.Spk, ly.Pot, nil
	}
	return ly.Spk, nil, nil
}

// step is the single state-transition function shared by both calling
// conventions -- hidden only selects the base integration formula.
func (ly *Layer) step(in, spk, pot, b *etensor.Float32, hidden bool) (nspk, npot, nb *etensor.Float32, err error) {
	if err = ly.checkState(in, spk, pot, b); err != nil {
		return
	}
	n := in.Len()
	un := n / in.Dim(0)
	fb := etensor.NewFloat32(in.Shp, nil, nil)
	if err = ly.Recur.Feedback(fb, spk); err != nil {
		return nil, nil, nil, err
	}
	nspk = etensor.NewFloat32(in.Shp, nil, nil)
	npot = etensor.NewFloat32(in.Shp, nil, nil)
	nb = etensor.NewFloat32(in.Shp, nil, nil)
	th := make([]float32, n)
	for i := 0; i < n; i++ {
		nb.Values[i] = ly.Act.Adapt.TraceFmSpike(b.Values[i], spk.Values[i])
		th[i] = ly.Act.Adapt.ThreshFmTrace(nb.Values[i])
		reset := ly.Act.ResetGate(pot.Values[i], th[i])
		beta := ly.Act.BetaEff(i % un)
		npot.Values[i] = ly.Act.PotFmInput(beta, pot.Values[i], reset, th[i], in.Values[i], fb.Values[i], hidden)
	}
	if ly.Act.Inhib.On {
		nbat := in.Dim(0)
		for bi := 0; bi < nbat; bi++ {
			st, ed := bi*un, (bi+1)*un
			ly.Act.Inhib.Inhibit(nspk.Values[st:ed], npot.Values[st:ed], th[st:ed])
		}
	} else {
		for i := 0; i < n; i++ {
			nspk.Values[i] = ly.Act.SpikeFmPot(npot.Values[i], th[i])
		}
	}
	return
}

//////////////////////////////////////////////////////////////////////////////////////
//  Reporting

// SizeReport returns a string reporting the memory held by the layer:
// recurrent weights and, for hidden layers, the owned state.
func (ly *Layer) SizeReport() string {
	var b strings.Builder
	wmem := 0
	switch rc := ly.Recur.(type) {
	case *LinearRecur:
		wmem = 4 * (rc.Wts.Len() + rc.Bias.Len())
	case *Conv2DRecur:
		wmem = 4 * (rc.Wts.Len() + rc.Bias.Len())
	case *OneToOneRecur:
		if rc.Vs != nil {
			wmem = 4 * rc.Vs.Len()
		}
	}
	smem := 0
	if ly.Spk != nil {
		smem = 4 * (ly.Spk.Len() + ly.Pot.Len() + ly.B.Len())
	}
	fmt.Fprintf(&b, "%14s:\t Mode: %v\t WtMem: %v\t StateMem: %v\n", ly.Nm, ly.Con.Mode(),
		(datasize.ByteSize)(wmem).HumanReadable(), (datasize.ByteSize)(smem).HumanReadable())
	return b.String()
}
