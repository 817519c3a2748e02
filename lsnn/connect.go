// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsnn

import (
	"fmt"

	"github.com/emer/emergent/erand"
	"github.com/emer/etable/etensor"
	"github.com/goki/ki/kit"
)

// ConnectMode is the recurrent connectivity mode, derived from a
// validated ConnectParams -- exactly one mode is in effect per layer.
type ConnectMode int

//go:generate stringer -type=ConnectMode

var KiT_ConnectMode = kit.Enums.AddEnum(ConnectModeN, kit.NotBitFlag, nil)

func (ev ConnectMode) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *ConnectMode) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Linear is all-to-all feedback through a trainable dense
	// transform of size LinearN x LinearN.
	Linear ConnectMode = iota

	// Conv2D is all-to-all feedback through a trainable 2D
	// convolution over (channels, Y, X) state, padded to keep the
	// output spatial size equal to the input.
	Conv2D

	// OneToOne feeds each unit's own previous spike back to itself,
	// scaled by a shared or per-unit weight -- no projection matrix.
	OneToOne

	ConnectModeN
)

// ResetMode is the policy applied to the membrane potential of a unit
// whose reset gate is active (it met threshold on the previous step).
type ResetMode int

//go:generate stringer -type=ResetMode

var KiT_ResetMode = kit.Enums.AddEnum(ResetModeN, kit.NotBitFlag, nil)

func (ev ResetMode) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *ResetMode) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// ResetSubtract subtracts the threshold from the prior potential
	// before it is integrated.
	ResetSubtract ResetMode = iota

	// ResetZero forces the new potential of a reset-gated unit to
	// exactly 0, independent of input and feedback.
	ResetZero

	// ResetNone performs pure integration: the reset gate is computed
	// but has no effect.  Useful for monitoring-only configurations.
	ResetNone

	ResetModeN
)

// ConnectParams fully specifies the recurrent connectivity of a layer.
// Exactly one mode must be configured: AllToAll with LinearN, AllToAll
// with ConvChans+KernelY+KernelX, or one-to-one (AllToAll off) with
// the V weight.  Validate enforces this before any weights are built.
type ConnectParams struct {
	AllToAll  bool              `def:"true" desc:"connect previous spikes to all units (dense or convolutional) -- off = one-to-one scaled self-feedback via V"`
	LinearN   int               `viewif:"AllToAll" desc:"number of units for the dense linear feedback transform -- mutually exclusive with the conv fields"`
	ConvChans int               `viewif:"AllToAll" desc:"number of channels for convolutional feedback -- requires KernelY and KernelX, and excludes LinearN"`
	KernelY   int               `viewif:"AllToAll" desc:"convolution kernel size along Y -- padding is KernelY/2 so output height equals input height"`
	KernelX   int               `viewif:"AllToAll" desc:"convolution kernel size along X -- padding is KernelX/2 so output width equals input width"`
	V         float32           `viewif:"!AllToAll" def:"1" desc:"shared one-to-one feedback weight, used when Vs is nil"`
	Vs        *etensor.Float32  `viewif:"!AllToAll" desc:"optional per-unit one-to-one feedback weights -- length must match the number of units per batch element"`
	Learn     bool              `def:"true" desc:"recurrent weights are trainable by the external learning machinery -- off marks them frozen"`
	WtInit    erand.RndParams   `viewif:"AllToAll" desc:"random distribution parameters for initializing the linear / conv feedback weights"`
}

func (cn *ConnectParams) Defaults() {
	cn.AllToAll = true
	cn.V = 1
	cn.Learn = true
	cn.WtInit.Mean = 0
	cn.WtInit.Var = 0.1
	cn.WtInit.Dist = erand.Uniform
	cn.Update()
}

func (cn *ConnectParams) Update() {
}

// SetKernel sets a square convolution kernel size.
func (cn *ConnectParams) SetKernel(k int) {
	cn.KernelY = k
	cn.KernelX = k
}

// Mode returns the connectivity mode for a validated configuration.
func (cn *ConnectParams) Mode() ConnectMode {
	switch {
	case !cn.AllToAll:
		return OneToOne
	case cn.LinearN > 0:
		return Linear
	default:
		return Conv2D
	}
}

// Validate checks that exactly one connectivity mode is configured,
// consistent with the AllToAll topology choice.  It must pass before
// any recurrent weights are built, so a misconfiguration can never
// silently construct a wrong-shaped projection.
func (cn *ConnectParams) Validate() error {
	haveLin := cn.LinearN > 0
	haveChans := cn.ConvChans > 0
	haveKernel := cn.KernelY > 0 || cn.KernelX > 0
	if cn.AllToAll {
		if haveLin {
			if haveChans || haveKernel {
				return fmt.Errorf("%w: LinearN cannot be combined with ConvChans or a kernel size -- dense and convolutional feedback are mutually exclusive", ErrConfig)
			}
			return nil
		}
		if !haveChans && !haveKernel {
			return fmt.Errorf("%w: all-to-all feedback requires either LinearN or ConvChans plus a kernel size", ErrConfig)
		}
		if haveChans != haveKernel {
			return fmt.Errorf("%w: ConvChans and the kernel size must both be specified for convolutional feedback", ErrConfig)
		}
		if cn.KernelY <= 0 || cn.KernelX <= 0 {
			return fmt.Errorf("%w: convolution kernel must be positive in both dimensions, got %d x %d", ErrConfig, cn.KernelY, cn.KernelX)
		}
		return nil
	}
	if haveLin || haveChans || haveKernel {
		return fmt.Errorf("%w: one-to-one feedback forbids LinearN, ConvChans, and kernel size -- the V weight is used instead", ErrConfig)
	}
	return nil
}
