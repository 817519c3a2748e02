// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsnn

import (
	"fmt"

	"github.com/emer/emergent/erand"
	"github.com/emer/etable/etensor"
)

// Recurrent is the recurrent feedback projection: it maps the previous
// spike output back into the input path, producing a feedback tensor of
// the same shape as the membrane potential.  It is a pure transform --
// weights are mutated only by external learning, never here.
type Recurrent interface {
	// Mode returns which connectivity variant this projection is.
	Mode() ConnectMode

	// Feedback computes the feedback from the previous spikes spk into
	// fb, which must have the same shape as spk.
	Feedback(fb, spk *etensor.Float32) error

	// InitWts initializes any trainable weights from the given random
	// distribution parameters.  No-op for one-to-one feedback.
	InitWts(rnd *erand.RndParams)
}

// BuildRecurrent constructs the recurrent projection for a validated
// connectivity configuration, with weights initialized from cn.WtInit.
func BuildRecurrent(cn *ConnectParams) (Recurrent, error) {
	if err := cn.Validate(); err != nil {
		return nil, err
	}
	switch cn.Mode() {
	case Linear:
		rc := NewLinearRecur(cn.LinearN)
		rc.InitWts(&cn.WtInit)
		return rc, nil
	case Conv2D:
		rc := NewConv2DRecur(cn.ConvChans, cn.KernelY, cn.KernelX)
		rc.InitWts(&cn.WtInit)
		return rc, nil
	default:
		return &OneToOneRecur{V: cn.V, Vs: cn.Vs}, nil
	}
}

//////////////////////////////////////////////////////////////////////////////////////
//  LinearRecur

// LinearRecur is dense all-to-all feedback: an N x N linear transform
// with per-unit bias, applied to the previous spike vector of each
// batch element.
type LinearRecur struct {
	N    int              `desc:"number of units -- input and output dimension of the transform"`
	Wts  *etensor.Float32 `desc:"feedback weights, shape (N, N): Wts[j,i] connects unit i's spike to unit j's input"`
	Bias *etensor.Float32 `desc:"per-unit bias, shape (N)"`
}

func NewLinearRecur(n int) *LinearRecur {
	return &LinearRecur{
		N:    n,
		Wts:  etensor.NewFloat32([]int{n, n}, nil, []string{"Recv", "Send"}),
		Bias: etensor.NewFloat32([]int{n}, nil, []string{"Recv"}),
	}
}

func (lr *LinearRecur) Mode() ConnectMode { return Linear }

func (lr *LinearRecur) InitWts(rnd *erand.RndParams) {
	for i := range lr.Wts.Values {
		lr.Wts.Values[i] = float32(rnd.Gen(-1))
	}
	lr.Bias.SetZeros()
}

func (lr *LinearRecur) Feedback(fb, spk *etensor.Float32) error {
	if spk.NumDims() != 2 || spk.Dim(1) != lr.N {
		return fmt.Errorf("%w: linear feedback needs (batch, %d) spikes, got %v", ErrShape, lr.N, spk.Shp)
	}
	nb := spk.Dim(0)
	n := lr.N
	for bi := 0; bi < nb; bi++ {
		soff := bi * n
		for j := 0; j < n; j++ {
			sum := lr.Bias.Values[j]
			woff := j * n
			for i := 0; i < n; i++ {
				sum += lr.Wts.Values[woff+i] * spk.Values[soff+i]
			}
			fb.Values[soff+j] = sum
		}
	}
	return nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  Conv2DRecur

// Conv2DRecur is convolutional all-to-all feedback over spatially
// organized (batch, channels, Y, X) spikes: a 2D convolution with the
// same number of input and output channels, stride 1, and padding of
// half the kernel per axis so the output spatial size equals the input.
type Conv2DRecur struct {
	Chans   int              `desc:"number of channels, same in and out"`
	KernelY int              `desc:"kernel size along Y"`
	KernelX int              `desc:"kernel size along X"`
	PadY    int              `inactive:"+" desc:"padding along Y = KernelY/2"`
	PadX    int              `inactive:"+" desc:"padding along X = KernelX/2"`
	Wts     *etensor.Float32 `desc:"kernel weights, shape (Chans, Chans, KernelY, KernelX)"`
	Bias    *etensor.Float32 `desc:"per-channel bias, shape (Chans)"`
}

func NewConv2DRecur(chans, ky, kx int) *Conv2DRecur {
	return &Conv2DRecur{
		Chans:   chans,
		KernelY: ky,
		KernelX: kx,
		PadY:    ky / 2,
		PadX:    kx / 2,
		Wts:     etensor.NewFloat32([]int{chans, chans, ky, kx}, nil, []string{"Out", "In", "Y", "X"}),
		Bias:    etensor.NewFloat32([]int{chans}, nil, []string{"Out"}),
	}
}

func (cr *Conv2DRecur) Mode() ConnectMode { return Conv2D }

func (cr *Conv2DRecur) InitWts(rnd *erand.RndParams) {
	for i := range cr.Wts.Values {
		cr.Wts.Values[i] = float32(rnd.Gen(-1))
	}
	cr.Bias.SetZeros()
}

func (cr *Conv2DRecur) Feedback(fb, spk *etensor.Float32) error {
	if spk.NumDims() != 4 || spk.Dim(1) != cr.Chans {
		return fmt.Errorf("%w: conv feedback needs (batch, %d, Y, X) spikes, got %v", ErrShape, cr.Chans, spk.Shp)
	}
	nb := spk.Dim(0)
	nc := cr.Chans
	ny := spk.Dim(2)
	nx := spk.Dim(3)
	ksz := cr.KernelY * cr.KernelX
	for bi := 0; bi < nb; bi++ {
		boff := bi * nc * ny * nx
		for oc := 0; oc < nc; oc++ {
			ooff := boff + oc*ny*nx
			for y := 0; y < ny; y++ {
				for x := 0; x < nx; x++ {
					sum := cr.Bias.Values[oc]
					for ic := 0; ic < nc; ic++ {
						ioff := boff + ic*ny*nx
						koff := (oc*nc + ic) * ksz
						for ky := 0; ky < cr.KernelY; ky++ {
							iy := y + ky - cr.PadY
							if iy < 0 || iy >= ny {
								continue
							}
							for kx := 0; kx < cr.KernelX; kx++ {
								ix := x + kx - cr.PadX
								if ix < 0 || ix >= nx {
									continue
								}
								sum += cr.Wts.Values[koff+ky*cr.KernelX+kx] * spk.Values[ioff+iy*nx+ix]
							}
						}
					}
					fb.Values[ooff+y*nx+x] = sum
				}
			}
		}
	}
	return nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  OneToOneRecur

// OneToOneRecur is one-to-one feedback: each unit's previous spike is
// scaled by a weight and fed back to that unit only.  The weight is
// either the shared scalar V or one value per unit in Vs.
type OneToOneRecur struct {
	V  float32          `desc:"shared feedback weight, used when Vs is nil"`
	Vs *etensor.Float32 `desc:"optional per-unit feedback weights -- length equals units per batch element"`
}

func (or *OneToOneRecur) Mode() ConnectMode { return OneToOne }

func (or *OneToOneRecur) InitWts(rnd *erand.RndParams) {
}

func (or *OneToOneRecur) Feedback(fb, spk *etensor.Float32) error {
	n := spk.Len()
	if or.Vs == nil {
		for i := 0; i < n; i++ {
			fb.Values[i] = spk.Values[i] * or.V
		}
		return nil
	}
	un := or.Vs.Len()
	if spk.NumDims() < 1 || n%un != 0 || n/spk.Dim(0) != un {
		return fmt.Errorf("%w: per-unit feedback weights have %d values but spikes have %d units per batch element", ErrShape, un, n/spk.Dim(0))
	}
	for i := 0; i < n; i++ {
		fb.Values[i] = spk.Values[i] * or.Vs.Values[i%un]
	}
	return nil
}
