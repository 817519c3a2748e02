// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapt

import (
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

func TestTraceDecay(t *testing.T) {
	ap := Params{}
	ap.Defaults()

	// with spk held at 0 the trace decays geometrically: b_t = RhoB^t * b_0
	b := float32(0.8)
	b0 := b
	for step := 1; step <= 20; step++ {
		b = ap.TraceFmSpike(b, 0)
		cor := math32.Pow(ap.RhoB, float32(step)) * b0
		dif := math32.Abs(b - cor)
		if dif > difTol {
			t.Errorf("decay err: step: %v, b: %v, cor: %v, dif: %v\n", step, b, cor, dif)
		}
		if b >= b0 {
			t.Errorf("decay err: step: %v, b: %v did not decrease from %v\n", step, b, b0)
		}
	}
}

func TestTraceRise(t *testing.T) {
	ap := Params{}
	ap.Defaults()

	// with spk held at 1 the trace rises geometrically toward 1:
	// 1 - b_t = RhoB^t * (1 - b_0)
	b := float32(0)
	for step := 1; step <= 20; step++ {
		b = ap.TraceFmSpike(b, 1)
		cor := 1 - math32.Pow(ap.RhoB, float32(step))
		dif := math32.Abs(b - cor)
		if dif > difTol {
			t.Errorf("rise err: step: %v, b: %v, cor: %v, dif: %v\n", step, b, cor, dif)
		}
	}
	if b <= 0 || b >= 1 {
		t.Errorf("rise err: final b: %v out of (0, 1)\n", b)
	}
}

func TestThreshFmTrace(t *testing.T) {
	ap := Params{}
	ap.Defaults()

	if th := ap.ThreshFmTrace(0); math32.Abs(th-ap.Thr) > difTol {
		t.Errorf("thresh err: zero trace gives %v, want base %v\n", th, ap.Thr)
	}
	bs := []float32{0.1, 0.5, 2.5} // no clamping: trace beyond 1 still couples linearly
	for _, b := range bs {
		cor := ap.Thr + b*ap.Gain
		th := ap.ThreshFmTrace(b)
		if math32.Abs(th-cor) > difTol {
			t.Errorf("thresh err: b: %v, th: %v, cor: %v\n", b, th, cor)
		}
	}

	ap.Gain = 0 // zero coupling nulls adaptation entirely
	for _, b := range bs {
		if th := ap.ThreshFmTrace(b); th != ap.Thr {
			t.Errorf("thresh err: Gain=0, b: %v gives %v, want %v\n", b, th, ap.Thr)
		}
	}
}

func TestUpdateRhoB(t *testing.T) {
	ap := Params{}
	ap.Defaults()
	cor := math32.Exp(-float32(1) / 200)
	if math32.Abs(ap.RhoB-cor) > difTol {
		t.Errorf("RhoB err: %v, cor: %v\n", ap.RhoB, cor)
	}
	ap.Tau = 50
	ap.Dt = 2
	ap.Update()
	cor = math32.Exp(-float32(2) / 50)
	if math32.Abs(ap.RhoB-cor) > difTol {
		t.Errorf("RhoB err after Update: %v, cor: %v\n", ap.RhoB, cor)
	}
}
