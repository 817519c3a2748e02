// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package wta provides winner-take-all lateral inhibition for the lsnn
layer: within one batch row, only the unit with the maximum membrane
potential may spike, and only if that maximum also meets its own
threshold.  All other units are suppressed regardless of their own
potential-vs-threshold comparison.
*/
package wta

import "github.com/emer/etable/minmax"

// Params specifies winner-take-all lateral inhibition within a layer.
type Params struct {
	On bool `desc:"restrict spiking to the single maximum-potential unit per batch row -- if the maximum does not meet its own threshold, no unit spikes"`
}

func (wp *Params) Defaults() {
	wp.On = false
}

func (wp *Params) Update() {
}

// Inhibit computes winner-take-all spiking for one batch row.
// spk, pot, and thresh must be equal-length slices over the units of
// one batch element.  spk is written: all zeros except possibly the
// winner.  Ties on the maximum potential go to the lowest unit index,
// so the outcome is deterministic.
func (wp *Params) Inhibit(spk, pot, thresh []float32) {
	am := minmax.AvgMax32{}
	am.Init()
	for i, p := range pot {
		am.UpdateVal(p, i)
	}
	am.CalcAvg()
	for i := range spk {
		spk[i] = 0
	}
	if am.N == 0 {
		return
	}
	win := int(am.MaxIdx)
	if pot[win] >= thresh[win] {
		spk[win] = 1
	}
}
