// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsnn

import "strings"

// Group is an explicit collection of layers supporting broadcast
// lifecycle operations across all of them at once.  Whatever assembles
// a network of lsnn layers owns the Group and adds layers to it; there
// is no process-wide registry, so unrelated layers are never coupled
// and nothing accumulates for the process lifetime.
type Group struct {
	Layers []*Layer `desc:"the member layers, in the order added"`
}

// NewGroup returns a new empty layer group.
func NewGroup() *Group {
	return &Group{}
}

// Add appends layers to the group.
func (gp *Group) Add(lys ...*Layer) {
	gp.Layers = append(gp.Layers, lys...)
}

// ResetAll reinitializes the owned state of every hidden-state member
// layer with bound state to all zeros.  Explicit-state and unbound
// members are skipped.
func (gp *Group) ResetAll() {
	for _, ly := range gp.Layers {
		if !ly.Hidden || ly.Spk == nil {
			continue
		}
		ly.ResetHidden()
	}
}

// DetachAll detaches the owned state of every hidden-state member
// layer (see Layer.DetachHidden).  Explicit-state members are skipped.
func (gp *Group) DetachAll() {
	for _, ly := range gp.Layers {
		if !ly.Hidden {
			continue
		}
		ly.DetachHidden()
	}
}

// InitAll binds and zeros the owned state of every hidden-state
// member layer at the given shape.  Returns the first error
// encountered, continuing through the rest.
func (gp *Group) InitAll(shape []int) error {
	var ferr error
	for _, ly := range gp.Layers {
		if !ly.Hidden {
			continue
		}
		if err := ly.InitHidden(shape); err != nil && ferr == nil {
			ferr = err
		}
	}
	return ferr
}

// SizeReport returns the concatenated size reports of all members.
func (gp *Group) SizeReport() string {
	var b strings.Builder
	for _, ly := range gp.Layers {
		b.WriteString(ly.SizeReport())
	}
	return b.String()
}
