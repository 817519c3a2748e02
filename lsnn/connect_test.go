// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsnn

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(cn *ConnectParams)
		ok   bool
		mode ConnectMode
	}{
		{"linear", func(cn *ConnectParams) {
			cn.LinearN = 10
		}, true, Linear},
		{"conv", func(cn *ConnectParams) {
			cn.ConvChans = 4
			cn.SetKernel(5)
		}, true, Conv2D},
		{"conv rect kernel", func(cn *ConnectParams) {
			cn.ConvChans = 4
			cn.KernelY = 5
			cn.KernelX = 3
		}, true, Conv2D},
		{"one-to-one", func(cn *ConnectParams) {
			cn.AllToAll = false
		}, true, OneToOne},
		{"all-to-all empty", func(cn *ConnectParams) {
		}, false, 0},
		{"chans without kernel", func(cn *ConnectParams) {
			cn.ConvChans = 4
		}, false, 0},
		{"kernel without chans", func(cn *ConnectParams) {
			cn.SetKernel(3)
		}, false, 0},
		{"linear plus conv", func(cn *ConnectParams) {
			cn.LinearN = 10
			cn.ConvChans = 4
			cn.SetKernel(3)
		}, false, 0},
		{"linear plus kernel only", func(cn *ConnectParams) {
			cn.LinearN = 10
			cn.SetKernel(3)
		}, false, 0},
		{"one-to-one with linear", func(cn *ConnectParams) {
			cn.AllToAll = false
			cn.LinearN = 10
		}, false, 0},
		{"one-to-one with conv", func(cn *ConnectParams) {
			cn.AllToAll = false
			cn.ConvChans = 4
			cn.SetKernel(3)
		}, false, 0},
	}
	for _, tst := range tests {
		cn := ConnectParams{}
		cn.Defaults()
		tst.cfg(&cn)
		err := cn.Validate()
		if tst.ok {
			if err != nil {
				t.Errorf("%v: unexpected error: %v\n", tst.name, err)
				continue
			}
			if md := cn.Mode(); md != tst.mode {
				t.Errorf("%v: mode: %v, cor: %v\n", tst.name, md, tst.mode)
			}
		} else {
			if err == nil {
				t.Errorf("%v: expected configuration error, got none\n", tst.name)
			} else if !errors.Is(err, ErrConfig) {
				t.Errorf("%v: error does not wrap ErrConfig: %v\n", tst.name, err)
			}
		}
	}
}

func TestNewLayerRejectsInvalid(t *testing.T) {
	con := ConnectParams{}
	con.Defaults() // all-to-all with nothing specified
	act := ActParams{}
	act.Defaults()
	ly, err := NewLayer("bad", con, act)
	if err == nil || ly != nil {
		t.Errorf("expected construction to fail, got layer %v err %v\n", ly, err)
	}
	if !errors.Is(err, ErrConfig) {
		t.Errorf("error does not wrap ErrConfig: %v\n", err)
	}

	con.LinearN = 4
	act.Reset = ResetModeN // unsupported reset policy token
	ly, err = NewLayer("badreset", con, act)
	if err == nil || ly != nil {
		t.Errorf("expected reset-policy error, got layer %v err %v\n", ly, err)
	}
}
