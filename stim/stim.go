// Copyright (c) 2025, The Lifsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stim provides input current stimulus profiles for driving a neuron
simulation. Profiles are stateless values: the current is a pure function of
simulated time, re-evaluable at any t, so a profile can be shared or rebuilt
freely across runs.
*/
package stim

// Profile yields the input current in amperes at simulated time t in seconds.
// Implementations are deterministic, free of side effects, and total for all
// t >= 0. Negative currents are valid (hyperpolarizing input).
type Profile interface {
	CurrentAt(t float64) float64
}

// Constant is a constant injection current at all times.
type Constant struct {

	// injection current in amperes.
	I float64
}

func (cs Constant) CurrentAt(t float64) float64 {
	return cs.I
}

// Bounded is a constant current active until a cutoff time and zero after.
// A Cutoff of 0 degrades to no stimulus at all.
type Bounded struct {

	// injection current in amperes, active while t < Cutoff.
	I float64

	// cutoff time in seconds, in the same time base as the simulation clock.
	Cutoff float64
}

func (bs Bounded) CurrentAt(t float64) float64 {
	if t < bs.Cutoff {
		return bs.I
	}
	return 0
}
