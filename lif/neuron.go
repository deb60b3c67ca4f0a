// Copyright (c) 2025, The Lifsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

// lif.Neuron holds the state variables of one LIF neuron. A Neuron is owned
// exclusively by one simulation run for its lifetime and is mutated once per
// timestep, by the integration step and then by the spike / reset rule.
type Neuron struct {

	// membrane potential in volts -- integrates the input current over time.
	Vm float64

	// du/dt from the last integration step, in volts / second.
	DVmDt float64

	// whether the neuron spiked on the current step.
	Spike bool
}
