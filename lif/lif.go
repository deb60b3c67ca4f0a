// Copyright (c) 2025, The Lifsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lif implements the leaky integrate-and-fire (LIF) neuron model:
a single membrane potential u driven by the first-order equation

	tau_m * du/dt = -(u - u_rest) + R * I(t)

where R is the membrane resistance and tau_m the membrane time constant of
the RC circuit formed by the cell membrane. The equation is integrated with
the explicit (forward) Euler method -- local truncation error O(dt^2),
global error O(dt) -- and a threshold spike / reset rule is applied once
per timestep on top of the integrated value.

All quantities are in SI units: volts, amperes, ohms, seconds.
*/
package lif

import (
	"errors"
	"fmt"
)

// ErrParams indicates an invalid neuron or simulation parameter.
// Parameter errors are detected up front, before any integration step runs.
var ErrParams = errors.New("lif: invalid parameter")

// lif.Params contains the LIF neuron parameters, which are fixed for the
// duration of a run. Defaults are the reference configuration of a
// cortical-scale neuron (95 MOhm, 30 ms, rest and reset at -65 mV,
// threshold at -50 mV).
type Params struct {

	// membrane resistance in ohms -- lumps the leak channels of the cell membrane.
	R float64 `def:"95e6"`

	// membrane time constant tau_m in seconds. The Euler timestep must be
	// small relative to this (dt << TauM) for stability and accuracy -- the
	// reference configuration uses dt = 1e-5 against TauM = 30e-3.
	TauM float64 `def:"0.03"`

	// resting potential in volts -- the equilibrium that Vm relaxes to at zero input.
	Urest float64 `def:"-0.065"`

	// reset potential in volts -- Vm is set back to this after a spike.
	// Must not exceed Uthres.
	Ureset float64 `def:"-0.065"`

	// threshold potential in volts -- reaching it emits a spike and resets Vm.
	Uthres float64 `def:"-0.05"`
}

// Defaults sets the reference parameter values.
func (np *Params) Defaults() {
	np.R = 95e6
	np.TauM = 30e-3
	np.Urest = -65e-3
	np.Ureset = -65e-3
	np.Uthres = -50e-3
}

// Validate checks the parameter invariants: R > 0, TauM > 0, Ureset <= Uthres.
func (np *Params) Validate() error {
	if np.R <= 0 {
		return fmt.Errorf("%w: R = %g, must be > 0", ErrParams, np.R)
	}
	if np.TauM <= 0 {
		return fmt.Errorf("%w: TauM = %g, must be > 0", ErrParams, np.TauM)
	}
	if np.Ureset > np.Uthres {
		return fmt.Errorf("%w: Ureset = %g is above Uthres = %g", ErrParams, np.Ureset, np.Uthres)
	}
	return nil
}

// Init initializes neuron state for a fresh run, with Vm at resting potential.
func (np *Params) Init(nrn *Neuron) {
	nrn.Vm = np.Urest
	nrn.DVmDt = 0
	nrn.Spike = false
}

// DVmDtFromI returns du/dt in volts / second for membrane potential vm under
// input current i in amperes. Negative currents are valid (hyperpolarizing).
func (np *Params) DVmDtFromI(vm, i float64) float64 {
	return (-(vm - np.Urest) + np.R*i) / np.TauM
}

// VmFromI advances Vm by one explicit Euler step of size dt under input
// current i. This is a single unconditional arithmetic update with no
// branching on the value of Vm -- the spike check is separate (SpikeFromVm)
// so the caller controls the commit ordering.
func (np *Params) VmFromI(nrn *Neuron, i, dt float64) {
	nrn.DVmDt = np.DVmDtFromI(nrn.Vm, i)
	nrn.Vm += nrn.DVmDt * dt
}

// SpikeFromVm applies the threshold / reset rule to the just-integrated Vm:
// if Vm >= Uthres the neuron spikes and Vm is set back to Ureset.
// At most one spike is emitted per step, however far Vm overshot the
// threshold within the step: overshoot is an explicit-Euler artifact of
// large dt or large currents, and the reset is applied once, not looped.
func (np *Params) SpikeFromVm(nrn *Neuron) bool {
	if nrn.Vm >= np.Uthres {
		nrn.Vm = np.Ureset
		nrn.Spike = true
		return true
	}
	nrn.Spike = false
	return false
}

// VmAsymptote returns the fixed point u_rest + R*I that Vm converges to
// under a constant current i, absent threshold crossings (du/dt = 0).
func (np *Params) VmAsymptote(i float64) float64 {
	return np.Urest + np.R*i
}

// RheobaseEstimate returns the analytic minimum constant current in amperes
// for which the asymptote reaches threshold: (Uthres - Urest) / R.
// The simulated rheobase over a finite horizon is slightly above this.
func (np *Params) RheobaseEstimate() float64 {
	return (np.Uthres - np.Urest) / np.R
}
