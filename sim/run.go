// Copyright (c) 2025, The Lifsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sim runs one LIF neuron over a fixed simulated time window: a pure
sequential loop that samples the stimulus, advances the membrane potential by
one explicit Euler step, applies the spike threshold / reset, and records the
sample, once per timestep. The accumulated membrane potential time series and
spike events are handed to the caller when the run finishes.
*/
package sim

import (
	"fmt"
	"math"
	"strconv"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/etable/v2/minmax"
	"github.com/neurosim/lifsim/lif"
	"github.com/neurosim/lifsim/stim"
)

// LogPrec is precision for saving float values in logs
const LogPrec = 6

// Config fully specifies one simulation run. Configs carry no state across
// runs: the neuron and clock are created fresh inside Run.
type Config struct {

	// neuron parameters, fixed for the duration of the run.
	Params lif.Params

	// input current profile driving the neuron over time.
	Profile stim.Profile

	// integration timestep in seconds -- must be small relative to
	// Params.TauM (the reference configuration uses 1e-5 against 30e-3).
	Dt float64 `def:"1e-5"`

	// simulated time horizon in seconds -- the run takes round(Horizon/Dt) steps.
	Horizon float64 `def:"1"`

	// identifier recorded on spike events -- single-neuron runs use 0.
	NeuronID int

	// whether to record the Vm time series table. Sweeps turn this off to
	// avoid allocating per-step rows they never read.
	RecordVm bool
}

// Defaults sets the reference run values: 10 microsecond timestep,
// 1 second horizon, Vm recording on.
func (cfg *Config) Defaults() {
	cfg.Params.Defaults()
	cfg.Dt = 1e-5
	cfg.Horizon = 1
	cfg.RecordVm = true
}

// Validate fails fast on invalid parameters, before any stepping.
func (cfg *Config) Validate() error {
	if err := cfg.Params.Validate(); err != nil {
		return err
	}
	if cfg.Profile == nil {
		return fmt.Errorf("%w: nil stimulus profile", lif.ErrParams)
	}
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) {
		return fmt.Errorf("%w: Dt = %g, must be > 0", lif.ErrParams, cfg.Dt)
	}
	if cfg.Horizon < 0 || math.IsNaN(cfg.Horizon) {
		return fmt.Errorf("%w: Horizon = %g, must be >= 0", lif.ErrParams, cfg.Horizon)
	}
	return nil
}

// NumSteps returns the total number of integration steps: round(Horizon/Dt).
func (cfg *Config) NumSteps() int {
	return int(math.Round(cfg.Horizon / cfg.Dt))
}

// Result holds the outputs of one run. It is owned by the caller on return
// and never touched again by the runner.
type Result struct {

	// spike events in time-ascending order.
	Spikes []SpikeEvent

	// total number of integration steps taken.
	Steps int

	// membrane potential in volts at the end of the run.
	FinalVm float64

	// observed range of Vm over the run (post-reset values).
	VmRange minmax.F64

	// per-step record of simulated time and membrane potential, in columns
	// Time and Vm -- nil unless Config.RecordVm is set.
	Table *etable.Table
}

// Run simulates one neuron over the configured horizon. Per step it computes
// I(t) from the profile, advances Vm by one Euler step, commits it, applies
// the spike threshold / reset (which may overwrite Vm and append a spike
// event), records the sample, and advances the clock. The loop is strictly
// sequential and retains no state between calls, so identical configs
// produce identical results.
func Run(cfg *Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	nsteps := cfg.NumSteps()
	res := &Result{}
	res.VmRange.SetInfinity()
	if cfg.RecordVm {
		res.Table = NewVmTable(nsteps)
	}

	tm := &Time{Dt: cfg.Dt}
	nrn := &lif.Neuron{}
	cfg.Params.Init(nrn)

	for tm.Step < nsteps {
		t := tm.Now()
		i := cfg.Profile.CurrentAt(t)
		cfg.Params.VmFromI(nrn, i, cfg.Dt)
		if cfg.Params.SpikeFromVm(nrn) {
			res.Spikes = append(res.Spikes, SpikeEvent{Time: t, NeuronID: cfg.NeuronID})
		}
		res.VmRange.FitValInRange(nrn.Vm)
		if res.Table != nil {
			res.Table.SetCellFloat("Time", tm.Step, t)
			res.Table.SetCellFloat("Vm", tm.Step, nrn.Vm)
		}
		tm.StepInc()
	}
	res.Steps = tm.Step
	res.FinalVm = nrn.Vm
	return res, nil
}

// NewVmTable returns a membrane potential log table with Time and Vm
// float64 columns and the given number of rows.
func NewVmTable(rows int) *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "VmLog")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	sch := etable.Schema{
		{Name: "Time", Type: etensor.FLOAT64},
		{Name: "Vm", Type: etensor.FLOAT64},
	}
	dt.SetFromSchema(sch, rows)
	return dt
}
