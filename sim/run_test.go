// Copyright (c) 2025, The Lifsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/neurosim/lifsim/lif"
	"github.com/neurosim/lifsim/stim"
)

const difTol = 1.0e-9

func refConfig(pro stim.Profile) *Config {
	cfg := &Config{}
	cfg.Defaults()
	cfg.Profile = pro
	cfg.RecordVm = false
	return cfg
}

func TestValidate(t *testing.T) {
	cfg := refConfig(stim.Constant{I: 50e-12})

	good := *cfg
	if err := good.Validate(); err != nil {
		t.Errorf("reference config should validate, got: %v", err)
	}

	noPro := *cfg
	noPro.Profile = nil
	if err := noPro.Validate(); !errors.Is(err, lif.ErrParams) {
		t.Errorf("nil profile: got %v, want ErrParams", err)
	}

	badDt := *cfg
	badDt.Dt = 0
	if err := badDt.Validate(); !errors.Is(err, lif.ErrParams) {
		t.Errorf("dt=0: got %v, want ErrParams", err)
	}

	badTau := *cfg
	badTau.Params.TauM = -1
	if err := badTau.Validate(); !errors.Is(err, lif.ErrParams) {
		t.Errorf("TauM<0: got %v, want ErrParams", err)
	}

	badHor := *cfg
	badHor.Horizon = -1
	if _, err := Run(&badHor); !errors.Is(err, lif.ErrParams) {
		t.Errorf("Horizon<0: Run got %v, want ErrParams", err)
	}
}

// TestSubthreshold is the 50 pA reference scenario: no spikes over 1 second,
// and Vm converges to an asymptote strictly below threshold.
func TestSubthreshold(t *testing.T) {
	cfg := refConfig(stim.Constant{I: 50e-12})
	res, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Spikes) != 0 {
		t.Errorf("50 pA: got %d spikes, want 0", len(res.Spikes))
	}
	if res.Steps != cfg.NumSteps() {
		t.Errorf("steps: got %d, want %d", res.Steps, cfg.NumSteps())
	}
	asym := cfg.Params.VmAsymptote(50e-12)
	if asym >= cfg.Params.Uthres {
		t.Errorf("asymptote %g should be below threshold %g", asym, cfg.Params.Uthres)
	}
	if math.Abs(res.FinalVm-asym) > difTol {
		t.Errorf("final Vm: got %g, want asymptote %g", res.FinalVm, asym)
	}
	if res.VmRange.Max >= cfg.Params.Uthres {
		t.Errorf("Vm max %g should stay below threshold %g", res.VmRange.Max, cfg.Params.Uthres)
	}
	// the first recorded sample is one Euler step above rest; Vm never dips below
	if res.VmRange.Min < cfg.Params.Urest || res.VmRange.Min > cfg.Params.Urest+1e-5 {
		t.Errorf("Vm min: got %g, want just above Urest %g", res.VmRange.Min, cfg.Params.Urest)
	}
}

// TestSpiking is the 250 pA reference scenario: exactly 33 spikes over
// 1 second of simulated time.
func TestSpiking(t *testing.T) {
	cfg := refConfig(stim.Constant{I: 250e-12})
	res, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Spikes) != 33 {
		t.Errorf("250 pA: got %d spikes, want 33", len(res.Spikes))
	}
	last := -1.0
	for n, ev := range res.Spikes {
		if ev.Time <= last {
			t.Errorf("spike %d at %g not after previous %g", n, ev.Time, last)
		}
		if ev.NeuronID != 0 {
			t.Errorf("spike %d: neuron id %d, want 0", n, ev.NeuronID)
		}
		last = ev.Time
	}
}

func TestVmTable(t *testing.T) {
	cfg := refConfig(stim.Constant{I: 50e-12})
	cfg.Horizon = 10e-3
	cfg.RecordVm = true
	res, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Table == nil {
		t.Fatal("RecordVm should produce a table")
	}
	if res.Table.Rows != cfg.NumSteps() {
		t.Errorf("table rows: got %d, want %d", res.Table.Rows, cfg.NumSteps())
	}
	if got := res.Table.CellFloat("Time", 0); got != 0 {
		t.Errorf("first sample time: got %g, want 0", got)
	}
	// time column is the drift-free step*dt representation
	row := cfg.NumSteps() - 1
	want := float64(row) * cfg.Dt
	if got := res.Table.CellFloat("Time", row); got != want {
		t.Errorf("last sample time: got %g, want %g", got, want)
	}
	if got := res.Table.CellFloat("Vm", row); got != res.FinalVm {
		t.Errorf("last sample Vm: got %g, want final Vm %g", got, res.FinalVm)
	}
}

// TestIdempotence: identical configs produce bit-identical outputs -- there
// is no hidden state between runs.
func TestIdempotence(t *testing.T) {
	run := func() *Result {
		cfg := refConfig(stim.Constant{I: 250e-12})
		cfg.Horizon = 0.2
		res, err := Run(cfg)
		if err != nil {
			t.Fatal(err)
		}
		return res
	}
	a := run()
	b := run()
	if a.FinalVm != b.FinalVm {
		t.Errorf("final Vm differs: %g vs %g", a.FinalVm, b.FinalVm)
	}
	if len(a.Spikes) != len(b.Spikes) {
		t.Fatalf("spike counts differ: %d vs %d", len(a.Spikes), len(b.Spikes))
	}
	for n := range a.Spikes {
		if a.Spikes[n] != b.Spikes[n] {
			t.Errorf("spike %d differs: %+v vs %+v", n, a.Spikes[n], b.Spikes[n])
		}
	}
}

// TestBoundedProfile: with the stimulus cut off well before threshold can be
// reached, Vm rises and then decays back toward rest without spiking.
func TestBoundedProfile(t *testing.T) {
	cfg := refConfig(stim.Bounded{I: 400e-12, Cutoff: 5e-3})
	cfg.Horizon = 0.15
	res, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Spikes) != 0 {
		t.Errorf("5 ms of 400 pA: got %d spikes, want 0", len(res.Spikes))
	}
	if res.VmRange.Max <= cfg.Params.Urest {
		t.Errorf("Vm should rise above rest, max %g", res.VmRange.Max)
	}
	// ~5 time constants after cutoff, Vm is back within 0.1 mV of rest
	if math.Abs(res.FinalVm-cfg.Params.Urest) > 1e-4 {
		t.Errorf("final Vm: got %g, want near rest %g", res.FinalVm, cfg.Params.Urest)
	}
}
