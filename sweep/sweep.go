// Copyright (c) 2025, The Lifsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sweep repeats simulation runs across a scalar parameter range and
derives scalar curves from the spike output: spike counts, frequency-current
(f-I) curves, rheobase, and minimum stimulus duration.

All searches are bounded linear scans from a floor value: the first value
that spikes is the minimum satisfying value, assuming (not verifying)
monotonicity of spiking in the swept parameter. A search that reaches its
iteration ceiling reports ErrExhausted rather than returning the ceiling.
*/
package sweep

import (
	"errors"
	"fmt"
	"sync"

	"github.com/neurosim/lifsim/lif"
	"github.com/neurosim/lifsim/sim"
	"github.com/neurosim/lifsim/stim"
)

// ErrExhausted indicates a search hit its iteration ceiling without finding
// any spike.
var ErrExhausted = errors.New("sweep: search exhausted without a spike")

// Sweep configures repeated runs over one scalar parameter. Each run is an
// independent simulation with its own neuron state; the Sweep itself holds
// no per-run state.
type Sweep struct {

	// neuron parameters shared by all runs.
	Params lif.Params

	// integration timestep in seconds for each run.
	Dt float64 `def:"1e-5"`

	// simulated time horizon in seconds of each run.
	Horizon float64 `def:"1"`

	// hard ceiling on search iterations, keeping searches total even when
	// no parameter value in range can spike.
	MaxIter int `def:"10000"`

	// number of parallel workers for independent sweep points -- 0 or 1
	// runs serially. Results are slotted by index, so output ordering is
	// identical either way.
	Workers int
}

// Defaults sets the reference sweep values.
func (sw *Sweep) Defaults() {
	sw.Params.Defaults()
	sw.Dt = 1e-5
	sw.Horizon = 1
	sw.MaxIter = 10000
}

// Validate fails fast on invalid parameters, before any run starts.
func (sw *Sweep) Validate() error {
	if err := sw.runConfig(stim.Constant{}).Validate(); err != nil {
		return err
	}
	if sw.MaxIter <= 0 {
		return fmt.Errorf("%w: MaxIter = %d, must be > 0", lif.ErrParams, sw.MaxIter)
	}
	return nil
}

func (sw *Sweep) runConfig(pro stim.Profile) *sim.Config {
	return &sim.Config{Params: sw.Params, Profile: pro, Dt: sw.Dt, Horizon: sw.Horizon}
}

// SpikeCount returns the number of spikes over one run at constant current i
// (amperes).
func (sw *Sweep) SpikeCount(i float64) (int, error) {
	res, err := sim.Run(sw.runConfig(stim.Constant{I: i}))
	if err != nil {
		return 0, err
	}
	return len(res.Spikes), nil
}

// Point is one sample of an f-I curve: the spike count for an input current.
// Over a 1 second horizon the count equals the mean firing rate in Hz.
type Point struct {

	// input current in amperes.
	I float64

	// spikes over the run horizon.
	Spikes int
}

// Currents computes the f-I curve over the given ordered currents, one run
// per value. Output order follows input order regardless of Workers.
func (sw *Sweep) Currents(currents []float64) ([]Point, error) {
	if err := sw.Validate(); err != nil {
		return nil, err
	}
	pts := make([]Point, len(currents))
	if sw.Workers > 1 {
		if err := sw.currentsPar(currents, pts); err != nil {
			return nil, err
		}
		return pts, nil
	}
	for n, i := range currents {
		cnt, err := sw.SpikeCount(i)
		if err != nil {
			return nil, err
		}
		pts[n] = Point{I: i, Spikes: cnt}
	}
	return pts, nil
}

// currentsPar fans sweep points out across Workers goroutines. Runs share no
// state and every point writes only its own index-addressed slot.
func (sw *Sweep) currentsPar(currents []float64, pts []Point) error {
	nw := sw.Workers
	if nw > len(currents) {
		nw = len(currents)
	}
	errs := make([]error, len(currents))
	next := make(chan int)
	var wg sync.WaitGroup
	wg.Add(nw)
	for w := 0; w < nw; w++ {
		go func() {
			defer wg.Done()
			for n := range next {
				cnt, err := sw.SpikeCount(currents[n])
				if err != nil {
					errs[n] = err
					continue
				}
				pts[n] = Point{I: currents[n], Spikes: cnt}
			}
		}()
	}
	for n := range currents {
		next <- n
	}
	close(next)
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Rheobase returns the smallest constant current, scanning from startI in
// stepI increments (amperes), that produces at least one spike within the
// horizon. The scan is linear from the floor, so the first hit is the
// minimum satisfying value.
func (sw *Sweep) Rheobase(startI, stepI float64) (float64, error) {
	if err := sw.Validate(); err != nil {
		return 0, err
	}
	if stepI <= 0 {
		return 0, fmt.Errorf("%w: stepI = %g, must be > 0", lif.ErrParams, stepI)
	}
	for n := 0; n < sw.MaxIter; n++ {
		i := startI + float64(n)*stepI
		cnt, err := sw.SpikeCount(i)
		if err != nil {
			return 0, err
		}
		if cnt > 0 {
			return i, nil
		}
	}
	top := startI + float64(sw.MaxIter-1)*stepI
	return 0, fmt.Errorf("%w: no spike for currents in [%g, %g] A", ErrExhausted, startI, top)
}

// MinStimDuration returns the smallest cutoff time for a bounded stimulus of
// amplitude i (amperes), scanning from stepDur in stepDur increments
// (seconds), that produces at least one spike within the horizon.
func (sw *Sweep) MinStimDuration(i, stepDur float64) (float64, error) {
	if err := sw.Validate(); err != nil {
		return 0, err
	}
	if stepDur <= 0 {
		return 0, fmt.Errorf("%w: stepDur = %g, must be > 0", lif.ErrParams, stepDur)
	}
	for n := 1; n <= sw.MaxIter; n++ {
		cut := float64(n) * stepDur
		res, err := sim.Run(sw.runConfig(stim.Bounded{I: i, Cutoff: cut}))
		if err != nil {
			return 0, err
		}
		if len(res.Spikes) > 0 {
			return cut, nil
		}
	}
	top := float64(sw.MaxIter) * stepDur
	return 0, fmt.Errorf("%w: no spike for stimulus durations up to %g s", ErrExhausted, top)
}
