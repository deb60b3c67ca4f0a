// Copyright (c) 2025, The Lifsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

// sim.Time is the simulation clock: a fixed timestep and the count of steps
// taken so far. Simulated time is derived as Step * Dt rather than
// accumulated by repeated addition, so the clock carries no floating-point
// drift over long runs.
type Time struct {

	// step counter: number of completed integration steps on this run.
	Step int

	// amount of simulated time per step, in seconds.
	Dt float64 `def:"1e-5"`
}

// NewTime returns a new Time struct with default parameters.
func NewTime() *Time {
	tm := &Time{}
	tm.Defaults()
	return tm
}

// Defaults sets default values.
func (tm *Time) Defaults() {
	tm.Dt = 1e-5
}

// Reset resets the step counter back to zero.
func (tm *Time) Reset() {
	tm.Step = 0
	if tm.Dt == 0 {
		tm.Defaults()
	}
}

// Now returns the current simulated time in seconds.
func (tm *Time) Now() float64 {
	return float64(tm.Step) * tm.Dt
}

// StepInc increments the step counter after a completed step.
func (tm *Time) StepInc() {
	tm.Step++
}
