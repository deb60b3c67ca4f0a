// Copyright (c) 2025, The Lifsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lifsim is the overall repository for a leaky integrate-and-fire (LIF)
neuron simulation implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* lif: the LIF neuron model itself -- parameters, state, the explicit
(forward) Euler integration step, and the threshold spike / reset rule.

* stim: input current stimulus profiles (constant, and bounded with a
cutoff time) that drive the neuron.

* sim: the simulation clock and runner, which advances one neuron over a
fixed time horizon and records the membrane potential time series and
spike events.

* sweep: bounded parameter sweeps over repeated runs, deriving scalar
curves: spike counts, frequency-current (f-I) curves, rheobase, and
minimum stimulus duration.

* cmd/lifsim: a thin command-line reporter that runs the above and writes
tables as TSV for external plotting.
*/
package lifsim
