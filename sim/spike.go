// Copyright (c) 2025, The Lifsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

// SpikeEvent records one threshold crossing. Events are immutable once
// created and are appended in generation order, which is monotonic in
// simulated time, so a run's spike list is always time-ascending.
type SpikeEvent struct {

	// simulated time of the spike in seconds.
	Time float64

	// identifier of the spiking neuron.
	NeuronID int
}
