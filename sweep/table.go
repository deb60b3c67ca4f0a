// Copyright (c) 2025, The Lifsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"strconv"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/neurosim/lifsim/sim"
)

// Table returns an f-I curve as a table with Current and Spikes float64
// columns, one row per point, for TSV export and external plotting.
func Table(pts []Point) *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "FICurve")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(sim.LogPrec))

	sch := etable.Schema{
		{Name: "Current", Type: etensor.FLOAT64},
		{Name: "Spikes", Type: etensor.FLOAT64},
	}
	dt.SetFromSchema(sch, len(pts))
	for n, p := range pts {
		dt.SetCellFloat("Current", n, p.I)
		dt.SetCellFloat("Spikes", n, float64(p.Spikes))
	}
	return dt
}
