// Package vtp writes traced streamlines as VTK XML PolyData (.vtp) documents.
package vtp

import (
	"github.com/pthm-cable/streamlines/trace"
)

// Polylines is the flattened form of a set of streamlines. Connectivity,
// Coords (three per point) and Times are index-aligned by point; Offsets holds
// the starting connectivity index of each line.
type Polylines struct {
	NumPoints    int
	NumLines     int
	Offsets      []int32
	Connectivity []int32
	Coords       []float32
	Times        []float32
}

// Build flattens traj. Each seed contributes one line holding its states from
// step 0 up to its first exited entry.
func Build(traj *trace.Trajectories) Polylines {
	pl := Polylines{
		NumLines: traj.NumSeeds,
		Offsets:  make([]int32, 0, traj.NumSeeds),
	}

	for seed := 0; seed < traj.NumSeeds; seed++ {
		pl.Offsets = append(pl.Offsets, int32(pl.NumPoints))
		for _, p := range traj.Streamline(seed) {
			pl.Connectivity = append(pl.Connectivity, int32(pl.NumPoints))
			pl.Coords = append(pl.Coords, p.Pos.X, p.Pos.Y, p.Pos.Z)
			pl.Times = append(pl.Times, p.Time)
			pl.NumPoints++
		}
	}

	return pl
}

// Line returns the point range [start, end) of line i.
func (pl Polylines) Line(i int) (start, end int) {
	start = int(pl.Offsets[i])
	end = pl.NumPoints
	if i+1 < len(pl.Offsets) {
		end = int(pl.Offsets[i+1])
	}
	return start, end
}
