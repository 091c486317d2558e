package telemetry

import (
	"github.com/pthm-cable/streamlines/trace"
)

// SeedSummary describes one traced streamline.
type SeedSummary struct {
	Seed      int     `csv:"seed"`
	Points    int     `csv:"points"`
	Exited    bool    `csv:"exited"`
	ExitStep  int     `csv:"exit_step"` // -1 if the seed never exited
	FinalTime float32 `csv:"final_time"`
	ArcLength float64 `csv:"arc_length"`

	StartX float32 `csv:"start_x"`
	StartY float32 `csv:"start_y"`
	StartZ float32 `csv:"start_z"`
	EndX   float32 `csv:"end_x"`
	EndY   float32 `csv:"end_y"`
	EndZ   float32 `csv:"end_z"`
}

// Summarize produces one summary per seed of traj.
func Summarize(traj *trace.Trajectories) []SeedSummary {
	out := make([]SeedSummary, traj.NumSeeds)
	for seed := range out {
		line := traj.Streamline(seed)
		s := SeedSummary{Seed: seed, Points: len(line), ExitStep: -1}
		if len(line) < traj.NumSteps {
			s.Exited = true
			s.ExitStep = len(line)
		}

		if len(line) > 0 {
			first, last := line[0], line[len(line)-1]
			s.FinalTime = last.Time
			s.StartX, s.StartY, s.StartZ = first.Pos.X, first.Pos.Y, first.Pos.Z
			s.EndX, s.EndY, s.EndZ = last.Pos.X, last.Pos.Y, last.Pos.Z
			for i := 1; i < len(line); i++ {
				s.ArcLength += float64(line[i].Pos.Sub(line[i-1].Pos).Len())
			}
		}
		out[seed] = s
	}
	return out
}
