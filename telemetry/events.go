// Package telemetry provides run statistics, step timing and CSV output.
package telemetry

import "github.com/pthm-cable/streamlines/trace"

// ExitRecord is the CSV form of a trace.ExitEvent.
type ExitRecord struct {
	Seed int     `csv:"seed"`
	Step int     `csv:"step"`
	Time float32 `csv:"time"`
	X    float32 `csv:"x"`
	Y    float32 `csv:"y"`
	Z    float32 `csv:"z"`
}

// NewExitRecord flattens e.
func NewExitRecord(e trace.ExitEvent) ExitRecord {
	return ExitRecord{
		Seed: e.Seed,
		Step: e.Step,
		Time: e.Time,
		X:    e.Pos.X,
		Y:    e.Pos.Y,
		Z:    e.Pos.Z,
	}
}
