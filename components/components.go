// Package components defines ECS components for the streamline viewer.
package components

import "github.com/pthm-cable/streamlines/vecmath"

// Line locates one streamline's points in the loaded polylines.
type Line struct {
	Seed       int
	Start, End int // point range [Start, End)
}

// Len returns the number of points on the line.
func (l Line) Len() int {
	return l.End - l.Start
}

// Bounds is the axis-aligned box around a line.
type Bounds struct {
	Lo, Hi vecmath.Vec3
}

// Extend grows b to include p.
func (b *Bounds) Extend(p vecmath.Vec3) {
	b.Lo = vecmath.V3(min(b.Lo.X, p.X), min(b.Lo.Y, p.Y), min(b.Lo.Z, p.Z))
	b.Hi = vecmath.V3(max(b.Hi.X, p.X), max(b.Hi.Y, p.Y), max(b.Hi.Z, p.Z))
}

// Metrics holds per-line measurements.
type Metrics struct {
	ArcLength float32
	Duration  float32 // time of the last point
}

// Style controls how a line is drawn.
type Style struct {
	Hue     float32 // degrees, used when not coloring by time
	Visible bool
}
