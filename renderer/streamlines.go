// Package renderer draws loaded streamlines with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/streamlines/scene"
	"github.com/pthm-cable/streamlines/vecmath"
)

// StreamlineRenderer draws scene segments in 3D.
type StreamlineRenderer struct {
	ColorByTime bool
	Additive    bool
	Alpha       uint8
}

// NewStreamlineRenderer creates a renderer coloring by time with additive blending.
func NewStreamlineRenderer() *StreamlineRenderer {
	return &StreamlineRenderer{ColorByTime: true, Additive: true, Alpha: 160}
}

// Draw renders every visible segment. Must be called inside BeginMode3D.
func (r *StreamlineRenderer) Draw(s *scene.Scene) {
	if r.Additive {
		rl.BeginBlendMode(rl.BlendAdditive)
		defer rl.EndBlendMode()
	}

	maxTime := s.MaxTime()
	s.EachSegment(func(seg scene.Segment) {
		hue := seg.Hue
		if r.ColorByTime {
			hue = TimeHue(seg.TimeB, maxTime)
		}
		c := rl.ColorFromHSV(hue, 0.8, 0.95)
		c.A = r.Alpha
		rl.DrawLine3D(toRL(seg.A), toRL(seg.B), c)
	})
}

// DrawBounds outlines the box [lo, hi].
func DrawBounds(lo, hi vecmath.Vec3, color rl.Color) {
	size := hi.Sub(lo)
	center := lo.Add(size.Scale(0.5))
	rl.DrawCubeWiresV(toRL(center), toRL(size), color)
}

// TimeHue maps t in [0, maxTime] from blue (240) to red (0).
func TimeHue(t, maxTime float32) float32 {
	if maxTime <= 0 {
		return 240
	}
	f := t / maxTime
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return 240 * (1 - f)
}

func toRL(v vecmath.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X, Y: v.Y, Z: v.Z}
}
