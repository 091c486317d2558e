// Package camera provides an orbit camera for the streamline viewer.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/pthm-cable/streamlines/vecmath"
)

// maxPitch keeps the camera off the poles, where the up vector degenerates.
const maxPitch = math32.Pi/2 - 0.01

// Camera orbits a target point on a sphere.
// Yaw rotates around the +Y axis, pitch tilts towards it.
type Camera struct {
	// Target is the orbit center in world coordinates
	Target vecmath.Vec3

	// Angles in radians
	Yaw, Pitch float32

	// Distance from the target
	Distance float32

	// Distance constraints
	MinDistance, MaxDistance float32

	home view
}

// view is the state restored by Reset.
type view struct {
	Target     vecmath.Vec3
	Yaw, Pitch float32
	Distance   float32
}

// New creates a camera looking at target from distance, slightly raised.
func New(target vecmath.Vec3, distance float32) *Camera {
	c := &Camera{
		Target:      target,
		Yaw:         math32.Pi / 4,
		Pitch:       math32.Pi / 6,
		Distance:    distance,
		MinDistance: distance / 20,
		MaxDistance: distance * 10,
	}
	c.home = view{Target: c.Target, Yaw: c.Yaw, Pitch: c.Pitch, Distance: c.Distance}
	return c
}

// Position returns the eye position in world coordinates.
func (c *Camera) Position() vecmath.Vec3 {
	cp := math32.Cos(c.Pitch)
	offset := vecmath.V3(
		cp*math32.Sin(c.Yaw),
		math32.Sin(c.Pitch),
		cp*math32.Cos(c.Yaw),
	)
	return c.Target.Add(offset.Scale(c.Distance))
}

// Rotate changes yaw and pitch by the given deltas in radians.
// Pitch is clamped short of straight up or down.
func (c *Camera) Rotate(dyaw, dpitch float32) {
	c.Yaw = wrapAngle(c.Yaw + dyaw)
	c.Pitch = clamp(c.Pitch+dpitch, -maxPitch, maxPitch)
}

// SetDistance sets the orbit distance, clamped to min/max.
func (c *Camera) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy divides the current distance by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// Pan moves the target within the view plane. dx is along the camera's
// right vector, dy along world up.
func (c *Camera) Pan(dx, dy float32) {
	right := vecmath.V3(math32.Cos(c.Yaw), 0, -math32.Sin(c.Yaw))
	c.Target = c.Target.Add(right.Scale(dx)).Add(vecmath.V3(0, dy, 0))
}

// Fit centers the target on the box [lo, hi] and backs off far enough to see it.
func (c *Camera) Fit(lo, hi vecmath.Vec3) {
	c.Target = lo.Add(hi).Scale(0.5)
	radius := hi.Sub(lo).Len() / 2
	if radius == 0 {
		radius = 1
	}
	c.MinDistance = radius / 20
	c.MaxDistance = radius * 20
	c.SetDistance(radius * 2.5)
	c.home = view{Target: c.Target, Yaw: c.Yaw, Pitch: c.Pitch, Distance: c.Distance}
}

// Reset returns the camera to the state set by New or the last Fit.
func (c *Camera) Reset() {
	c.Target = c.home.Target
	c.Yaw = c.home.Yaw
	c.Pitch = c.home.Pitch
	c.Distance = c.home.Distance
}

// wrapAngle maps a into (-pi, pi].
func wrapAngle(a float32) float32 {
	a = math32.Mod(a+math32.Pi, 2*math32.Pi)
	if a <= 0 {
		a += 2 * math32.Pi
	}
	return a - math32.Pi
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
