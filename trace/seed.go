package trace

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/pthm-cable/streamlines/vecmath"
)

// Seeder produces the initial state of seed i out of n.
// Implementations must be pure: the same (i, n) always gives the same particle.
type Seeder interface {
	Seed(i, n int) Particle
}

// Circle places seeds evenly on a circle in the x-z plane at height Center.Y.
type Circle struct {
	Center vecmath.Vec3
	Radius float32
}

// DefaultCircle is a 0.1 radius ring around (0.5, 0.01, 0.5).
func DefaultCircle() Circle {
	return Circle{Center: vecmath.V3(0.5, 0.01, 0.5), Radius: 0.1}
}

// Seed places seed i at angle 2*pi*i/n.
func (c Circle) Seed(i, n int) Particle {
	alpha := float32(2 * math.Pi * float64(i) / float64(n))
	return Particle{
		Pos: vecmath.V3(
			c.Center.X+c.Radius*math32.Cos(alpha),
			c.Center.Y,
			c.Center.Z+c.Radius*math32.Sin(alpha),
		),
	}
}

// Rake places seeds evenly on the segment From-To, endpoints included.
type Rake struct {
	From, To vecmath.Vec3
}

// Seed places seed i at fraction i/(n-1) along the segment.
func (r Rake) Seed(i, n int) Particle {
	var t float32
	if n > 1 {
		t = float32(i) / float32(n-1)
	}
	return Particle{Pos: r.From.Add(r.To.Sub(r.From).Scale(t))}
}
