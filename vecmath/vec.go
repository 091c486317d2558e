// Package vecmath provides the small float32 vector types shared by the field
// sampler, the integrator and the serializer.
package vecmath

import "github.com/chewxy/math32"

// Vec3 is a position or direction in 3D.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 is a grid sample: a direction plus a mask component in W.
type Vec4 struct {
	X, Y, Z, W float32
}

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale returns a * s.
func (a Vec3) Scale(s float32) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Mul returns the component-wise product of a and b.
func (a Vec3) Mul(b Vec3) Vec3 {
	return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

// Dot returns the dot product of a and b.
func (a Vec3) Dot(b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Len returns the Euclidean length of a.
func (a Vec3) Len() float32 {
	return math32.Sqrt(a.Dot(a))
}

// Floor returns the component-wise floor of a.
func (a Vec3) Floor() Vec3 {
	return Vec3{math32.Floor(a.X), math32.Floor(a.Y), math32.Floor(a.Z)}
}

// IsFinite reports whether no component is NaN or infinite.
func (a Vec3) IsFinite() bool {
	return isFinite(a.X) && isFinite(a.Y) && isFinite(a.Z)
}

// XYZ drops the mask component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Lerp returns v + (w-v)*t, all four components. Equal inputs give v exactly.
func (v Vec4) Lerp(w Vec4, t float32) Vec4 {
	return Vec4{
		v.X + (w.X-v.X)*t,
		v.Y + (w.Y-v.Y)*t,
		v.Z + (w.Z-v.Z)*t,
		v.W + (w.W-v.W)*t,
	}
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
