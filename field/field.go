package field

import "github.com/pthm-cable/streamlines/vecmath"

// VectorField answers point queries in physical space. The returned direction
// is meaningful even when ok is false.
type VectorField interface {
	Get(p vecmath.Vec3) (v vecmath.Vec3, ok bool)
}

// Func adapts an ordinary function to VectorField.
type Func func(p vecmath.Vec3) (vecmath.Vec3, bool)

// Get calls f(p).
func (f Func) Get(p vecmath.Vec3) (vecmath.Vec3, bool) {
	return f(p)
}

// Constant returns a field that is v everywhere and always valid.
func Constant(v vecmath.Vec3) VectorField {
	return Func(func(vecmath.Vec3) (vecmath.Vec3, bool) { return v, true })
}

// Transform maps physical coordinates into grid index space:
// grid = (physical - Offset) * Scale.
type Transform struct {
	Offset vecmath.Vec3
	Scale  vecmath.Vec3
}

// ToGrid applies the transform to p.
func (t Transform) ToGrid(p vecmath.Vec3) vecmath.Vec3 {
	return p.Sub(t.Offset).Mul(t.Scale)
}

// UnitCube returns the transform that maps [0,1]^3 onto the full index range of dims.
func UnitCube(dims Dims) Transform {
	return Transform{Scale: vecmath.V3(span(dims.NX), span(dims.NY), span(dims.NZ))}
}

func span(n int) float32 {
	if n <= 1 {
		return 1
	}
	return float32(n - 1)
}

// Field pairs a Grid with its Transform.
type Field struct {
	grid *Grid
	xf   Transform
}

// New creates a field over grid.
func New(grid *Grid, xf Transform) *Field {
	return &Field{grid: grid, xf: xf}
}

// Get samples the grid at physical position p.
func (f *Field) Get(p vecmath.Vec3) (vecmath.Vec3, bool) {
	g := f.xf.ToGrid(p)
	return f.grid.Sample(g.X, g.Y, g.Z)
}

// Grid returns the underlying grid.
func (f *Field) Grid() *Grid { return f.grid }

// Transform returns the physical-to-grid transform.
func (f *Field) Transform() Transform { return f.xf }
