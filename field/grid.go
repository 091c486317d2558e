// Package field holds the sampled vector field: an immutable grid of Vec4
// samples on the device, trilinear point queries against it, and the
// physical-to-grid transform that turns it into a VectorField.
package field

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/pthm-cable/streamlines/device"
	"github.com/pthm-cable/streamlines/vecmath"
)

var (
	// ErrDims is returned for non-positive grid dimensions.
	ErrDims = errors.New("field: invalid grid dimensions")
	// ErrShortData is returned when the sample count does not match the dimensions.
	ErrShortData = errors.New("field: sample count does not match dimensions")
	// ErrComponents is returned for component counts other than 3 or 4.
	ErrComponents = errors.New("field: unsupported component count")
)

// Dims is the grid resolution along x, y and z.
type Dims struct {
	NX, NY, NZ int
}

// Len returns the number of grid sites.
func (d Dims) Len() int {
	return d.NX * d.NY * d.NZ
}

// Index returns the flat index of site (x, y, z).
func (d Dims) Index(x, y, z int) int {
	return z*d.NY*d.NX + y*d.NX + x
}

// Contains reports whether (x, y, z) is a site of the grid.
func (d Dims) Contains(x, y, z int) bool {
	return x >= 0 && x < d.NX && y >= 0 && y < d.NY && z >= 0 && z < d.NZ
}

func (d Dims) validate() error {
	if d.NX <= 0 || d.NY <= 0 || d.NZ <= 0 {
		return fmt.Errorf("%w: %dx%dx%d", ErrDims, d.NX, d.NY, d.NZ)
	}
	return nil
}

// Grid is an immutable dense grid of samples resident on a device.
// The W component of every sample is the mask: 1 inside the domain, 0 outside.
type Grid struct {
	dims Dims
	data *device.Buffer[vecmath.Vec4]
}

// NewGrid uploads samples to dev. The grid keeps its own copy.
func NewGrid(dev *device.Device, dims Dims, samples []vecmath.Vec4) (*Grid, error) {
	if err := dims.validate(); err != nil {
		return nil, err
	}
	if len(samples) != dims.Len() {
		return nil, fmt.Errorf("%w: have %d, want %d", ErrShortData, len(samples), dims.Len())
	}

	buf := device.NewBuffer[vecmath.Vec4](dev, dims.Len())
	if err := buf.Upload(samples); err != nil {
		return nil, err
	}
	return &Grid{dims: dims, data: buf}, nil
}

// NewGrid3 builds a grid from 3-component samples. Every site is marked valid.
func NewGrid3(dev *device.Device, dims Dims, samples []vecmath.Vec3) (*Grid, error) {
	promoted := make([]vecmath.Vec4, len(samples))
	for i, s := range samples {
		promoted[i] = vecmath.Vec4{X: s.X, Y: s.Y, Z: s.Z, W: 1}
	}
	return NewGrid(dev, dims, promoted)
}

// Dims returns the grid resolution.
func (g *Grid) Dims() Dims {
	return g.dims
}

// at returns the stored sample, or zero for sites outside the grid.
func (g *Grid) at(x, y, z int) vecmath.Vec4 {
	if !g.dims.Contains(x, y, z) {
		return vecmath.Vec4{}
	}
	return g.data.At(g.dims.Index(x, y, z))
}

// Interpolate blends the 8 corners of the cell containing (x, y, z) in grid
// index space. Corners outside the grid contribute zero.
//
// The blend is computed as nested lerps along x, then y, then z, which equals
// the product-of-weights form and keeps a cell of all-valid corners at a mask
// of exactly 1.
func (g *Grid) Interpolate(x, y, z float32) vecmath.Vec4 {
	// Every corner is outside (this also rejects NaN).
	if !(x > -1 && x < float32(g.dims.NX)) ||
		!(y > -1 && y < float32(g.dims.NY)) ||
		!(z > -1 && z < float32(g.dims.NZ)) {
		return vecmath.Vec4{}
	}

	fx0, fy0, fz0 := math32.Floor(x), math32.Floor(y), math32.Floor(z)
	x0, y0, z0 := int(fx0), int(fy0), int(fz0)
	fx, fy, fz := x-fx0, y-fy0, z-fz0

	c00 := g.at(x0, y0, z0).Lerp(g.at(x0+1, y0, z0), fx)
	c10 := g.at(x0, y0+1, z0).Lerp(g.at(x0+1, y0+1, z0), fx)
	c01 := g.at(x0, y0, z0+1).Lerp(g.at(x0+1, y0, z0+1), fx)
	c11 := g.at(x0, y0+1, z0+1).Lerp(g.at(x0+1, y0+1, z0+1), fx)

	c0 := c00.Lerp(c10, fy)
	c1 := c01.Lerp(c11, fy)

	return c0.Lerp(c1, fz)
}

// Sample returns the interpolated direction at (x, y, z) in grid index space
// and whether the interpolated mask is exactly 1.
func (g *Grid) Sample(x, y, z float32) (vecmath.Vec3, bool) {
	r := g.Interpolate(x, y, z)
	return r.XYZ(), r.W == 1.0
}
