package field

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/streamlines/device"
	"github.com/pthm-cable/streamlines/vecmath"
)

// Synthetic field kinds.
const (
	KindUniform = "uniform"
	KindJet     = "jet"
)

// SynthParams configures a generated field on the unit cube.
type SynthParams struct {
	Kind       string
	Dims       Dims
	Velocity   vecmath.Vec3 // uniform: the constant direction; jet: peak axial velocity
	Radius     float32      // jet: radius of the valid cylinder around x=z=0.5
	Swirl      float32      // jet: angular velocity around the axis
	Turbulence float32      // jet: amplitude of the noise perturbation
	NoiseScale float32      // jet: noise frequency in unit-cube coordinates
	Seed       int64
}

// Synthesize generates samples for p. Sample positions are normalized to [0,1].
func Synthesize(p SynthParams) ([]vecmath.Vec4, error) {
	if err := p.Dims.validate(); err != nil {
		return nil, err
	}

	samples := make([]vecmath.Vec4, p.Dims.Len())
	xf := UnitCube(p.Dims)

	switch p.Kind {
	case KindUniform:
		for i := range samples {
			samples[i] = vecmath.Vec4{X: p.Velocity.X, Y: p.Velocity.Y, Z: p.Velocity.Z, W: 1}
		}
	case KindJet:
		noise := opensimplex.New(p.Seed)
		for z := 0; z < p.Dims.NZ; z++ {
			for y := 0; y < p.Dims.NY; y++ {
				for x := 0; x < p.Dims.NX; x++ {
					u := vecmath.V3(float32(x)/xf.Scale.X, float32(y)/xf.Scale.Y, float32(z)/xf.Scale.Z)
					samples[p.Dims.Index(x, y, z)] = p.jetSample(u, noise)
				}
			}
		}
	default:
		return nil, fmt.Errorf("field: unknown synthetic kind %q", p.Kind)
	}

	return samples, nil
}

// jetSample is an upward jet along y with a parabolic profile, a swirl around
// the axis and a noise perturbation. Sites outside the cylinder are masked out.
func (p SynthParams) jetSample(u vecmath.Vec3, noise opensimplex.Noise) vecmath.Vec4 {
	dx := u.X - 0.5
	dz := u.Z - 0.5
	r := math32.Sqrt(dx*dx + dz*dz)
	if p.Radius <= 0 || r > p.Radius {
		return vecmath.Vec4{}
	}

	profile := 1 - (r/p.Radius)*(r/p.Radius)
	v := vecmath.V3(-dz*p.Swirl, p.Velocity.Y*profile, dx*p.Swirl)

	if p.Turbulence > 0 {
		s := float64(p.NoiseScale)
		nx, ny, nz := float64(u.X)*s, float64(u.Y)*s, float64(u.Z)*s
		v.X += p.Turbulence * float32(noise.Eval3(nx, ny, nz))
		v.Y += p.Turbulence * float32(noise.Eval3(nx+31.4, ny, nz))
		v.Z += p.Turbulence * float32(noise.Eval3(nx, ny+47.2, nz))
	}

	return vecmath.Vec4{X: v.X, Y: v.Y, Z: v.Z, W: 1}
}

// SynthesizeField generates a field for p on dev, mapped onto the unit cube.
func SynthesizeField(dev *device.Device, p SynthParams) (*Field, error) {
	samples, err := Synthesize(p)
	if err != nil {
		return nil, err
	}
	grid, err := NewGrid(dev, p.Dims, samples)
	if err != nil {
		return nil, err
	}
	return New(grid, UnitCube(p.Dims)), nil
}
