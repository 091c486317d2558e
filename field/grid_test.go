package field

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/streamlines/device"
	"github.com/pthm-cable/streamlines/vecmath"
)

// rampGrid returns a grid whose sample at (x,y,z) is (x, 10y, 100z) with mask 1.
func rampGrid(t *testing.T, dev *device.Device, dims Dims) *Grid {
	t.Helper()
	samples := make([]vecmath.Vec4, dims.Len())
	for z := 0; z < dims.NZ; z++ {
		for y := 0; y < dims.NY; y++ {
			for x := 0; x < dims.NX; x++ {
				samples[dims.Index(x, y, z)] = vecmath.Vec4{
					X: float32(x), Y: float32(10 * y), Z: float32(100 * z), W: 1,
				}
			}
		}
	}
	g, err := NewGrid(dev, dims, samples)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

func TestDimsIndex(t *testing.T) {
	d := Dims{NX: 4, NY: 3, NZ: 2}
	if got := d.Index(1, 2, 1); got != 1*3*4+2*4+1 {
		t.Errorf("expected z*ny*nx + y*nx + x = 21, got %d", got)
	}
	if d.Len() != 24 {
		t.Errorf("expected 24 sites, got %d", d.Len())
	}
}

func TestSampleExactAtGridPoints(t *testing.T) {
	dev := device.New(1, 0)
	dims := Dims{NX: 4, NY: 3, NZ: 5}
	g := rampGrid(t, dev, dims)

	for z := 0; z < dims.NZ; z++ {
		for y := 0; y < dims.NY; y++ {
			for x := 0; x < dims.NX; x++ {
				v, ok := g.Sample(float32(x), float32(y), float32(z))
				want := vecmath.V3(float32(x), float32(10*y), float32(100*z))
				if !ok {
					t.Fatalf("(%d,%d,%d): expected valid", x, y, z)
				}
				if v != want {
					t.Fatalf("(%d,%d,%d): expected %v, got %v", x, y, z, want, v)
				}
			}
		}
	}
}

func TestSampleInterpolatesLinearly(t *testing.T) {
	dev := device.New(1, 0)
	g := rampGrid(t, dev, Dims{NX: 4, NY: 4, NZ: 4})

	v, ok := g.Sample(1.5, 2.25, 0.5)
	if !ok {
		t.Fatal("expected valid sample inside an all-valid grid")
	}
	want := vecmath.V3(1.5, 22.5, 50)
	if math.Abs(float64(v.X-want.X)) > 1e-5 ||
		math.Abs(float64(v.Y-want.Y)) > 1e-4 ||
		math.Abs(float64(v.Z-want.Z)) > 1e-3 {
		t.Errorf("expected %v, got %v", want, v)
	}
}

func TestSampleValidInsideAllValidCells(t *testing.T) {
	dev := device.New(1, 0)
	g := rampGrid(t, dev, Dims{NX: 8, NY: 8, NZ: 8})

	// Fractions that do not sum exactly in product-of-weights form.
	coords := []float32{0.1, 0.3, 0.7, 1.9, 3.33, 6.999}
	for _, x := range coords {
		for _, y := range coords {
			for _, z := range coords {
				if _, ok := g.Sample(x, y, z); !ok {
					t.Fatalf("(%v,%v,%v): expected valid", x, y, z)
				}
			}
		}
	}
}

func TestSampleBoundarySoftening(t *testing.T) {
	dev := device.New(1, 0)
	dims := Dims{NX: 2, NY: 2, NZ: 2}
	g := rampGrid(t, dev, dims)

	tests := []struct {
		name string
		x    float32
		y, z float32
	}{
		{"half cell past max x", 1.5, 0, 0},
		{"half cell before min x", -0.5, 0, 0},
		{"far positive", 1e30, 1e30, 1e30},
		{"far negative", -1e30, 0, 0},
		{"positive infinity", float32(math.Inf(1)), 0, 0},
		{"negative infinity", 0, float32(math.Inf(-1)), 0},
		{"nan", float32(math.NaN()), 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := g.Sample(tc.x, tc.y, tc.z); ok {
				t.Errorf("expected invalid sample at (%v,%v,%v)", tc.x, tc.y, tc.z)
			}
		})
	}

	// Out-of-range corners contribute zero rather than clamping.
	r := g.Interpolate(1.5, 0, 0)
	if r.W != 0.5 {
		t.Errorf("expected mask 0.5 half a cell outside, got %v", r.W)
	}
	if r.X != 0.5 {
		t.Errorf("expected x 0.5 (1 * 0.5 + 0 * 0.5), got %v", r.X)
	}
}

func TestSampleMaskedOut(t *testing.T) {
	dev := device.New(1, 0)
	dims := Dims{NX: 2, NY: 2, NZ: 2}
	samples := make([]vecmath.Vec4, dims.Len())
	for i := range samples {
		samples[i] = vecmath.Vec4{X: 1, W: 0}
	}
	g, err := NewGrid(dev, dims, samples)
	if err != nil {
		t.Fatal(err)
	}

	v, ok := g.Sample(0.5, 0.5, 0.5)
	if ok {
		t.Error("expected invalid sample when mask is 0")
	}
	if v.X != 1 {
		t.Errorf("expected direction to still be interpolated, got %v", v)
	}
}

func TestNewGridCopiesSamples(t *testing.T) {
	dev := device.New(1, 0)
	dims := Dims{NX: 1, NY: 1, NZ: 1}
	samples := []vecmath.Vec4{{X: 1, W: 1}}
	g, err := NewGrid(dev, dims, samples)
	if err != nil {
		t.Fatal(err)
	}

	samples[0].X = 42
	if v, _ := g.Sample(0, 0, 0); v.X != 1 {
		t.Errorf("grid aliased host samples: got %v", v)
	}
}

func TestNewGridErrors(t *testing.T) {
	dev := device.New(1, 0)

	if _, err := NewGrid(dev, Dims{NX: 0, NY: 1, NZ: 1}, nil); !errors.Is(err, ErrDims) {
		t.Errorf("expected ErrDims, got %v", err)
	}
	if _, err := NewGrid(dev, Dims{NX: 2, NY: 2, NZ: 2}, make([]vecmath.Vec4, 7)); !errors.Is(err, ErrShortData) {
		t.Errorf("expected ErrShortData, got %v", err)
	}
}

func TestNewGrid3PromotesMask(t *testing.T) {
	dev := device.New(1, 0)
	dims := Dims{NX: 2, NY: 2, NZ: 2}
	samples := make([]vecmath.Vec3, dims.Len())
	for i := range samples {
		samples[i] = vecmath.V3(0, 1, 0)
	}
	g, err := NewGrid3(dev, dims, samples)
	if err != nil {
		t.Fatal(err)
	}

	v, ok := g.Sample(0.25, 0.5, 0.75)
	if !ok {
		t.Error("expected 3-component grid to be valid everywhere inside")
	}
	if v != vecmath.V3(0, 1, 0) {
		t.Errorf("expected (0,1,0), got %v", v)
	}
}
