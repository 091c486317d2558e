package field

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/streamlines/device"
	"github.com/pthm-cable/streamlines/vecmath"
)

// Header describes a grid file: a YAML document next to a raw float32 array.
type Header struct {
	Dims       [3]int     `yaml:"dims"`       // nx, ny, nz
	Components int        `yaml:"components"` // 3 or 4 (4th = mask)
	Scale      [3]float32 `yaml:"scale"`      // physical -> index scale (zero = unit cube)
	Offset     [3]float32 `yaml:"offset"`     // physical origin
	Data       string     `yaml:"data"`       // raw sample file, relative to the header
	ByteOrder  string     `yaml:"byte_order"` // "little" (default) or "big"
}

// GridDims returns the header's dimensions.
func (h Header) GridDims() Dims {
	return Dims{NX: h.Dims[0], NY: h.Dims[1], NZ: h.Dims[2]}
}

// Transform returns the physical-to-grid transform described by the header.
func (h Header) Transform() Transform {
	xf := Transform{Offset: vecmath.V3(h.Offset[0], h.Offset[1], h.Offset[2])}
	if h.Scale == [3]float32{} {
		xf.Scale = UnitCube(h.GridDims()).Scale
	} else {
		xf.Scale = vecmath.V3(h.Scale[0], h.Scale[1], h.Scale[2])
	}
	return xf
}

// wordOrder decodes and encodes raw sample words.
type wordOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

func (h Header) byteOrder() (wordOrder, error) {
	switch h.ByteOrder {
	case "", "little":
		return binary.LittleEndian, nil
	case "big":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("field: unknown byte order %q", h.ByteOrder)
	}
}

// ReadHeader parses a grid header file.
func ReadHeader(path string) (Header, error) {
	var h Header
	data, err := os.ReadFile(path)
	if err != nil {
		return h, fmt.Errorf("reading grid header: %w", err)
	}
	if err := yaml.Unmarshal(data, &h); err != nil {
		return h, fmt.Errorf("parsing grid header: %w", err)
	}
	if h.Components == 0 {
		h.Components = 4
	}
	if h.Components != 3 && h.Components != 4 {
		return h, fmt.Errorf("%w: %d", ErrComponents, h.Components)
	}
	if err := h.GridDims().validate(); err != nil {
		return h, err
	}
	if h.Data == "" {
		return h, fmt.Errorf("parsing grid header: missing data file")
	}
	return h, nil
}

// Load reads the grid described by the header at path and uploads it to dev.
func Load(dev *device.Device, path string) (*Field, error) {
	h, err := ReadHeader(path)
	if err != nil {
		return nil, err
	}

	samples, err := readSamples(h, filepath.Join(filepath.Dir(path), h.Data))
	if err != nil {
		return nil, err
	}

	grid, err := NewGrid(dev, h.GridDims(), samples)
	if err != nil {
		return nil, err
	}
	return New(grid, h.Transform()), nil
}

func readSamples(h Header, dataPath string) ([]vecmath.Vec4, error) {
	order, err := h.byteOrder()
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(dataPath)
	if err != nil {
		return nil, fmt.Errorf("reading grid data: %w", err)
	}

	n := h.GridDims().Len()
	stride := 4 * h.Components
	if len(raw) != n*stride {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrShortData, len(raw), n*stride)
	}

	samples := make([]vecmath.Vec4, n)
	for i := range samples {
		rec := raw[i*stride:]
		s := vecmath.Vec4{
			X: math.Float32frombits(order.Uint32(rec[0:])),
			Y: math.Float32frombits(order.Uint32(rec[4:])),
			Z: math.Float32frombits(order.Uint32(rec[8:])),
			W: 1,
		}
		if h.Components == 4 {
			s.W = math.Float32frombits(order.Uint32(rec[12:]))
		}
		samples[i] = s
	}
	return samples, nil
}

// Save writes samples as a 4-component grid: the header at path and the raw
// data next to it as h.Data (defaulting to the header name with a .raw suffix).
func Save(path string, h Header, samples []vecmath.Vec4) error {
	h.Components = 4
	if h.Data == "" {
		base := filepath.Base(path)
		h.Data = base[:len(base)-len(filepath.Ext(base))] + ".raw"
	}
	if err := h.GridDims().validate(); err != nil {
		return err
	}
	if len(samples) != h.GridDims().Len() {
		return fmt.Errorf("%w: have %d, want %d", ErrShortData, len(samples), h.GridDims().Len())
	}
	order, err := h.byteOrder()
	if err != nil {
		return err
	}

	raw := make([]byte, 0, len(samples)*16)
	for _, s := range samples {
		raw = order.AppendUint32(raw, math.Float32bits(s.X))
		raw = order.AppendUint32(raw, math.Float32bits(s.Y))
		raw = order.AppendUint32(raw, math.Float32bits(s.Z))
		raw = order.AppendUint32(raw, math.Float32bits(s.W))
	}
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), h.Data), raw, 0644); err != nil {
		return fmt.Errorf("writing grid data: %w", err)
	}

	data, err := yaml.Marshal(&h)
	if err != nil {
		return fmt.Errorf("marshaling grid header: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing grid header: %w", err)
	}
	return nil
}
