// Synthetic grid generator - writes a field header and raw samples for the tracer.
//
// Usage: go run ./cmd/fieldgen -out jet.yaml -kind jet -dims 64,64,64
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pthm-cable/streamlines/config"
	"github.com/pthm-cable/streamlines/field"
	"github.com/pthm-cable/streamlines/vecmath"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	out := flag.String("out", "field.yaml", "Header path; samples are written next to it")
	kind := flag.String("kind", "", "Field kind: uniform or jet (empty = use config)")
	dimsFlag := flag.String("dims", "", "Grid size nx,ny,nz (empty = use config)")
	seed := flag.Int64("seed", 0, "Noise seed (0 = use config)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	syn := cfg.Field.Synthetic

	params := field.SynthParams{
		Kind:       syn.Kind,
		Dims:       field.Dims{NX: syn.Dims[0], NY: syn.Dims[1], NZ: syn.Dims[2]},
		Velocity:   vecmath.V3(cfg.Derived.Velocity[0], cfg.Derived.Velocity[1], cfg.Derived.Velocity[2]),
		Radius:     float32(syn.Radius),
		Swirl:      float32(syn.Swirl),
		Turbulence: float32(syn.Turbulence),
		NoiseScale: float32(syn.NoiseScale),
		Seed:       syn.Seed,
	}
	if *kind != "" {
		params.Kind = *kind
	}
	if *seed != 0 {
		params.Seed = *seed
	}
	if *dimsFlag != "" {
		d, err := parseDims(*dimsFlag)
		if err != nil {
			slog.Error("invalid -dims", "error", err)
			os.Exit(1)
		}
		params.Dims = d
	}

	samples, err := field.Synthesize(params)
	if err != nil {
		slog.Error("failed to synthesize field", "error", err)
		os.Exit(1)
	}

	h := field.Header{Dims: [3]int{params.Dims.NX, params.Dims.NY, params.Dims.NZ}}
	if err := field.Save(*out, h, samples); err != nil {
		slog.Error("failed to write field", "error", err)
		os.Exit(1)
	}

	slog.Info("wrote field",
		"path", *out,
		"kind", params.Kind,
		"nx", params.Dims.NX,
		"ny", params.Dims.NY,
		"nz", params.Dims.NZ,
	)
}

// parseDims parses "nx,ny,nz".
func parseDims(s string) (field.Dims, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return field.Dims{}, fmt.Errorf("expected nx,ny,nz, got %q", s)
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return field.Dims{}, err
		}
		n[i] = v
	}
	return field.Dims{NX: n[0], NY: n[1], NZ: n[2]}, nil
}
