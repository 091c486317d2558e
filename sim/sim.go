// Package sim wires the field, tracer, telemetry and writer into one run.
package sim

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/streamlines/config"
	"github.com/pthm-cable/streamlines/device"
	"github.com/pthm-cable/streamlines/field"
	"github.com/pthm-cable/streamlines/telemetry"
	"github.com/pthm-cable/streamlines/trace"
	"github.com/pthm-cable/streamlines/vecmath"
)

var (
	// ErrLoad wraps failures to obtain the vector field.
	ErrLoad = errors.New("sim: field load failed")
	// ErrOutput wraps failures writing results.
	ErrOutput = errors.New("sim: output failed")
)

// Options holds runtime settings not stored in the config file.
type Options struct {
	LogStats  bool
	OutputDir string // CSV telemetry directory, empty = cfg.Output.Dir
	FieldPath string // grid header, empty = cfg.Field.Path
	WriteVTP  bool
	VTPPath   string // empty = cfg.Output.VTPPath
}

// Runner owns the device and telemetry for one traced run.
type Runner struct {
	cfg  *config.Config
	opts Options
	dev  *device.Device

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	exits     []telemetry.ExitRecord
}

// Result holds everything produced by Run.
type Result struct {
	Trajectories *trace.Trajectories
	Summaries    []telemetry.SeedSummary
	Stats        telemetry.RunStats
}

// New creates a runner for cfg. Close releases its workers and output files.
func New(cfg *config.Config, opts Options) (*Runner, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = cfg.Output.Dir
	}
	if opts.FieldPath == "" {
		opts.FieldPath = cfg.Field.Path
	}
	if opts.VTPPath == "" {
		opts.VTPPath = cfg.Output.VTPPath
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutput, err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("%w: %v", ErrOutput, err)
	}

	return &Runner{
		cfg:       cfg,
		opts:      opts,
		dev:       device.New(cfg.Derived.Workers, cfg.Device.ParallelThreshold),
		perf:      telemetry.NewPerfCollector(),
		collector: telemetry.NewCollector(cfg.Telemetry.ProgressInterval, cfg.Derived.DT32),
		output:    om,
	}, nil
}

// Close stops the device workers and closes output files.
func (r *Runner) Close() error {
	r.dev.Close()
	return r.output.Close()
}

// LoadField reads the configured grid, or synthesizes one when no path is set.
func (r *Runner) LoadField() (*field.Field, error) {
	if r.opts.FieldPath != "" {
		f, err := field.Load(r.dev, r.opts.FieldPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoad, err)
		}
		return f, nil
	}

	syn := r.cfg.Field.Synthetic
	v := r.cfg.Derived.Velocity
	f, err := field.SynthesizeField(r.dev, field.SynthParams{
		Kind:       syn.Kind,
		Dims:       field.Dims{NX: syn.Dims[0], NY: syn.Dims[1], NZ: syn.Dims[2]},
		Velocity:   vecmath.V3(v[0], v[1], v[2]),
		Radius:     float32(syn.Radius),
		Swirl:      float32(syn.Swirl),
		Turbulence: float32(syn.Turbulence),
		NoiseScale: float32(syn.NoiseScale),
		Seed:       syn.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return f, nil
}

// Seeder returns the configured seed placement policy.
func (r *Runner) Seeder() trace.Seeder {
	d := r.cfg.Derived
	if r.cfg.Seeding.Policy == config.SeedRake {
		return trace.Rake{
			From: vecmath.V3(d.RakeFrom[0], d.RakeFrom[1], d.RakeFrom[2]),
			To:   vecmath.V3(d.RakeTo[0], d.RakeTo[1], d.RakeTo[2]),
		}
	}
	return trace.Circle{
		Center: vecmath.V3(d.Center[0], d.Center[1], d.Center[2]),
		Radius: float32(r.cfg.Seeding.Radius),
	}
}
