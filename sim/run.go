package sim

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/streamlines/field"
	"github.com/pthm-cable/streamlines/telemetry"
	"github.com/pthm-cable/streamlines/trace"
	"github.com/pthm-cable/streamlines/vtp"
)

// Run loads the field, traces every seed and writes the configured outputs.
func (r *Runner) Run() (*Result, error) {
	f, err := r.LoadField()
	if err != nil {
		return nil, err
	}
	return r.Trace(f)
}

// Trace integrates the configured seeds through f and writes the outputs.
func (r *Runner) Trace(f field.VectorField) (*Result, error) {
	run := r.cfg.Run
	slog.Info("tracing",
		"seeds", run.NumSeeds,
		"steps", run.NumSteps,
		"dt", r.cfg.Derived.DT32,
		"workers", r.dev.Workers(),
		"policy", r.cfg.Seeding.Policy,
	)

	d := &trace.Driver{
		Device:            r.dev,
		Field:             f,
		Seeder:            r.Seeder(),
		SkipWhenExhausted: r.cfg.Output.SkipExhausted,
		OnExit:            r.onExit,
		OnStep:            r.onStep,
		Perf:              r.perf,
	}
	traj, err := d.Run(run.NumSeeds, run.NumSteps, r.cfg.Derived.DT32)
	if err != nil {
		return nil, err
	}

	res := &Result{Trajectories: traj, Summaries: telemetry.Summarize(traj)}
	res.Stats = telemetry.ComputeRunStats(res.Summaries)
	if r.opts.LogStats {
		res.Stats.LogStats()
	}

	if err := r.writeOutputs(res); err != nil {
		return res, err
	}
	return res, nil
}

func (r *Runner) writeOutputs(res *Result) error {
	if err := r.output.WriteExits(r.exits); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	if err := r.output.WriteSummary(res.Summaries); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	if r.opts.WriteVTP {
		if err := vtp.WriteFile(r.opts.VTPPath, res.Trajectories); err != nil {
			return fmt.Errorf("%w: %w", ErrOutput, err)
		}
	}
	return nil
}
