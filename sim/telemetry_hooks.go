package sim

import (
	"log/slog"

	"github.com/pthm-cable/streamlines/telemetry"
	"github.com/pthm-cable/streamlines/trace"
)

// onExit reports a particle leaving the domain at its last valid position.
func (r *Runner) onExit(e trace.ExitEvent) {
	slog.Info("out of bounds",
		"seed", e.Seed,
		"step", e.Step,
		"x", e.Pos.X,
		"y", e.Pos.Y,
		"z", e.Pos.Z,
	)
	r.collector.RecordExit(e)
	if r.output != nil {
		r.exits = append(r.exits, telemetry.NewExitRecord(e))
	}
}

// onStep reports every step and flushes the progress window when due.
func (r *Runner) onStep(p trace.Progress) {
	slog.Info("step", "step", p.Step, "active", p.Active, "exited", p.Exited)

	if !r.collector.ShouldFlush(p) {
		return
	}

	stats := r.collector.Flush(p)
	perfStats := r.perf.Flush()

	if r.opts.LogStats {
		slog.Info("progress", "window", stats)
		slog.Info("perf", "window", perfStats)
	}

	if r.output != nil {
		if err := r.output.WriteProgress(stats); err != nil {
			slog.Error("failed to write progress", "error", err)
		}
		if err := r.output.WritePerf(perfStats, stats.WindowEndStep); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
