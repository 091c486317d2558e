package main

import (
	"flag"
	"log/slog"
	"math"
	"os"

	"github.com/pthm-cable/streamlines/config"
	"github.com/pthm-cable/streamlines/sim"
)

func main() {
	// CLI flags
	var (
		nsteps, nseeds int
		dt             float64
		vtpFlag        string
	)
	flag.IntVar(&nsteps, "n", 0, "Number of recorded steps per seed (0 = use config)")
	flag.IntVar(&nsteps, "nsteps", 0, "Alias for -n")
	flag.IntVar(&nseeds, "s", 0, "Number of seeds (0 = use config)")
	flag.IntVar(&nseeds, "nseeds", 0, "Alias for -s")
	flag.Float64Var(&dt, "t", 0, "Integration step (0 = use config)")
	flag.Float64Var(&dt, "dt", 0, "Alias for -t")
	flag.StringVar(&vtpFlag, "v", "", "Write the .vtp file when set to 1")
	flag.StringVar(&vtpFlag, "vtp", "", "Alias for -v")

	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	fieldPath := flag.String("field", "", "Grid header file (empty = use config)")
	outPath := flag.String("out", "", "Output .vtp path (empty = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")

	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	cfg.SetRun(
		resolveCount(nsteps, cfg.Run.NumSteps),
		resolveCount(nseeds, cfg.Run.NumSeeds),
		resolveStep(dt, cfg.Run.DT),
	)

	opts := sim.Options{
		LogStats:  *logStats,
		OutputDir: *outputDir,
		FieldPath: *fieldPath,
		WriteVTP:  vtpFlag == "1" || (vtpFlag == "" && cfg.Output.WriteVTP),
		VTPPath:   *outPath,
	}

	r, err := sim.New(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	if _, err := r.Run(); err != nil {
		slog.Error("run failed", "error", err)
		r.Close()
		os.Exit(1)
	}
	if err := r.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
		os.Exit(1)
	}
}

// resolveCount returns |v|, or def when v is zero.
func resolveCount(v, def int) int {
	if v == 0 {
		return def
	}
	if v < 0 {
		return -v
	}
	return v
}

// resolveStep returns |v|, or def when v is zero or not a number.
func resolveStep(v, def float64) float64 {
	if v == 0 || math.IsNaN(v) {
		return def
	}
	return math.Abs(v)
}
