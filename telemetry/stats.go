package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of steps.
type WindowStats struct {
	WindowStartStep int     `csv:"-"`
	WindowEndStep   int     `csv:"window_end"`
	SimTime         float64 `csv:"sim_time"`

	// Lane counts at window end
	Active int `csv:"active"`
	Exited int `csv:"exited"`

	// Exits during window
	Exits        int     `csv:"exits"`
	ExitTimeMean float64 `csv:"exit_time_mean"`
	ExitTimeP50  float64 `csv:"exit_time_p50"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartStep),
		slog.Int("window_end", s.WindowEndStep),
		slog.Float64("sim_time", s.SimTime),
		slog.Int("active", s.Active),
		slog.Int("exited", s.Exited),
		slog.Int("exits", s.Exits),
	)
}

// Distribution holds summary statistics of a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// Describe computes mean, standard deviation, percentiles and maximum of
// values. Returns the zero Distribution for an empty sample.
func Describe(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	d := Distribution{
		Mean: stat.Mean(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
		Max:  floats.Max(sorted),
	}
	if len(sorted) > 1 {
		d.Std = stat.StdDev(sorted, nil)
	}
	return d
}

// RunStats summarizes a traced run.
type RunStats struct {
	Seeds  int
	Exited int
	Points int

	StreamlinePoints Distribution
	ArcLength        Distribution
	ExitTime         Distribution // exited seeds only
}

// ComputeRunStats aggregates per-seed summaries.
func ComputeRunStats(summaries []SeedSummary) RunStats {
	rs := RunStats{Seeds: len(summaries)}

	points := make([]float64, 0, len(summaries))
	arcs := make([]float64, 0, len(summaries))
	var exitTimes []float64
	for _, s := range summaries {
		points = append(points, float64(s.Points))
		arcs = append(arcs, s.ArcLength)
		if s.Exited {
			rs.Exited++
			exitTimes = append(exitTimes, float64(s.FinalTime))
		}
	}
	rs.Points = int(floats.Sum(points))
	rs.StreamlinePoints = Describe(points)
	rs.ArcLength = Describe(arcs)
	rs.ExitTime = Describe(exitTimes)

	return rs
}

// LogValue implements slog.LogValuer for structured logging.
func (s RunStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("seeds", s.Seeds),
		slog.Int("exited", s.Exited),
		slog.Int("points", s.Points),
		slog.Float64("points_mean", s.StreamlinePoints.Mean),
		slog.Float64("points_p50", s.StreamlinePoints.P50),
		slog.Float64("arc_mean", s.ArcLength.Mean),
		slog.Float64("arc_max", s.ArcLength.Max),
		slog.Float64("exit_time_p50", s.ExitTime.P50),
	)
}

// LogStats logs run statistics.
func (s RunStats) LogStats() {
	slog.Info("run", "stats", s)
}
