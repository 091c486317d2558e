package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/streamlines/trace"
)

// Phase names for one integration step.
const (
	PhaseSeed        = trace.PhaseSeed
	PhaseIntegrate   = trace.PhaseIntegrate
	PhaseDownload    = trace.PhaseDownload
	PhaseBookkeeping = trace.PhaseBookkeeping
)

var _ trace.PhaseTimer = (*PerfCollector)(nil)

// PerfCollector accumulates step and phase durations between flushes.
// The driver marks steps through the trace.PhaseTimer methods and the runner
// flushes once per progress window.
type PerfCollector struct {
	steps    int
	total    time.Duration
	min, max time.Duration
	phases   map[string]time.Duration

	stepStart  time.Time
	phaseStart time.Time
	phase      string
}

func NewPerfCollector() *PerfCollector {
	return &PerfCollector{phases: make(map[string]time.Duration)}
}

// StartTick marks the start of a step.
func (p *PerfCollector) StartTick() {
	p.stepStart = time.Now()
	p.phase = ""
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
}

// EndTick closes the step and adds it to the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = ""

	d := now.Sub(p.stepStart)
	if p.steps == 0 || d < p.min {
		p.min = d
	}
	p.max = max(p.max, d)
	p.total += d
	p.steps++
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// PerfStats summarizes the steps timed in one window.
type PerfStats struct {
	Steps          int
	AvgStep        time.Duration
	MinStep        time.Duration
	MaxStep        time.Duration
	StepsPerSecond float64
	PhasePct       map[string]float64 // share of step time per phase
}

// Flush returns the stats for the steps timed since the last flush and
// starts an empty window.
func (p *PerfCollector) Flush() PerfStats {
	s := PerfStats{
		Steps:    p.steps,
		MinStep:  p.min,
		MaxStep:  p.max,
		PhasePct: make(map[string]float64, len(p.phases)),
	}
	if p.steps > 0 && p.total > 0 {
		s.AvgStep = p.total / time.Duration(p.steps)
		s.StepsPerSecond = float64(p.steps) / p.total.Seconds()
		for name, d := range p.phases {
			s.PhasePct[name] = float64(d) / float64(p.total) * 100
		}
	}

	p.steps = 0
	p.total, p.min, p.max = 0, 0, 0
	clear(p.phases)
	return s
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("steps", s.Steps),
		slog.Int64("avg_step_us", s.AvgStep.Microseconds()),
		slog.Int64("max_step_us", s.MaxStep.Microseconds()),
		slog.Int("steps_per_sec", int(s.StepsPerSecond)),
	}
	for _, phase := range []string{PhaseSeed, PhaseIntegrate, PhaseDownload, PhaseBookkeeping} {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd      int     `csv:"window_end"`
	Steps          int     `csv:"steps"`
	AvgStepUS      int64   `csv:"avg_step_us"`
	MinStepUS      int64   `csv:"min_step_us"`
	MaxStepUS      int64   `csv:"max_step_us"`
	StepsPerSec    float64 `csv:"steps_per_sec"`
	SeedPct        float64 `csv:"seed_pct"`
	IntegratePct   float64 `csv:"integrate_pct"`
	DownloadPct    float64 `csv:"download_pct"`
	BookkeepingPct float64 `csv:"bookkeeping_pct"`
}

func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		Steps:          s.Steps,
		AvgStepUS:      s.AvgStep.Microseconds(),
		MinStepUS:      s.MinStep.Microseconds(),
		MaxStepUS:      s.MaxStep.Microseconds(),
		StepsPerSec:    s.StepsPerSecond,
		SeedPct:        s.PhasePct[PhaseSeed],
		IntegratePct:   s.PhasePct[PhaseIntegrate],
		DownloadPct:    s.PhasePct[PhaseDownload],
		BookkeepingPct: s.PhasePct[PhaseBookkeeping],
	}
}
