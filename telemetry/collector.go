package telemetry

import "github.com/pthm-cable/streamlines/trace"

// Collector accumulates exit events within windows of steps and produces WindowStats.
type Collector struct {
	windowSteps int
	dt          float32

	// Current window tracking
	windowStartStep int
	exitTimes       []float64
}

// NewCollector creates a new stats collector.
// windowSteps: how many steps each window spans
// dt: integration step (used for step-to-time conversion)
func NewCollector(windowSteps int, dt float32) *Collector {
	if windowSteps < 1 {
		windowSteps = 1
	}
	return &Collector{windowSteps: windowSteps, dt: dt}
}

// RecordExit records a particle leaving the domain.
func (c *Collector) RecordExit(e trace.ExitEvent) {
	c.exitTimes = append(c.exitTimes, float64(e.Time))
}

// ShouldFlush returns true if enough steps have passed to flush the window.
// The final step of a run always flushes.
func (c *Collector) ShouldFlush(p trace.Progress) bool {
	return p.Step-c.windowStartStep >= c.windowSteps || p.Step == p.NumSteps-1
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(p trace.Progress) WindowStats {
	d := Describe(c.exitTimes)
	stats := WindowStats{
		WindowStartStep: c.windowStartStep,
		WindowEndStep:   p.Step,
		SimTime:         float64(p.Step) * float64(c.dt),
		Active:          p.Active,
		Exited:          p.Exited,
		Exits:           len(c.exitTimes),
		ExitTimeMean:    d.Mean,
		ExitTimeP50:     d.P50,
	}

	c.windowStartStep = p.Step
	c.exitTimes = c.exitTimes[:0]

	return stats
}

// WindowSteps returns the number of steps per window.
func (c *Collector) WindowSteps() int {
	return c.windowSteps
}
