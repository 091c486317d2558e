package trace

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/pthm-cable/streamlines/device"
	"github.com/pthm-cable/streamlines/field"
)

var (
	// ErrNoField is returned when the driver has no field to integrate through.
	ErrNoField = errors.New("trace: no vector field")
	// ErrBadRun is returned for non-positive seed or step counts and non-finite dt.
	ErrBadRun = errors.New("trace: invalid run parameters")
)

// Phase names reported to a PhaseTimer.
const (
	PhaseSeed        = "seed"
	PhaseIntegrate   = "integrate"
	PhaseDownload    = "download"
	PhaseBookkeeping = "bookkeeping"
)

// PhaseTimer receives per-step timing marks. telemetry.PerfCollector implements it.
type PhaseTimer interface {
	StartTick()
	StartPhase(phase string)
	EndTick()
}

// Progress is reported after every recorded step.
type Progress struct {
	Step     int // row just recorded
	NumSteps int
	Active   int
	Exited   int
}

// Trajectories is a NumSteps x NumSeeds table of particle states, stored
// step-major so one step of every seed is one contiguous row.
type Trajectories struct {
	NumSeeds int
	NumSteps int
	States   []Particle
}

// NewTrajectories allocates an empty table.
func NewTrajectories(numSeeds, numSteps int) *Trajectories {
	return &Trajectories{
		NumSeeds: numSeeds,
		NumSteps: numSteps,
		States:   make([]Particle, numSeeds*numSteps),
	}
}

// Row returns the states of every seed at step.
func (t *Trajectories) Row(step int) []Particle {
	return t.States[step*t.NumSeeds : (step+1)*t.NumSeeds]
}

// At returns the state of seed at step.
func (t *Trajectories) At(seed, step int) Particle {
	return t.States[step*t.NumSeeds+seed]
}

// Streamline returns seed's states from step 0 up to, not including, its first
// exited entry.
func (t *Trajectories) Streamline(seed int) []Particle {
	var line []Particle
	for step := 0; step < t.NumSteps; step++ {
		p := t.At(seed, step)
		if !p.Active() {
			break
		}
		line = append(line, p)
	}
	return line
}

// Driver advances every seed in lockstep for a fixed number of steps.
type Driver struct {
	Device *device.Device // nil = a private device for the duration of Run
	Field  field.VectorField
	Seeder Seeder // nil = DefaultCircle()

	// SkipWhenExhausted copies the last row forward instead of launching
	// kernels once no lane is active. The recorded table is unchanged.
	SkipWhenExhausted bool

	OnExit func(ExitEvent)
	OnStep func(Progress)
	Perf   PhaseTimer
}

// Run seeds numSeeds particles, records them as step 0, and records the result
// of each of the following numSteps-1 integration steps.
func (d *Driver) Run(numSeeds, numSteps int, dt float32) (*Trajectories, error) {
	if d.Field == nil {
		return nil, ErrNoField
	}
	if numSeeds <= 0 || numSteps <= 0 || math32.IsNaN(dt) || math32.IsInf(dt, 0) {
		return nil, fmt.Errorf("%w: seeds=%d steps=%d dt=%v", ErrBadRun, numSeeds, numSteps, dt)
	}

	dev := d.Device
	if dev == nil {
		dev = device.New(0, 0)
		defer dev.Close()
	}
	seeder := d.Seeder
	if seeder == nil {
		seeder = DefaultCircle()
	}

	traj := NewTrajectories(numSeeds, numSteps)
	lanes := device.NewBuffer[Particle](dev, numSeeds)

	d.startTick()
	d.startPhase(PhaseSeed)
	device.ForEach(lanes, func(i int, p *Particle) {
		*p = seeder.Seed(i, numSeeds)
	})
	d.startPhase(PhaseDownload)
	if err := lanes.Download(traj.Row(0)); err != nil {
		return nil, err
	}
	d.startPhase(PhaseBookkeeping)
	active := countActive(traj.Row(0))
	d.endTick()
	d.report(0, numSteps, active, numSeeds)

	f := d.Field
	for step := 1; step < numSteps; step++ {
		d.startTick()

		if active == 0 && d.SkipWhenExhausted {
			d.startPhase(PhaseBookkeeping)
			copy(traj.Row(step), traj.Row(step-1))
		} else {
			d.startPhase(PhaseIntegrate)
			device.ForEach(lanes, func(_ int, p *Particle) {
				p.Step(f, dt)
			})

			d.startPhase(PhaseDownload)
			if err := lanes.Download(traj.Row(step)); err != nil {
				return nil, err
			}

			d.startPhase(PhaseBookkeeping)
			active = d.collectExits(traj, step)
		}

		d.endTick()
		d.report(step, numSteps, active, numSeeds)
	}

	return traj, nil
}

// collectExits emits an event for every lane that went from active to exited
// at step and returns the number of lanes still active.
func (d *Driver) collectExits(traj *Trajectories, step int) int {
	prev, cur := traj.Row(step-1), traj.Row(step)
	active := 0
	for i := range cur {
		if cur[i].Active() {
			active++
			continue
		}
		if prev[i].Active() && d.OnExit != nil {
			d.OnExit(ExitEvent{Seed: i, Step: step, Pos: cur[i].Pos, Time: cur[i].Time})
		}
	}
	return active
}

func countActive(row []Particle) int {
	n := 0
	for _, p := range row {
		if p.Active() {
			n++
		}
	}
	return n
}

func (d *Driver) report(step, numSteps, active, numSeeds int) {
	if d.OnStep != nil {
		d.OnStep(Progress{Step: step, NumSteps: numSteps, Active: active, Exited: numSeeds - active})
	}
}

func (d *Driver) startTick() {
	if d.Perf != nil {
		d.Perf.StartTick()
	}
}

func (d *Driver) startPhase(phase string) {
	if d.Perf != nil {
		d.Perf.StartPhase(phase)
	}
}

func (d *Driver) endTick() {
	if d.Perf != nil {
		d.Perf.EndTick()
	}
}
