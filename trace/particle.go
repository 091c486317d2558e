// Package trace integrates streamlines: per-particle RK4 stepping, seed
// placement, and the step-advance driver that records every lane's state after
// every step.
package trace

import (
	"github.com/pthm-cable/streamlines/field"
	"github.com/pthm-cable/streamlines/vecmath"
)

// Status is the state of a particle's integration.
type Status uint8

const (
	// Active particles are advanced on every step.
	Active Status = iota
	// Exited particles left the valid domain. Terminal.
	Exited
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Exited:
		return "exited"
	default:
		return "unknown"
	}
}

// Particle is one lane's integration state. Once Exited, Pos and Time hold the
// last valid position and time and never change again.
type Particle struct {
	Pos    vecmath.Vec3
	Time   float32
	Status Status
}

// Active reports whether p is still being integrated.
func (p Particle) Active() bool {
	return p.Status == Active
}

// Step advances p by one RK4 step of size dt through f and reports whether p
// left the domain during this call.
//
// Stages are evaluated in order and the first invalid sample aborts the step,
// leaving Pos and Time at their last valid values. The stages are combined as
// dt/6 * (k1 + k2 + k3 + k4).
func (p *Particle) Step(f field.VectorField, dt float32) (exited bool) {
	if p.Status == Exited {
		return false
	}

	half := 0.5 * dt

	k1, ok := f.Get(p.Pos)
	if !ok {
		return p.exit()
	}
	k2, ok := f.Get(p.Pos.Add(k1.Scale(half)))
	if !ok {
		return p.exit()
	}
	k3, ok := f.Get(p.Pos.Add(k2.Scale(half)))
	if !ok {
		return p.exit()
	}
	k4, ok := f.Get(p.Pos.Add(k3.Scale(dt)))
	if !ok {
		return p.exit()
	}

	// TODO: textbook RK4 weights are k1+2k2+2k3+k4.
	p.Pos = p.Pos.Add(k1.Add(k2).Add(k3).Add(k4).Scale(dt / 6))
	p.Time += dt
	return false
}

func (p *Particle) exit() bool {
	p.Status = Exited
	return true
}
