package trace

import (
	"log/slog"

	"github.com/pthm-cable/streamlines/vecmath"
)

// ExitEvent records a particle leaving the domain.
type ExitEvent struct {
	Seed int
	Step int          // step whose integration failed
	Pos  vecmath.Vec3 // last valid position
	Time float32      // last valid time
}

// LogValue implements slog.LogValuer.
func (e ExitEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("seed", e.Seed),
		slog.Int("step", e.Step),
		slog.Float64("x", float64(e.Pos.X)),
		slog.Float64("y", float64(e.Pos.Y)),
		slog.Float64("z", float64(e.Pos.Z)),
		slog.Float64("t", float64(e.Time)),
	)
}
