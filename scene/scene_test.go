package scene

import (
	"testing"

	"github.com/pthm-cable/streamlines/trace"
	"github.com/pthm-cable/streamlines/vecmath"
	"github.com/pthm-cable/streamlines/vtp"
)

// polylines builds three lines along +x with 4, 2 and 0 points.
func polylines() vtp.Polylines {
	traj := trace.NewTrajectories(3, 4)
	for step := 0; step < 4; step++ {
		row := traj.Row(step)
		fs := float32(step)
		row[0] = trace.Particle{Pos: vecmath.V3(fs, 0, 0), Time: fs}
		row[1] = trace.Particle{Pos: vecmath.V3(fs, 1, 0), Time: fs}
		row[2] = trace.Particle{Pos: vecmath.V3(0, 0, 5), Status: trace.Exited}
	}
	for step := 2; step < 4; step++ {
		traj.Row(step)[1] = trace.Particle{Pos: vecmath.V3(1, 1, 0), Time: 1, Status: trace.Exited}
	}
	return vtp.Build(traj)
}

func TestNewScene(t *testing.T) {
	s := New(polylines())

	if s.NumLines() != 3 {
		t.Errorf("expected 3 lines, got %d", s.NumLines())
	}
	if s.Visible() != 2 {
		t.Errorf("expected 2 drawable lines, got %d", s.Visible())
	}
	lo, hi := s.Bounds()
	if lo != vecmath.V3(0, 0, 0) || hi != vecmath.V3(3, 1, 0) {
		t.Errorf("unexpected bounds %v %v", lo, hi)
	}
	if s.MaxTime() != 3 {
		t.Errorf("expected max time 3, got %v", s.MaxTime())
	}
	if seed, arc := s.Longest(); seed != 0 || arc != 3 {
		t.Errorf("expected seed 0 with length 3, got %d %v", seed, arc)
	}
}

func TestApplyFilter(t *testing.T) {
	s := New(polylines())

	s.Apply(Filter{MinPoints: 3})
	if s.Visible() != 1 {
		t.Errorf("expected 1 line with >= 3 points, got %d", s.Visible())
	}

	s.Apply(Filter{Stride: 2})
	if s.Visible() != 1 {
		t.Errorf("expected only seed 0 with stride 2, got %d", s.Visible())
	}
}

func TestEachSegment(t *testing.T) {
	s := New(polylines())

	count := 0
	s.EachSegment(func(seg Segment) { count++ })
	if count != 4 {
		t.Errorf("expected 3+1 segments, got %d", count)
	}

	s.Apply(Filter{MaxTime: 1})
	count = 0
	s.EachSegment(func(seg Segment) {
		count++
		if seg.TimeB > 1 {
			t.Errorf("segment past max time: %+v", seg)
		}
	})
	if count != 2 {
		t.Errorf("expected 2 clipped segments, got %d", count)
	}
}

func TestEmptyScene(t *testing.T) {
	s := New(vtp.Polylines{})
	if s.Visible() != 0 || s.NumLines() != 0 {
		t.Errorf("expected empty scene")
	}
	if seed, _ := s.Longest(); seed != -1 {
		t.Errorf("expected no longest line, got %d", seed)
	}
}
