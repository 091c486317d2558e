package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/streamlines/vecmath"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestPositionAtDistance(t *testing.T) {
	target := vecmath.V3(0.5, 0.5, 0.5)
	cam := New(target, 2)

	for _, yaw := range []float32{0, 1, -2, 3} {
		cam.Yaw = yaw
		if d := cam.Position().Sub(target).Len(); !near(d, 2) {
			t.Errorf("yaw %v: expected eye at distance 2, got %v", yaw, d)
		}
	}
}

func TestPositionAxes(t *testing.T) {
	cam := New(vecmath.Vec3{}, 1)
	cam.Yaw, cam.Pitch = 0, 0

	p := cam.Position()
	if !near(p.X, 0) || !near(p.Y, 0) || !near(p.Z, 1) {
		t.Errorf("expected eye on +z, got %v", p)
	}
}

func TestRotateClampsPitch(t *testing.T) {
	cam := New(vecmath.Vec3{}, 1)
	cam.Rotate(0, 10)
	if cam.Pitch >= math.Pi/2 {
		t.Errorf("expected pitch below pi/2, got %v", cam.Pitch)
	}
	cam.Rotate(0, -20)
	if cam.Pitch <= -math.Pi/2 {
		t.Errorf("expected pitch above -pi/2, got %v", cam.Pitch)
	}
}

func TestRotateWrapsYaw(t *testing.T) {
	cam := New(vecmath.Vec3{}, 1)
	cam.Yaw = 0
	cam.Rotate(3*math.Pi/2, 0)
	if !near(cam.Yaw, -math.Pi/2) {
		t.Errorf("expected yaw -pi/2, got %v", cam.Yaw)
	}
}

func TestZoomClamped(t *testing.T) {
	cam := New(vecmath.Vec3{}, 2)

	cam.ZoomBy(1000)
	if cam.Distance != cam.MinDistance {
		t.Errorf("expected distance clamped to %v, got %v", cam.MinDistance, cam.Distance)
	}
	cam.ZoomBy(0.0001)
	if cam.Distance != cam.MaxDistance {
		t.Errorf("expected distance clamped to %v, got %v", cam.MaxDistance, cam.Distance)
	}
	before := cam.Distance
	cam.ZoomBy(0)
	if cam.Distance != before {
		t.Error("expected non-positive factor to be ignored")
	}
}

func TestFitAndReset(t *testing.T) {
	cam := New(vecmath.Vec3{}, 1)
	cam.Fit(vecmath.V3(0, 0, 0), vecmath.V3(2, 2, 2))

	if cam.Target != vecmath.V3(1, 1, 1) {
		t.Errorf("expected target at box center, got %v", cam.Target)
	}
	fitted := cam.Distance

	cam.Pan(3, 1)
	cam.Rotate(1, 0.2)
	cam.ZoomBy(2)
	cam.Reset()

	if cam.Target != vecmath.V3(1, 1, 1) || cam.Distance != fitted {
		t.Errorf("reset did not restore fitted view: %+v", cam)
	}
}

func TestPanMovesTargetSideways(t *testing.T) {
	cam := New(vecmath.Vec3{}, 1)
	cam.Yaw = 0
	cam.Pan(1, 0)
	if !near(cam.Target.X, 1) || !near(cam.Target.Z, 0) {
		t.Errorf("expected target moved along +x, got %v", cam.Target)
	}
}
