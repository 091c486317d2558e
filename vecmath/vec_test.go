package vecmath

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	if got := a.Add(b); got != V3(5, 7, 9) {
		t.Errorf("Add: got %v", got)
	}
	if got := b.Sub(a); got != V3(3, 3, 3) {
		t.Errorf("Sub: got %v", got)
	}
	if got := a.Scale(2); got != V3(2, 4, 6) {
		t.Errorf("Scale: got %v", got)
	}
	if got := a.Mul(b); got != V3(4, 10, 18) {
		t.Errorf("Mul: got %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot: got %v", got)
	}
}

func TestVec3Len(t *testing.T) {
	if got := V3(3, 4, 0).Len(); math.Abs(float64(got-5)) > 1e-6 {
		t.Errorf("expected length 5, got %f", got)
	}
}

func TestVec3Floor(t *testing.T) {
	got := V3(1.5, -0.25, 2).Floor()
	if got != V3(1, -1, 2) {
		t.Errorf("expected (1, -1, 2), got %v", got)
	}
}

func TestVec3IsFinite(t *testing.T) {
	tests := []struct {
		v    Vec3
		want bool
	}{
		{V3(0, 1, 2), true},
		{V3(float32(math.NaN()), 0, 0), false},
		{V3(0, float32(math.Inf(1)), 0), false},
		{V3(0, 0, float32(math.Inf(-1))), false},
	}
	for _, tc := range tests {
		if got := tc.v.IsFinite(); got != tc.want {
			t.Errorf("IsFinite(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestVec4Lerp(t *testing.T) {
	v := Vec4{1, 1, 1, 0}.Lerp(Vec4{3, 5, 7, 1}, 0.5)
	if v != (Vec4{2, 3, 4, 0.5}) {
		t.Errorf("got %v", v)
	}
	if v.XYZ() != V3(2, 3, 4) {
		t.Errorf("XYZ: got %v", v.XYZ())
	}

	// Equal endpoints must come back bit-identical for any t.
	one := Vec4{0.1, 0.2, 0.3, 1}
	for _, tt := range []float32{0, 0.1, 0.3, 0.7, 0.999} {
		if got := one.Lerp(one, tt); got != one {
			t.Errorf("Lerp(one, one, %v) = %v", tt, got)
		}
	}
}
