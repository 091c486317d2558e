package components

import (
	"testing"

	"github.com/pthm-cable/streamlines/vecmath"
)

func TestBoundsExtend(t *testing.T) {
	b := Bounds{Lo: vecmath.V3(1, 1, 1), Hi: vecmath.V3(1, 1, 1)}
	b.Extend(vecmath.V3(0, 2, 1))
	b.Extend(vecmath.V3(3, -1, 1))

	if b.Lo != vecmath.V3(0, -1, 1) || b.Hi != vecmath.V3(3, 2, 1) {
		t.Errorf("unexpected bounds %+v", b)
	}
}

func TestLineLen(t *testing.T) {
	if n := (Line{Start: 4, End: 9}).Len(); n != 5 {
		t.Errorf("expected 5, got %d", n)
	}
}
