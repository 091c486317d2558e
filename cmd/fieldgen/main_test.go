package main

import (
	"testing"

	"github.com/pthm-cable/streamlines/field"
)

func TestParseDims(t *testing.T) {
	d, err := parseDims("4, 5,6")
	if err != nil {
		t.Fatal(err)
	}
	if d != (field.Dims{NX: 4, NY: 5, NZ: 6}) {
		t.Errorf("unexpected dims %+v", d)
	}

	for _, bad := range []string{"", "1,2", "a,b,c", "1,2,3,4"} {
		if _, err := parseDims(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
