package vtp

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pthm-cable/streamlines/trace"
	"github.com/pthm-cable/streamlines/vecmath"
)

// table builds a 2-seed, 3-step table where seed 1 exits at step 2.
func table() *trace.Trajectories {
	traj := trace.NewTrajectories(2, 3)
	for step := 0; step < 3; step++ {
		row := traj.Row(step)
		fs := float32(step)
		row[0] = trace.Particle{Pos: vecmath.V3(0, fs, 0), Time: fs * 0.5}
		row[1] = trace.Particle{Pos: vecmath.V3(1, fs, 0.25), Time: fs * 0.5}
	}
	traj.Row(2)[1] = trace.Particle{Pos: vecmath.V3(1, 1, 0.25), Time: 0.5, Status: trace.Exited}
	return traj
}

func TestBuildTruncatesAtExit(t *testing.T) {
	pl := Build(table())

	if pl.NumLines != 2 || pl.NumPoints != 5 {
		t.Fatalf("expected 2 lines / 5 points, got %d / %d", pl.NumLines, pl.NumPoints)
	}
	if !reflect.DeepEqual(pl.Offsets, []int32{0, 3}) {
		t.Errorf("unexpected offsets %v", pl.Offsets)
	}
	if !reflect.DeepEqual(pl.Connectivity, []int32{0, 1, 2, 3, 4}) {
		t.Errorf("unexpected connectivity %v", pl.Connectivity)
	}
	if !reflect.DeepEqual(pl.Times, []float32{0, 0.5, 1, 0, 0.5}) {
		t.Errorf("unexpected times %v", pl.Times)
	}
	if len(pl.Coords) != 15 {
		t.Fatalf("expected 15 coordinates, got %d", len(pl.Coords))
	}
	// point 4 is seed 1 at step 1
	if got := pl.Coords[12:15]; !reflect.DeepEqual(got, []float32{1, 1, 0.25}) {
		t.Errorf("unexpected coords for point 4: %v", got)
	}

	if s, e := pl.Line(1); s != 3 || e != 5 {
		t.Errorf("expected line 1 to span [3,5), got [%d,%d)", s, e)
	}
}

func TestBuildSeedExitedAtStart(t *testing.T) {
	traj := trace.NewTrajectories(1, 2)
	traj.Row(0)[0].Status = trace.Exited
	traj.Row(1)[0].Status = trace.Exited

	pl := Build(traj)
	if pl.NumPoints != 0 || pl.NumLines != 1 || pl.Offsets[0] != 0 {
		t.Errorf("expected one empty line, got %+v", pl)
	}
}

func TestWriteLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Build(table())); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	wantPrefix := "<?xml version=\"1.0\"?>\n<VTKFile type=\"PolyData\" version=\"0.1\" byte_order=\"LittleEndian\">" +
		"<PolyData><Piece NumberOfPoints=\"5\" NumberOfVerts=\"0\" NumberOfLines=\"2\" NumberOfStris=\"0\" NumberOfPolys=\"0\">" +
		"<Points><DataArray type=\"Float32\" NumberOfComponents=\"3\" format=\"ascii\">\n" +
		"0 0 0 0 1 0 0 2 0 1 0 0.25 1 1 0.25 </DataArray></Points>"
	if !strings.HasPrefix(out, wantPrefix) {
		t.Errorf("unexpected header/points:\n%s", out)
	}

	wantLines := "<Lines><DataArray Name=\"connectivity\" type=\"Int32\" format=\"ascii\">\n0\n1\n2\n3\n4\n" +
		"</DataArray><DataArray Name=\"offsets\" type=\"Int32\" format=\"ascii\">\n0\n3\n</DataArray></Lines>"
	if !strings.Contains(out, wantLines) {
		t.Errorf("unexpected lines section:\n%s", out)
	}

	wantTail := "<PointData Scalars=\"time\"><DataArray Name=\"time\" type=\"Float32\" format=\"ascii\">\n" +
		"0\n0.5\n1\n0\n0.5\n\n</DataArray></PointData></Piece></PolyData></VTKFile>\n"
	if !strings.HasSuffix(out, wantTail) {
		t.Errorf("unexpected point data:\n%s", out)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float32
		want string
	}{
		{0, "0"},
		{0.5, "0.5"},
		{0.01, "0.01"},
		{1.0 / 3, "0.333333"},
		{123456789, "1.23457e+08"},
		{-0.00001, "-1e-05"},
	}
	for _, tc := range tests {
		if got := formatFloat(tc.in); got != tc.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestReadWriteRoundtrip(t *testing.T) {
	want := Build(table())

	var buf bytes.Buffer
	if err := Write(&buf, want); err != nil {
		t.Fatal(err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("roundtrip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestWriteFileReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.vtp")
	if err := WriteFile(path, table()); err != nil {
		t.Fatal(err)
	}
	pl, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if pl.NumPoints != 5 || pl.NumLines != 2 {
		t.Errorf("unexpected counts %d / %d", pl.NumPoints, pl.NumLines)
	}
}

func TestReadMalformed(t *testing.T) {
	doc := `<?xml version="1.0"?><VTKFile><PolyData><Piece NumberOfPoints="2" NumberOfLines="1">` +
		`<Points><DataArray>0 0 0</DataArray></Points></Piece></PolyData></VTKFile>`
	if _, err := Read(strings.NewReader(doc)); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestWriteFileLogsCounts(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "lines.vtp")
	if err := WriteFile(path, table()); err != nil {
		t.Fatal(err)
	}

	var rec struct {
		Msg    string `json:"msg"`
		Lines  int    `json:"lines"`
		Points int    `json:"points"`
		Path   string `json:"path"`
	}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decoding log record %q: %v", buf.String(), err)
	}
	// seed 0 keeps all 3 points, seed 1 stops before its exit at step 2
	if rec.Msg != "wrote streamlines" || rec.Lines != 2 || rec.Points != 5 || rec.Path != path {
		t.Errorf("unexpected log record %+v", rec)
	}
}
