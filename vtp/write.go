package vtp

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/pthm-cable/streamlines/trace"
)

// Write emits pl as an ASCII PolyData document.
func Write(w io.Writer, pl Polylines) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "<?xml version=\"1.0\"?>\n"+
		"<VTKFile type=\"PolyData\" version=\"0.1\" byte_order=\"LittleEndian\">"+
		"<PolyData><Piece NumberOfPoints=\"%d\" NumberOfVerts=\"0\" NumberOfLines=\"%d\" "+
		"NumberOfStris=\"0\" NumberOfPolys=\"0\">", pl.NumPoints, pl.NumLines)

	bw.WriteString("<Points><DataArray type=\"Float32\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, v := range pl.Coords {
		bw.WriteString(formatFloat(v))
		bw.WriteByte(' ')
	}
	bw.WriteString("</DataArray></Points>")

	bw.WriteString("<Lines><DataArray Name=\"connectivity\" type=\"Int32\" format=\"ascii\">\n")
	for _, c := range pl.Connectivity {
		bw.WriteString(strconv.FormatInt(int64(c), 10))
		bw.WriteByte('\n')
	}
	bw.WriteString("</DataArray><DataArray Name=\"offsets\" type=\"Int32\" format=\"ascii\">\n")
	for _, o := range pl.Offsets {
		bw.WriteString(strconv.FormatInt(int64(o), 10))
		bw.WriteByte('\n')
	}
	bw.WriteString("</DataArray></Lines>")

	bw.WriteString("<PointData Scalars=\"time\"><DataArray Name=\"time\" type=\"Float32\" format=\"ascii\">\n")
	for _, t := range pl.Times {
		bw.WriteString(formatFloat(t))
		bw.WriteByte('\n')
	}
	bw.WriteString("\n</DataArray></PointData></Piece></PolyData></VTKFile>\n")

	return bw.Flush()
}

// formatFloat prints v with six significant digits.
func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', 6, 32)
}

// WriteFile builds and writes traj to path.
func WriteFile(path string, traj *trace.Trajectories) error {
	pl := Build(traj)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, pl); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	slog.Info("wrote streamlines", "lines", pl.NumLines, "points", pl.NumPoints, "path", path)
	return nil
}
