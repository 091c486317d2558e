package vtp

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a document's arrays disagree with its counts.
var ErrMalformed = errors.New("vtp: malformed document")

type dataArray struct {
	Name string `xml:"Name,attr"`
	Body string `xml:",chardata"`
}

type document struct {
	Piece struct {
		NumberOfPoints int         `xml:"NumberOfPoints,attr"`
		NumberOfLines  int         `xml:"NumberOfLines,attr"`
		Points         dataArray   `xml:"Points>DataArray"`
		Lines          []dataArray `xml:"Lines>DataArray"`
		PointData      []dataArray `xml:"PointData>DataArray"`
	} `xml:"PolyData>Piece"`
}

// Read parses a document produced by Write.
func Read(r io.Reader) (Polylines, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return Polylines{}, fmt.Errorf("decoding vtp: %w", err)
	}
	piece := doc.Piece

	pl := Polylines{NumPoints: piece.NumberOfPoints, NumLines: piece.NumberOfLines}
	var err error
	if pl.Coords, err = parseFloats(piece.Points.Body); err != nil {
		return Polylines{}, err
	}
	for _, a := range piece.Lines {
		switch a.Name {
		case "connectivity":
			pl.Connectivity, err = parseInts(a.Body)
		case "offsets":
			pl.Offsets, err = parseInts(a.Body)
		}
		if err != nil {
			return Polylines{}, err
		}
	}
	for _, a := range piece.PointData {
		if a.Name == "time" {
			if pl.Times, err = parseFloats(a.Body); err != nil {
				return Polylines{}, err
			}
		}
	}

	switch {
	case len(pl.Coords) != 3*pl.NumPoints:
		return Polylines{}, fmt.Errorf("%w: %d coordinates for %d points", ErrMalformed, len(pl.Coords), pl.NumPoints)
	case len(pl.Connectivity) != pl.NumPoints:
		return Polylines{}, fmt.Errorf("%w: %d connectivity entries for %d points", ErrMalformed, len(pl.Connectivity), pl.NumPoints)
	case len(pl.Times) != pl.NumPoints:
		return Polylines{}, fmt.Errorf("%w: %d times for %d points", ErrMalformed, len(pl.Times), pl.NumPoints)
	case len(pl.Offsets) != pl.NumLines:
		return Polylines{}, fmt.Errorf("%w: %d offsets for %d lines", ErrMalformed, len(pl.Offsets), pl.NumLines)
	}
	return pl, nil
}

// ReadFile parses the document at path.
func ReadFile(path string) (Polylines, error) {
	f, err := os.Open(path)
	if err != nil {
		return Polylines{}, err
	}
	defer f.Close()
	return Read(f)
}

func parseFloats(s string) ([]float32, error) {
	fields := strings.Fields(s)
	out := make([]float32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		out = append(out, float32(v))
	}
	return out, nil
}

func parseInts(s string) ([]int32, error) {
	fields := strings.Fields(s)
	out := make([]int32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		out = append(out, int32(v))
	}
	return out, nil
}
