// Package scene holds loaded streamlines as entities in an ark world.
package scene

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/streamlines/components"
	"github.com/pthm-cable/streamlines/vecmath"
	"github.com/pthm-cable/streamlines/vtp"
)

// Filter selects which lines are drawn.
type Filter struct {
	MinPoints int     // lines with fewer points are hidden
	MaxTime   float32 // points after this time are clipped, 0 = no clip
	Stride    int     // draw every Stride-th line, 0 or 1 = all
}

// Scene is a set of streamlines, one entity per seed.
type Scene struct {
	world  *ecs.World
	mapper *ecs.Map4[components.Line, components.Bounds, components.Metrics, components.Style]
	filter *ecs.Filter4[components.Line, components.Bounds, components.Metrics, components.Style]

	pl      vtp.Polylines
	bounds  components.Bounds
	maxTime float32
	visible int
	empty   bool
	current Filter
}

// New builds a scene from pl. Lines with no points still get an entity so
// seed indices stay aligned, but they are never visible.
func New(pl vtp.Polylines) *Scene {
	world := ecs.NewWorld()
	s := &Scene{
		world:  world,
		mapper: ecs.NewMap4[components.Line, components.Bounds, components.Metrics, components.Style](world),
		filter: ecs.NewFilter4[components.Line, components.Bounds, components.Metrics, components.Style](world),
		pl:     pl,
		empty:  true,
	}

	for i := 0; i < pl.NumLines; i++ {
		start, end := pl.Line(i)
		line := components.Line{Seed: i, Start: start, End: end}
		var bounds components.Bounds
		var metrics components.Metrics
		for p := start; p < end; p++ {
			pos := s.Point(p)
			if p == start {
				bounds = components.Bounds{Lo: pos, Hi: pos}
			} else {
				bounds.Extend(pos)
				metrics.ArcLength += pos.Sub(s.Point(p - 1)).Len()
			}
			metrics.Duration = pl.Times[p]
		}
		if line.Len() > 0 {
			s.include(bounds)
			s.maxTime = max(s.maxTime, metrics.Duration)
		}
		style := components.Style{Hue: 360 * float32(i) / float32(max(pl.NumLines, 1)), Visible: line.Len() > 1}
		s.mapper.NewEntity(&line, &bounds, &metrics, &style)
	}

	s.Apply(Filter{})
	return s
}

func (s *Scene) include(b components.Bounds) {
	if s.empty {
		s.bounds = b
		s.empty = false
		return
	}
	s.bounds.Extend(b.Lo)
	s.bounds.Extend(b.Hi)
}

// Point returns the position of point i.
func (s *Scene) Point(i int) vecmath.Vec3 {
	c := s.pl.Coords[3*i : 3*i+3]
	return vecmath.V3(c[0], c[1], c[2])
}

// Time returns the integration time of point i.
func (s *Scene) Time(i int) float32 {
	return s.pl.Times[i]
}

// Bounds returns the box around every point in the scene.
func (s *Scene) Bounds() (lo, hi vecmath.Vec3) {
	return s.bounds.Lo, s.bounds.Hi
}

// MaxTime returns the largest point time in the scene.
func (s *Scene) MaxTime() float32 {
	return s.maxTime
}

// NumLines returns the number of line entities.
func (s *Scene) NumLines() int {
	return s.pl.NumLines
}

// Visible returns the number of lines shown by the last Apply.
func (s *Scene) Visible() int {
	return s.visible
}

// Apply updates every line's visibility for f.
func (s *Scene) Apply(f Filter) {
	s.current = f
	stride := max(f.Stride, 1)
	s.visible = 0

	query := s.filter.Query()
	for query.Next() {
		line, _, _, style := query.Get()
		style.Visible = line.Len() > 1 && line.Len() >= f.MinPoints && line.Seed%stride == 0
		if style.Visible {
			s.visible++
		}
	}
}

// Segment is one drawable piece of a line.
type Segment struct {
	A, B         vecmath.Vec3
	TimeA, TimeB float32
	Hue          float32
}

// EachSegment calls fn for every segment of every visible line, clipped to
// the current filter's MaxTime.
func (s *Scene) EachSegment(fn func(Segment)) {
	maxTime := s.current.MaxTime

	query := s.filter.Query()
	for query.Next() {
		line, _, _, style := query.Get()
		if !style.Visible {
			continue
		}
		for p := line.Start + 1; p < line.End; p++ {
			if maxTime > 0 && s.Time(p) > maxTime {
				break
			}
			fn(Segment{
				A: s.Point(p - 1), B: s.Point(p),
				TimeA: s.Time(p - 1), TimeB: s.Time(p),
				Hue: style.Hue,
			})
		}
	}
}

// Longest returns the seed of the line with the greatest arc length, or -1
// for an empty scene.
func (s *Scene) Longest() (seed int, arcLength float32) {
	seed = -1
	query := s.filter.Query()
	for query.Next() {
		line, _, metrics, _ := query.Get()
		if line.Len() > 0 && (seed < 0 || metrics.ArcLength > arcLength) {
			seed, arcLength = line.Seed, metrics.ArcLength
		}
	}
	return seed, arcLength
}
