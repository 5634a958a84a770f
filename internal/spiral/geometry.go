package spiral

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned when a spiral cannot be laid out
var ErrInvalidArgument = errors.New("invalid argument")

// SegmentGeometry is the static layout of one wedge. The wedge starts at
// the previous segment's ending edge.
type SegmentGeometry struct {
	Inner float64
	Outer float64
	Angle float64
}

// Geometry is the immutable layout of the whole spiral
type Geometry struct {
	StartRadius float64
	SegmentSize float64
	Diameter    float64
	segments    []SegmentGeometry
}

// BuildGeometry lays out segmentCount wedges along an outward spiral. Each
// step advances the angle by atan(size/outer) so wedges keep roughly the same
// area, and the ring grows by size per full turn.
func BuildGeometry(startRadius, segmentSize, segmentCount int) (*Geometry, error) {
	if startRadius <= 0 {
		return nil, fmt.Errorf("start radius %d: %w", startRadius, ErrInvalidArgument)
	}
	if segmentSize <= 0 {
		return nil, fmt.Errorf("segment size %d: %w", segmentSize, ErrInvalidArgument)
	}
	if segmentCount <= 0 {
		return nil, fmt.Errorf("segment count %d: %w", segmentCount, ErrInvalidArgument)
	}

	start := float64(startRadius)
	size := float64(segmentSize)
	outer := start + size
	a := 0.0

	segments := make([]SegmentGeometry, segmentCount)
	for i := range segments {
		ringExpand := size * a / (2 * math.Pi)
		a += math.Atan(size / outer)
		inner := start + ringExpand
		outer = inner + size
		segments[i] = SegmentGeometry{Inner: inner, Outer: outer, Angle: a}
	}

	return &Geometry{
		StartRadius: start,
		SegmentSize: size,
		Diameter:    2 * outer,
		segments:    segments,
	}, nil
}

// Len is the number of segments.
func (g *Geometry) Len() int {
	return len(g.segments)
}

// Segment returns the layout of segment i; i must be in [0, Len()).
func (g *Geometry) Segment(i int) SegmentGeometry {
	return g.segments[i]
}

// StartEdge returns the edge a segment begins at: the ending edge of the
// previous segment, or the horizontal edge at angle zero for segment 0.
func (g *Geometry) StartEdge(i int) SegmentGeometry {
	if i == 0 {
		return SegmentGeometry{Inner: g.StartRadius, Outer: g.StartRadius + g.SegmentSize}
	}
	return g.segments[i-1]
}

// Point is a position on the drawing surface
type Point struct {
	X, Y float64
}

// Corners returns the wedge of segment i around the center (cx, cy) in
// drawing order: inner start, outer start, outer end, inner end.
func (g *Geometry) Corners(i int, cx, cy float64) [4]Point {
	from := g.StartEdge(i)
	to := g.segments[i]
	fromCos, fromSin := math.Cos(from.Angle), math.Sin(from.Angle)
	toCos, toSin := math.Cos(to.Angle), math.Sin(to.Angle)

	return [4]Point{
		{cx + from.Inner*fromCos, cy + from.Inner*fromSin},
		{cx + from.Outer*fromCos, cy + from.Outer*fromSin},
		{cx + to.Outer*toCos, cy + to.Outer*toSin},
		{cx + to.Inner*toCos, cy + to.Inner*toSin},
	}
}
