// Package raster implements the spiral drawing surface on an in-memory
// RGBA image, used by the Fyne canvas and for headless snapshots.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"spiralscan/internal/spiral"
)

type subpath struct {
	points []spiral.Point
	closed bool
}

// Surface rasterizes paths into an RGBA image with source-over blending
type Surface struct {
	img   *image.RGBA
	r     *vector.Rasterizer
	paths []subpath
	color color.NRGBA
	width float64
}

func NewSurface(width, height int) *Surface {
	width, height = max(1, width), max(1, height)
	return &Surface{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		r:     vector.NewRasterizer(width, height),
		color: color.NRGBA{A: 255},
		width: 1,
	}
}

func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Clear paints the whole surface with c.
func (s *Surface) Clear(c color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (s *Surface) MoveTo(x, y float64) {
	s.paths = append(s.paths, subpath{points: []spiral.Point{{X: x, Y: y}}})
}

func (s *Surface) LineTo(x, y float64) {
	if len(s.paths) == 0 {
		s.MoveTo(x, y)
		return
	}
	last := &s.paths[len(s.paths)-1]
	last.points = append(last.points, spiral.Point{X: x, Y: y})
}

func (s *Surface) ClosePath() {
	if len(s.paths) > 0 {
		s.paths[len(s.paths)-1].closed = true
	}
}

func (s *Surface) Rectangle(x, y, w, h float64) {
	s.paths = append(s.paths, subpath{
		points: []spiral.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}},
		closed: true,
	})
}

func (s *Surface) SetColor(c color.NRGBA) {
	s.color = c
}

func (s *Surface) SetLineWidth(w float64) {
	s.width = w
}

func (s *Surface) FillPreserve() {
	if s.color.A == 0 || len(s.paths) == 0 {
		return
	}
	polys := make([][]spiral.Point, 0, len(s.paths))
	for _, p := range s.paths {
		if len(p.points) >= 3 {
			polys = append(polys, p.points)
		}
	}
	s.rasterize(polys, 0)
}

// Stroke draws every edge of the current path as a quad of the line width
// and clears the path.
func (s *Surface) Stroke() {
	paths := s.paths
	s.paths = nil
	if s.color.A == 0 || s.width <= 0 {
		return
	}

	half := s.width / 2
	var quads [][]spiral.Point
	for _, p := range paths {
		n := len(p.points)
		edges := n - 1
		if p.closed {
			edges = n
		}
		for i := 0; i < edges; i++ {
			if q, ok := edgeQuad(p.points[i], p.points[(i+1)%n], half); ok {
				quads = append(quads, q)
			}
		}
	}
	s.rasterize(quads, half)
}

// rasterize composites polys over the image. Only the pixels under their
// bounding box, grown by pad, are touched.
func (s *Surface) rasterize(polys [][]spiral.Point, pad float64) {
	bb := bounds(polys, pad).Intersect(s.img.Bounds())
	if bb.Empty() {
		return
	}

	s.r.Reset(bb.Dx(), bb.Dy())
	s.r.DrawOp = draw.Over
	ox, oy := float64(bb.Min.X), float64(bb.Min.Y)
	for _, pts := range polys {
		s.r.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
		for _, p := range pts[1:] {
			s.r.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		s.r.ClosePath()
	}
	s.r.Draw(s.img, bb, image.NewUniform(s.color), image.Point{})
}

// bounds is the smallest pixel rectangle covering polys, grown by pad.
func bounds(polys [][]spiral.Point, pad float64) image.Rectangle {
	if len(polys) == 0 {
		return image.Rectangle{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pts := range polys {
		for _, p := range pts {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	return image.Rect(
		int(math.Floor(minX-pad)), int(math.Floor(minY-pad)),
		int(math.Ceil(maxX+pad))+1, int(math.Ceil(maxY+pad))+1,
	)
}

// edgeQuad returns the rectangle covering the line a-b. All quads share the
// same winding so overlaps saturate instead of cancelling.
func edgeQuad(a, b spiral.Point, half float64) ([]spiral.Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return nil, false
	}
	nx, ny := -dy/length*half, dx/length*half
	return []spiral.Point{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	}, true
}
