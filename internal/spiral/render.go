package spiral

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	rightMargin   = 15
	labelX        = 10
	markerSize    = 6
	legendGap     = 20
	legendLeading = 10
)

// Renderer draws a session's geometry, state and labels
type Renderer struct {
	geometry *Geometry
	state    *State
	progress *Progress
	labels   *labels
}

// Center returns the spiral center for a drawing area of the given size.
func (r *Renderer) Center(width, height int) (float64, float64) {
	return float64(width) - rightMargin - r.geometry.Diameter/2, float64(height) / 2
}

// Draw paints everything selected by dirty. AllClasses gives a full redraw.
func (r *Renderer) Draw(s Surface, text TextDrawer, width, height int, fg color.NRGBA, dirty ClassMask) {
	cx, cy := r.Center(width, height)

	if text != nil {
		r.drawLabels(s, text, cy, fg, dirty)
	}
	if dirty.Has(ClassSpiral) {
		r.drawSpiral(s, cx, cy, fg)
	}
}

func (r *Renderer) drawSpiral(s Surface, cx, cy float64, fg color.NRGBA) {
	outlineDefault := DefaultOutlineColor(fg)
	s.SetLineWidth(1)

	clip := r.state.ClipBoundary()
	for i := 0; i < clip; i++ {
		fill, outline := r.state.Segment(i)
		r.wedge(s, i, cx, cy)
		s.SetColor(fill)
		s.FillPreserve()
		s.SetColor(outline.Resolve(outlineDefault))
		s.Stroke()
	}

	cursor, _ := r.state.SampleCursor()
	if cursor >= 0 && cursor < clip {
		r.wedge(s, cursor, cx, cy)
		s.SetColor(fg)
		s.SetLineWidth(2)
		s.Stroke()
		s.SetLineWidth(1)
	}
}

func (r *Renderer) wedge(s Surface, i int, cx, cy float64) {
	c := r.geometry.Corners(i, cx, cy)
	s.MoveTo(c[0].X, c[0].Y)
	s.LineTo(c[1].X, c[1].Y)
	s.LineTo(c[2].X, c[2].Y)
	s.LineTo(c[3].X, c[3].Y)
	s.ClosePath()
}

// line draws text when its class is dirty and returns the line height either way.
func line(text TextDrawer, x, y int, str string, c color.NRGBA, redraw bool) int {
	_, h := text.Measure(str)
	if redraw {
		text.DrawText(x, y, str, c)
	}
	return h
}

func (r *Renderer) drawLabels(s Surface, text TextDrawer, cy float64, fg color.NRGBA, dirty ClassMask) {
	radius := r.geometry.Diameter / 2
	x := labelX
	y := int(cy - radius)

	title := dirty.Has(ClassTitle)
	h := line(text, x, y, load(&r.labels.title), fg, title)

	y += h + h/2
	if sub := load(&r.labels.subtitle); sub != "" {
		first, second, split := splitMiddle(sub)
		h = line(text, x, y, first, fg, dirty.Has(ClassSubtitle))
		if split {
			h = line(text, x, y+h, second, fg, dirty.Has(ClassSubtitle))
		}
	}

	y += 4 * h
	h = line(text, x, y, "Sectors processed", fg, title)

	c := r.progress.Snapshot()
	redraw := dirty.Has(ClassProgress)
	y += h
	h = line(text, x, y, "  readable: "+humanize.Comma(c.Readable), fg, redraw)
	y += h
	h = line(text, x, y, "  correctable: "+humanize.Comma(c.Correctable), fg, redraw)
	y += h
	h = line(text, x, y, "  missing: "+humanize.Comma(c.Missing), fg, redraw)

	if c.ShowRequired() {
		y += h
		h = line(text, x, y, fmt.Sprintf("Readable: %s / %s required",
			tenths(c.RequiredPercent()), tenths(c.MinRequired)), fg, redraw)
	}

	y += h
	line(text, x, y, "Total recoverable: "+tenths(c.Percent), fg, redraw)

	if msg := load(&r.labels.footer); msg != "" && dirty.Has(ClassErrorMessage) {
		fc := fg
		if stored := r.labels.footerColor.Load(); stored != nil {
			fc = *stored
		}
		_, h = text.Measure(msg)
		text.DrawText(x, int(cy+radius)-h, msg, fc)
	}

	if title {
		if legend := r.labels.legend.Load(); legend != nil {
			for _, e := range *legend {
				r.drawLegend(s, text, e, cy, fg)
			}
		}
	}
}

func (r *Renderer) drawLegend(s Surface, text TextDrawer, e LegendEntry, cy float64, fg color.NRGBA) {
	radius := r.geometry.Diameter / 2
	_, h := text.Measure(e.Text)

	var y int
	if e.Line > 0 {
		y = int(cy+radius) + legendGap + (e.Line-1)*(legendLeading+h)
	} else {
		y = int(cy-radius) - legendGap - h + (e.Line+1)*(legendLeading+h)
	}

	s.Rectangle(float64(e.X)+0.5, float64(y+(h-markerSize)/2)+0.5, markerSize, markerSize)
	s.SetColor(e.Color)
	s.FillPreserve()
	s.SetColor(DefaultOutlineColor(fg))
	s.SetLineWidth(1)
	s.Stroke()

	text.DrawText(e.X+10, y, e.Text, fg)
}

// splitMiddle breaks text at the first space at or after its middle.
func splitMiddle(text string) (string, string, bool) {
	idx := strings.IndexByte(text[len(text)/2:], ' ')
	if idx < 0 {
		return text, "", false
	}
	idx += len(text) / 2
	return text[:idx], text[idx+1:], true
}

func tenths(v int) string {
	return fmt.Sprintf("%d.%d%%", v/10, v%10)
}
