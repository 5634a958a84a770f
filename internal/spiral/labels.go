package spiral

import (
	"image/color"
	"sync/atomic"
)

const DefaultTitle = "Adaptive reading:"

// LegendEntry is a colored marker plus caption drawn above (Line < 0) or
// below (Line > 0) the spiral.
type LegendEntry struct {
	Color color.NRGBA
	Text  string
	X     int
	Line  int
}

type labels struct {
	title       atomic.Pointer[string]
	subtitle    atomic.Pointer[string]
	footer      atomic.Pointer[string]
	footerColor atomic.Pointer[color.NRGBA]
	legend      atomic.Pointer[[]LegendEntry]
}

func newLabels() *labels {
	l := &labels{}
	l.setTitle(DefaultTitle)
	return l
}

func (l *labels) setTitle(text string) {
	l.title.Store(&text)
}

func (l *labels) setSubtitle(text string) {
	l.subtitle.Store(&text)
}

// setFooter stores the message; a nil color means the theme foreground.
func (l *labels) setFooter(text string, c *color.NRGBA) {
	if c != nil {
		cc := *c
		c = &cc
	}
	l.footerColor.Store(c)
	l.footer.Store(&text)
}

func (l *labels) setLegend(entries []LegendEntry) {
	cp := append([]LegendEntry(nil), entries...)
	l.legend.Store(&cp)
}

func (l *labels) clear() {
	l.subtitle.Store(nil)
	l.footer.Store(nil)
	l.footerColor.Store(nil)
}

func load(p *atomic.Pointer[string]) string {
	if s := p.Load(); s != nil {
		return *s
	}
	return ""
}
