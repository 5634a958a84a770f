package spiral

import (
	"math"
	"sync/atomic"
)

// Counters is a point-in-time copy of Progress
type Counters struct {
	Readable    int64
	Correctable int64
	Missing     int64
	Percent     int
	MinRequired int
}

// Progress holds the sector counters reported by the scan worker. Percent
// values are fixed-point tenths (0..1000). Each change publishes a whole
// Counters value, so readers never mix two updates.
type Progress struct {
	current atomic.Pointer[Counters]
}

func (p *Progress) modify(fn func(c *Counters)) {
	for {
		old := p.current.Load()
		next := Counters{}
		if old != nil {
			next = *old
		}
		fn(&next)
		if p.current.CompareAndSwap(old, &next) {
			return
		}
	}
}

func (p *Progress) Update(readable, correctable, missing int64, percent int) {
	p.modify(func(c *Counters) {
		c.Readable = max(0, readable)
		c.Correctable = max(0, correctable)
		c.Missing = max(0, missing)
		c.Percent = max(0, min(percent, 1000))
	})
}

func (p *Progress) SetMinimumRequired(value int) {
	p.modify(func(c *Counters) {
		c.MinRequired = max(0, min(value, 1000))
	})
}

func (p *Progress) Reset() {
	p.current.Store(&Counters{})
}

func (p *Progress) Snapshot() Counters {
	if c := p.current.Load(); c != nil {
		return *c
	}
	return Counters{}
}

// RequiredPercent is the readable share in tenths of a percent.
func (c Counters) RequiredPercent() int {
	total := c.Readable + c.Correctable + c.Missing
	if total == 0 {
		return 0
	}
	// with nothing missing the target is met, even if rounding says otherwise
	if c.Missing == 0 && c.MinRequired > 0 {
		return c.MinRequired
	}
	return int(math.Round(1000 * float64(c.Readable) / float64(total)))
}

// ShowRequired reports whether the "required" line is worth drawing.
func (c Counters) ShowRequired() bool {
	return c.MinRequired > 0 && c.Readable > 0
}

func (p *Progress) RequiredPercent() int {
	return p.Snapshot().RequiredPercent()
}
