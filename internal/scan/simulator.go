// Package scan simulates an adaptive read of an optical medium and reports
// its progress to a spiral session from the calling goroutine.
package scan

import (
	"context"
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"spiralscan/internal/logger"
	"spiralscan/internal/spiral"
)

var (
	Readable    = color.NRGBA{R: 0x00, G: 0xc0, B: 0x00, A: 0xff}
	Correctable = color.NRGBA{R: 0xff, G: 0xc0, B: 0x00, A: 0xff}
	Missing     = color.NRGBA{R: 0xe0, G: 0x00, B: 0x00, A: 0xff}
	// Marker flags the segment currently being read
	Marker = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Target receives progress from the worker; *spiral.Session implements it.
type Target interface {
	Reset()
	SetClipBoundary(n int)
	SetSegmentColor(i int, fill color.NRGBA, outline spiral.Outline)
	SetCursor(i int)
	ClearMarkers(marker color.NRGBA)
	UpdateProgress(readable, correctable, missing int64, percent int)
	SetMinimumRequiredPercentage(value int)
	SetSubtitle(text string)
	SetFooterMessage(msg string, c *color.NRGBA)
}

type Config struct {
	Sectors         int64
	Segments        int
	MinRequired     int
	ReadDelay       time.Duration
	UnreadableRatio float64
	Seed            int64
}

// Result summarizes a finished pass
type Result struct {
	Readable    int64
	Correctable int64
	Missing     int64
	Percent     int
}

type Simulator struct {
	cfg    Config
	target Target
	logger logger.Logger
	rng    *rand.Rand
}

func NewSimulator(cfg Config, target Target, log logger.Logger) *Simulator {
	if log == nil {
		log = logger.Nop{}
	}
	return &Simulator{
		cfg:    cfg,
		target: target,
		logger: log,
		rng:    rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed)^0x9e3779b97f4a7c15)),
	}
}

// Legend describes the colors used by the simulator.
func Legend() []spiral.LegendEntry {
	return []spiral.LegendEntry{
		{Color: Readable, Text: "Successfully read", X: 10, Line: 1},
		{Color: Correctable, Text: "Correctable", X: 10, Line: 2},
		{Color: Missing, Text: "Unreadable / missing", X: 10, Line: 3},
	}
}

// Layout returns how many sectors each segment covers and how many
// segments the medium needs.
func Layout(sectors int64, segments int) (perSegment int64, used int) {
	if sectors <= 0 || segments <= 0 {
		return 0, 0
	}
	perSegment = (sectors + int64(segments) - 1) / int64(segments)
	used = int((sectors + perSegment - 1) / perSegment)
	return perSegment, used
}

// Run performs one pass. It returns ctx.Err() when cancelled; the target
// keeps whatever was drawn so far.
func (s *Simulator) Run(ctx context.Context) (Result, error) {
	perSegment, used := Layout(s.cfg.Sectors, s.cfg.Segments)
	if used == 0 {
		return Result{}, fmt.Errorf("nothing to read: %d sectors on %d segments", s.cfg.Sectors, s.cfg.Segments)
	}

	s.target.Reset()
	s.target.SetMinimumRequiredPercentage(s.cfg.MinRequired)
	s.target.SetClipBoundary(used)
	s.target.SetSubtitle(fmt.Sprintf("Reading %d sectors in %d segments of %d sectors each", s.cfg.Sectors, used, perSegment))

	s.logger.Info("Scanner", "pass started", map[string]interface{}{
		"sectors":     s.cfg.Sectors,
		"segments":    used,
		"per_segment": perSegment,
	})

	var res Result
	for seg := 0; seg < used; seg++ {
		if err := ctx.Err(); err != nil {
			s.abort(res, err)
			return res, err
		}

		s.target.SetCursor(seg)
		s.target.SetSegmentColor(seg, Marker, spiral.DefaultOutline())

		first := int64(seg) * perSegment
		last := min(first+perSegment, s.cfg.Sectors)
		var bad, lost int64
		for sector := first; sector < last; sector++ {
			switch {
			case s.rng.Float64() >= s.cfg.UnreadableRatio:
				res.Readable++
			case s.rng.IntN(2) == 0:
				res.Correctable++
				bad++
			default:
				res.Missing++
				bad++
				lost++
			}
		}

		fill := Readable
		if lost > 0 {
			fill = Missing
		} else if bad > 0 {
			fill = Correctable
		}
		s.target.SetSegmentColor(seg, fill, spiral.DefaultOutline())

		res.Percent = recoverable(res)
		s.target.UpdateProgress(res.Readable, res.Correctable, res.Missing, res.Percent)

		if s.cfg.ReadDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(s.cfg.ReadDelay):
			}
		}
	}

	s.target.SetCursor(-1)
	s.target.ClearMarkers(Marker)

	msg := fmt.Sprintf("Finished: %d.%d%% recoverable", res.Percent/10, res.Percent%10)
	c := Readable
	if res.Missing > 0 {
		c = Missing
	}
	s.target.SetFooterMessage(msg, &c)

	s.logger.Info("Scanner", "pass finished", map[string]interface{}{
		"readable":    res.Readable,
		"correctable": res.Correctable,
		"missing":     res.Missing,
		"percent":     res.Percent,
	})
	return res, nil
}

func (s *Simulator) abort(res Result, err error) {
	s.target.SetCursor(-1)
	s.target.ClearMarkers(Marker)
	red := Missing
	s.target.SetFooterMessage("Aborted by user", &red)
	s.logger.Warning("Scanner", "pass aborted", map[string]interface{}{
		"readable": res.Readable,
		"error":    err.Error(),
	})
}

// recoverable is the share of readable plus correctable sectors in tenths
// of a percent.
func recoverable(r Result) int {
	total := r.Readable + r.Correctable + r.Missing
	if total == 0 {
		return 0
	}
	return int(1000 * (r.Readable + r.Correctable) / total)
}
