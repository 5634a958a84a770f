// Package spiral draws the progress of a disc scan as a spiral of colored
// wedges. A Session is mutated by the scan worker from any goroutine and
// painted by the UI goroutine; redraw requests travel through a Dispatcher.
package spiral

import (
	"image/color"

	"spiralscan/internal/logger"
)

type options struct {
	eraseWindow int
	neutral     color.NRGBA
	queueSize   int
	logger      logger.Logger
}

type Option func(*options)

// WithEraseWindow sets how many segments behind the old clip boundary are
// cleared when the boundary advances.
func WithEraseWindow(n int) Option {
	return func(o *options) { o.eraseWindow = max(0, n) }
}

// WithNeutralColor sets the fill used on creation and reset.
func WithNeutralColor(c color.NRGBA) Option {
	return func(o *options) { o.neutral = c }
}

func WithQueueSize(n int) Option {
	return func(o *options) { o.queueSize = n }
}

func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Session owns the geometry, segment state, counters, labels and
// dispatcher of one spiral.
type Session struct {
	geometry   *Geometry
	state      *State
	progress   *Progress
	labels     *labels
	dispatcher *Dispatcher
	renderer   *Renderer
	neutral    color.NRGBA
	logger     logger.Logger
}

// New lays out a spiral of segmentCount wedges. Invalid dimensions fail
// with ErrInvalidArgument.
func New(startRadius, segmentSize, segmentCount int, opts ...Option) (*Session, error) {
	o := options{
		eraseWindow: DefaultEraseWindow,
		neutral:     Transparent,
		queueSize:   DefaultQueueSize,
		logger:      logger.Nop{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	geometry, err := BuildGeometry(startRadius, segmentSize, segmentCount)
	if err != nil {
		return nil, err
	}

	s := &Session{
		geometry:   geometry,
		state:      NewState(segmentCount, o.neutral, o.eraseWindow),
		progress:   &Progress{},
		labels:     newLabels(),
		dispatcher: NewDispatcher(o.queueSize, o.logger),
		neutral:    o.neutral,
		logger:     o.logger,
	}
	s.renderer = &Renderer{geometry: s.geometry, state: s.state, progress: s.progress, labels: s.labels}

	s.logger.Debug("Spiral", "session created", map[string]interface{}{
		"segments": segmentCount,
		"diameter": geometry.Diameter,
	})
	return s, nil
}

func (s *Session) Geometry() *Geometry {
	return s.geometry
}

func (s *Session) State() *State {
	return s.state
}

func (s *Session) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// Counters returns the current progress counters.
func (s *Session) Counters() Counters {
	return s.progress.Snapshot()
}

// Attach connects the session to a UI loop: post runs callbacks on the UI
// goroutine and redraw repaints.
func (s *Session) Attach(post Poster, redraw RedrawFunc) {
	s.dispatcher.Attach(post, redraw)
}

// Reset prepares the spiral for a new pass.
func (s *Session) Reset() {
	s.state.SetClipBoundary(0)
	s.state.Fill(s.neutral)
	s.progress.Reset()
	s.labels.clear()

	for c := UpdateClass(0); c < numClasses; c++ {
		s.dispatcher.Schedule(c)
	}
}

func (s *Session) SetSegmentColor(i int, fill color.NRGBA, outline Outline) {
	if s.state.SetSegment(i, fill, outline) {
		s.dispatcher.Schedule(ClassSpiral)
	}
}

// SetCursor only stores the position; the UI samples it at refresh rate.
func (s *Session) SetCursor(i int) {
	s.state.SetCursor(i)
}

// SampleCursor is called by the UI at refresh cadence and reports whether
// the highlighted segment moved since it was last drawn.
func (s *Session) SampleCursor() bool {
	_, changed := s.state.SampleCursor()
	return changed
}

func (s *Session) SetClipBoundary(n int) {
	if s.state.SetClipBoundary(n) {
		s.dispatcher.Schedule(ClassSpiral)
	}
}

// ClearMarkers removes transient marker fills left behind by a pass.
func (s *Session) ClearMarkers(marker color.NRGBA) {
	if s.state.ClearMarkers(marker) {
		s.dispatcher.Schedule(ClassSpiral)
	}
}

func (s *Session) UpdateProgress(readable, correctable, missing int64, percent int) {
	s.progress.Update(readable, correctable, missing, percent)
	s.dispatcher.Schedule(ClassProgress)
}

// SetMinimumRequiredPercentage sets the target share in tenths of a percent.
func (s *Session) SetMinimumRequiredPercentage(value int) {
	s.progress.SetMinimumRequired(value)
	s.dispatcher.Schedule(ClassProgress)
}

func (s *Session) SetTitle(text string) {
	s.labels.setTitle(text)
	s.dispatcher.Schedule(ClassTitle)
}

func (s *Session) SetSubtitle(text string) {
	s.labels.setSubtitle(text)
	s.dispatcher.Schedule(ClassSubtitle)
}

// SetFooterMessage shows msg under the labels, in c or the foreground when
// c is nil.
func (s *Session) SetFooterMessage(msg string, c *color.NRGBA) {
	s.labels.setFooter(msg, c)
	s.dispatcher.Schedule(ClassErrorMessage)
}

func (s *Session) SetLegend(entries []LegendEntry) {
	s.labels.setLegend(entries)
	s.dispatcher.Schedule(ClassTitle)
}

// Draw paints the session onto surf. Paint events pass AllClasses.
func (s *Session) Draw(surf Surface, text TextDrawer, width, height int, fg color.NRGBA, dirty ClassMask) {
	s.renderer.Draw(surf, text, width, height, fg, dirty)
}
