package spiral

import (
	"image/color"
	"sync/atomic"
)

// DefaultEraseWindow is how many segments behind the old clip boundary get
// cleared when the boundary moves.
const DefaultEraseWindow = 300

// segment is published whole so a reader never pairs a fill with another
// write's outline. Values are immutable once stored.
type segment struct {
	fill    color.NRGBA
	outline Outline
}

var (
	hiddenSegment = &segment{fill: Transparent, outline: ExplicitOutline(Transparent)}
	erasedSegment = &segment{fill: Transparent, outline: DefaultOutline()}
)

// State holds the mutable per-segment colors, the clip boundary and the
// cursor. Writers and the drawing goroutine share it through atomics only.
type State struct {
	segments    []atomic.Pointer[segment]
	clip        atomic.Int32
	cursor      atomic.Int32
	eraseWindow int

	// owned by the drawing goroutine
	lastCursor int32
}

func NewState(count int, fill color.NRGBA, eraseWindow int) *State {
	s := &State{
		segments:    make([]atomic.Pointer[segment], count),
		eraseWindow: eraseWindow,
		lastCursor:  -1,
	}
	s.clip.Store(int32(count))
	s.Fill(fill)
	return s
}

func (s *State) Len() int {
	return len(s.segments)
}

// Fill sets every segment to c with the default outline and clears the cursor.
func (s *State) Fill(c color.NRGBA) {
	shared := &segment{fill: c, outline: DefaultOutline()}
	for i := range s.segments {
		s.segments[i].Store(shared)
	}
	s.cursor.Store(-1)
}

// SetSegment stores the colors of segment i and reports whether anything
// changed. Indices outside [0, clip) are ignored.
func (s *State) SetSegment(i int, fill color.NRGBA, outline Outline) bool {
	if i < 0 || i >= int(s.clip.Load()) {
		return false
	}
	return s.store(i, &segment{fill: fill, outline: outline})
}

// store publishes v unless segment i already holds an equal value.
func (s *State) store(i int, v *segment) bool {
	if cur := s.segments[i].Load(); cur != nil && *cur == *v {
		return false
	}
	s.segments[i].Store(v)
	return true
}

// Segment returns the colors of segment i as they should be drawn.
func (s *State) Segment(i int) (color.NRGBA, Outline) {
	if i < 0 || i >= int(s.clip.Load()) {
		return Transparent, DefaultOutline()
	}
	v := s.segments[i].Load()
	return v.fill, v.outline
}

// stored returns segment i ignoring the clip boundary.
func (s *State) stored(i int) (color.NRGBA, Outline) {
	v := s.segments[i].Load()
	return v.fill, v.outline
}

func (s *State) ClipBoundary() int {
	return int(s.clip.Load())
}

// SetClipBoundary moves the reveal boundary to n. Segments at or past the
// new boundary are reset, and the trailing window behind the old boundary
// loses any transient marker colors.
func (s *State) SetClipBoundary(n int) bool {
	n = max(0, min(n, len(s.segments)))
	old := int(s.clip.Swap(int32(n)))

	changed := old != n
	for i := n; i < len(s.segments); i++ {
		if s.store(i, hiddenSegment) {
			changed = true
		}
	}
	for i := max(0, old-s.eraseWindow); i < min(old, n); i++ {
		if s.store(i, erasedSegment) {
			changed = true
		}
	}
	return changed
}

// ClearMarkers makes every visible segment filled with marker transparent.
func (s *State) ClearMarkers(marker color.NRGBA) bool {
	changed := false
	for i := 0; i < int(s.clip.Load()); i++ {
		if s.segments[i].Load().fill == marker && s.store(i, erasedSegment) {
			changed = true
		}
	}
	return changed
}

func (s *State) Cursor() int {
	return int(s.cursor.Load())
}

// SetCursor moves the highlight. Anything past the last segment disables
// it. Returns false when the cursor already sits there.
func (s *State) SetCursor(i int) bool {
	if i < -1 || i > len(s.segments)-1 {
		i = -1
	}
	return s.cursor.Swap(int32(i)) != int32(i)
}

// SampleCursor reads the cursor for the drawing goroutine and reports
// whether it moved since the previous sample.
func (s *State) SampleCursor() (int, bool) {
	pos := s.cursor.Load()
	if pos == s.lastCursor {
		return int(pos), false
	}
	s.lastCursor = pos
	return int(pos), true
}
