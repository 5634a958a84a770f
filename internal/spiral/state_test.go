package spiral

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestState_NewStartsRevealedAndNeutral(t *testing.T) {
	s := NewState(8, green, 3)

	assert.Equal(t, 8, s.Len())
	assert.Equal(t, 8, s.ClipBoundary())
	assert.Equal(t, -1, s.Cursor())
	for i := 0; i < 8; i++ {
		fill, outline := s.Segment(i)
		assert.Equal(t, green, fill)
		assert.True(t, outline.IsDefault())
	}
}

func TestState_SetSegmentWithinClip(t *testing.T) {
	s := NewState(10, Transparent, 3)

	assert.True(t, s.SetSegment(2, red, ExplicitOutline(blue)))
	fill, outline := s.Segment(2)
	assert.Equal(t, red, fill)
	assert.Equal(t, ExplicitOutline(blue), outline)

	assert.False(t, s.SetSegment(2, red, ExplicitOutline(blue)), "unchanged value must not signal")
	assert.True(t, s.SetSegment(2, red, DefaultOutline()), "outline variant change must signal")
}

func TestState_SetSegmentOutsideClipIsNoOp(t *testing.T) {
	s := NewState(10, Transparent, 3)
	s.SetClipBoundary(5)

	for _, i := range []int{-1, 5, 9, 10, 1000} {
		assert.False(t, s.SetSegment(i, red, DefaultOutline()), "index %d", i)
		fill, _ := s.Segment(i)
		assert.Equal(t, Transparent, fill, "index %d", i)
	}
}

func TestState_SegmentHiddenBeyondClipRegardlessOfStoredColor(t *testing.T) {
	s := NewState(10, Transparent, 0)
	for i := 0; i < 10; i++ {
		s.SetSegment(i, red, ExplicitOutline(blue))
	}

	s.SetClipBoundary(6)
	for i := 0; i < 10; i++ {
		fill, outline := s.Segment(i)
		if i < 6 {
			assert.Equal(t, red, fill)
			assert.Equal(t, ExplicitOutline(blue), outline)
		} else {
			assert.Equal(t, Transparent, fill)
			assert.True(t, outline.IsDefault())
		}
	}
}

func TestState_SetClipBoundaryErasesTrailingWindow(t *testing.T) {
	s := NewState(10, Transparent, 3)
	s.SetClipBoundary(4)
	for i := 0; i < 4; i++ {
		s.SetSegment(i, white, ExplicitOutline(white))
	}

	assert.True(t, s.SetClipBoundary(8))
	assert.Equal(t, 8, s.ClipBoundary())

	fill, outline := s.Segment(0)
	assert.Equal(t, white, fill, "segment outside the window keeps its color")
	assert.Equal(t, ExplicitOutline(white), outline)

	for i := 1; i < 4; i++ {
		fill, outline := s.Segment(i)
		assert.Equal(t, Transparent, fill, "segment %d", i)
		assert.True(t, outline.IsDefault(), "segment %d", i)
	}
}

func TestState_SetClipBoundaryClamps(t *testing.T) {
	s := NewState(10, Transparent, 3)

	s.SetClipBoundary(-4)
	assert.Equal(t, 0, s.ClipBoundary())

	s.SetClipBoundary(25)
	assert.Equal(t, 10, s.ClipBoundary())
}

func TestState_FillResetsEverySegmentAndCursor(t *testing.T) {
	s := NewState(6, Transparent, 3)
	s.SetSegment(1, red, ExplicitOutline(blue))
	s.SetCursor(3)

	s.Fill(green)

	assert.Equal(t, -1, s.Cursor())
	for i := 0; i < 6; i++ {
		fill, outline := s.Segment(i)
		assert.Equal(t, green, fill)
		assert.True(t, outline.IsDefault())
	}
}

func TestState_SetCursor(t *testing.T) {
	s := NewState(10, Transparent, 3)

	assert.True(t, s.SetCursor(4))
	assert.False(t, s.SetCursor(4), "same position must not signal twice")
	assert.Equal(t, 4, s.Cursor())

	assert.True(t, s.SetCursor(10), "segment count disables the cursor")
	assert.Equal(t, -1, s.Cursor())
	assert.False(t, s.SetCursor(11))
	assert.False(t, s.SetCursor(-7))
	assert.Equal(t, -1, s.Cursor())
}

func TestState_SampleCursor(t *testing.T) {
	s := NewState(10, Transparent, 3)

	_, changed := s.SampleCursor()
	assert.False(t, changed)

	s.SetCursor(2)
	s.SetCursor(5)
	pos, changed := s.SampleCursor()
	assert.True(t, changed)
	assert.Equal(t, 5, pos)

	pos, changed = s.SampleCursor()
	assert.False(t, changed)
	assert.Equal(t, 5, pos)
}

func TestState_ClearMarkers(t *testing.T) {
	s := NewState(5, Transparent, 3)
	s.SetSegment(0, white, DefaultOutline())
	s.SetSegment(1, green, DefaultOutline())
	s.SetSegment(3, white, ExplicitOutline(red))

	assert.True(t, s.ClearMarkers(white))

	fill, _ := s.Segment(0)
	assert.Equal(t, Transparent, fill)
	fill, _ = s.Segment(1)
	assert.Equal(t, green, fill)
	fill, outline := s.Segment(3)
	assert.Equal(t, Transparent, fill)
	assert.True(t, outline.IsDefault())

	assert.False(t, s.ClearMarkers(white))
}

func TestOutline_Resolve(t *testing.T) {
	assert.Equal(t, red, DefaultOutline().Resolve(red))
	assert.Equal(t, blue, ExplicitOutline(blue).Resolve(red))
	assert.NotEqual(t, DefaultOutline(), ExplicitOutline(Transparent))

	s := NewState(2, Transparent, 0)
	s.SetSegment(0, red, ExplicitOutline(Transparent))
	_, outline := s.Segment(0)
	assert.Equal(t, ExplicitOutline(Transparent), outline, "transparent explicit outline survives storage")
}

func TestState_SetClipBoundaryMoves(t *testing.T) {
	tests := []struct {
		name   string
		count  int
		window int
		from   int
		to     int
		kept   []int // still red, explicit blue outline
		erased []int // transparent, default outline
		hidden []int // transparent, explicit transparent outline
	}{
		{
			name:   "backwards with window reaching below new boundary",
			count:  20,
			window: 10,
			from:   20,
			to:     12,
			kept:   []int{0, 5, 9},
			erased: []int{10, 11},
			hidden: []int{12, 15, 19},
		},
		{
			name:   "backwards with window ending above new boundary",
			count:  20,
			window: 4,
			from:   20,
			to:     12,
			kept:   []int{0, 11},
			hidden: []int{12, 16, 19},
		},
		{
			name:   "forward with window larger than old boundary",
			count:  20,
			window: 50,
			from:   6,
			to:     15,
			erased: []int{0, 3, 5},
			kept:   []int{6, 14},
			hidden: []int{15, 19},
		},
		{
			name:   "backwards to zero with window larger than old boundary",
			count:  10,
			window: 50,
			from:   8,
			to:     0,
			hidden: []int{0, 7, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(tt.count, Transparent, tt.window)
			for i := 0; i < tt.count; i++ {
				s.SetSegment(i, red, ExplicitOutline(blue))
			}
			s.clip.Store(int32(tt.from))

			assert.True(t, s.SetClipBoundary(tt.to))
			assert.Equal(t, tt.to, s.ClipBoundary())

			for _, i := range tt.kept {
				fill, outline := s.stored(i)
				assert.Equal(t, red, fill, "segment %d", i)
				assert.Equal(t, ExplicitOutline(blue), outline, "segment %d", i)
			}
			for _, i := range tt.erased {
				fill, outline := s.stored(i)
				assert.Equal(t, Transparent, fill, "segment %d", i)
				assert.True(t, outline.IsDefault(), "segment %d", i)
			}
			for _, i := range tt.hidden {
				fill, outline := s.stored(i)
				assert.Equal(t, Transparent, fill, "segment %d", i)
				assert.Equal(t, ExplicitOutline(Transparent), outline, "segment %d", i)
			}
		})
	}
}

func TestState_ConcurrentWritesNeverTear(t *testing.T) {
	s := NewState(1, red, 0)
	s.SetSegment(0, red, ExplicitOutline(red))
	colors := []color.NRGBA{red, green, blue, white}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 20000; i++ {
			c := colors[i%len(colors)]
			s.SetSegment(0, c, ExplicitOutline(c))
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
		}
		fill, outline := s.Segment(0)
		if !assert.Equal(t, ExplicitOutline(fill), outline, "fill and outline from different writes") {
			<-done
			return
		}
	}
}
