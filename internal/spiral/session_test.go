package spiral

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidDimensions(t *testing.T) {
	s, err := New(10, 0, 100)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Nil(t, s)
}

func TestSession_ResetStartsNewPass(t *testing.T) {
	neutral := color.NRGBA{R: 1, G: 2, B: 3, A: 255}
	s, err := New(10, 5, 40, WithNeutralColor(neutral), WithEraseWindow(5))
	require.NoError(t, err)

	s.SetSegmentColor(4, red, ExplicitOutline(blue))
	s.SetCursor(4)
	s.UpdateProgress(5, 6, 7, 80)
	s.SetMinimumRequiredPercentage(900)
	s.SetSubtitle("pass one")
	s.SetFooterMessage("error", &red)
	s.Dispatcher().Drain()

	s.Reset()

	assert.Equal(t, 0, s.State().ClipBoundary())
	assert.Equal(t, -1, s.State().Cursor())
	assert.Equal(t, Counters{}, s.Counters())
	assert.Equal(t, "", load(&s.labels.subtitle))
	assert.Equal(t, "", load(&s.labels.footer))
	assert.Equal(t, DefaultTitle, load(&s.labels.title))
	assert.Equal(t, AllClasses, s.Dispatcher().Drain())

	s.SetClipBoundary(40)
	fill, outline := s.State().Segment(4)
	assert.Equal(t, neutral, fill)
	assert.True(t, outline.IsDefault())
}

func TestSession_SetSegmentColorSignalsOnlyOnChange(t *testing.T) {
	s := newTestSession(t, 10)

	s.SetSegmentColor(1, red, DefaultOutline())
	assert.True(t, s.Dispatcher().Pending(ClassSpiral))
	s.Dispatcher().Drain()

	s.SetSegmentColor(1, red, DefaultOutline())
	assert.False(t, s.Dispatcher().Pending(ClassSpiral))

	s.SetSegmentColor(42, red, DefaultOutline())
	assert.False(t, s.Dispatcher().Pending(ClassSpiral))
}

func TestSession_CursorPastEndDisables(t *testing.T) {
	s := newTestSession(t, 10)

	s.SetCursor(7)
	assert.True(t, s.SampleCursor())
	s.SetCursor(7)
	assert.False(t, s.SampleCursor(), "identical position is one redraw at most")

	s.SetCursor(10)
	assert.Equal(t, -1, s.State().Cursor())
	assert.True(t, s.SampleCursor())
}

func TestSession_LabelsScheduleTheirClass(t *testing.T) {
	s := newTestSession(t, 10)

	s.SetTitle("Scanning:")
	s.SetSubtitle("sub")
	s.SetFooterMessage("footer", nil)

	dirty := s.Dispatcher().Drain()
	assert.True(t, dirty.Has(ClassTitle))
	assert.True(t, dirty.Has(ClassSubtitle))
	assert.True(t, dirty.Has(ClassErrorMessage))
	assert.False(t, dirty.Has(ClassProgress))
	assert.Equal(t, "Scanning:", load(&s.labels.title))
}

func TestSession_ClearMarkers(t *testing.T) {
	s := newTestSession(t, 10)
	s.SetSegmentColor(2, white, DefaultOutline())
	s.Dispatcher().Drain()

	s.ClearMarkers(white)
	assert.True(t, s.Dispatcher().Pending(ClassSpiral))
	fill, _ := s.State().Segment(2)
	assert.Equal(t, Transparent, fill)
}
