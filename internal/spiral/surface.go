package spiral

import "image/color"

// Surface is an immediate-mode 2D drawing target with a current path
type Surface interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Rectangle(x, y, w, h float64)
	SetColor(c color.NRGBA)
	SetLineWidth(w float64)
	// FillPreserve fills the current path and keeps it for a following Stroke.
	FillPreserve()
	// Stroke outlines the current path and clears it.
	Stroke()
}

// TextDrawer measures and draws single lines of text. (x, y) is the top
// left corner of the text box.
type TextDrawer interface {
	Measure(text string) (w, h int)
	DrawText(x, y int, text string, c color.NRGBA)
}
