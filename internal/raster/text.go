package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Text draws labels with a fixed bitmap face
type Text struct {
	dst  *image.RGBA
	face font.Face
}

func NewText(dst *image.RGBA) *Text {
	return &Text{dst: dst, face: basicfont.Face7x13}
}

func (t *Text) Measure(text string) (int, int) {
	return font.MeasureString(t.face, text).Ceil(), t.face.Metrics().Height.Ceil()
}

func (t *Text) DrawText(x, y int, text string, c color.NRGBA) {
	d := font.Drawer{
		Dst:  t.dst,
		Src:  image.NewUniform(c),
		Face: t.face,
		Dot:  fixed.P(x, y+t.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}
