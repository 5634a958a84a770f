package spiral

import "image/color"

// Transparent hides a segment
var Transparent = color.NRGBA{}

// Outline is either an explicit stroke color or the theme default
type Outline struct {
	explicit bool
	color    color.NRGBA
}

// DefaultOutline strokes with the theme foreground at 25% alpha
func DefaultOutline() Outline {
	return Outline{}
}

// ExplicitOutline strokes with c, including a fully transparent c.
func ExplicitOutline(c color.NRGBA) Outline {
	return Outline{explicit: true, color: c}
}

// IsDefault reports whether the outline follows the theme.
func (o Outline) IsDefault() bool {
	return !o.explicit
}

// Resolve returns the stroke color, substituting def for the default variant.
func (o Outline) Resolve(def color.NRGBA) color.NRGBA {
	if o.explicit {
		return o.color
	}
	return def
}

// DefaultOutlineColor derives the default outline from the foreground.
func DefaultOutlineColor(fg color.NRGBA) color.NRGBA {
	fg.A = 64
	return fg
}
