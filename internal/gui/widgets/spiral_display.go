package widgets

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"spiralscan/internal/raster"
	"spiralscan/internal/spiral"
)

// LabelColumnWidth leaves room for the progress labels left of the spiral
const LabelColumnWidth = 320

type SpiralDisplay struct {
	container fyne.CanvasObject
	headline  *widget.Label
	area      *canvas.Raster
	session   *spiral.Session
}

func NewSpiralDisplay(session *spiral.Session) *SpiralDisplay {
	display := &SpiralDisplay{session: session}
	display.createComponents()
	display.setupLayout()
	return display
}

func (sd *SpiralDisplay) createComponents() {
	sd.headline = widget.NewLabel("")
	sd.headline.Truncation = fyne.TextTruncateEllipsis

	sd.area = canvas.NewRaster(sd.generate)
	diameter := float32(sd.session.Geometry().Diameter)
	sd.area.SetMinSize(fyne.NewSize(diameter+LabelColumnWidth, diameter))
}

func (sd *SpiralDisplay) setupLayout() {
	sd.container = container.NewBorder(
		container.NewVBox(sd.headline, widget.NewSeparator(), widget.NewSeparator()),
		nil, nil, nil,
		sd.area,
	)
}

// generate is the paint handler; it always repaints every class.
func (sd *SpiralDisplay) generate(w, h int) image.Image {
	surface := raster.NewSurface(w, h)
	sd.session.Draw(surface, raster.NewText(surface.Image()), w, h, Foreground(), spiral.AllClasses)
	return surface.Image()
}

func (sd *SpiralDisplay) GetContainer() fyne.CanvasObject {
	return sd.container
}

// SetHeadline must run on the UI goroutine.
func (sd *SpiralDisplay) SetHeadline(text string) {
	sd.headline.SetText(text)
}

// Refresh must run on the UI goroutine.
func (sd *SpiralDisplay) Refresh() {
	sd.area.Refresh()
}

// Foreground is the current theme's text color.
func Foreground() color.NRGBA {
	return color.NRGBAModel.Convert(theme.Color(theme.ColorNameForeground)).(color.NRGBA)
}
