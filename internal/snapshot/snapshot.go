// Package snapshot runs a simulated pass without a window: a private UI
// loop drains the session's redraw requests while the worker reads, and the
// final state is rendered to an image.
package snapshot

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/sync/errgroup"

	"spiralscan/internal/logger"
	"spiralscan/internal/raster"
	"spiralscan/internal/scan"
	"spiralscan/internal/spiral"
)

// Options describe the output image
type Options struct {
	Width      int
	Height     int
	Background color.NRGBA
	Foreground color.NRGBA
}

func DefaultOptions(session *spiral.Session) Options {
	d := int(session.Geometry().Diameter)
	return Options{
		Width:      d + 360,
		Height:     d + 40,
		Background: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Foreground: color.NRGBA{A: 0xff},
	}
}

// Stats reports how the pass was painted
type Stats struct {
	Result  scan.Result
	Redraws int
	Posted  int
}

// Run drives sim against session and returns the final frame.
func Run(ctx context.Context, session *spiral.Session, sim *scan.Simulator, opts Options, log logger.Logger) (*image.RGBA, Stats, error) {
	var stats Stats
	callbacks := make(chan func(), 256)
	workerDone := make(chan struct{})

	// a dropped callback leaves its message queued for the next drain or the
	// final flush, so posting never blocks the worker
	session.Attach(func(fn func()) {
		select {
		case callbacks <- fn:
		default:
		}
	}, func(spiral.ClassMask) {
		stats.Redraws++
	})
	defer session.Attach(nil, nil)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(workerDone)
		res, err := sim.Run(gctx)
		stats.Result = res
		return err
	})

	g.Go(func() error {
		for {
			select {
			case fn := <-callbacks:
				stats.Posted++
				fn()
			case <-workerDone:
				for {
					select {
					case fn := <-callbacks:
						stats.Posted++
						fn()
					default:
						return nil
					}
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		return nil, stats, fmt.Errorf("simulated pass failed: %w", err)
	}
	session.Dispatcher().Flush()

	surface := raster.NewSurface(opts.Width, opts.Height)
	surface.Clear(opts.Background)
	session.Draw(surface, raster.NewText(surface.Image()), opts.Width, opts.Height, opts.Foreground, spiral.AllClasses)

	log.Info("Snapshot", "frame rendered", map[string]interface{}{
		"redraws": stats.Redraws,
		"posted":  stats.Posted,
		"width":   opts.Width,
		"height":  opts.Height,
	})
	return surface.Image(), stats, nil
}

func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
