package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"golang.org/x/sync/errgroup"

	"spiralscan/internal/config"
	"spiralscan/internal/gui"
	"spiralscan/internal/logger"
	"spiralscan/internal/scan"
	"spiralscan/internal/shutdown"
	"spiralscan/internal/spiral"
)

const (
	AppName    = "Spiral Scan"
	AppID      = "org.spiralscan.reader"
	AppVersion = "1.0.0"

	MinWindowWidth  = 800
	MinWindowHeight = 600
)

// Application runs the read window with a simulated scan in the background
type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	guiManager *gui.Manager
	session    *spiral.Session
	simulator  *scan.Simulator
	shutdown   *shutdown.Manager
	logger     logger.Logger
	group      *errgroup.Group
	groupCtx   context.Context
	closed     atomic.Bool
}

func NewApplication(ctx context.Context, cfg *config.Configuration, log logger.Logger) (*Application, error) {
	session, err := NewSession(cfg, log)
	if err != nil {
		return nil, err
	}

	fyneApp := fyneapp.NewWithID(AppID)
	fyneapp.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})

	window := fyneApp.NewWindow(AppName)
	diameter := float32(session.Geometry().Diameter)
	window.Resize(fyne.NewSize(
		max(MinWindowWidth, diameter+400),
		max(MinWindowHeight, diameter+120),
	))
	window.CenterOnScreen()
	window.SetMaster()

	guiManager := gui.NewManager(window, session, cfg.RefreshHz, log)
	window.SetContent(guiManager.GetMainContainer())

	shutdownManager := shutdown.NewManager(ctx, log, 5*time.Second)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		guiManager: guiManager,
		session:    session,
		simulator:  scan.NewSimulator(SimulatorConfig(cfg), session, log),
		shutdown:   shutdownManager,
		logger:     log,
	}

	shutdownManager.Register("window", shutdown.Func(func() {
		if !application.closed.Load() {
			fyne.Do(fyneApp.Quit)
		}
	}))
	shutdownManager.Register("gui", guiManager)

	application.setupLifecycle()
	guiManager.SetHeadline(fmt.Sprintf("Simulated medium: %d sectors", cfg.Sectors))

	log.Info("Application", "initialized", map[string]interface{}{
		"version":  AppVersion,
		"segments": cfg.SegmentCount,
		"sectors":  cfg.Sectors,
	})

	return application, nil
}

// NewSession builds the spiral session described by cfg.
func NewSession(cfg *config.Configuration, log logger.Logger) (*spiral.Session, error) {
	session, err := spiral.New(cfg.StartRadius, cfg.SegmentSize, cfg.SegmentCount,
		spiral.WithEraseWindow(cfg.EraseWindow),
		spiral.WithQueueSize(cfg.QueueSize),
		spiral.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create spiral: %w", err)
	}
	session.SetLegend(scan.Legend())
	return session, nil
}

func SimulatorConfig(cfg *config.Configuration) scan.Config {
	return scan.Config{
		Sectors:         cfg.Sectors,
		Segments:        cfg.SegmentCount,
		MinRequired:     cfg.MinRequired,
		ReadDelay:       time.Duration(cfg.ReadDelayMs) * time.Millisecond,
		UnreadableRatio: cfg.UnreadableRatio,
		Seed:            cfg.Seed,
	}
}

// setupLifecycle starts the workers once the UI loop is running, and stops
// them when the window closes.
func (a *Application) setupLifecycle() {
	a.group, a.groupCtx = errgroup.WithContext(a.shutdown.Context())

	a.fyneApp.Lifecycle().SetOnStarted(func() {
		a.group.Go(func() error {
			return a.guiManager.Run(a.groupCtx)
		})
		a.group.Go(func() error {
			_, err := a.simulator.Run(a.groupCtx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	})

	a.window.SetOnClosed(func() {
		a.closed.Store(true)
		a.logger.Info("Application", "window closed", nil)
		go a.shutdown.Shutdown()
	})
}

// Run blocks until the window is closed or a signal arrives.
func (a *Application) Run() error {
	a.shutdown.Listen()
	a.window.ShowAndRun()

	a.shutdown.Shutdown()
	if err := a.group.Wait(); err != nil {
		a.logger.Error("Application", err, nil)
		return err
	}
	a.logger.Info("Application", "terminated", nil)
	return nil
}
