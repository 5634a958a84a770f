package gui

import (
	"context"

	"fyne.io/fyne/v2"

	"spiralscan/internal/gui/sync"
	"spiralscan/internal/gui/widgets"
	"spiralscan/internal/logger"
	"spiralscan/internal/spiral"
)

// Manager owns the read window page: headline plus the spiral drawing area
type Manager struct {
	window      fyne.Window
	logger      logger.Logger
	display     *widgets.SpiralDisplay
	coordinator *sync.Coordinator
}

func NewManager(window fyne.Window, session *spiral.Session, refreshHz int, log logger.Logger) *Manager {
	display := widgets.NewSpiralDisplay(session)
	coordinator := sync.NewCoordinator(session, fyne.Do, refreshHz, log)
	coordinator.SetTarget(display)

	manager := &Manager{
		window:      window,
		logger:      log,
		display:     display,
		coordinator: coordinator,
	}

	log.Info("GUIManager", "spiral page created", map[string]interface{}{
		"segments":   session.Geometry().Len(),
		"diameter":   session.Geometry().Diameter,
		"refresh_hz": refreshHz,
	})

	return manager
}

func (m *Manager) GetMainContainer() fyne.CanvasObject {
	return m.display.GetContainer()
}

// SetHeadline is safe from any goroutine.
func (m *Manager) SetHeadline(text string) {
	fyne.Do(func() {
		m.display.SetHeadline(text)
	})
}

// Run samples the cursor until ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	return m.coordinator.Run(ctx)
}

func (m *Manager) Shutdown() {
	m.coordinator.Stop()
	m.logger.Debug("GUIManager", "cursor sampling stopped", nil)
}
