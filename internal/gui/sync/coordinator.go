package sync

import (
	"context"
	"time"

	"spiralscan/internal/logger"
	"spiralscan/internal/spiral"
)

// Refresher repaints the spiral; it is only called on the UI goroutine
type Refresher interface {
	Refresh()
}

// Coordinator connects a session to the UI goroutine: dispatcher callbacks
// are posted through post, and the cursor is sampled once per frame.
type Coordinator struct {
	session  *spiral.Session
	post     spiral.Poster
	target   Refresher
	interval time.Duration
	logger   logger.Logger
	done     context.Context
	stop     context.CancelFunc
	redraws  int
}

func NewCoordinator(session *spiral.Session, post spiral.Poster, refreshHz int, log logger.Logger) *Coordinator {
	if refreshHz <= 0 {
		refreshHz = 60
	}
	if log == nil {
		log = logger.Nop{}
	}
	done, stop := context.WithCancel(context.Background())
	return &Coordinator{
		session:  session,
		post:     post,
		interval: time.Second / time.Duration(refreshHz),
		logger:   log,
		done:     done,
		stop:     stop,
	}
}

// SetTarget attaches the repaint target and starts accepting redraws.
func (c *Coordinator) SetTarget(target Refresher) {
	c.target = target
	c.session.Attach(c.post, c.redraw)
}

func (c *Coordinator) redraw(dirty spiral.ClassMask) {
	c.redraws++
	if c.target != nil {
		c.target.Refresh()
	}
}

// Redraws counts repaints requested so far; UI goroutine only.
func (c *Coordinator) Redraws() int {
	return c.redraws
}

func (c *Coordinator) sampleCursor() {
	if c.session.SampleCursor() {
		c.redraw(spiral.ClassSpiral.Mask())
	}
}

// Run samples the cursor at the refresh rate until ctx ends or Stop is called.
func (c *Coordinator) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Debug("Coordinator", "cursor sampling started", map[string]interface{}{
		"interval_ms": c.interval.Milliseconds(),
	})

	for {
		select {
		case <-ticker.C:
			c.post(c.sampleCursor)
		case <-c.done.Done():
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

func (c *Coordinator) Stop() {
	c.stop()
}

// Shutdown lets the shutdown manager stop sampling.
func (c *Coordinator) Shutdown() {
	c.Stop()
}
