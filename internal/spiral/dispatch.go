package spiral

import (
	"sync/atomic"

	"spiralscan/internal/logger"
)

// UpdateClass is the coalescing key for deferred redraw requests
type UpdateClass int

const (
	ClassTitle UpdateClass = iota
	ClassSubtitle
	ClassProgress
	ClassErrorMessage
	ClassSpiral
	numClasses
)

// ClassMask is a set of update classes
type ClassMask uint8

const AllClasses ClassMask = 1<<numClasses - 1

func (c UpdateClass) Mask() ClassMask {
	return 1 << c
}

func (c UpdateClass) String() string {
	switch c {
	case ClassTitle:
		return "title"
	case ClassSubtitle:
		return "subtitle"
	case ClassProgress:
		return "progress"
	case ClassErrorMessage:
		return "error_message"
	case ClassSpiral:
		return "spiral"
	default:
		return "unknown"
	}
}

// coalesces reports whether repeated requests collapse into the one
// already queued.
func (c UpdateClass) coalesces() bool {
	return c == ClassProgress || c == ClassSpiral
}

func (m ClassMask) Has(c UpdateClass) bool {
	return m&c.Mask() != 0
}

// Poster runs fn on the UI goroutine at some later point
type Poster func(fn func())

// RedrawFunc repaints the classes in dirty, reading current state
type RedrawFunc func(dirty ClassMask)

type hooks struct {
	post   Poster
	redraw RedrawFunc
}

const DefaultQueueSize = 100

// Dispatcher turns update requests from any goroutine into deferred
// redraws on the UI goroutine. Schedule never blocks.
type Dispatcher struct {
	queue    chan UpdateClass
	pending  [numClasses]atomic.Bool
	overflow atomic.Bool
	hooks    atomic.Pointer[hooks]
	logger   logger.Logger
}

func NewDispatcher(queueSize int, log logger.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Dispatcher{
		queue:  make(chan UpdateClass, queueSize),
		logger: log,
	}
}

// Attach installs the UI goroutine hooks. Either may be nil.
func (d *Dispatcher) Attach(post Poster, redraw RedrawFunc) {
	d.hooks.Store(&hooks{post: post, redraw: redraw})
}

// Pending reports whether a request of class c is waiting for a drain.
func (d *Dispatcher) Pending(c UpdateClass) bool {
	if c < 0 || c >= numClasses {
		return false
	}
	return d.pending[c].Load()
}

// Schedule requests a redraw of class c and reports whether a new message
// was queued.
func (d *Dispatcher) Schedule(c UpdateClass) bool {
	if c < 0 || c >= numClasses {
		return false
	}

	if c.coalesces() {
		if !d.pending[c].CompareAndSwap(false, true) {
			return false
		}
	} else {
		d.pending[c].Store(true)
	}

	select {
	case d.queue <- c:
	default:
		// a drain is still owed for the queued messages; make it a full one
		d.overflow.Store(true)
		d.logger.Debug("Dispatcher", "update queue full", map[string]interface{}{
			"class": c.String(),
		})
		return false
	}

	if h := d.hooks.Load(); h != nil && h.post != nil {
		h.post(d.drainAndRedraw)
	}
	return true
}

// Drain empties the queue on the UI goroutine and returns the dirty classes.
// Pending flags are cleared before the caller reads state, so requests made
// during the redraw queue again.
func (d *Dispatcher) Drain() ClassMask {
	var dirty ClassMask
loop:
	for {
		select {
		case c := <-d.queue:
			dirty |= c.Mask()
		default:
			break loop
		}
	}

	if d.overflow.Swap(false) {
		dirty = AllClasses
	}
	for c := UpdateClass(0); c < numClasses; c++ {
		if dirty.Has(c) {
			d.pending[c].Store(false)
		}
	}
	return dirty
}

func (d *Dispatcher) drainAndRedraw() {
	dirty := d.Drain()
	if dirty == 0 {
		return
	}
	if h := d.hooks.Load(); h != nil && h.redraw != nil {
		h.redraw(dirty)
	}
}

// Flush runs one drain-and-redraw cycle; for callers that own the UI loop.
func (d *Dispatcher) Flush() {
	d.drainAndRedraw()
}
