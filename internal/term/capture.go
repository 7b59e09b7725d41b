// Package term owns the terminal: it initializes a tcell screen,
// captures raw key and mouse events, and translates them into the
// input events the command core consumes.
package term

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/treeline-io/treeline/internal/input"
	"github.com/treeline-io/treeline/internal/input/mouse"
	"github.com/treeline-io/treeline/internal/log"
)

// Options configures a capture session.
type Options struct {
	// QueueSize is the buffer size of the event channel.
	QueueSize int

	// Mouse configures double-click promotion.
	Mouse mouse.Config

	// OnResize is invoked from the polling goroutine whenever the
	// terminal is resized. May be nil.
	OnResize func(width, height int)

	// Logger receives capture diagnostics. Defaults to the process
	// logger.
	Logger *log.Logger
}

// Capture owns a tcell screen and delivers translated input events on
// a channel. Events are delivered serially; a single consumer reads
// the channel until it is closed.
type Capture struct {
	screen  tcell.Screen
	tracker *mouse.Tracker
	presses pressDetector
	logger  *log.Logger

	sessionID string
	onResize  func(width, height int)

	events chan input.Event

	mu      sync.Mutex
	started bool
	stopped bool
	wg      sync.WaitGroup
}

// New initializes the terminal and prepares a capture session.
// The screen is initialized with mouse reporting enabled; Stop (or
// Finish) must be called to restore the terminal.
func New(opts Options) (*Capture, error) {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 100
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Mouse == (mouse.Config{}) {
		opts.Mouse = mouse.DefaultConfig()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal screen: %w", err)
	}
	// Button events only: motion reporting would flood the queue and a
	// drag must not look like repeated presses.
	screen.EnableMouse(tcell.MouseButtonEvents)

	c := &Capture{
		screen:    screen,
		tracker:   mouse.NewTracker(opts.Mouse),
		logger:    opts.Logger.WithComponent("term"),
		sessionID: uuid.New().String(),
		onResize:  opts.OnResize,
		events:    make(chan input.Event, opts.QueueSize),
	}

	w, h := screen.Size()
	c.logger.Debug("capture session %s started (%dx%d)", c.sessionID, w, h)

	return c, nil
}

// SessionID returns the unique identifier of this capture session.
func (c *Capture) SessionID() string {
	return c.sessionID
}

// Screen exposes the underlying screen for rendering.
func (c *Capture) Screen() tcell.Screen {
	return c.screen
}

// Events returns the translated event channel. The channel is closed
// when the session stops.
func (c *Capture) Events() <-chan input.Event {
	return c.events
}

// Start launches the polling goroutine. It may be called once.
func (c *Capture) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started || c.stopped {
		return
	}
	c.started = true

	c.wg.Add(1)
	go c.pollLoop()
}

// Stop ends the session and restores the terminal. It is safe to call
// more than once.
func (c *Capture) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	started := c.started
	c.mu.Unlock()

	// Fini unblocks PollEvent, which makes the poll loop exit.
	c.screen.Fini()
	if started {
		c.wg.Wait()
	} else {
		close(c.events)
	}

	c.logger.Debug("capture session %s stopped", c.sessionID)
}

// pollLoop reads raw terminal events until the screen is finalized.
func (c *Capture) pollLoop() {
	defer c.wg.Done()
	defer close(c.events)

	for {
		raw := c.screen.PollEvent()
		if raw == nil {
			return
		}

		switch ev := raw.(type) {
		case *tcell.EventKey:
			out, ok := keyEventFor(ev)
			if !ok {
				continue
			}
			c.deliver(out)

		case *tcell.EventMouse:
			if !c.presses.press(ev) {
				continue
			}
			x, y := ev.Position()
			c.deliver(c.tracker.Press(mouse.Position{X: x, Y: y}, ev.When()))

		case *tcell.EventResize:
			w, h := ev.Size()
			c.screen.Sync()
			if c.onResize != nil {
				c.onResize(w, h)
			}
		}
	}
}

// deliver queues an event, dropping it if the consumer has fallen too
// far behind.
func (c *Capture) deliver(ev input.Event) {
	select {
	case c.events <- ev:
	default:
		c.logger.Warn("input queue full, dropping %s", ev.String())
	}
}
