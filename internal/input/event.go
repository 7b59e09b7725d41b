// Package input defines the events delivered to the command core: key
// presses and mouse clicks. A double click is always delivered as a
// separate event following a single click at the same position; the
// promotion is done by the mouse package, not by consumers.
package input

import (
	"fmt"

	"github.com/treeline-io/treeline/internal/input/key"
)

// EventType identifies the kind of input event.
type EventType uint8

const (
	// EventNone indicates no event.
	EventNone EventType = iota
	// EventKey is a keyboard event.
	EventKey
	// EventClick is a single mouse click.
	EventClick
	// EventDoubleClick is a double mouse click.
	EventDoubleClick
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventClick:
		return "click"
	case EventDoubleClick:
		return "double-click"
	default:
		return "none"
	}
}

// Event is a single input event.
type Event struct {
	// Type identifies which variant this event is.
	Type EventType

	// X, Y are the screen coordinates for click events.
	X int
	Y int

	// Key is the key press for EventKey events.
	Key key.Event
}

// NewKey creates a keyboard event.
func NewKey(ev key.Event) Event {
	return Event{Type: EventKey, Key: ev}
}

// NewClick creates a single-click event at the given position.
func NewClick(x, y int) Event {
	return Event{Type: EventClick, X: x, Y: y}
}

// NewDoubleClick creates a double-click event at the given position.
func NewDoubleClick(x, y int) Event {
	return Event{Type: EventDoubleClick, X: x, Y: y}
}

// String returns a readable representation for logging.
func (e Event) String() string {
	switch e.Type {
	case EventKey:
		return "key(" + e.Key.String() + ")"
	case EventClick:
		return fmt.Sprintf("click(%d,%d)", e.X, e.Y)
	case EventDoubleClick:
		return fmt.Sprintf("double-click(%d,%d)", e.X, e.Y)
	default:
		return "none"
	}
}
