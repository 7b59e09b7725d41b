// Package mouse turns raw button presses into click events.
//
// The command core never detects double clicks itself: it receives a
// Click event first and, if a second press lands close enough and soon
// enough, a separate DoubleClick event afterwards. Tracker implements
// that promotion.
package mouse

import (
	"time"

	"github.com/treeline-io/treeline/internal/input"
)

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Distance returns the Manhattan distance (|dx| + |dy|) between two
// positions. Manhattan distance is cheap and close enough for click
// proximity checks.
func (p Position) Distance(other Position) int {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Config configures click detection.
type Config struct {
	// DoubleClickTime is the maximum time between presses for a
	// double click.
	DoubleClickTime time.Duration

	// DoubleClickDistance is the maximum Manhattan distance between
	// presses for a double click.
	DoubleClickDistance int
}

// DefaultConfig returns sensible click detection defaults.
func DefaultConfig() Config {
	return Config{
		DoubleClickTime:     400 * time.Millisecond,
		DoubleClickDistance: 4,
	}
}

// Tracker tracks press sequences for double-click detection.
// It is not safe for concurrent use; the capture layer owns it.
type Tracker struct {
	maxTime     time.Duration
	maxDistance int

	lastPos   Position
	lastTime  time.Time
	lastCount int
}

// NewTracker creates a click tracker with the given configuration.
func NewTracker(cfg Config) *Tracker {
	return &Tracker{
		maxTime:     cfg.DoubleClickTime,
		maxDistance: cfg.DoubleClickDistance,
	}
}

// Press records a primary-button press and returns the input event it
// produces: a Click for the first press of a sequence, a DoubleClick
// for the second. A third press starts a new sequence.
// A zero timestamp falls back to time.Now().
func (t *Tracker) Press(pos Position, timestamp time.Time) input.Event {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	if t.isPartOfSequence(pos, timestamp) {
		t.lastCount++
		if t.lastCount > 2 {
			t.lastCount = 1
		}
	} else {
		t.lastCount = 1
	}

	t.lastPos = pos
	t.lastTime = timestamp

	if t.lastCount == 2 {
		return input.NewDoubleClick(pos.X, pos.Y)
	}
	return input.NewClick(pos.X, pos.Y)
}

// isPartOfSequence checks if a press continues the current sequence.
func (t *Tracker) isPartOfSequence(pos Position, timestamp time.Time) bool {
	if t.lastCount == 0 || t.lastTime.IsZero() {
		return false
	}

	// Clock skew: a negative elapsed time starts a new sequence.
	elapsed := timestamp.Sub(t.lastTime)
	if elapsed < 0 || elapsed > t.maxTime {
		return false
	}

	return pos.Distance(t.lastPos) <= t.maxDistance
}

// Reset clears the click tracking state.
func (t *Tracker) Reset() {
	t.lastCount = 0
	t.lastTime = time.Time{}
	t.lastPos = Position{}
}
