// Package command turns raw user input into a structured intent.
//
// The raw text a user types decomposes into a pattern, optional regex
// flags, and an optional verb invocation; together with the last input
// event this yields exactly one Intent value. Nothing here consults
// application state: whether a verb exists, or what the pattern would
// match, is decided elsewhere.
package command

import (
	"strings"

	"github.com/treeline-io/treeline/internal/input"
	"github.com/treeline-io/treeline/internal/input/key"
)

// Bindings holds the rebindable control keys. The rest of the key rules
// (tab, enter, arrows, escape, backspace, page keys) are fixed.
type Bindings struct {
	// Quit exits the application.
	Quit key.Event

	// Refresh reloads the displayed tree.
	Refresh key.Event

	// AltOpen opens the selection the alternate way.
	AltOpen key.Event
}

// DefaultBindings returns the standard control keys.
func DefaultBindings() Bindings {
	return Bindings{
		Quit:    key.NewRuneEvent('q', key.ModCtrl),
		Refresh: key.NewSpecialEvent(key.KeyF5, key.ModNone),
		AltOpen: key.NewSpecialEvent(key.KeyEnter, key.ModAlt),
	}
}

// State owns the raw input text and the intent derived from it.
// It has exactly one owner and is not safe for concurrent use; events
// must be applied serially.
type State struct {
	raw      string
	parts    Parts
	intent   Intent
	bindings Bindings
}

// New creates an empty command state: no text, intent Unparsed.
func New() *State {
	return NewWithBindings(DefaultBindings())
}

// NewWithBindings creates an empty command state with custom control
// key bindings.
func NewWithBindings(b Bindings) *State {
	return &State{bindings: b}
}

// FromString builds a command state from a complete string, as supplied
// non-interactively (a startup argument or a command file). This is not
// the interactive code path: a ':' anywhere in the string, even at the
// end, means the command is to be executed, as if the user had hit
// enter after typing it.
func FromString(raw string) *State {
	parts := decomposeParts(raw)
	return &State{
		raw:      raw,
		parts:    parts,
		intent:   deriveIntent(parts, strings.Contains(raw, ":")),
		bindings: DefaultBindings(),
	}
}

// Raw returns the current input text, for display.
func (s *State) Raw() string {
	return s.raw
}

// Intent returns the current derived intent.
func (s *State) Intent() Intent {
	return s.intent
}

// SetBindings replaces the control key bindings. Takes effect for
// subsequent events; the current intent is untouched.
func (s *State) SetBindings(b Bindings) {
	s.bindings = b
}

// Apply consumes one input event, updating the raw text where
// appropriate and recomputing the intent. Unrecognized events leave the
// state, intent included, unchanged. It never fails.
func (s *State) Apply(ev input.Event) {
	switch ev.Type {
	case input.EventClick:
		s.intent = Intent{Kind: IntentClick, X: ev.X, Y: ev.Y}
	case input.EventDoubleClick:
		s.intent = Intent{Kind: IntentDoubleClick, X: ev.X, Y: ev.Y}
	case input.EventKey:
		s.applyKey(ev.Key)
	}
}

// applyKey handles a single key press.
func (s *State) applyKey(k key.Event) {
	switch {
	case k.Equals(s.bindings.Quit):
		s.intent = Intent{Kind: IntentQuit}

	case k.Equals(s.bindings.Refresh):
		s.intent = Intent{Kind: IntentRefresh}

	case k.Equals(s.bindings.AltOpen):
		s.intent = Intent{Kind: IntentAltOpenSelection}

	case k.Key == key.KeyTab && k.Modifiers.IsEmpty():
		s.intent = Intent{Kind: IntentNext}

	case k.Key == key.KeyEnter && k.Modifiers.IsEmpty():
		s.intent = deriveIntent(s.parts, true)

	case k.Key == key.KeyUp && k.Modifiers.IsEmpty():
		s.intent = Intent{Kind: IntentMoveSelection, Delta: -1}

	case k.Key == key.KeyDown && k.Modifiers.IsEmpty():
		s.intent = Intent{Kind: IntentMoveSelection, Delta: 1}

	case k.Key == key.KeyPageUp && k.Modifiers.IsEmpty(),
		k.Equals(key.NewRuneEvent('u', key.ModCtrl)):
		s.intent = Intent{Kind: IntentScrollPage, Delta: -1}

	case k.Key == key.KeyPageDown && k.Modifiers.IsEmpty(),
		k.Equals(key.NewRuneEvent('d', key.ModCtrl)):
		s.intent = Intent{Kind: IntentScrollPage, Delta: 1}

	case k.Key == key.KeyEscape && k.Modifiers.IsEmpty():
		s.intent = Intent{Kind: IntentBack}

	case k.Key == key.KeyBackspace && k.Modifiers.IsEmpty():
		if s.raw == "" {
			s.intent = Intent{Kind: IntentBack}
		} else {
			runes := []rune(s.raw)
			s.setRaw(string(runes[:len(runes)-1]))
		}

	case k.IsPlainRune():
		// '?' opens help when it is the first character or once the
		// verb invocation has begun; anywhere else it is a literal
		// pattern character.
		if k.Rune == '?' && (s.raw == "" || s.parts.HasVerb()) {
			s.intent = Intent{Kind: IntentShowHelp}
			return
		}
		s.setRaw(s.raw + string(k.Rune))
	}
}

// setRaw replaces the raw text and recomputes decomposition and intent.
func (s *State) setRaw(raw string) {
	s.raw = raw
	s.parts = decomposeParts(raw)
	s.intent = deriveIntent(s.parts, false)
}
