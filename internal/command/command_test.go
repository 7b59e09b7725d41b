package command

import (
	"testing"

	"github.com/treeline-io/treeline/internal/input"
	"github.com/treeline-io/treeline/internal/input/key"
)

func keyEvent(k key.Key) input.Event {
	return input.NewKey(key.NewSpecialEvent(k, key.ModNone))
}

func runeEvent(r rune) input.Event {
	return input.NewKey(key.NewRuneEvent(r, key.ModNone))
}

func typeString(s *State, text string) {
	for _, r := range text {
		s.Apply(runeEvent(r))
	}
}

func TestNewState(t *testing.T) {
	s := New()
	if s.Raw() != "" {
		t.Errorf("new state raw = %q, want empty", s.Raw())
	}
	if s.Intent().Kind != IntentUnparsed {
		t.Errorf("new state intent = %v, want unparsed", s.Intent().Kind)
	}
}

func TestTypingPattern(t *testing.T) {
	s := New()

	s.Apply(runeEvent('a'))
	if in := s.Intent(); in.Kind != IntentPatternEdit || in.Pattern != "a" {
		t.Fatalf("after 'a': %v", in)
	}

	// '/' asks for a regex with no flags yet.
	s.Apply(runeEvent('/'))
	if in := s.Intent(); in.Kind != IntentPatternEditAsRegex || in.Pattern != "a" || in.Flags != "" {
		t.Fatalf("after 'a/': %v", in)
	}

	// Backspace round trip: intent is a function of the text, not of
	// history.
	s.Apply(keyEvent(key.KeyBackspace))
	if in := s.Intent(); in.Kind != IntentPatternEdit || in.Pattern != "a" {
		t.Fatalf("after backspace: %v", in)
	}
	if s.Raw() != "a" {
		t.Fatalf("raw = %q, want %q", s.Raw(), "a")
	}
}

func TestTypingInvocation(t *testing.T) {
	s := New()
	typeString(s, "abc:rm")

	if in := s.Intent(); in.Kind != IntentInvocationEdit || in.Invocation.Name != "rm" {
		t.Fatalf("after 'abc:rm': %v", in)
	}

	s.Apply(keyEvent(key.KeyEnter))
	if in := s.Intent(); in.Kind != IntentInvocationCommit || in.Invocation.Name != "rm" {
		t.Fatalf("after enter: %v", in)
	}
}

func TestEnterOnEmptyOpensSelection(t *testing.T) {
	s := New()
	s.Apply(keyEvent(key.KeyEnter))
	if in := s.Intent(); in.Kind != IntentOpenSelection {
		t.Fatalf("enter on empty = %v, want open-selection", in)
	}
}

func TestEnterOnPatternOpensSelection(t *testing.T) {
	s := New()
	typeString(s, "foo")
	s.Apply(keyEvent(key.KeyEnter))
	if in := s.Intent(); in.Kind != IntentOpenSelection {
		t.Fatalf("enter on pattern = %v, want open-selection", in)
	}
}

func TestBackspaceOnEmpty(t *testing.T) {
	s := New()
	s.Apply(keyEvent(key.KeyBackspace))
	if in := s.Intent(); in.Kind != IntentBack {
		t.Fatalf("backspace on empty = %v, want back", in)
	}
	if s.Raw() != "" {
		t.Fatalf("raw mutated to %q", s.Raw())
	}
}

func TestBackspaceMultibyte(t *testing.T) {
	s := New()
	typeString(s, "日本")
	s.Apply(keyEvent(key.KeyBackspace))
	if s.Raw() != "日" {
		t.Fatalf("raw = %q, want %q", s.Raw(), "日")
	}
}

func TestHelpTrigger(t *testing.T) {
	// '?' as the very first character: help, text untouched.
	s := New()
	s.Apply(runeEvent('?'))
	if in := s.Intent(); in.Kind != IntentShowHelp {
		t.Fatalf("'?' on empty = %v, want show-help", in)
	}
	if s.Raw() != "" {
		t.Fatalf("raw = %q, want empty", s.Raw())
	}

	// '?' while typing a pattern stays literal.
	s = New()
	typeString(s, "ab")
	s.Apply(runeEvent('?'))
	if in := s.Intent(); in.Kind != IntentPatternEdit || in.Pattern != "ab?" {
		t.Fatalf("'?' in pattern = %v, want pattern-edit(ab?)", in)
	}

	// '?' once the invocation has begun: help again, text untouched.
	s = New()
	typeString(s, "ab:verb")
	s.Apply(runeEvent('?'))
	if in := s.Intent(); in.Kind != IntentShowHelp {
		t.Fatalf("'?' in invocation = %v, want show-help", in)
	}
	if s.Raw() != "ab:verb" {
		t.Fatalf("raw = %q, want %q", s.Raw(), "ab:verb")
	}
}

func TestControlKeys(t *testing.T) {
	tests := []struct {
		name      string
		ev        input.Event
		want      IntentKind
		wantDelta int
	}{
		{"tab", keyEvent(key.KeyTab), IntentNext, 0},
		{"escape", keyEvent(key.KeyEscape), IntentBack, 0},
		{"up", keyEvent(key.KeyUp), IntentMoveSelection, -1},
		{"down", keyEvent(key.KeyDown), IntentMoveSelection, 1},
		{"page up", keyEvent(key.KeyPageUp), IntentScrollPage, -1},
		{"page down", keyEvent(key.KeyPageDown), IntentScrollPage, 1},
		{"ctrl+u", input.NewKey(key.NewRuneEvent('u', key.ModCtrl)), IntentScrollPage, -1},
		{"ctrl+d", input.NewKey(key.NewRuneEvent('d', key.ModCtrl)), IntentScrollPage, 1},
		{"ctrl+q", input.NewKey(key.NewRuneEvent('q', key.ModCtrl)), IntentQuit, 0},
		{"f5", keyEvent(key.KeyF5), IntentRefresh, 0},
		{"alt+enter", input.NewKey(key.NewSpecialEvent(key.KeyEnter, key.ModAlt)), IntentAltOpenSelection, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			typeString(s, "foo") // control keys ignore the current text
			s.Apply(tt.ev)
			in := s.Intent()
			if in.Kind != tt.want {
				t.Errorf("intent = %v, want %v", in.Kind, tt.want)
			}
			if in.Delta != tt.wantDelta {
				t.Errorf("delta = %d, want %d", in.Delta, tt.wantDelta)
			}
			if s.Raw() != "foo" {
				t.Errorf("raw = %q, control keys must not touch the text", s.Raw())
			}
		})
	}
}

func TestClickEvents(t *testing.T) {
	s := New()
	typeString(s, "foo")

	s.Apply(input.NewClick(4, 11))
	if in := s.Intent(); in.Kind != IntentClick || in.X != 4 || in.Y != 11 {
		t.Fatalf("click intent = %v", in)
	}

	s.Apply(input.NewDoubleClick(4, 11))
	if in := s.Intent(); in.Kind != IntentDoubleClick || in.X != 4 || in.Y != 11 {
		t.Fatalf("double-click intent = %v", in)
	}

	// Pointer events bypass the text entirely.
	if s.Raw() != "foo" {
		t.Fatalf("raw = %q, clicks must not touch the text", s.Raw())
	}
}

func TestUnrecognizedEventKeepsIntent(t *testing.T) {
	s := New()
	typeString(s, "foo")
	before := s.Intent()

	s.Apply(keyEvent(key.KeyHome))
	s.Apply(input.Event{})
	s.Apply(input.NewKey(key.NewRuneEvent('x', key.ModAlt)))

	if s.Intent() != before {
		t.Fatalf("intent changed from %v to %v on unrecognized events", before, s.Intent())
	}
	if s.Raw() != "foo" {
		t.Fatalf("raw = %q, want %q", s.Raw(), "foo")
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		raw  string
		want IntentKind
	}{
		// A ':' anywhere means "execute", like the user hitting enter.
		{"abc:verb arg", IntentInvocationCommit},
		{":q", IntentInvocationCommit},
		// No separator: still being edited.
		{"foo", IntentPatternEdit},
		{"foo/i", IntentPatternEditAsRegex},
		{"", IntentPatternEdit},
	}

	for _, tt := range tests {
		s := FromString(tt.raw)
		if s.Intent().Kind != tt.want {
			t.Errorf("FromString(%q) intent = %v, want %v", tt.raw, s.Intent().Kind, tt.want)
		}
		if s.Raw() != tt.raw {
			t.Errorf("FromString(%q) raw = %q", tt.raw, s.Raw())
		}
	}
}

func TestFromStringCommitPayload(t *testing.T) {
	s := FromString("abc:verb arg")
	in := s.Intent()
	if in.Invocation.Name != "verb" || in.Invocation.Args != "arg" {
		t.Fatalf("invocation = %+v", in.Invocation)
	}
}

func TestRebinding(t *testing.T) {
	b := DefaultBindings()
	b.Quit = key.MustParse("Ctrl+c")
	s := NewWithBindings(b)

	s.Apply(input.NewKey(key.MustParse("Ctrl+c")))
	if s.Intent().Kind != IntentQuit {
		t.Fatalf("rebound quit key did not quit: %v", s.Intent())
	}

	// The default quit combination is now unbound and ignored.
	s = NewWithBindings(b)
	typeString(s, "x")
	before := s.Intent()
	s.Apply(input.NewKey(key.NewRuneEvent('q', key.ModCtrl)))
	if s.Intent() != before {
		t.Fatalf("old quit binding still active: %v", s.Intent())
	}
}

// Adding and removing a trailing separator returns to the prior intent:
// the intent is a pure function of the current text.
func TestSeparatorRoundTrip(t *testing.T) {
	s := New()
	typeString(s, "foo")
	before := s.Intent()

	s.Apply(runeEvent(':'))
	if s.Intent().Kind != IntentInvocationEdit {
		t.Fatalf("after ':': %v", s.Intent())
	}

	s.Apply(keyEvent(key.KeyBackspace))
	if s.Intent() != before {
		t.Fatalf("round trip mismatch: %v != %v", s.Intent(), before)
	}
}
