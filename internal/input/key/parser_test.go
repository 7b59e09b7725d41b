package key

import (
	"errors"
	"testing"
)

func TestParseSingleCharacter(t *testing.T) {
	tests := []struct {
		spec     string
		wantRune rune
		wantMod  Modifier
	}{
		{"a", 'a', ModNone},
		{"A", 'A', ModNone},
		{"1", '1', ModNone},
		{"?", '?', ModNone},
		{"/", '/', ModNone},
	}

	for _, tt := range tests {
		event, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if event.Key != KeyRune {
			t.Errorf("Parse(%q) key = %v, want KeyRune", tt.spec, event.Key)
		}
		if event.Rune != tt.wantRune {
			t.Errorf("Parse(%q) rune = %q, want %q", tt.spec, event.Rune, tt.wantRune)
		}
		if event.Modifiers != tt.wantMod {
			t.Errorf("Parse(%q) modifiers = %v, want %v", tt.spec, event.Modifiers, tt.wantMod)
		}
	}
}

func TestParseSpecialKeys(t *testing.T) {
	tests := []struct {
		spec    string
		wantKey Key
	}{
		{"Enter", KeyEnter},
		{"enter", KeyEnter},
		{"Escape", KeyEscape},
		{"Tab", KeyTab},
		{"Backspace", KeyBackspace},
		{"Up", KeyUp},
		{"Down", KeyDown},
		{"PageUp", KeyPageUp},
		{"PageDown", KeyPageDown},
		{"F5", KeyF5},
		{"F12", KeyF12},
	}

	for _, tt := range tests {
		event, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if event.Key != tt.wantKey {
			t.Errorf("Parse(%q) key = %v, want %v", tt.spec, event.Key, tt.wantKey)
		}
	}
}

func TestParseModified(t *testing.T) {
	tests := []struct {
		spec     string
		wantKey  Key
		wantRune rune
		wantMod  Modifier
	}{
		{"Ctrl+q", KeyRune, 'q', ModCtrl},
		{"Ctrl+Q", KeyRune, 'q', ModCtrl}, // Ctrl combinations are lowercase
		{"Alt+Enter", KeyEnter, 0, ModAlt},
		{"Ctrl+Shift+p", KeyRune, 'p', ModCtrl | ModShift},
		{"Alt+f", KeyRune, 'f', ModAlt},
		{"Ctrl+u", KeyRune, 'u', ModCtrl},
		{"Meta+F5", KeyF5, 0, ModMeta},
	}

	for _, tt := range tests {
		event, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if event.Key != tt.wantKey {
			t.Errorf("Parse(%q) key = %v, want %v", tt.spec, event.Key, tt.wantKey)
		}
		if tt.wantKey == KeyRune && event.Rune != tt.wantRune {
			t.Errorf("Parse(%q) rune = %q, want %q", tt.spec, event.Rune, tt.wantRune)
		}
		if event.Modifiers != tt.wantMod {
			t.Errorf("Parse(%q) modifiers = %v, want %v", tt.spec, event.Modifiers, tt.wantMod)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("Parse(\"\") error = %v, want ErrEmptySpec", err)
	}
	if _, err := Parse("Bogus+x"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("Parse(\"Bogus+x\") error = %v, want ErrInvalidSpec", err)
	}
	if _, err := Parse("notakey"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("Parse(\"notakey\") error = %v, want ErrInvalidSpec", err)
	}
}

// An uppercase binding must match what terminals actually deliver: the
// shifted rune with no modifier bits.
func TestParseUppercaseMatchesDeliveredRune(t *testing.T) {
	if !MustParse("A").Equals(NewRuneEvent('A', ModNone)) {
		t.Errorf("MustParse(\"A\") = %v, want bare 'A'", MustParse("A"))
	}
}

func TestEventEquals(t *testing.T) {
	a := NewRuneEvent('q', ModCtrl)
	b := MustParse("Ctrl+q")
	if !a.Equals(b) {
		t.Errorf("%v should equal %v", a, b)
	}
	if a.Equals(NewRuneEvent('q', ModNone)) {
		t.Error("events with different modifiers should not be equal")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{NewRuneEvent('a', ModNone), "a"},
		{NewRuneEvent('q', ModCtrl), "Ctrl+q"},
		{NewRuneEvent(' ', ModNone), "Space"},
		{NewSpecialEvent(KeyEnter, ModAlt), "Alt+Enter"},
		{NewSpecialEvent(KeyF5, ModNone), "F5"},
	}

	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("Event.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestIsPlainRune(t *testing.T) {
	if !NewRuneEvent('a', ModNone).IsPlainRune() {
		t.Error("'a' should be a plain rune")
	}
	if !NewRuneEvent('A', ModShift).IsPlainRune() {
		t.Error("shifted character should still be plain")
	}
	if NewRuneEvent('q', ModCtrl).IsPlainRune() {
		t.Error("Ctrl+q should not be plain")
	}
	if NewSpecialEvent(KeyEnter, ModNone).IsPlainRune() {
		t.Error("Enter should not be a plain rune")
	}
}
