package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "?", "1"
//   - Special keys: "Enter", "Escape", "Tab", "F5"
//   - With modifiers: "Ctrl+Q", "Alt+Enter", "Ctrl+Shift+P"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if strings.Contains(spec, "+") && len([]rune(spec)) > 1 {
		return parseModified(spec)
	}

	return parseSingle(spec)
}

// parseModified parses "Ctrl+Q" style notation. All parts before the
// last are modifiers; the last part is the key.
func parseModified(spec string) (Event, error) {
	parts := strings.Split(spec, "+")

	// A trailing '+' means the key itself is the plus character,
	// e.g. "Ctrl++".
	keyPart := parts[len(parts)-1]
	modParts := parts[:len(parts)-1]
	if keyPart == "" && len(modParts) > 0 {
		keyPart = "+"
		modParts = modParts[:len(modParts)-1]
	}

	var mods Modifier
	for _, p := range modParts {
		p = strings.TrimSpace(p)
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	ev, err := parseSingle(strings.TrimSpace(keyPart))
	if err != nil {
		return Event{}, err
	}

	// Ctrl combinations are canonically lowercase: Ctrl+Q and Ctrl+q name
	// the same key press.
	if ev.Key == KeyRune && mods.HasCtrl() {
		ev.Rune = unicode.ToLower(ev.Rune)
	}
	ev.Modifiers = ev.Modifiers.With(mods)
	return ev, nil
}

// parseSingle parses a single character or key name.
func parseSingle(spec string) (Event, error) {
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if k := FromName(spec); k != KeyNone {
		return NewSpecialEvent(k, ModNone), nil
	}

	runes := []rune(spec)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, spec)
	}

	// No implicit Shift for uppercase: terminals report the shifted rune
	// with no modifier, so "A" must mean exactly that rune.
	return NewRuneEvent(runes[0], ModNone), nil
}

// MustParse parses a key specification and panics on error.
// Intended for package-level defaults known to be valid.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic(fmt.Sprintf("key: MustParse(%q): %v", spec, err))
	}
	return ev
}
