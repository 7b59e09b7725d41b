package command

import (
	"fmt"

	"github.com/treeline-io/treeline/internal/command/verb"
)

// IntentKind identifies which intent the user's last event expressed.
type IntentKind uint8

const (
	// IntentUnparsed is the initial state, before any event.
	IntentUnparsed IntentKind = iota
	// IntentMoveSelection moves the selection up (-1) or down (+1).
	IntentMoveSelection
	// IntentScrollPage scrolls by whole pages, not lines.
	IntentScrollPage
	// IntentOpenSelection opens the selected entry.
	IntentOpenSelection
	// IntentAltOpenSelection opens the selected entry the alternate way.
	IntentAltOpenSelection
	// IntentInvocationEdit is a verb invocation still being typed.
	IntentInvocationEdit
	// IntentInvocationCommit is a verb invocation after the user hit enter.
	IntentInvocationCommit
	// IntentPatternEdit is a fuzzy pattern being edited.
	IntentPatternEdit
	// IntentPatternEditAsRegex is a regex being edited (core and flags).
	IntentPatternEditAsRegex
	// IntentBack returns to the previous state or clears the pattern.
	IntentBack
	// IntentNext goes to the next matching entry.
	IntentNext
	// IntentRefresh reloads the displayed tree.
	IntentRefresh
	// IntentShowHelp opens the help screen.
	IntentShowHelp
	// IntentQuit exits the application.
	IntentQuit
	// IntentClick is a mouse click.
	IntentClick
	// IntentDoubleClick always follows a click at the same position.
	IntentDoubleClick
)

// String returns the kind name.
func (k IntentKind) String() string {
	switch k {
	case IntentUnparsed:
		return "unparsed"
	case IntentMoveSelection:
		return "move-selection"
	case IntentScrollPage:
		return "scroll-page"
	case IntentOpenSelection:
		return "open-selection"
	case IntentAltOpenSelection:
		return "alt-open-selection"
	case IntentInvocationEdit:
		return "invocation-edit"
	case IntentInvocationCommit:
		return "invocation-commit"
	case IntentPatternEdit:
		return "pattern-edit"
	case IntentPatternEditAsRegex:
		return "pattern-edit-regex"
	case IntentBack:
		return "back"
	case IntentNext:
		return "next"
	case IntentRefresh:
		return "refresh"
	case IntentShowHelp:
		return "show-help"
	case IntentQuit:
		return "quit"
	case IntentClick:
		return "click"
	case IntentDoubleClick:
		return "double-click"
	default:
		return fmt.Sprintf("intent(%d)", k)
	}
}

// Intent is the discrete meaning derived from the current input.
// Only the fields relevant to the Kind are set; values are always
// recomputed whole, never patched field by field.
type Intent struct {
	Kind IntentKind

	// Delta is the signed step for MoveSelection (±1 entry) and
	// ScrollPage (±1 page).
	Delta int

	// X, Y are the coordinates for Click and DoubleClick.
	X int
	Y int

	// Pattern and Flags carry the text for PatternEdit (pattern only)
	// and PatternEditAsRegex (pattern core and flags).
	Pattern string
	Flags   string

	// Invocation carries the verb call for InvocationEdit and
	// InvocationCommit. It is stored opaquely.
	Invocation verb.Invocation
}

// deriveIntent computes the intent from a decomposition and whether the
// triggering event finished the input (enter, or a batch command with a
// separator). Pure: same inputs, same intent.
//
// An in-progress invocation wins over any pattern interpretation; once
// the separator is typed the pattern is no longer the edit target.
func deriveIntent(parts Parts, finished bool) Intent {
	switch {
	case parts.Verb != nil:
		kind := IntentInvocationEdit
		if finished {
			kind = IntentInvocationCommit
		}
		return Intent{Kind: kind, Invocation: *parts.Verb}
	case finished:
		return Intent{Kind: IntentOpenSelection}
	case parts.Pattern != nil:
		if parts.RegexFlags != nil {
			return Intent{
				Kind:    IntentPatternEditAsRegex,
				Pattern: *parts.Pattern,
				Flags:   *parts.RegexFlags,
			}
		}
		return Intent{Kind: IntentPatternEdit, Pattern: *parts.Pattern}
	default:
		return Intent{Kind: IntentPatternEdit}
	}
}

// String renders the intent with its payload, for logging and the
// status line.
func (in Intent) String() string {
	switch in.Kind {
	case IntentMoveSelection, IntentScrollPage:
		return fmt.Sprintf("%s(%+d)", in.Kind, in.Delta)
	case IntentClick, IntentDoubleClick:
		return fmt.Sprintf("%s(%d,%d)", in.Kind, in.X, in.Y)
	case IntentPatternEdit:
		return fmt.Sprintf("%s(%q)", in.Kind, in.Pattern)
	case IntentPatternEditAsRegex:
		return fmt.Sprintf("%s(%q, %q)", in.Kind, in.Pattern, in.Flags)
	case IntentInvocationEdit, IntentInvocationCommit:
		return fmt.Sprintf("%s(%q)", in.Kind, in.Invocation.String())
	default:
		return in.Kind.String()
	}
}
