package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/treeline-io/treeline/internal/input"
	"github.com/treeline-io/treeline/internal/input/key"
)

// translateKey converts a tcell key event into a key.Event.
// tcell reports Ctrl+letter as a dedicated key code with no rune; those
// are normalized to rune events with ModCtrl so that one representation
// covers both.
func translateKey(ev *tcell.EventKey) key.Event {
	mods := translateMods(ev.Modifiers())

	if k, ok := specialKeys[ev.Key()]; ok {
		return key.NewSpecialEvent(k, mods)
	}

	if ev.Key() == tcell.KeyRune {
		return key.NewRuneEvent(ev.Rune(), mods)
	}

	// Ctrl+letter arrives as KeyCtrlA..KeyCtrlZ.
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		r := rune('a' + (ev.Key() - tcell.KeyCtrlA))
		return key.NewRuneEvent(r, mods.With(key.ModCtrl))
	}

	return key.Event{}
}

// specialKeys maps tcell special keys to ours.
//
// tcell overlays KeyTab on KeyCtrlI, KeyEnter on KeyCtrlM, and both
// backspace codes are mapped, so map lookup must run before the
// Ctrl-letter range check.
var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// translateMods converts a tcell modifier mask.
func translateMods(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}

// pressDetector reduces the raw mouse event stream to primary button
// presses. Terminals report the held button mask on every mouse event,
// so a drag or release while Button1 is down must not count as a new
// press.
type pressDetector struct {
	prev tcell.ButtonMask
}

// press reports whether ev is a ButtonNone-to-Button1 transition of the
// primary button.
func (d *pressDetector) press(ev *tcell.EventMouse) bool {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && d.prev&tcell.Button1 == 0
	d.prev = buttons
	return pressed
}

// keyEventFor wraps a translated tcell key event for delivery, or
// returns false for keys this application does not model.
func keyEventFor(ev *tcell.EventKey) (input.Event, bool) {
	k := translateKey(ev)
	if k.Key == key.KeyNone {
		return input.Event{}, false
	}
	return input.NewKey(k), true
}
