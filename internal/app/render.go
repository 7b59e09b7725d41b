package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const prompt = "> "

// render draws the command line and the derived intent on the status
// row. The tree view proper renders above; this package only owns the
// input surface.
func (a *Application) render() {
	if a.capture == nil {
		return
	}

	screen := a.capture.Screen()
	screen.Clear()

	_, height := screen.Size()
	if height == 0 {
		return
	}

	inputRow := height - 1
	statusRow := height - 2

	col := drawText(screen, 0, inputRow, tcell.StyleDefault.Bold(true), prompt)
	col = drawText(screen, col, inputRow, tcell.StyleDefault, a.state.Raw())

	if statusRow >= 0 {
		style := tcell.StyleDefault.Foreground(tcell.ColorGray)
		drawText(screen, 0, statusRow, style, a.state.Intent().String())
	}

	screen.ShowCursor(col, inputRow)
	screen.Show()
}

// drawText writes a string starting at the given cell, advancing by
// display width so wide (CJK) runes occupy two columns. Returns the
// column after the last cell written.
func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) int {
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		screen.SetContent(col, y, r, nil, style)
		col += w
	}
	return col
}
