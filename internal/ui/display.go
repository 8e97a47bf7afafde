package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
)

// DefaultTermWidth is used when the terminal width cannot be detected.
const DefaultTermWidth = 100

// Display describes the output terminal.
type Display struct {
	Width int
	IsTTY bool
}

// DetectDisplay inspects f, usually os.Stdout.
func DetectDisplay(f *os.File) Display {
	fd := f.Fd()
	d := Display{Width: DefaultTermWidth, IsTTY: term.IsTerminal(fd)}
	if d.IsTTY {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			d.Width = w
		}
	}
	return d
}

// ContentWidth returns the width left after a left margin, never below 20.
func (d Display) ContentWidth(margin int) int {
	if w := d.Width - margin; w > 20 {
		return w
	}
	return 20
}
