package presenter

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Width bounds used when wrapping text for the terminal
const (
	DefaultWidth = 80
	MinWidth     = 20
)

// IsTerminal reports whether r or w is attached to a terminal
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of w, or DefaultWidth when w is not a
// terminal. The result is never below MinWidth.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return max(width, MinWidth)
}

// Wrap word-wraps text to a block width columns wide, indenting every line
// by indent spaces. Lines are padded to the full block width.
func Wrap(text string, width, indent int) string {
	return lipgloss.NewStyle().
		Width(max(width, MinWidth+indent)).
		PaddingLeft(indent).
		Render(text)
}
