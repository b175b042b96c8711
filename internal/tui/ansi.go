// ansi.go - width handling for styled strings

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FitToWidth pads or truncates s to exactly width columns.
// Color codes are preserved in both cases.
func FitToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	switch {
	case w > width:
		return ansi.Truncate(s, width, "")
	case w < width:
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// FitCellContent is FitToWidth for table cells: overflow ends in an ellipsis.
func FitCellContent(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		if width == 1 {
			return "…"
		}
		return ansi.Truncate(s, width-1, "") + "…"
	}
	return FitToWidth(s, width)
}

// wrap breaks plain text into lines no wider than width.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Wordwrap(s, width, "")
}
