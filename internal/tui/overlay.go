package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// placeOverlay draws fg over bg with its top-left corner at (x, y).
func placeOverlay(x, y int, fg, bg string) string {
	bgLines := strings.Split(bg, "\n")

	for i, fgLine := range strings.Split(fg, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		line := bgLines[row]

		var b strings.Builder
		if x > 0 {
			b.WriteString(FitToWidth(ansi.Truncate(line, x, ""), x))
		}
		b.WriteString(fgLine)
		if rest := x + ansi.StringWidth(fgLine); rest < ansi.StringWidth(line) {
			b.WriteString(ansi.TruncateLeft(line, rest, ""))
		}
		bgLines[row] = b.String()
	}

	return strings.Join(bgLines, "\n")
}

// centerOverlay draws fg in the middle of a width x height background.
func centerOverlay(fg, bg string, width, height int) string {
	x := (width - lipgloss.Width(fg)) / 2
	y := (height - lipgloss.Height(fg)) / 2
	return placeOverlay(x, y, fg, bg)
}
