package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// spliceOverlay writes the overlay lines over view starting at column x,
// line y. Styling on both sides of the overlay is preserved.
func spliceOverlay(view string, overlayLines []string, x int, y int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	for len(viewLines) < y+len(overlayLines) {
		viewLines = append(viewLines, "")
	}

	for i, overlayLine := range overlayLines {
		row := y + i
		if row < 0 {
			continue
		}
		line := viewLines[row]
		lineWidth := ansi.StringWidth(line)

		var b strings.Builder
		if x > 0 {
			prefix := ansi.Truncate(line, x, "")
			b.WriteString(prefix)
			if w := ansi.StringWidth(prefix); w < x {
				b.WriteString(strings.Repeat(" ", x-w))
			}
		}
		b.WriteString("\x1b[0m")
		b.WriteString(overlayLine)
		b.WriteString("\x1b[0m")

		end := x + ansi.StringWidth(overlayLine)
		if end < lineWidth {
			b.WriteString(ansi.TruncateLeft(line, end, ""))
		}
		viewLines[row] = b.String()
	}
	return strings.Join(viewLines, "\n")
}

// centerOffset returns the position that centers a block of the given size
// on a screen. Unknown screen sizes anchor the block at the top left.
func centerOffset(screen int, size int) int {
	if screen <= size {
		return 0
	}
	return (screen - size) / 2
}
