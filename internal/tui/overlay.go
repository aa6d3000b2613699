package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// centerOver draws fg over bg, centred within the first height rows of a width-wide view.
func centerOver(bg, fg string, width, height int) string {
	fgRows := splitRows(fg)
	x := max((width-widest(fgRows))/2, 0)
	y := max((height-len(fgRows))/2, 0)
	return composite(bg, fgRows, x, y, width, height)
}

// composite writes fgRows into bg starting at cell (x, y). Rows at or past height are
// left untouched.
func composite(bg string, fgRows []string, x, y, width, height int) string {
	bgRows := splitRows(bg)
	fgWidth := widest(fgRows)
	for i, fgRow := range fgRows {
		r := y + i
		if r < 0 || r >= len(bgRows) || r >= height {
			continue
		}
		bgRows[r] = splice(padRight(bgRows[r], width), padRight(fgRow, fgWidth), x)
	}
	return strings.Join(bgRows, "\n")
}

// splice replaces the cells of row from col onwards with seg, keeping styled text on
// both sides intact.
func splice(row, seg string, col int) string {
	left := padRight(ansi.Truncate(row, col, ""), col)
	end := col + ansi.StringWidth(seg)
	if ansi.StringWidth(row) <= end {
		return left + seg
	}
	return left + seg + ansi.TruncateLeft(row, end, "")
}

func splitRows(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

func widest(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, ansi.StringWidth(line))
	}
	return w
}

// padRight pads s with spaces to width cells. Wider strings are returned as is.
func padRight(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// truncate cuts s to width cells with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
