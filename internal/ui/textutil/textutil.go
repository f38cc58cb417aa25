// Package textutil measures and fits text to terminal columns.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// VisualWidth returns the number of terminal columns s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate fits s into maxWidth columns, ending with Ellipsis when cut.
// Wide runes are never split.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	avail := maxWidth - VisualWidth(Ellipsis)
	if avail < 0 {
		return Ellipsis
	}
	var b strings.Builder
	w := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > avail {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	return b.String() + Ellipsis
}

// PadRightVisual pads s with spaces to width columns, truncating if wider.
func PadRightVisual(s string, width int) string {
	w := VisualWidth(s)
	if w >= width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}
