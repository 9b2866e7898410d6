// Package textutil measures and trims text by terminal columns.
package textutil

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Width returns the number of terminal columns s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// StyledWidth is Width for strings that carry ANSI escapes.
func StyledWidth(s string) int {
	return lipgloss.Width(s)
}

// Truncate shortens plain text s to at most maxWidth columns, ending it with
// an ellipsis when anything was cut. Wide runes are never split.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if Width(s) <= maxWidth {
		return s
	}
	avail := maxWidth - Width(Ellipsis)
	if avail <= 0 {
		return Ellipsis
	}
	out := make([]rune, 0, avail)
	used := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if used+rw > avail {
			break
		}
		out = append(out, r)
		used += rw
	}
	return string(out) + Ellipsis
}
