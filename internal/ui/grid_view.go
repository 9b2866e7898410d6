package ui

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"practicestudio/internal/grid"
	"practicestudio/internal/module"
	"practicestudio/internal/ui/textutil"
)

// canvas composes rendered blocks at cell offsets. Blocks must not overlap;
// compaction guarantees that for grid cards.
type canvas struct {
	lines [][]segment
}

type segment struct {
	x    int
	text string
}

// draw places block with its top-left corner at column x, line y.
func (c *canvas) draw(x, y int, block string) {
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		for len(c.lines) <= row {
			c.lines = append(c.lines, nil)
		}
		c.lines[row] = append(c.lines[row], segment{x: x, text: line})
	}
}

// String renders the canvas, padding gaps with spaces.
func (c *canvas) String() string {
	var b strings.Builder
	for i, segs := range c.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		sort.Slice(segs, func(a, b int) bool { return segs[a].x < segs[b].x })
		cursor := 0
		for _, s := range segs {
			if s.x > cursor {
				b.WriteString(strings.Repeat(" ", s.x-cursor))
				cursor = s.x
			}
			b.WriteString(s.text)
			cursor += textutil.StyledWidth(s.text)
		}
	}
	return b.String()
}

// gridMetrics converts grid units to terminal cells.
type gridMetrics struct {
	colWidth  int
	rowHeight int
}

func newGridMetrics(width, columns, rowHeight int) gridMetrics {
	colWidth := 0
	if columns > 0 {
		colWidth = width / columns
	}
	return gridMetrics{colWidth: colWidth, rowHeight: rowHeight}
}

// cardState selects the border style of a card.
type cardState int

const (
	cardIdle cardState = iota
	cardFocused
	cardDraft
)

// renderCard draws one module: a bordered box of w x h cells whose title
// carries the descriptor icon and display name.
func renderCard(d module.Descriptor, id string, body module.Widget, w, h int, state cardState) string {
	if w < 2 || h < 2 {
		return ""
	}
	style := Styles.Card
	titleStyle := Styles.Normal.Bold(true)
	switch state {
	case cardFocused:
		style = Styles.CardFocused
		titleStyle = Styles.Selected
	case cardDraft:
		style = Styles.CardDraft
		titleStyle = Styles.Details.Bold(true)
	}
	innerW, innerH := w-2, h-2

	name := textutil.Truncate(d.Icon+" "+d.DisplayName, innerW)
	title := titleStyle.Render(name)
	if rest := innerW - textutil.Width(name) - 1; rest > 0 {
		title += " " + Styles.Dim.Render(textutil.Truncate(id, rest))
	}
	lines := []string{title}
	if body != nil && innerH > 1 {
		lines = append(lines, body.View(innerW, innerH-1))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	return style.
		Width(innerW).
		Height(innerH).
		MaxWidth(w).
		MaxHeight(h).
		Render(content)
}

// renderGrid lays out every placement of frame as a card.
func renderGrid(frame grid.Frame, m gridMetrics, card func(p grid.Placement, w, h int) string) string {
	if len(frame.Placements) == 0 {
		return Styles.Empty.Render("No modules. Press a to add one from the catalog.")
	}
	var c canvas
	for _, p := range frame.Placements {
		w, h := p.W*m.colWidth, p.H*m.rowHeight
		block := card(p, w, h)
		if block == "" {
			continue
		}
		c.draw(p.X*m.colWidth, p.Y*m.rowHeight, block)
	}
	return c.String()
}

// renderCatalogBar lists every kind with its icon; SPC a <n> adds the nth.
func renderCatalogBar(descriptors []module.Descriptor, width int) string {
	parts := make([]string, 0, len(descriptors))
	for i, d := range descriptors {
		parts = append(parts, Styles.Muted.Render(strconv.Itoa(i+1))+" "+d.Icon+" "+d.DisplayName)
	}
	bar := strings.Join(parts, Styles.Dim.Render("  │  "))
	if width > 0 && textutil.StyledWidth(bar) > width {
		bar = lipgloss.NewStyle().MaxWidth(width).Render(bar)
	}
	return bar
}
