// Package widgets holds the bodies of the practice-tool modules and the
// default catalog that registers them. The bodies are deliberately small;
// none of them does real audio work.
package widgets

import (
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"

	"practicestudio/internal/module"
)

// Catalog returns the entries for every module kind, in catalog order.
func Catalog() []module.Entry {
	return []module.Entry{
		{
			Descriptor: module.Descriptor{Kind: module.Metronome, DisplayName: "Metronome", Icon: "♩"},
			Render:     func() module.Widget { return NewMetronome() },
		},
		{
			Descriptor: module.Descriptor{Kind: module.Scales, DisplayName: "Key/Scale Guide", Icon: "♪"},
			Render:     func() module.Widget { return NewScales() },
		},
		{
			Descriptor: module.Descriptor{Kind: module.Timer, DisplayName: "Timer", Icon: "◷"},
			Render:     func() module.Widget { return NewTimer() },
		},
		{
			Descriptor: module.Descriptor{Kind: module.Tuner, DisplayName: "Tuner", Icon: "♫"},
			Render:     func() module.Widget { return NewTuner() },
		},
		{
			Descriptor: module.Descriptor{Kind: module.Chords, DisplayName: "Chord Book", Icon: "♬"},
			Render:     func() module.Widget { return NewChords() },
		},
		{
			Descriptor: module.Descriptor{Kind: module.Journal, DisplayName: "Practice Journal", Icon: "✎"},
			Render:     func() module.Widget { return NewJournal() },
		},
		{
			Descriptor: module.Descriptor{Kind: module.Regimen, DisplayName: "Practice Regimen", Icon: "☰"},
			Render:     func() module.Widget { return NewRegimen() },
		},
	}
}

// NewRegistry builds the default registry.
func NewRegistry() (*module.Registry, error) {
	return module.NewRegistry(Catalog())
}

// Capturer is implemented by widgets that temporarily want every key,
// such as the journal while its editor is focused.
type Capturer interface {
	Capturing() bool
}

var lastID int64

// nextID hands out widget ids so tick messages reach only their own widget.
func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

var (
	accent = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	muted  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	danger = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	picked = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

// fit centers content in a width x height box, cropping what does not fit.
func fit(content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		MaxWidth(width).
		MaxHeight(height).
		Render(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content))
}

// fitTop is fit with content anchored to the top-left corner.
func fitTop(content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		MaxWidth(width).
		MaxHeight(height).
		Render(lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, content))
}
