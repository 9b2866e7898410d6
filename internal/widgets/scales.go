package widgets

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"practicestudio/internal/module"
)

var scaleTabs = []struct {
	name    string
	pattern string
	example string
}{
	{name: "Major", pattern: "W W H W W W H", example: "C D E F G A B"},
	{name: "Minor", pattern: "W H W W H W W", example: "A B C D E F G"},
}

// Scales is the key/scale guide with one tab per scale family.
// Keys: [ and ] switch tabs.
type Scales struct {
	Tab int
}

// Ensure Scales implements module.Widget.
var _ module.Widget = (*Scales)(nil)

// NewScales opens on the major tab.
func NewScales() *Scales {
	return &Scales{}
}

// Init implements module.Widget.
func (s *Scales) Init() tea.Cmd {
	return nil
}

// Update implements module.Widget.
func (s *Scales) Update(msg tea.Msg) (module.Widget, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "[":
			s.Tab = (s.Tab + len(scaleTabs) - 1) % len(scaleTabs)
		case "]":
			s.Tab = (s.Tab + 1) % len(scaleTabs)
		}
	}
	return s, nil
}

// View implements module.Widget.
func (s *Scales) View(width, height int) string {
	tabs := make([]string, len(scaleTabs))
	for i, t := range scaleTabs {
		if i == s.Tab {
			tabs[i] = picked.Render("[" + t.name + "]")
		} else {
			tabs[i] = muted.Render(" " + t.name + " ")
		}
	}
	cur := scaleTabs[s.Tab]
	var b strings.Builder
	b.WriteString(strings.Join(tabs, " ") + "\n\n")
	b.WriteString(cur.name + " scales content...\n")
	b.WriteString(muted.Render(cur.pattern) + "\n")
	b.WriteString(cur.example)
	return fitTop(b.String(), width, height)
}
