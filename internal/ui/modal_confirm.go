package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"practicestudio/internal/module"
)

// ConfirmModal asks a yes/no question. y or enter sends the OnConfirm
// message; n or esc dismisses.
type ConfirmModal struct {
	Title     string
	Label     string
	Details   string // optional warning under the label
	OnConfirm func() tea.Msg
}

// Ensure ConfirmModal implements View.
var _ View = (*ConfirmModal)(nil)

// NewRemoveModuleConfirmModal asks before removing instance id.
func NewRemoveModuleConfirmModal(id string, d module.Descriptor) *ConfirmModal {
	return &ConfirmModal{
		Title:     "Remove module?",
		Label:     fmt.Sprintf("%s %s (%s)", d.Icon, d.DisplayName, id),
		Details:   "Its state is discarded",
		OnConfirm: func() tea.Msg { return RemoveModuleMsg{ID: id} },
	}
}

// Init implements View.
func (m *ConfirmModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "esc", "n":
		return m, func() tea.Msg { return DismissModalMsg{} }
	case "enter", "y":
		return m, m.OnConfirm
	}
	return m, nil
}

// View implements View.
func (m *ConfirmModal) View() string {
	content := Styles.TitleWarning.Render(m.Title) + "\n\n" + Styles.Label.Render(m.Label)
	if m.Details != "" {
		content += "\n" + Styles.Details.Render(m.Details)
	}
	content += "\n\n" + Styles.Hint.Render("y/Enter: remove  n/Esc: keep")
	return Styles.BoxDanger.Render(content)
}
