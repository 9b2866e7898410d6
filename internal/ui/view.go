package ui

import tea "github.com/charmbracelet/bubbletea"

// View is the unit of composition for modals; implements Bubble Tea's
// Init/Update/View.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}
