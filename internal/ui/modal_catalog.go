package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"practicestudio/internal/module"
)

// CatalogModal lists every module kind; enter adds one to the grid.
type CatalogModal struct {
	list list.Model
}

type catalogItem module.Descriptor

func (c catalogItem) FilterValue() string { return c.DisplayName }
func (c catalogItem) Title() string       { return c.Icon + "  " + c.DisplayName }
func (c catalogItem) Description() string { return string(c.Kind) }

// Ensure CatalogModal implements View.
var _ View = (*CatalogModal)(nil)

// NewCatalogModal creates a picker over descriptors, in catalog order.
func NewCatalogModal(descriptors []module.Descriptor) *CatalogModal {
	items := make([]list.Item, len(descriptors))
	for i, d := range descriptors {
		items[i] = catalogItem(d)
	}
	l := list.New(items, NewCompactListDelegate(), 36, len(items)+4)
	l.Title = "Add module"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = Styles.Title
	return &CatalogModal{list: l}
}

// Selected returns the highlighted kind.
func (m *CatalogModal) Selected() (module.Kind, bool) {
	sel, ok := m.list.SelectedItem().(catalogItem)
	if !ok {
		return "", false
	}
	return sel.Kind, true
}

// Init implements View.
func (m *CatalogModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *CatalogModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			if kind, ok := m.Selected(); ok {
				return m, func() tea.Msg { return AddModuleMsg{Kind: kind} }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements View.
func (m *CatalogModal) View() string {
	help := "Enter: add  /: filter  Esc: cancel"
	return Styles.BoxCompact.Render(m.list.View() + "\n" + Styles.Hint.Render(help))
}
