package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"practicestudio/internal/grid"
	"practicestudio/internal/layout"
)

// handleKey routes a key: modals first, then a capturing widget, then an
// open draft, then the keybind registry, and finally the focused widget.
func (a *appModelAdapter) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.Overlays.Len() > 0 {
		cmd, _ := a.Overlays.UpdateTop(msg)
		return a, cmd
	}

	if a.capturing() {
		return a, a.updateFocused(msg)
	}

	if a.Mode.Editing() && !a.KeyHandler.LeaderWaiting {
		if a.handleDraftKey(msg.String()) {
			return a, nil
		}
	}

	a.KeyHandler.Mode = a.Mode
	if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
		return a, cmd
	}
	if a.Mode.Editing() {
		return a, nil
	}
	return a, a.updateFocused(msg)
}

func (a *App) updateFocused(msg tea.Msg) tea.Cmd {
	w, ok := a.focusedWidget()
	if !ok {
		return nil
	}
	next, cmd := w.Update(msg)
	a.widgets[a.Focus.Current] = next
	return cmd
}

// handleDraftKey edits the open draft. Returns false for keys it does not own.
func (a *App) handleDraftKey(key string) bool {
	if key == "esc" {
		a.cancelDraft()
		return true
	}
	dx, dy := 0, 0
	switch key {
	case "left", "h":
		dx = -1
	case "right", "l":
		dx = 1
	case "up", "k":
		dy = -1
	case "down", "j":
		dy = 1
	default:
		return false
	}

	cols := a.frame.Breakpoint.Columns
	g := grid.Clamp(a.draft.geom, cols)
	switch a.Mode {
	case ModeMove:
		g.X = min(max(g.X+dx, 0), cols-g.W)
		g.Y = max(g.Y+dy, 0)
	case ModeResize:
		g.W = min(max(g.W+dx, 1), cols-g.X)
		g.H = max(g.H+dy, 1)
	}
	a.draft.geom = g
	return true
}

func (a *appModelAdapter) handleStartDraft(mode AppMode) (tea.Model, tea.Cmd) {
	id := a.Focus.Current
	p, ok := a.frame.Find(id)
	if !ok {
		a.setStatus("No module focused")
		return a, nil
	}
	a.draft = &draft{id: id, geom: p.Geometry}
	a.Mode = mode
	a.Status = ""
	return a, nil
}

// previewDraft projects the active breakpoint with the draft pinned in place
// so the other modules flow around it.
func (a *App) previewDraft() []grid.Placement {
	view := make([]layout.Instance, len(a.frame.Placements))
	for i, p := range a.frame.Placements {
		g := p.Geometry
		if p.ID == a.draft.id {
			g = a.draft.geom
		}
		view[i] = layout.Instance{ID: p.ID, Kind: p.Kind, Geometry: g}
	}
	return grid.ProjectPinned(view, a.frame.Breakpoint.Columns, a.draft.id)
}

// handleCommitDraft reconciles the active breakpoint's geometry, with the
// draft applied, into the store.
func (a *appModelAdapter) handleCommitDraft() (tea.Model, tea.Cmd) {
	if a.draft == nil {
		return a, nil
	}
	placements := a.previewDraft()
	id, mode := a.draft.id, a.Mode
	a.draft = nil
	a.Mode = ModeBrowse

	updates := grid.Updates(placements)
	if dangling := layout.Dangling(a.store.List(), updates); len(dangling) > 0 {
		a.log.Debug("ignoring updates for unknown instances", zap.Strings("ids", dangling))
	}
	if err := a.store.Replace(layout.Reconcile(a.store.List(), updates)); err != nil {
		a.setError(fmt.Errorf("apply %s: %w", mode, err))
		return a, nil
	}
	if err := a.settle(); err != nil {
		a.setError(err)
		return a, nil
	}
	a.setStatus("%s: %s", mode, id)
	return a, nil
}

func (a *App) cancelDraft() {
	a.draft = nil
	a.Mode = ModeBrowse
}

func (a *appModelAdapter) handleAddModule(msg AddModuleMsg) (tea.Model, tea.Cmd) {
	a.Overlays.PopIf(func(v View) bool {
		_, isCatalog := v.(*CatalogModal)
		return isCatalog
	})
	id, err := a.store.Add(msg.Kind)
	if err != nil {
		a.setError(fmt.Errorf("add module: %w", err))
		return a, nil
	}
	w := a.registry.Render(msg.Kind)()
	a.widgets[id] = w
	if err := a.settle(); err != nil {
		a.setError(err)
	}
	a.Focus.SetFocus(id)
	a.setStatus("Added %s", a.registry.Descriptor(msg.Kind).DisplayName)
	return a, w.Init()
}

func (a *appModelAdapter) handleRemoveModule(msg RemoveModuleMsg) (tea.Model, tea.Cmd) {
	a.Overlays.PopIf(func(v View) bool {
		_, isConfirm := v.(*ConfirmModal)
		return isConfirm
	})
	if a.draft != nil && a.draft.id == msg.ID {
		a.cancelDraft()
	}
	if !a.store.Remove(msg.ID) {
		return a, nil
	}
	delete(a.widgets, msg.ID)
	if err := a.settle(); err != nil {
		a.setError(err)
		return a, nil
	}
	a.setStatus("Removed %s", msg.ID)
	return a, nil
}

func (a *appModelAdapter) handleShowCatalog() (tea.Model, tea.Cmd) {
	modal := NewCatalogModal(a.registry.Descriptors())
	a.Overlays.Push(modal)
	return a, modal.Init()
}

func (a *appModelAdapter) handleShowRemoveModule() (tea.Model, tea.Cmd) {
	id := a.Focus.Current
	inst, ok := a.store.Get(id)
	if !ok {
		a.setStatus("No module focused")
		return a, nil
	}
	if !a.confirmRemove {
		return a, func() tea.Msg { return RemoveModuleMsg{ID: id} }
	}
	modal := NewRemoveModuleConfirmModal(id, a.registry.Descriptor(inst.Kind))
	a.Overlays.Push(modal)
	return a, modal.Init()
}
