package ui

import "practicestudio/internal/module"

// AddModuleMsg adds a module of Kind to the grid (catalog bar, picker, SPC a).
type AddModuleMsg struct {
	Kind module.Kind
}

// RemoveModuleMsg removes the instance with ID (close button, x, confirm modal).
type RemoveModuleMsg struct {
	ID string
}

// ShowCatalogMsg opens the catalog picker modal.
type ShowCatalogMsg struct{}

// ShowRemoveModuleMsg removes the focused module, through the confirm modal
// when confirmation is enabled.
type ShowRemoveModuleMsg struct{}

// FocusNextMsg moves focus to the next module card.
type FocusNextMsg struct{}

// FocusPrevMsg moves focus to the previous module card.
type FocusPrevMsg struct{}

// StartMoveMsg opens a move draft for the focused module.
type StartMoveMsg struct{}

// StartResizeMsg opens a resize draft for the focused module.
type StartResizeMsg struct{}

// CommitDraftMsg commits the open draft through the reconciler.
type CommitDraftMsg struct{}

// CancelDraftMsg abandons the open draft; stored geometry is untouched.
type CancelDraftMsg struct{}

// CompactLayoutMsg runs the layout pass on demand.
type CompactLayoutMsg struct{}

// DismissModalMsg is sent when user cancels a modal (Esc).
type DismissModalMsg struct{}
