package ui

// AppMode is the interaction state of the grid.
type AppMode int

const (
	// ModeBrowse routes keys to the focused module.
	ModeBrowse AppMode = iota
	// ModeMove edits the position of the focused module's draft.
	ModeMove
	// ModeResize edits the size of the focused module's draft.
	ModeResize
)

func (m AppMode) String() string {
	switch m {
	case ModeBrowse:
		return "Browse"
	case ModeMove:
		return "Move"
	case ModeResize:
		return "Resize"
	default:
		return "Unknown"
	}
}

// Editing reports whether a move or resize draft is open.
func (m AppMode) Editing() bool {
	return m == ModeMove || m == ModeResize
}
