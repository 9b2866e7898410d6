package ui

import tea "github.com/charmbracelet/bubbletea"

// OverlayStack holds the modals drawn over the grid. The top one receives
// every key; modals close themselves by sending DismissModalMsg.
type OverlayStack struct {
	views []View
}

// Push opens v on top.
func (s *OverlayStack) Push(v View) {
	s.views = append(s.views, v)
}

// Pop closes the top modal.
func (s *OverlayStack) Pop() (View, bool) {
	top, ok := s.Peek()
	if ok {
		s.views = s.views[:len(s.views)-1]
	}
	return top, ok
}

// PopIf closes the top modal when match accepts it, e.g. the catalog after
// its selection has been applied.
func (s *OverlayStack) PopIf(match func(View) bool) bool {
	top, ok := s.Peek()
	if !ok || !match(top) {
		return false
	}
	s.Pop()
	return true
}

// Peek returns the top modal.
func (s *OverlayStack) Peek() (View, bool) {
	if len(s.views) == 0 {
		return nil, false
	}
	return s.views[len(s.views)-1], true
}

// Len returns the number of open modals.
func (s *OverlayStack) Len() int {
	return len(s.views)
}

// UpdateTop routes msg to the top modal and keeps the view it returns.
func (s *OverlayStack) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.views) == 0 {
		return nil, false
	}
	next, cmd := s.views[len(s.views)-1].Update(msg)
	s.views[len(s.views)-1] = next
	return cmd, true
}
