package ui

import "slices"

// FocusManager tracks which module card has focus and rotates it in
// collection order.
type FocusManager struct {
	Current  string   // ID of the focused instance, "" when the grid is empty
	Order    []string // Tab order (instance ids in collection order)
	OnChange func(from, to string)
}

// Next advances focus to the next instance in order.
// Returns the new current focus ID.
func (f *FocusManager) Next() string {
	return f.step(1)
}

// Prev moves focus to the previous instance in order.
func (f *FocusManager) Prev() string {
	return f.step(-1)
}

func (f *FocusManager) step(delta int) string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := slices.Index(f.Order, f.Current)
	var next int
	switch {
	case idx < 0 && delta > 0:
		next = 0
	case idx < 0:
		next = len(f.Order) - 1
	default:
		next = (idx + delta + len(f.Order)) % len(f.Order)
	}
	f.set(f.Order[next])
	return f.Current
}

// SetFocus sets focus to the given instance ID.
// Returns true if the ID exists in order.
func (f *FocusManager) SetFocus(id string) bool {
	if !slices.Contains(f.Order, id) {
		return false
	}
	f.set(id)
	return true
}

// SetOrder replaces the focus order. Focus stays on the current instance if
// it is still present; otherwise it moves to the instance that took its
// place, or the last one.
func (f *FocusManager) SetOrder(order []string) {
	prevIdx := slices.Index(f.Order, f.Current)
	f.Order = slices.Clone(order)
	switch {
	case len(order) == 0:
		f.set("")
	case slices.Contains(order, f.Current):
	case prevIdx >= 0 && prevIdx < len(order):
		f.set(order[prevIdx])
	case prevIdx >= 0:
		f.set(order[len(order)-1])
	default:
		f.set(order[0])
	}
}

func (f *FocusManager) set(id string) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}
