package layout

// Observer is notified after each successful store mutation. Callbacks run on
// the goroutine that mutated the store and must not call back into it.
type Observer interface {
	InstanceAdded(inst Instance)
	InstanceRemoved(id string)
	LayoutReplaced(instances []Instance)
}

// MultiObserver fans out notifications to multiple observers.
// It handles nil observers gracefully by skipping them.
type MultiObserver struct {
	observers []Observer
}

// Ensure MultiObserver implements Observer.
var _ Observer = (*MultiObserver)(nil)

// NewMultiObserver creates a MultiObserver that forwards calls to all provided observers.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	filtered := make([]Observer, 0, len(observers))
	for _, obs := range observers {
		if obs != nil {
			filtered = append(filtered, obs)
		}
	}
	return &MultiObserver{observers: filtered}
}

// safeCall calls fn with panic recovery. One observer failing shouldn't block others.
func safeCall(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}

// InstanceAdded forwards the call to all observers.
func (m *MultiObserver) InstanceAdded(inst Instance) {
	for _, obs := range m.observers {
		safeCall(func() { obs.InstanceAdded(inst) })
	}
}

// InstanceRemoved forwards the call to all observers.
func (m *MultiObserver) InstanceRemoved(id string) {
	for _, obs := range m.observers {
		safeCall(func() { obs.InstanceRemoved(id) })
	}
}

// LayoutReplaced forwards the call to all observers. Each observer gets its
// own copy of the collection.
func (m *MultiObserver) LayoutReplaced(instances []Instance) {
	for _, obs := range m.observers {
		cp := Clone(instances)
		safeCall(func() { obs.LayoutReplaced(cp) })
	}
}
