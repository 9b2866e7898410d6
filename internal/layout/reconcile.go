package layout

// Reconcile merges geometry updates into current and returns a new collection.
//
// For each instance in current, the last update carrying its id replaces X, Y,
// W and H; id and kind are kept. Instances without an update pass through, as
// happens when a breakpoint omits off-screen modules. Updates naming unknown
// ids are ignored. The output follows the order of current, never of updates.
// Neither input is modified.
func Reconcile(current []Instance, updates []Update) []Instance {
	if current == nil {
		return nil
	}
	latest := make(map[string]Geometry, len(updates))
	for _, u := range updates {
		latest[u.ID] = u.Geometry
	}
	out := make([]Instance, len(current))
	for i, inst := range current {
		if g, ok := latest[inst.ID]; ok {
			inst.Geometry = g
		}
		out[i] = inst
	}
	return out
}

// Dangling returns the ids in updates that match no instance in current.
func Dangling(current []Instance, updates []Update) []string {
	known := make(map[string]struct{}, len(current))
	for _, inst := range current {
		known[inst.ID] = struct{}{}
	}
	var out []string
	for _, u := range updates {
		if _, ok := known[u.ID]; !ok {
			out = append(out, u.ID)
		}
	}
	return out
}
