package module

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrMalformedCatalog is returned when the registry is built from an
// inconsistent catalog. It is a startup configuration error.
var ErrMalformedCatalog = errors.New("malformed module catalog")

// Widget is the visual unit a render capability produces. It owns any
// interactive state of its own (a tempo, a journal entry) and fills the
// width and height the grid cell gives it.
type Widget interface {
	Init() tea.Cmd
	Update(tea.Msg) (Widget, tea.Cmd)
	View(width, height int) string
}

// RenderFunc produces a fresh widget for one module instance.
type RenderFunc func() Widget

// Descriptor is the display metadata for a kind.
type Descriptor struct {
	Kind        Kind   `json:"kind"`
	DisplayName string `json:"displayName"`
	Icon        string `json:"icon"`
}

// Entry pairs a descriptor with its render capability.
type Entry struct {
	Descriptor Descriptor
	Render     RenderFunc
}

// Registry is the read-only catalog keyed by kind.
// Lookups through Descriptor and Render are total over Kinds().
type Registry struct {
	descriptors map[Kind]Descriptor
	renders     map[Kind]RenderFunc
}

// NewRegistry builds a registry from entries. Every kind in Kinds() must have
// exactly one entry with a non-nil render func.
func NewRegistry(entries []Entry) (*Registry, error) {
	r := &Registry{
		descriptors: make(map[Kind]Descriptor, len(entries)),
		renders:     make(map[Kind]RenderFunc, len(entries)),
	}
	for _, e := range entries {
		k := e.Descriptor.Kind
		if !k.Valid() {
			return nil, fmt.Errorf("%w: unknown kind %q", ErrMalformedCatalog, k)
		}
		if _, dup := r.descriptors[k]; dup {
			return nil, fmt.Errorf("%w: kind %q registered twice", ErrMalformedCatalog, k)
		}
		if e.Render == nil {
			return nil, fmt.Errorf("%w: kind %q has no render capability", ErrMalformedCatalog, k)
		}
		if e.Descriptor.DisplayName == "" {
			return nil, fmt.Errorf("%w: kind %q has no display name", ErrMalformedCatalog, k)
		}
		r.descriptors[k] = e.Descriptor
		r.renders[k] = e.Render
	}
	for _, k := range kinds {
		if _, ok := r.descriptors[k]; !ok {
			return nil, fmt.Errorf("%w: kind %q has no descriptor", ErrMalformedCatalog, k)
		}
	}
	return r, nil
}

// MustRegistry is NewRegistry for process startup; it panics on a malformed catalog.
func MustRegistry(entries []Entry) *Registry {
	r, err := NewRegistry(entries)
	if err != nil {
		panic(err)
	}
	return r
}

// Descriptor returns the descriptor for kind. Panics for a kind outside the
// closed set, which is a programming error.
func (r *Registry) Descriptor(kind Kind) Descriptor {
	d, ok := r.descriptors[kind]
	if !ok {
		panic(fmt.Sprintf("module: no descriptor for kind %q", kind))
	}
	return d
}

// Render returns the render capability for kind. Panics like Descriptor.
func (r *Registry) Render(kind Kind) RenderFunc {
	fn, ok := r.renders[kind]
	if !ok {
		panic(fmt.Sprintf("module: no render capability for kind %q", kind))
	}
	return fn
}

// Lookup returns the descriptor for kind, or false for untrusted input that
// names an unknown kind.
func (r *Registry) Lookup(kind Kind) (Descriptor, bool) {
	d, ok := r.descriptors[kind]
	return d, ok
}

// Descriptors returns all descriptors in catalog order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, r.descriptors[k])
	}
	return out
}
