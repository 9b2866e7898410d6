// Package grid maps the instance collection onto a responsive grid: it picks
// the breakpoint for a viewport width and derives each instance's geometry at
// that breakpoint's column count.
//
// Only the primary (widest) breakpoint's geometry is stored. Narrower
// breakpoints are derived with Clamp and Compact and never written back
// unless the user edits the layout while they are active.
package grid

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidBreakpoints is returned for an unusable breakpoint declaration.
var ErrInvalidBreakpoints = errors.New("invalid breakpoints")

// Breakpoint is a named viewport-width threshold with its column count.
type Breakpoint struct {
	Name     string `json:"name"`
	MinWidth int    `json:"minWidthPx"`
	Columns  int    `json:"columns"`
}

// Spec declares one breakpoint in configuration.
type Spec struct {
	MinWidth int `yaml:"min_width_px" json:"minWidthPx"`
	Columns  int `yaml:"columns" json:"columns"`
}

// Breakpoints is a validated set, widest first.
type Breakpoints struct {
	list []Breakpoint
}

// DefaultSpecs are the stock breakpoints, lg through xxs.
func DefaultSpecs() map[string]Spec {
	return map[string]Spec{
		"lg":  {MinWidth: 1200, Columns: 4},
		"md":  {MinWidth: 996, Columns: 4},
		"sm":  {MinWidth: 768, Columns: 2},
		"xs":  {MinWidth: 480, Columns: 1},
		"xxs": {MinWidth: 0, Columns: 1},
	}
}

// Default returns the breakpoints of DefaultSpecs.
func Default() Breakpoints {
	bps, err := NewBreakpoints(DefaultSpecs())
	if err != nil {
		panic(err)
	}
	return bps
}

// NewBreakpoints validates specs and orders them widest first.
func NewBreakpoints(specs map[string]Spec) (Breakpoints, error) {
	if len(specs) == 0 {
		return Breakpoints{}, fmt.Errorf("%w: none declared", ErrInvalidBreakpoints)
	}
	list := make([]Breakpoint, 0, len(specs))
	widths := make(map[int]string, len(specs))
	for name, s := range specs {
		if name == "" {
			return Breakpoints{}, fmt.Errorf("%w: empty name", ErrInvalidBreakpoints)
		}
		if s.Columns <= 0 {
			return Breakpoints{}, fmt.Errorf("%w: %s has %d columns", ErrInvalidBreakpoints, name, s.Columns)
		}
		if s.MinWidth < 0 {
			return Breakpoints{}, fmt.Errorf("%w: %s has negative min width", ErrInvalidBreakpoints, name)
		}
		if other, dup := widths[s.MinWidth]; dup {
			return Breakpoints{}, fmt.Errorf("%w: %s and %s share min width %d", ErrInvalidBreakpoints, name, other, s.MinWidth)
		}
		widths[s.MinWidth] = name
		list = append(list, Breakpoint{Name: name, MinWidth: s.MinWidth, Columns: s.Columns})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].MinWidth > list[j].MinWidth })
	return Breakpoints{list: list}, nil
}

// List returns the breakpoints widest first.
func (b Breakpoints) List() []Breakpoint {
	out := make([]Breakpoint, len(b.list))
	copy(out, b.list)
	return out
}

// Primary returns the widest breakpoint, where canonical geometry lives.
func (b Breakpoints) Primary() Breakpoint {
	return b.list[0]
}

// Active returns the largest breakpoint whose MinWidth does not exceed
// viewportPx. A viewport narrower than every breakpoint gets the smallest.
func (b Breakpoints) Active(viewportPx int) Breakpoint {
	for _, bp := range b.list {
		if bp.MinWidth <= viewportPx {
			return bp
		}
	}
	return b.list[len(b.list)-1]
}

// Lookup returns the breakpoint named name.
func (b Breakpoints) Lookup(name string) (Breakpoint, bool) {
	for _, bp := range b.list {
		if bp.Name == name {
			return bp, true
		}
	}
	return Breakpoint{}, false
}

// ViewportPx converts a terminal width in cells to pixels.
func ViewportPx(cells, cellWidthPx int) int {
	if cells < 0 {
		return 0
	}
	return cells * cellWidthPx
}
