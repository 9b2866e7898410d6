package grid

import (
	"sort"

	"practicestudio/internal/layout"
	"practicestudio/internal/module"
)

// Placement is an instance's geometry at one breakpoint.
type Placement struct {
	ID   string      `json:"id"`
	Kind module.Kind `json:"kind"`
	layout.Geometry
}

// Frame is the result of a layout pass at one viewport width.
type Frame struct {
	Breakpoint Breakpoint  `json:"breakpoint"`
	Placements []Placement `json:"placements"`
	Rows       int         `json:"rows"`
}

// Clamp fits g into cols columns. A too-wide instance is narrowed to the full
// width; an instance hanging off the right edge is shifted left. The width
// never drops below one column.
func Clamp(g layout.Geometry, cols int) layout.Geometry {
	cols = max(cols, 1)
	g.W = max(g.W, 1)
	if g.W > cols {
		g.W = cols
	}
	if g.X+g.W > cols {
		g.X = cols - g.W
	}
	if g.X < 0 {
		g.X = 0
	}
	return g
}

// ResolveSentinel gives every pending instance (Y == layout.PlaceAtBottom)
// the first free row below all resolved content. Pending instances are
// stacked in collection order. The input is not modified.
func ResolveSentinel(geoms []layout.Geometry) []layout.Geometry {
	out := make([]layout.Geometry, len(geoms))
	copy(out, geoms)
	bottom := 0
	for _, g := range out {
		if g.Y != layout.PlaceAtBottom && g.Bottom() > bottom {
			bottom = g.Bottom()
		}
	}
	for i := range out {
		if out[i].Y == layout.PlaceAtBottom {
			out[i].Y = bottom
			bottom = out[i].Bottom()
		}
	}
	return out
}

// Compact packs geometries upward within cols columns so that none overlap.
// Items are visited by row, then column, then input position; each moves up
// as far as it can and then down past anything it still collides with.
// The result keeps the input order.
func Compact(geoms []layout.Geometry, cols int) []layout.Geometry {
	return CompactPinned(geoms, cols, -1)
}

// CompactPinned is Compact with geoms[pinned] placed first, at its own
// position, so everything else yields to it. Used while the user drags or
// resizes an instance. A negative pinned pins nothing.
func CompactPinned(geoms []layout.Geometry, cols int, pinned int) []layout.Geometry {
	order := make([]int, 0, len(geoms))
	for i := range geoms {
		if i != pinned {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		ga, gb := geoms[order[a]], geoms[order[b]]
		if ga.Y != gb.Y {
			return ga.Y < gb.Y
		}
		return ga.X < gb.X
	})

	out := make([]layout.Geometry, len(geoms))
	placed := make([]layout.Geometry, 0, len(geoms))
	bottom := 0
	if pinned >= 0 && pinned < len(geoms) {
		g := Clamp(geoms[pinned], cols)
		if g.Y < 0 {
			g.Y = 0
		}
		placed = append(placed, g)
		out[pinned] = g
		bottom = g.Bottom()
	}
	for _, idx := range order {
		g := Clamp(geoms[idx], cols)
		// Nothing below the placed content can block, so start the climb there.
		g.Y = min(max(g.Y, 0), bottom)
		for g.Y > 0 {
			up := g
			up.Y--
			if firstCollision(placed, up) >= 0 {
				break
			}
			g = up
		}
		for {
			c := firstCollision(placed, g)
			if c < 0 {
				break
			}
			g.Y = placed[c].Bottom()
		}
		placed = append(placed, g)
		out[idx] = g
		bottom = max(bottom, g.Bottom())
	}
	return out
}

func firstCollision(placed []layout.Geometry, g layout.Geometry) int {
	for i, p := range placed {
		if p.Overlaps(g) {
			return i
		}
	}
	return -1
}

// Project derives every instance's geometry at a breakpoint with cols
// columns: clamp, resolve the bottom sentinel, then compact. Output follows
// collection order.
func Project(instances []layout.Instance, cols int) []Placement {
	return ProjectPinned(instances, cols, "")
}

// ProjectPinned is Project with the instance named pinned placed first so the
// rest flow around it.
func ProjectPinned(instances []layout.Instance, cols int, pinned string) []Placement {
	geoms := make([]layout.Geometry, len(instances))
	pinnedIdx := -1
	for i, inst := range instances {
		geoms[i] = Clamp(inst.Geometry, cols)
		if inst.ID == pinned {
			pinnedIdx = i
		}
	}
	geoms = CompactPinned(ResolveSentinel(geoms), cols, pinnedIdx)

	out := make([]Placement, len(instances))
	for i, inst := range instances {
		out[i] = Placement{ID: inst.ID, Kind: inst.Kind, Geometry: geoms[i]}
	}
	return out
}

// Layout runs a layout pass for a viewport width.
func Layout(instances []layout.Instance, bps Breakpoints, viewportPx int) Frame {
	bp := bps.Active(viewportPx)
	placements := Project(instances, bp.Columns)
	return Frame{Breakpoint: bp, Placements: placements, Rows: Rows(placements)}
}

// Rows returns the number of grid rows the placements occupy.
func Rows(placements []Placement) int {
	rows := 0
	for _, p := range placements {
		if p.Bottom() > rows {
			rows = p.Bottom()
		}
	}
	return rows
}

// Updates turns placements into reconciler input.
func Updates(placements []Placement) []layout.Update {
	out := make([]layout.Update, len(placements))
	for i, p := range placements {
		out[i] = layout.Update{ID: p.ID, Geometry: p.Geometry}
	}
	return out
}

// Find returns the placement for id.
func (f Frame) Find(id string) (Placement, bool) {
	for _, p := range f.Placements {
		if p.ID == id {
			return p, true
		}
	}
	return Placement{}, false
}
