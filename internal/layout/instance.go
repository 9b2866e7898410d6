// Package layout owns the placed module instances: the store that adds and
// removes them, and the reconciler that merges grid geometry back in.
//
// All mutations are expected to run on the UI event loop, one at a time.
// The store does no locking.
package layout

import (
	"errors"
	"fmt"

	"practicestudio/internal/module"
)

// PlaceAtBottom is the Y value of a freshly added instance. The grid resolves
// it to the first free row below existing content on its next layout pass.
const PlaceAtBottom = -1

// MaxCoord bounds every position and size, in grid units, so that sums such
// as Y+H stay far from overflow and compaction work stays small.
const MaxCoord = 1 << 16

// Default size of an added module, in grid units.
const (
	DefaultW = 2
	DefaultH = 3
)

var (
	// ErrInvalidKind is returned by Add for a kind outside the catalog.
	ErrInvalidKind = errors.New("invalid module kind")
	// ErrInvalidGeometry is returned when an instance has a non-positive size
	// or a negative position.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrIdentityChanged is returned by Replace when the proposed collection
	// adds, drops, duplicates or retypes instances.
	ErrIdentityChanged = errors.New("instance identity changed")
)

// Geometry is a position and size in grid units.
type Geometry struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// Right returns the first column past the geometry.
func (g Geometry) Right() int { return g.X + g.W }

// Bottom returns the first row below the geometry.
func (g Geometry) Bottom() int { return g.Y + g.H }

// Overlaps reports whether g and o share at least one cell.
func (g Geometry) Overlaps(o Geometry) bool {
	return g.X < o.Right() && o.X < g.Right() && g.Y < o.Bottom() && o.Y < g.Bottom()
}

// Validate checks size and position. The bottom sentinel is accepted when
// allowSentinel is set.
func (g Geometry) Validate(allowSentinel bool) error {
	if g.W <= 0 || g.H <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidGeometry, g.W, g.H)
	}
	if g.X > MaxCoord || g.Y > MaxCoord || g.W > MaxCoord || g.H > MaxCoord {
		return fmt.Errorf("%w: %+v exceeds %d", ErrInvalidGeometry, g, MaxCoord)
	}
	if g.X < 0 {
		return fmt.Errorf("%w: x=%d", ErrInvalidGeometry, g.X)
	}
	if g.Y < 0 && !(allowSentinel && g.Y == PlaceAtBottom) {
		return fmt.Errorf("%w: y=%d", ErrInvalidGeometry, g.Y)
	}
	return nil
}

// Instance is a module placed on the canvas. ID and Kind never change after
// creation; only Geometry is rewritten.
type Instance struct {
	ID   string      `json:"id" yaml:"id"`
	Kind module.Kind `json:"kind" yaml:"kind"`
	Geometry `yaml:",inline"`
}

// Pending reports whether the instance still waits for its row.
func (i Instance) Pending() bool {
	return i.Y == PlaceAtBottom
}

// Update is one geometry change reported by the grid, keyed by instance id.
type Update struct {
	ID string `json:"id"`
	Geometry
}

// DefaultStarter is the layout a new workspace opens with.
func DefaultStarter() []Instance {
	return []Instance{
		{ID: "metronome1", Kind: module.Metronome, Geometry: Geometry{X: 0, Y: 0, W: 2, H: 3}},
		{ID: "scales1", Kind: module.Scales, Geometry: Geometry{X: 2, Y: 0, W: 2, H: 3}},
	}
}

// Clone returns a copy of instances that shares nothing with the input.
func Clone(instances []Instance) []Instance {
	if instances == nil {
		return nil
	}
	out := make([]Instance, len(instances))
	copy(out, instances)
	return out
}
