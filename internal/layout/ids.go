package layout

import (
	"fmt"

	"github.com/google/uuid"

	"practicestudio/internal/module"
)

// IDGenerator produces instance ids. taken reports ids already in use; a
// generator must never return one of them.
type IDGenerator interface {
	Next(kind module.Kind, taken func(id string) bool) string
}

// CounterIDs yields "<kind><n>" from a monotonic counter. Two adds in the same
// clock tick still get different ids because nothing here reads the clock.
type CounterIDs struct {
	n uint64
}

// Ensure CounterIDs implements IDGenerator.
var _ IDGenerator = (*CounterIDs)(nil)

// Next implements IDGenerator.
func (c *CounterIDs) Next(kind module.Kind, taken func(string) bool) string {
	for {
		c.n++
		id := fmt.Sprintf("%s%d", kind, c.n)
		if taken == nil || !taken(id) {
			return id
		}
	}
}

// UUIDs yields "<kind>-<uuid>" using random v4 UUIDs.
type UUIDs struct{}

// Ensure UUIDs implements IDGenerator.
var _ IDGenerator = UUIDs{}

// Next implements IDGenerator.
func (UUIDs) Next(kind module.Kind, taken func(string) bool) string {
	for {
		id := fmt.Sprintf("%s-%s", kind, uuid.NewString())
		if taken == nil || !taken(id) {
			return id
		}
	}
}

// NewIDGenerator returns the generator for a configured strategy name:
// "counter" (default) or "uuid".
func NewIDGenerator(strategy string) (IDGenerator, error) {
	switch strategy {
	case "", "counter":
		return &CounterIDs{}, nil
	case "uuid":
		return UUIDs{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}
