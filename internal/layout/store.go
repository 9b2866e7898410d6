package layout

import (
	"fmt"

	"practicestudio/internal/module"
)

// DefaultColumns is the column count of the primary breakpoint.
const DefaultColumns = 4

// Store is the authoritative, ordered collection of placed instances.
// Insertion order is creation order; it drives rendering and lookup order.
type Store struct {
	instances []Instance
	columns   int
	ids       IDGenerator
	observer  Observer
}

// Option configures a Store.
type Option func(*Store) error

// WithColumns sets the grid column count used to pick the initial x of an added instance.
func WithColumns(n int) Option {
	return func(s *Store) error {
		if n <= 0 {
			return fmt.Errorf("columns must be positive, got %d", n)
		}
		s.columns = n
		return nil
	}
}

// WithIDGenerator replaces the default counter-based id generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) error {
		if g != nil {
			s.ids = g
		}
		return nil
	}
}

// WithObserver registers an observer notified after each mutation.
func WithObserver(o Observer) Option {
	return func(s *Store) error {
		s.observer = o
		return nil
	}
}

// WithInstances seeds the store with a starter layout.
func WithInstances(instances []Instance) Option {
	return func(s *Store) error {
		if err := validateCollection(instances, true); err != nil {
			return fmt.Errorf("starter layout: %w", err)
		}
		s.instances = Clone(instances)
		return nil
	}
}

// NewStore creates a store. Without options it is empty, uses DefaultColumns
// and generates "<kind><n>" ids.
func NewStore(opts ...Option) (*Store, error) {
	s := &Store{
		columns: DefaultColumns,
		ids:     &CounterIDs{},
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Columns returns the column count used for initial placement.
func (s *Store) Columns() int {
	return s.columns
}

// Add places a new instance of kind and returns its id. The instance gets the
// default size, x = (count*2) mod columns, and the bottom sentinel for y.
func (s *Store) Add(kind module.Kind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	id := s.ids.Next(kind, s.has)
	inst := Instance{
		ID:   id,
		Kind: kind,
		Geometry: Geometry{
			X: (len(s.instances) * 2) % s.columns,
			Y: PlaceAtBottom,
			W: DefaultW,
			H: DefaultH,
		},
	}
	s.instances = append(s.instances, inst)
	if s.observer != nil {
		s.observer.InstanceAdded(inst)
	}
	return id, nil
}

// Remove deletes the instance with id. Removing an absent id is a no-op and
// reports false, so duplicate remove events are harmless.
func (s *Store) Remove(id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	next := make([]Instance, 0, len(s.instances)-1)
	next = append(next, s.instances[:idx]...)
	next = append(next, s.instances[idx+1:]...)
	s.instances = next
	if s.observer != nil {
		s.observer.InstanceRemoved(id)
	}
	return true
}

// List returns a snapshot of the collection in insertion order.
func (s *Store) List() []Instance {
	out := make([]Instance, len(s.instances))
	copy(out, s.instances)
	return out
}

// Len returns the number of placed instances.
func (s *Store) Len() int {
	return len(s.instances)
}

// Get returns the instance with id.
func (s *Store) Get(id string) (Instance, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Instance{}, false
	}
	return s.instances[idx], true
}

// Replace swaps the collection for next, typically the output of Reconcile.
// next must hold exactly the current ids with unchanged kinds and valid
// geometry; otherwise nothing changes and an error is returned.
func (s *Store) Replace(next []Instance) error {
	if err := validateCollection(next, true); err != nil {
		return err
	}
	if len(next) != len(s.instances) {
		return fmt.Errorf("%w: %d instances, want %d", ErrIdentityChanged, len(next), len(s.instances))
	}
	kinds := make(map[string]module.Kind, len(s.instances))
	for _, inst := range s.instances {
		kinds[inst.ID] = inst.Kind
	}
	for _, inst := range next {
		k, ok := kinds[inst.ID]
		if !ok {
			return fmt.Errorf("%w: unknown id %q", ErrIdentityChanged, inst.ID)
		}
		if k != inst.Kind {
			return fmt.Errorf("%w: %q changed kind %s -> %s", ErrIdentityChanged, inst.ID, k, inst.Kind)
		}
	}
	s.instances = Clone(next)
	if s.observer != nil {
		s.observer.LayoutReplaced(s.List())
	}
	return nil
}

func (s *Store) has(id string) bool {
	return s.indexOf(id) >= 0
}

func (s *Store) indexOf(id string) int {
	for i, inst := range s.instances {
		if inst.ID == id {
			return i
		}
	}
	return -1
}

// validateCollection checks per-instance fields and id uniqueness.
func validateCollection(instances []Instance, allowSentinel bool) error {
	seen := make(map[string]struct{}, len(instances))
	for _, inst := range instances {
		if inst.ID == "" {
			return fmt.Errorf("%w: empty id", ErrIdentityChanged)
		}
		if _, dup := seen[inst.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrIdentityChanged, inst.ID)
		}
		seen[inst.ID] = struct{}{}
		if !inst.Kind.Valid() {
			return fmt.Errorf("%s: %w: %q", inst.ID, ErrInvalidKind, inst.Kind)
		}
		if err := inst.Geometry.Validate(allowSentinel); err != nil {
			return fmt.Errorf("%s: %w", inst.ID, err)
		}
	}
	return nil
}
