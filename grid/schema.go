package grid

import (
	"reflect"

	"github.com/ashfall-games/ecsgrid/mask"
)

// Schema is the component registry: it assigns each ElementType a dense
// bit index (0..MaxComponents-1) in registration order, keyed by the
// type's own reflect.Type rather than a separately minted id.
type Schema struct {
	bitFor map[reflect.Type]uint32
	order  []ElementType
}

// NewSchema returns an empty Schema.
func NewSchema() *Schema {
	return &Schema{bitFor: make(map[reflect.Type]uint32)}
}

// Register assigns bit indices to any types not already registered. A
// type already registered is a no-op, so it is safe to call on every
// entity-creation or attach call without checking first.
func (s *Schema) Register(types ...ElementType) error {
	for _, t := range types {
		if _, ok := s.bitFor[t.Type()]; ok {
			continue
		}
		if len(s.order) >= mask.MaxComponents {
			return CapacityExceededError{Limit: mask.MaxComponents}
		}
		s.bitFor[t.Type()] = uint32(len(s.order))
		s.order = append(s.order, t)
	}
	return nil
}

// RowIndexFor returns the bit index assigned to t, or (0, false) if t was
// never registered.
func (s *Schema) RowIndexFor(t ElementType) (uint32, bool) {
	bit, ok := s.bitFor[t.Type()]
	return bit, ok
}

// Contains reports whether t has been registered.
func (s *Schema) Contains(t ElementType) bool {
	_, ok := s.bitFor[t.Type()]
	return ok
}

// ElementTypes returns every registered type in registration order.
func (s *Schema) ElementTypes() []ElementType {
	return s.order
}
