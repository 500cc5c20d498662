package ecsgrid

import "github.com/ashfall-games/ecsgrid/grid"

// Component is a registerable component identity. It carries no data
// itself; data lives in the grid.Column an AccessibleComponent reads
// and writes through.
type Component interface {
	grid.ElementType
}

// AccessibleComponent extends a Component with a typed read/write view
// over whatever World it's used against.
type AccessibleComponent[T any] struct {
	Component
	grid.Accessor[T]
}

// Get returns a pointer to e's T value, or nil if e doesn't carry this
// component.
func (c AccessibleComponent[T]) Get(w *World, e Entity) *T {
	return c.Accessor.Get(e.id, w.table)
}

// Set writes v onto e's row for this component.
func (c AccessibleComponent[T]) Set(w *World, e Entity, v T) error {
	return c.Accessor.Set(e.id, w.table, v)
}

// Has reports whether e's archetype includes this component.
func (c AccessibleComponent[T]) Has(w *World, e Entity) bool {
	return c.Accessor.Check(w.table, e.id)
}

// GetAt is the row-addressed form Get uses internally, exposed for
// range-chunked query loops that walk row-ids directly.
func (c AccessibleComponent[T]) GetAt(w *World, row int) *T {
	return c.Accessor.Get(row, w.table)
}
