package grid

import "github.com/ashfall-games/ecsgrid/hlock"

// Accessor is a typed view over one component's column, resolved through
// a Table at call time rather than bound to one at construction (so the
// same Accessor works against any Table that happens to have registered
// the component).
type Accessor[T any] struct {
	et ElementType
}

// FactoryNewAccessor builds an Accessor bound to et's identity.
func FactoryNewAccessor[T any](et ElementType) Accessor[T] {
	return Accessor[T]{et: et}
}

// Get returns a pointer to row's T value, or nil if the component was
// never registered on t or row has no valid value there.
func (a Accessor[T]) Get(row int, t *Table) *T {
	col, err := ColumnFor[T](t, a.et)
	if err != nil {
		return nil
	}
	v, err := col.Get(row)
	if err != nil {
		return nil
	}
	return v
}

// Set writes v at row, inserting the row into the column if it wasn't
// already valid there.
func (a Accessor[T]) Set(row int, t *Table, v T) error {
	col, err := ColumnFor[T](t, a.et)
	if err != nil {
		return err
	}
	col.Set(row, v)
	return nil
}

// Check reports whether row's archetype includes this component.
func (a Accessor[T]) Check(t *Table, row int) bool {
	sig, ok := t.RowSignature(row)
	if !ok {
		return false
	}
	bit, ok := t.Bit(a.et)
	if !ok {
		return false
	}
	return sig.Has(bit)
}

// Locks returns the hierarchical lock for this component's field tree.
func (a Accessor[T]) Locks(t *Table) *hlock.Tree {
	col, err := ColumnFor[T](t, a.et)
	if err != nil {
		return nil
	}
	return col.Locks
}
