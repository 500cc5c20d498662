package grid

import "github.com/ashfall-games/ecsgrid/hlock"

// anyColumn is the type-erased face of Column[T] the Table needs for
// structural bookkeeping (allocation, swap-remove, delete) without
// knowing the concrete component type.
type anyColumn interface {
	ElementType() ElementType
	preallocRange(start, end int) (newStart, newEnd int, ok bool)
	swap(i, j int) error
	delete(i int) error
	copyValue(dst, src int) error
}

// Column is one component's storage: a single FragmentVector of whole T
// values indexed by row-id (fields are not split into separate
// per-field arrays), shared across every archetype partition (a
// row is only logically "in" the column if its archetype's signature
// includes this component's bit).
type Column[T any] struct {
	et    ElementType
	vec   FragmentVector[T]
	Locks *hlock.Tree
}

func newColumn[T any](et ElementType) *Column[T] {
	return &Column[T]{et: et, Locks: hlock.New[T]()}
}

// ElementType returns the component identity this column stores.
func (c *Column[T]) ElementType() ElementType { return c.et }

// Get returns a pointer into the column's backing block for row i. The
// pointer is valid only until the next structural change touching this
// column (insert/delete/resize may reallocate the backing block).
func (c *Column[T]) Get(i int) (*T, error) {
	return c.vec.GetPtr(i)
}

// Set writes T's full value at row i, inserting the row if it wasn't
// already valid.
func (c *Column[T]) Set(i int, v T) {
	c.vec.Set(i, v)
}

// BlockRuns groups [start, end] into contiguous same-block runs, the
// primitive range-chunked queries walk.
func (c *Column[T]) BlockRuns(start, end int) []BlockRun[T] {
	return c.vec.RangesIn(start, end)
}

// BlockAt returns the backing block and local index for row i, so a
// caller can index the raw field array directly instead of calling Get
// per row.
func (c *Column[T]) BlockAt(i int) (data []T, local int, ok bool) {
	return c.vec.BlockAt(i)
}

func (c *Column[T]) preallocRange(start, end int) (int, int, bool) {
	return c.vec.PreallocRange(start, end)
}

func (c *Column[T]) swap(i, j int) error {
	return c.vec.Swap(i, j)
}

func (c *Column[T]) delete(i int) error {
	return c.vec.Delete(i)
}

func (c *Column[T]) copyValue(dst, src int) error {
	v, err := c.vec.Get(src)
	if err != nil {
		return err
	}
	c.vec.Set(dst, v)
	return nil
}

var _ anyColumn = (*Column[struct{}])(nil)
