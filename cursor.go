package ecsgrid

import (
	"iter"

	"github.com/ashfall-games/ecsgrid/grid"
)

// Range is one contiguous row-id interval yielded by ForEachRange,
// naming a single partition range a caller may walk with bounds-checked
// indexing.
type Range struct {
	Partition *grid.Partition
	Start, End int
}

// ForEachRange resolves q against w and yields every (partition, range)
// pair satisfying it, in implementation-defined order. A caller that
// wants each column block once per range rather than once per row gets
// it via Offset or grid.Column.BlockRuns; AccessibleComponent.GetAt
// inside the loop looks the block up again for every row.
func ForEachRange(w *World, q QueryNode) iter.Seq[Range] {
	return func(yield func(Range) bool) {
		partitions, err := Resolve(w, q)
		if err != nil {
			return
		}
		for _, p := range partitions {
			for _, r := range p.Ranges {
				if r.Live() == 0 {
					continue
				}
				if !yield(Range{Partition: p, Start: r.Start, End: r.Start + r.Live() - 1}) {
					return
				}
			}
		}
	}
}

// Offset maps a partition row-id to a block-local index within the
// column block covering it, so inner loops can index raw field arrays
// directly instead of calling Get per row.
func Offset[T any](col *grid.Column[T], row int) (data []T, local int, ok bool) {
	return col.BlockAt(row)
}

// Cursor provides row-by-row iteration over entities matching a query,
// for callers that want one Entity per step rather than range-chunked
// access.
type Cursor struct {
	world *World
	query QueryNode
}

// NewCursor returns a Cursor over entities matching query.
func NewCursor(world *World, query QueryNode) *Cursor {
	return &Cursor{world: world, query: query}
}

// Entities returns an iterator sequence over (row, Entity) pairs
// matching the cursor's query, re-resolving the query each call.
func (c *Cursor) Entities() iter.Seq2[int, Entity] {
	return func(yield func(int, Entity) bool) {
		for rng := range ForEachRange(c.world, c.query) {
			for row := rng.Start; row <= rng.End; row++ {
				e, ok := c.world.EntityAt(row)
				if !ok {
					continue
				}
				if !yield(row, e) {
					return
				}
			}
		}
	}
}

// TotalMatched returns how many rows currently satisfy the cursor's
// query.
func (c *Cursor) TotalMatched() int {
	total := 0
	for rng := range ForEachRange(c.world, c.query) {
		total += rng.End - rng.Start + 1
	}
	return total
}
