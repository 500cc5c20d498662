package ecsgrid

import (
	"github.com/TheBitDrifter/bark"
	"github.com/ashfall-games/ecsgrid/grid"
	"github.com/ashfall-games/ecsgrid/mask"
)

// World owns the single shared Table every archetype partitions rows
// out of, the entity-slot array, and the structural-change-vs-dispatch
// lock bitmask. It is the entry point for every entity, query, and
// dispatcher operation in this module.
type World struct {
	table      *grid.Table
	locks      mask.Mask256
	queue      EntityOperationsQueue
	entities   []entityRecord
	queryCache Cache[resolvedQuery]
}

// NewWorld returns an empty world with a fresh schema.
func NewWorld() *World {
	table := grid.NewTable(grid.NewSchema(), Config.tableEvents)
	table.SetDefaultCapacity(Config.defaultPartitionCapacity)
	return &World{
		table: table,
		queue: &entityOperationsQueue{},
	}
}

// RegisterComponent assigns c a bit index and installs its column, if
// it hasn't already been registered on this world. grid.RegisterComponent[T]
// does the actual work; this is a package-level function rather than a
// World method since Go forbids generic methods.
func RegisterComponent[T any](w *World, c AccessibleComponent[T]) error {
	return grid.RegisterComponent[T](w.table, c.Component)
}

// Table exposes the underlying column store, for callers building their
// own range-chunked iteration (flow systems, custom query loops).
func (w *World) Table() *grid.Table { return w.table }

// Locked reports whether structural operations are currently barred
// (mid-dispatch, per §5's "structural change APIs must not run
// concurrently with dispatch").
func (w *World) Locked() bool {
	return !w.locks.IsEmpty()
}

// Lock raises one exclusion bit, e.g. one per live query's cursor or
// one dispatcher tick in flight.
func (w *World) Lock(bit uint32) {
	w.locks.Mark(bit)
}

// Unlock clears one exclusion bit and, once none remain, flushes any
// operations that were enqueued while the world was locked.
func (w *World) Unlock(bit uint32) {
	w.locks.Unmark(bit)
	if w.locks.IsEmpty() {
		if err := w.queue.ProcessAll(w); err != nil {
			panic(bark.AddTrace(err))
		}
	}
}

// Enqueue adds an operation to the world's deferred queue; it is
// flushed the next time the world becomes fully unlocked.
func (w *World) Enqueue(op EntityOperation) {
	w.queue.Enqueue(op)
}

func (w *World) signatureOf(components ...Component) (mask.Mask, error) {
	var sig mask.Mask
	for _, c := range components {
		if err := w.table.Schema().Register(c); err != nil {
			return mask.Mask{}, err
		}
		bit, _ := w.table.Bit(c)
		sig.Mark(bit)
	}
	return sig, nil
}

func (w *World) growEntities(upTo int) {
	if upTo <= len(w.entities) {
		return
	}
	grown := make([]entityRecord, upTo)
	copy(grown, w.entities)
	w.entities = grown
}

func (w *World) newEntityRecord(row int, sig mask.Mask) Entity {
	w.growEntities(row)
	rec := &w.entities[row-1]
	rec.recycled++
	rec.alive = true
	rec.archetype = sig
	rec.parent = 0
	rec.children = nil
	return Entity{id: row, recycled: rec.recycled, world: w}
}

// EntityAt returns the entity currently occupying row, if any. Used to
// re-resolve identity after a swap-remove relocates another entity into
// a row a caller previously held a stale handle for.
func (w *World) EntityAt(row int) (Entity, bool) {
	if row < 1 || row > len(w.entities) {
		return Entity{}, false
	}
	rec := &w.entities[row-1]
	if !rec.alive {
		return Entity{}, false
	}
	return Entity{id: row, recycled: rec.recycled, world: w}, true
}

// EntityCount returns the number of live entities across every
// partition.
func (w *World) EntityCount() int {
	return w.table.EntityCount()
}
