package grid

import "github.com/ashfall-games/ecsgrid/mask"

// DefaultPartitionCapacity is the capacity a freshly created partition
// range reserves, per spec §3.
const DefaultPartitionCapacity = 4096

// rangeOverhead pads a bulk allocation so the next spawn into the same
// partition doesn't immediately need another range.
const rangeOverhead = 64

// TableEvents are optional hooks fired on structural changes; nil
// fields are simply not called. Config.SetTableEvents wires these in.
type TableEvents struct {
	OnRowAllocated   func(row int, sig mask.Mask)
	OnRowRemoved     func(row int, sig mask.Mask)
	OnArchetypeMoved func(row int, oldSig, newSig mask.Mask, newRow int)
}

// Table is the single column-major store shared by every archetype in a
// world: one Column per registered component, partitioned by archetype
// signature into row-id ranges.
type Table struct {
	schema          *Schema
	columns         map[uint32]anyColumn
	partitions      map[mask.Mask]*Partition
	partitionOrder  []*Partition
	nextRow         int
	defaultCapacity int
	events          TableEvents
	partitionGen    int
}

// NewTable builds an empty Table over schema.
func NewTable(schema *Schema, events TableEvents) *Table {
	return &Table{
		schema:          schema,
		columns:         make(map[uint32]anyColumn),
		partitions:      make(map[mask.Mask]*Partition),
		nextRow:         1,
		defaultCapacity: DefaultPartitionCapacity,
		events:          events,
	}
}

// Schema returns the table's component registry.
func (t *Table) Schema() *Schema { return t.schema }

// SetDefaultCapacity overrides the capacity new partition ranges
// reserve; a non-positive n is ignored.
func (t *Table) SetDefaultCapacity(n int) {
	if n > 0 {
		t.defaultCapacity = n
	}
}

// Bit returns et's schema bit index.
func (t *Table) Bit(et ElementType) (uint32, bool) {
	return t.schema.RowIndexFor(et)
}

// RegisterComponent registers et in the schema and, if needed, installs
// its Column[T]. Package-level because Go forbids generic methods.
func RegisterComponent[T any](t *Table, et ElementType) error {
	if err := t.schema.Register(et); err != nil {
		return err
	}
	bit, _ := t.schema.RowIndexFor(et)
	if _, ok := t.columns[bit]; !ok {
		t.columns[bit] = newColumn[T](et)
	}
	return nil
}

// ColumnFor returns the typed Column backing et, if et is registered and
// was registered with type T.
func ColumnFor[T any](t *Table, et ElementType) (*Column[T], error) {
	bit, ok := t.schema.RowIndexFor(et)
	if !ok {
		return nil, UnknownElementTypeError{ElementType: et}
	}
	col, ok := t.columns[bit]
	if !ok {
		return nil, UnknownElementTypeError{ElementType: et}
	}
	typed, ok := col.(*Column[T])
	if !ok {
		return nil, UnknownElementTypeError{ElementType: et}
	}
	return typed, nil
}

// Partitions returns every partition in the table, in creation order.
func (t *Table) Partitions() []*Partition {
	return t.partitionOrder
}

// RowSignature returns the archetype signature of the partition row
// belongs to.
func (t *Table) RowSignature(row int) (mask.Mask, bool) {
	for _, p := range t.partitionOrder {
		if p.ownsRow(row) {
			return p.Signature, true
		}
	}
	return mask.Mask{}, false
}

func (p *Partition) ownsRow(row int) bool {
	for _, r := range p.Ranges {
		if row >= r.Start && row <= r.End {
			return true
		}
	}
	return false
}

func (p *Partition) rangeFor(row int) *Range {
	for _, r := range p.Ranges {
		if row >= r.Start && row <= r.End {
			return r
		}
	}
	return nil
}

// CreatePartition returns the partition for sig, creating it (with one
// empty range of default capacity) if it doesn't exist yet. Idempotent.
func (t *Table) CreatePartition(sig mask.Mask) *Partition {
	if p, ok := t.partitions[sig]; ok {
		return p
	}
	p := &Partition{Signature: sig}
	t.growPartition(p, t.defaultCapacity)
	t.partitions[sig] = p
	t.partitionOrder = append(t.partitionOrder, p)
	t.partitionGen++
	return p
}

// PartitionGeneration increases every time a new partition is created,
// letting a caller detect that a cached list of matching partitions may
// now be stale.
func (t *Table) PartitionGeneration() int {
	return t.partitionGen
}

// growPartition appends a freshly allocated range of the given capacity,
// carved out of the table's global row-id space.
func (t *Table) growPartition(p *Partition, capacity int) *Range {
	r := &Range{Start: t.nextRow, End: t.nextRow - 1, Capacity: capacity}
	t.nextRow += capacity
	p.Ranges = append(p.Ranges, r)
	p.toFill = append(p.toFill, r)
	return r
}

// AddToPartition allocates one row in sig's partition, growing it if
// every existing range is full, and returns the new row-id.
func (t *Table) AddToPartition(sig mask.Mask) int {
	p := t.CreatePartition(sig)
	row := t.takeOne(p)
	if t.events.OnRowAllocated != nil {
		t.events.OnRowAllocated(row, sig)
	}
	return row
}

func (t *Table) takeOne(p *Partition) int {
	if len(p.toFill) == 0 {
		t.growPartition(p, t.defaultCapacity)
	}
	r := p.toFill[len(p.toFill)-1]
	row := r.Start + r.Live()
	r.End = row
	if r.Live() == r.Capacity {
		p.removeFromToFill(r)
	}
	for bit := uint32(0); bit < mask.MaxComponents; bit++ {
		if !p.Signature.Has(bit) {
			continue
		}
		if col, ok := t.columns[bit]; ok {
			col.preallocRange(row, row)
		}
	}
	return row
}

// AllocateRange bulk-allocates n rows in sig's partition, consuming
// to_fill space first and appending new ranges only as needed. It
// returns every contiguous sub-range actually written, which may be
// more than one if to_fill was partially used.
func (t *Table) AllocateRange(sig mask.Mask, n int) []Range {
	if n <= 0 {
		return nil
	}
	p := t.CreatePartition(sig)
	var written []Range
	remaining := n
	for remaining > 0 {
		if len(p.toFill) == 0 {
			cap := remaining + rangeOverhead
			if cap < t.defaultCapacity {
				cap = t.defaultCapacity
			}
			t.growPartition(p, cap)
		}
		r := p.toFill[len(p.toFill)-1]
		take := r.Free()
		if take > remaining {
			take = remaining
		}
		subStart := r.Start + r.Live()
		r.End += take
		subEnd := subStart + take - 1
		written = append(written, Range{Start: subStart, End: subEnd, Capacity: take})
		remaining -= take
		if r.Live() == r.Capacity {
			p.removeFromToFill(r)
		}

		for bit := uint32(0); bit < mask.MaxComponents; bit++ {
			if !sig.Has(bit) {
				continue
			}
			if col, ok := t.columns[bit]; ok {
				col.preallocRange(subStart, subEnd)
			}
		}
	}
	if t.events.OnRowAllocated != nil {
		for _, r := range written {
			for row := r.Start; row <= r.End; row++ {
				t.events.OnRowAllocated(row, sig)
			}
		}
	}
	return written
}

// SwapRemove removes row from its partition: if row is the last live row
// in its partition, the range simply shrinks; otherwise the partition's
// last live row is swapped into row's slot across every column the
// archetype carries, and that moved row-id is returned so the caller
// (entity bookkeeping) can relocate its own records.
func (t *Table) SwapRemove(row int) (movedFrom int, moved bool, err error) {
	sig, ok := t.RowSignature(row)
	if !ok {
		return 0, false, OutOfRangeError{Index: row}
	}
	p := t.partitions[sig]

	var lastRange *Range
	for i := len(p.Ranges) - 1; i >= 0; i-- {
		if p.Ranges[i].Live() > 0 {
			lastRange = p.Ranges[i]
			break
		}
	}
	if lastRange == nil {
		return 0, false, OutOfRangeError{Index: row}
	}
	j := lastRange.End

	for bit := uint32(0); bit < mask.MaxComponents; bit++ {
		if !sig.Has(bit) {
			continue
		}
		col, ok := t.columns[bit]
		if !ok {
			continue
		}
		if row != j {
			if err := col.swap(row, j); err != nil {
				return 0, false, err
			}
		}
		if err := col.delete(j); err != nil {
			return 0, false, err
		}
	}
	lastRange.End--
	t.ensureInToFill(p, lastRange)

	if t.events.OnRowRemoved != nil {
		t.events.OnRowRemoved(j, sig)
	}
	if row == j {
		return 0, false, nil
	}
	return j, true, nil
}

func (t *Table) ensureInToFill(p *Partition, r *Range) {
	if r.Live() >= r.Capacity {
		return
	}
	for _, tf := range p.toFill {
		if tf == r {
			return
		}
	}
	p.toFill = append(p.toFill, r)
}

// ChangeArchetype migrates row to a partition with newSig, copying every
// component value shared between the old and new signatures, and
// swap-removing row from its old partition. It is a no-op (returning row
// unchanged) if newSig equals row's current signature. Component bits
// only in newSig start at their zero value for the caller to fill; values
// for bits only in the old signature are dropped from their columns by
// the swap-remove out of the old partition.
func (t *Table) ChangeArchetype(row int, newSig mask.Mask) (newRow int, movedFrom int, moved bool, err error) {
	oldSig, ok := t.RowSignature(row)
	if !ok {
		return 0, 0, false, OutOfRangeError{Index: row}
	}
	if oldSig.Equals(newSig) {
		return row, 0, false, nil
	}

	newP := t.CreatePartition(newSig)
	dst := t.takeOne(newP)

	shared := oldSig.Intersect(newSig)
	for bit := uint32(0); bit < mask.MaxComponents; bit++ {
		if !shared.Has(bit) {
			continue
		}
		col, ok := t.columns[bit]
		if !ok {
			continue
		}
		if err := col.copyValue(dst, row); err != nil {
			return 0, 0, false, err
		}
	}

	movedFrom, moved, err = t.SwapRemove(row)
	if err != nil {
		return 0, 0, false, err
	}
	if t.events.OnArchetypeMoved != nil {
		t.events.OnArchetypeMoved(row, oldSig, newSig, dst)
	}
	return dst, movedFrom, moved, nil
}

// EntityCount returns the total number of live rows across every
// partition.
func (t *Table) EntityCount() int {
	n := 0
	for _, p := range t.partitionOrder {
		n += p.liveCount()
	}
	return n
}
