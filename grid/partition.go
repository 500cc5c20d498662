package grid

import "github.com/ashfall-games/ecsgrid/mask"

// Range is a contiguous reserved span of row-ids within a Partition:
// Start <= End+1 <= Start+Capacity (End == Start-1 means zero live rows,
// all of Capacity still reserved). Live() rows occupy [Start, End].
type Range struct {
	Start, End, Capacity int
}

// Live returns how many rows in the range are currently occupied.
func (r *Range) Live() int { return r.End - r.Start + 1 }

// Free returns how much reserved capacity in the range is unused.
func (r *Range) Free() int { return r.Capacity - r.Live() }

// Partition holds every row sharing one archetype signature, as an
// ordered list of Ranges plus the subset still accepting new rows.
type Partition struct {
	Signature mask.Mask
	Ranges    []*Range
	toFill    []*Range
}

// liveCount sums Live() across every range in the partition.
func (p *Partition) liveCount() int {
	n := 0
	for _, r := range p.Ranges {
		n += r.Live()
	}
	return n
}

// removeFromToFill drops r from the side list of ranges still accepting
// new rows, once it is fully consumed.
func (p *Partition) removeFromToFill(r *Range) {
	for i, tf := range p.toFill {
		if tf == r {
			p.toFill = append(p.toFill[:i], p.toFill[i+1:]...)
			return
		}
	}
}
