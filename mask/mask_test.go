package mask

import "testing"

func TestMarkUnmark(t *testing.T) {
	var m Mask
	m.Mark(0)
	m.Mark(65)
	m.Mark(127)

	if !m.Has(0) || !m.Has(65) || !m.Has(127) {
		t.Fatalf("expected bits 0, 65, 127 set, got %v", m)
	}
	if m.Has(1) || m.Has(64) {
		t.Fatalf("unexpected bits set in %v", m)
	}

	m.Unmark(65)
	if m.Has(65) {
		t.Fatalf("expected bit 65 cleared after Unmark")
	}
}

func TestMarkPanicsOverCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic marking bit >= MaxComponents")
		}
	}()
	var m Mask
	m.Mark(MaxComponents)
}

func TestContainsAllAnyNone(t *testing.T) {
	var required, archetype Mask
	required.Mark(1)
	required.Mark(2)
	archetype.Mark(1)
	archetype.Mark(2)
	archetype.Mark(3)

	if !archetype.ContainsAll(required) {
		t.Fatalf("expected archetype to contain required bits")
	}

	var forbidden Mask
	forbidden.Mark(3)
	if archetype.ContainsNone(forbidden) {
		t.Fatalf("expected archetype to contain forbidden bit 3")
	}

	var other Mask
	other.Mark(9)
	if archetype.ContainsAny(other) {
		t.Fatalf("did not expect overlap with disjoint mask")
	}
}

func TestMaskAsMapKey(t *testing.T) {
	var a, b Mask
	a.Mark(4)
	b.Mark(4)

	m := map[Mask]int{a: 1}
	if v, ok := m[b]; !ok || v != 1 {
		t.Fatalf("expected equal masks to collide as map keys")
	}
}

func TestSetOps(t *testing.T) {
	var a, b Mask
	a.Mark(1)
	a.Mark(2)
	b.Mark(2)
	b.Mark(3)

	union := a.Union(b)
	if !union.Has(1) || !union.Has(2) || !union.Has(3) {
		t.Fatalf("union missing bits: %v", union)
	}

	inter := a.Intersect(b)
	if !inter.Has(2) {
		t.Fatalf("intersect expected only bit 2: %v", inter)
	}
	if inter.Has(1) || inter.Has(3) {
		t.Fatalf("intersect had extra bits: %v", inter)
	}

	without := a.Without(b)
	if !without.Has(1) || without.Has(2) {
		t.Fatalf("without expected only bit 1: %v", without)
	}
}
