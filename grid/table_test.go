package grid

import (
	"reflect"
	"testing"

	"github.com/ashfall-games/ecsgrid/mask"
)

type Position struct{ X, Y float64 }
type Velocity struct{ X, Y float64 }

func newTestTable(t *testing.T) *Table {
	t.Helper()
	schema := NewSchema()
	return NewTable(schema, TableEvents{})
}

func registerPosVel(t *testing.T, tbl *Table) (ElementType, ElementType) {
	t.Helper()
	pos := FactoryNewElementType[Position]()
	vel := FactoryNewElementType[Velocity]()
	if err := RegisterComponent[Position](tbl, pos); err != nil {
		t.Fatalf("register Position: %v", err)
	}
	if err := RegisterComponent[Velocity](tbl, vel); err != nil {
		t.Fatalf("register Velocity: %v", err)
	}
	return pos, vel
}

func TestAddToPartitionAndColumnWrite(t *testing.T) {
	tbl := newTestTable(t)
	pos, _ := registerPosVel(t, tbl)
	posAccessor := FactoryNewAccessor[Position](pos)

	var sig mask.Mask
	bit, _ := tbl.Bit(pos)
	sig.Mark(bit)

	row := tbl.AddToPartition(sig)
	if err := posAccessor.Set(row, tbl, Position{X: 1, Y: 2}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got := posAccessor.Get(row, tbl)
	if got == nil || got.X != 1 || got.Y != 2 {
		t.Fatalf("Get = %v; want {1 2}", got)
	}
	if tbl.EntityCount() != 1 {
		t.Fatalf("EntityCount = %d; want 1", tbl.EntityCount())
	}
}

func TestSwapRemoveRelocatesLastLiveRow(t *testing.T) {
	tbl := newTestTable(t)
	pos, _ := registerPosVel(t, tbl)
	posAccessor := FactoryNewAccessor[Position](pos)

	var sig mask.Mask
	bit, _ := tbl.Bit(pos)
	sig.Mark(bit)

	a := tbl.AddToPartition(sig)
	b := tbl.AddToPartition(sig)
	c := tbl.AddToPartition(sig)
	posAccessor.Set(a, tbl, Position{X: 1})
	posAccessor.Set(b, tbl, Position{X: 2})
	posAccessor.Set(c, tbl, Position{X: 3})

	movedFrom, moved, err := tbl.SwapRemove(b)
	if err != nil {
		t.Fatalf("SwapRemove: %v", err)
	}
	if !moved || movedFrom != c {
		t.Fatalf("SwapRemove(b) = movedFrom %d, moved %v; want %d, true", movedFrom, moved, c)
	}

	// c's data now lives at b's old row.
	got := posAccessor.Get(b, tbl)
	if got == nil || got.X != 3 {
		t.Fatalf("row b after swap-remove = %v; want X=3 (was c)", got)
	}
	if tbl.EntityCount() != 2 {
		t.Fatalf("EntityCount = %d; want 2", tbl.EntityCount())
	}
	_ = a
}

func TestChangeArchetypeNoOpWhenSignatureUnchanged(t *testing.T) {
	tbl := newTestTable(t)
	pos, _ := registerPosVel(t, tbl)

	var sig mask.Mask
	bit, _ := tbl.Bit(pos)
	sig.Mark(bit)

	row := tbl.AddToPartition(sig)
	newRow, _, moved, err := tbl.ChangeArchetype(row, sig)
	if err != nil {
		t.Fatalf("ChangeArchetype: %v", err)
	}
	if moved || newRow != row {
		t.Fatalf("expected no-op, got newRow=%d moved=%v", newRow, moved)
	}
}

func TestChangeArchetypeMigratesSharedComponents(t *testing.T) {
	tbl := newTestTable(t)
	pos, vel := registerPosVel(t, tbl)
	posAccessor := FactoryNewAccessor[Position](pos)
	velAccessor := FactoryNewAccessor[Velocity](vel)

	var posOnly, posVel mask.Mask
	posBit, _ := tbl.Bit(pos)
	velBit, _ := tbl.Bit(vel)
	posOnly.Mark(posBit)
	posVel.Mark(posBit)
	posVel.Mark(velBit)

	row := tbl.AddToPartition(posOnly)
	posAccessor.Set(row, tbl, Position{X: 7, Y: 8})

	newRow, _, _, err := tbl.ChangeArchetype(row, posVel)
	if err != nil {
		t.Fatalf("ChangeArchetype: %v", err)
	}

	got := posAccessor.Get(newRow, tbl)
	if got == nil || got.X != 7 || got.Y != 8 {
		t.Fatalf("Position not carried over: %v", got)
	}
	if !velAccessor.Check(tbl, newRow) {
		t.Fatalf("expected Velocity bit set after migration")
	}
	if posAccessor.Check(tbl, row) {
		t.Fatalf("old row should no longer report Position")
	}
}

func TestAllocateRangeBulkSpawnAndSum(t *testing.T) {
	tbl := newTestTable(t)
	pos, _ := registerPosVel(t, tbl)
	posAccessor := FactoryNewAccessor[Position](pos)

	var sig mask.Mask
	bit, _ := tbl.Bit(pos)
	sig.Mark(bit)

	ranges := tbl.AllocateRange(sig, 10000)
	total := 0
	for _, r := range ranges {
		total += r.Live()
	}
	if total != 10000 {
		t.Fatalf("allocated %d rows; want 10000", total)
	}

	sum := 0.0
	for _, r := range ranges {
		for row := r.Start; row <= r.End; row++ {
			posAccessor.Set(row, tbl, Position{X: 5})
			sum += posAccessor.Get(row, tbl).X
		}
	}
	if sum != 50000 {
		t.Fatalf("sum = %v; want 50000", sum)
	}
}

// distinctElementType returns an ElementType over the n-length array
// type of byte, a cheap way to mint mask.MaxComponents+1 genuinely
// distinct reflect.Types without declaring that many named Go types.
func distinctElementType(n int) ElementType {
	return &elementTypeImpl{typ: reflect.ArrayOf(n, reflect.TypeOf(byte(0)))}
}

func TestCapacityExceeded(t *testing.T) {
	s := NewSchema()
	for i := 0; i < mask.MaxComponents; i++ {
		if err := s.Register(distinctElementType(i)); err != nil {
			t.Fatalf("register #%d: %v", i, err)
		}
	}
	if err := s.Register(distinctElementType(mask.MaxComponents)); err == nil {
		t.Fatalf("expected CapacityExceededError registering the %d-th type", mask.MaxComponents+1)
	}
}
