package ecsgrid

import "testing"

func TestSimpleCacheRegisterAndGet(t *testing.T) {
	c := FactoryNewCache[int](2)
	idx, err := c.Register("a", 1)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if *c.GetItem(idx) != 1 {
		t.Fatalf("GetItem(%d) = %d; want 1", idx, *c.GetItem(idx))
	}
	if _, err := c.Register("b", 2); err != nil {
		t.Fatalf("Register b: %v", err)
	}
	if _, err := c.Register("c", 3); err == nil {
		t.Fatalf("expected CapacityExceededError at capacity")
	}
}

func TestSimpleCacheRegisterSameKeyOverwrites(t *testing.T) {
	c := FactoryNewCache[int](1)
	idxA, _ := c.Register("k", 1)
	idxB, err := c.Register("k", 2)
	if err != nil {
		t.Fatalf("Register same key: %v", err)
	}
	if idxA != idxB {
		t.Fatalf("re-registering the same key should reuse its slot")
	}
	if *c.GetItem(idxB) != 2 {
		t.Fatalf("GetItem after overwrite = %d; want 2", *c.GetItem(idxB))
	}
}

func TestSimpleCacheClear(t *testing.T) {
	c := FactoryNewCache[int](2)
	c.Register("a", 1)
	c.Clear()
	if _, ok := c.GetIndex("a"); ok {
		t.Fatalf("expected cache to be empty after Clear")
	}
}
