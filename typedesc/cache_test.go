package typedesc

import "testing"

func TestCacheGetMiss(t *testing.T) {
	c := NewCache[int]()
	if _, ok := c.Get(NewInt()); ok {
		t.Fatalf("expected miss on empty cache")
	}
}

func TestCachePutGet(t *testing.T) {
	c := NewCache[string]()
	intType := NewInt()
	c.Put(intType, "cached-int")
	got, ok := c.Get(intType)
	if !ok || got != "cached-int" {
		t.Fatalf("expected cached-int, got %q ok=%v", got, ok)
	}

	// A structurally-equal but distinct *T is a cache miss: Cache keys on
	// pointer identity, not typedesc.Equal.
	if _, ok := c.Get(NewInt()); ok {
		t.Fatalf("expected miss for a distinct *T of the same structural type")
	}
}

func TestCacheBuildingGuard(t *testing.T) {
	c := NewCache[int]()
	rt := NewRecord(map[string]*T{"x": NewInt()})
	if c.Building(rt) {
		t.Fatalf("expected not building before EnterBuilding")
	}
	c.EnterBuilding(rt)
	if !c.Building(rt) {
		t.Fatalf("expected building after EnterBuilding")
	}
	c.ExitBuilding(rt)
	if c.Building(rt) {
		t.Fatalf("expected not building after ExitBuilding")
	}
}
