package cache

import "testing"

func TestGetSet(t *testing.T) {
	c := New[string, int](10)
	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected a miss on an empty cache")
	}
	c.Set("a", 1)
	v, ok := c.Get("a")
	if !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %v, want 1, true", v, ok)
	}
}

func TestSoftLimitEvictsOldest(t *testing.T) {
	c := New[int, int](4)
	for i := 0; i < 5; i++ {
		c.Set(i, i)
	}
	if c.Len() > 4 {
		t.Fatalf("cache holds %d entries, soft limit is 4", c.Len())
	}
	// The newest entry always survives an eviction pass.
	if _, ok := c.Get(4); !ok {
		t.Fatal("newest entry was evicted")
	}
}

func TestGetRefreshesAccessOrder(t *testing.T) {
	c := New[int, int](4)
	for i := 0; i < 4; i++ {
		c.Set(i, i)
	}
	c.Get(0) // touch the oldest so it outlives the next eviction
	c.Set(100, 100)
	if _, ok := c.Get(0); !ok {
		t.Fatal("recently accessed entry was evicted")
	}
}

func TestClear(t *testing.T) {
	c := New[int, int](4)
	c.Set(1, 1)
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("Len after Clear = %d, want 0", c.Len())
	}
	if _, ok := c.Get(1); ok {
		t.Fatal("entry survived Clear")
	}
}

func TestDelete(t *testing.T) {
	c := New[int, int](4)
	c.Set(1, 1)
	if !c.Delete(1) {
		t.Fatal("Delete reported missing for a present key")
	}
	if c.Delete(1) {
		t.Fatal("Delete reported present for an absent key")
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New[string, int](4)
	calls := 0
	create := func() int { calls++; return 7 }
	if v := c.GetOrCreate("k", create); v != 7 {
		t.Fatalf("GetOrCreate = %d, want 7", v)
	}
	if v := c.GetOrCreate("k", create); v != 7 {
		t.Fatalf("GetOrCreate second call = %d, want cached 7", v)
	}
	if calls != 1 {
		t.Fatalf("create ran %d times, want 1", calls)
	}
}
