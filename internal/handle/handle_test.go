package handle

import "testing"

func TestCreateGet(t *testing.T) {
	p := NewPool[string]()

	h := p.Create("first")
	if h.Empty() {
		t.Error("Create returned the empty handle")
	}

	v, ok := p.Get(h)
	if !ok || v != "first" {
		t.Error("Get did not return the created value")
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	p := NewPool[int]()

	h := p.Create(42)
	p.Destroy(h)

	if _, ok := p.Get(h); ok {
		t.Error("Get succeeded after Destroy")
	}

	// Destroying twice must not panic or corrupt the free list.
	p.Destroy(h)
	p.Destroy(Handle{})

	if p.NumObjects() != 0 {
		t.Error("NumObjects nonzero after destroying the only object")
	}
}

func TestGenerationDefeatsStaleHandle(t *testing.T) {
	p := NewPool[int]()

	h1 := p.Create(1)
	p.Destroy(h1)

	h2 := p.Create(2)
	if h2.index != h1.index {
		t.Fatalf("expected reused slot, got fresh index %d vs %d", h2.index, h1.index)
	}
	if h2.generation == h1.generation {
		t.Error("reused slot did not bump generation")
	}

	if _, ok := p.Get(h1); ok {
		t.Error("stale handle from before reuse still resolved")
	}
	if v, ok := p.Get(h2); !ok || v != 2 {
		t.Error("fresh handle into the reused slot failed to resolve")
	}
}

func TestNumObjectsAndClear(t *testing.T) {
	p := NewPool[int]()

	a := p.Create(1)
	_ = p.Create(2)
	p.Create(3)

	if p.NumObjects() != 3 {
		t.Errorf("NumObjects = %d, want 3", p.NumObjects())
	}

	p.Destroy(a)
	if p.NumObjects() != 2 {
		t.Errorf("NumObjects = %d, want 2 after destroy", p.NumObjects())
	}

	var cleared []int
	p.Clear(func(_ Handle, v int) { cleared = append(cleared, v) })

	if p.NumObjects() != 0 {
		t.Error("NumObjects nonzero after Clear")
	}
	if len(cleared) != 2 {
		t.Errorf("Clear invoked callback %d times, want 2", len(cleared))
	}
}
