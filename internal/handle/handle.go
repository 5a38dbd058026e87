// Package handle implements the generational index pool the context uses to
// hand out opaque, type-safe references to GPU resources (spec.md §3, §9)
// without reference counting or raw pointers: a Handle stays valid only as
// long as its generation matches the slot's current generation, so a stale
// handle from a destroyed resource is detected rather than dereferenced.
package handle

// Handle identifies a slot in a Pool. The zero Handle is never issued by
// Create and is reserved to mean "no resource" (spec.md §3's "empty handle"
// convention, mirrored by SubmitHandle elsewhere in this module).
type Handle struct {
	index      uint32
	generation uint32
}

// Empty reports whether h is the zero Handle.
func (h Handle) Empty() bool { return h.index == 0 && h.generation == 0 }

// Pool is a generic generational-index object pool. T is stored by value;
// callers that need reference semantics store a pointer type as T.
type Pool[T any] struct {
	objects []entry[T]
	free    []uint32
}

type entry[T any] struct {
	value      T
	generation uint32
	occupied   bool
}

// NewPool returns an empty Pool. Slot 0 is burned at construction so that
// index 0 can never be issued, keeping it free for the zero Handle sentinel.
func NewPool[T any]() *Pool[T] {
	p := &Pool[T]{}
	p.objects = append(p.objects, entry[T]{generation: 1, occupied: true})
	return p
}

// Create inserts value and returns a Handle identifying it, reusing the
// most recently freed slot (if any). Destroy already bumped that slot's
// generation, so any Handle still referencing the old occupant fails Get.
func (p *Pool[T]) Create(value T) Handle {
	if n := len(p.free); n > 0 {
		index := p.free[n-1]
		p.free = p.free[:n-1]
		slot := &p.objects[index]
		slot.value = value
		slot.occupied = true
		return Handle{index: index, generation: slot.generation}
	}

	index := uint32(len(p.objects))
	p.objects = append(p.objects, entry[T]{value: value, generation: 1, occupied: true})
	return Handle{index: index, generation: 1}
}

// Get returns the object referenced by h and true, or the zero value and
// false if h is empty, out of range, stale, or already destroyed.
func (p *Pool[T]) Get(h Handle) (T, bool) {
	var zero T
	if h.Empty() || int(h.index) >= len(p.objects) {
		return zero, false
	}
	slot := &p.objects[h.index]
	if !slot.occupied || slot.generation != h.generation {
		return zero, false
	}
	return slot.value, true
}

// Destroy removes the object referenced by h and frees its slot for reuse.
// Destroying an empty, stale, or already-destroyed handle is a silent no-op
// (spec.md §7.4: double-destroy is idempotent, not a fatal assertion).
func (p *Pool[T]) Destroy(h Handle) {
	if h.Empty() || int(h.index) >= len(p.objects) {
		return
	}
	slot := &p.objects[h.index]
	if !slot.occupied || slot.generation != h.generation {
		return
	}
	var zero T
	slot.value = zero
	slot.occupied = false
	slot.generation++
	p.free = append(p.free, h.index)
}

// NumObjects returns the count of currently live (non-destroyed) objects.
func (p *Pool[T]) NumObjects() int {
	count := 0
	for _, e := range p.objects[1:] {
		if e.occupied {
			count++
		}
	}
	return count
}

// Clear destroys every live object and calls onDestroy (if non-nil) for
// each one before removing it, in slot order. Used by the context destructor
// to log and release leaked textures/shader modules (vulkanClasses.cpp's
// destructor logs remaining TexturePool/ShaderModulePool entries).
func (p *Pool[T]) Clear(onDestroy func(Handle, T)) {
	for index := uint32(1); index < uint32(len(p.objects)); index++ {
		slot := &p.objects[index]
		if !slot.occupied {
			continue
		}
		h := Handle{index: index, generation: slot.generation}
		if onDestroy != nil {
			onDestroy(h, slot.value)
		}
		var zero T
		slot.value = zero
		slot.occupied = false
		slot.generation++
		p.free = append(p.free, index)
	}
}
