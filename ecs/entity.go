package ecs

import "math"

// Handle is a generational index: a slot number paired with the generation the
// slot had when the handle was issued. A handle is only valid while its
// allocator slot is live at the same generation, so a handle that outlives its
// slot can never alias the slot's next occupant.
type Handle struct {
	index      int
	generation uint64
}

// Index returns the slot number of the handle.
func (h Handle) Index() int {
	return h.index
}

// Generation returns the generation the slot had when the handle was issued.
func (h Handle) Generation() uint64 {
	return h.generation
}

// SparseIndex makes Handle usable as a SparseArray key.
func (h Handle) SparseIndex() int {
	return h.index
}

// Entity identifies an entity in a World. It carries no data of its own; it is
// purely a key into per-component storage.
type Entity = Handle

type allocatorEntry struct {
	live       bool
	generation uint64
}

// Allocator issues reusable generational handles. Freed slots are recycled in
// LIFO order with their generation bumped, which is what invalidates stale
// handles to the same slot.
type Allocator struct {
	entries []allocatorEntry
	free    []int
}

// NewAllocator creates an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Allocate returns a live handle, reusing a freed slot if one is available.
func (a *Allocator) Allocate() Handle {
	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]
		entry := &a.entries[index]
		if entry.live {
			panic("ecs: free list contains a live slot")
		}
		entry.live = true
		return Handle{index: index, generation: entry.generation}
	}
	a.entries = append(a.entries, allocatorEntry{live: true})
	return Handle{index: len(a.entries) - 1}
}

// Deallocate frees the handle's slot and bumps its generation. It reports
// whether the call had any effect: a stale or already-freed handle returns
// false and changes nothing.
//
// A slot whose generation counter would overflow panics instead of wrapping;
// wrapping would let an ancient handle alias the slot's next occupant.
func (a *Allocator) Deallocate(h Handle) bool {
	if h.index >= len(a.entries) {
		return false
	}
	entry := &a.entries[h.index]
	if !entry.live || entry.generation != h.generation {
		return false
	}
	if entry.generation == math.MaxUint64 {
		panic("ecs: generation overflow on slot reuse")
	}
	entry.live = false
	entry.generation++
	a.free = append(a.free, h.index)
	return true
}

// IsLive reports whether the handle still refers to a live slot at the same
// generation it was issued with.
func (a *Allocator) IsLive(h Handle) bool {
	if h.index >= len(a.entries) {
		return false
	}
	entry := a.entries[h.index]
	return entry.live && entry.generation == h.generation
}

// Live returns the number of currently live slots.
func (a *Allocator) Live() int {
	return len(a.entries) - len(a.free)
}
