package ecs

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// iface mirrors the memory layout of an interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// typeID returns a process-unique integer for a reflect.Type, derived from
// the type descriptor pointer. Stable for the process lifetime, which is all
// the in-memory resource map needs.
func typeID(t reflect.Type) int {
	ptr := (*iface)(unsafe.Pointer(&t)).data
	return int(uintptr(ptr))
}

// resourceSlot holds one process-wide value behind its own read/write lock.
// Independent slots never contend, so borrowing two different resource types
// simultaneously is always safe; conflicting borrows of the same type in one
// invocation fail fast via try-lock instead of deadlocking.
type resourceSlot struct {
	mu    sync.RWMutex
	typ   reflect.Type
	value any // always *T for the slot's type
}

// resourceMap is a type-indexed map of independently lockable slots. It is a
// plain field of World, constructed and torn down with it; there is no
// ambient global.
type resourceMap struct {
	slots *intmap.Map[int, *resourceSlot]
}

func newResourceMap() resourceMap {
	return resourceMap{slots: intmap.New[int, *resourceSlot](16)}
}

func (m *resourceMap) lookup(typ reflect.Type) (*resourceSlot, error) {
	slot, ok := m.slots.Get(typeID(typ))
	if !ok {
		return nil, &ResourceNotFoundError{Type: typ}
	}
	return slot, nil
}

// InsertResource stores v as the single process-wide instance of type T,
// replacing any previous instance.
func InsertResource[T any](w *World, v T) {
	typ := reflect.TypeFor[T]()
	w.resources.slots.Put(typeID(typ), &resourceSlot{typ: typ, value: &v})
}

// RemoveResource removes and returns the resource of type T. Removal requires
// the resource to be unborrowed; removing while a guard is live panics.
func RemoveResource[T any](w *World) (T, bool) {
	typ := reflect.TypeFor[T]()
	slot, ok := w.resources.slots.Get(typeID(typ))
	if !ok {
		var zero T
		return zero, false
	}
	if !slot.mu.TryLock() {
		panic(&ResourceBusyError{Type: typ})
	}
	defer slot.mu.Unlock()
	w.resources.slots.Del(typeID(typ))
	return *slot.value.(*T), true
}

// Res is a shared borrow of the resource of type T. Obtained either from
// ReadResource or, inside a system, as a struct field resolved before each
// Execute. The pointed-to value must not be mutated through a Res.
type Res[T any] struct {
	slot *resourceSlot
	v    *T
}

// ReadResource acquires a shared borrow of the resource of type T. The caller
// must Release the returned guard. Fails with ResourceNotFoundError if T was
// never inserted and ResourceBusyError if an exclusive borrow is live.
func ReadResource[T any](w *World) (Res[T], error) {
	var r Res[T]
	if err := r.acquire(w); err != nil {
		return Res[T]{}, err
	}
	return r, nil
}

// Get returns the borrowed value.
func (r *Res[T]) Get() *T {
	return r.v
}

// Release drops the borrow. Safe to call on an already-released guard.
func (r *Res[T]) Release() {
	r.release()
}

func (r *Res[T]) initParam(w *World) error {
	return nil
}

func (r *Res[T]) acquire(w *World) error {
	slot, err := w.resources.lookup(reflect.TypeFor[T]())
	if err != nil {
		return err
	}
	if !slot.mu.TryRLock() {
		return &ResourceBusyError{Type: slot.typ}
	}
	r.slot = slot
	r.v = slot.value.(*T)
	return nil
}

func (r *Res[T]) release() {
	if r.slot == nil {
		return
	}
	r.slot.mu.RUnlock()
	r.slot = nil
	r.v = nil
}

// ResMut is an exclusive borrow of the resource of type T.
type ResMut[T any] struct {
	slot *resourceSlot
	v    *T
}

// WriteResource acquires an exclusive borrow of the resource of type T. The
// caller must Release the returned guard. Fails with ResourceNotFoundError if
// T was never inserted and ResourceBusyError if any other borrow is live.
func WriteResource[T any](w *World) (ResMut[T], error) {
	var r ResMut[T]
	if err := r.acquire(w); err != nil {
		return ResMut[T]{}, err
	}
	return r, nil
}

// Get returns the borrowed value.
func (r *ResMut[T]) Get() *T {
	return r.v
}

// Release drops the borrow. Safe to call on an already-released guard.
func (r *ResMut[T]) Release() {
	r.release()
}

func (r *ResMut[T]) initParam(w *World) error {
	return nil
}

func (r *ResMut[T]) acquire(w *World) error {
	slot, err := w.resources.lookup(reflect.TypeFor[T]())
	if err != nil {
		return err
	}
	if !slot.mu.TryLock() {
		return &ResourceBusyError{Type: slot.typ}
	}
	r.slot = slot
	r.v = slot.value.(*T)
	return nil
}

func (r *ResMut[T]) release() {
	if r.slot == nil {
		return
	}
	r.slot.mu.Unlock()
	r.slot = nil
	r.v = nil
}
