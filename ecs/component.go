package ecs

import "reflect"

// ComponentID identifies a registered component type within one World. IDs
// are minted sequentially at registration and are meaningless outside the
// World that issued them.
type ComponentID uint32

// SparseIndex makes ComponentID usable as a SparseArray key.
func (id ComponentID) SparseIndex() int {
	return int(id)
}

// ComponentSparseSet stores one component value for every entity that
// currently holds a given component type. A sparse array keyed by entity slot
// maps to a dense index; the dense entity list and the type-erased value
// buffer are parallel, so entities[d] always describes the value at dense
// index d.
type ComponentSparseSet struct {
	sparse   SparseArray[Entity, int]
	entities []Entity
	dense    *BlobBuffer
}

// NewComponentSparseSet creates an empty store for component type T.
func NewComponentSparseSet[T any]() *ComponentSparseSet {
	return &ComponentSparseSet{dense: NewBlobBuffer[T]()}
}

// NewComponentSparseSetWithDrop creates an empty store for component type T
// whose values are passed to drop when discarded.
func NewComponentSparseSetWithDrop[T any](drop func(*T)) *ComponentSparseSet {
	return &ComponentSparseSet{dense: NewBlobBufferWithDrop(drop)}
}

// ComponentInsert stores v for entity e, overwriting in place if e already
// holds the component.
func ComponentInsert[T any](s *ComponentSparseSet, e Entity, v T) {
	if di, ok := s.sparse.Get(e); ok {
		*BlobGet[T](s.dense, di) = v
		return
	}
	s.sparse.Insert(e, s.dense.Len())
	s.entities = append(s.entities, e)
	BlobPush(s.dense, v)
}

// ComponentGet returns a pointer to e's component value, or nil if e does not
// hold the component.
func ComponentGet[T any](s *ComponentSparseSet, e Entity) *T {
	di, ok := s.sparse.Get(e)
	if !ok {
		return nil
	}
	return BlobGet[T](s.dense, di)
}

// insertValue is the type-erased insert used by the bundle and command paths.
func (s *ComponentSparseSet) insertValue(e Entity, v reflect.Value) {
	if di, ok := s.sparse.Get(e); ok {
		s.dense.setValue(di, v)
		return
	}
	s.sparse.Insert(e, s.dense.Len())
	s.entities = append(s.entities, e)
	s.dense.pushValue(v)
}

// RemoveEntity discards e's component value via swap-remove and reports
// whether e held the component. The swapped-in survivor's sparse back-pointer
// is repaired, so surviving entries stay consistent.
func (s *ComponentSparseSet) RemoveEntity(e Entity) bool {
	di, ok := s.sparse.Remove(e)
	if !ok {
		return false
	}
	s.dense.SwapRemove(di)
	last := len(s.entities) - 1
	s.entities[di] = s.entities[last]
	s.entities = s.entities[:last]
	if di < len(s.entities) {
		s.sparse.Insert(s.entities[di], di)
	}
	return true
}

// Contains reports whether e currently holds the component.
func (s *ComponentSparseSet) Contains(e Entity) bool {
	return s.sparse.Contains(e)
}

// Entities returns the dense entity list in storage order. The slice is a
// view into the set; callers must not retain it across mutations.
func (s *ComponentSparseSet) Entities() []Entity {
	return s.entities
}

// Len returns the number of entities holding the component.
func (s *ComponentSparseSet) Len() int {
	return s.dense.Len()
}

// ElemType returns the stored component type.
func (s *ComponentSparseSet) ElemType() reflect.Type {
	return s.dense.ElemType()
}

// Close discards all stored values, running the registered destructor on each.
func (s *ComponentSparseSet) Close() {
	s.dense.Close()
	s.entities = nil
	s.sparse = SparseArray[Entity, int]{}
}

type componentInfo struct {
	id  ComponentID
	typ reflect.Type
}

// componentRegistry maps component types to their IDs and owns one
// ComponentSparseSet per registered ID, itself held in a sparse set keyed by
// ComponentID.
type componentRegistry struct {
	infos   []componentInfo
	indices map[reflect.Type]ComponentID
	sets    SparseSet[ComponentID, *ComponentSparseSet]
}

func newComponentRegistry() componentRegistry {
	return componentRegistry{indices: make(map[reflect.Type]ComponentID)}
}

// register mints the next ComponentID for typ and installs its store.
// Registering the same type twice mints a second, orphaned ID; callers are
// expected to register each type exactly once.
func (r *componentRegistry) register(typ reflect.Type, set *ComponentSparseSet) ComponentID {
	id := ComponentID(len(r.infos))
	r.infos = append(r.infos, componentInfo{id: id, typ: typ})
	r.indices[typ] = id
	r.sets.Insert(id, set)
	return id
}

func (r *componentRegistry) idOf(typ reflect.Type) (ComponentID, bool) {
	id, ok := r.indices[typ]
	return id, ok
}

func (r *componentRegistry) set(id ComponentID) *ComponentSparseSet {
	s, ok := r.sets.Get(id)
	if !ok {
		return nil
	}
	return s
}

// setFor resolves typ to its store, panicking if typ was never registered.
// Requesting storage for an unregistered type is a programming error, not a
// runtime data condition.
func (r *componentRegistry) setFor(typ reflect.Type) *ComponentSparseSet {
	id, ok := r.indices[typ]
	if !ok {
		panic(&ComponentNotRegisteredError{Type: typ})
	}
	return r.set(id)
}
