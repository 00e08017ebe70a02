package ecs

import (
	"reflect"
	"slices"
)

// World owns the generational allocator, the insertion-ordered entity list,
// the component registry and its per-type stores, and the type-indexed
// resource map. All state lives for the World's lifetime; nothing is
// persisted anywhere.
type World struct {
	allocator  *Allocator
	entities   []Entity
	components componentRegistry
	resources  resourceMap
	events     eventRegistry
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		allocator:  NewAllocator(),
		components: newComponentRegistry(),
		resources:  newResourceMap(),
	}
}

// RegisterComponent assigns a ComponentID to type T and creates its store.
// Each type must be registered exactly once per World: a second registration
// mints a second, orphaned ID rather than returning the first.
func RegisterComponent[T any](w *World) ComponentID {
	return w.components.register(reflect.TypeFor[T](), NewComponentSparseSet[T]())
}

// RegisterComponentWithDrop is RegisterComponent with a destructor that runs
// on every discarded value, including store teardown via Close.
func RegisterComponentWithDrop[T any](w *World, drop func(*T)) ComponentID {
	return w.components.register(reflect.TypeFor[T](), NewComponentSparseSetWithDrop(drop))
}

// AddEntity allocates a new entity and inserts the given bundle of component
// values. Each value's type (pointers are dereferenced) must already be
// registered; a bundle containing an unregistered type panics with
// ComponentNotRegisteredError.
func (w *World) AddEntity(components ...any) Entity {
	e := w.allocator.Allocate()
	w.entities = append(w.entities, e)
	for _, c := range components {
		w.insertErased(e, c)
	}
	return e
}

func (w *World) insertErased(e Entity, component any) {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	w.components.setFor(v.Type()).insertValue(e, v)
}

// AddComponent attaches v to entity e, overwriting any existing T. Stale or
// dead handles are ignored. Panics if T was never registered.
func AddComponent[T any](w *World, e Entity, v T) {
	if !w.allocator.IsLive(e) {
		return
	}
	set := w.components.setFor(reflect.TypeFor[T]())
	ComponentInsert(set, e, v)
}

// RemoveComponent detaches component T from entity e and reports whether e
// held it. Removing an entity's last component does not despawn the entity.
func RemoveComponent[T any](w *World, e Entity) bool {
	if !w.allocator.IsLive(e) {
		return false
	}
	return w.components.setFor(reflect.TypeFor[T]()).RemoveEntity(e)
}

// GetComponent returns a pointer to e's component of type T, or nil if e is
// dead, stale, or does not hold T. Panics if T was never registered.
func GetComponent[T any](w *World, e Entity) *T {
	if !w.allocator.IsLive(e) {
		return nil
	}
	return ComponentGet[T](w.components.setFor(reflect.TypeFor[T]()), e)
}

// HasComponent reports whether live entity e holds component T.
func HasComponent[T any](w *World, e Entity) bool {
	if !w.allocator.IsLive(e) {
		return false
	}
	return w.components.setFor(reflect.TypeFor[T]()).Contains(e)
}

// Despawn removes entity e from the world: its component values are discarded
// from every registered store (running destructors where registered), it is
// dropped from the enumeration list, and its handle is freed for reuse at a
// new generation. Reports whether the call had any effect.
func (w *World) Despawn(e Entity) bool {
	if !w.allocator.IsLive(e) {
		return false
	}
	for _, set := range w.components.sets.Values() {
		set.RemoveEntity(e)
	}
	if i := slices.Index(w.entities, e); i >= 0 {
		w.entities = slices.Delete(w.entities, i, i+1)
	}
	return w.allocator.Deallocate(e)
}

// Entities returns the live entities in insertion order. The slice is a view;
// callers must not mutate it. Authoritative liveness is IsLive, not list
// membership.
func (w *World) Entities() []Entity {
	return w.entities
}

// IsLive reports whether e refers to a live entity.
func (w *World) IsLive(e Entity) bool {
	return w.allocator.IsLive(e)
}

// LookupComponentID returns the ID minted for component type T, if registered.
func LookupComponentID[T any](w *World) (ComponentID, bool) {
	return w.components.idOf(reflect.TypeFor[T]())
}

// ComponentsOf returns the types of the components entity e currently holds,
// in registration order.
func (w *World) ComponentsOf(e Entity) []reflect.Type {
	if !w.allocator.IsLive(e) {
		return nil
	}
	var types []reflect.Type
	for _, info := range w.components.infos {
		if set := w.components.set(info.id); set != nil && set.Contains(e) {
			types = append(types, info.typ)
		}
	}
	return types
}

// ComponentValue returns e's component value for the given ID as a pointer
// wrapped in an interface (*T for the registered T), or nil if absent. This
// is the reflection escape hatch used by inspection tooling; typed access
// should go through GetComponent.
func (w *World) ComponentValue(e Entity, id ComponentID) any {
	if !w.allocator.IsLive(e) {
		return nil
	}
	set := w.components.set(id)
	if set == nil {
		return nil
	}
	di, ok := set.sparse.Get(e)
	if !ok {
		return nil
	}
	return set.dense.valueAt(di).Addr().Interface()
}

// Close tears down every component store, running registered destructors over
// all remaining values. The stored values are owned by the World even though
// the buffers are type-erased, so teardown must destruct them individually.
func (w *World) Close() {
	for _, set := range w.components.sets.Values() {
		set.Close()
	}
}
