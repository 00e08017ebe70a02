package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// Query matches entities that satisfy every accessor field of the result
// struct T. Qualification is computed once, when the query is built (or
// re-resolved for a system's next tick): the entity list is the intersection
// of each accessor's entity set, ordered by the first field's storage order.
// Per-entity data is fetched lazily as the iterator advances, so values
// mutated by earlier steps are never re-read by later steps of the same pass.
//
// T must be a struct whose fields are all Read or Write accessors, for
// example:
//
//	type moving struct {
//		Pos Write[Position]
//		Vel Read[Velocity]
//	}
type Query[T any] struct {
	world    *World
	fields   []accessorField
	entities []Entity
	consumed bool
}

// NewQuery builds a query against w and resolves its entity set immediately.
// Panics if T is not an accessor struct, if it requests conflicting access to
// one component type, or if any named component type is unregistered.
func NewQuery[T any](w *World) *Query[T] {
	q := &Query[T]{
		world:  w,
		fields: accessorFieldsOf(reflect.TypeFor[T]()),
	}
	q.resolve()
	return q
}

// resolve snapshots the qualifying entity set: the first accessor's entity
// list filtered by membership in every other accessor's set. Iteration order
// therefore follows the first field's storage order, an observable property.
func (q *Query[T]) resolve() {
	first := q.fields[0].access.match(q.world)
	rest := make([]map[Entity]struct{}, 0, len(q.fields)-1)
	for _, f := range q.fields[1:] {
		members := f.access.match(q.world)
		set := make(map[Entity]struct{}, len(members))
		for _, e := range members {
			set[e] = struct{}{}
		}
		rest = append(rest, set)
	}
	q.entities = q.entities[:0]
outer:
	for _, e := range first {
		for _, set := range rest {
			if _, ok := set[e]; !ok {
				continue outer
			}
		}
		q.entities = append(q.entities, e)
	}
	q.consumed = false
}

// Entities returns the snapshot of qualifying entities in iteration order.
func (q *Query[T]) Entities() []Entity {
	return q.entities
}

// Len returns the number of qualifying entities.
func (q *Query[T]) Len() int {
	return len(q.entities)
}

// Iter returns a single-pass iterator over (entity, result) pairs. The
// qualification snapshot is fixed; the per-entity fetch happens as the
// iterator advances, and an entity whose data disappeared since the snapshot
// is skipped. The iterator is not restartable: iterating a consumed query
// panics. Inside a system the query is re-resolved before every Execute.
func (q *Query[T]) Iter() iter.Seq2[Entity, T] {
	if q.consumed {
		panic("ecs: query iterated twice; queries are single-pass")
	}
	q.consumed = true
	return func(yield func(Entity, T) bool) {
		for _, e := range q.entities {
			var out T
			if !q.loadInto(e, &out) {
				continue
			}
			if !yield(e, out) {
				return
			}
		}
	}
}

// First returns the first matching entity and its result, if any. Like Iter,
// it consumes the query's single pass.
func (q *Query[T]) First() (Entity, T, bool) {
	for e, out := range q.Iter() {
		return e, out, true
	}
	var zero T
	return Entity{}, zero, false
}

func (q *Query[T]) loadInto(e Entity, out *T) bool {
	base := unsafe.Pointer(out)
	for _, f := range q.fields {
		if !f.access.load(q.world, e, unsafe.Add(base, f.offset)) {
			return false
		}
	}
	return true
}

func (q *Query[T]) initParam(w *World) error {
	q.world = w
	q.fields = accessorFieldsOf(reflect.TypeFor[T]())
	return nil
}

func (q *Query[T]) acquire(w *World) error {
	q.resolve()
	return nil
}

func (q *Query[T]) release() {}
