package ecs

import (
	"iter"
	"reflect"
)

type eventSequence[E any] struct {
	items      []E
	startCount int
}

// Events is a double-buffered event stream for one event type, stored in the
// World as an ordinary resource. Sends append to the current half; Update
// rotates the halves once per tick. A reader that checks in every tick, or
// even every other tick, sees each event exactly once; events older than two
// rotations are gone.
type Events[E any] struct {
	a     eventSequence[E] // previous generation
	b     eventSequence[E] // currently written
	count int              // total events ever sent
}

// NewEvents creates an empty stream.
func NewEvents[E any]() *Events[E] {
	return &Events[E]{}
}

// Send appends an event to the current half.
func (ev *Events[E]) Send(e E) {
	ev.b.items = append(ev.b.items, e)
	ev.count++
}

// Update rotates the buffers: the current half becomes the previous one and
// a cleared half takes its place, remembering the running count at which it
// starts. Call once per tick, after systems run.
func (ev *Events[E]) Update() {
	ev.a, ev.b = ev.b, ev.a
	ev.b.items = ev.b.items[:0]
	ev.b.startCount = ev.count
}

// Len returns the number of events still buffered across both halves.
func (ev *Events[E]) Len() int {
	return len(ev.a.items) + len(ev.b.items)
}

// IsEmpty reports whether both halves are empty.
func (ev *Events[E]) IsEmpty() bool {
	return ev.Len() == 0
}

// unread returns the suffixes of both halves that a cursor has not consumed,
// oldest half first.
func (ev *Events[E]) unread(cursor int) (older, newer []E) {
	ai := min(max(cursor-ev.a.startCount, 0), len(ev.a.items))
	bi := min(max(cursor-ev.b.startCount, 0), len(ev.b.items))
	return ev.a.items[ai:], ev.b.items[bi:]
}

// EventReader reads events of type E inside a system. Its cursor - the total
// number of events of this type the reader has ever consumed - persists in
// the system struct across ticks, so each reader independently drains only
// its own unread suffix.
type EventReader[E any] struct {
	cursor Local[int]
	events Res[Events[E]]
}

// Read returns an iterator over the unread events, oldest first. The cursor
// advances as events are consumed, so breaking early leaves the remainder
// unread for the next call.
func (r *EventReader[E]) Read() iter.Seq[E] {
	return func(yield func(E) bool) {
		ev := r.events.Get()
		cursor := r.cursor.Get()
		older, newer := ev.unread(*cursor)
		// Normalize a cursor that fell behind by more than two generations.
		*cursor = ev.count - len(older) - len(newer)
		for _, chunk := range [2][]E{older, newer} {
			for _, e := range chunk {
				*cursor++
				if !yield(e) {
					return
				}
			}
		}
	}
}

// Drain advances the cursor past every unread event without materializing
// them and returns how many were skipped.
func (r *EventReader[E]) Drain() int {
	ev := r.events.Get()
	older, newer := ev.unread(*r.cursor.Get())
	n := len(older) + len(newer)
	r.cursor.Set(ev.count)
	return n
}

// Unread returns the number of events a Read call would currently yield.
func (r *EventReader[E]) Unread() int {
	older, newer := r.events.Get().unread(*r.cursor.Get())
	return len(older) + len(newer)
}

func (r *EventReader[E]) initParam(w *World) error {
	return r.cursor.initParam(w)
}

func (r *EventReader[E]) acquire(w *World) error {
	return r.events.acquire(w)
}

func (r *EventReader[E]) release() {
	r.events.release()
}

// EventWriter sends events of type E from inside a system.
type EventWriter[E any] struct {
	events ResMut[Events[E]]
}

// Send appends an event to the stream.
func (wr *EventWriter[E]) Send(e E) {
	wr.events.Get().Send(e)
}

func (wr *EventWriter[E]) initParam(w *World) error {
	return nil
}

func (wr *EventWriter[E]) acquire(w *World) error {
	return wr.events.acquire(w)
}

func (wr *EventWriter[E]) release() {
	wr.events.release()
}

// eventRegistry records one rotation function per added event type so the
// World can rotate every stream without knowing the types involved.
type eventRegistry struct {
	updates []func(*World)
}

// AddEvent registers event type E with the World: an empty Events[E] resource
// is inserted and its rotation is hooked into UpdateEvents. Adding a type that
// is already registered is a no-op; the existing stream and its single
// rotation hook are kept.
func AddEvent[E any](w *World) {
	if _, err := w.resources.lookup(reflect.TypeFor[Events[E]]()); err == nil {
		return
	}
	InsertResource(w, Events[E]{})
	w.events.updates = append(w.events.updates, func(w *World) {
		res, err := WriteResource[Events[E]](w)
		if err != nil {
			return // stream resource was removed; nothing to rotate
		}
		res.Get().Update()
		res.Release()
	})
}

// SendEvent appends an event to the stream for type E from outside any
// system, typically from host integration code. Panics with
// EventNotRegisteredError if AddEvent[E] was never called.
func SendEvent[E any](w *World, e E) {
	res, err := WriteResource[Events[E]](w)
	if err != nil {
		panic(&EventNotRegisteredError{Type: reflect.TypeFor[E]()})
	}
	defer res.Release()
	res.Get().Send(e)
}

// UpdateEvents rotates every registered event stream. The host calls this
// once per tick, after the scheduler has run.
func (w *World) UpdateEvents() {
	for _, update := range w.events.updates {
		update(w)
	}
}
