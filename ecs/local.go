package ecs

// Local is per-system scratch state that persists across ticks. It lives in
// the system struct itself, which the scheduler keeps for the lifetime of the
// registration, so the value survives between invocations without any global
// registry. Starts at T's zero value.
type Local[T any] struct {
	value T
}

// Get returns a pointer to the persisted value.
func (l *Local[T]) Get() *T {
	return &l.value
}

// Set replaces the persisted value.
func (l *Local[T]) Set(v T) {
	l.value = v
}

func (l *Local[T]) initParam(w *World) error { return nil }
func (l *Local[T]) acquire(w *World) error   { return nil }
func (l *Local[T]) release()                 {}
