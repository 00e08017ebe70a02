package ecs

// SparseKey is any key that maps to a small non-negative integer. The integer
// indexes a growable array directly, trading memory for O(1) lookup without
// hashing.
type SparseKey interface {
	comparable
	SparseIndex() int
}

type sparseSlot[V any] struct {
	value   V
	present bool
}

// SparseArray maps a SparseKey to a value through direct indexing.
// The zero value is an empty array ready for use.
type SparseArray[K SparseKey, V any] struct {
	slots []sparseSlot[V]
}

// Get returns the value stored for k, if any.
func (s *SparseArray[K, V]) Get(k K) (V, bool) {
	i := k.SparseIndex()
	if i >= len(s.slots) || !s.slots[i].present {
		var zero V
		return zero, false
	}
	return s.slots[i].value, true
}

// Ref returns a pointer to the value stored for k, or nil if absent.
func (s *SparseArray[K, V]) Ref(k K) *V {
	i := k.SparseIndex()
	if i >= len(s.slots) || !s.slots[i].present {
		return nil
	}
	return &s.slots[i].value
}

// Insert stores v for k, growing the backing array as needed. An existing
// value for k is overwritten.
func (s *SparseArray[K, V]) Insert(k K, v V) {
	i := k.SparseIndex()
	for i >= len(s.slots) {
		s.slots = append(s.slots, sparseSlot[V]{})
	}
	s.slots[i] = sparseSlot[V]{value: v, present: true}
}

// Remove clears the slot for k and returns its prior value, if any.
func (s *SparseArray[K, V]) Remove(k K) (V, bool) {
	i := k.SparseIndex()
	if i >= len(s.slots) || !s.slots[i].present {
		var zero V
		return zero, false
	}
	v := s.slots[i].value
	s.slots[i] = sparseSlot[V]{}
	return v, true
}

// Contains reports whether a value is stored for k.
func (s *SparseArray[K, V]) Contains(k K) bool {
	i := k.SparseIndex()
	return i < len(s.slots) && s.slots[i].present
}

// SparseSet combines a SparseArray with a dense, insertion-ordered value
// slice. Lookup cost is that of the sparse array; iteration touches only the
// dense slice. The zero value is an empty set ready for use.
type SparseSet[K SparseKey, V any] struct {
	sparse SparseArray[K, int]
	dense  []V
}

// Get returns the value stored for k, if any.
func (s *SparseSet[K, V]) Get(k K) (V, bool) {
	di, ok := s.sparse.Get(k)
	if !ok {
		var zero V
		return zero, false
	}
	return s.dense[di], true
}

// Ref returns a pointer to the value stored for k, or nil if absent.
func (s *SparseSet[K, V]) Ref(k K) *V {
	di, ok := s.sparse.Get(k)
	if !ok {
		return nil
	}
	return &s.dense[di]
}

// Insert stores v for k, overwriting in place if k is already present.
func (s *SparseSet[K, V]) Insert(k K, v V) {
	if di, ok := s.sparse.Get(k); ok {
		s.dense[di] = v
		return
	}
	s.sparse.Insert(k, len(s.dense))
	s.dense = append(s.dense, v)
}

// Len returns the number of stored values.
func (s *SparseSet[K, V]) Len() int {
	return len(s.dense)
}

// Values returns the dense value slice in insertion order. The slice is a
// view into the set; callers must not append to it.
func (s *SparseSet[K, V]) Values() []V {
	return s.dense
}
