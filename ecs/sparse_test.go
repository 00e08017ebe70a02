package ecs_test

import (
	"testing"

	"github.com/plus3/keel/ecs"
	"github.com/stretchr/testify/assert"
)

type slotKey int

func (k slotKey) SparseIndex() int { return int(k) }

func TestSparseArrayInsertGet(t *testing.T) {
	var arr ecs.SparseArray[slotKey, string]

	arr.Insert(3, "three")
	arr.Insert(0, "zero")

	v, ok := arr.Get(3)
	assert.True(t, ok)
	assert.Equal(t, "three", v)

	v, ok = arr.Get(0)
	assert.True(t, ok)
	assert.Equal(t, "zero", v)

	// Slots in between exist but hold nothing.
	_, ok = arr.Get(1)
	assert.False(t, ok)
	_, ok = arr.Get(100)
	assert.False(t, ok)
}

func TestSparseArrayOverwrite(t *testing.T) {
	var arr ecs.SparseArray[slotKey, int]

	arr.Insert(5, 1)
	arr.Insert(5, 2)

	v, ok := arr.Get(5)
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestSparseArrayRemove(t *testing.T) {
	var arr ecs.SparseArray[slotKey, int]
	arr.Insert(2, 42)

	v, ok := arr.Remove(2)
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.False(t, arr.Contains(2))

	_, ok = arr.Remove(2)
	assert.False(t, ok)
}

func TestSparseArrayRef(t *testing.T) {
	var arr ecs.SparseArray[slotKey, int]
	arr.Insert(1, 10)

	p := arr.Ref(1)
	assert.NotNil(t, p)
	*p = 99

	v, _ := arr.Get(1)
	assert.Equal(t, 99, v)

	assert.Nil(t, arr.Ref(7))
}

func TestSparseSetInsertOrder(t *testing.T) {
	var set ecs.SparseSet[slotKey, string]

	set.Insert(9, "nine")
	set.Insert(1, "one")
	set.Insert(4, "four")

	assert.Equal(t, 3, set.Len())
	assert.Equal(t, []string{"nine", "one", "four"}, set.Values())
}

func TestSparseSetOverwriteInPlace(t *testing.T) {
	var set ecs.SparseSet[slotKey, string]

	set.Insert(1, "a")
	set.Insert(2, "b")
	set.Insert(1, "c")

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"c", "b"}, set.Values())

	v, ok := set.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "c", v)
}

func TestSparseSetRef(t *testing.T) {
	var set ecs.SparseSet[slotKey, int]
	set.Insert(3, 30)

	p := set.Ref(3)
	assert.NotNil(t, p)
	*p = 31

	v, _ := set.Get(3)
	assert.Equal(t, 31, v)

	assert.Nil(t, set.Ref(8))
}
