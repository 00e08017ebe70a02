package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"unsafe"
)

// BlobBuffer is a growable buffer for values of a single element type that is
// fixed per instance but unknown to the buffer's own code. The backing store
// is a reflect-allocated slice of the element type, so the garbage collector
// sees any pointers the elements contain; access goes through unsafe pointer
// arithmetic against that typed backing array, never through a raw byte
// buffer.
//
// Every typed entry point checks the caller-supplied type against the element
// type captured at construction and panics on mismatch. The buffer owns its
// elements: if a destructor was registered, Close runs it for each live
// element.
type BlobBuffer struct {
	elem     reflect.Type
	itemSize uintptr
	data     reflect.Value // slice of elem, len == cap
	base     unsafe.Pointer
	len      int
	cap      int
	drop     func(unsafe.Pointer)
}

// NewBlobBuffer creates an empty buffer bound to element type T.
func NewBlobBuffer[T any]() *BlobBuffer {
	return newBlobBuffer(reflect.TypeFor[T]())
}

// NewBlobBufferWithDrop creates an empty buffer bound to element type T with a
// destructor that Close and SwapRemove run for each discarded element.
func NewBlobBufferWithDrop[T any](drop func(*T)) *BlobBuffer {
	b := newBlobBuffer(reflect.TypeFor[T]())
	b.drop = func(p unsafe.Pointer) {
		drop((*T)(p))
	}
	return b
}

func newBlobBuffer(elem reflect.Type) *BlobBuffer {
	data := reflect.MakeSlice(reflect.SliceOf(elem), 0, 0)
	return &BlobBuffer{
		elem:     elem,
		itemSize: elem.Size(),
		data:     data,
		base:     data.UnsafePointer(),
	}
}

// Len returns the number of live elements.
func (b *BlobBuffer) Len() int {
	return b.len
}

// Cap returns the element capacity of the backing array.
func (b *BlobBuffer) Cap() int {
	return b.cap
}

// ElemType returns the element type the buffer was constructed with.
func (b *BlobBuffer) ElemType() reflect.Type {
	return b.elem
}

func (b *BlobBuffer) typeCheck(t reflect.Type) {
	if t != b.elem {
		panic(fmt.Sprintf("ecs: blob element type mismatch: have %v, want %v", t, b.elem))
	}
}

func (b *BlobBuffer) at(i int) unsafe.Pointer {
	return unsafe.Add(b.base, uintptr(i)*b.itemSize)
}

func (b *BlobBuffer) grow(n int) {
	need := b.len + n
	if need <= b.cap {
		return
	}
	newCap := max(b.cap*2, 4, need)
	data := reflect.MakeSlice(reflect.SliceOf(b.elem), newCap, newCap)
	reflect.Copy(data, b.data.Slice(0, b.len))
	b.data = data
	b.base = data.UnsafePointer()
	b.cap = newCap
}

// BlobPush appends v to the buffer. T must be the buffer's element type.
func BlobPush[T any](b *BlobBuffer, v T) {
	b.typeCheck(reflect.TypeFor[T]())
	b.grow(1)
	*(*T)(b.at(b.len)) = v
	b.len++
}

// BlobGet returns a pointer to the element at index i, or nil if i is out of
// range. T must be the buffer's element type.
func BlobGet[T any](b *BlobBuffer, i int) *T {
	b.typeCheck(reflect.TypeFor[T]())
	if i < 0 || i >= b.len {
		return nil
	}
	return (*T)(b.at(i))
}

// BlobSwapRemove removes and returns the element at index i by moving the last
// element into its slot and truncating. Removing the only element simply
// truncates to empty. The registered destructor is not run: ownership of the
// removed value transfers to the caller. Panics if i is out of range.
func BlobSwapRemove[T any](b *BlobBuffer, i int) T {
	b.typeCheck(reflect.TypeFor[T]())
	if i < 0 || i >= b.len {
		panic(fmt.Sprintf("ecs: blob swap-remove index %d out of range (len %d)", i, b.len))
	}
	v := *(*T)(b.at(i))
	b.swapRemove(i)
	return v
}

// SwapRemove discards the element at index i, running the registered
// destructor on it, then moves the last element into its slot and truncates.
// Panics if i is out of range.
func (b *BlobBuffer) SwapRemove(i int) {
	if i < 0 || i >= b.len {
		panic(fmt.Sprintf("ecs: blob swap-remove index %d out of range (len %d)", i, b.len))
	}
	if b.drop != nil {
		b.drop(b.at(i))
	}
	b.swapRemove(i)
}

func (b *BlobBuffer) swapRemove(i int) {
	last := b.len - 1
	if i != last {
		b.data.Index(i).Set(b.data.Index(last))
	}
	// Zero the vacated slot so the backing array drops any references.
	b.data.Index(last).SetZero()
	b.len = last
}

// pushValue appends a value through reflection. The value's type must be the
// buffer's element type.
func (b *BlobBuffer) pushValue(v reflect.Value) {
	b.typeCheck(v.Type())
	b.grow(1)
	b.data.Index(b.len).Set(v)
	b.len++
}

// setValue overwrites the element at index i through reflection.
func (b *BlobBuffer) setValue(i int, v reflect.Value) {
	b.typeCheck(v.Type())
	b.data.Index(i).Set(v)
}

// valueAt returns an addressable reflect.Value of the element at index i.
func (b *BlobBuffer) valueAt(i int) reflect.Value {
	return b.data.Index(i)
}

// BlobAll iterates over the live elements in index order, yielding mutable
// pointers. T must be the buffer's element type.
func BlobAll[T any](b *BlobBuffer) iter.Seq2[int, *T] {
	b.typeCheck(reflect.TypeFor[T]())
	return func(yield func(int, *T) bool) {
		for i := 0; i < b.len; i++ {
			if !yield(i, (*T)(b.at(i))) {
				return
			}
		}
	}
}

// Close runs the registered destructor on every live element and empties the
// buffer. The buffer remains usable afterwards.
func (b *BlobBuffer) Close() {
	for i := 0; i < b.len; i++ {
		if b.drop != nil {
			b.drop(b.at(i))
		}
		b.data.Index(i).SetZero()
	}
	b.len = 0
}
