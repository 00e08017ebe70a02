package ecs

import (
	"fmt"
	"reflect"
	"unsafe"
)

// componentAccess is the contract every accessor satisfies: it names the
// component type it needs, states whether access is exclusive, lists the
// entities that qualify for it, and loads a view of one entity's data into a
// field of a result struct.
type componentAccess interface {
	componentType() reflect.Type
	accessExclusive() bool
	match(w *World) []Entity
	load(w *World, e Entity, dst unsafe.Pointer) bool
}

// Read declares shared access to component T. Inside a query result struct,
// a Read field is populated with a view of the matched entity's value.
// The pointed-to value must not be mutated through a Read; use Write for
// mutation.
type Read[T any] struct {
	p *T
}

// Get returns the borrowed component. Callers must treat it as read-only.
func (r Read[T]) Get() *T {
	return r.p
}

func (Read[T]) componentType() reflect.Type {
	return reflect.TypeFor[T]()
}

func (Read[T]) accessExclusive() bool {
	return false
}

func (Read[T]) match(w *World) []Entity {
	return w.components.setFor(reflect.TypeFor[T]()).Entities()
}

func (Read[T]) load(w *World, e Entity, dst unsafe.Pointer) bool {
	p := ComponentGet[T](w.components.setFor(reflect.TypeFor[T]()), e)
	if p == nil {
		return false
	}
	(*Read[T])(dst).p = p
	return true
}

// Write declares exclusive access to component T. Inside a query result
// struct, a Write field is populated with a mutable view of the matched
// entity's value. Composing Write with any other accessor of the same
// component type in one query is rejected at query construction.
type Write[T any] struct {
	p *T
}

// Get returns the mutably borrowed component.
func (w Write[T]) Get() *T {
	return w.p
}

func (Write[T]) componentType() reflect.Type {
	return reflect.TypeFor[T]()
}

func (Write[T]) accessExclusive() bool {
	return true
}

func (Write[T]) match(w *World) []Entity {
	return w.components.setFor(reflect.TypeFor[T]()).Entities()
}

func (Write[T]) load(w *World, e Entity, dst unsafe.Pointer) bool {
	p := ComponentGet[T](w.components.setFor(reflect.TypeFor[T]()), e)
	if p == nil {
		return false
	}
	(*Write[T])(dst).p = p
	return true
}

// accessorField binds one accessor field of a result struct to its offset.
type accessorField struct {
	name   string
	offset uintptr
	access componentAccess
}

// accessorFieldsOf validates a query result struct type and extracts its
// accessor fields. Every field must be a Read or Write; two accessors naming
// the same component type where either is a Write conflict and panic, since
// they would alias one store with incompatible mutability.
func accessorFieldsOf(t reflect.Type) []accessorField {
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("ecs: query type %v must be a struct of Read/Write accessors", t))
	}
	if t.NumField() == 0 {
		panic(fmt.Sprintf("ecs: query struct %v has no accessor fields", t))
	}
	fields := make([]accessorField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		access, ok := reflect.Zero(f.Type).Interface().(componentAccess)
		if !ok {
			panic(fmt.Sprintf("ecs: query field %s.%s is not a Read or Write accessor", t, f.Name))
		}
		for _, prev := range fields {
			if prev.access.componentType() != access.componentType() {
				continue
			}
			if prev.access.accessExclusive() || access.accessExclusive() {
				panic(fmt.Sprintf("ecs: query %v requests conflicting access to component %v",
					t, access.componentType()))
			}
		}
		fields = append(fields, accessorField{
			name:   f.Name,
			offset: f.Offset,
			access: access,
		})
	}
	return fields
}
