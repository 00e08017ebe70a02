package ecs

import (
	"fmt"
	"reflect"
)

// ComponentNotRegisteredError reports a component type used before being
// registered with the World. It is raised as a panic value: the caller
// controls registration, so this is a violated precondition rather than a
// recoverable condition.
type ComponentNotRegisteredError struct {
	Type reflect.Type
}

func (e *ComponentNotRegisteredError) Error() string {
	return fmt.Sprintf("ecs: component type %v is not registered", e.Type)
}

// ResourceNotFoundError reports a lookup for a resource type that was never
// inserted into the World.
type ResourceNotFoundError struct {
	Type reflect.Type
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("ecs: no resource of type %v", e.Type)
}

// ResourceBusyError reports a resource borrow that would conflict with one
// already held in the same invocation, for example requesting Res and ResMut
// of the same type in one system. The borrow fails fast instead of
// deadlocking on the resource lock.
type ResourceBusyError struct {
	Type reflect.Type
}

func (e *ResourceBusyError) Error() string {
	return fmt.Sprintf("ecs: resource of type %v is already borrowed", e.Type)
}

// EventNotRegisteredError reports use of an event type that was never added
// to the World via AddEvent.
type EventNotRegisteredError struct {
	Type reflect.Type
}

func (e *EventNotRegisteredError) Error() string {
	return fmt.Sprintf("ecs: event type %v was not added to the world", e.Type)
}

// SystemPanicError wraps a panic raised by a system during a tick. The
// scheduler recovers the panic, abandons the remainder of the tick, and
// returns this error to the host.
type SystemPanicError struct {
	System string
	Value  any
}

func (e *SystemPanicError) Error() string {
	return fmt.Sprintf("ecs: system %s panicked: %v", e.System, e.Value)
}
