package ecs

import "reflect"

// Commands buffers structural world mutations requested during a tick so that
// systems never reshape component storage while queries are iterating it. The
// scheduler flushes the buffer after the last system of the tick.
type Commands struct {
	spawns   [][]any
	despawns []Entity
	adds     []addComponentCommand
	removes  []removeComponentCommand
	defers   []func()
}

type addComponentCommand struct {
	entity    Entity
	component any
}

type removeComponentCommand struct {
	entity Entity
	typ    reflect.Type
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues creation of a new entity with the given component bundle.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Despawn queues removal of an entity and all of its components.
func (c *Commands) Despawn(e Entity) {
	c.despawns = append(c.despawns, e)
}

// AddComponent queues attaching a component value to an entity. The value's
// type (pointers are dereferenced) must be registered by flush time.
func (c *Commands) AddComponent(e Entity, component any) {
	c.adds = append(c.adds, addComponentCommand{entity: e, component: component})
}

// RemoveComponent queues detaching the component of the given type from an
// entity.
func (c *Commands) RemoveComponent(e Entity, typ reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{entity: e, typ: typ})
}

// Defer queues an arbitrary function to run at flush time, after all queued
// structural changes.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush applies the queued operations against w and resets the buffer.
// Despawns win over later adds/removes targeting the same entity.
func (c *Commands) Flush(w *World) {
	despawned := make(map[Entity]struct{}, len(c.despawns))
	for _, e := range c.despawns {
		w.Despawn(e)
		despawned[e] = struct{}{}
	}
	for _, cmd := range c.removes {
		if _, gone := despawned[cmd.entity]; gone {
			continue
		}
		if w.IsLive(cmd.entity) {
			w.components.setFor(cmd.typ).RemoveEntity(cmd.entity)
		}
	}
	for _, cmd := range c.adds {
		if _, gone := despawned[cmd.entity]; gone {
			continue
		}
		if w.IsLive(cmd.entity) {
			w.insertErased(cmd.entity, cmd.component)
		}
	}
	for _, bundle := range c.spawns {
		w.AddEntity(bundle...)
	}
	for _, fn := range c.defers {
		fn()
	}
	c.spawns = c.spawns[:0]
	c.despawns = c.despawns[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
