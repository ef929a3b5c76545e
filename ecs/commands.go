package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// Commands buffers structural changes made while systems run. The Scheduler flushes the
// buffer after the last system of a frame, so queries never see entities appear or vanish
// mid-iteration.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	deleted *intmap.Map[EntityId, struct{}]
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []deferCommand
}

func newCommands() *Commands {
	return &Commands{
		deleted: intmap.New[EntityId, struct{}](16),
	}
}

// NewCommands creates an empty command buffer for use outside a Scheduler.
func NewCommands() *Commands {
	return newCommands()
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues fn to run after all other queued operations.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues an entity deletion. Queuing the same entity twice deletes it once.
func (c *Commands) Delete(entity EntityId) {
	if _, ok := c.deleted.Get(entity); ok {
		return
	}
	c.deleted.Put(entity, struct{}{})
	c.deletes = append(c.deletes, entity)
}

// Deleting reports whether entity is already queued for deletion this frame.
func (c *Commands) Deleting(entity EntityId) bool {
	_, ok := c.deleted.Get(entity)
	return ok
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies deletes, removes, adds, spawns, then deferred functions, and resets the buffer.
// Component changes aimed at an entity deleted in the same flush are dropped.
func (c *Commands) Flush(storage *Storage) {
	for _, id := range c.deletes {
		storage.Delete(id)
	}

	for _, cmd := range c.removes {
		if !c.Deleting(cmd.entity) {
			storage.RemoveComponent(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if !c.Deleting(cmd.entity) {
			storage.AddComponent(cmd.entity, cmd.component)
		}
	}

	for _, cmd := range c.spawns {
		storage.Spawn(cmd.components...)
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.deleted.Clear()
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]

	defers := c.defers
	c.defers = nil
	for _, df := range defers {
		df.fn()
	}

	// Deferred functions may queue more work.
	if c.Len() > 0 {
		c.Flush(storage)
	}
}
