package ecs

// Commands provides a buffer for deferred World operations that are executed at the end of a frame.
// This prevents structural changes to the World while systems are being driven.
type Commands struct {
	spawns  []spawnCommand
	adds    []addComponentCommand
	deletes []EntityID
	defers  []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	components []Component
}

type addComponentCommand struct {
	entity    EntityID
	component Component
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity creation with the given components.
func (c *Commands) Spawn(components ...Component) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityID) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues an insert-if-absent of component on entity.
func (c *Commands) AddComponent(entity EntityID, component Component) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.adds) + len(c.deletes) + len(c.defers)
}

// Flush applies all commands to the world, resetting the buffer state.
// Deletes run first; adds targeting a deleted entity are dropped.
func (c *Commands) Flush(world *World) {
	deletedEntities := make(map[EntityID]bool)

	for _, id := range c.deletes {
		world.Delete(id)
		deletedEntities[id] = true
	}

	for _, cmd := range c.adds {
		if deletedEntities[cmd.entity] {
			continue
		}
		if ref, ok := world.Entity(cmd.entity); ok {
			ref.With(func(e *Entity) {
				e.AddComponent(cmd.component)
			})
		}
	}

	for _, cmd := range c.spawns {
		world.CreateEntity(cmd.components...)
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.spawns = c.spawns[:0]
	c.adds = c.adds[:0]
	c.deletes = c.deletes[:0]
	c.defers = c.defers[:0]
}
