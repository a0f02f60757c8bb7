package ecs

type command func(w *World)

// Commands buffers structural changes so systems iterating a query can
// request them without invalidating it.
type Commands struct {
	queue []command
}

// Spawn creates an entity when applied and hands it to build.
func (c *Commands) Spawn(build func(w *World, e *Entity)) {
	c.queue = append(c.queue, func(w *World) {
		build(w, w.CreateEntity())
	})
}

// Despawn removes an entity (and its descendants) when applied. Missing
// entities are ignored.
func (c *Commands) Despawn(id EntityID) {
	c.queue = append(c.queue, func(w *World) {
		w.RemoveEntity(id)
	})
}

// Insert adds a component when applied.
func (c *Commands) Insert(id EntityID, componentID ComponentID, component Component) {
	c.queue = append(c.queue, func(w *World) {
		w.AddComponent(id, componentID, component)
	})
}

// Remove deletes a component when applied.
func (c *Commands) Remove(id EntityID, componentID ComponentID) {
	c.queue = append(c.queue, func(w *World) {
		w.RemoveComponent(id, componentID)
	})
}

// Len returns the number of buffered commands.
func (c *Commands) Len() int {
	return len(c.queue)
}

func (c *Commands) apply(w *World) {
	for i := 0; i < len(c.queue); i++ {
		c.queue[i](w)
	}
	c.queue = c.queue[:0]
}
