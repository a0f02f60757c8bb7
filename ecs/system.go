package ecs

// System defines an interface for processing entities with specific components
type System interface {
	// Update is called each frame to process entities
	Update(world *World, dt float64)
}

// Initializer is implemented by systems that subscribe to events. The App
// calls Initialize once, when the system is added.
type Initializer interface {
	Initialize(world *World)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(world *World, dt float64)

// Update calls f.
func (f SystemFunc) Update(world *World, dt float64) {
	f(world, dt)
}
