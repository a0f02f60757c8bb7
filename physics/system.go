package physics

import (
	"ebiten-arpg/components"
	"ebiten-arpg/ecs"
)

// System keeps bodies in sync with Transform and Velocity components
type System struct{}

// NewSystem creates a new physics system
func NewSystem() *System {
	return &System{}
}

// Update pushes velocities into the space, steps it and writes positions back
func (s *System) Update(world *ecs.World, dt float64) {
	pw, ok := ecs.Resource[World](world)
	if !ok {
		return
	}

	// Despawned entities leave the space
	for _, id := range pw.Entities() {
		if !world.Exists(id) || !world.HasComponent(id, components.Collider) {
			pw.Remove(id)
		}
	}

	ids := world.Query(components.Transform, components.Collider)
	for _, id := range ids {
		transform, _ := ecs.Get[components.TransformComponent](world, id, components.Transform)
		collider, _ := ecs.Get[components.ColliderComponent](world, id, components.Collider)

		if !pw.Has(id) {
			pw.AddCharacter(id, transform.X, transform.Y, collider.Radius)
		}

		vx, vy := 0.0, 0.0
		if vel, ok := ecs.Get[components.VelocityComponent](world, id, components.Velocity); ok {
			vx, vy = vel.X, vel.Y
		}
		if world.HasComponent(id, components.Disabled) {
			vx, vy = 0, 0
		}
		pw.SetVelocity(id, vx, vy)
	}

	pw.Step(dt)

	for _, id := range ids {
		transform, _ := ecs.Get[components.TransformComponent](world, id, components.Transform)
		if x, y, ok := pw.Position(id); ok {
			transform.X, transform.Y = x, y
		}
	}
}

// Plugin registers the physics resource and system. The system only runs
// while every condition holds.
type Plugin struct {
	Conditions []ecs.Condition
}

// Build implements ecs.Plugin
func (p Plugin) Build(app *ecs.App) {
	if !ecs.HasResource[World](app.World) {
		ecs.InsertResource(app.World, NewWorld())
	}
	app.AddSystem(ecs.Update, NewSystem(), p.Conditions...)
}
