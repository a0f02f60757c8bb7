package systems

import (
	"math"

	"ebiten-arpg/components"
	"ebiten-arpg/ecs"
)

// ProjectileSystem moves projectiles and resolves their hits
type ProjectileSystem struct{}

// NewProjectileSystem creates a new projectile system
func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{}
}

// Update moves each projectile and despawns it on the first wall or hit
func (s *ProjectileSystem) Update(world *ecs.World, dt float64) {
	m := roomMap(world)
	targets := world.Query(components.Health, components.Transform)

	for _, id := range world.Query(components.Projectile, components.Transform) {
		proj, _ := ecs.Get[components.ProjectileComponent](world, id, components.Projectile)
		pos, _ := ecs.Get[components.TransformComponent](world, id, components.Transform)

		pos.X += proj.DirX * proj.Speed * dt
		pos.Y += proj.DirY * proj.Speed * dt

		if m != nil && m.IsWallAt(pos.X, pos.Y) {
			world.Commands().Despawn(id)
			continue
		}

		for _, target := range targets {
			if target == proj.Owner || !hostile(world, proj.Owner, target) || !alive(world, target) {
				continue
			}
			tpos, _ := ecs.Get[components.TransformComponent](world, target, components.Transform)
			reach := proj.Radius
			if col, ok := ecs.Get[components.ColliderComponent](world, target, components.Collider); ok {
				reach += col.Radius
			}
			if math.Hypot(tpos.X-pos.X, tpos.Y-pos.Y) > reach {
				continue
			}

			part, mult := bodyPart(world, target, DefaultAimHeight)
			ApplyDamage(world, target, proj.Owner, proj.Damage*mult, part, proj.Kind)
			world.Commands().Despawn(id)
			break
		}
	}
}

// LifetimeSystem counts down Lifetime components and despawns expired entities
type LifetimeSystem struct{}

// Update implements ecs.System
func (s *LifetimeSystem) Update(world *ecs.World, dt float64) {
	for _, id := range world.Query(components.Lifetime) {
		life, _ := ecs.Get[components.LifetimeComponent](world, id, components.Lifetime)
		life.Remaining -= dt
		if life.Remaining <= 0 {
			world.Commands().Despawn(id)
		}
	}
}
