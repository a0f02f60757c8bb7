package systems

import (
	"math"

	"ebiten-arpg/components"
	"ebiten-arpg/config"
	"ebiten-arpg/ecs"
	"ebiten-arpg/generation"
)

// Player movement tuning
const (
	PlayerSpeed      = 3.2  // Tiles per second
	SprintMultiplier = 1.6  // Speed factor while sprinting
	SprintCost       = 12.0 // Stamina per second
	StairsRadius     = 0.8
)

// PlayerControlSystem turns InputState into movement and attacks
type PlayerControlSystem struct{}

// NewPlayerControlSystem creates a new player control system
func NewPlayerControlSystem() *PlayerControlSystem {
	return &PlayerControlSystem{}
}

// Update applies this frame's input to the player
func (s *PlayerControlSystem) Update(world *ecs.World, dt float64) {
	input, ok := ecs.Resource[InputState](world)
	if !ok {
		return
	}
	settings, ok := ecs.Resource[config.InputSettings](world)
	if !ok {
		def := config.DefaultInputSettings()
		settings = &def
	}

	for _, id := range world.Query(components.Player, components.Transform, components.Velocity) {
		if world.HasComponent(id, components.Disabled) {
			continue
		}
		transform, _ := ecs.Get[components.TransformComponent](world, id, components.Transform)
		velocity, _ := ecs.Get[components.VelocityComponent](world, id, components.Velocity)

		// Turning
		transform.Yaw += input.Turn*settings.TurnSpeed*dt + input.LookDX*settings.MouseSensitivity
		transform.Yaw = normalizeAngle(transform.Yaw)

		// Movement relative to facing
		fx, fy := transform.Forward()
		rx, ry := -fy, fx
		vx := fx*input.Forward + rx*input.Strafe
		vy := fy*input.Forward + ry*input.Strafe
		if l := math.Hypot(vx, vy); l > 1 {
			vx, vy = vx/l, vy/l
		}

		speed := PlayerSpeed
		moving := vx != 0 || vy != 0
		if input.Sprint && moving {
			if stamina, ok := ecs.Get[components.StaminaComponent](world, id, components.Stamina); ok && !stamina.IsEmpty() {
				// Whatever is left is spent on the last partial tick
				if !stamina.Spend(SprintCost * dt) {
					stamina.Spend(stamina.Current)
				}
				speed *= SprintMultiplier
			}
		}
		velocity.X, velocity.Y = vx*speed, vy*speed

		combat, hasCombat := ecs.Get[components.CombatComponent](world, id, components.Combat)
		if !hasCombat {
			continue
		}

		if input.Attack && combat.CanAttack() {
			if s.spend(world, id, components.Stamina, combat.StaminaCost) {
				combat.Ready = combat.Cooldown
				world.EmitEvent(AttackEvent{Attacker: id})
			}
		}

		// Casts are paid in mana only and do not wait for the swing cooldown
		if input.Cast {
			if s.spend(world, id, components.Mana, combat.ManaCost) {
				world.EmitEvent(CastEvent{Caster: id})
			} else {
				GetMessageLog().AddSystem("Not enough mana.")
			}
		}
	}
}

// spend takes amount from a pool; entities without the pool pay nothing
func (s *PlayerControlSystem) spend(world *ecs.World, id ecs.EntityID, poolID ecs.ComponentID, amount float64) bool {
	comp, ok := world.GetComponent(id, poolID)
	if !ok {
		return true
	}
	pool, ok := components.PoolOf(comp)
	if !ok {
		return true
	}
	return pool.Spend(amount)
}

// StairsSystem queues a DescendEvent when the player interacts on the stairs
type StairsSystem struct{}

// Update checks the interact key against the stairs position
func (s *StairsSystem) Update(world *ecs.World, dt float64) {
	input, ok := ecs.Resource[InputState](world)
	if !ok || !input.Interact {
		return
	}
	m := roomMap(world)
	if m == nil || !m.HasStairs {
		return
	}
	id := playerID(world)
	transform, ok := ecs.Get[components.TransformComponent](world, id, components.Transform)
	if !ok {
		return
	}
	sx, sy := generation.TileCenter(m.Stairs)
	if math.Hypot(transform.X-sx, transform.Y-sy) <= StairsRadius {
		GetMessageLog().AddEnvironment("You descend the stairs...")
		world.QueueEvent(DescendEvent{Depth: m.Depth + 1})
	}
}

// normalizeAngle wraps an angle into (-pi, pi]
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
