package systems

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"ebiten-arpg/components"
	"ebiten-arpg/ecs"
	"ebiten-arpg/logging"
	"ebiten-arpg/physics"
)

// Combat tuning
const (
	MinDamage        = 1.0
	DefaultReach     = 1.2
	DefaultArc       = math.Pi / 2
	DefaultAimHeight = 0.6
	BoltLifetime     = 3.0
	BoltRadius       = 0.25
)

// CombatSystem resolves melee swings and spells
type CombatSystem struct {
	initialized bool
}

// NewCombatSystem creates a new combat system
func NewCombatSystem() *CombatSystem {
	return &CombatSystem{}
}

// Initialize sets up event listeners
func (s *CombatSystem) Initialize(world *ecs.World) {
	if s.initialized {
		return
	}

	world.GetEventManager().Subscribe(EventAttack, func(event ecs.Event) {
		s.MeleeAttack(world, event.(AttackEvent).Attacker)
	})
	world.GetEventManager().Subscribe(EventCast, func(event ecs.Event) {
		s.CastSpell(world, event.(CastEvent).Caster)
	})

	s.initialized = true
}

// Update ticks attack cooldowns
func (s *CombatSystem) Update(world *ecs.World, dt float64) {
	for _, id := range world.Query(components.Combat) {
		combat, _ := ecs.Get[components.CombatComponent](world, id, components.Combat)
		if combat.Ready > 0 {
			combat.Ready = math.Max(0, combat.Ready-dt)
		}
	}
}

// hostile reports whether attacker may damage target. Enemies never hurt each other.
func hostile(world *ecs.World, attacker, target ecs.EntityID) bool {
	if attacker == target {
		return false
	}
	if world.HasComponent(attacker, components.Player) {
		return world.HasComponent(target, components.Enemy)
	}
	if world.HasComponent(attacker, components.Enemy) {
		return world.HasComponent(target, components.Player)
	}
	return true
}

// alive reports whether an entity can still take damage
func alive(world *ecs.World, id ecs.EntityID) bool {
	if !world.Exists(id) || world.HasComponent(id, components.Disabled) {
		return false
	}
	health, ok := ecs.Get[components.HealthComponent](world, id, components.Health)
	return ok && !health.IsEmpty()
}

// MeleeAttack hits every hostile target inside the attacker's reach and arc.
// It returns the entities that were hit.
func (s *CombatSystem) MeleeAttack(world *ecs.World, attacker ecs.EntityID) []ecs.EntityID {
	origin, ok := ecs.Get[components.TransformComponent](world, attacker, components.Transform)
	if !ok || world.HasComponent(attacker, components.Disabled) {
		return nil
	}

	reach, arc, aim := DefaultReach, DefaultArc, DefaultAimHeight
	if combat, ok := ecs.Get[components.CombatComponent](world, attacker, components.Combat); ok {
		if combat.Reach > 0 {
			reach = combat.Reach
		}
		if combat.Arc > 0 {
			arc = combat.Arc
		}
		if combat.AimHeight > 0 {
			aim = combat.AimHeight
		}
	}

	base := s.meleeDamage(world, attacker)
	fx, fy := origin.Forward()

	var hits []ecs.EntityID
	for _, target := range world.Query(components.Health, components.Transform) {
		if !hostile(world, attacker, target) || !alive(world, target) {
			continue
		}
		pos, _ := ecs.Get[components.TransformComponent](world, target, components.Transform)

		radius := 0.0
		if col, ok := ecs.Get[components.ColliderComponent](world, target, components.Collider); ok {
			radius = col.Radius
		}
		dx, dy := pos.X-origin.X, pos.Y-origin.Y
		dist := math.Hypot(dx, dy)
		if dist-radius > reach {
			continue
		}
		if dist > 1e-6 {
			cos := (dx*fx + dy*fy) / dist
			if math.Acos(math.Max(-1, math.Min(1, cos))) > arc/2 {
				continue
			}
		}

		part, mult := bodyPart(world, target, aim)
		ApplyDamage(world, target, attacker, base*mult, part, components.DamagePhysical)
		hits = append(hits, target)
	}
	return hits
}

// meleeDamage is base Damage + Strength/2 + weapon damage
func (s *CombatSystem) meleeDamage(world *ecs.World, attacker ecs.EntityID) float64 {
	dmg := 0.0
	if d, ok := ecs.Get[components.DamageComponent](world, attacker, components.Damage); ok {
		dmg += d.Amount
	}
	attrs := EffectiveAttributes(world, attacker)
	dmg += float64(attrs.Strength) / 2
	dmg += EquipmentTotals(world, attacker).Damage
	return dmg
}

// bodyPart picks the target's child body part closest to the strike height
func bodyPart(world *ecs.World, target ecs.EntityID, aim float64) (string, float64) {
	name, mult := "", 1.0
	best := math.Inf(1)
	for _, child := range world.Children(target) {
		part, ok := ecs.Get[components.BodyPartComponent](world, child, components.BodyPart)
		if !ok {
			continue
		}
		if d := math.Abs(part.Height - aim); d < best {
			best = d
			name, mult = part.Name, part.Multiplier
		}
	}
	return name, mult
}

// CastSpell fires the caster's spell along its facing through the physics
// world and damages the first hostile body hit
func (s *CombatSystem) CastSpell(world *ecs.World, caster ecs.EntityID) (ecs.EntityID, bool) {
	origin, ok := ecs.Get[components.TransformComponent](world, caster, components.Transform)
	if !ok {
		return 0, false
	}
	combat, ok := ecs.Get[components.CombatComponent](world, caster, components.Combat)
	if !ok || combat.SpellRange <= 0 {
		return 0, false
	}
	pw, ok := ecs.Resource[physics.World](world)
	if !ok {
		return 0, false
	}

	fx, fy := origin.Forward()
	hit := pw.Raycast(origin.X, origin.Y, origin.X+fx*combat.SpellRange, origin.Y+fy*combat.SpellRange, caster)
	if !hit.Hit || hit.Wall {
		return 0, false
	}
	if !hostile(world, caster, hit.Entity) || !alive(world, hit.Entity) {
		return 0, false
	}

	aim := combat.AimHeight
	if aim <= 0 {
		aim = DefaultAimHeight
	}
	attrs := EffectiveAttributes(world, caster)
	part, mult := bodyPart(world, hit.Entity, aim)
	ApplyDamage(world, hit.Entity, caster, (combat.SpellDamage+float64(attrs.Intellect))*mult, part, components.DamageArcane)
	return hit.Entity, true
}

// ApplyDamage subtracts armor, applies at least MinDamage and emits DamageEvent.
// A target reaching zero health is disabled and DeathEvent is emitted once.
func ApplyDamage(world *ecs.World, target, source ecs.EntityID, raw float64, part string, kind components.DamageKind) float64 {
	health, ok := ecs.Get[components.HealthComponent](world, target, components.Health)
	if !ok || world.HasComponent(target, components.Disabled) {
		return 0
	}

	amount := raw
	if armor, ok := ecs.Get[components.ArmorComponent](world, target, components.Armor); ok {
		amount -= armor.Value
	}
	amount = math.Max(MinDamage, amount)

	health.Damage(amount)
	world.EmitEvent(DamageEvent{Target: target, Source: source, Amount: amount, Part: part, Kind: kind})

	msg := fmt.Sprintf("%s hits %s for %.0f", components.EntityName(world, source), components.EntityName(world, target), amount)
	if part != "" {
		msg += " (" + part + ")"
	}
	GetMessageLog().AddCombat(msg)
	logging.For("combat").WithFields(logrus.Fields{
		"target": target,
		"source": source,
		"amount": amount,
		"part":   part,
	}).Debug("damage applied")

	if health.IsEmpty() && !world.HasComponent(target, components.Disabled) {
		world.AddComponent(target, components.Disabled, &components.DisabledComponent{Reason: "dead"})
		world.EmitEvent(DeathEvent{EntityID: target, KillerID: source})
	}
	return amount
}

// SpawnProjectile creates a projectile moving along (dirX, dirY) from the owner
func SpawnProjectile(world *ecs.World, owner ecs.EntityID, x, y, dirX, dirY, speed, damage float64) {
	l := math.Hypot(dirX, dirY)
	if l == 0 {
		return
	}
	dirX, dirY = dirX/l, dirY/l
	world.Commands().Spawn(func(w *ecs.World, e *ecs.Entity) {
		w.AddComponent(e.ID, components.Transform, &components.TransformComponent{X: x, Y: y, Yaw: math.Atan2(dirY, dirX)})
		w.AddComponent(e.ID, components.Projectile, &components.ProjectileComponent{
			Owner:  owner,
			Damage: damage,
			Kind:   components.DamageFire,
			DirX:   dirX,
			DirY:   dirY,
			Speed:  speed,
			Radius: BoltRadius,
		})
		w.AddComponent(e.ID, components.Lifetime, &components.LifetimeComponent{Remaining: BoltLifetime})
		w.AddComponent(e.ID, components.Visual, projectileVisual(w))
	})
	world.EmitEvent(ProjectileFiredEvent{Owner: owner})
}

func projectileVisual(world *ecs.World) *components.VisualComponent {
	v := &components.VisualComponent{DefID: "bolt", Scale: 0.15}
	if c := catalog(world); c != nil {
		if def, ok := c.GetVisual("bolt"); ok {
			v.Color = def.RGBA()
			v.Scale = def.Scale
			v.Height = def.Height
		}
	}
	return v
}
