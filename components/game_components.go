package components

import (
	"image/color"
	"math"

	"ebiten-arpg/ecs"
)

// TransformComponent stores an entity's position on the floor plane (tile
// units) and its facing angle in radians
type TransformComponent struct {
	X, Y float64
	Yaw  float64
}

// Forward returns the unit vector the entity is facing
func (t *TransformComponent) Forward() (float64, float64) {
	return math.Cos(t.Yaw), math.Sin(t.Yaw)
}

// DistanceTo returns the planar distance to another transform
func (t *TransformComponent) DistanceTo(o *TransformComponent) float64 {
	return math.Hypot(o.X-t.X, o.Y-t.Y)
}

// VelocityComponent is the desired planar velocity in tiles per second
type VelocityComponent struct {
	X, Y float64
}

// ColliderComponent gives an entity a physical body
type ColliderComponent struct {
	Radius float64
}

// PlayerComponent indicates that an entity is controlled by the player
type PlayerComponent struct{}

// EnemyComponent marks hostile entities and records which definition spawned them
type EnemyComponent struct {
	Kind string
	XP   int // Awarded to the killer
}

// DisabledComponent marks an entity that no longer acts
type DisabledComponent struct {
	Reason string // "dead", ...
}

// DamageKind classifies a hit for resistances and audio
type DamageKind string

const (
	DamagePhysical DamageKind = "physical"
	DamageArcane   DamageKind = "arcane"
	DamageFire     DamageKind = "fire"
)

// DamageComponent is the base damage an entity deals
type DamageComponent struct {
	Amount float64
	Kind   DamageKind
}

// AttributesComponent holds the character's primary attributes
type AttributesComponent struct {
	Strength  int
	Agility   int
	Intellect int
	Vitality  int
	Unspent   int // Points awarded on level up, not yet assigned
}

// Attribute names accepted by AttributesComponent.Add
const (
	AttrStrength  = "strength"
	AttrAgility   = "agility"
	AttrIntellect = "intellect"
	AttrVitality  = "vitality"
)

// Add raises the named attribute by n. Unknown names are ignored and report false.
func (a *AttributesComponent) Add(name string, n int) bool {
	switch name {
	case AttrStrength:
		a.Strength += n
	case AttrAgility:
		a.Agility += n
	case AttrIntellect:
		a.Intellect += n
	case AttrVitality:
		a.Vitality += n
	default:
		return false
	}
	return true
}

// ExperienceComponent tracks level progression
type ExperienceComponent struct {
	Level int
	XP    int
}

// ArmorComponent reduces incoming damage by a flat amount
type ArmorComponent struct {
	Value float64
}

// CombatComponent stores attack timing and costs
type CombatComponent struct {
	Cooldown    float64 // Seconds between swings
	Ready       float64 // Seconds until the next swing is allowed
	Reach       float64 // Melee reach in tiles
	Arc         float64 // Full melee arc in radians
	StaminaCost float64
	ManaCost    float64
	SpellDamage float64
	SpellRange  float64
	AimHeight   float64 // Strike height used to pick the body part hit, 0..1
}

// CanAttack reports whether the cooldown has elapsed
func (c *CombatComponent) CanAttack() bool {
	return c.Ready <= 0
}

// ProjectileComponent is a moving ranged attack
type ProjectileComponent struct {
	Owner    ecs.EntityID
	Damage   float64
	Kind     DamageKind
	DirX     float64
	DirY     float64
	Speed    float64
	Radius   float64
	Lifetime float64
}

// BodyPartComponent is a hit zone attached as a child of its owner
type BodyPartComponent struct {
	Name       string
	Multiplier float64 // Damage multiplier for hits on this part
	Height     float64 // Relative height 0 (feet) .. 1 (top of head)
}

// VisualComponent describes how the renderer draws a billboard
type VisualComponent struct {
	DefID  string
	Color  color.RGBA
	Scale  float64 // Sprite height relative to a wall
	Height float64 // Vertical offset of the sprite centre
}

// LifetimeComponent despawns the entity when Remaining reaches zero
type LifetimeComponent struct {
	Remaining float64
}

// LootComponent names the loot table rolled when the entity dies
type LootComponent struct {
	TableID string
}
