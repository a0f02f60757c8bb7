package components

import (
	"ebiten-arpg/ecs"
)

// EnemyState is a node of the enemy behaviour state machine
type EnemyState string

const (
	StateIdle   EnemyState = "idle"
	StateChase  EnemyState = "chase"
	StateAttack EnemyState = "attack"
	StateSearch EnemyState = "search"
	StateFlee   EnemyState = "flee"
	StateDead   EnemyState = "dead"
)

// AttackStyle selects between melee swings and projectiles
type AttackStyle string

const (
	AttackMelee  AttackStyle = "melee"
	AttackRanged AttackStyle = "ranged"
)

// Waypoint is a tile centre along a planned path
type Waypoint struct {
	X, Y int
}

// AIComponent stores enemy behaviour tuning and runtime memory
type AIComponent struct {
	State     EnemyState
	StateTime float64 // Seconds spent in the current state

	Target       ecs.EntityID
	LastKnownX   float64
	LastKnownY   float64
	HasLastKnown bool

	Style           AttackStyle
	Speed           float64
	SightRange      float64
	AttackRange     float64
	PreferredRange  float64 // Ranged enemies try to stay this far away
	AttackCooldown  float64
	CooldownLeft    float64
	ProjectileSpeed float64
	CanFlee         bool
	SearchTime      float64 // Seconds to search before giving up

	Path        []Waypoint
	RepathTimer float64

	// Stuck detection
	LastX, LastY float64
	StuckTimer   float64
	StuckCount   int
	UnstickLeft  float64
	UnstickDirX  float64
	UnstickDirY  float64
	GiveUpLeft   float64 // Seconds before a new target may be acquired
}

// NewAIComponent creates an idle AI with the given tuning
func NewAIComponent(style AttackStyle, speed, sight, attackRange, cooldown float64) *AIComponent {
	ai := &AIComponent{
		State:          StateIdle,
		Style:          style,
		Speed:          speed,
		SightRange:     sight,
		AttackRange:    attackRange,
		AttackCooldown: cooldown,
		SearchTime:     4,
	}
	if style == AttackRanged {
		ai.PreferredRange = attackRange * 0.7
	}
	return ai
}

// Enter switches to a new state and resets per-state timers
func (a *AIComponent) Enter(state EnemyState) {
	if a.State == state {
		return
	}
	a.State = state
	a.StateTime = 0
	a.Path = nil
	a.StuckTimer = 0
	a.UnstickLeft = 0
}
