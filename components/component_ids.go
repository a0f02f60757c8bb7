package components

import (
	"ebiten-arpg/ecs"
)

// Define component IDs for our game
const (
	Transform ecs.ComponentID = iota
	Velocity
	Collider
	Player
	Enemy
	Disabled // Marker: entity no longer acts (dead, stunned)
	Health
	Mana
	Stamina
	Damage
	Attributes
	Experience
	Armor
	Combat
	AI
	Projectile
	BodyPart // Child entity of an enemy representing a hit zone
	Inventory
	Equipment
	Item
	Name
	Visual
	Lifetime
	Loot
)
