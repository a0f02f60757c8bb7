package components

import (
	"strings"

	"ebiten-arpg/ecs"
)

// componentNameMap maps string component names to their IDs
var componentNameMap = map[string]ecs.ComponentID{
	"Transform":  Transform,
	"Velocity":   Velocity,
	"Collider":   Collider,
	"Player":     Player,
	"Enemy":      Enemy,
	"Disabled":   Disabled,
	"Health":     Health,
	"Mana":       Mana,
	"Stamina":    Stamina,
	"Damage":     Damage,
	"Attributes": Attributes,
	"Experience": Experience,
	"Armor":      Armor,
	"Combat":     Combat,
	"AI":         AI,
	"Projectile": Projectile,
	"BodyPart":   BodyPart,
	"Inventory":  Inventory,
	"Equipment":  Equipment,
	"Item":       Item,
	"Name":       Name,
	"Visual":     Visual,
	"Lifetime":   Lifetime,
	"Loot":       Loot,
}

// GetComponentIDByName returns the ComponentID for a given component name string
// The lookup is case-insensitive
func GetComponentIDByName(name string) (ecs.ComponentID, bool) {
	// Try exact match first
	if id, exists := componentNameMap[name]; exists {
		return id, true
	}

	for compName, id := range componentNameMap {
		if strings.EqualFold(compName, name) {
			return id, true
		}
	}

	return 0, false
}

// GetPool resolves a pool component (Health, Mana, Stamina) on an entity by name
func GetPool(world *ecs.World, id ecs.EntityID, name string) (*Pool, bool) {
	cid, ok := GetComponentIDByName(name)
	if !ok {
		return nil, false
	}
	comp, ok := world.GetComponent(id, cid)
	if !ok {
		return nil, false
	}
	return PoolOf(comp)
}
