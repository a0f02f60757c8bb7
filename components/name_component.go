package components

import (
	"strconv"

	"ebiten-arpg/ecs"
)

// NameComponent stores the display name for entities
type NameComponent struct {
	Name string
}

// NewNameComponent creates a new name component
func NewNameComponent(name string) *NameComponent {
	return &NameComponent{
		Name: name,
	}
}

// EntityName returns the display name of an entity, falling back to its ID
func EntityName(world *ecs.World, id ecs.EntityID) string {
	if name, ok := ecs.Get[NameComponent](world, id, Name); ok && name.Name != "" {
		return name.Name
	}
	if world.HasComponent(id, Player) {
		return "Player"
	}
	return "Entity #" + strconv.FormatUint(uint64(id), 10)
}
