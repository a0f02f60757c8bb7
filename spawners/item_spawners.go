package spawners

import (
	"fmt"

	"ebiten-arpg/components"
	"ebiten-arpg/ecs"
	"ebiten-arpg/systems"
)

// CreateItem creates an item entity that is not placed in the level, ready to
// go into an inventory or an equipment slot
func (s *Spawner) CreateItem(defID string, count int) (ecs.EntityID, error) {
	return s.createItem(s.world, defID, count)
}

// CreateGroundItem creates an item lying on the floor at x, y
func (s *Spawner) CreateGroundItem(defID string, count int, x, y float64) (ecs.EntityID, error) {
	id, err := s.createItem(s.world, defID, count)
	if err != nil {
		return 0, err
	}
	s.world.AddComponent(id, components.Transform, &components.TransformComponent{X: x, Y: y})
	return id, nil
}

// GiveItem creates an item straight into owner's inventory
func (s *Spawner) GiveItem(owner ecs.EntityID, defID string, count int) (ecs.EntityID, error) {
	inv, ok := ecs.Get[components.InventoryComponent](s.world, owner, components.Inventory)
	if !ok {
		return 0, systems.ErrNoInventory
	}
	id, err := s.CreateItem(defID, count)
	if err != nil {
		return 0, err
	}
	if _, ok := inv.Add(id); !ok {
		s.world.RemoveEntity(id)
		return 0, fmt.Errorf("%s: %w", defID, systems.ErrInventoryFull)
	}
	return id, nil
}

func (s *Spawner) createItem(world *ecs.World, defID string, count int) (ecs.EntityID, error) {
	def, ok := s.catalog.GetItem(defID)
	if !ok {
		return 0, fmt.Errorf("%q: %w", defID, ErrUnknownItem)
	}
	if count < 1 || !def.Stackable {
		count = 1
	}
	if def.Stackable && def.MaxStack > 0 && count > def.MaxStack {
		count = def.MaxStack
	}

	itemEntity := world.CreateEntity()
	id := itemEntity.ID
	world.TagEntity(id, systems.TagItem)

	world.AddComponent(id, components.Item, &components.ItemComponent{
		DefID: def.ID,
		Kind:  components.ItemKind(def.Kind),
		Count: count,
	})
	world.AddComponent(id, components.Name, components.NewNameComponent(def.Name))
	if v, ok := s.visual(def.Visual); ok {
		world.AddComponent(id, components.Visual, v)
	}
	return id, nil
}
