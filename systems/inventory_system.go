package systems

import (
	"errors"
	"fmt"
	"math"

	"ebiten-arpg/components"
	"ebiten-arpg/ecs"
	"ebiten-arpg/logging"
)

// Inventory tuning
const (
	PickupRadius = 1.2
	DropDistance = 0.8
)

// Inventory errors
var (
	ErrInventoryFull = errors.New("inventory is full")
	ErrNoInventory   = errors.New("entity has no inventory")
	ErrEmptySlot     = errors.New("inventory slot is empty")
	ErrBadSlot       = errors.New("inventory slot out of range")
	ErrNotUsable     = errors.New("item cannot be used")
	ErrNotOnGround   = errors.New("item is not on the ground")
)

// InventorySystem handles item pickups for the player
type InventorySystem struct{}

// NewInventorySystem creates a new inventory system
func NewInventorySystem() *InventorySystem {
	return &InventorySystem{}
}

// Update picks up the nearest ground item when the player interacts
func (s *InventorySystem) Update(world *ecs.World, dt float64) {
	input, ok := ecs.Resource[InputState](world)
	if !ok || !input.Interact {
		return
	}
	player := playerID(world)
	if player == 0 || world.HasComponent(player, components.Disabled) {
		return
	}

	item, ok := NearestGroundItem(world, player, PickupRadius)
	if !ok {
		return
	}
	if err := PickUp(world, player, item); err != nil {
		if errors.Is(err, ErrInventoryFull) {
			GetMessageLog().AddAlert("Your pack is full.")
		}
		logging.For("inventory").WithError(err).Debug("pickup failed")
	}
}

// NearestGroundItem finds the closest item lying within radius of entity
func NearestGroundItem(world *ecs.World, entity ecs.EntityID, radius float64) (ecs.EntityID, bool) {
	pos, ok := ecs.Get[components.TransformComponent](world, entity, components.Transform)
	if !ok {
		return 0, false
	}
	best, bestDist := ecs.EntityID(0), radius
	for _, id := range world.Query(components.Item, components.Transform) {
		ipos, _ := ecs.Get[components.TransformComponent](world, id, components.Transform)
		if d := math.Hypot(ipos.X-pos.X, ipos.Y-pos.Y); d <= bestDist {
			best, bestDist = id, d
		}
	}
	return best, best != 0
}

// PickUp moves a ground item into entity's inventory. Stackable items merge
// into existing stacks first.
func PickUp(world *ecs.World, entity, itemID ecs.EntityID) error {
	inv, ok := ecs.Get[components.InventoryComponent](world, entity, components.Inventory)
	if !ok {
		return ErrNoInventory
	}
	if !world.HasComponent(itemID, components.Transform) {
		return ErrNotOnGround
	}
	item, def, _ := itemDef(world, itemID)
	if item == nil {
		return ErrNotUsable
	}
	name := components.EntityName(world, itemID)

	if def != nil && def.Stackable {
		maxStack := def.MaxStack
		if maxStack <= 0 {
			maxStack = math.MaxInt32
		}
		for _, other := range inv.Items() {
			stack, ok := ecs.Get[components.ItemComponent](world, other, components.Item)
			if !ok || stack.DefID != item.DefID || stack.Count >= maxStack {
				continue
			}
			moved := min(item.Count, maxStack-stack.Count)
			stack.Count += moved
			item.Count -= moved
			if item.Count == 0 {
				world.Commands().Despawn(itemID)
				GetMessageLog().AddItem(fmt.Sprintf("You pick up %s.", name))
				world.EmitEvent(ItemPickupEvent{EntityID: entity, ItemID: other})
				return nil
			}
		}
	}

	if _, ok := inv.Add(itemID); !ok {
		return ErrInventoryFull
	}
	world.RemoveComponent(itemID, components.Transform)
	GetMessageLog().AddItem(fmt.Sprintf("You pick up %s.", name))
	world.EmitEvent(ItemPickupEvent{EntityID: entity, ItemID: itemID})
	return nil
}

// Drop takes the item in slot out of the inventory and puts it on the floor
// in front of entity
func Drop(world *ecs.World, entity ecs.EntityID, slot int) error {
	inv, ok := ecs.Get[components.InventoryComponent](world, entity, components.Inventory)
	if !ok {
		return ErrNoInventory
	}
	if slot < 0 || slot >= len(inv.Slots) {
		return ErrBadSlot
	}
	itemID := inv.At(slot)
	if itemID == 0 {
		return ErrEmptySlot
	}
	pos, ok := ecs.Get[components.TransformComponent](world, entity, components.Transform)
	if !ok {
		return fmt.Errorf("drop: %w", ErrNoInventory)
	}

	x, y := pos.X, pos.Y
	fx, fy := pos.Forward()
	if m := roomMap(world); m == nil || !m.IsWallAt(x+fx*DropDistance, y+fy*DropDistance) {
		x += fx * DropDistance
		y += fy * DropDistance
	}

	inv.Slots[slot] = 0
	world.AddComponent(itemID, components.Transform, &components.TransformComponent{X: x, Y: y})
	GetMessageLog().AddItem(fmt.Sprintf("You drop %s.", components.EntityName(world, itemID)))
	world.EmitEvent(ItemDroppedEvent{EntityID: entity, ItemID: itemID})
	return nil
}

// MoveItem swaps the contents of two inventory slots
func MoveItem(world *ecs.World, entity ecs.EntityID, from, to int) error {
	inv, ok := ecs.Get[components.InventoryComponent](world, entity, components.Inventory)
	if !ok {
		return ErrNoInventory
	}
	if from < 0 || from >= len(inv.Slots) || to < 0 || to >= len(inv.Slots) {
		return ErrBadSlot
	}
	if !inv.Move(from, to) {
		return ErrEmptySlot
	}
	return nil
}

// UseItem applies the item in slot. Consumables restore pools and lose one
// from their stack; wearables are equipped.
func UseItem(world *ecs.World, entity ecs.EntityID, slot int) error {
	inv, ok := ecs.Get[components.InventoryComponent](world, entity, components.Inventory)
	if !ok {
		return ErrNoInventory
	}
	if slot < 0 || slot >= len(inv.Slots) {
		return ErrBadSlot
	}
	itemID := inv.At(slot)
	if itemID == 0 {
		return ErrEmptySlot
	}
	item, def, ok := itemDef(world, itemID)
	if !ok {
		return ErrNotUsable
	}

	if item.Kind != components.ItemConsumable {
		return Equip(world, entity, itemID)
	}

	restored := 0.0
	restore := func(poolID ecs.ComponentID, amount float64) {
		if amount <= 0 {
			return
		}
		if comp, ok := world.GetComponent(entity, poolID); ok {
			if pool, ok := components.PoolOf(comp); ok {
				restored += pool.Restore(amount)
			}
		}
	}
	restore(components.Health, def.Heal)
	restore(components.Mana, def.RestoreMana)
	restore(components.Stamina, def.RestoreStamina)

	GetMessageLog().AddItem(fmt.Sprintf("You use %s.", def.Name))
	if restored == 0 {
		GetMessageLog().Add("Nothing happens.")
	}

	item.Count--
	if item.Count <= 0 {
		inv.Slots[slot] = 0
		world.Commands().Despawn(itemID)
	}
	world.EmitEvent(ItemUsedEvent{EntityID: entity, ItemID: itemID, DefID: def.ID})
	return nil
}
