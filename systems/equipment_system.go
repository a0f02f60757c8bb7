package systems

import (
	"errors"
	"fmt"

	"ebiten-arpg/components"
	"ebiten-arpg/data"
	"ebiten-arpg/ecs"
	"ebiten-arpg/logging"
)

// Equipment errors
var (
	ErrNotEquippable = errors.New("item cannot be equipped")
	ErrWrongSlot     = errors.New("item does not fit that slot")
	ErrSlotEmpty     = errors.New("slot is empty")
	ErrNoEquipment   = errors.New("entity has no equipment")
)

// Totals sums what equipped items add to an entity
type Totals struct {
	Damage  float64
	Armor   float64
	Bonuses data.Bonuses
}

// itemDef resolves the definition behind an item entity
func itemDef(world *ecs.World, itemID ecs.EntityID) (*components.ItemComponent, *data.ItemDef, bool) {
	item, ok := ecs.Get[components.ItemComponent](world, itemID, components.Item)
	if !ok {
		return nil, nil, false
	}
	c := catalog(world)
	if c == nil {
		return item, nil, false
	}
	def, ok := c.GetItem(item.DefID)
	return item, def, ok
}

// EquipmentTotals adds up damage, armor and bonuses of everything equipped
func EquipmentTotals(world *ecs.World, id ecs.EntityID) Totals {
	var t Totals
	equip, ok := ecs.Get[components.EquipmentComponent](world, id, components.Equipment)
	if !ok {
		return t
	}
	for _, itemID := range equip.Items() {
		_, def, ok := itemDef(world, itemID)
		if !ok {
			continue
		}
		t.Damage += def.Damage
		t.Armor += def.Armor
		t.Bonuses.Strength += def.Bonuses.Strength
		t.Bonuses.Agility += def.Bonuses.Agility
		t.Bonuses.Intellect += def.Bonuses.Intellect
		t.Bonuses.Vitality += def.Bonuses.Vitality
	}
	return t
}

// EffectiveAttributes returns base attributes plus equipment bonuses
func EffectiveAttributes(world *ecs.World, id ecs.EntityID) components.AttributesComponent {
	var attrs components.AttributesComponent
	if base, ok := ecs.Get[components.AttributesComponent](world, id, components.Attributes); ok {
		attrs = *base
	}
	b := EquipmentTotals(world, id).Bonuses
	attrs.Strength += b.Strength
	attrs.Agility += b.Agility
	attrs.Intellect += b.Intellect
	attrs.Vitality += b.Vitality
	return attrs
}

// Equip wears item in the slot named by its definition
func Equip(world *ecs.World, entity, itemID ecs.EntityID) error {
	_, def, ok := itemDef(world, itemID)
	if !ok {
		return ErrNotEquippable
	}
	slot, ok := components.ParseSlot(def.Slot)
	if !ok {
		return fmt.Errorf("%s: %w", def.Name, ErrNotEquippable)
	}
	return EquipToSlot(world, entity, itemID, slot)
}

// EquipToSlot wears item in slot. The item leaves the inventory and whatever
// was in the slot takes its place there.
func EquipToSlot(world *ecs.World, entity, itemID ecs.EntityID, slot components.EquipmentSlot) error {
	equip, ok := ecs.Get[components.EquipmentComponent](world, entity, components.Equipment)
	if !ok {
		return ErrNoEquipment
	}
	_, def, ok := itemDef(world, itemID)
	if !ok {
		return ErrNotEquippable
	}
	if want, ok := components.ParseSlot(def.Slot); !ok || want != slot {
		return fmt.Errorf("%s in %s: %w", def.Name, slot, ErrWrongSlot)
	}
	if current, ok := equip.SlotOf(itemID); ok && current == slot {
		return nil
	}

	inv, hasInv := ecs.Get[components.InventoryComponent](world, entity, components.Inventory)
	if !hasInv && equip.Slots[slot] != 0 {
		// Nowhere to put the displaced item
		return ErrNoInventory
	}
	invSlot := -1
	if hasInv {
		invSlot = inv.IndexOf(itemID)
		if invSlot >= 0 {
			inv.Slots[invSlot] = 0
		}
	}

	prev := equip.Equip(slot, itemID)
	if prev != 0 {
		if invSlot >= 0 {
			inv.Slots[invSlot] = prev
		} else if _, ok := inv.Add(prev); !ok {
			// No room: undo
			equip.Equip(slot, prev)
			return ErrInventoryFull
		}
		world.EmitEvent(UnequipItemEvent{EntityID: entity, ItemID: prev, Slot: slot})
	}

	GetMessageLog().AddItem(fmt.Sprintf("%s equips %s.", components.EntityName(world, entity), def.Name))
	logging.For("equipment").WithField("item", def.ID).WithField("slot", slot).Debug("equipped")
	world.EmitEvent(EquipItemEvent{EntityID: entity, ItemID: itemID, Slot: slot})
	return nil
}

// Unequip takes the item out of slot and puts it in the inventory
func Unequip(world *ecs.World, entity ecs.EntityID, slot components.EquipmentSlot) error {
	equip, ok := ecs.Get[components.EquipmentComponent](world, entity, components.Equipment)
	if !ok {
		return ErrNoEquipment
	}
	itemID := equip.Slots[slot]
	if itemID == 0 {
		return ErrSlotEmpty
	}
	inv, ok := ecs.Get[components.InventoryComponent](world, entity, components.Inventory)
	if !ok || inv.IsFull() {
		return ErrInventoryFull
	}

	equip.Unequip(slot)
	inv.Add(itemID)

	GetMessageLog().AddItem(fmt.Sprintf("%s removes %s.", components.EntityName(world, entity), components.EntityName(world, itemID)))
	world.EmitEvent(UnequipItemEvent{EntityID: entity, ItemID: itemID, Slot: slot})
	return nil
}
