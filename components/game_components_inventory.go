package components

import (
	"ebiten-arpg/ecs"
)

// InventoryComponent is a fixed grid of slots; 0 marks an empty slot so items
// keep their position when the player drags them around
type InventoryComponent struct {
	Slots []ecs.EntityID
}

// NewInventoryComponent creates a new inventory component with a given capacity
func NewInventoryComponent(capacity int) *InventoryComponent {
	return &InventoryComponent{
		Slots: make([]ecs.EntityID, capacity),
	}
}

// Add places an item in the first free slot
// Returns false if inventory is full
func (i *InventoryComponent) Add(itemID ecs.EntityID) (int, bool) {
	for idx, id := range i.Slots {
		if id == 0 {
			i.Slots[idx] = itemID
			return idx, true
		}
	}
	return -1, false
}

// Remove clears the slot holding itemID
func (i *InventoryComponent) Remove(itemID ecs.EntityID) bool {
	idx := i.IndexOf(itemID)
	if idx < 0 {
		return false
	}
	i.Slots[idx] = 0
	return true
}

// Move swaps the contents of two slots
func (i *InventoryComponent) Move(from, to int) bool {
	if from < 0 || from >= len(i.Slots) || to < 0 || to >= len(i.Slots) {
		return false
	}
	if i.Slots[from] == 0 {
		return false
	}
	i.Slots[from], i.Slots[to] = i.Slots[to], i.Slots[from]
	return true
}

// At returns the item at slot or 0 if index is out of bounds
func (i *InventoryComponent) At(slot int) ecs.EntityID {
	if slot < 0 || slot >= len(i.Slots) {
		return 0
	}
	return i.Slots[slot]
}

// IndexOf returns the slot holding itemID or -1
func (i *InventoryComponent) IndexOf(itemID ecs.EntityID) int {
	if itemID == 0 {
		return -1
	}
	for idx, id := range i.Slots {
		if id == itemID {
			return idx
		}
	}
	return -1
}

// Count returns the number of occupied slots
func (i *InventoryComponent) Count() int {
	n := 0
	for _, id := range i.Slots {
		if id != 0 {
			n++
		}
	}
	return n
}

// IsFull returns true if the inventory is at capacity
func (i *InventoryComponent) IsFull() bool {
	return i.Count() >= len(i.Slots)
}

// Items returns occupied slots in slot order
func (i *InventoryComponent) Items() []ecs.EntityID {
	items := make([]ecs.EntityID, 0, len(i.Slots))
	for _, id := range i.Slots {
		if id != 0 {
			items = append(items, id)
		}
	}
	return items
}

// EquipmentSlot names where an item is worn
type EquipmentSlot string

const (
	SlotHead     EquipmentSlot = "head"
	SlotBody     EquipmentSlot = "body"
	SlotMainHand EquipmentSlot = "mainhand"
	SlotOffHand  EquipmentSlot = "offhand"
	SlotFeet     EquipmentSlot = "feet"
	SlotTrinket  EquipmentSlot = "trinket"
)

// AllSlots lists equipment slots in display order
var AllSlots = []EquipmentSlot{SlotHead, SlotBody, SlotMainHand, SlotOffHand, SlotFeet, SlotTrinket}

// ParseSlot converts a slot name. Unknown names report false.
func ParseSlot(name string) (EquipmentSlot, bool) {
	for _, s := range AllSlots {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

// EquipmentComponent maps slots to equipped item entities
type EquipmentComponent struct {
	Slots map[EquipmentSlot]ecs.EntityID
}

// NewEquipmentComponent creates an empty equipment component
func NewEquipmentComponent() *EquipmentComponent {
	return &EquipmentComponent{Slots: make(map[EquipmentSlot]ecs.EntityID)}
}

// Equip puts an item in slot and returns whatever was there before
func (e *EquipmentComponent) Equip(slot EquipmentSlot, itemID ecs.EntityID) ecs.EntityID {
	prev := e.Slots[slot]
	e.Slots[slot] = itemID
	return prev
}

// Unequip empties slot and returns the removed item
func (e *EquipmentComponent) Unequip(slot EquipmentSlot) ecs.EntityID {
	prev := e.Slots[slot]
	delete(e.Slots, slot)
	return prev
}

// SlotOf returns the slot holding itemID
func (e *EquipmentComponent) SlotOf(itemID ecs.EntityID) (EquipmentSlot, bool) {
	for _, slot := range AllSlots {
		if e.Slots[slot] == itemID && itemID != 0 {
			return slot, true
		}
	}
	return "", false
}

// Items returns equipped items in slot display order
func (e *EquipmentComponent) Items() []ecs.EntityID {
	items := make([]ecs.EntityID, 0, len(e.Slots))
	for _, slot := range AllSlots {
		if id := e.Slots[slot]; id != 0 {
			items = append(items, id)
		}
	}
	return items
}

// ItemKind groups items by how they are used
type ItemKind string

const (
	ItemWeapon     ItemKind = "weapon"
	ItemArmor      ItemKind = "armor"
	ItemConsumable ItemKind = "consumable"
	ItemTrinket    ItemKind = "trinket"
)

// ItemComponent indicates that an entity is an item that can be collected
type ItemComponent struct {
	DefID string // ID of the definition that created this item
	Kind  ItemKind
	Count int // Stack size, 1 for non-stackables
}
