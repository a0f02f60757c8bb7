package systems

import (
	"ebiten-arpg/components"
	"ebiten-arpg/ecs"
)

// Event type constants
const (
	EventAttack          ecs.EventType = "attack"
	EventCast            ecs.EventType = "cast"
	EventDamage          ecs.EventType = "damage"
	EventDeath           ecs.EventType = "death"
	EventLevelUp         ecs.EventType = "level_up"
	EventItemPickup      ecs.EventType = "item_pickup"
	EventItemDropped     ecs.EventType = "item_dropped"
	EventItemUsed        ecs.EventType = "item_used"
	EventEquipItem       ecs.EventType = "equip_item"
	EventUnequipItem     ecs.EventType = "unequip_item"
	EventProjectileFired ecs.EventType = "projectile_fired"
	EventEnemyState      ecs.EventType = "enemy_state"
	EventGameOver        ecs.EventType = "game_over"
	EventDescend         ecs.EventType = "descend"
	EventUIClick         ecs.EventType = "ui_click"
)

// AttackEvent is emitted when an entity swings a melee attack
type AttackEvent struct {
	Attacker ecs.EntityID
}

// Type returns the event type
func (e AttackEvent) Type() ecs.EventType {
	return EventAttack
}

// CastEvent is emitted when an entity casts its spell
type CastEvent struct {
	Caster ecs.EntityID
}

// Type returns the event type
func (e CastEvent) Type() ecs.EventType {
	return EventCast
}

// DamageEvent is emitted for every hit that deals damage
type DamageEvent struct {
	Target ecs.EntityID
	Source ecs.EntityID
	Amount float64
	Part   string // Body part name, empty when the target has none
	Kind   components.DamageKind
}

// Type returns the event type
func (e DamageEvent) Type() ecs.EventType {
	return EventDamage
}

// DeathEvent is emitted when an entity dies
type DeathEvent struct {
	EntityID ecs.EntityID // Entity that died
	KillerID ecs.EntityID // Entity that caused the death (if any)
}

// Type returns the event type
func (e DeathEvent) Type() ecs.EventType {
	return EventDeath
}

// LevelUpEvent is emitted once per level gained
type LevelUpEvent struct {
	EntityID ecs.EntityID
	Level    int
}

// Type returns the event type
func (e LevelUpEvent) Type() ecs.EventType {
	return EventLevelUp
}

// ItemPickupEvent is emitted when an entity picks up an item
type ItemPickupEvent struct {
	EntityID ecs.EntityID // Entity picking up the item
	ItemID   ecs.EntityID // Item being picked up
}

// Type returns the event type
func (e ItemPickupEvent) Type() ecs.EventType {
	return EventItemPickup
}

// ItemDroppedEvent is emitted when an item is put on the ground
type ItemDroppedEvent struct {
	EntityID ecs.EntityID
	ItemID   ecs.EntityID
}

// Type returns the event type
func (e ItemDroppedEvent) Type() ecs.EventType {
	return EventItemDropped
}

// ItemUsedEvent is emitted when a consumable is used
type ItemUsedEvent struct {
	EntityID ecs.EntityID
	ItemID   ecs.EntityID
	DefID    string
}

// Type returns the event type
func (e ItemUsedEvent) Type() ecs.EventType {
	return EventItemUsed
}

// EquipItemEvent is emitted after an item is equipped
type EquipItemEvent struct {
	EntityID ecs.EntityID
	ItemID   ecs.EntityID
	Slot     components.EquipmentSlot
}

// Type returns the event type
func (e EquipItemEvent) Type() ecs.EventType {
	return EventEquipItem
}

// UnequipItemEvent is emitted after an item is taken off
type UnequipItemEvent struct {
	EntityID ecs.EntityID
	ItemID   ecs.EntityID
	Slot     components.EquipmentSlot
}

// Type returns the event type
func (e UnequipItemEvent) Type() ecs.EventType {
	return EventUnequipItem
}

// ProjectileFiredEvent is emitted when a projectile is spawned
type ProjectileFiredEvent struct {
	Owner ecs.EntityID
}

// Type returns the event type
func (e ProjectileFiredEvent) Type() ecs.EventType {
	return EventProjectileFired
}

// EnemyStateEvent is emitted when an enemy changes behaviour state
type EnemyStateEvent struct {
	EntityID ecs.EntityID
	From, To components.EnemyState
}

// Type returns the event type
func (e EnemyStateEvent) Type() ecs.EventType {
	return EventEnemyState
}

// GameOverEvent is emitted when the player dies
type GameOverEvent struct {
	PlayerID ecs.EntityID
}

// Type returns the event type
func (e GameOverEvent) Type() ecs.EventType {
	return EventGameOver
}

// DescendEvent asks the game to build the next level
type DescendEvent struct {
	Depth int
}

// Type returns the event type
func (e DescendEvent) Type() ecs.EventType {
	return EventDescend
}

// UIClickEvent is emitted by menus when a button is activated
type UIClickEvent struct{}

// Type returns the event type
func (e UIClickEvent) Type() ecs.EventType {
	return EventUIClick
}
