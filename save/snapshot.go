package save

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ebiten-arpg/components"
	"ebiten-arpg/ecs"
	"ebiten-arpg/generation"
	"ebiten-arpg/logging"
	"ebiten-arpg/spawners"
	"ebiten-arpg/systems"
)

// Snapshot errors
var (
	ErrNoPlayer = errors.New("no player to save")
	ErrCorrupt  = errors.New("corrupt snapshot")
)

// ItemStack is a stored item. An empty DefID marks an empty bag slot.
type ItemStack struct {
	DefID string `json:"def_id,omitempty"`
	Count int    `json:"count,omitempty"`
}

// Snapshot is everything needed to rebuild a character on a regenerated
// level. The level itself is not stored, only the seed and depth that
// reproduce it.
type Snapshot struct {
	ID      uuid.UUID `json:"id"`
	SavedAt time.Time `json:"saved_at"`

	Depth int   `json:"depth"`
	Seed  int64 `json:"seed"`

	Level      int                            `json:"level"`
	XP         int                            `json:"xp"`
	Attributes components.AttributesComponent `json:"attributes"`

	Health  float64 `json:"health"`
	Mana    float64 `json:"mana"`
	Stamina float64 `json:"stamina"`

	Inventory []ItemStack                             `json:"inventory"`
	Equipment map[components.EquipmentSlot]ItemStack `json:"equipment"`
}

// Capture records the player and the current level's seed and depth
func Capture(world *ecs.World) (Snapshot, error) {
	player := world.FirstWithTag(systems.TagPlayer)
	if player == 0 {
		return Snapshot{}, ErrNoPlayer
	}

	snap := Snapshot{
		Level:     1,
		Equipment: make(map[components.EquipmentSlot]ItemStack),
	}
	if m, ok := ecs.Resource[generation.RoomMap](world); ok {
		snap.Depth = m.Depth
		snap.Seed = m.Seed
	}
	if exp, ok := ecs.Get[components.ExperienceComponent](world, player, components.Experience); ok {
		snap.Level, snap.XP = exp.Level, exp.XP
	}
	if attrs, ok := ecs.Get[components.AttributesComponent](world, player, components.Attributes); ok {
		snap.Attributes = *attrs
	}
	snap.Health = poolCurrent(world, player, components.Health)
	snap.Mana = poolCurrent(world, player, components.Mana)
	snap.Stamina = poolCurrent(world, player, components.Stamina)

	if inv, ok := ecs.Get[components.InventoryComponent](world, player, components.Inventory); ok {
		snap.Inventory = make([]ItemStack, len(inv.Slots))
		for i, id := range inv.Slots {
			snap.Inventory[i] = stackOf(world, id)
		}
	}
	if equip, ok := ecs.Get[components.EquipmentComponent](world, player, components.Equipment); ok {
		for slot, id := range equip.Slots {
			if stack := stackOf(world, id); stack.DefID != "" {
				snap.Equipment[slot] = stack
			}
		}
	}
	return snap, nil
}

// Restore creates the player described by snap at the level's start. The
// level must already be generated from snap's seed and depth. Items whose
// definitions no longer exist are skipped.
func Restore(world *ecs.World, spawner *spawners.Spawner, snap Snapshot) (ecs.EntityID, error) {
	if snap.Level < 1 || len(snap.Inventory) > spawners.PlayerInventorySize {
		return 0, fmt.Errorf("level %d, %d bag slots: %w", snap.Level, len(snap.Inventory), ErrCorrupt)
	}
	for slot := range snap.Equipment {
		if _, ok := components.ParseSlot(string(slot)); !ok {
			return 0, fmt.Errorf("equipment slot %q: %w", slot, ErrCorrupt)
		}
	}
	log := logging.For("save")

	x, y := 0.5, 0.5
	if m, ok := ecs.Resource[generation.RoomMap](world); ok {
		x, y = generation.TileCenter(m.PlayerStart)
	}
	player := spawner.CreatePlayer(x, y, 0)

	if attrs, ok := ecs.Get[components.AttributesComponent](world, player, components.Attributes); ok {
		*attrs = snap.Attributes
	}
	if exp, ok := ecs.Get[components.ExperienceComponent](world, player, components.Experience); ok {
		exp.Level, exp.XP = snap.Level, snap.XP
	}

	inv, _ := ecs.Get[components.InventoryComponent](world, player, components.Inventory)
	for i, stack := range snap.Inventory {
		if stack.DefID == "" {
			continue
		}
		id, err := spawner.CreateItem(stack.DefID, stack.Count)
		if err != nil {
			log.WithError(err).Warn("saved item skipped")
			continue
		}
		inv.Slots[i] = id
	}

	equip, _ := ecs.Get[components.EquipmentComponent](world, player, components.Equipment)
	for _, slot := range components.AllSlots {
		stack, ok := snap.Equipment[slot]
		if !ok {
			continue
		}
		id, err := spawner.CreateItem(stack.DefID, stack.Count)
		if err != nil {
			log.WithError(err).Warn("saved equipment skipped")
			continue
		}
		equip.Equip(slot, id)
	}

	// Maxima depend on attributes and equipment
	systems.RecomputeStats(world, player)
	setPool(world, player, components.Health, snap.Health)
	setPool(world, player, components.Mana, snap.Mana)
	setPool(world, player, components.Stamina, snap.Stamina)

	log.WithField("id", snap.ID).WithField("depth", snap.Depth).Info("game restored")
	return player, nil
}

func stackOf(world *ecs.World, id ecs.EntityID) ItemStack {
	if id == 0 {
		return ItemStack{}
	}
	item, ok := ecs.Get[components.ItemComponent](world, id, components.Item)
	if !ok {
		return ItemStack{}
	}
	return ItemStack{DefID: item.DefID, Count: item.Count}
}

func poolCurrent(world *ecs.World, id ecs.EntityID, poolID ecs.ComponentID) float64 {
	comp, ok := world.GetComponent(id, poolID)
	if !ok {
		return 0
	}
	if pool, ok := components.PoolOf(comp); ok {
		return pool.Current
	}
	return 0
}

// setPool restores a saved current value. A non-positive value means the
// pool was never recorded and it is filled instead.
func setPool(world *ecs.World, id ecs.EntityID, poolID ecs.ComponentID, value float64) {
	comp, ok := world.GetComponent(id, poolID)
	if !ok {
		return
	}
	pool, ok := components.PoolOf(comp)
	if !ok {
		return
	}
	if value <= 0 {
		pool.Fill()
		return
	}
	pool.Current = min(value, pool.Max)
}
