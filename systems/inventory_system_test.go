package systems

import (
	"errors"
	"testing"

	"ebiten-arpg/components"
	"ebiten-arpg/ecs"
	"ebiten-arpg/generation"
)

func inventory(world *ecs.World, id ecs.EntityID) *components.InventoryComponent {
	inv, _ := ecs.Get[components.InventoryComponent](world, id, components.Inventory)
	return inv
}

func itemCount(world *ecs.World, id ecs.EntityID) int {
	item, _ := ecs.Get[components.ItemComponent](world, id, components.Item)
	return item.Count
}

func TestPickUpMergesStacks(t *testing.T) {
	world := newWorld(t)
	player := spawnPlayer(world, 1, 1, 0)
	stack := give(t, world, player, "health_potion", 4)
	ground := spawnItem(t, world, "health_potion", 2, 1.5, 1, true)
	pickups := record[ItemPickupEvent](world, EventItemPickup)

	if err := PickUp(world, player, ground); err != nil {
		t.Fatalf("pickup: %v", err)
	}
	// max_stack is 5: one joins the stack, the other takes a new slot
	if itemCount(world, stack) != 5 || itemCount(world, ground) != 1 {
		t.Errorf("counts = %d / %d, want 5 / 1", itemCount(world, stack), itemCount(world, ground))
	}
	inv := inventory(world, player)
	if inv.Count() != 2 || inv.IndexOf(ground) != 1 {
		t.Errorf("slots = %v", inv.Slots)
	}
	if world.HasComponent(ground, components.Transform) {
		t.Errorf("picked up item still on the ground")
	}
	if len(*pickups) != 1 {
		t.Errorf("pickup events = %d", len(*pickups))
	}
}

func TestPickUpFullyMergedItemIsDespawned(t *testing.T) {
	world := newWorld(t)
	player := spawnPlayer(world, 1, 1, 0)
	stack := give(t, world, player, "mana_potion", 1)
	ground := spawnItem(t, world, "mana_potion", 2, 1.5, 1, true)

	if err := PickUp(world, player, ground); err != nil {
		t.Fatalf("pickup: %v", err)
	}
	world.ApplyCommands()
	if world.Exists(ground) {
		t.Errorf("merged ground item not despawned")
	}
	if itemCount(world, stack) != 3 || inventory(world, player).Count() != 1 {
		t.Errorf("stack = %d slots = %v", itemCount(world, stack), inventory(world, player).Slots)
	}
}

func TestPickUpErrors(t *testing.T) {
	world := newWorld(t)
	player := spawnPlayer(world, 1, 1, 0)
	for i := 0; i < 4; i++ {
		give(t, world, player, "short_sword", 1)
	}
	ground := spawnItem(t, world, "leather_cap", 1, 1.5, 1, true)
	if err := PickUp(world, player, ground); !errors.Is(err, ErrInventoryFull) {
		t.Errorf("err = %v, want ErrInventoryFull", err)
	}
	if !world.HasComponent(ground, components.Transform) {
		t.Errorf("item left the ground on a failed pickup")
	}

	held := inventory(world, player).At(0)
	if err := PickUp(world, player, held); !errors.Is(err, ErrNotOnGround) {
		t.Errorf("err = %v, want ErrNotOnGround", err)
	}

	enemy := spawnEnemy(world, 2, 1, 10)
	if err := PickUp(world, enemy, ground); !errors.Is(err, ErrNoInventory) {
		t.Errorf("err = %v, want ErrNoInventory", err)
	}
}

func TestInventorySystemPicksUpOnInteract(t *testing.T) {
	world := newWorld(t)
	player := spawnPlayer(world, 1, 1, 0)
	farItem := spawnItem(t, world, "leather_cap", 1, 3, 1, true)
	nearItem := spawnItem(t, world, "worn_boots", 1, 1.6, 1, true)
	input := &InputState{}
	ecs.InsertResource(world, input)
	sys := NewInventorySystem()

	sys.Update(world, 0.1)
	if inventory(world, player).Count() != 0 {
		t.Fatalf("picked up without interacting")
	}

	input.Interact = true
	sys.Update(world, 0.1)
	inv := inventory(world, player)
	if inv.IndexOf(nearItem) < 0 || inv.IndexOf(farItem) >= 0 {
		t.Errorf("slots = %v, want only %d", inv.Slots, nearItem)
	}

	// The remaining item is out of reach
	sys.Update(world, 0.1)
	if inv.Count() != 1 {
		t.Errorf("picked up an item beyond PickupRadius")
	}
}

func TestMoveItem(t *testing.T) {
	world := newWorld(t)
	player := spawnPlayer(world, 1, 1, 0)
	a := give(t, world, player, "short_sword", 1)
	b := give(t, world, player, "leather_cap", 1)

	if err := MoveItem(world, player, 0, 1); err != nil {
		t.Fatalf("move: %v", err)
	}
	inv := inventory(world, player)
	if inv.At(0) != b || inv.At(1) != a {
		t.Errorf("slots = %v after swap", inv.Slots)
	}
	if err := MoveItem(world, player, 1, 3); err != nil || inv.At(3) != a || inv.At(1) != 0 {
		t.Errorf("move into empty slot: %v %v", err, inv.Slots)
	}

	if err := MoveItem(world, player, 2, 0); !errors.Is(err, ErrEmptySlot) {
		t.Errorf("err = %v, want ErrEmptySlot", err)
	}
	if err := MoveItem(world, player, 0, 9); !errors.Is(err, ErrBadSlot) {
		t.Errorf("err = %v, want ErrBadSlot", err)
	}
}

func TestUsePotionStack(t *testing.T) {
	world := newWorld(t)
	player := spawnPlayer(world, 1, 1, 0)
	potion := give(t, world, player, "health_potion", 2)
	h := health(world, player)
	h.Current = 50
	used := record[ItemUsedEvent](world, EventItemUsed)

	if err := UseItem(world, player, 0); err != nil {
		t.Fatalf("use: %v", err)
	}
	if h.Current != 90 || itemCount(world, potion) != 1 {
		t.Fatalf("health %v count %d, want 90 / 1", h.Current, itemCount(world, potion))
	}

	if err := UseItem(world, player, 0); err != nil {
		t.Fatalf("use: %v", err)
	}
	world.ApplyCommands()
	if h.Current != 100 {
		t.Errorf("health = %v, want capped at 100", h.Current)
	}
	if inventory(world, player).At(0) != 0 || world.Exists(potion) {
		t.Errorf("empty stack not removed")
	}
	if len(*used) != 2 || (*used)[0].DefID != "health_potion" {
		t.Errorf("used events = %+v", *used)
	}

	if err := UseItem(world, player, 0); !errors.Is(err, ErrEmptySlot) {
		t.Errorf("err = %v, want ErrEmptySlot", err)
	}
}

func TestUseWearableEquipsIt(t *testing.T) {
	world := newWorld(t)
	player := spawnPlayer(world, 1, 1, 0)
	boots := give(t, world, player, "worn_boots", 1)

	if err := UseItem(world, player, 0); err != nil {
		t.Fatalf("use: %v", err)
	}
	equip, _ := ecs.Get[components.EquipmentComponent](world, player, components.Equipment)
	if equip.Slots[components.SlotFeet] != boots {
		t.Errorf("boots not equipped: %v", equip.Slots)
	}
	if inventory(world, player).IndexOf(boots) >= 0 {
		t.Errorf("equipped item still in the pack")
	}
}

func TestEquipSwapsIntoSameSlot(t *testing.T) {
	world := newWorld(t)
	player := spawnPlayer(world, 1, 1, 0)
	sword := give(t, world, player, "short_sword", 1)
	helm := give(t, world, player, "leather_cap", 1)
	axe := give(t, world, player, "war_axe", 1)
	unequips := record[UnequipItemEvent](world, EventUnequipItem)

	if err := Equip(world, player, sword); err != nil {
		t.Fatalf("equip sword: %v", err)
	}
	if err := Equip(world, player, axe); err != nil {
		t.Fatalf("equip axe: %v", err)
	}

	equip, _ := ecs.Get[components.EquipmentComponent](world, player, components.Equipment)
	inv := inventory(world, player)
	if equip.Slots[components.SlotMainHand] != axe {
		t.Errorf("main hand = %d, want axe", equip.Slots[components.SlotMainHand])
	}
	// The sword goes back where the axe was
	if inv.At(2) != sword || inv.At(1) != helm || inv.At(0) != 0 {
		t.Errorf("slots = %v", inv.Slots)
	}
	if len(*unequips) != 1 || (*unequips)[0].ItemID != sword {
		t.Errorf("unequip events = %+v", *unequips)
	}
	if got := EquipmentTotals(world, player); got.Damage != 11 || got.Bonuses.Strength != 1 {
		t.Errorf("totals = %+v", got)
	}
}

func TestEquipRejectsWrongSlot(t *testing.T) {
	world := newWorld(t)
	player := spawnPlayer(world, 1, 1, 0)
	helm := give(t, world, player, "leather_cap", 1)
	potion := give(t, world, player, "health_potion", 1)

	if err := EquipToSlot(world, player, helm, components.SlotFeet); !errors.Is(err, ErrWrongSlot) {
		t.Errorf("err = %v, want ErrWrongSlot", err)
	}
	if err := Equip(world, player, potion); !errors.Is(err, ErrNotEquippable) {
		t.Errorf("err = %v, want ErrNotEquippable", err)
	}
	if inventory(world, player).Count() != 2 {
		t.Errorf("failed equip changed the pack")
	}
}

func TestEquipWithoutInventoryKeepsWornItem(t *testing.T) {
	world := newWorld(t)
	player := spawnPlayer(world, 1, 1, 0)
	sword := give(t, world, player, "short_sword", 1)
	axe := give(t, world, player, "war_axe", 1)
	helm := give(t, world, player, "leather_cap", 1)
	if err := Equip(world, player, sword); err != nil {
		t.Fatalf("equip sword: %v", err)
	}
	world.RemoveComponent(player, components.Inventory)
	unequips := record[UnequipItemEvent](world, EventUnequipItem)

	if err := Equip(world, player, axe); !errors.Is(err, ErrNoInventory) {
		t.Fatalf("err = %v, want ErrNoInventory", err)
	}
	equip, _ := ecs.Get[components.EquipmentComponent](world, player, components.Equipment)
	if equip.Slots[components.SlotMainHand] != sword || len(*unequips) != 0 {
		t.Errorf("main hand = %d, unequips %+v", equip.Slots[components.SlotMainHand], *unequips)
	}

	// An empty slot displaces nothing
	if err := Equip(world, player, helm); err != nil || equip.Slots[components.SlotHead] != helm {
		t.Errorf("equip helm: %v, head = %d", err, equip.Slots[components.SlotHead])
	}
}

func TestUnequip(t *testing.T) {
	world := newWorld(t)
	player := spawnPlayer(world, 1, 1, 0)
	helm := give(t, world, player, "leather_cap", 1)
	if err := Equip(world, player, helm); err != nil {
		t.Fatalf("equip: %v", err)
	}

	if err := Unequip(world, player, components.SlotBody); !errors.Is(err, ErrSlotEmpty) {
		t.Errorf("err = %v, want ErrSlotEmpty", err)
	}

	for i := 0; i < 4; i++ {
		give(t, world, player, "health_potion", 1)
	}
	if err := Unequip(world, player, components.SlotHead); !errors.Is(err, ErrInventoryFull) {
		t.Fatalf("err = %v, want ErrInventoryFull", err)
	}

	inv := inventory(world, player)
	inv.Slots[3] = 0
	if err := Unequip(world, player, components.SlotHead); err != nil {
		t.Fatalf("unequip: %v", err)
	}
	equip, _ := ecs.Get[components.EquipmentComponent](world, player, components.Equipment)
	if equip.Slots[components.SlotHead] != 0 || inv.At(3) != helm {
		t.Errorf("equipment %v slots %v", equip.Slots, inv.Slots)
	}
}

func TestDropPlacesItemInFront(t *testing.T) {
	world := newWorld(t)
	ecs.InsertResource(world, openMap(6, 6))
	player := spawnPlayer(world, 2.5, 2.5, 0)
	sword := give(t, world, player, "short_sword", 1)
	dropped := record[ItemDroppedEvent](world, EventItemDropped)

	if err := Drop(world, player, 0); err != nil {
		t.Fatalf("drop: %v", err)
	}
	pos, ok := ecs.Get[components.TransformComponent](world, sword, components.Transform)
	if !ok || !near(pos.X, 2.5+DropDistance) || !near(pos.Y, 2.5) {
		t.Errorf("dropped at %+v", pos)
	}
	if inventory(world, player).At(0) != 0 || len(*dropped) != 1 {
		t.Errorf("drop not recorded")
	}
	if err := Drop(world, player, 0); !errors.Is(err, ErrEmptySlot) {
		t.Errorf("err = %v, want ErrEmptySlot", err)
	}
}

func TestDropAgainstWallStaysAtFeet(t *testing.T) {
	world := newWorld(t)
	m := openMap(6, 6)
	m.SetTile(3, 2, generation.TileWall)
	ecs.InsertResource(world, m)
	player := spawnPlayer(world, 2.5, 2.5, 0)
	sword := give(t, world, player, "short_sword", 1)

	if err := Drop(world, player, 0); err != nil {
		t.Fatalf("drop: %v", err)
	}
	pos, _ := ecs.Get[components.TransformComponent](world, sword, components.Transform)
	if pos.X != 2.5 || pos.Y != 2.5 {
		t.Errorf("dropped into the wall at (%v, %v)", pos.X, pos.Y)
	}
}
