package screens

import (
	"image"

	"ebiten-arpg/components"
	"ebiten-arpg/config"
	"ebiten-arpg/ecs"
	"ebiten-arpg/systems"
)

// Inventory panel metrics
const (
	panelPadding    = 16
	titleHeight     = 24
	footerHeight    = 20
	equipGap        = 32
	equipLabelWidth = 72
)

// TargetKind says what part of the inventory panel a point is over
type TargetKind int

const (
	TargetNone      TargetKind = iota // Panel background
	TargetInventory                   // A bag slot
	TargetEquipment                   // An equipment slot
	TargetOutside                     // Off the panel, drops the item
)

// Target is a hit-tested location on the inventory panel
type Target struct {
	Kind  TargetKind
	Slot  int                      // Bag slot for TargetInventory
	Equip components.EquipmentSlot // For TargetEquipment
}

// InventoryLayout places the bag grid and the equipment column
type InventoryLayout struct {
	Origin image.Point // Top-left corner of the panel
}

// NewInventoryLayout centers the panel in the window
func NewInventoryLayout() InventoryLayout {
	var l InventoryLayout
	p := l.Panel()
	l.Origin = image.Pt((config.WindowWidth-p.Dx())/2, (config.WindowHeight-p.Dy())/2)
	return l
}

func gridSize(n int) int {
	return n*config.SlotSize + (n-1)*config.SlotGap
}

func (l InventoryLayout) gridOrigin() image.Point {
	return l.Origin.Add(image.Pt(panelPadding, panelPadding+titleHeight))
}

// Panel returns the bounds of the whole panel
func (l InventoryLayout) Panel() image.Rectangle {
	w := 2*panelPadding + gridSize(config.InventoryColumns) + equipGap + config.SlotSize + equipLabelWidth
	h := 2*panelPadding + titleHeight + max(gridSize(config.InventoryRows), gridSize(len(components.AllSlots))) + footerHeight
	return image.Rectangle{Min: l.Origin, Max: l.Origin.Add(image.Pt(w, h))}
}

// SlotRect returns the bounds of bag slot i
func (l InventoryLayout) SlotRect(i int) image.Rectangle {
	col, row := i%config.InventoryColumns, i/config.InventoryColumns
	p := l.gridOrigin().Add(image.Pt(col*(config.SlotSize+config.SlotGap), row*(config.SlotSize+config.SlotGap)))
	return image.Rectangle{Min: p, Max: p.Add(image.Pt(config.SlotSize, config.SlotSize))}
}

// EquipRect returns the bounds of the i-th equipment slot in AllSlots order
func (l InventoryLayout) EquipRect(i int) image.Rectangle {
	p := l.gridOrigin().Add(image.Pt(gridSize(config.InventoryColumns)+equipGap, i*(config.SlotSize+config.SlotGap)))
	return image.Rectangle{Min: p, Max: p.Add(image.Pt(config.SlotSize, config.SlotSize))}
}

// HitTest maps a point to a target
func (l InventoryLayout) HitTest(x, y int) Target {
	pt := image.Pt(x, y)
	if !pt.In(l.Panel()) {
		return Target{Kind: TargetOutside}
	}
	for i := 0; i < config.InventorySize; i++ {
		if pt.In(l.SlotRect(i)) {
			return Target{Kind: TargetInventory, Slot: i}
		}
	}
	for i, slot := range components.AllSlots {
		if pt.In(l.EquipRect(i)) {
			return Target{Kind: TargetEquipment, Equip: slot}
		}
	}
	return Target{Kind: TargetNone}
}

// ItemAt returns the item shown at t, or 0
func ItemAt(world *ecs.World, owner ecs.EntityID, t Target) ecs.EntityID {
	switch t.Kind {
	case TargetInventory:
		if inv, ok := ecs.Get[components.InventoryComponent](world, owner, components.Inventory); ok {
			return inv.At(t.Slot)
		}
	case TargetEquipment:
		if equip, ok := ecs.Get[components.EquipmentComponent](world, owner, components.Equipment); ok {
			return equip.Slots[t.Equip]
		}
	}
	return 0
}

// DragState follows an item being dragged around the inventory panel
type DragState struct {
	Active bool
	From   Target
	Item   ecs.EntityID
	X, Y   int // Cursor position
}

// Begin picks up whatever is at from. It reports false for empty slots.
func (d *DragState) Begin(world *ecs.World, owner ecs.EntityID, from Target, x, y int) bool {
	item := ItemAt(world, owner, from)
	if item == 0 {
		return false
	}
	*d = DragState{Active: true, From: from, Item: item, X: x, Y: y}
	return true
}

// Move tracks the cursor while dragging
func (d *DragState) Move(x, y int) {
	d.X, d.Y = x, y
}

// Cancel forgets the drag
func (d *DragState) Cancel() {
	*d = DragState{}
}

// Release finishes the drag over to. Inventory to inventory moves, anything
// onto an equipment slot equips, and anything released off the panel is
// dropped on the floor.
func (d *DragState) Release(world *ecs.World, owner ecs.EntityID, to Target) error {
	if !d.Active {
		return nil
	}
	from := d.From
	item := d.Item
	d.Cancel()

	switch from.Kind {
	case TargetInventory:
		switch to.Kind {
		case TargetInventory:
			if to.Slot == from.Slot {
				return nil
			}
			return systems.MoveItem(world, owner, from.Slot, to.Slot)
		case TargetEquipment:
			return systems.EquipToSlot(world, owner, item, to.Equip)
		case TargetOutside:
			return systems.Drop(world, owner, from.Slot)
		}

	case TargetEquipment:
		switch to.Kind {
		case TargetInventory:
			if err := systems.Unequip(world, owner, from.Equip); err != nil {
				return err
			}
			inv, _ := ecs.Get[components.InventoryComponent](world, owner, components.Inventory)
			if at := inv.IndexOf(item); at != to.Slot {
				return systems.MoveItem(world, owner, at, to.Slot)
			}
		case TargetOutside:
			if err := systems.Unequip(world, owner, from.Equip); err != nil {
				return err
			}
			inv, _ := ecs.Get[components.InventoryComponent](world, owner, components.Inventory)
			return systems.Drop(world, owner, inv.IndexOf(item))
		}
	}
	return nil
}

// Activate is the right click action: bag items are used, worn items are
// taken off
func Activate(world *ecs.World, owner ecs.EntityID, t Target) error {
	switch t.Kind {
	case TargetInventory:
		return systems.UseItem(world, owner, t.Slot)
	case TargetEquipment:
		return systems.Unequip(world, owner, t.Equip)
	}
	return nil
}
