package screens

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"

	"ebiten-arpg/components"
	"ebiten-arpg/config"
	"ebiten-arpg/data"
	"ebiten-arpg/ecs"
	"ebiten-arpg/logging"
	"ebiten-arpg/systems"
)

// InventoryScreen shows the player's bag and equipment. Items are dragged
// between slots with the left button and used with the right.
type InventoryScreen struct {
	*BaseScreen
	world  *ecs.World
	layout InventoryLayout
	drag   DragState
	hover  Target
	log    *logrus.Entry
}

// NewInventoryScreen creates the inventory panel for the world's player
func NewInventoryScreen(style config.ButtonStyle, world *ecs.World) *InventoryScreen {
	s := &InventoryScreen{
		BaseScreen: NewBaseScreen(style),
		world:      world,
		layout:     NewInventoryLayout(),
		log:        logging.For("inventory_ui"),
	}
	s.input = s.worldInput
	return s
}

func (s *InventoryScreen) worldInput() MenuInput {
	in, _ := ecs.Resource[systems.InputState](s.world)
	return menuInputFrom(in)
}

func (s *InventoryScreen) player() ecs.EntityID {
	return s.world.FirstWithTag(systems.TagPlayer)
}

// Update implements the Screen interface
func (s *InventoryScreen) Update() error {
	if in, ok := ecs.Resource[systems.InputState](s.world); ok && in.ToggleInventory {
		s.drag.Cancel()
		return ErrCloseScreen
	}
	in := s.readInput()
	if in.Back {
		s.drag.Cancel()
		return ErrCloseScreen
	}

	player := s.player()
	if player == 0 {
		return ErrCloseScreen
	}
	s.hover = s.layout.HitTest(in.MouseX, in.MouseY)

	switch {
	case in.RightPressed && !s.drag.Active:
		s.report(Activate(s.world, player, s.hover))
	case in.MousePressed:
		if s.drag.Begin(s.world, player, s.hover, in.MouseX, in.MouseY) {
			s.click()
		}
	case in.MouseReleased:
		if s.drag.Active {
			s.report(s.drag.Release(s.world, player, s.hover))
		}
	default:
		s.drag.Move(in.MouseX, in.MouseY)
	}
	return nil
}

// report turns a failed action into a message for the player
func (s *InventoryScreen) report(err error) {
	if err == nil {
		return
	}
	s.log.WithError(err).Debug("inventory action refused")

	var msg string
	switch {
	case errors.Is(err, systems.ErrInventoryFull):
		msg = "Your pack is full."
	case errors.Is(err, systems.ErrWrongSlot):
		msg = "That does not go there."
	case errors.Is(err, systems.ErrNotEquippable):
		msg = "You cannot wear that."
	case errors.Is(err, systems.ErrEmptySlot), errors.Is(err, systems.ErrSlotEmpty):
		return
	default:
		msg = err.Error()
	}
	systems.GetMessageLog().AddAlert(msg)
}

// Draw implements the Screen interface
func (s *InventoryScreen) Draw(screen *ebiten.Image) {
	dim(screen)
	panel := s.layout.Panel()
	drawPanel(screen, panel, color.RGBA{24, 22, 30, 240}, s.style.Border)
	drawCentered(screen, "INVENTORY", panel.Min.X+panel.Dx()/2, panel.Min.Y+panelPadding, s.style.Text)

	player := s.player()
	for i := 0; i < config.InventorySize; i++ {
		t := Target{Kind: TargetInventory, Slot: i}
		s.drawSlot(screen, s.layout.SlotRect(i), t, ItemAt(s.world, player, t))
	}
	for i, slot := range components.AllSlots {
		t := Target{Kind: TargetEquipment, Equip: slot}
		r := s.layout.EquipRect(i)
		s.drawSlot(screen, r, t, ItemAt(s.world, player, t))
		systems.DrawText(screen, strings.ToUpper(string(slot)), r.Max.X+8, r.Min.Y+(r.Dy()-systems.LineHeight)/2, s.style.TextDim)
	}

	// Tooltip for the hovered item
	if item := ItemAt(s.world, player, s.hover); item != 0 && !s.drag.Active {
		systems.DrawText(screen, s.describe(item), panel.Min.X+panelPadding, panel.Max.Y-panelPadding-footerHeight/2, s.style.Text)
	}

	// The dragged item follows the cursor
	if s.drag.Active {
		r := image.Rect(s.drag.X-config.SlotSize/3, s.drag.Y-config.SlotSize/3, s.drag.X+config.SlotSize/3, s.drag.Y+config.SlotSize/3)
		s.drawIcon(screen, r, s.drag.Item)
	}
}

func (s *InventoryScreen) drawSlot(screen *ebiten.Image, r image.Rectangle, t Target, item ecs.EntityID) {
	fill := s.style.Normal
	if s.hover == t {
		fill = s.style.Hovered
	}
	drawPanel(screen, r, fill, color.RGBA{70, 70, 90, 255})
	if item == 0 || (s.drag.Active && s.drag.From == t) {
		return
	}
	s.drawIcon(screen, r.Inset(8), item)

	if it, ok := ecs.Get[components.ItemComponent](s.world, item, components.Item); ok && it.Count > 1 {
		label := fmt.Sprint(it.Count)
		systems.DrawText(screen, label, r.Max.X-systems.TextWidth(label)-3, r.Max.Y-systems.LineHeight, s.style.Text)
	}
}

// drawIcon fills r with the item's sprite color
func (s *InventoryScreen) drawIcon(screen *ebiten.Image, r image.Rectangle, item ecs.EntityID) {
	clr := color.RGBA{180, 180, 180, 255}
	if v, ok := ecs.Get[components.VisualComponent](s.world, item, components.Visual); ok {
		clr = v.Color
	}
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), clr, false)
}

// describe is the tooltip line for item
func (s *InventoryScreen) describe(item ecs.EntityID) string {
	name := components.EntityName(s.world, item)
	it, ok := ecs.Get[components.ItemComponent](s.world, item, components.Item)
	if !ok {
		return name
	}
	c, ok := ecs.Resource[data.Catalog](s.world)
	if !ok {
		return name
	}
	def, ok := c.GetItem(it.DefID)
	if !ok || def.Description == "" {
		return name
	}
	return name + ": " + def.Description
}
