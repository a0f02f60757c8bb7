package screens

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"ebiten-arpg/components"
	"ebiten-arpg/config"
	"ebiten-arpg/data"
	"ebiten-arpg/ecs"
	"ebiten-arpg/systems"
)

var characterAttributes = []struct {
	name  string
	label string
}{
	{components.AttrStrength, "Strength"},
	{components.AttrAgility, "Agility"},
	{components.AttrIntellect, "Intellect"},
	{components.AttrVitality, "Vitality"},
}

// CharacterScreen shows level, attributes and derived stats, and lets the
// player spend points earned on level up
type CharacterScreen struct {
	*BaseScreen
	world *ecs.World
	panel image.Rectangle
	plus  []*Button
}

// NewCharacterScreen creates the character sheet for the world's player
func NewCharacterScreen(style config.ButtonStyle, world *ecs.World) *CharacterScreen {
	w, h := 420, 360
	x := (config.WindowWidth - w) / 2
	y := (config.WindowHeight - h) / 2
	s := &CharacterScreen{
		BaseScreen: NewBaseScreen(style),
		world:      world,
		panel:      image.Rect(x, y, x+w, y+h),
	}
	s.input = s.worldInput

	small := style
	small.Width, small.Height = 24, 20
	for i := range characterAttributes {
		s.plus = append(s.plus, NewButton("+", x+w-60, s.attrRow(i), small))
	}
	return s
}

func (s *CharacterScreen) worldInput() MenuInput {
	in, _ := ecs.Resource[systems.InputState](s.world)
	return menuInputFrom(in)
}

func (s *CharacterScreen) attrRow(i int) int {
	return s.panel.Min.Y + 90 + i*28
}

// Update implements the Screen interface
func (s *CharacterScreen) Update() error {
	if in, ok := ecs.Resource[systems.InputState](s.world); ok && in.ToggleCharacter {
		return ErrCloseScreen
	}
	in := s.readInput()
	if in.Back {
		return ErrCloseScreen
	}

	player := s.world.FirstWithTag(systems.TagPlayer)
	attrs, ok := ecs.Get[components.AttributesComponent](s.world, player, components.Attributes)
	if !ok {
		return ErrCloseScreen
	}
	for i, b := range s.plus {
		b.Disabled = attrs.Unspent <= 0
		if b.Update(in) {
			if err := systems.SpendAttributePoint(s.world, player, characterAttributes[i].name); err == nil {
				s.click()
			}
		}
	}
	return nil
}

// Draw implements the Screen interface
func (s *CharacterScreen) Draw(screen *ebiten.Image) {
	dim(screen)
	drawPanel(screen, s.panel, color.RGBA{24, 22, 30, 240}, s.style.Border)
	x, cx := s.panel.Min.X+24, s.panel.Min.X+s.panel.Dx()/2
	drawCentered(screen, "CHARACTER", cx, s.panel.Min.Y+12, s.style.Text)

	player := s.world.FirstWithTag(systems.TagPlayer)
	gold := color.RGBA{255, 230, 150, 255}

	if exp, ok := ecs.Get[components.ExperienceComponent](s.world, player, components.Experience); ok {
		line := fmt.Sprintf("Level %d   XP %d", exp.Level, exp.XP)
		if c, ok := ecs.Resource[data.Catalog](s.world); ok {
			if next, ok := c.Levels.NextThreshold(exp.Level); ok {
				line += fmt.Sprintf(" / %d", next)
			} else {
				line += "  (max)"
			}
		}
		systems.DrawText(screen, line, x, s.panel.Min.Y+40, gold)
	}

	base, ok := ecs.Get[components.AttributesComponent](s.world, player, components.Attributes)
	if !ok {
		return
	}
	systems.DrawText(screen, fmt.Sprintf("Unspent points: %d", base.Unspent), x, s.panel.Min.Y+60, s.style.Text)

	eff := systems.EffectiveAttributes(s.world, player)
	values := []struct{ base, eff int }{
		{base.Strength, eff.Strength},
		{base.Agility, eff.Agility},
		{base.Intellect, eff.Intellect},
		{base.Vitality, eff.Vitality},
	}
	for i, a := range characterAttributes {
		line := fmt.Sprintf("%-10s %3d", a.label, values[i].eff)
		if bonus := values[i].eff - values[i].base; bonus != 0 {
			line += fmt.Sprintf("  (%+d)", bonus)
		}
		systems.DrawText(screen, line, x, s.attrRow(i)+2, s.style.Text)
		s.plus[i].Draw(screen, s.style, false)
	}

	y := s.attrRow(len(characterAttributes)) + 12
	for _, line := range s.derived(player) {
		systems.DrawText(screen, line, x, y, s.style.TextDim)
		y += systems.LineHeight + 2
	}
}

// derived lists pool maxima, armor and damage
func (s *CharacterScreen) derived(player ecs.EntityID) []string {
	var lines []string
	pools := []struct {
		id    ecs.ComponentID
		label string
	}{
		{components.Health, "Health"},
		{components.Mana, "Mana"},
		{components.Stamina, "Stamina"},
	}
	for _, p := range pools {
		comp, ok := s.world.GetComponent(player, p.id)
		if !ok {
			continue
		}
		if pool, ok := components.PoolOf(comp); ok {
			lines = append(lines, fmt.Sprintf("%-10s %.0f / %.0f", p.label, pool.Current, pool.Max))
		}
	}
	if armor, ok := ecs.Get[components.ArmorComponent](s.world, player, components.Armor); ok {
		lines = append(lines, fmt.Sprintf("%-10s %.0f", "Armor", armor.Value))
	}
	if dmg, ok := ecs.Get[components.DamageComponent](s.world, player, components.Damage); ok {
		total := dmg.Amount + systems.EquipmentTotals(s.world, player).Damage +
			float64(systems.EffectiveAttributes(s.world, player).Strength)/2
		lines = append(lines, fmt.Sprintf("%-10s %.0f", "Damage", total))
	}
	return lines
}
