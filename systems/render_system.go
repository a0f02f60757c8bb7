package systems

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"ebiten-arpg/components"
	"ebiten-arpg/config"
	"ebiten-arpg/data"
	"ebiten-arpg/ecs"
	"ebiten-arpg/generation"
)

// Renderer tuning
const (
	MaxViewDistance = 24.0
	nearPlane       = 0.05
)

var stairsColor = color.RGBA{90, 160, 200, 255}

// palette holds the level colors, taken from the depth's theme
type palette struct {
	wall, floor, ceiling color.RGBA
}

var defaultPalette = palette{
	wall:    color.RGBA{150, 140, 120, 255},
	floor:   color.RGBA{52, 46, 40, 255},
	ceiling: color.RGBA{28, 26, 34, 255},
}

// levelPalette overrides the default colors with those the theme sets
func levelPalette(theme *data.ThemeDef) palette {
	p := defaultPalette
	if theme == nil {
		return p
	}
	wall, floor, ceiling, ok := theme.Colors()
	if ok[0] {
		p.wall = wall
	}
	if ok[1] {
		p.floor = floor
	}
	if ok[2] {
		p.ceiling = ceiling
	}
	return p
}

// levelTheme returns the theme for the current level, nil without one
func levelTheme(world *ecs.World, m *generation.RoomMap) *data.ThemeDef {
	c := catalog(world)
	if c == nil || m == nil {
		return nil
	}
	return c.ThemeForDepth(m.Depth)
}

// RenderSystem draws the first-person view and the HUD
type RenderSystem struct {
	view  *ebiten.Image
	zbuf  []float64
	queue []sprite
}

type sprite struct {
	id      ecs.EntityID
	screenX float64
	depth   float64
	visual  *components.VisualComponent
	dead    bool
}

// NewRenderSystem creates a new rendering system
func NewRenderSystem() *RenderSystem {
	return &RenderSystem{
		zbuf: make([]float64, config.ViewWidth),
	}
}

// Draw renders the world as seen by the player, then the HUD
func (s *RenderSystem) Draw(world *ecs.World, screen *ebiten.Image) {
	screen.Fill(color.Black)

	player := playerID(world)
	cam, ok := ecs.Get[components.TransformComponent](world, player, components.Transform)
	m := roomMap(world)
	if !ok || m == nil {
		return
	}

	if s.view == nil {
		s.view = ebiten.NewImage(config.ViewWidth, config.ViewHeight)
	}
	s.drawWalls(m, cam, levelPalette(levelTheme(world, m)))
	s.drawSprites(world, player, cam)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(config.WindowWidth)/config.ViewWidth, float64(config.WindowHeight)/config.ViewHeight)
	screen.DrawImage(s.view, op)

	s.drawHUD(world, screen, player)
}

// drawWalls casts one ray per column and fills the z-buffer
func (s *RenderSystem) drawWalls(m *generation.RoomMap, cam *components.TransformComponent, pal palette) {
	w, h := float32(config.ViewWidth), float32(config.ViewHeight)
	s.view.Fill(pal.ceiling)
	vector.DrawFilledRect(s.view, 0, h/2, w, h/2, pal.floor, false)

	plane := math.Tan(config.FieldOfView / 2)
	for x := 0; x < config.ViewWidth; x++ {
		offset := (2*(float64(x)+0.5)/config.ViewWidth - 1) * plane
		angle := cam.Yaw + math.Atan(offset)
		hit := m.CastRay(cam.X, cam.Y, angle, MaxViewDistance)

		perp := hit.Distance * math.Cos(angle-cam.Yaw)
		s.zbuf[x] = perp
		if !hit.Hit || perp < nearPlane {
			if !hit.Hit {
				s.zbuf[x] = MaxViewDistance
			}
			continue
		}

		base := pal.wall
		if m.HasStairs && hit.Tile == m.Stairs {
			base = stairsColor
		}
		lineH := float32(config.ViewHeight / perp)
		top := (h - lineH) / 2
		vector.DrawFilledRect(s.view, float32(x), top, 1, lineH, wallShade(base, perp, hit.Side), false)
	}
}

// wallShade darkens a wall color with distance; horizontal faces are darker
func wallShade(base color.RGBA, dist float64, side int) color.RGBA {
	f := 1 / (1 + dist*dist*0.04)
	if side == 1 {
		f *= 0.75
	}
	return color.RGBA{
		R: uint8(float64(base.R) * f),
		G: uint8(float64(base.G) * f),
		B: uint8(float64(base.B) * f),
		A: 255,
	}
}

// projectSprite maps a world position into a view column. ok is false when
// the point is behind the camera.
func projectSprite(camX, camY, yaw, x, y, fov float64, width int) (screenX, depth float64, ok bool) {
	dx, dy := x-camX, y-camY
	fx, fy := math.Cos(yaw), math.Sin(yaw)
	depth = dx*fx + dy*fy
	if depth <= nearPlane {
		return 0, 0, false
	}
	side := -dx*fy + dy*fx
	plane := math.Tan(fov / 2)
	screenX = (0.5 + side/(depth*plane)/2) * float64(width)
	return screenX, depth, true
}

// drawSprites draws billboards far to near, clipped by the z-buffer
func (s *RenderSystem) drawSprites(world *ecs.World, player ecs.EntityID, cam *components.TransformComponent) {
	s.queue = s.queue[:0]
	for _, id := range world.Query(components.Visual, components.Transform) {
		if id == player {
			continue
		}
		pos, _ := ecs.Get[components.TransformComponent](world, id, components.Transform)
		vis, _ := ecs.Get[components.VisualComponent](world, id, components.Visual)
		sx, depth, ok := projectSprite(cam.X, cam.Y, cam.Yaw, pos.X, pos.Y, config.FieldOfView, config.ViewWidth)
		if !ok || depth > MaxViewDistance {
			continue
		}
		s.queue = append(s.queue, sprite{id: id, screenX: sx, depth: depth, visual: vis, dead: world.HasComponent(id, components.Disabled)})
	}
	sort.Slice(s.queue, func(i, j int) bool { return s.queue[i].depth > s.queue[j].depth })

	for _, sp := range s.queue {
		scale := sp.visual.Scale
		if scale <= 0 {
			scale = 0.5
		}
		size := config.ViewHeight / sp.depth
		spriteH := size * scale
		spriteW := spriteH * 0.6
		// Height is the offset of the sprite centre above the floor, in wall heights
		centerY := config.ViewHeight/2 + size*(0.5-sp.visual.Height)
		if sp.dead {
			spriteH *= 0.3
			centerY = config.ViewHeight/2 + size*0.5 - spriteH/2
		}

		clr := sp.visual.Color
		if clr.A == 0 {
			clr = color.RGBA{255, 0, 255, 255}
		}
		shade := wallShade(clr, sp.depth, 0)
		if sp.dead {
			shade = wallShade(shade, 2, 1)
		}

		x0 := int(math.Max(0, sp.screenX-spriteW/2))
		x1 := int(math.Min(config.ViewWidth, sp.screenX+spriteW/2))
		for x := x0; x < x1; x++ {
			if sp.depth >= s.zbuf[x] {
				continue
			}
			vector.DrawFilledRect(s.view, float32(x), float32(centerY-spriteH/2), 1, float32(spriteH), shade, false)
		}
	}
}

// drawHUD draws pool bars, crosshair, level line and recent messages
func (s *RenderSystem) drawHUD(world *ecs.World, screen *ebiten.Image, player ecs.EntityID) {
	x, y := float32(config.HUDMargin), float32(config.HUDMargin)
	bars := []struct {
		id    ecs.ComponentID
		label string
		clr   color.RGBA
	}{
		{components.Health, "HP", color.RGBA{200, 40, 40, 255}},
		{components.Mana, "MP", color.RGBA{60, 90, 220, 255}},
		{components.Stamina, "SP", color.RGBA{60, 180, 80, 255}},
	}
	for _, bar := range bars {
		comp, ok := world.GetComponent(player, bar.id)
		if !ok {
			continue
		}
		pool, _ := components.PoolOf(comp)
		if pool == nil {
			continue
		}
		vector.DrawFilledRect(screen, x, y, config.HUDBarWidth, config.HUDBarHeight, color.RGBA{30, 30, 30, 200}, false)
		vector.DrawFilledRect(screen, x, y, float32(config.HUDBarWidth*pool.Fraction()), config.HUDBarHeight, bar.clr, false)
		DrawText(screen, fmt.Sprintf("%s %.0f/%.0f", bar.label, pool.Current, pool.Max), int(x)+config.HUDBarWidth+6, int(y)-2, color.White)
		y += config.HUDBarHeight + config.HUDBarGap
	}

	if exp, ok := ecs.Get[components.ExperienceComponent](world, player, components.Experience); ok {
		table := levelTable(world)
		line := fmt.Sprintf("Level %d  XP %d", exp.Level, exp.XP)
		if next, ok := table.NextThreshold(exp.Level); ok {
			line += fmt.Sprintf("/%d", next)
		}
		if attrs, ok := ecs.Get[components.AttributesComponent](world, player, components.Attributes); ok && attrs.Unspent > 0 {
			line += fmt.Sprintf("  (+%d points)", attrs.Unspent)
		}
		DrawText(screen, line, int(x), int(y), color.RGBA{255, 230, 150, 255})
		y += LineHeight
	}

	if m := roomMap(world); m != nil {
		line := fmt.Sprintf("Depth %d", m.Depth)
		if theme := levelTheme(world, m); theme != nil {
			line += "  " + theme.Name
		}
		DrawText(screen, line, int(x), int(y), color.RGBA{180, 180, 200, 255})
	}

	// Crosshair
	cx, cy := float32(config.WindowWidth)/2, float32(config.WindowHeight)/2
	vector.StrokeLine(screen, cx-6, cy, cx+6, cy, 1, color.White, false)
	vector.StrokeLine(screen, cx, cy-6, cx, cy+6, 1, color.White, false)

	// Messages, oldest at the top
	msgs := GetMessageLog().RecentMessages(config.MessageLines)
	base := config.WindowHeight - config.HUDMargin - len(msgs)*LineHeight
	for i := len(msgs) - 1; i >= 0; i-- {
		row := len(msgs) - 1 - i
		DrawText(screen, msgs[i].Display(), config.HUDMargin, base+row*LineHeight, msgs[i].GetColor())
	}
}
