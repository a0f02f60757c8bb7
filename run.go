package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"ebiten-arpg/components"
	"ebiten-arpg/ecs"
	"ebiten-arpg/generation"
	"ebiten-arpg/physics"
	"ebiten-arpg/save"
	"ebiten-arpg/screens"
	"ebiten-arpg/systems"
)

// Each level's seed follows from the previous one so a saved seed and depth
// rebuild the same map
const depthSeedStep = 7919

// storeTimeout bounds save store calls made from the game loop
const storeTimeout = 2 * time.Second

// startingGear is what a new character carries
var startingGear = []struct {
	def   string
	count int
	wear  bool
}{
	{"short_sword", 1, true},
	{"health_potion", 2, false},
}

// newRun clears the world and starts a fresh character on depth 1
func (g *Game) newRun() {
	g.endRun()
	systems.GetMessageLog().Clear()

	m, err := g.buildLevel(g.rng.Int63(), 1)
	if err != nil {
		g.fail("Could not build the level", err)
		return
	}
	x, y := generation.TileCenter(m.PlayerStart)
	player := g.spawner.CreatePlayer(x, y, 0)
	for _, gear := range startingGear {
		id, err := g.spawner.GiveItem(player, gear.def, gear.count)
		if err != nil {
			g.log.WithError(err).WithField("item", gear.def).Warn("starting gear skipped")
			continue
		}
		if !gear.wear {
			continue
		}
		if err := systems.Equip(g.app.World, player, id); err != nil {
			g.log.WithError(err).WithField("item", gear.def).Warn("starting gear not equipped")
		}
	}
	g.populate(m)

	systems.GetMessageLog().AddEnvironment("You descend into the dark.")
	g.play()
}

// play shows the game screen and resumes the simulation
func (g *Game) play() {
	g.stack.Replace(g.screen)
	g.setState(systems.StatePlaying)
}

// endRun removes every entity and the level
func (g *Game) endRun() {
	world := g.app.World
	for _, e := range world.GetAllEntities() {
		world.RemoveEntity(e.ID)
	}
	ecs.RemoveResource[generation.RoomMap](world)
	if pw, ok := ecs.Resource[physics.World](world); ok {
		pw.Clear()
	}
	g.pendingDepth = 0
}

// buildLevel generates a map, makes it the level resource and rebuilds the
// physics walls. Entities are left alone.
func (g *Game) buildLevel(seed int64, depth int) (*generation.RoomMap, error) {
	m, err := generation.NewGenerator(seed).Generate(g.settings.MapWidth, g.settings.MapHeight, depth)
	if err != nil {
		return nil, err
	}
	world := g.app.World
	ecs.InsertResource(world, m)
	if pw, ok := ecs.Resource[physics.World](world); ok {
		pw.Clear()
		pw.BuildWalls(m)
	}
	g.log.WithFields(logrus.Fields{
		"depth": depth,
		"seed":  seed,
		"rooms": len(m.Rooms),
		"floor": m.FloorCount(),
	}).Info("level built")
	return m, nil
}

// descend replaces the level with the next one. The player and everything
// it carries survive; whatever lay in the old level is removed.
func (g *Game) descend(depth int) {
	world := g.app.World
	player := world.FirstWithTag(systems.TagPlayer)
	if player == 0 {
		return
	}
	seed := int64(0)
	if m, ok := ecs.Resource[generation.RoomMap](world); ok {
		seed = m.Seed
	}

	for _, id := range world.Query(components.Transform) {
		if id != player {
			world.RemoveEntity(id)
		}
	}

	m, err := g.buildLevel(seed+depthSeedStep, depth)
	if err != nil {
		g.fail("Could not build the next level", err)
		return
	}
	if pos, ok := ecs.Get[components.TransformComponent](world, player, components.Transform); ok {
		pos.X, pos.Y = generation.TileCenter(m.PlayerStart)
	}
	if vel, ok := ecs.Get[components.VelocityComponent](world, player, components.Velocity); ok {
		vel.X, vel.Y = 0, 0
	}
	g.populate(m)
	systems.GetMessageLog().AddEnvironment(fmt.Sprintf("You reach depth %d.", depth))
}

// populate fills a fresh level with enemies and loot, as dense as the
// depth's theme asks for
func (g *Game) populate(m *generation.RoomMap) {
	theme := g.catalog.ThemeForDepth(m.Depth)
	if theme != nil {
		g.log.WithFields(logrus.Fields{"depth": m.Depth, "theme": theme.ID}).Debug("level theme")
	}
	g.spawner.PopulateLevel(m, generation.ThemedPopulationOptions(theme))
}

// saveGame writes the quicksave slot
func (g *Game) saveGame() {
	if g.store == nil {
		g.notify("Save failed", "Saving is not available.")
		return
	}
	snap, err := save.Capture(g.app.World)
	if err != nil {
		g.fail("Save failed", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if _, err := g.store.Put(ctx, save.DefaultSlot, snap); err != nil {
		g.fail("Save failed", err)
		return
	}
	g.notify("Game saved", fmt.Sprintf("Depth %d, level %d.", snap.Depth, snap.Level))
}

// loadGame rebuilds the quicksave's level and character
func (g *Game) loadGame() {
	if g.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	snap, err := g.store.Get(ctx, save.DefaultSlot)
	if err != nil {
		g.fail("Load failed", err)
		return
	}

	g.endRun()
	systems.GetMessageLog().Clear()
	m, err := g.buildLevel(snap.Seed, max(snap.Depth, 1))
	if err != nil {
		g.fail("Load failed", err)
		return
	}
	if _, err := save.Restore(g.app.World, g.spawner, snap); err != nil {
		g.endRun()
		g.fail("Load failed", err)
		return
	}
	g.populate(m)

	systems.GetMessageLog().AddSystem("Game loaded.")
	g.play()
}

// deleteSave drops the quicksave once its character has died
func (g *Game) deleteSave() {
	if g.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := g.store.Delete(ctx, save.DefaultSlot); err != nil && !errors.Is(err, save.ErrNotFound) {
		g.log.WithError(err).Warn("could not delete save")
	}
}

func (g *Game) hasSave() bool {
	if g.store == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	_, err := g.store.Get(ctx, save.DefaultSlot)
	return err == nil
}

// summary describes the run for the game over screen
func (g *Game) summary() string {
	world := g.app.World
	depth, level := 0, 0
	if m, ok := ecs.Resource[generation.RoomMap](world); ok {
		depth = m.Depth
	}
	player := world.FirstWithTag(systems.TagPlayer)
	if exp, ok := ecs.Get[components.ExperienceComponent](world, player, components.Experience); ok {
		level = exp.Level
	}
	return fmt.Sprintf("Reached depth %d at level %d", depth, level)
}

// notify shows a message box over the current screen
func (g *Game) notify(title, text string) {
	s := screens.NewModalScreen(g.style, title, text)
	g.withClick(s)
	g.stack.Push(s)
}

// fail logs err and tells the player
func (g *Game) fail(title string, err error) {
	g.log.WithError(err).Error(title)
	systems.GetDebugLog().AddAlert(fmt.Sprintf("%s: %v", title, err))
	g.notify(title, err.Error())
}
