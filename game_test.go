package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"ebiten-arpg/assets"
	"ebiten-arpg/components"
	"ebiten-arpg/config"
	"ebiten-arpg/data"
	"ebiten-arpg/ecs"
	"ebiten-arpg/generation"
	"ebiten-arpg/save"
	"ebiten-arpg/screens"
	"ebiten-arpg/systems"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	c, err := data.LoadCatalog(assets.FS(), assets.DefsDir)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	store, err := save.Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	settings := config.DefaultSettings()
	settings.Seed = 5
	return NewGame(settings, c, store, nil)
}

func state(g *Game) ecs.StateID {
	sm, _ := ecs.Resource[ecs.StateMachine](g.app.World)
	return sm.Current()
}

func player(t *testing.T, g *Game) ecs.EntityID {
	t.Helper()
	id := g.app.World.FirstWithTag(systems.TagPlayer)
	if id == 0 {
		t.Fatalf("no player")
	}
	return id
}

func TestGameStartsOnMainMenu(t *testing.T) {
	g := newTestGame(t)
	if _, ok := g.stack.Peek().(*screens.StartScreen); !ok {
		t.Fatalf("top screen is %T", g.stack.Peek())
	}
	g.app.Update(frameTime)
	if state(g) != systems.StateMainMenu {
		t.Errorf("state = %s", state(g))
	}
}

func TestNewRun(t *testing.T) {
	g := newTestGame(t)
	if err := g.handle(screens.ErrNewGame); err != nil {
		t.Fatalf("handle: %v", err)
	}
	g.app.Update(frameTime)

	if state(g) != systems.StatePlaying {
		t.Errorf("state = %s, want playing", state(g))
	}
	if g.stack.Peek() != screens.Screen(g.screen) || g.stack.Len() != 1 {
		t.Errorf("stack holds %d screens, top %T", g.stack.Len(), g.stack.Peek())
	}

	world := g.app.World
	m, ok := ecs.Resource[generation.RoomMap](world)
	if !ok || m.Depth != 1 {
		t.Fatalf("level = %+v", m)
	}
	id := player(t, g)
	equip, _ := ecs.Get[components.EquipmentComponent](world, id, components.Equipment)
	if equip.Slots[components.SlotMainHand] == 0 {
		t.Errorf("no starting weapon")
	}
	inv, _ := ecs.Get[components.InventoryComponent](world, id, components.Inventory)
	potion, _ := ecs.Get[components.ItemComponent](world, inv.At(0), components.Item)
	if potion == nil || potion.DefID != "health_potion" || potion.Count != 2 {
		t.Errorf("first slot = %+v", potion)
	}
	if len(world.Query(components.Enemy)) == 0 {
		t.Errorf("level has no enemies")
	}
}

func TestStartingGearEquipFailureIsLogged(t *testing.T) {
	saved := startingGear
	t.Cleanup(func() { startingGear = saved })
	startingGear = []struct {
		def   string
		count int
		wear  bool
	}{
		{"health_potion", 1, true},
	}

	g := newTestGame(t)
	logger, hook := logtest.NewNullLogger()
	g.log = logger.WithField("component", "game")
	g.handle(screens.ErrNewGame)

	var entry *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "starting gear not equipped" {
			entry = e
		}
	}
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("no equip warning in %d entries", len(hook.AllEntries()))
	}
	err, _ := entry.Data[logrus.ErrorKey].(error)
	if entry.Data["item"] != "health_potion" || !errors.Is(err, systems.ErrNotEquippable) {
		t.Errorf("entry data = %v", entry.Data)
	}

	inv, _ := ecs.Get[components.InventoryComponent](g.app.World, player(t, g), components.Inventory)
	if inv.At(0) == 0 {
		t.Errorf("potion should stay in the inventory")
	}
}

func TestDescendReplacesLevel(t *testing.T) {
	g := newTestGame(t)
	g.handle(screens.ErrNewGame)
	g.app.Update(frameTime)

	world := g.app.World
	old, _ := ecs.Resource[generation.RoomMap](world)
	oldSeed := old.Seed
	oldEnemies := world.Query(components.Enemy)
	id := player(t, g)

	world.QueueEvent(systems.DescendEvent{Depth: 2})
	world.FlushEvents()
	if g.pendingDepth != 2 {
		t.Fatalf("pending depth = %d", g.pendingDepth)
	}
	g.descend(g.pendingDepth)

	m, _ := ecs.Resource[generation.RoomMap](world)
	if m.Depth != 2 || m.Seed != oldSeed+depthSeedStep {
		t.Errorf("new level depth %d seed %d", m.Depth, m.Seed)
	}
	if player(t, g) != id {
		t.Errorf("player was replaced")
	}
	pos, _ := ecs.Get[components.TransformComponent](world, id, components.Transform)
	if generation.TileAt(pos.X, pos.Y) != m.PlayerStart {
		t.Errorf("player at %v, want %v", generation.TileAt(pos.X, pos.Y), m.PlayerStart)
	}
	for _, e := range oldEnemies {
		if world.Exists(e) {
			t.Errorf("enemy %d survived the descent", e)
		}
	}
	inv, _ := ecs.Get[components.InventoryComponent](world, id, components.Inventory)
	if inv.Count() == 0 {
		t.Errorf("inventory lost on descent")
	}
}

func TestOverlaysSwitchState(t *testing.T) {
	g := newTestGame(t)
	g.handle(screens.ErrNewGame)
	g.app.Update(frameTime)

	cases := []struct {
		open  error
		state ecs.StateID
	}{
		{screens.ErrPause, systems.StatePaused},
		{screens.ErrInventory, systems.StateInventory},
		{screens.ErrCharacter, systems.StateCharacter},
		{screens.ErrDebug, systems.StatePaused},
	}
	for _, tc := range cases {
		g.handle(tc.open)
		g.app.Update(frameTime)
		if state(g) != tc.state || g.stack.Len() != 2 {
			t.Errorf("%v: state %s with %d screens", tc.open, state(g), g.stack.Len())
		}
		g.handle(screens.ErrCloseScreen)
		g.app.Update(frameTime)
		if state(g) != systems.StatePlaying || g.stack.Len() != 1 {
			t.Errorf("%v closed: state %s with %d screens", tc.open, state(g), g.stack.Len())
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	g := newTestGame(t)
	g.handle(screens.ErrNewGame)
	g.app.Update(frameTime)
	world := g.app.World
	systems.GainXP(world, player(t, g), 300)

	g.handle(screens.ErrPause)
	g.handle(screens.ErrSaveGame)
	if _, ok := g.stack.Peek().(*screens.ModalScreen); !ok {
		t.Fatalf("no confirmation after saving, top is %T", g.stack.Peek())
	}
	if !g.hasSave() {
		t.Fatalf("save not written")
	}

	g.handle(screens.ErrMainMenu)
	if world.EntityCount() != 0 {
		t.Errorf("%d entities left after leaving the run", world.EntityCount())
	}
	if err := g.handle(screens.ErrLoadGame); err != nil {
		t.Fatalf("load: %v", err)
	}
	g.app.Update(frameTime)

	exp, _ := ecs.Get[components.ExperienceComponent](world, player(t, g), components.Experience)
	if exp.XP != 300 || exp.Level != 3 {
		t.Errorf("experience after load = %+v", exp)
	}
	if state(g) != systems.StatePlaying {
		t.Errorf("state = %s", state(g))
	}
}

func TestGameOverDeletesSave(t *testing.T) {
	g := newTestGame(t)
	g.handle(screens.ErrNewGame)
	g.app.Update(frameTime)
	g.saveGame()
	g.handle(screens.ErrCloseScreen)

	systems.ApplyDamage(g.app.World, player(t, g), 0, 10000, "", components.DamagePhysical)
	g.app.Update(frameTime)
	if err := g.stack.Update(); !errors.Is(err, screens.ErrGameOver) {
		t.Fatalf("game screen returned %v, want ErrGameOver", err)
	}
	g.handle(screens.ErrGameOver)
	if _, ok := g.stack.Peek().(*screens.GameOverScreen); !ok {
		t.Errorf("top is %T", g.stack.Peek())
	}
	if g.hasSave() {
		t.Errorf("save survived the character's death")
	}
}

func TestQuitTerminates(t *testing.T) {
	g := newTestGame(t)
	if err := g.handle(screens.ErrQuit); !errors.Is(err, ebiten.Termination) {
		t.Errorf("err = %v, want ebiten.Termination", err)
	}
}
