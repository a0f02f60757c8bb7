package main

import (
	"errors"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"ebiten-arpg/config"
	"ebiten-arpg/data"
	"ebiten-arpg/ecs"
	"ebiten-arpg/logging"
	"ebiten-arpg/physics"
	"ebiten-arpg/save"
	"ebiten-arpg/screens"
	"ebiten-arpg/spawners"
	"ebiten-arpg/systems"
)

// frameTime is the fixed step the app advances by each tick
const frameTime = 1.0 / 60.0

// Game implements ebiten.Game interface.
type Game struct {
	settings config.Settings
	style    config.ButtonStyle
	catalog  *data.Catalog
	store    *save.Store

	app     *ecs.App
	spawner *spawners.Spawner
	render  *systems.RenderSystem
	sampler systems.InputSampler
	stack   *screens.ScreenStack
	screen  *screens.GameScreen
	rng     *rand.Rand
	log     *logrus.Entry

	// Set by DescendEvent, handled once the frame's update is over
	pendingDepth int
}

// NewGame wires the app, its plugins and the screen stack. audio and store
// may be nil.
func NewGame(settings config.Settings, catalog *data.Catalog, store *save.Store, audio systems.AudioPlayer) *Game {
	seed := settings.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	g := &Game{
		settings: settings,
		style:    config.DefaultButtonStyle(),
		catalog:  catalog,
		store:    store,
		app:      ecs.NewApp(),
		render:   systems.NewRenderSystem(),
		stack:    screens.NewScreenStack(),
		rng:      rand.New(rand.NewSource(seed)),
		log:      logging.For("game"),
	}

	world := g.app.World
	ecs.InsertResource(world, catalog)
	input := settings.Input
	ecs.InsertResource(world, &input)
	ecs.InsertResource(world, &g.style)
	g.spawner = spawners.NewSpawner(world, catalog, seed)

	playing := ecs.InState(systems.StatePlaying)
	g.app.
		AddPlugin(systems.CorePlugin{Initial: systems.StateMainMenu}).
		AddPlugin(physics.Plugin{Conditions: []ecs.Condition{playing}}).
		AddPlugin(systems.PlayerPlugin{}).
		AddPlugin(systems.CombatPlugin{Loot: g.spawner}).
		AddPlugin(systems.EnemyPlugin{}).
		AddPlugin(systems.StatsPlugin{}).
		AddPlugin(systems.InventoryPlugin{}).
		AddPlugin(systems.AudioPlugin{Player: audio})
	g.app.Startup()

	world.GetEventManager().Subscribe(systems.EventDescend, func(e ecs.Event) {
		if d, ok := e.(systems.DescendEvent); ok {
			g.pendingDepth = d.Depth
		}
	})

	g.screen = screens.NewGameScreen(g.style, world, g.render)
	g.stack.Push(g.startScreen())

	g.log.WithField("seed", seed).Info("game created")
	return g
}

// Update advances input, screens and the world by one tick
func (g *Game) Update() error {
	in, _ := ecs.Resource[systems.InputState](g.app.World)
	*in = g.sampler.Sample(g.settings.Input)

	// F1 closes the debug log from anywhere it is open
	if _, ok := g.stack.Peek().(*screens.DebugScreen); ok && in.Debug {
		g.closeOverlay()
	} else if err := g.stack.Update(); err != nil {
		if err := g.handle(err); err != nil {
			return err
		}
	}

	g.app.Update(frameTime)

	if g.pendingDepth > 0 {
		depth := g.pendingDepth
		g.pendingDepth = 0
		g.descend(depth)
	}

	g.updateCursor()
	return nil
}

// handle performs the transition a screen asked for. Only quitting is
// returned to ebiten.
func (g *Game) handle(err error) error {
	switch {
	case errors.Is(err, screens.ErrNewGame):
		g.newRun()
	case errors.Is(err, screens.ErrLoadGame):
		g.loadGame()
	case errors.Is(err, screens.ErrQuit):
		return ebiten.Termination
	case errors.Is(err, screens.ErrCloseScreen), errors.Is(err, screens.ErrResume):
		g.closeOverlay()
	case errors.Is(err, screens.ErrSaveGame):
		g.saveGame()
	case errors.Is(err, screens.ErrMainMenu):
		g.endRun()
		g.stack.Replace(g.startScreen())
		g.setState(systems.StateMainMenu)
	case errors.Is(err, screens.ErrPause):
		g.openOverlay(screens.NewPauseScreen(g.style), systems.StatePaused)
	case errors.Is(err, screens.ErrInventory):
		g.openOverlay(screens.NewInventoryScreen(g.style, g.app.World), systems.StateInventory)
	case errors.Is(err, screens.ErrCharacter):
		g.openOverlay(screens.NewCharacterScreen(g.style, g.app.World), systems.StateCharacter)
	case errors.Is(err, screens.ErrDebug):
		g.openOverlay(screens.NewDebugScreen(g.style, systems.GetDebugLog()), systems.StatePaused)
	case errors.Is(err, screens.ErrGameOver):
		g.openOverlay(screens.NewGameOverScreen(g.style, g.summary()), systems.StateGameOver)
		g.deleteSave()
	default:
		g.log.WithError(err).Warn("unhandled screen result")
	}
	return nil
}

// openOverlay pushes s over the current screen and switches the app state
func (g *Game) openOverlay(s screens.Screen, state ecs.StateID) {
	g.withClick(s)
	g.stack.Push(s)
	g.setState(state)
}

// closeOverlay pops the top screen. Back on the game screen play resumes.
func (g *Game) closeOverlay() {
	if g.stack.Len() > 1 {
		g.stack.Pop()
	}
	if g.stack.Peek() == screens.Screen(g.screen) {
		g.setState(systems.StatePlaying)
	}
}

func (g *Game) setState(state ecs.StateID) {
	if sm, ok := ecs.Resource[ecs.StateMachine](g.app.World); ok {
		sm.Set(state)
	}
}

// withClick makes the screen's buttons play the click cue
func (g *Game) withClick(s screens.Screen) {
	type clicker interface{ OnClick(func()) }
	if c, ok := s.(clicker); ok {
		c.OnClick(func() { g.app.World.EmitEvent(systems.UIClickEvent{}) })
	}
}

func (g *Game) startScreen() screens.Screen {
	s := screens.NewStartScreen(g.style, g.hasSave())
	g.withClick(s)
	return s
}

// updateCursor captures the mouse for mouse look while playing
func (g *Game) updateCursor() {
	mode := ebiten.CursorModeVisible
	if g.settings.Input.MouseLook && g.stack.Peek() == screens.Screen(g.screen) {
		mode = ebiten.CursorModeCaptured
	}
	if ebiten.CursorMode() != mode {
		ebiten.SetCursorMode(mode)
	}
}

// Draw draws the screen stack
func (g *Game) Draw(screen *ebiten.Image) {
	g.stack.Draw(screen)
}

// Layout implements ebiten.Game
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.stack.Layout(outsideWidth, outsideHeight)
}
