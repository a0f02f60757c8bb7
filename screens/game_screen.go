package screens

import (
	"github.com/hajimehoshi/ebiten/v2"

	"ebiten-arpg/config"
	"ebiten-arpg/ecs"
	"ebiten-arpg/systems"
)

// GameScreen shows the world. The app is advanced by the game loop every
// frame; this screen only turns menu keys into transitions.
type GameScreen struct {
	*BaseScreen
	world        *ecs.World
	renderSystem *systems.RenderSystem
}

// NewGameScreen creates a new game screen
func NewGameScreen(style config.ButtonStyle, world *ecs.World, renderSystem *systems.RenderSystem) *GameScreen {
	return &GameScreen{
		BaseScreen:   NewBaseScreen(style),
		world:        world,
		renderSystem: renderSystem,
	}
}

// Update handles game updates
func (s *GameScreen) Update() error {
	if sm, ok := ecs.Resource[ecs.StateMachine](s.world); ok && sm.Current() == systems.StateGameOver {
		return ErrGameOver
	}
	in, ok := ecs.Resource[systems.InputState](s.world)
	if !ok {
		return nil
	}
	switch {
	case in.Debug:
		return ErrDebug
	case in.Pause:
		return ErrPause
	case in.ToggleInventory:
		return ErrInventory
	case in.ToggleCharacter:
		return ErrCharacter
	}
	return nil
}

// Draw draws the game screen
func (s *GameScreen) Draw(screen *ebiten.Image) {
	if s.renderSystem != nil {
		s.renderSystem.Draw(s.world, screen)
	}
}
