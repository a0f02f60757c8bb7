package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"ebiten-arpg/config"
)

// GameOverScreen displays the game over message
type GameOverScreen struct {
	*BaseScreen
	menu    *Menu
	summary string
}

// NewGameOverScreen creates a new game over screen. summary is shown under
// the title, typically the depth and level reached.
func NewGameOverScreen(style config.ButtonStyle, summary string) *GameOverScreen {
	return &GameOverScreen{
		BaseScreen: NewBaseScreen(style),
		menu:       NewMenu(style, config.WindowWidth/2, config.WindowHeight/2+20, "New Game", "Main Menu"),
		summary:    summary,
	}
}

// Update handles input for the game over screen
func (s *GameOverScreen) Update() error {
	in := s.readInput()
	if in.Back {
		return ErrMainMenu
	}
	switch s.menu.Update(in) {
	case 0:
		s.click()
		return ErrNewGame
	case 1:
		s.click()
		return ErrMainMenu
	}
	return nil
}

// Draw draws the game over screen
func (s *GameOverScreen) Draw(screen *ebiten.Image) {
	dim(screen)
	cx := config.WindowWidth / 2
	drawCentered(screen, "YOU HAVE DIED", cx, config.WindowHeight/2-60, color.RGBA{200, 40, 40, 255})
	if s.summary != "" {
		drawCentered(screen, s.summary, cx, config.WindowHeight/2-34, s.style.Text)
	}
	s.menu.Draw(screen, s.style)
}
