package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"ebiten-arpg/config"
)

// Start menu entries
const (
	startNewGame = iota
	startLoadGame
	startQuit
)

// StartScreen handles the game's start menu
type StartScreen struct {
	*BaseScreen
	menu       *Menu
	title      string
	titleColor color.Color
	background color.Color
}

// NewStartScreen creates a new start screen. Load Game is disabled when
// there is no save to load.
func NewStartScreen(style config.ButtonStyle, canLoad bool) *StartScreen {
	s := &StartScreen{
		BaseScreen: NewBaseScreen(style),
		title:      "INTO THE DEPTHS",
		titleColor: color.RGBA{255, 230, 150, 255}, // Gold
		background: color.RGBA{12, 10, 16, 255},
	}
	top := config.WindowHeight / 2
	s.menu = NewMenu(style, config.WindowWidth/2, top, "New Game", "Load Game", "Quit")
	s.menu.SetDisabled(startLoadGame, !canLoad)
	return s
}

// Update handles input for the start screen
func (s *StartScreen) Update() error {
	switch s.menu.Update(s.readInput()) {
	case startNewGame:
		s.click()
		return ErrNewGame
	case startLoadGame:
		s.click()
		return ErrLoadGame
	case startQuit:
		s.click()
		return ErrQuit
	}
	return nil
}

// Draw renders the start screen
func (s *StartScreen) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)
	cx := config.WindowWidth / 2
	drawCentered(screen, s.title, cx, config.WindowHeight/4, s.titleColor)
	drawCentered(screen, "A first-person descent", cx, config.WindowHeight/4+24, s.style.TextDim)
	s.menu.Draw(screen, s.style)
}
