package screens

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"ebiten-arpg/config"
)

const (
	pauseResume = iota
	pauseSave
	pauseMainMenu
)

// PauseScreen is shown over the frozen world
type PauseScreen struct {
	*BaseScreen
	menu  *Menu
	panel image.Rectangle
}

// NewPauseScreen creates the pause menu
func NewPauseScreen(style config.ButtonStyle) *PauseScreen {
	s := &PauseScreen{BaseScreen: NewBaseScreen(style)}
	cx, cy := config.WindowWidth/2, config.WindowHeight/2
	s.menu = NewMenu(style, cx, cy-40, "Resume", "Save Game", "Main Menu")

	pad := 24
	s.panel = image.Rect(
		cx-style.Width/2-pad, cy-40-pad-30,
		cx+style.Width/2+pad, cy-40+s.menu.Height()+pad,
	)
	return s
}

// Update implements the Screen interface
func (s *PauseScreen) Update() error {
	in := s.readInput()
	if in.Back {
		return ErrResume
	}
	switch s.menu.Update(in) {
	case pauseResume:
		s.click()
		return ErrResume
	case pauseSave:
		s.click()
		return ErrSaveGame
	case pauseMainMenu:
		s.click()
		return ErrMainMenu
	}
	return nil
}

// Draw implements the Screen interface
func (s *PauseScreen) Draw(screen *ebiten.Image) {
	dim(screen)
	drawPanel(screen, s.panel, color.RGBA{20, 20, 28, 235}, s.style.Border)
	drawCentered(screen, "PAUSED", config.WindowWidth/2, s.panel.Min.Y+14, s.style.Text)
	s.menu.Draw(screen, s.style)
}
