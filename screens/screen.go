package screens

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// Errors returned from Screen.Update to request a transition. The owner of
// the stack decides what each one means.
var (
	ErrNewGame     = errors.New("new game")
	ErrLoadGame    = errors.New("load game")
	ErrQuit        = errors.New("quit")
	ErrCloseScreen = errors.New("close screen")
	ErrResume      = errors.New("resume")
	ErrSaveGame    = errors.New("save game")
	ErrMainMenu    = errors.New("main menu")

	// Raised by the game screen
	ErrPause     = errors.New("pause")
	ErrInventory = errors.New("open inventory")
	ErrCharacter = errors.New("open character sheet")
	ErrDebug     = errors.New("toggle debug log")
	ErrGameOver  = errors.New("game over")
)

// Screen represents a game screen that can be pushed onto the screen stack
type Screen interface {
	// Update updates the screen state
	Update() error
	// Draw draws the screen
	Draw(screen *ebiten.Image)
	// Layout handles screen layout
	Layout(outsideWidth, outsideHeight int) (int, int)
}

// ScreenStack manages a stack of screens. Only the top screen is updated;
// all of them are drawn so overlays show what lies beneath.
type ScreenStack struct {
	screens []Screen
}

// NewScreenStack creates a new screen stack
func NewScreenStack() *ScreenStack {
	return &ScreenStack{
		screens: make([]Screen, 0),
	}
}

// Push adds a new screen to the top of the stack
func (s *ScreenStack) Push(screen Screen) {
	s.screens = append(s.screens, screen)
}

// Pop removes the top screen from the stack
func (s *ScreenStack) Pop() Screen {
	if len(s.screens) == 0 {
		return nil
	}
	top := s.screens[len(s.screens)-1]
	s.screens = s.screens[:len(s.screens)-1]
	return top
}

// Peek returns the top screen without removing it
func (s *ScreenStack) Peek() Screen {
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[len(s.screens)-1]
}

// Replace empties the stack and pushes screen
func (s *ScreenStack) Replace(screen Screen) {
	s.screens = s.screens[:0]
	s.Push(screen)
}

// PopTo pops screens until target is on top. It reports false, leaving the
// stack untouched, when target is not on the stack.
func (s *ScreenStack) PopTo(target Screen) bool {
	for i := len(s.screens) - 1; i >= 0; i-- {
		if s.screens[i] == target {
			s.screens = s.screens[:i+1]
			return true
		}
	}
	return false
}

// Len returns the number of screens on the stack
func (s *ScreenStack) Len() int {
	return len(s.screens)
}

// Update updates the top screen
func (s *ScreenStack) Update() error {
	if top := s.Peek(); top != nil {
		return top.Update()
	}
	return nil
}

// Draw draws all screens from bottom to top
func (s *ScreenStack) Draw(screen *ebiten.Image) {
	for _, scr := range s.screens {
		scr.Draw(screen)
	}
}

// Layout handles layout for the top screen
func (s *ScreenStack) Layout(outsideWidth, outsideHeight int) (int, int) {
	if top := s.Peek(); top != nil {
		return top.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
