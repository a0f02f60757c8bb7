package screens

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"ebiten-arpg/config"
	"ebiten-arpg/systems"
)

// BaseScreen provides common functionality for all screens
type BaseScreen struct {
	style   config.ButtonStyle
	input   func() MenuInput // Replaced in tests
	onClick func()
}

// NewBaseScreen creates a new base screen drawn with style
func NewBaseScreen(style config.ButtonStyle) *BaseScreen {
	return &BaseScreen{
		style: style,
		input: ReadMenuInput,
	}
}

// Update implements the Screen interface
func (s *BaseScreen) Update() error {
	return nil
}

// Draw implements the Screen interface
func (s *BaseScreen) Draw(screen *ebiten.Image) {
	// Base screen does nothing by default
}

// Layout implements the Screen interface. Every screen renders at the window
// resolution.
func (s *BaseScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// OnClick registers fn to run whenever a button on the screen is activated
func (s *BaseScreen) OnClick(fn func()) {
	s.onClick = fn
}

func (s *BaseScreen) click() {
	if s.onClick != nil {
		s.onClick()
	}
}

func (s *BaseScreen) readInput() MenuInput {
	if s.input == nil {
		return MenuInput{}
	}
	return s.input()
}

// dim darkens whatever was drawn beneath an overlay
func dim(dst *ebiten.Image) {
	b := dst.Bounds()
	vector.DrawFilledRect(dst, 0, 0, float32(b.Dx()), float32(b.Dy()), color.RGBA{0, 0, 0, 160}, false)
}

// drawPanel fills r and outlines it
func drawPanel(dst *ebiten.Image, r image.Rectangle, fill, border color.Color) {
	x, y, w, h := float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy())
	vector.DrawFilledRect(dst, x, y, w, h, fill, false)
	vector.StrokeRect(dst, x, y, w, h, 2, border, false)
}

// drawCentered prints s horizontally centered on cx
func drawCentered(dst *ebiten.Image, s string, cx, y int, clr color.Color) {
	systems.DrawText(dst, s, cx-systems.TextWidth(s)/2, y, clr)
}
