package screens

import (
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"ebiten-arpg/config"
	"ebiten-arpg/systems"
)

// ModalScreen represents a popup window that appears on top of other screens
type ModalScreen struct {
	*BaseScreen
	title      string
	content    string
	ok         *Button
	panel      image.Rectangle
	background color.Color
}

// NewModalScreen creates a new modal screen sized to its content
func NewModalScreen(style config.ButtonStyle, title, content string) *ModalScreen {
	lines := strings.Split(content, "\n")
	width := max(systems.TextWidth(title), style.Width)
	for _, l := range lines {
		width = max(width, systems.TextWidth(l))
	}
	width += 40
	height := 40 + len(lines)*systems.LineHeight + 16 + style.Height + 16

	x := (config.WindowWidth - width) / 2
	y := (config.WindowHeight - height) / 2
	okStyle := style
	okStyle.Width = 100
	return &ModalScreen{
		BaseScreen: NewBaseScreen(style),
		title:      title,
		content:    content,
		panel:      image.Rect(x, y, x+width, y+height),
		ok:         NewButton("OK", x+(width-okStyle.Width)/2, y+height-16-style.Height, okStyle),
		background: color.RGBA{0, 0, 0, 220}, // Semi-transparent black
	}
}

// Update implements the Screen interface. Any dismissal closes the modal.
func (s *ModalScreen) Update() error {
	in := s.readInput()
	if s.ok.Update(in) || in.Confirm || in.Back {
		s.click()
		return ErrCloseScreen
	}
	return nil
}

// Draw implements the Screen interface
func (s *ModalScreen) Draw(screen *ebiten.Image) {
	drawPanel(screen, s.panel, s.background, color.White)
	cx := s.panel.Min.X + s.panel.Dx()/2
	drawCentered(screen, s.title, cx, s.panel.Min.Y+10, s.style.Text)
	for i, line := range strings.Split(s.content, "\n") {
		systems.DrawText(screen, line, s.panel.Min.X+20, s.panel.Min.Y+40+i*systems.LineHeight, s.style.Text)
	}
	s.ok.Draw(screen, s.style, true)
}
