package screens

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"ebiten-arpg/config"
	"ebiten-arpg/systems"
)

// DebugScreen shows the debug log in a modal window
type DebugScreen struct {
	*BaseScreen
	log          *systems.MessageLog
	scrollOffset int
	panel        image.Rectangle
	background   color.Color
	textColor    color.Color
}

// NewDebugScreen creates a new debug screen over log
func NewDebugScreen(style config.ButtonStyle, log *systems.MessageLog) *DebugScreen {
	w, h := 600, 400
	x := (config.WindowWidth - w) / 2
	y := (config.WindowHeight - h) / 2
	return &DebugScreen{
		BaseScreen: NewBaseScreen(style),
		log:        log,
		panel:      image.Rect(x, y, x+w, y+h),
		background: color.RGBA{0, 0, 0, 255}, // Solid black
		textColor:  color.White,
	}
}

// Update handles input for the debug screen
func (s *DebugScreen) Update() error {
	in := s.readInput()
	if in.Up {
		s.scrollUp()
	}
	if in.Down {
		s.scrollDown()
	}

	// ESC to close debug window
	if in.Back {
		return ErrCloseScreen
	}
	return nil
}

// scrollUp moves the view up by one line
func (s *DebugScreen) scrollUp() {
	if s.scrollOffset > 0 {
		s.scrollOffset--
	}
}

// scrollDown moves the view down by one line
func (s *DebugScreen) scrollDown() {
	if s.scrollOffset < len(s.log.Messages)-1 {
		s.scrollOffset++
	}
}

// maxLines is how many log lines fit under the title
func (s *DebugScreen) maxLines() int {
	return (s.panel.Dy() - 30 - 20) / systems.LineHeight
}

// visible returns the window of messages to draw
func (s *DebugScreen) visible() []systems.ColoredMessage {
	messages := s.log.Messages
	maxLines := s.maxLines()

	startIdx := s.scrollOffset
	if startIdx > len(messages)-maxLines {
		startIdx = max(len(messages)-maxLines, 0)
	}
	end := min(startIdx+maxLines, len(messages))
	return messages[startIdx:end]
}

// Draw renders the debug screen
func (s *DebugScreen) Draw(screen *ebiten.Image) {
	drawPanel(screen, s.panel, s.background, s.textColor)
	x, y := s.panel.Min.X, s.panel.Min.Y

	drawCentered(screen, "DEBUG LOG", x+s.panel.Dx()/2, y+6, s.textColor)

	startY := y + 30
	for i, msg := range s.visible() {
		systems.DrawText(screen, msg.Display(), x+10, startY+i*systems.LineHeight, msg.GetColor())
	}

	// Scroll indicator
	total := len(s.log.Messages)
	if maxLines := s.maxLines(); total > maxLines {
		track := float32(s.panel.Dy() - 50)
		barH := float32(maxLines) / float32(total) * track
		barY := float32(startY) + float32(s.scrollOffset)/float32(total)*track
		vector.DrawFilledRect(screen, float32(s.panel.Max.X-10), barY, 5, barH, s.textColor, false)
	}

	systems.DrawText(screen, "Up/Down: Scroll  ESC: Close", x+10, s.panel.Max.Y-20, s.textColor)
}
