package screens

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"ebiten-arpg/config"
	"ebiten-arpg/systems"
)

// MenuInput is the part of a frame's input menus react to
type MenuInput struct {
	Up, Down bool
	Confirm  bool
	Back     bool

	MouseX, MouseY int
	MousePressed   bool
	MouseReleased  bool
	RightPressed   bool
}

// ReadMenuInput samples the keyboard and mouse for menus
func ReadMenuInput() MenuInput {
	in := MenuInput{
		Up:            inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW),
		Down:          inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS),
		Confirm:       inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Back:          inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		MousePressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		MouseReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		RightPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
	}
	in.MouseX, in.MouseY = ebiten.CursorPosition()
	return in
}

// menuInputFrom adapts the gameplay input resource for screens shown over
// the world
func menuInputFrom(in *systems.InputState) MenuInput {
	if in == nil {
		return MenuInput{}
	}
	return MenuInput{
		Back:          in.Pause,
		MouseX:        in.MouseX,
		MouseY:        in.MouseY,
		MousePressed:  in.MousePressed,
		MouseReleased: in.MouseReleased,
		RightPressed:  in.RightMousePressed,
	}
}

// Button is a clickable labelled rectangle
type Button struct {
	Label    string
	Rect     image.Rectangle
	Disabled bool

	hovered bool
	pressed bool
}

// NewButton creates a button of the style's size with its top-left at x, y
func NewButton(label string, x, y int, style config.ButtonStyle) *Button {
	return &Button{
		Label: label,
		Rect:  image.Rect(x, y, x+style.Width, y+style.Height),
	}
}

// Contains reports whether the point lies on the button
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// Update tracks hover and press state. A click is a press and a release that
// both happen over the button.
func (b *Button) Update(in MenuInput) bool {
	if b.Disabled {
		b.hovered, b.pressed = false, false
		return false
	}
	b.hovered = b.Contains(in.MouseX, in.MouseY)
	if in.MousePressed && b.hovered {
		b.pressed = true
	}
	if in.MouseReleased {
		clicked := b.pressed && b.hovered
		b.pressed = false
		return clicked
	}
	return false
}

// Draw renders the button. selected highlights it like a hover.
func (b *Button) Draw(dst *ebiten.Image, style config.ButtonStyle, selected bool) {
	fill, text := style.Normal, style.Text
	switch {
	case b.Disabled:
		fill, text = style.Disabled, style.TextDim
	case b.pressed:
		fill = style.Pressed
	case b.hovered || selected:
		fill = style.Hovered
	}

	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
	vector.DrawFilledRect(dst, x, y, w, h, fill, false)
	if selected && !b.Disabled {
		vector.StrokeRect(dst, x, y, w, h, 2, style.Border, false)
	}

	cy := b.Rect.Min.Y + (b.Rect.Dy()-systems.LineHeight)/2
	drawCentered(dst, b.Label, b.Rect.Min.X+b.Rect.Dx()/2, cy, text)
}

// Menu is a vertical list of buttons driven by keyboard or mouse
type Menu struct {
	Buttons  []*Button
	Selected int

	lastX, lastY int
}

// NewMenu lays labels out top to bottom, centered on centerX
func NewMenu(style config.ButtonStyle, centerX, top int, labels ...string) *Menu {
	m := &Menu{lastX: -1, lastY: -1}
	x := centerX - style.Width/2
	for i, label := range labels {
		y := top + i*(style.Height+style.Spacing)
		m.Buttons = append(m.Buttons, NewButton(label, x, y, style))
	}
	return m
}

// SetDisabled greys out button i. The selection moves off a disabled button.
func (m *Menu) SetDisabled(i int, disabled bool) {
	if i < 0 || i >= len(m.Buttons) {
		return
	}
	m.Buttons[i].Disabled = disabled
	if disabled && m.Selected == i {
		m.move(1)
	}
}

// Update handles one frame of input. It returns the index of the activated
// button, or -1.
func (m *Menu) Update(in MenuInput) int {
	if len(m.Buttons) == 0 {
		return -1
	}
	if in.Up {
		m.move(-1)
	}
	if in.Down {
		m.move(1)
	}

	// Hovering selects, but only once the mouse moves so a resting cursor
	// does not fight the keyboard
	moved := in.MouseX != m.lastX || in.MouseY != m.lastY
	m.lastX, m.lastY = in.MouseX, in.MouseY

	chosen := -1
	for i, b := range m.Buttons {
		if b.Update(in) {
			chosen = i
		}
		if moved && b.hovered {
			m.Selected = i
		}
	}
	if chosen >= 0 {
		m.Selected = chosen
		return chosen
	}

	if in.Confirm && !m.Buttons[m.Selected].Disabled {
		return m.Selected
	}
	return -1
}

// move steps the selection, wrapping and skipping disabled buttons
func (m *Menu) move(step int) {
	n := len(m.Buttons)
	for i := 1; i <= n; i++ {
		next := ((m.Selected+step*i)%n + n) % n
		if !m.Buttons[next].Disabled {
			m.Selected = next
			return
		}
	}
}

// Draw renders every button
func (m *Menu) Draw(dst *ebiten.Image, style config.ButtonStyle) {
	for i, b := range m.Buttons {
		b.Draw(dst, style, i == m.Selected)
	}
}

// Height returns the pixel height of the button column
func (m *Menu) Height() int {
	if len(m.Buttons) == 0 {
		return 0
	}
	return m.Buttons[len(m.Buttons)-1].Rect.Max.Y - m.Buttons[0].Rect.Min.Y
}
