package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"ebiten-arpg/config"
)

// InputState is the per-frame snapshot of player intent, stored as a world
// resource. Gameplay systems read only this, never ebiten directly.
type InputState struct {
	Forward float64 // -1 back .. 1 forward
	Strafe  float64 // -1 left .. 1 right
	Turn    float64 // -1 left .. 1 right
	LookDX  float64 // Mouse movement since last frame, pixels

	Attack   bool
	Cast     bool
	Sprint   bool
	Interact bool

	ToggleInventory bool
	ToggleCharacter bool
	Pause           bool
	Debug           bool

	MouseX, MouseY    int
	MouseDown         bool
	MousePressed      bool // Left button went down this frame
	MouseReleased     bool // Left button went up this frame
	RightMousePressed bool
}

// InputSampler reads ebiten's input into an InputState
type InputSampler struct {
	lastX, lastY int
	primed       bool
}

// Sample builds the InputState for this frame
func (s *InputSampler) Sample(settings config.InputSettings) InputState {
	var in InputState

	axis := func(neg, pos ebiten.Key) float64 {
		v := 0.0
		if ebiten.IsKeyPressed(neg) {
			v--
		}
		if ebiten.IsKeyPressed(pos) {
			v++
		}
		return v
	}
	in.Forward = axis(settings.Back, settings.Forward)
	in.Strafe = axis(settings.StrafeLeft, settings.StrafeRight)
	in.Turn = axis(settings.TurnLeft, settings.TurnRight)

	in.Attack = ebiten.IsKeyPressed(settings.Attack)
	in.Cast = inpututil.IsKeyJustPressed(settings.Cast)
	in.Sprint = ebiten.IsKeyPressed(settings.Sprint)
	in.Interact = inpututil.IsKeyJustPressed(settings.Interact)
	in.ToggleInventory = inpututil.IsKeyJustPressed(settings.Inventory)
	in.ToggleCharacter = inpututil.IsKeyJustPressed(settings.Character)
	in.Pause = inpututil.IsKeyJustPressed(settings.Pause)
	in.Debug = inpututil.IsKeyJustPressed(settings.Debug)

	in.MouseX, in.MouseY = ebiten.CursorPosition()
	in.MouseDown = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.MousePressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.MouseReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	in.RightMousePressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)

	// Mouse look only while the cursor is captured
	if settings.MouseLook && ebiten.CursorMode() == ebiten.CursorModeCaptured {
		if s.primed {
			in.LookDX = float64(in.MouseX - s.lastX)
			if settings.InvertLook {
				in.LookDX = -in.LookDX
			}
		}
		s.primed = true
		// Left click attacks while looking around
		in.Attack = in.Attack || in.MouseDown
		in.Cast = in.Cast || in.RightMousePressed
	} else {
		s.primed = false
	}
	s.lastX, s.lastY = in.MouseX, in.MouseY

	return in
}
