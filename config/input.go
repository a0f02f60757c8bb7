package config

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// InputSettings maps actions to keys. It is stored as a world resource and
// can be overridden in the settings file using ebiten key names.
type InputSettings struct {
	Forward     ebiten.Key `yaml:"forward"`
	Back        ebiten.Key `yaml:"back"`
	StrafeLeft  ebiten.Key `yaml:"strafe_left"`
	StrafeRight ebiten.Key `yaml:"strafe_right"`
	TurnLeft    ebiten.Key `yaml:"turn_left"`
	TurnRight   ebiten.Key `yaml:"turn_right"`
	Attack      ebiten.Key `yaml:"attack"`
	Cast        ebiten.Key `yaml:"cast"`
	Sprint      ebiten.Key `yaml:"sprint"`
	Interact    ebiten.Key `yaml:"interact"`
	Inventory   ebiten.Key `yaml:"inventory"`
	Character   ebiten.Key `yaml:"character"`
	Pause       ebiten.Key `yaml:"pause"`
	Debug       ebiten.Key `yaml:"debug"`

	MouseLook        bool    `yaml:"mouse_look"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity" env:"ARPG_MOUSE_SENSITIVITY"`
	InvertLook       bool    `yaml:"invert_look"`
	TurnSpeed        float64 `yaml:"turn_speed"` // Radians per second for keyboard turning
}

// DefaultInputSettings returns WASD bindings with arrow keys for turning
func DefaultInputSettings() InputSettings {
	return InputSettings{
		Forward:          ebiten.KeyW,
		Back:             ebiten.KeyS,
		StrafeLeft:       ebiten.KeyA,
		StrafeRight:      ebiten.KeyD,
		TurnLeft:         ebiten.KeyArrowLeft,
		TurnRight:        ebiten.KeyArrowRight,
		Attack:           ebiten.KeySpace,
		Cast:             ebiten.KeyQ,
		Sprint:           ebiten.KeyShiftLeft,
		Interact:         ebiten.KeyE,
		Inventory:        ebiten.KeyI,
		Character:        ebiten.KeyC,
		Pause:            ebiten.KeyEscape,
		Debug:            ebiten.KeyF1,
		MouseLook:        true,
		MouseSensitivity: 0.003,
		TurnSpeed:        2.6,
	}
}
