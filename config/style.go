package config

import "image/color"

// ButtonStyle is the look of menu buttons, shared as a world resource
type ButtonStyle struct {
	Normal   color.RGBA
	Hovered  color.RGBA
	Pressed  color.RGBA
	Disabled color.RGBA
	Text     color.RGBA
	TextDim  color.RGBA
	Border   color.RGBA

	Width   int
	Height  int
	Spacing int
}

// DefaultButtonStyle returns the standard menu style
func DefaultButtonStyle() ButtonStyle {
	return ButtonStyle{
		Normal:   color.RGBA{38, 38, 52, 255},
		Hovered:  color.RGBA{64, 64, 92, 255},
		Pressed:  color.RGBA{96, 80, 40, 255},
		Disabled: color.RGBA{30, 30, 30, 255},
		Text:     color.RGBA{230, 230, 230, 255},
		TextDim:  color.RGBA{120, 120, 120, 255},
		Border:   color.RGBA{140, 120, 80, 255},
		Width:    220,
		Height:   36,
		Spacing:  10,
	}
}
