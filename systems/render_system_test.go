package systems

import (
	"image/color"
	"math"
	"testing"

	"ebiten-arpg/data"
)

func TestProjectSprite(t *testing.T) {
	fov := math.Pi / 2

	x, depth, ok := projectSprite(0, 0, 0, 4, 0, fov, 400)
	if !ok || !near(x, 200) || !near(depth, 4) {
		t.Errorf("straight ahead = %v, %v, %v", x, depth, ok)
	}

	// 45 degrees to the right sits on the right edge of a 90 degree view
	x, _, ok = projectSprite(0, 0, 0, 4, 4, fov, 400)
	if !ok || !near(x, 400) {
		t.Errorf("right edge = %v, %v", x, ok)
	}

	x, _, ok = projectSprite(0, 0, 0, 4, -2, fov, 400)
	if !ok || x >= 200 {
		t.Errorf("left side = %v, %v", x, ok)
	}

	if _, _, ok := projectSprite(0, 0, 0, -1, 0, fov, 400); ok {
		t.Errorf("sprite behind the camera projected")
	}

	// Turning the camera brings the sprite to the centre
	x, depth, ok = projectSprite(1, 1, math.Pi/2, 1, 3, fov, 400)
	if !ok || !near(x, 200) || !near(depth, 2) {
		t.Errorf("rotated = %v, %v, %v", x, depth, ok)
	}
}

func TestWallShadeDarkensWithDistance(t *testing.T) {
	base := color.RGBA{200, 100, 50, 255}

	if got := wallShade(base, 0, 0); got != base {
		t.Errorf("shade at distance 0 = %v, want %v", got, base)
	}
	nearShade := wallShade(base, 2, 0)
	farShade := wallShade(base, 8, 0)
	if farShade.R >= nearShade.R || farShade.A != 255 {
		t.Errorf("far %v not darker than near %v", farShade, nearShade)
	}
	if side := wallShade(base, 2, 1); side.R >= nearShade.R {
		t.Errorf("side face %v not darker than %v", side, nearShade)
	}
}

func TestLevelPalette(t *testing.T) {
	if levelPalette(nil) != defaultPalette {
		t.Errorf("nil theme changed the palette")
	}
	p := levelPalette(&data.ThemeDef{Wall: "#ff0000"})
	if p.wall != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("wall = %v", p.wall)
	}
	if p.floor != defaultPalette.floor || p.ceiling != defaultPalette.ceiling {
		t.Errorf("unset colors changed: %+v", p)
	}
}
