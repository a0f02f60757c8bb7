package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Debug font metrics
const (
	CharWidth  = 6
	LineHeight = 16
)

var lineImg *ebiten.Image

// DrawText prints s at (x, y) tinted with clr
func DrawText(dst *ebiten.Image, s string, x, y int, clr color.Color) {
	w := len(s)*CharWidth + CharWidth
	if lineImg == nil || lineImg.Bounds().Dx() < w {
		lineImg = ebiten.NewImage(max(w, 512), LineHeight)
	}
	lineImg.Clear()
	ebitenutil.DebugPrintAt(lineImg, s, 0, 0)

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleWithColor(clr)
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(lineImg, op)
}

// TextWidth returns the pixel width of s in the debug font
func TextWidth(s string) int {
	return len([]rune(s)) * CharWidth
}
