package screens

import (
	"testing"

	"ebiten-arpg/config"
)

func TestMenuKeyboardWraps(t *testing.T) {
	m := NewMenu(config.DefaultButtonStyle(), 400, 100, "A", "B", "C")

	m.Update(MenuInput{Up: true})
	if m.Selected != 2 {
		t.Fatalf("up from the first entry selected %d, want 2", m.Selected)
	}
	m.Update(MenuInput{Down: true})
	if m.Selected != 0 {
		t.Fatalf("down from the last entry selected %d, want 0", m.Selected)
	}
	if got := m.Update(MenuInput{Confirm: true}); got != 0 {
		t.Errorf("confirm = %d, want 0", got)
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu(config.DefaultButtonStyle(), 400, 100, "A", "B", "C")
	m.SetDisabled(0, true)
	if m.Selected != 1 {
		t.Fatalf("disabling the selection left it on %d", m.Selected)
	}
	m.SetDisabled(2, true)
	m.Update(MenuInput{Down: true})
	if m.Selected != 1 {
		t.Errorf("selection moved onto a disabled entry: %d", m.Selected)
	}
}

func TestMenuMouseClick(t *testing.T) {
	style := config.DefaultButtonStyle()
	m := NewMenu(style, 400, 100, "A", "B")
	b := m.Buttons[1].Rect
	x, y := b.Min.X+1, b.Min.Y+1

	if got := m.Update(MenuInput{MouseX: x, MouseY: y}); got != -1 {
		t.Fatalf("hover activated %d", got)
	}
	if m.Selected != 1 {
		t.Errorf("hover did not select, selected %d", m.Selected)
	}
	m.Update(MenuInput{MouseX: x, MouseY: y, MousePressed: true})
	if got := m.Update(MenuInput{MouseX: x, MouseY: y, MouseReleased: true}); got != 1 {
		t.Errorf("click = %d, want 1", got)
	}
}

func TestButtonReleaseElsewhereIsNotAClick(t *testing.T) {
	style := config.DefaultButtonStyle()
	b := NewButton("OK", 10, 10, style)

	b.Update(MenuInput{MouseX: 15, MouseY: 15, MousePressed: true})
	if b.Update(MenuInput{MouseX: 500, MouseY: 500, MouseReleased: true}) {
		t.Errorf("release off the button counted as a click")
	}
	if b.pressed {
		t.Errorf("button still pressed after release")
	}

	b.Disabled = true
	b.Update(MenuInput{MouseX: 15, MouseY: 15, MousePressed: true})
	if b.Update(MenuInput{MouseX: 15, MouseY: 15, MouseReleased: true}) {
		t.Errorf("disabled button clicked")
	}
}

func TestMenuHeight(t *testing.T) {
	style := config.DefaultButtonStyle()
	m := NewMenu(style, 0, 0, "A", "B", "C")
	if want := 3*style.Height + 2*style.Spacing; m.Height() != want {
		t.Errorf("height = %d, want %d", m.Height(), want)
	}
	if (&Menu{}).Height() != 0 {
		t.Errorf("empty menu has height")
	}
}
