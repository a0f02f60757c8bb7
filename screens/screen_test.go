package screens

import (
	"errors"
	"fmt"
	"testing"

	"ebiten-arpg/config"
	"ebiten-arpg/ecs"
	"ebiten-arpg/systems"
)

type stubScreen struct {
	*BaseScreen
	err     error
	updates int
}

func (s *stubScreen) Update() error {
	s.updates++
	return s.err
}

func newStub(err error) *stubScreen {
	return &stubScreen{BaseScreen: NewBaseScreen(config.DefaultButtonStyle()), err: err}
}

func TestScreenStackUpdatesOnlyTop(t *testing.T) {
	stack := NewScreenStack()
	bottom, top := newStub(nil), newStub(ErrResume)
	stack.Push(bottom)
	stack.Push(top)

	if err := stack.Update(); !errors.Is(err, ErrResume) {
		t.Fatalf("err = %v, want ErrResume", err)
	}
	if bottom.updates != 0 || top.updates != 1 {
		t.Errorf("updates bottom=%d top=%d", bottom.updates, top.updates)
	}
	if stack.Pop() != top || stack.Peek() != bottom {
		t.Errorf("pop did not expose the screen beneath")
	}
}

func TestScreenStackEmpty(t *testing.T) {
	stack := NewScreenStack()
	if stack.Pop() != nil || stack.Peek() != nil {
		t.Fatalf("empty stack returned a screen")
	}
	if err := stack.Update(); err != nil {
		t.Errorf("empty update = %v", err)
	}
	if w, h := stack.Layout(10, 20); w != 10 || h != 20 {
		t.Errorf("layout = %dx%d", w, h)
	}
}

func TestScreenStackReplaceAndPopTo(t *testing.T) {
	stack := NewScreenStack()
	a, b, c := newStub(nil), newStub(nil), newStub(nil)
	stack.Push(a)
	stack.Push(b)
	stack.Push(c)

	if !stack.PopTo(a) || stack.Len() != 1 || stack.Peek() != a {
		t.Fatalf("PopTo left %d screens", stack.Len())
	}
	if stack.PopTo(b) {
		t.Errorf("PopTo found a screen that was already popped")
	}

	stack.Replace(c)
	if stack.Len() != 1 || stack.Peek() != c {
		t.Errorf("replace left %d screens", stack.Len())
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	all := []error{ErrNewGame, ErrLoadGame, ErrQuit, ErrCloseScreen, ErrResume, ErrSaveGame, ErrMainMenu,
		ErrPause, ErrInventory, ErrCharacter, ErrDebug, ErrGameOver}
	for i, a := range all {
		if a == nil {
			t.Fatalf("error %d is nil", i)
		}
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v matches %v", a, b)
			}
		}
	}
}

func TestStartScreenSkipsDisabledLoad(t *testing.T) {
	s := NewStartScreen(config.DefaultButtonStyle(), false)
	clicks := 0
	s.OnClick(func() { clicks++ })

	s.input = func() MenuInput { return MenuInput{Down: true} }
	if err := s.Update(); err != nil {
		t.Fatalf("moving selection returned %v", err)
	}
	s.input = func() MenuInput { return MenuInput{Confirm: true} }
	if err := s.Update(); !errors.Is(err, ErrQuit) {
		t.Fatalf("err = %v, want ErrQuit", err)
	}
	if clicks != 1 {
		t.Errorf("clicks = %d", clicks)
	}
}

func TestStartScreenNewGameByMouse(t *testing.T) {
	s := NewStartScreen(config.DefaultButtonStyle(), true)
	r := s.menu.Buttons[startLoadGame].Rect
	x, y := r.Min.X+5, r.Min.Y+5

	s.input = func() MenuInput { return MenuInput{MouseX: x, MouseY: y, MousePressed: true} }
	if err := s.Update(); err != nil {
		t.Fatalf("press returned %v", err)
	}
	s.input = func() MenuInput { return MenuInput{MouseX: x, MouseY: y, MouseReleased: true} }
	if err := s.Update(); !errors.Is(err, ErrLoadGame) {
		t.Fatalf("err = %v, want ErrLoadGame", err)
	}
}

func TestPauseScreen(t *testing.T) {
	s := NewPauseScreen(config.DefaultButtonStyle())

	s.input = func() MenuInput { return MenuInput{Back: true} }
	if err := s.Update(); !errors.Is(err, ErrResume) {
		t.Errorf("escape = %v, want ErrResume", err)
	}

	s.input = func() MenuInput { return MenuInput{Down: true} }
	s.Update()
	s.input = func() MenuInput { return MenuInput{Confirm: true} }
	if err := s.Update(); !errors.Is(err, ErrSaveGame) {
		t.Errorf("second entry = %v, want ErrSaveGame", err)
	}
}

func TestModalClosesOnConfirm(t *testing.T) {
	s := NewModalScreen(config.DefaultButtonStyle(), "Saved", "Your progress was saved.")
	s.input = func() MenuInput { return MenuInput{} }
	if err := s.Update(); err != nil {
		t.Fatalf("idle modal returned %v", err)
	}
	s.input = func() MenuInput { return MenuInput{Confirm: true} }
	if err := s.Update(); !errors.Is(err, ErrCloseScreen) {
		t.Errorf("err = %v, want ErrCloseScreen", err)
	}
}

func TestDebugScreenScrolling(t *testing.T) {
	log := systems.NewMessageLog()
	for i := 0; i < 40; i++ {
		log.Add(fmt.Sprintf("line %d", i))
	}
	s := NewDebugScreen(config.DefaultButtonStyle(), log)

	s.input = func() MenuInput { return MenuInput{Up: true} }
	s.Update()
	if s.scrollOffset != 0 {
		t.Errorf("scrolled above the first line")
	}
	s.input = func() MenuInput { return MenuInput{Down: true} }
	s.Update()
	s.Update()
	if s.scrollOffset != 2 {
		t.Errorf("offset = %d, want 2", s.scrollOffset)
	}
	if n := len(s.visible()); n != s.maxLines() {
		t.Errorf("visible = %d, want %d", n, s.maxLines())
	}
	s.input = func() MenuInput { return MenuInput{Back: true} }
	if err := s.Update(); !errors.Is(err, ErrCloseScreen) {
		t.Errorf("err = %v", err)
	}
}

func TestGameScreenTransitions(t *testing.T) {
	world := ecs.NewWorld()
	sm := ecs.NewStateMachine(systems.StatePlaying)
	ecs.InsertResource(world, sm)
	in := &systems.InputState{}
	ecs.InsertResource(world, in)
	s := NewGameScreen(config.DefaultButtonStyle(), world, nil)

	cases := []struct {
		set  func()
		want error
	}{
		{func() { *in = systems.InputState{} }, nil},
		{func() { *in = systems.InputState{Pause: true} }, ErrPause},
		{func() { *in = systems.InputState{ToggleInventory: true} }, ErrInventory},
		{func() { *in = systems.InputState{ToggleCharacter: true} }, ErrCharacter},
		{func() { *in = systems.InputState{Debug: true} }, ErrDebug},
	}
	for i, tc := range cases {
		tc.set()
		if err := s.Update(); !errors.Is(err, tc.want) {
			t.Errorf("case %d: err = %v, want %v", i, err, tc.want)
		}
	}

	*in = systems.InputState{}
	sm.Set(systems.StateGameOver)
	sm.Apply(world)
	if err := s.Update(); !errors.Is(err, ErrGameOver) {
		t.Errorf("err = %v, want ErrGameOver", err)
	}
}

func TestGameOverScreen(t *testing.T) {
	s := NewGameOverScreen(config.DefaultButtonStyle(), "Depth 3, level 4")
	s.input = func() MenuInput { return MenuInput{Confirm: true} }
	if err := s.Update(); !errors.Is(err, ErrNewGame) {
		t.Errorf("err = %v, want ErrNewGame", err)
	}
	s.input = func() MenuInput { return MenuInput{Back: true} }
	if err := s.Update(); !errors.Is(err, ErrMainMenu) {
		t.Errorf("err = %v, want ErrMainMenu", err)
	}
}
