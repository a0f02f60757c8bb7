package ecs

// StateID names an application state such as "menu" or "playing".
type StateID string

// StateMachine is a world resource holding the current application state.
// Transitions requested with Set take effect on the next Apply.
type StateMachine struct {
	current StateID
	next    StateID
	pending bool
	onEnter map[StateID][]func(*World)
	onExit  map[StateID][]func(*World)
}

// NewStateMachine creates a state machine starting in initial. OnEnter hooks
// for the initial state do not run.
func NewStateMachine(initial StateID) *StateMachine {
	return &StateMachine{
		current: initial,
		onEnter: make(map[StateID][]func(*World)),
		onExit:  make(map[StateID][]func(*World)),
	}
}

// Current returns the active state.
func (s *StateMachine) Current() StateID {
	return s.current
}

// Set schedules a transition.
func (s *StateMachine) Set(next StateID) {
	s.next = next
	s.pending = true
}

// OnEnter registers a hook run when state becomes active.
func (s *StateMachine) OnEnter(state StateID, hook func(*World)) {
	s.onEnter[state] = append(s.onEnter[state], hook)
}

// OnExit registers a hook run when state stops being active.
func (s *StateMachine) OnExit(state StateID, hook func(*World)) {
	s.onExit[state] = append(s.onExit[state], hook)
}

// Apply performs a pending transition. It returns true if the state changed.
func (s *StateMachine) Apply(world *World) bool {
	if !s.pending {
		return false
	}
	s.pending = false
	if s.next == s.current {
		return false
	}
	prev := s.current
	s.current = s.next
	for _, hook := range s.onExit[prev] {
		hook(world)
	}
	for _, hook := range s.onEnter[s.current] {
		hook(world)
	}
	return true
}

// Condition gates a scheduled system.
type Condition func(world *World) bool

// InState runs a system only while the world's StateMachine is in state.
func InState(state StateID) Condition {
	return func(world *World) bool {
		sm, ok := Resource[StateMachine](world)
		return ok && sm.Current() == state
	}
}

// ResourceExists runs a system only once a resource of type T is inserted.
func ResourceExists[T any]() Condition {
	return func(world *World) bool {
		return HasResource[T](world)
	}
}
