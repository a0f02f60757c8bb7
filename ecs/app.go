package ecs

import "reflect"

// Stage orders systems within a frame.
type Stage int

const (
	PreUpdate Stage = iota
	Update
	PostUpdate
	stageCount
)

// Plugin bundles components, resources, events and systems.
type Plugin interface {
	Build(app *App)
}

type scheduled struct {
	system     System
	conditions []Condition
}

// App owns the world and the frame schedule.
type App struct {
	World   *World
	plugins map[reflect.Type]bool
	startup []System
	stages  [stageCount][]scheduled
	started bool
}

// NewApp creates an app with an empty world.
func NewApp() *App {
	return &App{
		World:   NewWorld(),
		plugins: make(map[reflect.Type]bool),
	}
}

// AddPlugin builds p once. Adding a second plugin of the same type is a no-op.
func (a *App) AddPlugin(p Plugin) *App {
	key := reflect.TypeOf(p)
	if a.plugins[key] {
		return a
	}
	a.plugins[key] = true
	p.Build(a)
	return a
}

// HasPlugin reports whether a plugin of p's type was built.
func (a *App) HasPlugin(p Plugin) bool {
	return a.plugins[reflect.TypeOf(p)]
}

// AddSystem schedules system in stage, gated by all conditions.
func (a *App) AddSystem(stage Stage, system System, conditions ...Condition) *App {
	if init, ok := system.(Initializer); ok {
		init.Initialize(a.World)
	}
	a.stages[stage] = append(a.stages[stage], scheduled{system: system, conditions: conditions})
	return a
}

// AddStartupSystem schedules a system that runs once on Startup.
func (a *App) AddStartupSystem(system System) *App {
	a.startup = append(a.startup, system)
	return a
}

// Startup runs startup systems once, then applies their commands and events.
func (a *App) Startup() {
	if a.started {
		return
	}
	a.started = true
	for _, system := range a.startup {
		system.Update(a.World, 0)
	}
	a.World.ApplyCommands()
	a.World.FlushEvents()
}

// Update advances one frame: pending state transitions first, then each
// stage followed by its commands and queued events.
func (a *App) Update(dt float64) {
	if !a.started {
		a.Startup()
	}
	if sm, ok := Resource[StateMachine](a.World); ok {
		sm.Apply(a.World)
	}
	for stage := Stage(0); stage < stageCount; stage++ {
		for _, entry := range a.stages[stage] {
			if !runnable(a.World, entry.conditions) {
				continue
			}
			entry.system.Update(a.World, dt)
		}
		a.World.ApplyCommands()
		a.World.FlushEvents()
	}
}

func runnable(world *World, conditions []Condition) bool {
	for _, cond := range conditions {
		if !cond(world) {
			return false
		}
	}
	return true
}
