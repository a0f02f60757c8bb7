package systems

import (
	"ebiten-arpg/ecs"
)

var playing = ecs.InState(StatePlaying)

// CorePlugin installs the state machine and entity lifetimes
type CorePlugin struct {
	Initial ecs.StateID
}

// Build implements ecs.Plugin
func (p CorePlugin) Build(app *ecs.App) {
	if !ecs.HasResource[ecs.StateMachine](app.World) {
		initial := p.Initial
		if initial == "" {
			initial = StateMainMenu
		}
		ecs.InsertResource(app.World, ecs.NewStateMachine(initial))
	}
	if !ecs.HasResource[InputState](app.World) {
		ecs.InsertResource(app.World, &InputState{})
	}
	app.AddSystem(ecs.PostUpdate, &LifetimeSystem{}, playing)
}

// PlayerPlugin turns input into player movement, attacks and descents
type PlayerPlugin struct{}

// Build implements ecs.Plugin
func (PlayerPlugin) Build(app *ecs.App) {
	app.AddSystem(ecs.PreUpdate, NewPlayerControlSystem(), playing)
	app.AddSystem(ecs.PreUpdate, &StairsSystem{}, playing)
}

// CombatPlugin resolves attacks, projectiles and deaths
type CombatPlugin struct {
	Loot LootDropper
}

// Build implements ecs.Plugin
func (p CombatPlugin) Build(app *ecs.App) {
	app.AddSystem(ecs.Update, NewCombatSystem(), playing)
	app.AddSystem(ecs.Update, NewProjectileSystem(), playing)
	app.AddSystem(ecs.PostUpdate, NewDeathSystem(p.Loot))
}

// EnemyPlugin runs the enemy state machine
type EnemyPlugin struct{}

// Build implements ecs.Plugin
func (EnemyPlugin) Build(app *ecs.App) {
	app.AddSystem(ecs.PreUpdate, NewEnemyAISystem(), playing)
}

// StatsPlugin regenerates pools and handles experience
type StatsPlugin struct{}

// Build implements ecs.Plugin
func (StatsPlugin) Build(app *ecs.App) {
	app.AddSystem(ecs.PostUpdate, NewStatsSystem(), playing)
}

// InventoryPlugin picks up items
type InventoryPlugin struct{}

// Build implements ecs.Plugin
func (InventoryPlugin) Build(app *ecs.App) {
	app.AddSystem(ecs.Update, NewInventorySystem(), playing)
}

// AudioPlugin plays cues for game events. A player that also plays music
// has it running only while the game is in StatePlaying.
type AudioPlugin struct {
	Player AudioPlayer
}

// Build implements ecs.Plugin
func (p AudioPlugin) Build(app *ecs.App) {
	app.AddSystem(ecs.PostUpdate, NewAudioCueSystem(p.Player))

	music, ok := p.Player.(MusicPlayer)
	if !ok {
		return
	}
	sm, ok := ecs.Resource[ecs.StateMachine](app.World)
	if !ok {
		return
	}
	sm.OnEnter(StatePlaying, func(*ecs.World) { music.PlayMusic() })
	sm.OnExit(StatePlaying, func(*ecs.World) { music.PauseMusic() })
}
