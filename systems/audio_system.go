package systems

import (
	"ebiten-arpg/components"
	"ebiten-arpg/ecs"
)

// Cue names looked up in the audio definitions
const (
	CueSwing      = "swing"
	CueHit        = "hit"
	CueCast       = "cast"
	CueDeath      = "death"
	CuePickup     = "pickup"
	CueLevelUp    = "levelup"
	CuePlayerHurt = "player_hurt"
	CueEquip      = "equip"
	CueUIClick    = "ui_click"
)

// AudioPlayer plays named sound cues
type AudioPlayer interface {
	Play(cue string)
}

// MusicPlayer is an AudioPlayer that also loops background music
type MusicPlayer interface {
	PlayMusic()
	PauseMusic()
}

// cueEvents are the events AudioCueSystem listens to
var cueEvents = []ecs.EventType{
	EventAttack,
	EventCast,
	EventProjectileFired,
	EventDamage,
	EventDeath,
	EventItemPickup,
	EventLevelUp,
	EventEquipItem,
	EventUIClick,
}

// CueFor maps a game event to the cue it should play
func CueFor(world *ecs.World, event ecs.Event) (string, bool) {
	switch e := event.(type) {
	case AttackEvent:
		return CueSwing, true
	case CastEvent, ProjectileFiredEvent:
		return CueCast, true
	case DamageEvent:
		if world.HasComponent(e.Target, components.Player) {
			return CuePlayerHurt, true
		}
		return CueHit, true
	case DeathEvent:
		return CueDeath, true
	case ItemPickupEvent:
		return CuePickup, true
	case LevelUpEvent:
		return CueLevelUp, true
	case EquipItemEvent:
		return CueEquip, true
	case UIClickEvent:
		return CueUIClick, true
	}
	return "", false
}

// AudioCueSystem turns game events into sound cues
type AudioCueSystem struct {
	initialized bool
	player      AudioPlayer
}

// NewAudioCueSystem creates a cue system playing through player
func NewAudioCueSystem(player AudioPlayer) *AudioCueSystem {
	return &AudioCueSystem{player: player}
}

// Initialize sets up event listeners
func (s *AudioCueSystem) Initialize(world *ecs.World) {
	if s.initialized || s.player == nil {
		return
	}
	for _, et := range cueEvents {
		world.GetEventManager().Subscribe(et, func(event ecs.Event) {
			if cue, ok := CueFor(world, event); ok {
				s.player.Play(cue)
			}
		})
	}
	s.initialized = true
}

// Update implements ecs.System
func (s *AudioCueSystem) Update(world *ecs.World, dt float64) {}
