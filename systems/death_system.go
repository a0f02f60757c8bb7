package systems

import (
	"fmt"

	"ebiten-arpg/components"
	"ebiten-arpg/ecs"
)

// CorpseDelay is how long a dead enemy stays before it is despawned
const CorpseDelay = 4.0

// LootDropper rolls a loot table and places the items at a position
type LootDropper interface {
	DropLoot(world *ecs.World, tableID string, x, y float64) []ecs.EntityID
}

// DeathSystem handles death events and their consequences
type DeathSystem struct {
	initialized bool
	loot        LootDropper
}

// NewDeathSystem creates a new death system. loot may be nil.
func NewDeathSystem(loot LootDropper) *DeathSystem {
	return &DeathSystem{loot: loot}
}

// Initialize sets up event listeners
func (s *DeathSystem) Initialize(world *ecs.World) {
	if s.initialized {
		return
	}

	world.GetEventManager().Subscribe(EventDeath, func(event ecs.Event) {
		s.handleDeath(world, event.(DeathEvent))
	})

	s.initialized = true
}

// handleDeath processes a death event
func (s *DeathSystem) handleDeath(world *ecs.World, event DeathEvent) {
	entityName := components.EntityName(world, event.EntityID)

	if world.HasComponent(event.EntityID, components.Player) {
		GetMessageLog().AddAlert("You die...")
		world.EmitEvent(GameOverEvent{PlayerID: event.EntityID})
		setState(world, StateGameOver)
		return
	}

	if event.KillerID != 0 {
		GetMessageLog().AddAlert(fmt.Sprintf("%s was killed by %s!", entityName, components.EntityName(world, event.KillerID)))
	} else {
		GetMessageLog().AddAlert(fmt.Sprintf("%s dies.", entityName))
	}

	pos, ok := ecs.Get[components.TransformComponent](world, event.EntityID, components.Transform)
	if loot, hasLoot := ecs.Get[components.LootComponent](world, event.EntityID, components.Loot); hasLoot && ok && s.loot != nil {
		s.loot.DropLoot(world, loot.TableID, pos.X, pos.Y)
	}

	// Body parts go with the body: RemoveEntity is recursive over children
	world.Commands().Insert(event.EntityID, components.Lifetime, &components.LifetimeComponent{Remaining: CorpseDelay})
	world.Commands().Remove(event.EntityID, components.Collider)
}

// Update implements ecs.System
func (s *DeathSystem) Update(world *ecs.World, dt float64) {}
