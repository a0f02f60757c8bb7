package systems

import (
	"ebiten-arpg/data"
	"ebiten-arpg/ecs"
	"ebiten-arpg/generation"
)

// Game states held by the ecs.StateMachine resource
const (
	StateMainMenu  ecs.StateID = "main_menu"
	StatePlaying   ecs.StateID = "playing"
	StatePaused    ecs.StateID = "paused"
	StateInventory ecs.StateID = "inventory"
	StateCharacter ecs.StateID = "character"
	StateGameOver  ecs.StateID = "game_over"
)

// Player tag used for lookups by tag
const (
	TagPlayer = "player"
	TagEnemy  = "enemy"
	TagItem   = "item"
)

// playerID returns the current player entity or 0
func playerID(world *ecs.World) ecs.EntityID {
	return world.FirstWithTag(TagPlayer)
}

// catalog returns the asset catalog resource, nil when absent
func catalog(world *ecs.World) *data.Catalog {
	c, _ := ecs.Resource[data.Catalog](world)
	return c
}

// roomMap returns the level layout resource, nil when absent
func roomMap(world *ecs.World) *generation.RoomMap {
	m, _ := ecs.Resource[generation.RoomMap](world)
	return m
}

// setState asks the state machine to switch at the start of the next update
func setState(world *ecs.World, state ecs.StateID) {
	if sm, ok := ecs.Resource[ecs.StateMachine](world); ok {
		sm.Set(state)
	}
}
