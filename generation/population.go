package generation

import (
	"math/rand"

	"ebiten-arpg/data"
)

// EnemySpawn is a planned enemy placement
type EnemySpawn struct {
	DefID string
	At    Point
}

// LootSpot is a planned floor drop, rolled from a loot table at spawn time
type LootSpot struct {
	TableID string
	At      Point
}

// Population is everything Populate decided to place on a map
type Population struct {
	Enemies []EnemySpawn
	Loot    []LootSpot
}

// PopulationOptions defines options for populating a map
type PopulationOptions struct {
	DensityFactor float64 // How many enemies per room (1.0 = standard)
	LootChance    float64 // Chance of a floor drop in each room
	LootTable     string  // Table used for floor drops
}

// DefaultPopulationOptions returns the standard options
func DefaultPopulationOptions() PopulationOptions {
	return PopulationOptions{DensityFactor: 1, LootChance: 0.4, LootTable: "floor"}
}

// ThemedPopulationOptions applies a level theme's density and loot chance to
// the defaults. A nil theme or zero values keep the defaults.
func ThemedPopulationOptions(theme *data.ThemeDef) PopulationOptions {
	opts := DefaultPopulationOptions()
	if theme == nil {
		return opts
	}
	if theme.DensityFactor > 0 {
		opts.DensityFactor = theme.DensityFactor
	}
	if theme.LootChance > 0 {
		opts.LootChance = theme.LootChance
	}
	return opts
}

// Populator handles picking enemies and drops for a map
type Populator struct {
	catalog *data.Catalog
	rng     *rand.Rand
}

// NewPopulator creates a new populator
func NewPopulator(catalog *data.Catalog, seed int64) *Populator {
	return &Populator{catalog: catalog, rng: rand.New(rand.NewSource(seed))}
}

// Populate chooses enemies per room by spawn weight and depth, and floor loot.
// The player's room stays empty.
func (p *Populator) Populate(m *RoomMap, opts PopulationOptions) Population {
	var pop Population

	candidates := p.eligibleEnemies(m.Depth)
	occupied := map[Point]bool{m.PlayerStart: true}
	if m.HasStairs {
		occupied[m.Stairs] = true
	}

	place := func(room Room) (Point, bool) {
		for i := 0; i < 10; i++ {
			pt, ok := RandomFloorInRoom(p.rng, m, room)
			if ok && !occupied[pt] {
				occupied[pt] = true
				return pt, true
			}
		}
		return Point{}, false
	}

	playerRoom := m.RoomAt(m.PlayerStart.X, m.PlayerStart.Y)
	for i, room := range m.Rooms {
		if i == playerRoom {
			continue
		}

		// Base of 1-2 enemies per room, more when deeper
		count := int(float64(1+p.rng.Intn(2)+m.Depth/3) * opts.DensityFactor)
		for n := 0; n < count; n++ {
			id := p.chooseEnemy(candidates)
			if id == "" {
				break
			}
			if pt, ok := place(room); ok {
				pop.Enemies = append(pop.Enemies, EnemySpawn{DefID: id, At: pt})
			}
		}

		if opts.LootTable == "" || p.rng.Float64() >= opts.LootChance {
			continue
		}
		if _, ok := p.catalog.GetLootTable(opts.LootTable); !ok {
			continue
		}
		if pt, ok := place(room); ok {
			pop.Loot = append(pop.Loot, LootSpot{TableID: opts.LootTable, At: pt})
		}
	}

	return pop
}

// enemyWeight stores an enemy definition with its spawn weight
type enemyWeight struct {
	ID     string
	Weight int
}

// eligibleEnemies returns weighted definitions allowed at depth
func (p *Populator) eligibleEnemies(depth int) []enemyWeight {
	var out []enemyWeight
	for _, def := range p.catalog.EnemiesForDepth(depth) {
		weight := def.SpawnWeight
		// Shallow enemies thin out on deep levels
		if depth-def.MinDepth > 2 {
			weight = max(1, weight/2)
		}
		out = append(out, enemyWeight{ID: def.ID, Weight: weight})
	}
	return out
}

// chooseEnemy selects an enemy based on weighted probability
func (p *Populator) chooseEnemy(candidates []enemyWeight) string {
	if len(candidates) == 0 {
		return ""
	}

	totalWeight := 0
	for _, c := range candidates {
		totalWeight += c.Weight
	}
	if totalWeight <= 0 {
		return candidates[p.rng.Intn(len(candidates))].ID
	}

	roll := p.rng.Intn(totalWeight)
	current := 0
	for _, c := range candidates {
		current += c.Weight
		if roll < current {
			return c.ID
		}
	}
	return candidates[0].ID
}
