package spawners

import (
	"fmt"
	"math"

	"ebiten-arpg/components"
	"ebiten-arpg/data"
	"ebiten-arpg/ecs"
	"ebiten-arpg/generation"
)

// scatterRadius spreads several drops around the spot they fell on
const scatterRadius = 0.3

// Drop is one rolled loot result
type Drop struct {
	DefID string
	Count int
}

// RollLoot rolls tableID Rolls times by weight
func (s *Spawner) RollLoot(tableID string) ([]Drop, error) {
	table, ok := s.catalog.GetLootTable(tableID)
	if !ok {
		return nil, fmt.Errorf("%q: %w", tableID, ErrUnknownLootTable)
	}
	total := table.TotalWeight()
	if total <= 0 {
		return nil, nil
	}

	rolls := max(table.Rolls, 1)
	drops := make([]Drop, 0, rolls)
	for i := 0; i < rolls; i++ {
		entry := pickEntry(table, s.rng.Intn(total))

		// Determine how many of this item to create
		count := max(entry.Min, 1)
		if entry.Max > count {
			count += s.rng.Intn(entry.Max - count + 1)
		}
		drops = append(drops, Drop{DefID: entry.Item, Count: count})
	}
	return drops, nil
}

// pickEntry walks the cumulative weights to the entry holding roll
func pickEntry(table *data.LootTableDef, roll int) data.LootEntry {
	current := 0
	for _, e := range table.Entries {
		current += e.Weight
		if roll < current {
			return e
		}
	}
	return table.Entries[len(table.Entries)-1]
}

// DropLoot rolls tableID and places the results on the floor around x, y.
// It satisfies systems.LootDropper.
func (s *Spawner) DropLoot(world *ecs.World, tableID string, x, y float64) []ecs.EntityID {
	drops, err := s.RollLoot(tableID)
	if err != nil {
		s.log.WithError(err).Warn("loot roll failed")
		return nil
	}

	m, _ := ecs.Resource[generation.RoomMap](world)
	var ids []ecs.EntityID
	for i, d := range drops {
		px, py := x, y
		if len(drops) > 1 {
			a := 2 * math.Pi * float64(i) / float64(len(drops))
			px += math.Cos(a) * scatterRadius
			py += math.Sin(a) * scatterRadius
			if m != nil && m.IsWallAt(px, py) {
				px, py = x, y
			}
		}
		id, err := s.createItem(world, d.DefID, d.Count)
		if err != nil {
			s.log.WithError(err).Warn("loot item skipped")
			continue
		}
		world.AddComponent(id, components.Transform, &components.TransformComponent{X: px, Y: py})
		ids = append(ids, id)
	}
	return ids
}
