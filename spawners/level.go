package spawners

import (
	"github.com/sirupsen/logrus"

	"ebiten-arpg/ecs"
	"ebiten-arpg/generation"
)

// SpawnPopulation creates the enemies and floor loot planned for a map
func (s *Spawner) SpawnPopulation(pop generation.Population) (enemies []ecs.EntityID, items []ecs.EntityID) {
	for _, e := range pop.Enemies {
		x, y := generation.TileCenter(e.At)
		id, err := s.CreateEnemy(e.DefID, x, y)
		if err != nil {
			s.log.WithError(err).Warn("enemy skipped")
			continue
		}
		enemies = append(enemies, id)
	}
	for _, l := range pop.Loot {
		x, y := generation.TileCenter(l.At)
		items = append(items, s.DropLoot(s.world, l.TableID, x, y)...)
	}
	return enemies, items
}

// PopulateLevel plans and spawns the inhabitants of m. The plan is seeded
// from the map so a level always fills the same way.
func (s *Spawner) PopulateLevel(m *generation.RoomMap, opts generation.PopulationOptions) (enemies []ecs.EntityID, items []ecs.EntityID) {
	pop := generation.NewPopulator(s.catalog, m.Seed+int64(m.Depth)).Populate(m, opts)
	enemies, items = s.SpawnPopulation(pop)
	s.log.WithFields(logrus.Fields{
		"depth":   m.Depth,
		"enemies": len(enemies),
		"items":   len(items),
	}).Info("level populated")
	return enemies, items
}
