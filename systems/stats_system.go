package systems

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"ebiten-arpg/components"
	"ebiten-arpg/data"
	"ebiten-arpg/ecs"
	"ebiten-arpg/logging"
)

// Derived stat formulas
const (
	BaseHealth        = 80.0
	HealthPerVitality = 10.0
	BaseMana          = 30.0
	ManaPerIntellect  = 8.0
	BaseStamina       = 60.0
	StaminaPerAgility = 6.0
	PointsPerLevel    = 3
)

// Attribute errors
var (
	ErrNoPoints         = errors.New("no attribute points to spend")
	ErrUnknownAttribute = errors.New("unknown attribute")
)

// fallbackLevels is used when no catalog is loaded
var fallbackLevels = data.LevelTable{Thresholds: []int{0, 100, 250, 450, 700}}

// StatsSystem regenerates pools and handles experience and derived stats
type StatsSystem struct {
	initialized bool
}

// NewStatsSystem creates a new stats system
func NewStatsSystem() *StatsSystem {
	return &StatsSystem{}
}

// Initialize sets up event listeners
func (s *StatsSystem) Initialize(world *ecs.World) {
	if s.initialized {
		return
	}

	world.GetEventManager().Subscribe(EventDeath, func(event ecs.Event) {
		death := event.(DeathEvent)
		enemy, ok := ecs.Get[components.EnemyComponent](world, death.EntityID, components.Enemy)
		if !ok || enemy.XP <= 0 || death.KillerID == 0 {
			return
		}
		if !world.HasComponent(death.KillerID, components.Experience) {
			return
		}
		GetMessageLog().AddProgress(fmt.Sprintf("You gain %d experience.", enemy.XP))
		GainXP(world, death.KillerID, enemy.XP)
	})

	recompute := func(id ecs.EntityID) { RecomputeStats(world, id) }
	world.GetEventManager().Subscribe(EventEquipItem, func(event ecs.Event) {
		recompute(event.(EquipItemEvent).EntityID)
	})
	world.GetEventManager().Subscribe(EventUnequipItem, func(event ecs.Event) {
		recompute(event.(UnequipItemEvent).EntityID)
	})

	s.initialized = true
}

// Update regenerates health, mana and stamina of every living entity
func (s *StatsSystem) Update(world *ecs.World, dt float64) {
	for _, poolID := range []ecs.ComponentID{components.Health, components.Mana, components.Stamina} {
		for _, id := range world.Query(poolID) {
			if world.HasComponent(id, components.Disabled) {
				continue
			}
			comp, _ := world.GetComponent(id, poolID)
			if pool, ok := components.PoolOf(comp); ok {
				pool.Regenerate(dt)
			}
		}
	}
}

// levelTable returns the catalog's level table
func levelTable(world *ecs.World) *data.LevelTable {
	if c := catalog(world); c != nil && len(c.Levels.Thresholds) > 0 {
		return &c.Levels
	}
	return &fallbackLevels
}

// GainXP adds experience and applies every level reached. It returns the
// number of levels gained.
func GainXP(world *ecs.World, id ecs.EntityID, amount int) int {
	exp, ok := ecs.Get[components.ExperienceComponent](world, id, components.Experience)
	if !ok || amount <= 0 {
		return 0
	}
	table := levelTable(world)

	exp.XP += amount
	newLevel := table.LevelFor(exp.XP)
	gained := 0
	for exp.Level < newLevel {
		exp.Level++
		gained++
		if attrs, ok := ecs.Get[components.AttributesComponent](world, id, components.Attributes); ok {
			attrs.Unspent += PointsPerLevel
		}
		GetMessageLog().AddProgress(fmt.Sprintf("Welcome to level %d!", exp.Level))
		world.EmitEvent(LevelUpEvent{EntityID: id, Level: exp.Level})
	}
	if gained == 0 {
		return 0
	}

	RecomputeStats(world, id)
	fillPools(world, id)
	logging.For("stats").WithFields(logrus.Fields{
		"entity": id,
		"level":  exp.Level,
		"xp":     exp.XP,
	}).Info("level up")
	return gained
}

// SpendAttributePoint moves one unspent point into attr
func SpendAttributePoint(world *ecs.World, id ecs.EntityID, attr string) error {
	attrs, ok := ecs.Get[components.AttributesComponent](world, id, components.Attributes)
	if !ok || attrs.Unspent <= 0 {
		return ErrNoPoints
	}
	if !attrs.Add(attr, 1) {
		return fmt.Errorf("%q: %w", attr, ErrUnknownAttribute)
	}
	attrs.Unspent--
	RecomputeStats(world, id)
	return nil
}

// RecomputeStats derives pool maxima and armor from effective attributes and
// equipment. Current values are clamped to the new maxima.
func RecomputeStats(world *ecs.World, id ecs.EntityID) {
	if !world.HasComponent(id, components.Attributes) {
		return
	}
	attrs := EffectiveAttributes(world, id)

	if h, ok := ecs.Get[components.HealthComponent](world, id, components.Health); ok {
		h.SetMax(BaseHealth + HealthPerVitality*float64(attrs.Vitality))
	}
	if m, ok := ecs.Get[components.ManaComponent](world, id, components.Mana); ok {
		m.SetMax(BaseMana + ManaPerIntellect*float64(attrs.Intellect))
	}
	if st, ok := ecs.Get[components.StaminaComponent](world, id, components.Stamina); ok {
		st.SetMax(BaseStamina + StaminaPerAgility*float64(attrs.Agility))
	}
	if armor, ok := ecs.Get[components.ArmorComponent](world, id, components.Armor); ok {
		armor.Value = EquipmentTotals(world, id).Armor
	}
}

func fillPools(world *ecs.World, id ecs.EntityID) {
	for _, poolID := range []ecs.ComponentID{components.Health, components.Mana, components.Stamina} {
		if comp, ok := world.GetComponent(id, poolID); ok {
			if pool, ok := components.PoolOf(comp); ok {
				pool.Fill()
			}
		}
	}
}
