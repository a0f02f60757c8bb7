package spawners

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"ebiten-arpg/components"
	"ebiten-arpg/data"
	"ebiten-arpg/ecs"
	"ebiten-arpg/logging"
	"ebiten-arpg/physics"
	"ebiten-arpg/systems"
)

// Lookup errors
var (
	ErrUnknownEnemy     = errors.New("unknown enemy definition")
	ErrUnknownItem      = errors.New("unknown item definition")
	ErrUnknownLootTable = errors.New("unknown loot table")
)

// Player defaults
const (
	PlayerInventorySize = 20
	PlayerRadius        = 0.3
	EnemyRadius         = 0.35
)

// PlayerAttributes are the starting attributes of a new character
var PlayerAttributes = components.AttributesComponent{
	Strength:  4,
	Agility:   3,
	Intellect: 3,
	Vitality:  3,
}

// Spawner manages the creation of game entities from catalog definitions
type Spawner struct {
	world   *ecs.World
	catalog *data.Catalog
	rng     *rand.Rand
	log     *logrus.Entry
}

// NewSpawner creates a spawner. seed drives loot rolls.
func NewSpawner(world *ecs.World, catalog *data.Catalog, seed int64) *Spawner {
	return &Spawner{
		world:   world,
		catalog: catalog,
		rng:     rand.New(rand.NewSource(seed)),
		log:     logging.For("spawner"),
	}
}

// Catalog returns the definitions the spawner builds from
func (s *Spawner) Catalog() *data.Catalog {
	return s.catalog
}

// CreatePlayer creates the player entity at the given position
func (s *Spawner) CreatePlayer(x, y, yaw float64) ecs.EntityID {
	playerEntity := s.world.CreateEntity()
	id := playerEntity.ID
	s.world.TagEntity(id, systems.TagPlayer)

	s.world.AddComponent(id, components.Player, &components.PlayerComponent{})
	s.world.AddComponent(id, components.Name, components.NewNameComponent("You"))
	s.world.AddComponent(id, components.Transform, &components.TransformComponent{X: x, Y: y, Yaw: yaw})
	s.world.AddComponent(id, components.Velocity, &components.VelocityComponent{})
	s.world.AddComponent(id, components.Collider, &components.ColliderComponent{Radius: PlayerRadius})

	// Maxima are derived from attributes below
	s.world.AddComponent(id, components.Health, &components.HealthComponent{Pool: components.NewPool(0, 1, 4)})
	s.world.AddComponent(id, components.Mana, &components.ManaComponent{Pool: components.NewPool(0, 2, 2)})
	s.world.AddComponent(id, components.Stamina, &components.StaminaComponent{Pool: components.NewPool(0, 12, 1)})

	attrs := PlayerAttributes
	s.world.AddComponent(id, components.Attributes, &attrs)
	s.world.AddComponent(id, components.Experience, &components.ExperienceComponent{Level: 1})
	s.world.AddComponent(id, components.Armor, &components.ArmorComponent{})
	s.world.AddComponent(id, components.Damage, &components.DamageComponent{Amount: 5, Kind: components.DamagePhysical})
	s.world.AddComponent(id, components.Combat, &components.CombatComponent{
		Cooldown:    0.5,
		Reach:       1.5,
		Arc:         math.Pi / 2,
		StaminaCost: 8,
		ManaCost:    12,
		SpellDamage: 14,
		SpellRange:  12,
		AimHeight:   systems.DefaultAimHeight,
	})
	s.world.AddComponent(id, components.Inventory, components.NewInventoryComponent(PlayerInventorySize))
	s.world.AddComponent(id, components.Equipment, components.NewEquipmentComponent())

	systems.RecomputeStats(s.world, id)
	fill(s.world, id)

	if pw, ok := ecs.Resource[physics.World](s.world); ok {
		pw.AddCharacter(id, x, y, PlayerRadius)
	}

	s.log.WithFields(logrus.Fields{"entity": id, "x": x, "y": y}).Debug("player created")
	return id
}

// CreateEnemy creates an enemy from its definition with one child entity per
// body part
func (s *Spawner) CreateEnemy(defID string, x, y float64) (ecs.EntityID, error) {
	def, ok := s.catalog.GetEnemy(defID)
	if !ok {
		return 0, fmt.Errorf("%q: %w", defID, ErrUnknownEnemy)
	}

	enemyEntity := s.world.CreateEntity()
	id := enemyEntity.ID
	s.world.TagEntity(id, systems.TagEnemy)

	s.world.AddComponent(id, components.Enemy, &components.EnemyComponent{Kind: def.ID, XP: def.XP})
	s.world.AddComponent(id, components.Name, components.NewNameComponent(def.Name))
	s.world.AddComponent(id, components.Transform, &components.TransformComponent{X: x, Y: y, Yaw: s.rng.Float64() * 2 * math.Pi})
	s.world.AddComponent(id, components.Velocity, &components.VelocityComponent{})
	s.world.AddComponent(id, components.Collider, &components.ColliderComponent{Radius: EnemyRadius})
	s.world.AddComponent(id, components.Health, &components.HealthComponent{Pool: components.NewPool(def.Health, 0, 0)})
	s.world.AddComponent(id, components.Armor, &components.ArmorComponent{Value: def.Armor})
	s.world.AddComponent(id, components.Damage, &components.DamageComponent{Amount: def.Damage, Kind: components.DamagePhysical})

	style := components.AttackMelee
	if def.Attack == string(components.AttackRanged) {
		style = components.AttackRanged
	}
	ai := components.NewAIComponent(style, def.Speed, def.SightRange, def.AttackRange, def.Cooldown)
	ai.ProjectileSpeed = def.ProjectileSpeed
	ai.CanFlee = def.CanFlee
	s.world.AddComponent(id, components.AI, ai)

	// Melee swings reach a little past the range the AI closes to
	s.world.AddComponent(id, components.Combat, &components.CombatComponent{
		Cooldown:  def.Cooldown,
		Reach:     def.AttackRange + 0.2,
		Arc:       math.Pi / 2,
		AimHeight: systems.DefaultAimHeight,
	})

	if v, ok := s.visual(def.Visual); ok {
		s.world.AddComponent(id, components.Visual, v)
	}
	if def.Loot != "" {
		s.world.AddComponent(id, components.Loot, &components.LootComponent{TableID: def.Loot})
	}

	for _, part := range def.BodyParts {
		child := s.world.CreateEntity()
		s.world.AddComponent(child.ID, components.BodyPart, &components.BodyPartComponent{
			Name:       part.Name,
			Multiplier: part.Multiplier,
			Height:     part.Height,
		})
		s.world.AddComponent(child.ID, components.Name, components.NewNameComponent(def.Name+" "+part.Name))
		s.world.SetParent(child.ID, id)
	}

	s.log.WithFields(logrus.Fields{"entity": id, "kind": def.ID, "x": x, "y": y}).Debug("enemy created")
	return id, nil
}

// visual builds a Visual component from a definition id
func (s *Spawner) visual(defID string) (*components.VisualComponent, bool) {
	v, ok := s.catalog.GetVisual(defID)
	if !ok {
		return nil, false
	}
	return &components.VisualComponent{
		DefID:  v.ID,
		Color:  v.RGBA(),
		Scale:  v.Scale,
		Height: v.Height,
	}, true
}

// fill restores every pool of id to its maximum
func fill(world *ecs.World, id ecs.EntityID) {
	for _, poolID := range []ecs.ComponentID{components.Health, components.Mana, components.Stamina} {
		if comp, ok := world.GetComponent(id, poolID); ok {
			if pool, ok := components.PoolOf(comp); ok {
				pool.Fill()
			}
		}
	}
}
