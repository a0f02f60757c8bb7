package systems

import (
	"math"
	"testing"

	"ebiten-arpg/assets"
	"ebiten-arpg/components"
	"ebiten-arpg/data"
	"ebiten-arpg/ecs"
	"ebiten-arpg/generation"
)

func newWorld(t *testing.T) *ecs.World {
	t.Helper()
	c, err := data.LoadCatalog(assets.FS(), assets.DefsDir)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	world := ecs.NewWorld()
	ecs.InsertResource(world, c)
	GetMessageLog().Clear()
	return world
}

// openMap returns a w x h map with a solid border and open floor inside
func openMap(w, h int) *generation.RoomMap {
	m := generation.NewRoomMap(w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			m.SetTile(x, y, generation.TileFloor)
		}
	}
	m.Depth = 1
	return m
}

func spawnPlayer(world *ecs.World, x, y, yaw float64) ecs.EntityID {
	e := world.CreateEntity()
	id := e.ID
	world.TagEntity(id, TagPlayer)
	world.AddComponent(id, components.Player, &components.PlayerComponent{})
	world.AddComponent(id, components.Name, components.NewNameComponent("Hero"))
	world.AddComponent(id, components.Transform, &components.TransformComponent{X: x, Y: y, Yaw: yaw})
	world.AddComponent(id, components.Velocity, &components.VelocityComponent{})
	world.AddComponent(id, components.Collider, &components.ColliderComponent{Radius: 0.3})
	world.AddComponent(id, components.Health, &components.HealthComponent{Pool: components.NewPool(100, 0, 0)})
	world.AddComponent(id, components.Mana, &components.ManaComponent{Pool: components.NewPool(50, 0, 0)})
	world.AddComponent(id, components.Stamina, &components.StaminaComponent{Pool: components.NewPool(60, 0, 0)})
	world.AddComponent(id, components.Damage, &components.DamageComponent{Amount: 5, Kind: components.DamagePhysical})
	world.AddComponent(id, components.Attributes, &components.AttributesComponent{Strength: 4, Agility: 2, Intellect: 2, Vitality: 2})
	world.AddComponent(id, components.Experience, &components.ExperienceComponent{Level: 1})
	world.AddComponent(id, components.Armor, &components.ArmorComponent{})
	world.AddComponent(id, components.Combat, &components.CombatComponent{
		Cooldown:    0.5,
		Reach:       1.5,
		Arc:         math.Pi / 2,
		StaminaCost: 5,
		ManaCost:    10,
		SpellDamage: 12,
		SpellRange:  10,
	})
	world.AddComponent(id, components.Inventory, components.NewInventoryComponent(4))
	world.AddComponent(id, components.Equipment, components.NewEquipmentComponent())
	return id
}

func spawnEnemy(world *ecs.World, x, y, hp float64) ecs.EntityID {
	e := world.CreateEntity()
	id := e.ID
	world.TagEntity(id, TagEnemy)
	world.AddComponent(id, components.Enemy, &components.EnemyComponent{Kind: "skeleton", XP: 35})
	world.AddComponent(id, components.Name, components.NewNameComponent("Skeleton"))
	world.AddComponent(id, components.Transform, &components.TransformComponent{X: x, Y: y})
	world.AddComponent(id, components.Velocity, &components.VelocityComponent{})
	world.AddComponent(id, components.Collider, &components.ColliderComponent{Radius: 0.35})
	world.AddComponent(id, components.Health, &components.HealthComponent{Pool: components.NewPool(hp, 0, 0)})
	world.AddComponent(id, components.Armor, &components.ArmorComponent{})
	world.AddComponent(id, components.Damage, &components.DamageComponent{Amount: 8})
	world.AddComponent(id, components.AI, components.NewAIComponent(components.AttackMelee, 2, 9, 1.3, 1.2))
	return id
}

func addPart(world *ecs.World, owner ecs.EntityID, name string, mult, height float64) ecs.EntityID {
	e := world.CreateEntity()
	world.AddComponent(e.ID, components.BodyPart, &components.BodyPartComponent{Name: name, Multiplier: mult, Height: height})
	world.SetParent(e.ID, owner)
	return e.ID
}

// spawnItem creates an item from the catalog, on the ground when onGround is set
func spawnItem(t *testing.T, world *ecs.World, defID string, count int, x, y float64, onGround bool) ecs.EntityID {
	t.Helper()
	def, ok := catalog(world).GetItem(defID)
	if !ok {
		t.Fatalf("unknown item %q", defID)
	}
	e := world.CreateEntity()
	world.TagEntity(e.ID, TagItem)
	world.AddComponent(e.ID, components.Item, &components.ItemComponent{DefID: def.ID, Kind: components.ItemKind(def.Kind), Count: count})
	world.AddComponent(e.ID, components.Name, components.NewNameComponent(def.Name))
	if onGround {
		world.AddComponent(e.ID, components.Transform, &components.TransformComponent{X: x, Y: y})
	}
	return e.ID
}

// give puts an item straight into the entity's inventory
func give(t *testing.T, world *ecs.World, owner ecs.EntityID, defID string, count int) ecs.EntityID {
	t.Helper()
	item := spawnItem(t, world, defID, count, 0, 0, false)
	inv, _ := ecs.Get[components.InventoryComponent](world, owner, components.Inventory)
	if _, ok := inv.Add(item); !ok {
		t.Fatalf("inventory full giving %s", defID)
	}
	return item
}

// record collects every event of the given type
func record[E ecs.Event](world *ecs.World, et ecs.EventType) *[]E {
	var got []E
	world.GetEventManager().Subscribe(et, func(event ecs.Event) {
		got = append(got, event.(E))
	})
	return &got
}

func health(world *ecs.World, id ecs.EntityID) *components.HealthComponent {
	h, _ := ecs.Get[components.HealthComponent](world, id, components.Health)
	return h
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
