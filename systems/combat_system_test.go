package systems

import (
	"testing"

	"ebiten-arpg/components"
	"ebiten-arpg/ecs"
	"ebiten-arpg/physics"
)

func TestMeleeHitsOnlyInsideReachAndArc(t *testing.T) {
	world := newWorld(t)
	player := spawnPlayer(world, 1, 1, 0)
	front := spawnEnemy(world, 2, 1, 100)
	behind := spawnEnemy(world, 0, 1, 100)
	far := spawnEnemy(world, 4, 1, 100)
	damage := record[DamageEvent](world, EventDamage)

	hits := NewCombatSystem().MeleeAttack(world, player)

	if len(hits) != 1 || hits[0] != front {
		t.Fatalf("hits = %v, want only %d", hits, front)
	}
	// 5 base + 4 strength / 2
	if h := health(world, front); !near(h.Current, 93) {
		t.Errorf("front health = %v, want 93", h.Current)
	}
	if health(world, behind).Current != 100 || health(world, far).Current != 100 {
		t.Errorf("targets outside the swing were hurt")
	}
	if len(*damage) != 1 || (*damage)[0].Source != player {
		t.Errorf("damage events = %+v", *damage)
	}
}

func TestMeleePicksBodyPartByAimHeight(t *testing.T) {
	world := newWorld(t)
	player := spawnPlayer(world, 1, 1, 0)
	enemy := spawnEnemy(world, 2, 1, 100)
	addPart(world, enemy, "head", 2.0, 0.85)
	addPart(world, enemy, "torso", 1.0, 0.55)
	armor, _ := ecs.Get[components.ArmorComponent](world, enemy, components.Armor)
	armor.Value = 3
	damage := record[DamageEvent](world, EventDamage)
	combat := NewCombatSystem()

	combat.MeleeAttack(world, player)
	if got := (*damage)[0]; got.Part != "torso" || !near(got.Amount, 4) {
		t.Fatalf("default aim hit %q for %v, want torso for 4", got.Part, got.Amount)
	}

	c, _ := ecs.Get[components.CombatComponent](world, player, components.Combat)
	c.AimHeight = 0.9
	combat.MeleeAttack(world, player)
	if got := (*damage)[1]; got.Part != "head" || !near(got.Amount, 11) {
		t.Fatalf("high aim hit %q for %v, want head for 11", got.Part, got.Amount)
	}
}

func TestWeaponDamageAddsToMelee(t *testing.T) {
	world := newWorld(t)
	player := spawnPlayer(world, 1, 1, 0)
	enemy := spawnEnemy(world, 2, 1, 100)
	sword := give(t, world, player, "short_sword", 1)
	if err := Equip(world, player, sword); err != nil {
		t.Fatalf("equip: %v", err)
	}

	NewCombatSystem().MeleeAttack(world, player)
	if h := health(world, enemy); !near(h.Current, 87) {
		t.Errorf("health = %v, want 87 (7 + 6 sword)", h.Current)
	}
}

func TestArmorNeverReducesBelowMinimum(t *testing.T) {
	world := newWorld(t)
	enemy := spawnEnemy(world, 2, 1, 100)
	armor, _ := ecs.Get[components.ArmorComponent](world, enemy, components.Armor)
	armor.Value = 10

	got := ApplyDamage(world, enemy, 0, 2, "", components.DamagePhysical)
	if got != MinDamage {
		t.Errorf("dealt %v, want %v", got, MinDamage)
	}
	if h := health(world, enemy); !near(h.Current, 99) {
		t.Errorf("health = %v, want 99", h.Current)
	}
}

func TestDeathIsEmittedOnce(t *testing.T) {
	world := newWorld(t)
	player := spawnPlayer(world, 1, 1, 0)
	enemy := spawnEnemy(world, 2, 1, 5)
	deaths := record[DeathEvent](world, EventDeath)

	ApplyDamage(world, enemy, player, 10, "", components.DamagePhysical)
	if again := ApplyDamage(world, enemy, player, 10, "", components.DamagePhysical); again != 0 {
		t.Errorf("dead target took %v more damage", again)
	}

	if len(*deaths) != 1 {
		t.Fatalf("death events = %d, want 1", len(*deaths))
	}
	if d := (*deaths)[0]; d.EntityID != enemy || d.KillerID != player {
		t.Errorf("death event = %+v", d)
	}
	if !world.HasComponent(enemy, components.Disabled) {
		t.Errorf("dead enemy not disabled")
	}
}

func TestEnemiesDoNotHurtEachOther(t *testing.T) {
	world := newWorld(t)
	player := spawnPlayer(world, 1, 1, 0)
	a := spawnEnemy(world, 2, 1, 100)
	b := spawnEnemy(world, 3, 1, 100)

	cases := []struct {
		attacker, target ecs.EntityID
		want             bool
	}{
		{player, a, true},
		{a, player, true},
		{a, b, false},
		{player, player, false},
	}
	for _, tc := range cases {
		if got := hostile(world, tc.attacker, tc.target); got != tc.want {
			t.Errorf("hostile(%d, %d) = %v, want %v", tc.attacker, tc.target, got, tc.want)
		}
	}
}

func TestCastSpellRaycastsThroughPhysics(t *testing.T) {
	world := newWorld(t)
	pw := physics.NewWorld()
	ecs.InsertResource(world, pw)

	player := spawnPlayer(world, 1.5, 1.5, 0)
	near1 := spawnEnemy(world, 4.5, 1.5, 100)
	far1 := spawnEnemy(world, 7.5, 1.5, 100)
	pw.AddCharacter(player, 1.5, 1.5, 0.3)
	pw.AddCharacter(near1, 4.5, 1.5, 0.35)
	pw.AddCharacter(far1, 7.5, 1.5, 0.35)

	hit, ok := NewCombatSystem().CastSpell(world, player)
	if !ok || hit != near1 {
		t.Fatalf("spell hit %d (%v), want %d", hit, ok, near1)
	}
	// 12 spell damage + 2 intellect
	if h := health(world, near1); !near(h.Current, 86) {
		t.Errorf("health = %v, want 86", h.Current)
	}
	if health(world, far1).Current != 100 {
		t.Errorf("spell passed through the first target")
	}
}

func TestCombatCooldownTicks(t *testing.T) {
	world := newWorld(t)
	player := spawnPlayer(world, 1, 1, 0)
	c, _ := ecs.Get[components.CombatComponent](world, player, components.Combat)
	c.Ready = 0.5

	sys := NewCombatSystem()
	sys.Update(world, 0.3)
	if c.CanAttack() {
		t.Fatalf("ready too early: %v", c.Ready)
	}
	sys.Update(world, 0.3)
	if !c.CanAttack() || c.Ready != 0 {
		t.Errorf("ready = %v, want 0", c.Ready)
	}
}

func TestProjectileHitsTarget(t *testing.T) {
	world := newWorld(t)
	player := spawnPlayer(world, 2.5, 1.5, 0)
	enemy := spawnEnemy(world, 6, 1.5, 100)

	SpawnProjectile(world, enemy, 1.5, 1.5, 1, 0, 6, 9)
	world.ApplyCommands()
	projectiles := world.Query(components.Projectile)
	if len(projectiles) != 1 {
		t.Fatalf("projectiles = %d, want 1", len(projectiles))
	}

	NewProjectileSystem().Update(world, 0.1)
	world.ApplyCommands()

	if h := health(world, player); !near(h.Current, 91) {
		t.Errorf("player health = %v, want 91", h.Current)
	}
	if world.Exists(projectiles[0]) {
		t.Errorf("projectile survived its hit")
	}
}

func TestProjectileStopsAtWalls(t *testing.T) {
	world := newWorld(t)
	ecs.InsertResource(world, openMap(6, 3))
	enemy := spawnEnemy(world, 1.5, 1.5, 100)

	SpawnProjectile(world, enemy, 4.5, 1.5, 1, 0, 6, 9)
	world.ApplyCommands()
	id := world.Query(components.Projectile)[0]

	sys := NewProjectileSystem()
	for i := 0; i < 5; i++ {
		sys.Update(world, 0.1)
		world.ApplyCommands()
	}
	if world.Exists(id) {
		t.Errorf("projectile flew through the wall")
	}
}
