package systems

import (
	"math"
	"testing"

	"ebiten-arpg/components"
	"ebiten-arpg/ecs"
	"ebiten-arpg/generation"
)

func aiOf(world *ecs.World, id ecs.EntityID) *components.AIComponent {
	ai, _ := ecs.Get[components.AIComponent](world, id, components.AI)
	return ai
}

func TestEnemyChasesThenAttacks(t *testing.T) {
	world := newWorld(t)
	ecs.InsertResource(world, openMap(12, 6))
	player := spawnPlayer(world, 6.5, 2.5, 0)
	enemy := spawnEnemy(world, 2.5, 2.5, 100)
	attacks := record[AttackEvent](world, EventAttack)
	sys := NewEnemyAISystem()

	sys.Update(world, 0.1)
	ai := aiOf(world, enemy)
	if ai.State != components.StateChase || ai.Target != player {
		t.Fatalf("state = %s target = %d, want chase %d", ai.State, ai.Target, player)
	}
	vel, _ := ecs.Get[components.VelocityComponent](world, enemy, components.Velocity)
	if vel.X <= 0 || math.Abs(vel.Y) > 1e-9 {
		t.Errorf("chase velocity = (%v, %v), want straight at the player", vel.X, vel.Y)
	}

	// Close the gap by hand
	pos, _ := ecs.Get[components.TransformComponent](world, enemy, components.Transform)
	pos.X = 5.5
	sys.Update(world, 0.1)
	if ai.State != components.StateAttack {
		t.Fatalf("state = %s, want attack", ai.State)
	}
	if vel.X != 0 || vel.Y != 0 {
		t.Errorf("melee enemy should stand still while attacking")
	}

	sys.Update(world, 0.1)
	if len(*attacks) != 1 || (*attacks)[0].Attacker != enemy {
		t.Fatalf("attack events = %+v", *attacks)
	}
	if !near(ai.CooldownLeft, ai.AttackCooldown) {
		t.Errorf("cooldown = %v, want %v", ai.CooldownLeft, ai.AttackCooldown)
	}

	// No second swing until the cooldown runs out
	sys.Update(world, 0.1)
	if len(*attacks) != 1 {
		t.Errorf("attacked during cooldown")
	}
}

func TestEnemyAttackHysteresis(t *testing.T) {
	world := newWorld(t)
	ecs.InsertResource(world, openMap(12, 6))
	spawnPlayer(world, 6.5, 2.5, 0)
	enemy := spawnEnemy(world, 5.5, 2.5, 100)
	sys := NewEnemyAISystem()
	sys.Update(world, 0.1)
	sys.Update(world, 0.1)
	ai := aiOf(world, enemy)
	if ai.State != components.StateAttack {
		t.Fatalf("state = %s, want attack", ai.State)
	}

	// Slightly past AttackRange but inside the hysteresis band
	pos, _ := ecs.Get[components.TransformComponent](world, enemy, components.Transform)
	pos.X = 6.5 - ai.AttackRange*1.05
	sys.Update(world, 0.1)
	if ai.State != components.StateAttack {
		t.Errorf("left attack inside the hysteresis band")
	}

	pos.X = 6.5 - ai.AttackRange*1.5
	sys.Update(world, 0.1)
	if ai.State != components.StateChase {
		t.Errorf("state = %s, want chase", ai.State)
	}
}

func TestEnemySearchesLastKnownPositionThenIdles(t *testing.T) {
	world := newWorld(t)
	ecs.InsertResource(world, openMap(50, 6))
	player := spawnPlayer(world, 6.5, 2.5, 0)
	enemy := spawnEnemy(world, 2.5, 2.5, 100)
	sys := NewEnemyAISystem()

	sys.Update(world, 0.1)
	ai := aiOf(world, enemy)
	if ai.State != components.StateChase {
		t.Fatalf("state = %s, want chase", ai.State)
	}

	// Out of sight range
	ppos, _ := ecs.Get[components.TransformComponent](world, player, components.Transform)
	ppos.X = 40.5
	sys.Update(world, 1)
	if ai.State != components.StateSearch {
		t.Fatalf("state = %s, want search", ai.State)
	}
	if !ai.HasLastKnown || ai.LastKnownX != 6.5 {
		t.Errorf("last known = (%v, %v), want (6.5, 2.5)", ai.LastKnownX, ai.LastKnownY)
	}

	for i := 0; i < 5 && ai.State == components.StateSearch; i++ {
		sys.Update(world, 1)
	}
	if ai.State != components.StateIdle {
		t.Errorf("state = %s after search timeout, want idle", ai.State)
	}
}

func TestEnemyWithoutLineOfSightStaysIdle(t *testing.T) {
	world := newWorld(t)
	m := openMap(12, 6)
	for y := 0; y < 6; y++ {
		m.SetTile(5, y, generation.TileWall)
	}
	ecs.InsertResource(world, m)
	spawnPlayer(world, 8.5, 2.5, 0)
	enemy := spawnEnemy(world, 2.5, 2.5, 100)

	NewEnemyAISystem().Update(world, 0.1)
	if ai := aiOf(world, enemy); ai.State != components.StateIdle || ai.Target != 0 {
		t.Errorf("state = %s target = %d through a wall", ai.State, ai.Target)
	}
}

func TestEnemyFleesAtLowHealth(t *testing.T) {
	world := newWorld(t)
	ecs.InsertResource(world, openMap(12, 6))
	spawnPlayer(world, 6.5, 2.5, 0)
	enemy := spawnEnemy(world, 4.5, 2.5, 100)
	aiOf(world, enemy).CanFlee = true
	health(world, enemy).Current = 10

	NewEnemyAISystem().Update(world, 0.1)
	ai := aiOf(world, enemy)
	if ai.State != components.StateFlee {
		t.Fatalf("state = %s, want flee", ai.State)
	}
	vel, _ := ecs.Get[components.VelocityComponent](world, enemy, components.Velocity)
	if vel.X >= 0 {
		t.Errorf("flee velocity x = %v, want away from the player", vel.X)
	}
}

func TestDisabledEnemyIsDead(t *testing.T) {
	world := newWorld(t)
	spawnPlayer(world, 6.5, 2.5, 0)
	enemy := spawnEnemy(world, 4.5, 2.5, 100)
	changes := record[EnemyStateEvent](world, EventEnemyState)
	sys := NewEnemyAISystem()
	sys.Update(world, 0.1)

	world.AddComponent(enemy, components.Disabled, &components.DisabledComponent{Reason: "dead"})
	sys.Update(world, 0.1)

	ai := aiOf(world, enemy)
	if ai.State != components.StateDead {
		t.Fatalf("state = %s, want dead", ai.State)
	}
	last := (*changes)[len(*changes)-1]
	if last.To != components.StateDead || last.EntityID != enemy {
		t.Errorf("last state event = %+v", last)
	}
	vel, _ := ecs.Get[components.VelocityComponent](world, enemy, components.Velocity)
	if vel.X != 0 || vel.Y != 0 {
		t.Errorf("dead enemy still moving")
	}
}

func TestStuckEnemySidestepsThenGivesUp(t *testing.T) {
	world := newWorld(t)
	ecs.InsertResource(world, openMap(12, 6))
	spawnPlayer(world, 7.5, 2.5, 0)
	enemy := spawnEnemy(world, 2.5, 2.5, 100)
	changes := record[EnemyStateEvent](world, EventEnemyState)
	sys := NewEnemyAISystem()
	ai := aiOf(world, enemy)
	vel, _ := ecs.Get[components.VelocityComponent](world, enemy, components.Velocity)
	ai.RepathTimer = 5

	// Nothing moves the body, so every window counts as stuck
	for i := 0; i < 20; i++ {
		sys.Update(world, 0.05)
	}
	if ai.StuckCount != 1 {
		t.Fatalf("stuck count = %d, want 1", ai.StuckCount)
	}
	if ai.UnstickLeft <= 0 {
		t.Fatalf("not side-stepping")
	}
	if math.Abs(vel.X) > 1e-9 || !near(math.Abs(vel.Y), ai.Speed) {
		t.Errorf("side-step velocity = (%v, %v), want perpendicular", vel.X, vel.Y)
	}

	if ai.RepathTimer != 5 {
		t.Errorf("re-planned after one stuck window")
	}

	// The third window in a row forces a fresh path
	for i := 0; i < 200 && ai.StuckCount < RepathAfterStuck; i++ {
		sys.Update(world, 0.05)
		if ai.StuckCount == RepathAfterStuck-1 && ai.RepathTimer != 5 {
			t.Fatalf("re-planned after %d stuck windows", ai.StuckCount)
		}
	}
	if ai.StuckCount != RepathAfterStuck {
		t.Fatalf("stuck count = %d, want %d", ai.StuckCount, RepathAfterStuck)
	}
	if len(ai.Path) != 0 || ai.RepathTimer != 0 {
		t.Errorf("path %v repath timer %v, want a cleared path and 0", ai.Path, ai.RepathTimer)
	}

	gaveUp := false
	for i := 0; i < 300 && !gaveUp; i++ {
		sys.Update(world, 0.05)
		for _, c := range *changes {
			if c.From == components.StateChase && c.To == components.StateIdle {
				gaveUp = true
			}
		}
	}
	if !gaveUp {
		t.Fatalf("enemy never gave up")
	}
	if ai.GiveUpLeft <= 0 || ai.Target != 0 {
		t.Errorf("give up left = %v target = %d", ai.GiveUpLeft, ai.Target)
	}
}

func TestRangedEnemyFiresProjectiles(t *testing.T) {
	world := newWorld(t)
	ecs.InsertResource(world, openMap(12, 6))
	spawnPlayer(world, 8.5, 2.5, 0)
	enemy := spawnEnemy(world, 3.5, 2.5, 100)
	world.AddComponent(enemy, components.AI, components.NewAIComponent(components.AttackRanged, 2, 10, 7, 2))
	aiOf(world, enemy).ProjectileSpeed = 6
	fired := record[ProjectileFiredEvent](world, EventProjectileFired)
	sys := NewEnemyAISystem()

	for i := 0; i < 3; i++ {
		sys.Update(world, 0.1)
	}
	world.ApplyCommands()

	if len(*fired) != 1 {
		t.Fatalf("projectiles fired = %d, want 1", len(*fired))
	}
	ids := world.Query(components.Projectile)
	if len(ids) != 1 {
		t.Fatalf("projectile entities = %d", len(ids))
	}
	proj, _ := ecs.Get[components.ProjectileComponent](world, ids[0], components.Projectile)
	if proj.Owner != enemy || proj.DirX <= 0.99 || proj.Damage != 8 {
		t.Errorf("projectile = %+v", proj)
	}
}
