package systems

import (
	"math"

	"github.com/sirupsen/logrus"

	"ebiten-arpg/components"
	"ebiten-arpg/ecs"
	"ebiten-arpg/generation"
	"ebiten-arpg/logging"
)

// Enemy behaviour tuning
const (
	StuckWindow      = 0.75 // Seconds between progress checks
	StuckEpsilon     = 0.15 // Minimum distance covered per window
	UnstickTime      = 0.4  // Seconds spent side-stepping
	RepathAfterStuck = 3
	GiveUpAfterStuck = 6
	FleeFraction     = 0.2
	RepathInterval   = 0.5
	AttackHysteresis = 1.1 // Leave Attack only beyond AttackRange*AttackHysteresis
	WaypointReached  = 0.2
	SearchArrived    = 0.5
)

// EnemyAISystem runs the enemy state machine: targeting, transitions,
// attacks, movement and stuck recovery
type EnemyAISystem struct {
	log *logrus.Entry
}

// NewEnemyAISystem creates a new enemy AI system
func NewEnemyAISystem() *EnemyAISystem {
	return &EnemyAISystem{log: logging.For("ai")}
}

// Update processes AI behavior for entities with AI components
func (s *EnemyAISystem) Update(world *ecs.World, dt float64) {
	m := roomMap(world)

	for _, id := range world.Query(components.AI, components.Transform) {
		ai, _ := ecs.Get[components.AIComponent](world, id, components.AI)
		pos, _ := ecs.Get[components.TransformComponent](world, id, components.Transform)
		vel, _ := ecs.Get[components.VelocityComponent](world, id, components.Velocity)

		if world.HasComponent(id, components.Disabled) {
			s.enter(world, id, ai, components.StateDead)
			if vel != nil {
				vel.X, vel.Y = 0, 0
			}
			continue
		}

		ai.StateTime += dt
		if ai.CooldownLeft > 0 {
			ai.CooldownLeft = math.Max(0, ai.CooldownLeft-dt)
		}
		if ai.GiveUpLeft > 0 {
			ai.GiveUpLeft = math.Max(0, ai.GiveUpLeft-dt)
		}

		target, tpos := s.acquireTarget(world, m, ai, pos)
		if target != 0 {
			ai.Target = target
			ai.LastKnownX, ai.LastKnownY = tpos.X, tpos.Y
			ai.HasLastKnown = true
		} else {
			ai.Target = 0
		}

		s.think(world, id, ai, pos, tpos)

		vx, vy := s.steer(m, ai, pos, tpos, dt)
		vx, vy = s.checkStuck(world, id, ai, pos, vx, vy, dt)

		if vel != nil {
			vel.X, vel.Y = vx, vy
		}
		switch {
		case tpos != nil:
			pos.Yaw = math.Atan2(tpos.Y-pos.Y, tpos.X-pos.X)
		case vx != 0 || vy != 0:
			pos.Yaw = math.Atan2(vy, vx)
		}
	}
}

// acquireTarget picks the nearest living player within sight range and line of sight
func (s *EnemyAISystem) acquireTarget(world *ecs.World, m *generation.RoomMap, ai *components.AIComponent, pos *components.TransformComponent) (ecs.EntityID, *components.TransformComponent) {
	if ai.GiveUpLeft > 0 {
		return 0, nil
	}
	var (
		best     ecs.EntityID
		bestPos  *components.TransformComponent
		bestDist = math.Inf(1)
	)
	for _, pid := range world.Query(components.Player, components.Transform) {
		if world.HasComponent(pid, components.Disabled) {
			continue
		}
		ppos, _ := ecs.Get[components.TransformComponent](world, pid, components.Transform)
		d := pos.DistanceTo(ppos)
		if d > ai.SightRange || d >= bestDist {
			continue
		}
		if m != nil && !m.CanSee(pos.X, pos.Y, ppos.X, ppos.Y, ai.SightRange) {
			continue
		}
		best, bestPos, bestDist = pid, ppos, d
	}
	return best, bestPos
}

// think applies at most one state transition and fires attacks
func (s *EnemyAISystem) think(world *ecs.World, id ecs.EntityID, ai *components.AIComponent, pos, tpos *components.TransformComponent) {
	if ai.CanFlee && ai.State != components.StateFlee {
		if h, ok := ecs.Get[components.HealthComponent](world, id, components.Health); ok && h.Fraction() < FleeFraction {
			s.enter(world, id, ai, components.StateFlee)
			GetMessageLog().AddCombat(components.EntityName(world, id) + " turns to flee!")
			return
		}
	}

	dist := math.Inf(1)
	if tpos != nil {
		dist = pos.DistanceTo(tpos)
	}

	switch ai.State {
	case components.StateIdle:
		if tpos != nil {
			s.enter(world, id, ai, components.StateChase)
		}

	case components.StateChase:
		switch {
		case tpos == nil && ai.HasLastKnown:
			s.enter(world, id, ai, components.StateSearch)
		case tpos == nil:
			s.enter(world, id, ai, components.StateIdle)
		case dist <= ai.AttackRange:
			s.enter(world, id, ai, components.StateAttack)
		}

	case components.StateAttack:
		switch {
		case tpos == nil && ai.HasLastKnown:
			s.enter(world, id, ai, components.StateSearch)
		case tpos == nil:
			s.enter(world, id, ai, components.StateIdle)
		case dist > ai.AttackRange*AttackHysteresis:
			s.enter(world, id, ai, components.StateChase)
		case ai.CooldownLeft <= 0:
			s.attack(world, id, ai, pos, tpos)
		}

	case components.StateSearch:
		arrived := math.Hypot(ai.LastKnownX-pos.X, ai.LastKnownY-pos.Y) <= SearchArrived
		switch {
		case tpos != nil:
			s.enter(world, id, ai, components.StateChase)
		case arrived || ai.StateTime >= ai.SearchTime:
			ai.HasLastKnown = false
			s.enter(world, id, ai, components.StateIdle)
		}

	case components.StateFlee:
		h, ok := ecs.Get[components.HealthComponent](world, id, components.Health)
		if ok && h.Fraction() >= 2*FleeFraction {
			s.enter(world, id, ai, components.StateIdle)
		} else if tpos == nil && ai.StateTime >= ai.SearchTime {
			ai.HasLastKnown = false
			s.enter(world, id, ai, components.StateIdle)
		}
	}
}

// attack swings or fires at the target and restarts the cooldown
func (s *EnemyAISystem) attack(world *ecs.World, id ecs.EntityID, ai *components.AIComponent, pos, tpos *components.TransformComponent) {
	ai.CooldownLeft = ai.AttackCooldown
	dx, dy := tpos.X-pos.X, tpos.Y-pos.Y
	pos.Yaw = math.Atan2(dy, dx)

	if ai.Style == components.AttackRanged {
		dmg := 0.0
		if d, ok := ecs.Get[components.DamageComponent](world, id, components.Damage); ok {
			dmg = d.Amount
		}
		r := 0.5
		if col, ok := ecs.Get[components.ColliderComponent](world, id, components.Collider); ok {
			r = col.Radius + BoltRadius
		}
		fx, fy := pos.Forward()
		SpawnProjectile(world, id, pos.X+fx*r, pos.Y+fy*r, dx, dy, ai.ProjectileSpeed, dmg)
		return
	}
	world.EmitEvent(AttackEvent{Attacker: id})
}

// steer returns the desired velocity for the current state
func (s *EnemyAISystem) steer(m *generation.RoomMap, ai *components.AIComponent, pos, tpos *components.TransformComponent, dt float64) (float64, float64) {
	switch ai.State {
	case components.StateChase:
		if tpos == nil {
			return 0, 0
		}
		return s.moveTo(m, ai, pos, tpos.X, tpos.Y, dt)

	case components.StateAttack:
		// Ranged enemies back away to their preferred distance
		if ai.Style != components.AttackRanged || tpos == nil {
			return 0, 0
		}
		dx, dy := pos.X-tpos.X, pos.Y-tpos.Y
		d := math.Hypot(dx, dy)
		if d >= ai.PreferredRange || d == 0 {
			return 0, 0
		}
		vx, vy := dx/d*ai.Speed, dy/d*ai.Speed
		if m != nil && m.IsWallAt(pos.X+dx/d*0.6, pos.Y+dy/d*0.6) {
			return 0, 0
		}
		return vx, vy

	case components.StateSearch:
		if !ai.HasLastKnown {
			return 0, 0
		}
		return s.moveTo(m, ai, pos, ai.LastKnownX, ai.LastKnownY, dt)

	case components.StateFlee:
		fromX, fromY := ai.LastKnownX, ai.LastKnownY
		if tpos != nil {
			fromX, fromY = tpos.X, tpos.Y
		} else if !ai.HasLastKnown {
			return 0, 0
		}
		dx, dy := pos.X-fromX, pos.Y-fromY
		d := math.Hypot(dx, dy)
		if d == 0 {
			return 0, 0
		}
		return dx / d * ai.Speed, dy / d * ai.Speed
	}
	return 0, 0
}

// moveTo steers straight at the goal while it is visible, otherwise along
// an A* path over the room map
func (s *EnemyAISystem) moveTo(m *generation.RoomMap, ai *components.AIComponent, pos *components.TransformComponent, gx, gy, dt float64) (float64, float64) {
	direct := func(x, y float64) (float64, float64) {
		dx, dy := x-pos.X, y-pos.Y
		d := math.Hypot(dx, dy)
		if d < 1e-6 {
			return 0, 0
		}
		return dx / d * ai.Speed, dy / d * ai.Speed
	}

	if m == nil || m.CanSee(pos.X, pos.Y, gx, gy, math.Inf(1)) {
		ai.Path = nil
		return direct(gx, gy)
	}

	ai.RepathTimer -= dt
	if len(ai.Path) == 0 || ai.RepathTimer <= 0 {
		s.plan(m, ai, pos, gx, gy)
	}
	for len(ai.Path) > 0 {
		wx, wy := generation.TileCenter(generation.Point{X: ai.Path[0].X, Y: ai.Path[0].Y})
		if math.Hypot(wx-pos.X, wy-pos.Y) > WaypointReached {
			return direct(wx, wy)
		}
		ai.Path = ai.Path[1:]
	}
	return direct(gx, gy)
}

// plan replaces the current path with a fresh A* route
func (s *EnemyAISystem) plan(m *generation.RoomMap, ai *components.AIComponent, pos *components.TransformComponent, gx, gy float64) {
	ai.RepathTimer = RepathInterval
	ai.Path = ai.Path[:0]
	for _, p := range m.FindPath(generation.TileAt(pos.X, pos.Y), generation.TileAt(gx, gy)) {
		ai.Path = append(ai.Path, components.Waypoint{X: p.X, Y: p.Y})
	}
}

// checkStuck compares progress over StuckWindow while the enemy wants to
// move. Each stuck window starts a perpendicular side-step; repeated windows
// force a re-plan and finally make the enemy give up its target.
func (s *EnemyAISystem) checkStuck(world *ecs.World, id ecs.EntityID, ai *components.AIComponent, pos *components.TransformComponent, vx, vy, dt float64) (float64, float64) {
	if vx == 0 && vy == 0 {
		ai.StuckTimer = 0
		ai.StuckCount = 0
		ai.UnstickLeft = 0
		return 0, 0
	}

	if ai.UnstickLeft > 0 {
		ai.UnstickLeft -= dt
		return ai.UnstickDirX * ai.Speed, ai.UnstickDirY * ai.Speed
	}

	if ai.StuckTimer == 0 {
		ai.LastX, ai.LastY = pos.X, pos.Y
	}
	ai.StuckTimer += dt
	if ai.StuckTimer < StuckWindow {
		return vx, vy
	}

	moved := math.Hypot(pos.X-ai.LastX, pos.Y-ai.LastY)
	ai.StuckTimer = 0
	if moved >= StuckEpsilon {
		ai.StuckCount = 0
		return vx, vy
	}

	ai.StuckCount++
	s.log.WithFields(logrus.Fields{"entity": id, "count": ai.StuckCount}).Debug("enemy stuck")

	if ai.StuckCount >= GiveUpAfterStuck {
		ai.StuckCount = 0
		ai.Target = 0
		ai.HasLastKnown = false
		ai.GiveUpLeft = ai.SearchTime
		s.enter(world, id, ai, components.StateIdle)
		return 0, 0
	}
	if ai.StuckCount%RepathAfterStuck == 0 {
		ai.Path = nil
		ai.RepathTimer = 0
	}

	// Side-step perpendicular, alternating sides
	speed := math.Hypot(vx, vy)
	px, py := -vy/speed, vx/speed
	if ai.StuckCount%2 == 0 {
		px, py = -px, -py
	}
	ai.UnstickDirX, ai.UnstickDirY = px, py
	ai.UnstickLeft = UnstickTime
	return px * ai.Speed, py * ai.Speed
}

// enter switches state and reports the change
func (s *EnemyAISystem) enter(world *ecs.World, id ecs.EntityID, ai *components.AIComponent, state components.EnemyState) {
	if ai.State == state {
		return
	}
	from := ai.State
	ai.Enter(state)
	s.log.WithFields(logrus.Fields{"entity": id, "from": from, "to": state}).Debug("state change")
	world.EmitEvent(EnemyStateEvent{EntityID: id, From: from, To: state})
}
