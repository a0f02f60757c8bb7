// Package physics wraps a Chipmunk2D space that moves characters and resolves
// collisions against the level walls.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"ebiten-arpg/ecs"
	"ebiten-arpg/generation"
)

// Scale converts world units (one tile) into physics units. Chipmunk's
// collision slop is tuned for pixel-sized values.
const Scale = 32.0

const (
	fixedStep   = 1.0 / 120.0
	maxSubSteps = 8
)

// wallData marks static shapes in UserData
type wallData struct{}

// Hit is the result of a raycast
type Hit struct {
	Hit      bool
	Entity   ecs.EntityID // Zero when a wall was hit
	Wall     bool
	X, Y     float64
	Distance float64
}

// World is the physics resource
type World struct {
	space       *cp.Space
	bodies      map[ecs.EntityID]*cp.Body
	shapes      map[ecs.EntityID]*cp.Shape
	walls       []*cp.Shape
	accumulator float64
}

// NewWorld creates an empty space with no gravity
func NewWorld() *World {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	space.Iterations = 10

	return &World{
		space:  space,
		bodies: make(map[ecs.EntityID]*cp.Body),
		shapes: make(map[ecs.EntityID]*cp.Shape),
	}
}

func toPhysics(x, y float64) cp.Vector {
	return cp.Vector{X: x * Scale, Y: y * Scale}
}

func fromPhysics(v cp.Vector) (float64, float64) {
	return v.X / Scale, v.Y / Scale
}

// BuildWalls replaces the static geometry with boxes for every wall tile that
// borders a walkable tile
func (w *World) BuildWalls(m *generation.RoomMap) {
	for _, shape := range w.walls {
		w.space.RemoveShape(shape)
	}
	w.walls = w.walls[:0]

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.IsWall(x, y) || !bordersFloor(m, x, y) {
				continue
			}
			bb := cp.BB{
				L: float64(x) * Scale,
				B: float64(y) * Scale,
				R: float64(x+1) * Scale,
				T: float64(y+1) * Scale,
			}
			shape := cp.NewBox2(w.space.StaticBody, bb, 0)
			shape.SetFriction(0)
			shape.UserData = wallData{}
			w.space.AddShape(shape)
			w.walls = append(w.walls, shape)
		}
	}
}

func bordersFloor(m *generation.RoomMap, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && m.InBounds(x+dx, y+dy) && m.IsWalkable(x+dx, y+dy) {
				return true
			}
		}
	}
	return false
}

// WallCount returns the number of static wall shapes
func (w *World) WallCount() int {
	return len(w.walls)
}

// AddCharacter creates a non-rotating circular body for an entity. Calling it
// again for the same entity replaces the body.
func (w *World) AddCharacter(id ecs.EntityID, x, y, radius float64) {
	w.Remove(id)

	body := cp.NewBody(1, cp.INFINITY)
	body.SetPosition(toPhysics(x, y))
	body.UserData = id
	w.space.AddBody(body)

	shape := cp.NewCircle(body, radius*Scale, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.UserData = id
	w.space.AddShape(shape)

	w.bodies[id] = body
	w.shapes[id] = shape
}

// Remove deletes the entity's body if it has one
func (w *World) Remove(id ecs.EntityID) {
	if shape, ok := w.shapes[id]; ok {
		w.space.RemoveShape(shape)
		delete(w.shapes, id)
	}
	if body, ok := w.bodies[id]; ok {
		w.space.RemoveBody(body)
		delete(w.bodies, id)
	}
}

// Has reports whether the entity has a body
func (w *World) Has(id ecs.EntityID) bool {
	_, ok := w.bodies[id]
	return ok
}

// Entities returns the ids of all bodies
func (w *World) Entities() []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, len(w.bodies))
	for id := range w.bodies {
		ids = append(ids, id)
	}
	return ids
}

// Position returns the entity's body position in world units
func (w *World) Position(id ecs.EntityID) (float64, float64, bool) {
	body, ok := w.bodies[id]
	if !ok {
		return 0, 0, false
	}
	x, y := fromPhysics(body.Position())
	return x, y, true
}

// SetPosition teleports a body
func (w *World) SetPosition(id ecs.EntityID, x, y float64) {
	if body, ok := w.bodies[id]; ok {
		body.SetPosition(toPhysics(x, y))
		body.SetVelocity(0, 0)
	}
}

// SetVelocity sets a body's velocity in world units per second
func (w *World) SetVelocity(id ecs.EntityID, vx, vy float64) {
	if body, ok := w.bodies[id]; ok {
		body.SetVelocity(vx*Scale, vy*Scale)
	}
}

// Step advances the space in fixed sub-steps and returns how many ran
func (w *World) Step(dt float64) int {
	w.accumulator += dt
	steps := 0
	for w.accumulator >= fixedStep && steps < maxSubSteps {
		w.space.Step(fixedStep)
		w.accumulator -= fixedStep
		steps++
	}
	if steps == maxSubSteps {
		// Too far behind; drop the backlog
		w.accumulator = 0
	}
	return steps
}

// Raycast returns the first wall or body between two points, skipping ignore
func (w *World) Raycast(x0, y0, x1, y1 float64, ignore ecs.EntityID) Hit {
	start, end := toPhysics(x0, y0), toPhysics(x1, y1)

	best := Hit{}
	bestAlpha := math.Inf(1)
	w.space.SegmentQuery(start, end, 0, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
		if alpha >= bestAlpha {
			return
		}
		switch owner := shape.UserData.(type) {
		case ecs.EntityID:
			if owner == ignore {
				return
			}
			best = Hit{Hit: true, Entity: owner}
		case wallData:
			best = Hit{Hit: true, Wall: true}
		default:
			return
		}
		bestAlpha = alpha
		best.X, best.Y = fromPhysics(point)
	}, nil)

	if best.Hit {
		best.Distance = math.Hypot(best.X-x0, best.Y-y0)
	}
	return best
}

// Clear removes every body and wall
func (w *World) Clear() {
	for id := range w.bodies {
		w.Remove(id)
	}
	for _, shape := range w.walls {
		w.space.RemoveShape(shape)
	}
	w.walls = nil
	w.accumulator = 0
}
