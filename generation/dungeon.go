package generation

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	minRoomSize = 4
	maxRoomSize = 9
	minMapSize  = minRoomSize + 4
)

// Generator handles procedural generation of room layouts
type Generator struct {
	rng  *rand.Rand
	seed int64
}

// NewGenerator creates a generator seeded from the clock when seed is 0
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// Generate creates random non-overlapping rooms and connects them with corridors
func (g *Generator) Generate(width, height, depth int) (*RoomMap, error) {
	if width < minMapSize || height < minMapSize {
		return nil, fmt.Errorf("map %dx%d is smaller than %dx%d", width, height, minMapSize, minMapSize)
	}

	m := NewRoomMap(width, height)
	m.Depth = depth
	m.Seed = g.seed

	// Deeper levels get a few more rooms
	numRooms := 6 + g.rng.Intn(4) + depth/2
	maxSize := min(maxRoomSize, width-3, height-3)

	for attempts := 0; len(m.Rooms) < numRooms && attempts < numRooms*15; attempts++ {
		roomWidth := minRoomSize + g.rng.Intn(maxSize-minRoomSize+1)
		roomHeight := minRoomSize + g.rng.Intn(maxSize-minRoomSize+1)

		// Leave space for the border wall
		room := Room{
			X:      g.rng.Intn(width-roomWidth-1) + 1,
			Y:      g.rng.Intn(height-roomHeight-1) + 1,
			Width:  roomWidth,
			Height: roomHeight,
		}

		overlaps := false
		for _, other := range m.Rooms {
			if room.intersects(other, 1) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		g.carveRoom(m, room)

		// Connect it to the previous room
		if n := len(m.Rooms); n > 0 {
			cur := room.Center()
			prev := m.Rooms[n-1].Center()
			g.CreateCorridor(m, cur.X, cur.Y, prev.X, prev.Y)
		}
		m.Rooms = append(m.Rooms, room)
	}

	if len(m.Rooms) == 0 {
		// Unlucky rolls on a tiny map: fall back to a single room
		room := Room{X: 1, Y: 1, Width: width - 2, Height: height - 2}
		g.carveRoom(m, room)
		m.Rooms = append(m.Rooms, room)
	}

	m.PlayerStart = m.Rooms[0].Center()
	if len(m.Rooms) > 1 {
		m.Stairs = m.Rooms[len(m.Rooms)-1].Center()
		m.HasStairs = true
		m.SetTile(m.Stairs.X, m.Stairs.Y, TileStairsDown)
	}

	return m, nil
}

func (g *Generator) carveRoom(m *RoomMap, room Room) {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			m.SetTile(x, y, TileFloor)
		}
	}
}

// CreateCorridor creates an L-shaped corridor between two points
func (g *Generator) CreateCorridor(m *RoomMap, x1, y1, x2, y2 int) {
	// Randomly choose between horizontal-first or vertical-first
	if g.rng.Intn(2) == 0 {
		g.createHorizontalCorridor(m, x1, x2, y1)
		g.createVerticalCorridor(m, y1, y2, x2)
	} else {
		g.createVerticalCorridor(m, y1, y2, x1)
		g.createHorizontalCorridor(m, x1, x2, y2)
	}
}

// createHorizontalCorridor creates a horizontal corridor from x1 to x2 at y
func (g *Generator) createHorizontalCorridor(m *RoomMap, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		// Never break the border
		if x > 0 && x < m.Width-1 && y > 0 && y < m.Height-1 {
			m.SetTile(x, y, TileFloor)
		}
	}
}

// createVerticalCorridor creates a vertical corridor from y1 to y2 at x
func (g *Generator) createVerticalCorridor(m *RoomMap, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		if x > 0 && x < m.Width-1 && y > 0 && y < m.Height-1 {
			m.SetTile(x, y, TileFloor)
		}
	}
}

// RandomFloorInRoom picks a random walkable tile inside room
func RandomFloorInRoom(rng *rand.Rand, m *RoomMap, room Room) (Point, bool) {
	for i := 0; i < room.Width*room.Height*2; i++ {
		p := Point{X: room.X + rng.Intn(room.Width), Y: room.Y + rng.Intn(room.Height)}
		if m.Tile(p.X, p.Y) == TileFloor {
			return p, true
		}
	}
	return Point{}, false
}
