package generation

import "math"

// TileType is the content of one map cell
type TileType int

const (
	TileWall TileType = iota
	TileFloor
	TileStairsDown
)

// Point is a tile coordinate
type Point struct {
	X, Y int
}

// Room is an axis-aligned rectangle of floor tiles
type Room struct {
	X, Y, Width, Height int
}

// Center returns the central tile of the room
func (r Room) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether the tile lies inside the room
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// intersects reports whether two rooms overlap once r is grown by pad tiles
func (r Room) intersects(o Room, pad int) bool {
	return r.X-pad < o.X+o.Width && r.X+r.Width+pad > o.X &&
		r.Y-pad < o.Y+o.Height && r.Y+r.Height+pad > o.Y
}

// RoomMap is the level layout shared as a world resource. One tile is one
// world unit; the tile (x, y) covers [x, x+1) x [y, y+1).
type RoomMap struct {
	Width, Height int
	Tiles         [][]TileType
	Rooms         []Room
	PlayerStart   Point
	Stairs        Point
	HasStairs     bool
	Depth         int
	Seed          int64
}

// NewRoomMap creates a map filled with walls
func NewRoomMap(width, height int) *RoomMap {
	tiles := make([][]TileType, height)
	for y := range tiles {
		tiles[y] = make([]TileType, width)
	}
	return &RoomMap{Width: width, Height: height, Tiles: tiles}
}

// InBounds reports whether the tile exists
func (m *RoomMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Tile returns the tile type, walls outside the map
func (m *RoomMap) Tile(x, y int) TileType {
	if !m.InBounds(x, y) {
		return TileWall
	}
	return m.Tiles[y][x]
}

// SetTile sets a tile, ignoring out of bounds coordinates
func (m *RoomMap) SetTile(x, y int, t TileType) {
	if m.InBounds(x, y) {
		m.Tiles[y][x] = t
	}
}

// IsWall reports whether the tile blocks movement and sight
func (m *RoomMap) IsWall(x, y int) bool {
	return m.Tile(x, y) == TileWall
}

// IsWalkable reports whether an entity can stand on the tile
func (m *RoomMap) IsWalkable(x, y int) bool {
	return !m.IsWall(x, y)
}

// TileAt converts a world position to the tile containing it
func TileAt(x, y float64) Point {
	return Point{X: int(math.Floor(x)), Y: int(math.Floor(y))}
}

// TileCenter returns the world position of a tile's centre
func TileCenter(p Point) (float64, float64) {
	return float64(p.X) + 0.5, float64(p.Y) + 0.5
}

// IsWallAt reports whether the world position lies inside a wall
func (m *RoomMap) IsWallAt(x, y float64) bool {
	p := TileAt(x, y)
	return m.IsWall(p.X, p.Y)
}

// RoomAt returns the index of the room containing the tile, or -1
func (m *RoomMap) RoomAt(x, y int) int {
	for i, r := range m.Rooms {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}

// FloorCount returns the number of non-wall tiles
func (m *RoomMap) FloorCount() int {
	n := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Tiles[y][x] != TileWall {
				n++
			}
		}
	}
	return n
}
