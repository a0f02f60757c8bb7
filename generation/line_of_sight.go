package generation

import "math"

// LineOfSight checks if there's a clear line between two tiles using
// Bresenham's line algorithm. The start tile never blocks.
func (m *RoomMap) LineOfSight(x1, y1, x2, y2 int) bool {
	for _, p := range LinePoints(x1, y1, x2, y2) {
		if p.X == x1 && p.Y == y1 {
			continue
		}
		if m.IsWall(p.X, p.Y) {
			return false
		}
	}
	return true
}

// CanSee checks range and line of sight between two world positions
func (m *RoomMap) CanSee(ax, ay, bx, by, sightRange float64) bool {
	if math.Hypot(bx-ax, by-ay) > sightRange {
		return false
	}
	a, b := TileAt(ax, ay), TileAt(bx, by)
	return m.LineOfSight(a.X, a.Y, b.X, b.Y)
}

// LinePoints returns all tiles on a line between (x1,y1) and (x2,y2)
func LinePoints(x1, y1, x2, y2 int) []Point {
	points := []Point{}

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		points = append(points, Point{X: x1, Y: y1})
		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}

	return points
}
