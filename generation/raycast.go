package generation

import "math"

// RayHit is the first wall met by a ray cast across the map
type RayHit struct {
	Hit      bool
	Distance float64 // Euclidean distance along the ray
	Tile     Point
	Side     int     // 0 when a vertical grid line was crossed, 1 for horizontal
	WallX    float64 // Where on the wall face the ray landed, 0..1
}

// CastRay walks the grid with DDA from (x, y) along angle until it meets a
// wall or travels maxDist.
func (m *RoomMap) CastRay(x, y, angle, maxDist float64) RayHit {
	dirX, dirY := math.Cos(angle), math.Sin(angle)

	mapX, mapY := int(math.Floor(x)), int(math.Floor(y))

	deltaX := math.Inf(1)
	if dirX != 0 {
		deltaX = math.Abs(1 / dirX)
	}
	deltaY := math.Inf(1)
	if dirY != 0 {
		deltaY = math.Abs(1 / dirY)
	}

	var stepX, stepY int
	var sideX, sideY float64
	if dirX < 0 {
		stepX = -1
		sideX = (x - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(mapX) + 1 - x) * deltaX
	}
	if dirY < 0 {
		stepY = -1
		sideY = (y - float64(mapY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(mapY) + 1 - y) * deltaY
	}

	for {
		var dist float64
		var side int
		if sideX < sideY {
			dist = sideX
			sideX += deltaX
			mapX += stepX
			side = 0
		} else {
			dist = sideY
			sideY += deltaY
			mapY += stepY
			side = 1
		}

		if dist > maxDist {
			return RayHit{Distance: maxDist}
		}
		if m.IsWall(mapX, mapY) {
			hit := RayHit{Hit: true, Distance: dist, Tile: Point{X: mapX, Y: mapY}, Side: side}
			if side == 0 {
				hit.WallX = y + dist*dirY
			} else {
				hit.WallX = x + dist*dirX
			}
			hit.WallX -= math.Floor(hit.WallX)
			return hit
		}
	}
}
