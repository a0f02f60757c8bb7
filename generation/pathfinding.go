package generation

import (
	"container/heap"
	"math"
)

// FindPath uses A* pathfinding to find a 4-directional path between two tiles.
// The returned path excludes the start and is empty when the goal is unreachable.
func (m *RoomMap) FindPath(start, goal Point) []Point {
	if start == goal || m.IsWall(goal.X, goal.Y) {
		return nil
	}

	openSet := make(PriorityQueue, 0)
	heap.Init(&openSet)

	// Maps for tracking
	cameFrom := make(map[Point]Point)
	gScore := map[Point]int{start: 0}
	inOpenSet := make(map[Point]bool)

	heap.Push(&openSet, &Item{value: start, priority: heuristic(start, goal)})
	inOpenSet[start] = true

	for openSet.Len() > 0 {
		current := heap.Pop(&openSet).(*Item).value
		inOpenSet[current] = false

		if current == goal {
			return reconstructPath(cameFrom, current)
		}

		neighbors := [4]Point{
			{X: current.X + 1, Y: current.Y},
			{X: current.X - 1, Y: current.Y},
			{X: current.X, Y: current.Y + 1},
			{X: current.X, Y: current.Y - 1},
		}

		for _, neighbor := range neighbors {
			if m.IsWall(neighbor.X, neighbor.Y) {
				continue
			}

			// Cost is always 1 for adjacent cells
			tentative := gScore[current] + 1

			known, seen := gScore[neighbor]
			if !seen {
				known = math.MaxInt32
			}
			if tentative >= known {
				continue
			}

			cameFrom[neighbor] = current
			gScore[neighbor] = tentative
			if !inOpenSet[neighbor] {
				heap.Push(&openSet, &Item{value: neighbor, priority: tentative + heuristic(neighbor, goal)})
				inOpenSet[neighbor] = true
			}
		}
	}

	return nil
}

// reconstructPath builds the path from start to goal, dropping the start
func reconstructPath(cameFrom map[Point]Point, current Point) []Point {
	path := []Point{current}
	for {
		next, exists := cameFrom[current]
		if !exists {
			break
		}
		path = append(path, next)
		current = next
	}

	// Reverse and drop the start
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path[1:]
}

// heuristic estimates the cost to reach the goal (Manhattan distance)
func heuristic(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Item is an entry of the A* open set
type Item struct {
	value    Point
	priority int
	index    int
}

// PriorityQueue implementation for A* pathfinding
type PriorityQueue []*Item

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	return pq[i].priority < pq[j].priority
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *PriorityQueue) Push(x any) {
	n := len(*pq)
	item := x.(*Item)
	item.index = n
	*pq = append(*pq, item)
}

func (pq *PriorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // avoid memory leak
	item.index = -1 // for safety
	*pq = old[0 : n-1]
	return item
}
