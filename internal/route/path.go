// Package route finds lattice paths between nodes and turns them into
// smooth polylines.
package route

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"nodal/internal/domain"
)

// Graph is the visible lattice as seen by the router
type Graph interface {
	Has(v int) bool
	Neighbors(v int) []int
	Position(v int) domain.Point
}

// ShortestPath returns a minimum-hop vertex chain from start to end,
// inclusive. Ties between equal-length routes resolve by neighbor order.
// It returns nil when either endpoint is absent or no route exists.
func ShortestPath(g Graph, start, end int) []int {
	if !g.Has(start) || !g.Has(end) {
		return nil
	}
	if start == end {
		return []int{start}
	}

	parent := map[int]int{start: start}
	queue := linkedlistqueue.New()
	queue.Enqueue(start)

	for !queue.Empty() {
		v, _ := queue.Dequeue()
		cur := v.(int)
		for _, n := range g.Neighbors(cur) {
			if _, seen := parent[n]; seen {
				continue
			}
			parent[n] = cur
			if n == end {
				return walkBack(parent, start, end)
			}
			queue.Enqueue(n)
		}
	}

	return nil
}

func walkBack(parent map[int]int, start, end int) []int {
	var path []int
	for v := end; v != start; v = parent[v] {
		path = append(path, v)
	}
	path = append(path, start)

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Positions maps a vertex chain to canvas points
func Positions(g Graph, vertices []int) []domain.Point {
	pts := make([]domain.Point, len(vertices))
	for i, v := range vertices {
		pts[i] = g.Position(v)
	}
	return pts
}
