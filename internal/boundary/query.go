package boundary

import (
	"math"

	"nodal/internal/domain"
	"nodal/internal/lattice"
)

// Lattice returns the shaped lattice
func (r *Region) Lattice() *lattice.Lattice {
	return r.lattice
}

// Has reports whether vertex v is part of the visible region
func (r *Region) Has(v int) bool {
	return v >= 0 && v < len(r.visible) && r.visible[v]
}

// Neighbors returns the restricted adjacency of vertex v
func (r *Region) Neighbors(v int) []int {
	return r.lattice.Neighbors(v)
}

// Position returns the canvas position of vertex v
func (r *Region) Position(v int) domain.Point {
	return r.lattice.Position(v)
}

// Visibility returns the share of kept cells around vertex v
func (r *Region) Visibility(v int) float64 {
	if v < 0 || v >= len(r.visibility) {
		return 0
	}
	return r.visibility[v]
}

// HasEdge reports whether the edge a-b bounds a kept cell
func (r *Region) HasEdge(a, b int) bool {
	return r.edges[domain.NewEdgeKey(a, b)]
}

// VertexCount returns the number of visible vertices
func (r *Region) VertexCount() int {
	n := 0
	for _, ok := range r.visible {
		if ok {
			n++
		}
	}
	return n
}

// CellCount returns the number of kept cells
func (r *Region) CellCount() int {
	return len(r.kept)
}

// KeptCells returns the kept cells in breadth-first order
func (r *Region) KeptCells() []lattice.Cell {
	out := make([]lattice.Cell, len(r.kept))
	for i, ci := range r.kept {
		out[i] = r.cells[ci]
	}
	return out
}

// Nearest returns the visible vertex closest to p
func (r *Region) Nearest(p domain.Point) (domain.VertexPos, bool) {
	best, bestD := -1, math.Inf(1)
	for v, ok := range r.visible {
		if !ok {
			continue
		}
		if d := p.DistSq(r.lattice.Position(v)); d < bestD {
			best, bestD = v, d
		}
	}
	if best < 0 {
		return domain.VertexPos{}, false
	}
	return r.vertexPos(best), true
}

// VisiblePositions lists visible vertices that lie inside the canvas shrunk
// by padding on every side, in vertex order
func (r *Region) VisiblePositions(padding float64) []domain.VertexPos {
	w, h := r.lattice.Width, r.lattice.Height
	var out []domain.VertexPos
	for v, ok := range r.visible {
		if !ok {
			continue
		}
		p := r.lattice.Position(v)
		if p.X >= padding && p.X <= w-padding && p.Y >= padding && p.Y <= h-padding {
			out = append(out, r.vertexPos(v))
		}
	}
	return out
}

func (r *Region) vertexPos(v int) domain.VertexPos {
	vert := r.lattice.Vertices[v]
	return domain.VertexPos{Vertex: v, Coord: vert.Coord, X: vert.Pos.X, Y: vert.Pos.Y}
}
