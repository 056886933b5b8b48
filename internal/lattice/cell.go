package lattice

import "nodal/internal/domain"

// Cell is a minimal closed face of the lattice: a triangle or a square
type Cell struct {
	Vertices []int
	Edges    []domain.EdgeKey
	Centroid domain.Point
}

// Cells enumerates every face whose corners all exist. Each vertex anchors
// up to two triangles (one pointing down, one pointing up) or one square,
// in vertex order.
func (l *Lattice) Cells() []Cell {
	var cells []Cell
	for i := range l.Vertices {
		c := l.Vertices[i].Coord
		if l.Family == Square {
			if cell, ok := l.cell(c, domain.Coord{Q: c.Q + 1, R: c.R}, domain.Coord{Q: c.Q + 1, R: c.R + 1}, domain.Coord{Q: c.Q, R: c.R + 1}); ok {
				cells = append(cells, cell)
			}
			continue
		}
		if cell, ok := l.cell(c, domain.Coord{Q: c.Q + 1, R: c.R}, domain.Coord{Q: c.Q, R: c.R + 1}); ok {
			cells = append(cells, cell)
		}
		if cell, ok := l.cell(domain.Coord{Q: c.Q + 1, R: c.R}, domain.Coord{Q: c.Q + 1, R: c.R + 1}, domain.Coord{Q: c.Q, R: c.R + 1}); ok {
			cells = append(cells, cell)
		}
	}
	return cells
}

// cell builds a face from corner coordinates listed in boundary order
func (l *Lattice) cell(corners ...domain.Coord) (Cell, bool) {
	verts := make([]int, len(corners))
	var sum domain.Point
	for i, c := range corners {
		v, ok := l.index[c]
		if !ok {
			return Cell{}, false
		}
		verts[i] = v
		p := l.Vertices[v].Pos
		sum.X += p.X
		sum.Y += p.Y
	}

	edges := make([]domain.EdgeKey, len(verts))
	for i := range verts {
		edges[i] = domain.NewEdgeKey(verts[i], verts[(i+1)%len(verts)])
	}

	n := float64(len(verts))
	return Cell{
		Vertices: verts,
		Edges:    edges,
		Centroid: domain.Point{X: sum.X / n, Y: sum.Y / n},
	}, true
}
