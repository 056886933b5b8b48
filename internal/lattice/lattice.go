// Package lattice builds the regular vertex grid that every scene starts from.
//
// Vertices live in a dense slice and are addressed by index. A lookup table
// from integer lattice coordinate to index backs coordinate queries. Raw
// adjacency comes from a fixed direction set whose order is part of the
// contract: breadth-first search breaks ties by neighbor order, so changing
// the order changes which of several equal-length routes is drawn.
package lattice

import (
	"math"

	"nodal/internal/domain"
)

// Family selects the lattice geometry
type Family int

const (
	Triangular Family = iota // Six neighbors, axial coordinates
	Square                   // Four neighbors, cartesian coordinates
)

// String returns the family name
func (f Family) String() string {
	if f == Square {
		return "square"
	}
	return "triangular"
}

// Direction sets in enumeration order
var (
	TriangularDirections = []domain.Coord{
		{Q: 1, R: 0}, {Q: -1, R: 0},
		{Q: 0, R: 1}, {Q: 0, R: -1},
		{Q: 1, R: -1}, {Q: -1, R: 1},
	}
	SquareDirections = []domain.Coord{
		{Q: 1, R: 0}, {Q: -1, R: 0},
		{Q: 0, R: 1}, {Q: 0, R: -1},
	}
)

// Padding in cells beyond the canvas edge
const (
	triangularMargin = 4
	squareMargin     = 2
)

// Vertex is a lattice point
type Vertex struct {
	Coord     domain.Coord
	Pos       domain.Point
	Raw       []int // Full adjacency from the direction set
	Neighbors []int // Current adjacency, narrowed by boundary shaping
}

// Lattice is a vertex arena with coordinate lookup
type Lattice struct {
	Family  Family
	Spacing float64
	Width   float64
	Height  float64

	Vertices []Vertex
	index    map[domain.Coord]int
}

// Build constructs a lattice covering the canvas plus a margin.
// Spacing, width and height must be positive.
func Build(width, height float64, family Family, spacing float64) *Lattice {
	l := &Lattice{
		Family:  family,
		Spacing: spacing,
		Width:   width,
		Height:  height,
		index:   make(map[domain.Coord]int),
	}

	if family == Square {
		l.buildSquare()
	} else {
		l.buildTriangular()
	}
	l.link()

	return l
}

// buildTriangular lays out rows of an axial lattice centered on the canvas.
// Each row is sheared by half a cell, so the q range is chosen per row to
// keep the padded canvas covered on both sides.
func (l *Lattice) buildTriangular() {
	cs := l.Spacing
	rowH := cs * math.Sqrt(3) / 2
	cx, cy := l.Width/2, l.Height/2
	pad := triangularMargin * cs

	rows := int(math.Ceil(cy/rowH)) + triangularMargin
	for r := -rows; r <= rows; r++ {
		shift := float64(r) * 0.5
		qMin := int(math.Floor((-cx-pad)/cs - shift))
		qMax := int(math.Ceil((cx+pad)/cs - shift))
		for q := qMin; q <= qMax; q++ {
			l.add(domain.Coord{Q: q, R: r}, domain.Point{
				X: cx + (float64(q)+shift)*cs,
				Y: cy + float64(r)*rowH,
			})
		}
	}
}

func (l *Lattice) buildSquare() {
	cs := l.Spacing
	cx, cy := l.Width/2, l.Height/2

	cols := int(math.Ceil(cx/cs)) + squareMargin
	rows := int(math.Ceil(cy/cs)) + squareMargin
	for r := -rows; r <= rows; r++ {
		for c := -cols; c <= cols; c++ {
			l.add(domain.Coord{Q: c, R: r}, domain.Point{
				X: cx + float64(c)*cs,
				Y: cy + float64(r)*cs,
			})
		}
	}
}

func (l *Lattice) add(c domain.Coord, p domain.Point) {
	l.index[c] = len(l.Vertices)
	l.Vertices = append(l.Vertices, Vertex{Coord: c, Pos: p})
}

// link fills raw adjacency in direction order
func (l *Lattice) link() {
	dirs := l.Directions()
	for i := range l.Vertices {
		v := &l.Vertices[i]
		v.Raw = make([]int, 0, len(dirs))
		for _, d := range dirs {
			if n, ok := l.index[v.Coord.Add(d)]; ok {
				v.Raw = append(v.Raw, n)
			}
		}
		v.Neighbors = append([]int(nil), v.Raw...)
	}
}

// Directions returns the direction set for the lattice family
func (l *Lattice) Directions() []domain.Coord {
	if l.Family == Square {
		return SquareDirections
	}
	return TriangularDirections
}

// Len returns the vertex count
func (l *Lattice) Len() int {
	return len(l.Vertices)
}

// Index returns the vertex index for a lattice coordinate
func (l *Lattice) Index(c domain.Coord) (int, bool) {
	i, ok := l.index[c]
	return i, ok
}

// Position returns the canvas position of vertex v
func (l *Lattice) Position(v int) domain.Point {
	return l.Vertices[v].Pos
}

// Neighbors returns the current adjacency of vertex v
func (l *Lattice) Neighbors(v int) []int {
	if v < 0 || v >= len(l.Vertices) {
		return nil
	}
	return l.Vertices[v].Neighbors
}

// SetNeighbors replaces the current adjacency of vertex v
func (l *Lattice) SetNeighbors(v int, neighbors []int) {
	l.Vertices[v].Neighbors = neighbors
}
