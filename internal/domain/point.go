package domain

import "math"

// Point is a position in canvas space
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for a Point literal
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Dist returns the Euclidean distance to q
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// DistSq returns the squared distance to q
func (p Point) DistSq(q Point) float64 {
	dx := q.X - p.X
	dy := q.Y - p.Y
	return dx*dx + dy*dy
}

// Lerp interpolates linearly from p to q by t
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Coord is the integer lattice identity of a vertex
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Add offsets the coordinate by a direction
func (c Coord) Add(d Coord) Coord {
	return Coord{Q: c.Q + d.Q, R: c.R + d.R}
}

// VertexPos is a vertex index with its lattice identity and canvas position
type VertexPos struct {
	Vertex int     `json:"vertex"`
	Coord  Coord   `json:"coord"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Pos returns the canvas position
func (v VertexPos) Pos() Point {
	return Point{X: v.X, Y: v.Y}
}
