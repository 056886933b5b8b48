package domain

// Node is a lattice vertex promoted to an emphasis point
type Node struct {
	ID     int     `json:"id"`
	Vertex int     `json:"vertex"` // Owning vertex index, used for graph lookups
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Size   float64 `json:"size"`
}

// Pos returns the node position
func (n Node) Pos() Point {
	return Point{X: n.X, Y: n.Y}
}

// Connection is a routed trail through two or more nodes
type Connection struct {
	ID       int     `json:"id"`
	Stops    []int   `json:"stops"`    // Node IDs visited in order
	Vertices []int   `json:"vertices"` // Lattice vertex chain before smoothing
	Points   []Point `json:"points"`   // Smoothed canvas polyline
	Length   float64 `json:"length"`
}

// From returns the first node ID of the connection
func (c Connection) From() int {
	if len(c.Stops) == 0 {
		return -1
	}
	return c.Stops[0]
}

// To returns the last node ID of the connection
func (c Connection) To() int {
	if len(c.Stops) == 0 {
		return -1
	}
	return c.Stops[len(c.Stops)-1]
}

// IsCircuit reports whether the connection visits three or more stops
func (c Connection) IsCircuit() bool {
	return len(c.Stops) >= 3
}
