package domain

import "fmt"

// EdgeKey is the canonical unordered pair of vertex indices
type EdgeKey struct {
	A int `json:"a"`
	B int `json:"b"`
}

// NewEdgeKey creates an edge key with normalized endpoint order
func NewEdgeKey(a, b int) EdgeKey {
	// Normalize endpoints for consistent keys
	if a > b {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

// Other returns the endpoint opposite v, or -1 if v is not an endpoint
func (k EdgeKey) Other(v int) int {
	switch v {
	case k.A:
		return k.B
	case k.B:
		return k.A
	default:
		return -1
	}
}

// String returns the key in "a-b" form
func (k EdgeKey) String() string {
	return fmt.Sprintf("%d-%d", k.A, k.B)
}

// Line is a visible lattice edge in canvas space
type Line struct {
	X1      float64 `json:"x1"`
	Y1      float64 `json:"y1"`
	X2      float64 `json:"x2"`
	Y2      float64 `json:"y2"`
	Opacity float64 `json:"opacity"`
}
