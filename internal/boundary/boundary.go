// Package boundary carves an organic, connected region out of a lattice.
//
// Shaping scores every cell against a soft elliptical mask perturbed by
// Perlin noise, keeps the largest edge-connected group of passing cells,
// and narrows each vertex's adjacency to edges that still bound a kept cell.
// With zero chaos the mask degenerates to the padded canvas rectangle.
package boundary

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"nodal/internal/domain"
	"nodal/internal/lattice"
)

// Noise field parameters
const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = 3
	noiseOffset = 137.31 // keeps samples off integer lattice points where noise is zero
)

// Threshold and weighting of the shaping score
const (
	baseThreshold  = 0.15
	chaosThreshold = 0.45
	noiseWeight    = 0.8
	boostRadius    = 0.25
	minLineOpacity = 0.25
)

// Options controls boundary shaping. Chaos and Elongation are fractions in
// [0,1]; Direction is in degrees.
type Options struct {
	Chaos      float64
	Direction  float64
	Elongation float64
	Seed       int64
}

// Region is the shaped, visible part of a lattice
type Region struct {
	lattice    *lattice.Lattice
	visible    []bool
	visibility []float64
	edges      map[domain.EdgeKey]bool
	cells      []lattice.Cell
	kept       []int

	Lines []domain.Line
}

// Shape scores, filters and connects the lattice cells, then restricts the
// lattice adjacency in place to the visible region.
func Shape(l *lattice.Lattice, opts Options) *Region {
	cells := l.Cells()
	pass := make([]bool, len(cells))

	if opts.Chaos <= 0 {
		pad := 2 * l.Spacing
		for i, c := range cells {
			pass[i] = inside(c.Centroid, l.Width, l.Height, pad)
		}
	} else {
		s := newScorer(l, opts)
		for i, c := range cells {
			pass[i] = s.passes(c.Centroid)
		}
		// The boost can miss every centroid when cells are large
		// relative to the canvas
		if center := centerCell(cells, l.Width/2, l.Height/2); center >= 0 {
			pass[center] = true
		}
	}

	comps := Components(cells, pass)
	var kept []int
	for _, comp := range comps {
		// Strict comparison keeps the earliest component on ties
		if len(comp) > len(kept) {
			kept = comp
		}
	}

	r := &Region{
		lattice:    l,
		visible:    make([]bool, l.Len()),
		visibility: make([]float64, l.Len()),
		edges:      make(map[domain.EdgeKey]bool),
		cells:      cells,
		kept:       kept,
	}
	r.collect()
	r.restrict()
	r.buildLines()

	return r
}

// centerCell returns the index of the cell whose centroid is nearest
// (cx, cy), or -1 when there are no cells
func centerCell(cells []lattice.Cell, cx, cy float64) int {
	best, bestD := -1, math.Inf(1)
	c := domain.Point{X: cx, Y: cy}
	for i, cell := range cells {
		if d := cell.Centroid.DistSq(c); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// scorer evaluates the noisy elliptical mask
type scorer struct {
	noise     *perlin.Perlin
	chaos     float64
	cos, sin  float64
	elong     float64
	halfDiag  float64
	freq      float64
	cx, cy    float64
	threshold float64
	w, h, pad float64
}

func newScorer(l *lattice.Lattice, opts Options) *scorer {
	diag := math.Hypot(l.Width, l.Height)
	rad := -opts.Direction * math.Pi / 180
	return &scorer{
		noise:     perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, opts.Seed),
		chaos:     opts.Chaos,
		cos:       math.Cos(rad),
		sin:       math.Sin(rad),
		elong:     1 + opts.Elongation*2,
		halfDiag:  diag / 2,
		freq:      (1 + 4*opts.Chaos) / diag * 2,
		cx:        l.Width / 2,
		cy:        l.Height / 2,
		threshold: baseThreshold + chaosThreshold*opts.Chaos,
		w:         l.Width,
		h:         l.Height,
		pad:       2 * l.Spacing,
	}
}

// score returns the shaping score of a point; higher is more central
func (s *scorer) score(p domain.Point) float64 {
	dx, dy := p.X-s.cx, p.Y-s.cy
	rx := dx*s.cos - dy*s.sin
	ry := dx*s.sin + dy*s.cos
	nd := math.Hypot(rx/s.elong, ry) / s.halfDiag

	centerBias := 1 - nd
	n := s.noise.Noise2D(p.X*s.freq+noiseOffset, p.Y*s.freq+noiseOffset)

	// Guarantees the middle of the canvas survives any noise
	boost := math.Max(0, 1-nd/boostRadius)
	boost *= boost

	return centerBias + n*s.chaos*noiseWeight + boost
}

func (s *scorer) passes(p domain.Point) bool {
	if !inside(p, s.w, s.h, s.pad) {
		return false
	}
	return s.score(p) > s.threshold
}

func inside(p domain.Point, w, h, pad float64) bool {
	return p.X >= -pad && p.X <= w+pad && p.Y >= -pad && p.Y <= h+pad
}

// Components groups the passing cells into edge-connected components.
// Components are returned in discovery order, cells within a component in
// breadth-first order.
func Components(cells []lattice.Cell, pass []bool) [][]int {
	byEdge := make(map[domain.EdgeKey][]int)
	for i, c := range cells {
		if !pass[i] {
			continue
		}
		for _, e := range c.Edges {
			byEdge[e] = append(byEdge[e], i)
		}
	}

	seen := make([]bool, len(cells))
	var comps [][]int
	for start := range cells {
		if !pass[start] || seen[start] {
			continue
		}

		var comp []int
		queue := linkedlistqueue.New()
		queue.Enqueue(start)
		seen[start] = true
		for !queue.Empty() {
			v, _ := queue.Dequeue()
			cur := v.(int)
			comp = append(comp, cur)
			for _, e := range cells[cur].Edges {
				for _, next := range byEdge[e] {
					if !seen[next] {
						seen[next] = true
						queue.Enqueue(next)
					}
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// collect marks visible vertices and edges from the kept cells and computes
// per-vertex visibility as the share of incident cells that were kept
func (r *Region) collect() {
	incident := make([]int, r.lattice.Len())
	for _, c := range r.cells {
		for _, v := range c.Vertices {
			incident[v]++
		}
	}

	keptIncident := make([]int, r.lattice.Len())
	for _, ci := range r.kept {
		c := r.cells[ci]
		for _, v := range c.Vertices {
			r.visible[v] = true
			keptIncident[v]++
		}
		for _, e := range c.Edges {
			r.edges[e] = true
		}
	}

	for v := range r.visibility {
		if incident[v] > 0 {
			r.visibility[v] = float64(keptIncident[v]) / float64(incident[v])
		}
	}
}

// restrict narrows each vertex's adjacency to visible neighbors joined by a
// visible edge. Hidden vertices lose all neighbors.
func (r *Region) restrict() {
	for v := range r.lattice.Vertices {
		if !r.visible[v] {
			r.lattice.SetNeighbors(v, nil)
			continue
		}
		raw := r.lattice.Vertices[v].Raw
		kept := make([]int, 0, len(raw))
		for _, n := range raw {
			if r.visible[n] && r.edges[domain.NewEdgeKey(v, n)] {
				kept = append(kept, n)
			}
		}
		r.lattice.SetNeighbors(v, kept)
	}
}

// buildLines emits each visible edge once, in vertex order. Opacity fades
// toward the rim where vertices touch fewer kept cells.
func (r *Region) buildLines() {
	for v := range r.lattice.Vertices {
		for _, n := range r.lattice.Neighbors(v) {
			if n < v {
				continue
			}
			a, b := r.lattice.Position(v), r.lattice.Position(n)
			op := math.Max(minLineOpacity, math.Min(r.visibility[v], r.visibility[n]))
			r.Lines = append(r.Lines, domain.Line{
				X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y,
				Opacity: op,
			})
		}
	}
}
