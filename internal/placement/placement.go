// Package placement picks node sites among the visible lattice vertices.
//
// Candidates are ranked by a blend of a structured score and a random
// score, then accepted greedily while they keep a minimum distance from
// every node already placed. The structured score either favors a
// diagonal sweep across the canvas or proximity to a straight axis.
package placement

import (
	"math"
	"math/rand"
	"sort"

	"nodal/internal/domain"
)

// Bias selects the structured score
type Bias int

const (
	Directional Bias = iota // Sweep forward along the axis
	Axis                    // Cluster along the axis through the center
)

// DefaultPadding keeps nodes away from the canvas edge
const DefaultPadding = 60

// Options controls node selection
type Options struct {
	Count     int
	Bias      Bias
	AxisAngle float64 // Degrees, 0 points right, 90 down
	Chaos     float64 // 0 is fully structured, 1 fully random
	Size      float64 // Node radius, drives separation
}

// MinSeparation returns the minimum distance between node centers. It
// shrinks as the requested count grows so dense layouts still fit, but
// never below twice the node size.
func MinSeparation(size float64, count int) float64 {
	base := size * 4
	if count <= 0 {
		return base
	}
	return math.Max(size*2, base*math.Sqrt(8/float64(count)))
}

type scored struct {
	site  domain.VertexPos
	score float64
}

// Select picks up to opts.Count candidates. It returns fewer when not
// enough candidates satisfy the separation. One random draw is consumed
// per candidate, in candidate order, regardless of chaos.
func Select(candidates []domain.VertexPos, width, height float64, opts Options, rng *rand.Rand) []domain.Node {
	if opts.Count <= 0 || len(candidates) == 0 {
		return nil
	}

	cx, cy := width/2, height/2
	maxExtent := math.Hypot(width, height) / 2
	chaos := math.Max(0, math.Min(1, opts.Chaos))

	rad := opts.AxisAngle * math.Pi / 180
	ax, ay := math.Cos(rad), math.Sin(rad)

	ranked := make([]scored, len(candidates))
	for i, c := range candidates {
		dx, dy := c.X-cx, c.Y-cy
		proj := dx*ax + dy*ay
		rej := math.Abs(dx*ay - dy*ax)

		var structured, random float64
		r := rng.Float64()
		if opts.Bias == Axis {
			structured = 1 - rej/maxExtent
			random = r
		} else {
			structured = proj - 1.5*rej
			random = (r - 0.5) * 2 * maxExtent
		}

		ranked[i] = scored{site: c, score: structured*(1-chaos) + random*chaos}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	sep := MinSeparation(opts.Size, opts.Count)
	sepSq := sep * sep
	nodes := make([]domain.Node, 0, opts.Count)
	for _, s := range ranked {
		if len(nodes) == opts.Count {
			break
		}
		p := s.site.Pos()
		ok := true
		for _, n := range nodes {
			if p.DistSq(n.Pos()) < sepSq {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		nodes = append(nodes, domain.Node{
			ID:     len(nodes),
			Vertex: s.site.Vertex,
			X:      p.X,
			Y:      p.Y,
			Size:   opts.Size,
		})
	}

	return nodes
}
