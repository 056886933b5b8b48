package route

import (
	"math/rand"
	"sort"

	"nodal/internal/domain"
)

// Mode selects how connections are formed
type Mode int

const (
	Pairwise Mode = iota // One path per node pair
	Circuit              // Multi-stop tours through several nodes
)

// Pairing orders candidate pairs in Pairwise mode
type Pairing int

const (
	Coverage Pairing = iota // Reach every node before doubling up
	Shortest                // Nearest pairs first
)

// Circuit sizing
const (
	minCircuitStops   = 3
	circuitStopsRange = 4
)

// Options controls connection routing
type Options struct {
	Count      int
	Mode       Mode
	Pairing    Pairing
	Smooth     bool
	Resolution int
}

// Router turns nodes into connections over a graph
type Router struct {
	graph Graph
	opts  Options
	rng   *rand.Rand
}

// NewRouter creates a router. The random source drives pair shuffling and
// circuit composition.
func NewRouter(g Graph, opts Options, rng *rand.Rand) *Router {
	return &Router{graph: g, opts: opts, rng: rng}
}

// Route builds up to opts.Count connections. Pairs or circuits with no
// lattice route are skipped, so fewer connections may be returned.
func (r *Router) Route(nodes []domain.Node) []domain.Connection {
	if r.opts.Count <= 0 || len(nodes) < 2 {
		return nil
	}
	if r.opts.Mode == Circuit {
		return r.circuits(nodes)
	}
	return r.pairwise(nodes)
}

type pair struct {
	a, b int // Indices into the node slice
}

func (r *Router) pairwise(nodes []domain.Node) []domain.Connection {
	var pairs []pair
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			pairs = append(pairs, pair{i, j})
		}
	}

	var order []pair
	if r.opts.Pairing == Shortest {
		sort.SliceStable(pairs, func(i, j int) bool {
			pi, pj := pairs[i], pairs[j]
			return nodes[pi.a].Pos().DistSq(nodes[pi.b].Pos()) < nodes[pj.a].Pos().DistSq(nodes[pj.b].Pos())
		})
		order = pairs
	} else {
		r.shuffle(pairs)
		order = coverageOrder(pairs, len(nodes), r.opts.Count)
	}

	var conns []domain.Connection
	for _, p := range order {
		if len(conns) == r.opts.Count {
			break
		}
		if c, ok := r.connect(nodes, []int{p.a, p.b}); ok {
			c.ID = len(conns)
			conns = append(conns, c)
		}
	}
	return conns
}

// shuffle is a Fisher-Yates pass driven by the router's random source
func (r *Router) shuffle(pairs []pair) {
	for i := len(pairs) - 1; i > 0; i-- {
		j := r.rng.Intn(i + 1)
		pairs[i], pairs[j] = pairs[j], pairs[i]
	}
}

// coverageOrder moves pairs that touch a not yet connected node to the
// front, keeping the shuffled order within each group. The first pass stops
// once count pairs are chosen.
func coverageOrder(pairs []pair, nodeCount, count int) []pair {
	used := make([]bool, len(pairs))
	degree := make([]int, nodeCount)
	order := make([]pair, 0, len(pairs))

	for i, p := range pairs {
		if len(order) == count {
			break
		}
		if degree[p.a] == 0 || degree[p.b] == 0 {
			used[i] = true
			degree[p.a]++
			degree[p.b]++
			order = append(order, p)
		}
	}
	for i, p := range pairs {
		if !used[i] {
			order = append(order, p)
		}
	}
	return order
}

func (r *Router) circuits(nodes []domain.Node) []domain.Connection {
	var conns []domain.Connection
	for c := 0; c < r.opts.Count; c++ {
		k := minCircuitStops + r.rng.Intn(circuitStopsRange)
		if k > len(nodes) {
			k = len(nodes)
		}
		stops := r.rng.Perm(len(nodes))[:k]

		if conn, ok := r.connect(nodes, stops); ok {
			conn.ID = len(conns)
			conns = append(conns, conn)
		}
	}
	return conns
}

// connect routes through the given node indices in order. Joints shared by
// consecutive legs appear once. Any missing leg fails the whole connection.
func (r *Router) connect(nodes []domain.Node, stops []int) (domain.Connection, bool) {
	var chain []int
	ids := make([]int, len(stops))
	for i, s := range stops {
		ids[i] = nodes[s].ID
		if i == 0 {
			continue
		}
		leg := ShortestPath(r.graph, nodes[stops[i-1]].Vertex, nodes[s].Vertex)
		if leg == nil {
			return domain.Connection{}, false
		}
		if len(chain) > 0 {
			leg = leg[1:]
		}
		chain = append(chain, leg...)
	}

	pts := Positions(r.graph, chain)
	if r.opts.Smooth {
		pts = Smooth(pts, r.opts.Resolution)
	}

	return domain.Connection{
		Stops:    ids,
		Vertices: chain,
		Points:   pts,
		Length:   Length(pts),
	}, true
}
