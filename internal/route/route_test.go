package route

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"nodal/internal/domain"
)

// gridGraph is a square lattice of cols x rows vertices spaced 10 apart,
// with optional hidden vertices
type gridGraph struct {
	cols, rows int
	hidden     map[int]bool
}

func (g gridGraph) Has(v int) bool {
	return v >= 0 && v < g.cols*g.rows && !g.hidden[v]
}

func (g gridGraph) Neighbors(v int) []int {
	if !g.Has(v) {
		return nil
	}
	c, r := v%g.cols, v/g.cols
	var out []int
	for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nc, nr := c+d[0], r+d[1]
		if nc < 0 || nc >= g.cols || nr < 0 || nr >= g.rows {
			continue
		}
		if n := nr*g.cols + nc; g.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

func (g gridGraph) Position(v int) domain.Point {
	return domain.Point{X: float64(v%g.cols) * 10, Y: float64(v/g.cols) * 10}
}

func TestShortestPath(t *testing.T) {
	g := gridGraph{cols: 5, rows: 5}

	t.Run("minimum hops", func(t *testing.T) {
		path := ShortestPath(g, 0, 24)
		if len(path) != 9 {
			t.Fatalf("path has %d vertices, want 9", len(path))
		}
		if path[0] != 0 || path[len(path)-1] != 24 {
			t.Errorf("path endpoints %d..%d, want 0..24", path[0], path[len(path)-1])
		}
		for i := 1; i < len(path); i++ {
			if g.Position(path[i-1]).Dist(g.Position(path[i])) != 10 {
				t.Fatalf("step %d-%d is not a lattice edge", path[i-1], path[i])
			}
		}
	})

	t.Run("ties follow neighbor order", func(t *testing.T) {
		// Right is explored before down
		want := []int{0, 1, 2, 3, 4, 9, 14, 19, 24}
		if got := ShortestPath(g, 0, 24); !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("start equals end", func(t *testing.T) {
		if got := ShortestPath(g, 7, 7); !reflect.DeepEqual(got, []int{7}) {
			t.Errorf("got %v, want [7]", got)
		}
	})

	t.Run("absent endpoint", func(t *testing.T) {
		if got := ShortestPath(g, 0, 99); got != nil {
			t.Errorf("got %v, want nil", got)
		}
		hidden := gridGraph{cols: 5, rows: 5, hidden: map[int]bool{0: true}}
		if got := ShortestPath(hidden, 0, 3); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})

	t.Run("disconnected", func(t *testing.T) {
		// Hide the middle column
		wall := gridGraph{cols: 5, rows: 5, hidden: map[int]bool{2: true, 7: true, 12: true, 17: true, 22: true}}
		if got := ShortestPath(wall, 0, 4); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}

func TestSmooth(t *testing.T) {
	pts := []domain.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 10}}

	got := Smooth(pts, 4)
	if len(got) != 3*4+1 {
		t.Fatalf("got %d points, want 13", len(got))
	}
	if got[0] != pts[0] || got[len(got)-1] != pts[len(pts)-1] {
		t.Errorf("endpoints %v..%v not preserved", got[0], got[len(got)-1])
	}
	// Control points are interpolated
	for i, p := range pts[:3] {
		if q := got[i*4]; math.Abs(q.X-p.X) > 1e-9 || math.Abs(q.Y-p.Y) > 1e-9 {
			t.Errorf("sample %d = %v, want %v", i*4, q, p)
		}
	}

	short := []domain.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}
	copied := Smooth(short, 4)
	if !reflect.DeepEqual(copied, short) {
		t.Errorf("short input changed: %v", copied)
	}
	copied[0].X = 99
	if short[0].X != 1 {
		t.Error("short input was not copied")
	}
}

func TestLengthAndPointAt(t *testing.T) {
	pts := []domain.Point{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 10}}
	if got := Length(pts); got != 40 {
		t.Errorf("Length = %v, want 40", got)
	}

	tests := []struct {
		t    float64
		want domain.Point
	}{
		{-1, domain.Point{X: 0, Y: 0}},
		{0, domain.Point{X: 0, Y: 0}},
		{0.5, domain.Point{X: 20, Y: 0}},
		{0.875, domain.Point{X: 30, Y: 5}},
		{1, domain.Point{X: 30, Y: 10}},
		{2, domain.Point{X: 30, Y: 10}},
	}
	for _, tt := range tests {
		if got := PointAt(pts, tt.t); got.Dist(tt.want) > 1e-9 {
			t.Errorf("PointAt(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}

	if got := PointAt(nil, 0.5); got != (domain.Point{}) {
		t.Errorf("PointAt(nil) = %v", got)
	}
}

func TestPointAtMonotonic(t *testing.T) {
	pts := Smooth([]domain.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}, {X: 30, Y: 0}}, 4)
	total := Length(pts)
	prev := -1.0
	for i := 0; i <= 100; i++ {
		p := PointAt(pts, float64(i)/100)
		walked := Length(Truncate(pts, float64(i)/100))
		if walked < prev-1e-9 {
			t.Fatalf("arc length decreased at t=%v", float64(i)/100)
		}
		if math.Abs(walked-total*float64(i)/100) > 1e-6 {
			t.Fatalf("t=%v walked %v, want %v", float64(i)/100, walked, total*float64(i)/100)
		}
		if i > 0 && i < 100 {
			if last := Truncate(pts, float64(i)/100); last[len(last)-1] != p {
				t.Fatalf("Truncate end %v differs from PointAt %v", last[len(last)-1], p)
			}
		}
		prev = walked
	}
}

func cornerNodes(g gridGraph) []domain.Node {
	last := g.cols*g.rows - 1
	verts := []int{0, g.cols - 1, last - g.cols + 1, last}
	nodes := make([]domain.Node, len(verts))
	for i, v := range verts {
		p := g.Position(v)
		nodes[i] = domain.Node{ID: i, Vertex: v, X: p.X, Y: p.Y, Size: 4}
	}
	return nodes
}

func TestPairwiseCoverage(t *testing.T) {
	g := gridGraph{cols: 3, rows: 3}
	nodes := cornerNodes(g)

	for seed := int64(0); seed < 20; seed++ {
		r := NewRouter(g, Options{Count: 3, Smooth: true, Resolution: 4}, rand.New(rand.NewSource(seed)))
		conns := r.Route(nodes)
		if len(conns) != 3 {
			t.Fatalf("seed %d: got %d connections, want 3", seed, len(conns))
		}

		touched := make(map[int]bool)
		for i, c := range conns {
			if c.ID != i {
				t.Errorf("connection %d has id %d", i, c.ID)
			}
			if len(c.Points) < 2 {
				t.Fatalf("connection %d has %d points", i, len(c.Points))
			}
			from, to := nodes[c.From()], nodes[c.To()]
			if c.Points[0] != from.Pos() || c.Points[len(c.Points)-1] != to.Pos() {
				t.Errorf("connection %d does not start and end at its nodes", i)
			}
			touched[c.From()] = true
			touched[c.To()] = true
		}
		if len(touched) != len(nodes) {
			t.Errorf("seed %d: %d of %d nodes connected", seed, len(touched), len(nodes))
		}
	}
}

func TestPairwiseShortest(t *testing.T) {
	g := gridGraph{cols: 5, rows: 3}
	nodes := cornerNodes(g)
	r := NewRouter(g, Options{Count: 2, Pairing: Shortest}, rand.New(rand.NewSource(1)))

	conns := r.Route(nodes)
	if len(conns) != 2 {
		t.Fatalf("got %d connections, want 2", len(conns))
	}
	// The two vertical sides are the shortest pairs
	for _, c := range conns {
		if c.Length != 20 {
			t.Errorf("connection %v has length %v, want 20", c.Stops, c.Length)
		}
	}
}

func TestPairwiseSkipsUnreachable(t *testing.T) {
	g := gridGraph{cols: 3, rows: 3, hidden: map[int]bool{1: true, 4: true, 7: true}}
	nodes := cornerNodes(g)
	r := NewRouter(g, Options{Count: 6}, rand.New(rand.NewSource(1)))

	conns := r.Route(nodes)
	if len(conns) != 2 {
		t.Errorf("got %d connections, want the 2 reachable pairs", len(conns))
	}
}

func TestCircuits(t *testing.T) {
	g := gridGraph{cols: 6, rows: 6}
	var nodes []domain.Node
	for i, v := range []int{0, 5, 14, 21, 30, 35} {
		p := g.Position(v)
		nodes = append(nodes, domain.Node{ID: i, Vertex: v, X: p.X, Y: p.Y})
	}

	r := NewRouter(g, Options{Count: 4, Mode: Circuit}, rand.New(rand.NewSource(3)))
	conns := r.Route(nodes)
	if len(conns) != 4 {
		t.Fatalf("got %d circuits, want 4", len(conns))
	}
	for _, c := range conns {
		if len(c.Stops) < 3 || len(c.Stops) > 6 {
			t.Errorf("circuit has %d stops", len(c.Stops))
		}
		if !c.IsCircuit() {
			t.Error("expected circuit")
		}
		for i := 1; i < len(c.Vertices); i++ {
			if c.Vertices[i] == c.Vertices[i-1] {
				t.Fatalf("duplicate joint at %d", i)
			}
		}
		if len(c.Points) != len(c.Vertices) {
			t.Errorf("unsmoothed circuit has %d points for %d vertices", len(c.Points), len(c.Vertices))
		}
	}
}

func TestCircuitsBoundedByNodes(t *testing.T) {
	g := gridGraph{cols: 3, rows: 3}
	nodes := cornerNodes(g)[:2]
	r := NewRouter(g, Options{Count: 2, Mode: Circuit}, rand.New(rand.NewSource(1)))

	for _, c := range r.Route(nodes) {
		if len(c.Stops) != 2 {
			t.Errorf("circuit has %d stops, want 2", len(c.Stops))
		}
	}
}

func TestRouteNeedsTwoNodes(t *testing.T) {
	g := gridGraph{cols: 3, rows: 3}
	r := NewRouter(g, Options{Count: 3}, rand.New(rand.NewSource(1)))
	if conns := r.Route(cornerNodes(g)[:1]); conns != nil {
		t.Errorf("expected no connections, got %d", len(conns))
	}
}
