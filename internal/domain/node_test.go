package domain

import "testing"

func TestConnectionEndpoints(t *testing.T) {
	t.Run("pairwise connection", func(t *testing.T) {
		c := Connection{Stops: []int{2, 5}}
		if c.From() != 2 || c.To() != 5 {
			t.Errorf("expected 2->5, got %d->%d", c.From(), c.To())
		}
		if c.IsCircuit() {
			t.Error("expected two-stop connection not to be a circuit")
		}
	})

	t.Run("circuit", func(t *testing.T) {
		c := Connection{Stops: []int{1, 4, 0, 3}}
		if c.From() != 1 || c.To() != 3 {
			t.Errorf("expected 1->3, got %d->%d", c.From(), c.To())
		}
		if !c.IsCircuit() {
			t.Error("expected four-stop connection to be a circuit")
		}
	})

	t.Run("empty", func(t *testing.T) {
		var c Connection
		if c.From() != -1 || c.To() != -1 {
			t.Errorf("expected -1 endpoints, got %d->%d", c.From(), c.To())
		}
	})
}

func TestNodePos(t *testing.T) {
	n := Node{X: 12.5, Y: -3}
	if n.Pos() != Pt(12.5, -3) {
		t.Errorf("expected (12.5,-3), got %v", n.Pos())
	}
}
