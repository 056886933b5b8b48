package domain

import (
	"testing"
)

func TestNewEdgeKey(t *testing.T) {
	t.Run("normalizes endpoint order", func(t *testing.T) {
		k1 := NewEdgeKey(3, 7)
		k2 := NewEdgeKey(7, 3)

		if k1 != k2 {
			t.Errorf("expected reversed endpoints to produce same key, got %v and %v", k1, k2)
		}
		if k1.A != 3 || k1.B != 7 {
			t.Errorf("expected {3 7}, got %v", k1)
		}
	})

	t.Run("usable as map key", func(t *testing.T) {
		seen := map[EdgeKey]bool{NewEdgeKey(1, 2): true}
		if !seen[NewEdgeKey(2, 1)] {
			t.Error("expected lookup with reversed endpoints to hit")
		}
	})

	t.Run("string form", func(t *testing.T) {
		if s := NewEdgeKey(9, 4).String(); s != "4-9" {
			t.Errorf("expected '4-9', got %s", s)
		}
	})
}

func TestEdgeKeyOther(t *testing.T) {
	k := NewEdgeKey(5, 2)

	if got := k.Other(2); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := k.Other(5); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := k.Other(9); got != -1 {
		t.Errorf("expected -1 for non-endpoint, got %d", got)
	}
}
