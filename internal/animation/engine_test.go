package animation

import (
	"math"
	"testing"
	"time"

	"nodal/internal/domain"
)

func line(x0, x1 float64) domain.Connection {
	return domain.Connection{Points: []domain.Point{{X: x0, Y: 0}, {X: x1, Y: 0}}}
}

func streamOpts() Options {
	return Options{
		Mode:          Stream,
		Behavior:      Mirror,
		Speed:         50,
		StreamLength:  0.12,
		TrailSegments: 15,
		GlowRadius:    40,
		NodePulse:     true,
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSpeedMultiplier(t *testing.T) {
	if got := SpeedMultiplier(0); !near(got, 0.1) {
		t.Errorf("SpeedMultiplier(0) = %v", got)
	}
	if got := SpeedMultiplier(100); !near(got, 3.0) {
		t.Errorf("SpeedMultiplier(100) = %v", got)
	}
}

func TestMirrorHeadEndpoints(t *testing.T) {
	e := New(streamOpts())
	e.Sync([]domain.Connection{line(0, 100)}, nil)

	tests := []struct {
		t    float64
		want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.5, 0.5},
		{1.9999999, 0},
	}
	for _, tt := range tests {
		e.SetProgress(tt.t)
		if got := e.HeadT(0); math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("HeadT at t=%v = %v, want %v", tt.t, got, tt.want)
		}
	}

	e.SetProgress(1)
	if h := e.Head(0); !near(h.X, 100) {
		t.Errorf("head at t=1 is %v, want route end", h)
	}
}

func TestLoopHead(t *testing.T) {
	opts := streamOpts()
	opts.Behavior = Loop
	opts.LoopEase = true
	e := New(opts)
	e.Sync([]domain.Connection{line(0, 100)}, nil)

	e.SetProgress(0.25)
	if got := e.HeadT(0); !near(got, ease(0.25)) {
		t.Errorf("eased loop HeadT = %v", got)
	}

	opts.LoopEase = false
	e.SetOptions(opts)
	if got := e.HeadT(0); !near(got, 0.25) {
		t.Errorf("linear loop HeadT = %v, want 0.25", got)
	}
}

func TestStreamWraps(t *testing.T) {
	e := New(streamOpts())
	e.Sync([]domain.Connection{line(0, 100), line(0, 100)}, nil)

	for i := 0; i < 2000; i++ {
		e.Update(16 * time.Millisecond)
		for _, s := range e.States() {
			if s.T < 0 || s.T >= 2 {
				t.Fatalf("progress %v escaped mirror cycle", s.T)
			}
		}
	}

	states := e.States()
	if !near(states[1].Phase, 0.4) {
		t.Errorf("second connection phase = %v, want 0.4", states[1].Phase)
	}
}

func TestRevealResets(t *testing.T) {
	opts := streamOpts()
	opts.Mode = Reveal
	e := New(opts)
	e.Sync([]domain.Connection{line(0, 100)}, nil)

	e.SetProgress(1.29)
	e.Update(time.Second)
	if got := e.States()[0].T; got != 0 {
		t.Errorf("progress after passing hold = %v, want 0", got)
	}

	e.SetProgress(0.5)
	pts := e.Reveal(0)
	if end := pts[len(pts)-1]; !near(end.X, 50) {
		t.Errorf("half reveal ends at %v, want x=50", end)
	}
	e.SetProgress(1.2)
	if got := e.RevealT(0); got != 1 {
		t.Errorf("RevealT during hold = %v, want 1", got)
	}
}

func TestTrail(t *testing.T) {
	e := New(streamOpts())
	e.Sync([]domain.Connection{line(0, 100)}, nil)

	e.SetProgress(0)
	if trail := e.Trail(0); trail != nil {
		t.Errorf("trail at origin has %d segments", len(trail))
	}

	e.SetProgress(0.5)
	trail := e.Trail(0)
	if len(trail) != 15 {
		t.Fatalf("got %d segments, want 15", len(trail))
	}
	last := trail[len(trail)-1]
	if !near(last.Alpha, 1) || !near(last.Width, 2.3) || !near(last.Glow, 1) {
		t.Errorf("head segment = %+v", last)
	}
	if trail[0].Glow != 0 {
		t.Errorf("tail segment glows: %v", trail[0].Glow)
	}
	if !near(last.To.X, e.Head(0).X) {
		t.Errorf("trail ends at %v, head at %v", last.To, e.Head(0))
	}

	opts := streamOpts()
	opts.TrailSegments = 3
	e.SetOptions(opts)
	if n := len(e.Trail(0)); n != 10 {
		t.Errorf("got %d segments, want minimum of 10", n)
	}
}

func TestPulseRange(t *testing.T) {
	opts := streamOpts()
	opts.Mode = Pulse
	e := New(opts)
	e.Sync([]domain.Connection{line(0, 10), line(0, 10), line(0, 10)}, []domain.Node{{X: 0}, {X: 10}})

	for i := 0; i < 500; i++ {
		e.Update(10 * time.Millisecond)
		for c := 0; c < 3; c++ {
			if p := e.Pulse(c); p < 0.4-1e-9 || p > 1+1e-9 {
				t.Fatalf("pulse %v out of range", p)
			}
		}
		for j := 0; j < 2; j++ {
			if p := e.NodePulse(j); p < 0.4-1e-9 || p > 1+1e-9 {
				t.Fatalf("node pulse %v out of range", p)
			}
		}
	}
}

func TestNodeGlow(t *testing.T) {
	e := New(streamOpts())
	nodes := []domain.Node{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 500}}
	e.Sync([]domain.Connection{line(0, 100)}, nodes)

	e.Pause()
	e.SetProgress(0)
	for i := 0; i < 60; i++ {
		e.Update(16 * time.Millisecond)
	}
	if g := e.Glow(0); g < 0.9 || g > 1 {
		t.Errorf("glow at head = %v, want near 1", g)
	}
	if g := e.Glow(1); g != 0 {
		t.Errorf("glow far from head = %v, want 0", g)
	}
	if g := e.Glow(2); g != 0 {
		t.Errorf("glow far from route = %v, want 0", g)
	}

	// Disabling the coupling decays every glow to exactly zero
	opts := streamOpts()
	opts.NodePulse = false
	e.SetOptions(opts)
	for i := 0; i < 200; i++ {
		e.Update(16 * time.Millisecond)
	}
	if g := e.Glow(0); g != 0 {
		t.Errorf("glow after decay = %v, want exactly 0", g)
	}
}

func TestGlowFadesAfterDisable(t *testing.T) {
	e := New(streamOpts())
	e.Sync([]domain.Connection{line(0, 100)}, []domain.Node{{X: 0}})
	e.Pause()
	e.SetProgress(0)
	for i := 0; i < 60; i++ {
		e.Update(16 * time.Millisecond)
	}

	opts := streamOpts()
	opts.NodePulse = false
	e.SetOptions(opts)

	prev := 1.0
	for i := 0; i < 200; i++ {
		e.Update(16 * time.Millisecond)
		f := e.Frame()
		if e.Glow(0) == 0 {
			if len(f.NodeGlow) != 0 {
				t.Errorf("frame still carries glow after fade: %v", f.NodeGlow)
			}
			return
		}
		if len(f.NodeGlow) != 1 {
			t.Fatalf("fading glow missing from frame at step %d", i)
		}
		if f.NodeGlow[0] > prev {
			t.Errorf("glow rose while disabled: %v > %v", f.NodeGlow[0], prev)
		}
		prev = f.NodeGlow[0]
	}
	t.Error("glow never faded to zero")
}

func TestGlowBounded(t *testing.T) {
	e := New(streamOpts())
	nodes := []domain.Node{{X: 0}, {X: 25}, {X: 50}, {X: 75}, {X: 100}}
	e.Sync([]domain.Connection{line(0, 100), line(100, 0), line(0, 100)}, nodes)

	for i := 0; i < 1000; i++ {
		e.Update(33 * time.Millisecond)
		for j := range nodes {
			if g := e.Glow(j); g < 0 || g > 1 || (g > 0 && g < glowEpsilon) {
				t.Fatalf("glow %v out of range", g)
			}
		}
	}
}

func TestPauseFreezesProgress(t *testing.T) {
	e := New(streamOpts())
	e.Sync([]domain.Connection{line(0, 100)}, nil)
	e.Update(100 * time.Millisecond)

	before := e.States()[0].T
	clock := e.Time()
	e.Pause()
	e.Update(time.Second)
	if e.States()[0].T != before || e.Time() != clock {
		t.Error("paused engine advanced")
	}

	if !e.Toggle() {
		t.Error("toggle should resume")
	}
	e.Update(100 * time.Millisecond)
	if e.States()[0].T == before {
		t.Error("resumed engine did not advance")
	}
}

func TestNoneModeIsInert(t *testing.T) {
	opts := streamOpts()
	opts.Mode = None
	e := New(opts)
	e.Sync([]domain.Connection{line(0, 100)}, []domain.Node{{X: 0}})

	e.Update(time.Second)
	if e.States()[0].T != 0 || e.Time() != 0 {
		t.Error("disabled mode advanced")
	}
	f := e.Frame()
	if f.Heads != nil || f.Trails != nil || f.Reveals != nil || f.Pulses != nil {
		t.Errorf("disabled mode produced frame content: %+v", f)
	}
}

func TestEmptyEngine(t *testing.T) {
	e := New(streamOpts())
	e.Sync(nil, nil)
	e.Update(time.Second)
	f := e.Frame()
	if len(f.Heads) != 0 || len(f.NodeGlow) != 0 {
		t.Errorf("empty engine produced %+v", f)
	}
}

func TestFrameAtIsReproducible(t *testing.T) {
	e := New(streamOpts())
	nodes := []domain.Node{{X: 0}, {X: 100}}
	e.Sync([]domain.Connection{line(0, 100), line(100, 0)}, nodes)
	e.Update(250 * time.Millisecond)

	a := e.FrameAt(7, 30, 3*time.Second)
	e.Update(500 * time.Millisecond)
	b := e.FrameAt(7, 30, 3*time.Second)

	for i := range a.Heads {
		if a.Heads[i] != b.Heads[i] {
			t.Errorf("head %d differs: %v vs %v", i, a.Heads[i], b.Heads[i])
		}
	}
	if !near(a.Time, 0.7) {
		t.Errorf("frame clock = %v, want 0.7", a.Time)
	}

	// Frame total wraps to the first frame
	first := e.FrameAt(0, 30, 3*time.Second)
	wrapped := e.FrameAt(30, 30, 3*time.Second)
	if first.Heads[0] != wrapped.Heads[0] {
		t.Error("frame sequence does not loop")
	}
}

func TestFrameAtRestoresProgress(t *testing.T) {
	e := New(streamOpts())
	e.Sync([]domain.Connection{line(0, 100)}, []domain.Node{{X: 0}})
	e.Update(300 * time.Millisecond)

	before := e.Save()
	e.FrameAt(12, 30, 3*time.Second)
	after := e.Save()

	if before.Clock != after.Clock || before.States[0] != after.States[0] || before.Glows[0] != after.Glows[0] {
		t.Errorf("FrameAt changed live state: %+v -> %+v", before, after)
	}
}

func TestFrameModes(t *testing.T) {
	conns := []domain.Connection{line(0, 100)}
	nodes := []domain.Node{{X: 0}}

	for _, mode := range []Mode{Stream, Reveal, Pulse} {
		opts := streamOpts()
		opts.Mode = mode
		e := New(opts)
		e.Sync(conns, nodes)
		e.Update(200 * time.Millisecond)

		f := e.Frame()
		if f.Mode != string(mode) {
			t.Errorf("frame mode = %q, want %q", f.Mode, mode)
		}
		switch mode {
		case Stream:
			if len(f.Heads) != 1 || len(f.Trails) != 1 || len(f.NodeGlow) != 1 {
				t.Errorf("stream frame incomplete: %+v", f)
			}
		case Reveal:
			if len(f.Reveals) != 1 {
				t.Errorf("reveal frame incomplete: %+v", f)
			}
		case Pulse:
			if len(f.Pulses) != 1 || len(f.NodePulses) != 1 {
				t.Errorf("pulse frame incomplete: %+v", f)
			}
		}
	}
}
