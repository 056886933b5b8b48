// Package animation advances per-connection and per-node animation state.
//
// Progress is measured in cycles: a mirror stream runs t over [0,2) and
// bounces, a loop stream runs t over [0,1), and a reveal runs t over
// [0,1.3) where the last 0.3 holds the fully drawn route. Each connection
// carries a fixed phase offset so trails are staggered.
package animation

import (
	"math"
	"time"

	"nodal/internal/domain"
	"nodal/internal/route"
)

// Mode is the animation style
type Mode string

const (
	Stream Mode = "stream"
	Reveal Mode = "reveal"
	Pulse  Mode = "pulse"
	None   Mode = "none"
)

// Behavior is the stream direction policy
type Behavior string

const (
	Mirror Behavior = "mirror" // Travel out and back
	Loop   Behavior = "loop"   // Restart from the origin
)

// Timing constants
const (
	progressRate = 0.3
	streamPhase  = 0.4
	revealHold   = 1.3
	pulseRate    = 3.0
	pulsePhase   = 1.2
	nodePhase    = 0.8
	nodeOffset   = 2.0
)

// Glow smoothing
const (
	riseRate     = 14.0
	decayRate    = 2.5
	idleDecay    = 0.9
	glowEpsilon  = 0.005
	glowEdgeFrom = 0.65
)

// Options configures the engine
type Options struct {
	Mode          Mode
	Behavior      Behavior
	LoopEase      bool
	Speed         float64 // 0..100
	StreamLength  float64 // Trail length as a fraction of the route
	TrailSegments int
	GlowRadius    float64
	NodePulse     bool
}

// SpeedMultiplier maps the 0..100 speed setting onto a time scale
func SpeedMultiplier(speed float64) float64 {
	return 0.1 + speed/100*2.9
}

// State is the progress of one connection
type State struct {
	T     float64 `json:"t"`
	Phase float64 `json:"phase"`
}

// Engine owns animation state for one scene. It is not safe for concurrent
// use.
type Engine struct {
	opts    Options
	playing bool
	clock   float64

	paths  [][]domain.Point
	nodes  []domain.Point
	states []State
	glows  []float64
}

// New creates a playing engine with no connections
func New(opts Options) *Engine {
	return &Engine{opts: opts, playing: true}
}

// Options returns the current options
func (e *Engine) Options() Options {
	return e.opts
}

// SetOptions changes options without resetting progress
func (e *Engine) SetOptions(opts Options) {
	e.opts = opts
}

// Sync rebuilds state for a new set of connections and nodes. All
// progress restarts at zero.
func (e *Engine) Sync(conns []domain.Connection, nodes []domain.Node) {
	e.paths = make([][]domain.Point, len(conns))
	for i, c := range conns {
		e.paths[i] = c.Points
	}
	e.nodes = make([]domain.Point, len(nodes))
	for i, n := range nodes {
		e.nodes[i] = n.Pos()
	}
	e.Reset()
}

// Reset returns every connection to its starting phase and clears glows
func (e *Engine) Reset() {
	e.clock = 0
	e.states = make([]State, len(e.paths))
	for i := range e.states {
		e.states[i] = State{Phase: float64(i) * streamPhase}
	}
	e.glows = make([]float64, len(e.nodes))
}

// Play resumes progress
func (e *Engine) Play() { e.playing = true }

// Pause freezes progress. Node glow keeps settling toward its target.
func (e *Engine) Pause() { e.playing = false }

// Toggle flips between playing and paused and returns the new state
func (e *Engine) Toggle() bool {
	e.playing = !e.playing
	return e.playing
}

// Playing reports whether progress advances
func (e *Engine) Playing() bool { return e.playing }

// Time returns the pulse clock in scaled seconds
func (e *Engine) Time() float64 { return e.clock }

// Update advances the engine by dt of wall time
func (e *Engine) Update(dt time.Duration) {
	d := dt.Seconds() * SpeedMultiplier(e.opts.Speed)
	if d < 0 {
		d = 0
	}

	if e.playing && e.opts.Mode != None {
		e.clock += d
		for i := range e.states {
			e.states[i].T = e.advance(e.states[i].T, d)
		}
	}

	if e.opts.Mode == Stream && e.opts.NodePulse {
		e.settleGlows(d)
	} else {
		e.decayGlows()
	}
}

// advance moves one progress value forward and wraps it into its cycle
func (e *Engine) advance(t, d float64) float64 {
	switch e.opts.Mode {
	case Stream:
		t += progressRate * d
		cycle := e.Cycle()
		for t >= cycle {
			t -= cycle
		}
	case Reveal:
		t += progressRate * d
		if t > revealHold {
			t = 0
		}
	}
	return t
}

// Cycle returns the progress period of the current mode
func (e *Engine) Cycle() float64 {
	switch e.opts.Mode {
	case Stream:
		if e.opts.Behavior == Loop {
			return 1
		}
		return 2
	case Reveal:
		return revealHold
	default:
		return 1
	}
}

// SetProgress sets every connection's progress directly. Phase offsets
// still apply on top.
func (e *Engine) SetProgress(t float64) {
	for i := range e.states {
		e.states[i].T = t
	}
}

// SetFrame positions the engine at frame index of total across one full
// progress cycle, with the pulse clock spanning duration. Frame total maps
// back onto frame zero, so exported sequences loop.
func (e *Engine) SetFrame(index, total int, duration time.Duration) {
	if total <= 0 {
		total = 1
	}
	f := float64(index%total) / float64(total)
	e.SetProgress(f * e.Cycle())
	e.clock = f * duration.Seconds()
}

// Checkpoint is a copy of engine progress
type Checkpoint struct {
	Clock   float64
	Playing bool
	States  []State
	Glows   []float64
}

// Save captures progress so it can be restored after an export
func (e *Engine) Save() Checkpoint {
	return Checkpoint{
		Clock:   e.clock,
		Playing: e.playing,
		States:  append([]State(nil), e.states...),
		Glows:   append([]float64(nil), e.glows...),
	}
}

// Restore reinstates a checkpoint taken from the same connection set
func (e *Engine) Restore(c Checkpoint) {
	e.clock = c.Clock
	e.playing = c.Playing
	if len(c.States) == len(e.states) {
		copy(e.states, c.States)
	}
	if len(c.Glows) == len(e.glows) {
		copy(e.glows, c.Glows)
	}
}

// States returns a copy of connection progress
func (e *Engine) States() []State {
	return append([]State(nil), e.states...)
}

// HeadT returns the eased head position of connection i as a route
// fraction in [0,1]
func (e *Engine) HeadT(i int) float64 {
	s := e.states[i]
	if e.opts.Behavior == Loop {
		raw := math.Mod(s.T+s.Phase, 1)
		if !e.opts.LoopEase {
			return raw
		}
		return ease(raw)
	}

	raw := math.Mod(s.T+s.Phase, 2)
	linear := raw
	if raw > 1 {
		linear = 2 - raw
	}
	return ease(linear)
}

func ease(t float64) float64 {
	return 0.5 - 0.5*math.Cos(math.Pi*t)
}

// Head returns the stream head position of connection i
func (e *Engine) Head(i int) domain.Point {
	return route.PointAt(e.paths[i], e.HeadT(i))
}

// Trail returns the stream trail of connection i from tail to head.
// Alpha grows with the cube of progress, width linearly, and glow only
// in the leading third.
func (e *Engine) Trail(i int) []domain.TrailSegment {
	head := e.HeadT(i)
	tail := math.Max(0, head-e.opts.StreamLength)
	if head <= tail+0.001 {
		return nil
	}

	n := max(10, e.opts.TrailSegments)
	pts := e.paths[i]
	segs := make([]domain.TrailSegment, n)
	for s := 0; s < n; s++ {
		t0 := tail + (head-tail)*float64(s)/float64(n)
		t1 := tail + (head-tail)*float64(s+1)/float64(n)
		p := float64(s+1) / float64(n)

		glow := 0.0
		if p > glowEdgeFrom {
			glow = (p - glowEdgeFrom) / (1 - glowEdgeFrom)
		}
		segs[s] = domain.TrailSegment{
			From:  route.PointAt(pts, t0),
			To:    route.PointAt(pts, t1),
			Alpha: p * p * p,
			Width: 0.3 + p*2,
			Glow:  glow,
		}
	}
	return segs
}

// RevealT returns the drawn fraction of connection i in reveal mode
func (e *Engine) RevealT(i int) float64 {
	s := e.states[i]
	t := math.Mod(s.T+s.Phase*progressRate, revealHold)
	return math.Min(t, 1)
}

// Reveal returns the drawn part of connection i
func (e *Engine) Reveal(i int) []domain.Point {
	return route.Truncate(e.paths[i], e.RevealT(i))
}

// Pulse returns the pulse level of connection i in [0.4,1]
func (e *Engine) Pulse(i int) float64 {
	return pulseLevel(e.clock*pulseRate + float64(i)*pulsePhase)
}

// NodePulse returns the ambient pulse level of node j in [0.4,1]
func (e *Engine) NodePulse(j int) float64 {
	return pulseLevel(e.clock*pulseRate + float64(j)*nodePhase + nodeOffset)
}

func pulseLevel(x float64) float64 {
	return 0.4 + 0.6*(0.5+0.5*math.Sin(x))
}

// Glow returns the smoothed proximity glow of node j in [0,1]
func (e *Engine) Glow(j int) float64 {
	return e.glows[j]
}

// glowTarget is the strongest quadratic falloff from any stream head
func (e *Engine) glowTarget(node domain.Point, heads []domain.Point) float64 {
	r := e.opts.GlowRadius
	if r <= 0 {
		return 0
	}
	target := 0.0
	for _, h := range heads {
		d := node.Dist(h)
		if d < r {
			f := 1 - d/r
			target = math.Max(target, f*f)
		}
	}
	return target
}

// settleGlows eases each node glow toward its target, rising fast and
// fading slowly
func (e *Engine) settleGlows(d float64) {
	if len(e.nodes) == 0 {
		return
	}
	heads := make([]domain.Point, len(e.paths))
	for i := range e.paths {
		heads[i] = e.Head(i)
	}

	for j, n := range e.nodes {
		target := e.glowTarget(n, heads)
		cur := e.glows[j]
		rate := decayRate
		if target > cur {
			rate = riseRate
		}
		cur += (target - cur) * math.Min(1, rate*d)
		e.glows[j] = clampGlow(cur)
	}
}

func (e *Engine) decayGlows() {
	for j := range e.glows {
		e.glows[j] = clampGlow(e.glows[j] * idleDecay)
	}
}

func clampGlow(g float64) float64 {
	if g < glowEpsilon {
		return 0
	}
	return math.Min(1, g)
}
