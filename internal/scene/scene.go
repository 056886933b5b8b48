// Package scene owns one generated composition: the shaped lattice, its
// nodes and connections, and the animation state that plays over them.
//
// A Scene is the single source of truth for everything downstream. It is
// not safe for concurrent use; the service layer serializes access.
package scene

import (
	"math/rand"
	"time"

	"nodal/internal/animation"
	"nodal/internal/boundary"
	"nodal/internal/config"
	"nodal/internal/domain"
	"nodal/internal/lattice"
	"nodal/internal/placement"
	"nodal/internal/route"
)

// Scene is a generated composition and its animation
type Scene struct {
	cfg config.SceneConfig
	rng *rand.Rand

	lattice *lattice.Lattice
	region  *boundary.Region
	nodes   []domain.Node
	conns   []domain.Connection
	anim    *animation.Engine
}

// New clamps the configuration and generates a scene from its seed
func New(cfg config.SceneConfig) *Scene {
	cfg.Clamp()
	s := &Scene{
		cfg:  cfg,
		anim: animation.New(animationOptions(cfg)),
	}
	s.Regenerate()
	return s
}

// Config returns the active configuration
func (s *Scene) Config() config.SceneConfig {
	return s.cfg
}

// Regenerate rebuilds the whole scene from the configured seed. The same
// seed and configuration always produce the same geometry.
func (s *Scene) Regenerate() {
	s.rng = rand.New(rand.NewSource(s.cfg.Seed))
	s.buildGrid()
	s.buildNodes()
	s.buildConnections()
}

// Resize sets a new canvas size and regenerates
func (s *Scene) Resize(width, height int) {
	s.cfg.Canvas.Width = width
	s.cfg.Canvas.Height = height
	s.cfg.Clamp()
	s.Regenerate()
}

// Reseed sets a new seed and regenerates
func (s *Scene) Reseed(seed int64) {
	s.cfg.Seed = seed
	s.Regenerate()
}

// RegenerateNodes picks a fresh set of nodes on the current grid and routes
// new connections between them. The random sequence continues from the
// previous generation, so each call yields a new variation.
func (s *Scene) RegenerateNodes() {
	s.buildNodes()
	s.buildConnections()
}

// RegenerateConnections reroutes between the current nodes
func (s *Scene) RegenerateConnections() {
	s.buildConnections()
}

func (s *Scene) buildGrid() {
	w, h := s.canvas()
	fam := lattice.Square
	if s.cfg.Grid.Type.Triangular() {
		fam = lattice.Triangular
	}

	s.lattice = lattice.Build(w, h, fam, s.cfg.Grid.CellSize)
	s.region = boundary.Shape(s.lattice, boundary.Options{
		Chaos:      s.cfg.Grid.ShapeChaos / 100,
		Direction:  s.cfg.Grid.ShapeDirection,
		Elongation: s.cfg.Grid.ShapeElongation / 100,
		Seed:       s.cfg.Seed,
	})
}

func (s *Scene) buildNodes() {
	w, h := s.canvas()
	nc := s.cfg.Nodes
	bias := placement.Directional
	if nc.Bias == config.BiasAxis {
		bias = placement.Axis
	}

	s.nodes = placement.Select(s.region.VisiblePositions(placement.DefaultPadding), w, h, placement.Options{
		Count:     nc.Count,
		Bias:      bias,
		AxisAngle: nc.AxisAngle,
		Chaos:     nc.Chaos / 100,
		Size:      nc.Size,
	}, s.rng)
}

func (s *Scene) buildConnections() {
	s.conns = route.NewRouter(s.region, routeOptions(s.cfg.Connections), s.rng).Route(s.nodes)
	s.anim.Sync(s.conns, s.nodes)
}

func (s *Scene) canvas() (float64, float64) {
	return float64(s.cfg.Canvas.Width), float64(s.cfg.Canvas.Height)
}

func routeOptions(cc config.ConnectionsConfig) route.Options {
	opts := route.Options{
		Count:      cc.Count,
		Smooth:     cc.Smooth,
		Resolution: cc.SmoothResolution,
	}
	if cc.Mode == config.RouteCircuit {
		opts.Mode = route.Circuit
	}
	if cc.Pairing == config.PairShortest {
		opts.Pairing = route.Shortest
	}
	return opts
}

func animationOptions(cfg config.SceneConfig) animation.Options {
	ac := cfg.Animation
	return animation.Options{
		Mode:          animation.Mode(ac.Mode),
		Behavior:      animation.Behavior(ac.Behavior),
		LoopEase:      ac.LoopEase,
		Speed:         ac.Speed,
		StreamLength:  ac.StreamLength,
		TrailSegments: ac.TrailLength,
		GlowRadius:    ac.GlowRadius,
		NodePulse:     ac.NodePulse,
	}
}

// Update advances the animation by dt
func (s *Scene) Update(dt time.Duration) {
	s.anim.Update(dt)
}

// Animation exposes playback control
func (s *Scene) Animation() *animation.Engine {
	return s.anim
}

// Graph returns the render-ready geometry
func (s *Scene) Graph() domain.Graph {
	w, h := s.canvas()
	return domain.Graph{
		Width:       w,
		Height:      h,
		Vertices:    s.region.VertexCount(),
		Lines:       s.region.Lines,
		Nodes:       s.nodes,
		Connections: s.conns,
	}
}

// Frame returns the current animation frame
func (s *Scene) Frame() domain.Frame {
	return s.anim.Frame()
}

// FrameAt returns frame index of total for an export of the configured
// duration, leaving live playback untouched
func (s *Scene) FrameAt(index, total int) domain.Frame {
	return s.anim.FrameAt(index, total, s.cfg.Export.Duration.Duration())
}

// Nodes returns the placed nodes
func (s *Scene) Nodes() []domain.Node {
	return s.nodes
}

// Connections returns the routed connections
func (s *Scene) Connections() []domain.Connection {
	return s.conns
}

// Region returns the shaped lattice region
func (s *Scene) Region() *boundary.Region {
	return s.region
}

// Nearest returns the visible vertex closest to p
func (s *Scene) Nearest(p domain.Point) (domain.VertexPos, bool) {
	return s.region.Nearest(p)
}

// VisiblePositions lists visible vertices at least padding inside the canvas
func (s *Scene) VisiblePositions(padding float64) []domain.VertexPos {
	return s.region.VisiblePositions(padding)
}

// Stats summarizes the generated scene
type Stats struct {
	Seed        int64 `json:"seed"`
	Vertices    int   `json:"vertices"`
	Cells       int   `json:"cells"`
	Lines       int   `json:"lines"`
	Nodes       int   `json:"nodes"`
	Connections int   `json:"connections"`
}

// Stats returns counts for the current generation
func (s *Scene) Stats() Stats {
	return Stats{
		Seed:        s.cfg.Seed,
		Vertices:    s.region.VertexCount(),
		Cells:       s.region.CellCount(),
		Lines:       len(s.region.Lines),
		Nodes:       len(s.nodes),
		Connections: len(s.conns),
	}
}
