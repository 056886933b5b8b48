package scene

import "nodal/internal/config"

// Level is how much of a scene a configuration change rebuilt
type Level int

const (
	LevelStyle       Level = iota // Drawing only
	LevelAnimation                // Animation options changed
	LevelConnections              // Connections rerouted
	LevelNodes                    // Nodes and connections rebuilt
	LevelGrid                     // Everything rebuilt
)

// String returns the level name
func (l Level) String() string {
	switch l {
	case LevelAnimation:
		return "animation"
	case LevelConnections:
		return "connections"
	case LevelNodes:
		return "nodes"
	case LevelGrid:
		return "grid"
	default:
		return "style"
	}
}

// Apply switches to a new configuration and rebuilds only what the change
// affects. A grid change reseeds, so it reproduces the seed's layout;
// narrower changes continue the current random sequence.
func (s *Scene) Apply(cfg config.SceneConfig) Level {
	cfg.Clamp()
	old := s.cfg
	s.cfg = cfg

	level := LevelStyle
	if animationOptions(old) != animationOptions(cfg) {
		level = LevelAnimation
		modeChanged := old.Animation.Mode != cfg.Animation.Mode
		s.anim.SetOptions(animationOptions(cfg))
		if modeChanged {
			s.anim.Reset()
		}
	}

	switch {
	case gridChanged(old, cfg):
		s.Regenerate()
		return LevelGrid
	case nodesChanged(old.Nodes, cfg.Nodes):
		s.RegenerateNodes()
		return LevelNodes
	case connectionsChanged(old.Connections, cfg.Connections):
		s.RegenerateConnections()
		return LevelConnections
	}

	return level
}

func gridChanged(a, b config.SceneConfig) bool {
	return a.Seed != b.Seed ||
		a.Canvas.Width != b.Canvas.Width ||
		a.Canvas.Height != b.Canvas.Height ||
		a.Grid.Type.Triangular() != b.Grid.Type.Triangular() ||
		a.Grid.CellSize != b.Grid.CellSize ||
		a.Grid.ShapeChaos != b.Grid.ShapeChaos ||
		a.Grid.ShapeDirection != b.Grid.ShapeDirection ||
		a.Grid.ShapeElongation != b.Grid.ShapeElongation
}

func nodesChanged(a, b config.NodesConfig) bool {
	return a.Count != b.Count ||
		a.Bias != b.Bias ||
		a.AxisAngle != b.AxisAngle ||
		a.Chaos != b.Chaos ||
		a.Size != b.Size
}

func connectionsChanged(a, b config.ConnectionsConfig) bool {
	return a.Count != b.Count ||
		a.Mode != b.Mode ||
		a.Pairing != b.Pairing ||
		a.Smooth != b.Smooth ||
		a.SmoothResolution != b.SmoothResolution
}
