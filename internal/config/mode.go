package config

// GridType selects the lattice family
type GridType string

const (
	GridIsometric  GridType = "isometric"  // Triangular lattice drawn as a hex/cube pattern
	GridTriangular GridType = "triangular" // Same lattice as isometric
	GridSquare     GridType = "square"
)

// ParseGridType converts a string to GridType, defaulting to GridIsometric
func ParseGridType(s string) GridType {
	switch s {
	case "isometric", "hex":
		return GridIsometric
	case "triangular":
		return GridTriangular
	case "square":
		return GridSquare
	default:
		return GridIsometric
	}
}

// Triangular reports whether the type uses the six-direction lattice
func (g GridType) Triangular() bool {
	return g != GridSquare
}

// NodeBias selects the node placement score
type NodeBias string

const (
	BiasDirectional NodeBias = "directional" // Forward projection minus perpendicular penalty
	BiasAxis        NodeBias = "axis"        // Closeness to the axis line through center
)

// ParseNodeBias converts a string to NodeBias, defaulting to BiasDirectional
func ParseNodeBias(s string) NodeBias {
	switch s {
	case "axis":
		return BiasAxis
	default:
		return BiasDirectional
	}
}

// NodeStyle is the node marker shape
type NodeStyle string

const (
	NodeCircle NodeStyle = "circle"
	NodeSquare NodeStyle = "square"
)

// ParseNodeStyle converts a string to NodeStyle, defaulting to NodeCircle
func ParseNodeStyle(s string) NodeStyle {
	if s == "square" {
		return NodeSquare
	}
	return NodeCircle
}

// RoutingMode selects how nodes are joined
type RoutingMode string

const (
	RoutePairwise RoutingMode = "pairwise"
	RouteCircuit  RoutingMode = "circuit"
)

// ParseRoutingMode converts a string to RoutingMode, defaulting to RoutePairwise
func ParseRoutingMode(s string) RoutingMode {
	if s == "circuit" {
		return RouteCircuit
	}
	return RoutePairwise
}

// Pairing selects the pair priority in pairwise routing
type Pairing string

const (
	PairCoverage Pairing = "coverage" // Every node connected once before any twice
	PairShortest Pairing = "shortest" // Geometrically closest pairs first
)

// ParsePairing converts a string to Pairing, defaulting to PairCoverage
func ParsePairing(s string) Pairing {
	if s == "shortest" {
		return PairShortest
	}
	return PairCoverage
}

// LineStyle is the connection stroke pattern
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
)

// ParseLineStyle converts a string to LineStyle, defaulting to LineSolid
func ParseLineStyle(s string) LineStyle {
	if s == "dashed" {
		return LineDashed
	}
	return LineSolid
}

// AnimationMode selects the animation policy
type AnimationMode string

const (
	AnimStream AnimationMode = "stream" // Directional sweep with trailing window
	AnimReveal AnimationMode = "reveal" // Progressive line draw
	AnimPulse  AnimationMode = "pulse"  // Ambient sinusoidal glow
	AnimNone   AnimationMode = "none"
)

// ParseAnimationMode converts a string to AnimationMode.
// Legacy names from saved configs (particle, linedraw, glow) are accepted.
func ParseAnimationMode(s string) AnimationMode {
	switch s {
	case "stream", "particle":
		return AnimStream
	case "reveal", "linedraw":
		return AnimReveal
	case "pulse", "glow":
		return AnimPulse
	case "none":
		return AnimNone
	default:
		return AnimStream
	}
}

// Behavior selects how a stream traverses its path
type Behavior string

const (
	BehaviorMirror Behavior = "mirror" // Back and forth with pauses at nodes
	BehaviorLoop   Behavior = "loop"   // Forward only, restart at the beginning
)

// ParseBehavior converts a string to Behavior, defaulting to BehaviorMirror
func ParseBehavior(s string) Behavior {
	if s == "loop" {
		return BehaviorLoop
	}
	return BehaviorMirror
}
