package domain

// Graph is the render-ready geometry of a generated scene
type Graph struct {
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Vertices    int          `json:"vertices"` // Visible vertex count
	Lines       []Line       `json:"lines"`
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
}

// TrailSegment is one stroke of a stream trail, tail to head
type TrailSegment struct {
	From  Point   `json:"from"`
	To    Point   `json:"to"`
	Alpha float64 `json:"alpha"` // 0 faint tail .. 1 bright head
	Width float64 `json:"width"` // Multiplier on base stroke weight
	Glow  float64 `json:"glow"`  // 0 outside the leading glow window
}

// Frame is the per-tick animation state in canvas space
type Frame struct {
	Mode       string           `json:"mode"`
	Behavior   string           `json:"behavior"`
	Time       float64          `json:"time"`
	Playing    bool             `json:"playing"`
	Heads      []Point          `json:"heads,omitempty"`
	Trails     [][]TrailSegment `json:"trails,omitempty"`
	Reveals    [][]Point        `json:"reveals,omitempty"`
	Pulses     []float64        `json:"pulses,omitempty"`      // Per-connection pulse level
	NodeGlow   []float64        `json:"node_glow,omitempty"`   // Per-node proximity glow
	NodePulses []float64        `json:"node_pulses,omitempty"` // Per-node ambient pulse level
}
