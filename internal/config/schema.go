package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Scene    SceneConfig    `yaml:"scene"`
}

// ServerConfig holds HTTP and streaming settings
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	StreamFPS int    `yaml:"stream_fps"` // Frame events published per second over SSE
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SceneConfig is the parameter surface read by the scene engine
type SceneConfig struct {
	Seed        int64             `yaml:"seed" json:"seed"`
	Canvas      CanvasConfig      `yaml:"canvas" json:"canvas"`
	Grid        GridConfig        `yaml:"grid" json:"grid"`
	Nodes       NodesConfig       `yaml:"nodes" json:"nodes"`
	Connections ConnectionsConfig `yaml:"connections" json:"connections"`
	Animation   AnimationConfig   `yaml:"animation" json:"animation"`
	Export      ExportConfig      `yaml:"export" json:"export"`
}

// CanvasConfig describes the drawing surface
type CanvasConfig struct {
	Width      int    `yaml:"width" json:"width"`
	Height     int    `yaml:"height" json:"height"`
	Background string `yaml:"background" json:"background"`
}

// GridConfig controls lattice construction and boundary shaping
type GridConfig struct {
	Type            GridType `yaml:"type" json:"type"`
	CellSize        float64  `yaml:"cell_size" json:"cell_size"`
	Color           string   `yaml:"color" json:"color"`
	Opacity         float64  `yaml:"opacity" json:"opacity"`
	ShapeChaos      float64  `yaml:"shape_chaos" json:"shape_chaos"`           // 0-100
	ShapeDirection  float64  `yaml:"shape_direction" json:"shape_direction"`   // degrees
	ShapeElongation float64  `yaml:"shape_elongation" json:"shape_elongation"` // 0-100
}

// NodesConfig controls node selection and node styling
type NodesConfig struct {
	Count        int       `yaml:"count" json:"count"`
	Visible      bool      `yaml:"visible" json:"visible"`
	Bias         NodeBias  `yaml:"bias" json:"bias"`
	AxisAngle    float64   `yaml:"axis_angle" json:"axis_angle"` // degrees, 0 = right, 90 = down
	Chaos        float64   `yaml:"chaos" json:"chaos"`           // 0-100
	Style        NodeStyle `yaml:"style" json:"style"`
	Size         float64   `yaml:"size" json:"size"`
	FillColor    string    `yaml:"fill_color" json:"fill_color"`
	StrokeColor  string    `yaml:"stroke_color" json:"stroke_color"`
	StrokeWeight float64   `yaml:"stroke_weight" json:"stroke_weight"`
}

// ConnectionsConfig controls routing and connection styling
type ConnectionsConfig struct {
	Count            int         `yaml:"count" json:"count"`
	Mode             RoutingMode `yaml:"mode" json:"mode"`
	Pairing          Pairing     `yaml:"pairing" json:"pairing"`
	Smooth           bool        `yaml:"smooth" json:"smooth"`
	SmoothResolution int         `yaml:"smooth_resolution" json:"smooth_resolution"`
	Color            string      `yaml:"color" json:"color"`
	Thickness        float64     `yaml:"thickness" json:"thickness"`
	Style            LineStyle   `yaml:"style" json:"style"`
	DashLength       float64     `yaml:"dash_length" json:"dash_length"`
	DashGap          float64     `yaml:"dash_gap" json:"dash_gap"`
}

// AnimationConfig controls the animation engine
type AnimationConfig struct {
	Mode          AnimationMode `yaml:"mode" json:"mode"`
	Behavior      Behavior      `yaml:"behavior" json:"behavior"`
	LoopEase      bool          `yaml:"loop_ease" json:"loop_ease"`
	Speed         float64       `yaml:"speed" json:"speed"` // 0-100
	Color         string        `yaml:"color" json:"color"`
	NodePulse     bool          `yaml:"node_pulse" json:"node_pulse"`
	StreamLength  float64       `yaml:"stream_length" json:"stream_length"` // Fraction of path
	TrailLength   int           `yaml:"trail_length" json:"trail_length"`   // Stream segment count
	ParticleSize  float64       `yaml:"particle_size" json:"particle_size"`
	GlowIntensity float64       `yaml:"glow_intensity" json:"glow_intensity"` // 0-100
	GlowRadius    float64       `yaml:"glow_radius" json:"glow_radius"`
	FPS           int           `yaml:"fps" json:"fps"`
}

// ExportConfig controls still and animated export
type ExportConfig struct {
	Duration Duration `yaml:"duration" json:"duration"`
	FPS      int      `yaml:"fps" json:"fps"`
	Width    int      `yaml:"width" json:"width"`
	Height   int      `yaml:"height" json:"height"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// MarshalText lets JSON carry the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText parses a duration string such as "3s"
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
