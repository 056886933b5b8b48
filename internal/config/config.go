// Package config provides configuration management for Nodal.
//
// The config file carries two kinds of settings: process settings (listen
// address, database path) and the scene parameter surface read by the
// engine. The scene section is also what presets store and what the HTTP
// API replaces.
//
// Config file locations (priority order):
//  1. $NODAL_CONFIG
//  2. ./nodal.yaml
//  3. ~/.config/nodal/config.yaml
//  4. /etc/nodal/config.yaml
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// EnvAddr overrides the HTTP listen address
	EnvAddr = "NODAL_ADDR"
	// EnvDatabase overrides the database path
	EnvDatabase = "NODAL_DB"
	// EnvSeed overrides the scene seed
	EnvSeed = "NODAL_SEED"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		cfg := DefaultConfig()
		cfg.ApplyEnv()
		return cfg, "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, path, err
	}
	cfg.ApplyEnv()

	return cfg, path, nil
}

// Parse decodes YAML over the defaults, so omitted keys keep default values
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return cfg, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Server:   ServerConfig{Addr: ":3000", StreamFPS: 15},
		Database: DatabaseConfig{Path: "./nodal.db"},
		Scene:    DefaultSceneConfig(),
	}
}

// DefaultSceneConfig returns the stock composition
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Seed: 4242,
		Canvas: CanvasConfig{
			Width:      1920,
			Height:     1080,
			Background: "#333333",
		},
		Grid: GridConfig{
			Type:            GridIsometric,
			CellSize:        60,
			Color:           "#ffffff",
			Opacity:         0.4,
			ShapeChaos:      30,
			ShapeDirection:  90,
			ShapeElongation: 50,
		},
		Nodes: NodesConfig{
			Count:        8,
			Visible:      true,
			Bias:         BiasDirectional,
			AxisAngle:    45,
			Chaos:        30,
			Style:        NodeCircle,
			Size:         12,
			FillColor:    "#c8ff00",
			StrokeColor:  "#c8ff00",
			StrokeWeight: 2,
		},
		Connections: ConnectionsConfig{
			Count:            8,
			Mode:             RoutePairwise,
			Pairing:          PairCoverage,
			Smooth:           true,
			SmoothResolution: 4,
			Color:            "#c8ff00",
			Thickness:        2,
			Style:            LineSolid,
			DashLength:       8,
			DashGap:          6,
		},
		Animation: AnimationConfig{
			Mode:          AnimStream,
			Behavior:      BehaviorMirror,
			LoopEase:      true,
			Speed:         50,
			Color:         "#c8ff00",
			NodePulse:     true,
			StreamLength:  0.12,
			TrailLength:   15,
			ParticleSize:  5,
			GlowIntensity: 60,
			GlowRadius:    40,
			FPS:           60,
		},
		Export: ExportConfig{
			Duration: Duration(3 * time.Second),
			FPS:      30,
			Width:    1920,
			Height:   1080,
		},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Server.StreamFPS <= 0 {
		c.Server.StreamFPS = 15
	}
	if c.Database.Path == "" {
		c.Database.Path = "./nodal.db"
	}

	c.Scene.Clamp()
}

// ApplyEnv applies environment variable overrides
func (c *Config) ApplyEnv() {
	if addr := os.Getenv(EnvAddr); addr != "" {
		c.Server.Addr = addr
	}
	if db := os.Getenv(EnvDatabase); db != "" {
		c.Database.Path = db
	}
	if s := os.Getenv(EnvSeed); s != "" {
		if seed, err := strconv.ParseInt(s, 10, 64); err == nil {
			c.Scene.Seed = seed
		}
	}
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	s := c.Scene
	summary := fmt.Sprintf("Canvas: %dx%d, Seed: %d\n", s.Canvas.Width, s.Canvas.Height, s.Seed)
	summary += fmt.Sprintf("Grid: %s cell=%.0f chaos=%.0f\n", s.Grid.Type, s.Grid.CellSize, s.Grid.ShapeChaos)
	summary += fmt.Sprintf("Nodes: %d, Connections: %d (%s)\n", s.Nodes.Count, s.Connections.Count, s.Connections.Mode)
	summary += fmt.Sprintf("Animation: %s/%s speed=%.0f", s.Animation.Mode, s.Animation.Behavior, s.Animation.Speed)

	return summary
}
