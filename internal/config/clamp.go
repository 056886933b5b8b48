package config

import (
	"math"
	"time"
)

// Clamp forces every scene value into its documented range.
// Unknown enum values fall back to their defaults and legacy
// animation mode names are mapped to current ones.
func (s *SceneConfig) Clamp() {
	d := DefaultSceneConfig()

	if s.Canvas.Width <= 0 {
		s.Canvas.Width = d.Canvas.Width
	}
	if s.Canvas.Height <= 0 {
		s.Canvas.Height = d.Canvas.Height
	}
	s.Canvas.Width = clampInt(s.Canvas.Width, 64, 8192)
	s.Canvas.Height = clampInt(s.Canvas.Height, 64, 8192)
	s.Canvas.Background = orDefault(s.Canvas.Background, d.Canvas.Background)

	g := &s.Grid
	g.Type = ParseGridType(string(g.Type))
	if g.CellSize <= 0 {
		g.CellSize = d.Grid.CellSize
	}
	g.CellSize = clamp(g.CellSize, 20, 150)
	g.Color = orDefault(g.Color, d.Grid.Color)
	g.Opacity = clamp(g.Opacity, 0, 1)
	g.ShapeChaos = clamp(g.ShapeChaos, 0, 100)
	g.ShapeDirection = wrapDegrees(g.ShapeDirection)
	g.ShapeElongation = clamp(g.ShapeElongation, 0, 100)

	n := &s.Nodes
	n.Count = clampInt(n.Count, 0, 30)
	n.Bias = ParseNodeBias(string(n.Bias))
	n.AxisAngle = wrapDegrees(n.AxisAngle)
	n.Chaos = clamp(n.Chaos, 0, 100)
	n.Style = ParseNodeStyle(string(n.Style))
	if n.Size <= 0 {
		n.Size = d.Nodes.Size
	}
	n.Size = clamp(n.Size, 4, 30)
	n.FillColor = orDefault(n.FillColor, d.Nodes.FillColor)
	n.StrokeColor = orDefault(n.StrokeColor, d.Nodes.StrokeColor)
	n.StrokeWeight = clamp(n.StrokeWeight, 1, 6)

	c := &s.Connections
	c.Count = clampInt(c.Count, 0, 30)
	c.Mode = ParseRoutingMode(string(c.Mode))
	c.Pairing = ParsePairing(string(c.Pairing))
	if c.SmoothResolution <= 0 {
		c.SmoothResolution = d.Connections.SmoothResolution
	}
	c.SmoothResolution = clampInt(c.SmoothResolution, 1, 16)
	c.Color = orDefault(c.Color, d.Connections.Color)
	c.Thickness = clamp(c.Thickness, 1, 8)
	c.Style = ParseLineStyle(string(c.Style))
	c.DashLength = clamp(c.DashLength, 4, 20)
	c.DashGap = clamp(c.DashGap, 2, 15)

	a := &s.Animation
	a.Mode = ParseAnimationMode(string(a.Mode))
	a.Behavior = ParseBehavior(string(a.Behavior))
	a.Speed = clamp(a.Speed, 0, 100)
	a.Color = orDefault(a.Color, d.Animation.Color)
	if a.StreamLength <= 0 {
		a.StreamLength = d.Animation.StreamLength
	}
	a.StreamLength = clamp(a.StreamLength, 0.05, 0.5)
	if a.TrailLength <= 0 {
		a.TrailLength = d.Animation.TrailLength
	}
	a.TrailLength = clampInt(a.TrailLength, 5, 30)
	a.ParticleSize = clamp(a.ParticleSize, 2, 15)
	a.GlowIntensity = clamp(a.GlowIntensity, 0, 100)
	if a.GlowRadius <= 0 {
		a.GlowRadius = d.Animation.GlowRadius
	}
	a.GlowRadius = clamp(a.GlowRadius, 5, 200)
	if a.FPS <= 0 {
		a.FPS = d.Animation.FPS
	}
	a.FPS = clampInt(a.FPS, 1, 120)

	e := &s.Export
	if e.Duration <= 0 {
		e.Duration = d.Export.Duration
	}
	e.Duration = Duration(clampDuration(e.Duration.Duration(), time.Second, 10*time.Second))
	if e.FPS <= 0 {
		e.FPS = d.Export.FPS
	}
	e.FPS = clampInt(e.FPS, 1, 60)
	if e.Width <= 0 {
		e.Width = s.Canvas.Width
	}
	if e.Height <= 0 {
		e.Height = s.Canvas.Height
	}
	e.Width = clampInt(e.Width, 640, 3840)
	e.Height = clampInt(e.Height, 480, 2160)
}

// FrameCount returns the number of frames in an animated export
func (e ExportConfig) FrameCount() int {
	n := int(math.Round(e.Duration.Duration().Seconds() * float64(e.FPS)))
	if n < 1 {
		return 1
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampDuration(v, lo, hi time.Duration) time.Duration {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func wrapDegrees(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
