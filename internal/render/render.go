// Package render rasterizes scenes with gg and encodes stills and
// animations.
package render

import (
	"image"

	"github.com/fogleman/gg"

	"nodal/internal/config"
	"nodal/internal/domain"
)

// Source is a scene that can be drawn
type Source interface {
	Config() config.SceneConfig
	Graph() domain.Graph
	Frame() domain.Frame
	FrameAt(index, total int) domain.Frame
}

// Renderer draws scene geometry and animation frames with one style
type Renderer struct {
	style config.SceneConfig

	background rgb
	grid       rgb
	line       rgb
	anim       rgb
	fill       rgb
	stroke     rgb
}

// New creates a renderer for the styling in cfg
func New(cfg config.SceneConfig) *Renderer {
	return &Renderer{
		style:      cfg,
		background: parseHex(cfg.Canvas.Background),
		grid:       parseHex(cfg.Grid.Color),
		line:       parseHex(cfg.Connections.Color),
		anim:       parseHex(cfg.Animation.Color),
		fill:       parseHex(cfg.Nodes.FillColor),
		stroke:     parseHex(cfg.Nodes.StrokeColor),
	}
}

// Image draws one frame at canvas size. Without a background the canvas
// stays transparent.
func (r *Renderer) Image(g domain.Graph, f domain.Frame, background bool) image.Image {
	dc := gg.NewContext(int(g.Width), int(g.Height))
	r.Draw(dc, g, f, background)
	return dc.Image()
}

// Draw paints grid, connections, animation and nodes in that order
func (r *Renderer) Draw(dc *gg.Context, g domain.Graph, f domain.Frame, background bool) {
	if background {
		dc.SetColor(r.background.NRGBA(1))
		dc.Clear()
	}
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	r.drawGrid(dc, g.Lines)
	r.drawConnections(dc, g.Connections, f)
	r.drawAnimation(dc, g, f)
	if r.style.Nodes.Visible {
		r.drawNodes(dc, g.Nodes, f)
	}
}

func (r *Renderer) drawGrid(dc *gg.Context, lines []domain.Line) {
	op := r.style.Grid.Opacity
	if op <= 0 {
		return
	}
	dc.SetLineWidth(1)
	for _, ln := range lines {
		dc.SetColor(r.grid.NRGBA(op * ln.Opacity))
		dc.DrawLine(ln.X1, ln.Y1, ln.X2, ln.Y2)
		dc.Stroke()
	}
}

// drawConnections strokes the static routes. Stream mode dims them under
// the moving trails; reveal mode draws only the revealed part later.
func (r *Renderer) drawConnections(dc *gg.Context, conns []domain.Connection, f domain.Frame) {
	alpha := 1.0
	switch f.Mode {
	case string(config.AnimStream):
		alpha = 0.25
	case string(config.AnimReveal), string(config.AnimPulse):
		return
	}

	cc := r.style.Connections
	if cc.Style == config.LineDashed {
		dc.SetDash(cc.DashLength, cc.DashGap)
		defer dc.SetDash()
	}
	dc.SetColor(r.line.NRGBA(alpha))
	dc.SetLineWidth(cc.Thickness)
	for _, c := range conns {
		polyline(dc, c.Points)
		dc.Stroke()
	}
}

func (r *Renderer) drawAnimation(dc *gg.Context, g domain.Graph, f domain.Frame) {
	thick := r.style.Connections.Thickness
	intensity := r.style.Animation.GlowIntensity / 100

	switch f.Mode {
	case string(config.AnimStream):
		for i, trail := range f.Trails {
			for _, s := range trail {
				if s.Glow > 0 && intensity > 0 {
					dc.SetColor(r.anim.NRGBA(s.Alpha * s.Glow * intensity * 0.35))
					dc.SetLineWidth(thick*s.Width + 6*s.Glow*intensity)
					dc.DrawLine(s.From.X, s.From.Y, s.To.X, s.To.Y)
					dc.Stroke()
				}
				dc.SetColor(r.anim.NRGBA(s.Alpha))
				dc.SetLineWidth(thick * s.Width)
				dc.DrawLine(s.From.X, s.From.Y, s.To.X, s.To.Y)
				dc.Stroke()
			}
			if len(trail) > 0 && i < len(f.Heads) {
				h := f.Heads[i]
				dc.SetColor(r.anim.NRGBA(1))
				dc.DrawCircle(h.X, h.Y, r.style.Animation.ParticleSize/2)
				dc.Fill()
			}
		}

	case string(config.AnimReveal):
		dc.SetColor(r.anim.NRGBA(1))
		dc.SetLineWidth(thick + 1)
		for _, pts := range f.Reveals {
			if len(pts) < 2 {
				continue
			}
			polyline(dc, pts)
			dc.Stroke()
		}

	case string(config.AnimPulse):
		for i, c := range g.Connections {
			if i >= len(f.Pulses) {
				break
			}
			p := f.Pulses[i]
			w := (thick + 1) * (0.8 + p*0.4)
			if intensity > 0 {
				dc.SetColor(r.anim.NRGBA(p * intensity * 0.3))
				dc.SetLineWidth(w * 3)
				polyline(dc, c.Points)
				dc.Stroke()
			}
			dc.SetColor(r.anim.NRGBA(p))
			dc.SetLineWidth(w)
			polyline(dc, c.Points)
			dc.Stroke()
		}
	}
}

func (r *Renderer) drawNodes(dc *gg.Context, nodes []domain.Node, f domain.Frame) {
	nc := r.style.Nodes
	intensity := r.style.Animation.GlowIntensity / 100

	for j, n := range nodes {
		if j < len(f.NodeGlow) {
			if g := f.NodeGlow[j]; g > 0 {
				dc.SetColor(r.anim.NRGBA(g * 45 / 255))
				dc.DrawCircle(n.X, n.Y, n.Size*0.9)
				dc.Fill()
				dc.SetColor(r.anim.NRGBA(g * 130 / 255))
				dc.SetLineWidth(1.5 + 2*g)
				dc.DrawCircle(n.X, n.Y, n.Size*1.25+g*5)
				dc.Stroke()
			}
		}
		if j < len(f.NodePulses) && intensity > 0 {
			p := f.NodePulses[j]
			dc.SetColor(r.anim.NRGBA(p * intensity * 0.25))
			dc.DrawCircle(n.X, n.Y, n.Size*(1+0.5*p))
			dc.Fill()
		}

		half := n.Size / 2
		if nc.Style == config.NodeSquare {
			dc.DrawRectangle(n.X-half, n.Y-half, n.Size, n.Size)
		} else {
			dc.DrawCircle(n.X, n.Y, half)
		}
		dc.SetColor(r.fill.NRGBA(1))
		dc.FillPreserve()
		dc.SetColor(r.stroke.NRGBA(1))
		dc.SetLineWidth(nc.StrokeWeight)
		dc.Stroke()
	}
}

func polyline(dc *gg.Context, pts []domain.Point) {
	dc.NewSubPath()
	for i, p := range pts {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
}
