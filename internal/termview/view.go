// Package termview draws a live scene preview in the terminal.
package termview

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"nodal/internal/config"
	"nodal/internal/domain"
	"nodal/internal/scene"
)

// Canvas pixels covered by one terminal cell. Cells are about twice as
// tall as they are wide.
const (
	CellWidth  = 8
	CellHeight = 16
)

const maxFPS = 30

var modeCycle = []config.AnimationMode{
	config.AnimStream,
	config.AnimReveal,
	config.AnimPulse,
	config.AnimNone,
}

// View renders a scene onto a tcell screen
type View struct {
	screen tcell.Screen
	scene  *scene.Scene
	rng    *rand.Rand

	cols, rows int
}

// New creates a view. The screen must already be initialised.
func New(screen tcell.Screen, sc *scene.Scene) *View {
	return &View{
		screen: screen,
		scene:  sc,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Fit regenerates the scene at the screen's cell grid, leaving one row for
// the status line
func (v *View) Fit() {
	cols, rows := v.screen.Size()
	if rows > 1 {
		rows--
	}
	if cols == v.cols && rows == v.rows {
		return
	}
	v.cols, v.rows = cols, rows
	v.scene.Resize(cols*CellWidth, rows*CellHeight)
}

// toCell maps a canvas point to a terminal cell
func (v *View) toCell(p domain.Point) (int, int) {
	return int(math.Floor(p.X / CellWidth)), int(math.Floor(p.Y / CellHeight))
}

func (v *View) set(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= v.cols || y >= v.rows {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

// line plots a segment with Bresenham's algorithm
func (v *View) line(a, b domain.Point, r rune, style tcell.Style) {
	x0, y0 := v.toCell(a)
	x1, y1 := v.toCell(b)
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		v.set(x0, y0, r, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (v *View) polyline(pts []domain.Point, r rune, style tcell.Style) {
	for i := 1; i < len(pts); i++ {
		v.line(pts[i-1], pts[i], r, style)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// fade scales a color toward black
func fade(c tcell.Color, alpha float64) tcell.Color {
	r, g, b := c.RGB()
	a := math.Max(0, math.Min(1, alpha))
	return tcell.NewRGBColor(int32(float64(r)*a), int32(float64(g)*a), int32(float64(b)*a))
}

// Draw renders one frame
func (v *View) Draw() {
	cfg := v.scene.Config()
	g := v.scene.Graph()
	f := v.scene.Frame()

	bg := tcell.StyleDefault.Background(tcell.GetColor(cfg.Canvas.Background))
	v.screen.SetStyle(bg)
	v.screen.Clear()

	gridColor := tcell.GetColor(cfg.Grid.Color)
	for _, l := range g.Lines {
		style := bg.Foreground(fade(gridColor, l.Opacity*cfg.Grid.Opacity))
		v.line(domain.Point{X: l.X1, Y: l.Y1}, domain.Point{X: l.X2, Y: l.Y2}, '·', style)
	}

	connStyle := bg.Foreground(tcell.GetColor(cfg.Connections.Color))
	animColor := tcell.GetColor(cfg.Animation.Color)
	switch f.Mode {
	case string(config.AnimReveal):
		for _, pts := range f.Reveals {
			v.polyline(pts, '•', connStyle)
		}
	case string(config.AnimPulse):
		for i, c := range g.Connections {
			level := 1.0
			if i < len(f.Pulses) {
				level = f.Pulses[i]
			}
			v.polyline(c.Points, '•', bg.Foreground(fade(animColor, level)))
		}
	default:
		for _, c := range g.Connections {
			v.polyline(c.Points, '•', connStyle)
		}
		for _, trail := range f.Trails {
			for _, seg := range trail {
				v.line(seg.From, seg.To, '●', bg.Foreground(fade(animColor, seg.Alpha)))
			}
		}
		for _, h := range f.Heads {
			x, y := v.toCell(h)
			v.set(x, y, '◉', bg.Foreground(animColor).Bold(true))
		}
	}

	if cfg.Nodes.Visible {
		nodeRune := '●'
		if cfg.Nodes.Style == config.NodeSquare {
			nodeRune = '■'
		}
		nodeColor := tcell.GetColor(cfg.Nodes.FillColor)
		for i, n := range g.Nodes {
			style := bg.Foreground(nodeColor)
			if i < len(f.NodeGlow) && f.NodeGlow[i] > 0.5 {
				style = style.Bold(true).Foreground(animColor)
			}
			x, y := v.toCell(n.Pos())
			v.set(x, y, nodeRune, style)
		}
	}

	v.drawStatus(cfg)
	v.screen.Show()
}

func (v *View) drawStatus(cfg config.SceneConfig) {
	_, rows := v.screen.Size()
	state := "paused"
	if v.scene.Animation().Playing() {
		state = "playing"
	}
	stats := v.scene.Stats()
	text := fmt.Sprintf(" seed %d | %s %s | %s | %d nodes %d connections | space r m b q",
		stats.Seed, cfg.Animation.Mode, cfg.Animation.Behavior, state, stats.Nodes, stats.Connections)

	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range text {
		v.screen.SetContent(x, rows-1, r, nil, style)
		x++
	}
}

// HandleEvent applies a key or resize event and reports whether the view
// should keep running
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			v.scene.Animation().Toggle()
		case 'r':
			v.scene.Reseed(v.rng.Int63())
		case 'm':
			cfg := v.scene.Config()
			cfg.Animation.Mode = nextMode(cfg.Animation.Mode)
			v.scene.Apply(cfg)
		case 'b':
			cfg := v.scene.Config()
			if cfg.Animation.Behavior == config.BehaviorLoop {
				cfg.Animation.Behavior = config.BehaviorMirror
			} else {
				cfg.Animation.Behavior = config.BehaviorLoop
			}
			v.scene.Apply(cfg)
		}

	case *tcell.EventResize:
		v.screen.Sync()
		v.Fit()
	}

	return true
}

func nextMode(m config.AnimationMode) config.AnimationMode {
	for i, mode := range modeCycle {
		if mode == m {
			return modeCycle[(i+1)%len(modeCycle)]
		}
	}
	return modeCycle[0]
}

// Run drives the animation and redraws until the context is cancelled or
// the user quits
func (v *View) Run(ctx context.Context) {
	v.Fit()

	fps := v.scene.Config().Animation.FPS
	if fps > maxFPS {
		fps = maxFPS
	}
	interval := time.Second / time.Duration(fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	last := time.Now()
	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-events:
			if !ok || !v.HandleEvent(ev) {
				return
			}
			v.Draw()

		case now := <-ticker.C:
			v.scene.Update(now.Sub(last))
			last = now
			v.Draw()
		}
	}
}
