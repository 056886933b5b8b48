package animation

import (
	"time"

	"nodal/internal/domain"
)

// Frame collects everything a renderer needs for the current tick
func (e *Engine) Frame() domain.Frame {
	f := domain.Frame{
		Mode:     string(e.opts.Mode),
		Behavior: string(e.opts.Behavior),
		Time:     e.clock,
		Playing:  e.playing,
	}

	switch e.opts.Mode {
	case Stream:
		f.Heads = make([]domain.Point, len(e.paths))
		f.Trails = make([][]domain.TrailSegment, len(e.paths))
		for i := range e.paths {
			f.Heads[i] = e.Head(i)
			f.Trails[i] = e.Trail(i)
		}
		if e.opts.NodePulse || e.glowing() {
			f.NodeGlow = append([]float64(nil), e.glows...)
		}
	case Reveal:
		f.Reveals = make([][]domain.Point, len(e.paths))
		for i := range e.paths {
			f.Reveals[i] = e.Reveal(i)
		}
	case Pulse:
		f.Pulses = make([]float64, len(e.paths))
		for i := range e.paths {
			f.Pulses[i] = e.Pulse(i)
		}
		f.NodePulses = make([]float64, len(e.nodes))
		for j := range e.nodes {
			f.NodePulses[j] = e.NodePulse(j)
		}
	}

	return f
}

// glowing reports whether any node glow is still fading out
func (e *Engine) glowing() bool {
	for _, g := range e.glows {
		if g > 0 {
			return true
		}
	}
	return false
}

// FrameAt renders frame index of total without disturbing live progress.
// Node glow settles over a short warm-up first.
func (e *Engine) FrameAt(index, total int, duration time.Duration) domain.Frame {
	saved := e.Save()
	defer e.Restore(saved)

	e.SetFrame(index, total, duration)
	if e.opts.Mode == Stream && e.opts.NodePulse {
		for k := 0; k < warmupSteps; k++ {
			e.settleGlows(warmupStep)
		}
	}
	return e.Frame()
}

// Warm-up applied before an exported frame
const (
	warmupSteps = 8
	warmupStep  = 1.0 / 30
)
