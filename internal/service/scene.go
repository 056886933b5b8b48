package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"nodal/internal/config"
	"nodal/internal/domain"
	"nodal/internal/render"
	"nodal/internal/repository"
	"nodal/internal/scene"
)

// activeSceneKey is the metadata key holding the last applied settings
const activeSceneKey = "active_scene"

// Scope selects how much of the scene a regeneration rebuilds
type Scope string

const (
	ScopeAll         Scope = "all"
	ScopeNodes       Scope = "nodes"
	ScopeConnections Scope = "connections"
)

// ParseScope converts a string to Scope, defaulting to ScopeAll
func ParseScope(s string) (Scope, error) {
	switch s {
	case "", "all":
		return ScopeAll, nil
	case "nodes":
		return ScopeNodes, nil
	case "connections":
		return ScopeConnections, nil
	default:
		return "", fmt.Errorf("%w: unknown scope %q", ErrInvalidInput, s)
	}
}

// Snapshot is the complete static state of the scene
type Snapshot struct {
	Config config.SceneConfig `json:"config"`
	Stats  scene.Stats        `json:"stats"`
	Graph  domain.Graph       `json:"graph"`
}

// AnimationState reports playback status
type AnimationState struct {
	Playing bool    `json:"playing"`
	Mode    string  `json:"mode"`
	Time    float64 `json:"time"`
}

// SceneService provides business logic for the live scene
type SceneService struct {
	mu       sync.Mutex
	scene    *scene.Scene
	eventBus *EventBus
	store    repository.Repository
}

// NewSceneService creates a scene service and generates the initial scene
func NewSceneService(cfg config.SceneConfig, eventBus *EventBus) *SceneService {
	return &SceneService{
		scene:    scene.New(cfg),
		eventBus: eventBus,
	}
}

// WithStore persists applied settings so they survive restarts
func (s *SceneService) WithStore(repo repository.Repository) *SceneService {
	s.store = repo
	return s
}

// Restore applies the settings saved by a previous run, if any
func (s *SceneService) Restore(ctx context.Context) (bool, error) {
	if s.store == nil {
		return false, nil
	}
	data, err := s.store.GetMeta(ctx, activeSceneKey)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}

	cfg := config.DefaultSceneConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return false, fmt.Errorf("failed to decode saved scene: %w", err)
	}

	s.mu.Lock()
	s.scene.Apply(cfg)
	stats := s.scene.Stats()
	s.mu.Unlock()

	log.Printf("Restored scene: seed %d, %d nodes, %d connections", stats.Seed, stats.Nodes, stats.Connections)
	return true, nil
}

// Snapshot returns configuration, counts and geometry
func (s *SceneService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Config: s.scene.Config(),
		Stats:  s.scene.Stats(),
		Graph:  s.scene.Graph(),
	}
}

// Config returns the active scene configuration
func (s *SceneService) Config() config.SceneConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene.Config()
}

// Frame returns the live animation frame
func (s *SceneService) Frame() domain.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene.Frame()
}

// FrameAt returns a deterministic frame index of total
func (s *SceneService) FrameAt(index, total int) (domain.Frame, error) {
	if total <= 0 || index < 0 {
		return domain.Frame{}, fmt.Errorf("%w: frame %d of %d", ErrInvalidInput, index, total)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene.FrameAt(index, total), nil
}

// Regenerate rebuilds the scene. Width and height of zero keep the current
// canvas. Full regeneration reproduces the configured seed; the narrower
// scopes draw a new variation.
func (s *SceneService) Regenerate(ctx context.Context, width, height int, scope Scope) (scene.Stats, error) {
	if width < 0 || height < 0 {
		return scene.Stats{}, fmt.Errorf("%w: negative canvas size", ErrInvalidInput)
	}

	s.mu.Lock()
	switch scope {
	case ScopeNodes:
		s.scene.RegenerateNodes()
	case ScopeConnections:
		s.scene.RegenerateConnections()
	default:
		cur := s.scene.Config().Canvas
		if width == 0 {
			width = cur.Width
		}
		if height == 0 {
			height = cur.Height
		}
		s.scene.Resize(width, height)
	}
	stats := s.scene.Stats()
	cfg := s.scene.Config()
	s.mu.Unlock()

	log.Printf("Regenerated scene (%s): %d vertices, %d nodes, %d connections",
		scope, stats.Vertices, stats.Nodes, stats.Connections)
	s.persist(ctx, cfg)
	s.eventBus.Publish(Event{Type: EventSceneRegenerated, Payload: stats})

	return stats, nil
}

// ApplyConfig switches to new settings, rebuilding only what changed.
// Values are clamped into range.
func (s *SceneService) ApplyConfig(ctx context.Context, cfg config.SceneConfig) (scene.Level, error) {
	s.mu.Lock()
	level := s.scene.Apply(cfg)
	applied := s.scene.Config()
	stats := s.scene.Stats()
	s.mu.Unlock()

	s.persist(ctx, applied)
	s.eventBus.Publish(Event{
		Type:    EventConfigUpdated,
		Payload: map[string]string{"level": level.String()},
	})
	if level >= scene.LevelConnections {
		log.Printf("Rebuilt scene (%s): %d nodes, %d connections", level, stats.Nodes, stats.Connections)
		s.eventBus.Publish(Event{Type: EventSceneRegenerated, Payload: stats})
	}

	return level, nil
}

func (s *SceneService) persist(ctx context.Context, cfg config.SceneConfig) {
	if s.store == nil {
		return
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		log.Printf("Failed to encode scene settings: %v", err)
		return
	}
	if err := s.store.SetMeta(ctx, activeSceneKey, data); err != nil {
		log.Printf("Failed to save scene settings: %v", err)
	}
}

// Play resumes the animation
func (s *SceneService) Play() AnimationState {
	return s.playback(func(sc *scene.Scene) { sc.Animation().Play() })
}

// Pause freezes animation progress
func (s *SceneService) Pause() AnimationState {
	return s.playback(func(sc *scene.Scene) { sc.Animation().Pause() })
}

// Toggle flips between playing and paused
func (s *SceneService) Toggle() AnimationState {
	return s.playback(func(sc *scene.Scene) { sc.Animation().Toggle() })
}

// Reset returns every connection to its starting phase
func (s *SceneService) Reset() AnimationState {
	return s.playback(func(sc *scene.Scene) { sc.Animation().Reset() })
}

func (s *SceneService) playback(fn func(*scene.Scene)) AnimationState {
	s.mu.Lock()
	fn(s.scene)
	anim := s.scene.Animation()
	state := AnimationState{
		Playing: anim.Playing(),
		Mode:    string(anim.Options().Mode),
		Time:    anim.Time(),
	}
	s.mu.Unlock()

	s.eventBus.Publish(Event{Type: EventAnimationState, Payload: state})
	return state
}

// Nearest returns the visible vertex closest to (x, y)
func (s *SceneService) Nearest(x, y float64) (domain.VertexPos, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene.Nearest(domain.Point{X: x, Y: y})
}

// Positions lists visible vertices at least padding inside the canvas
func (s *SceneService) Positions(padding float64) []domain.VertexPos {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene.VisiblePositions(padding)
}

// ExportPNG renders the current frame at the export size
func (s *SceneService) ExportPNG(w io.Writer, background bool) error {
	s.mu.Lock()
	img := render.Still(s.scene, background)
	s.mu.Unlock()

	return render.EncodePNG(w, img)
}

// ExportGIF renders one full animation loop at the export size and fps
func (s *SceneService) ExportGIF(w io.Writer) error {
	s.mu.Lock()
	exp := s.scene.Config().Export
	frames := render.Frames(s.scene, exp.FrameCount(), true)
	s.mu.Unlock()

	log.Printf("Exporting GIF: %d frames at %dx%d", len(frames), exp.Width, exp.Height)
	return render.EncodeGIF(w, frames, exp.FPS)
}

// Run advances the animation at the configured fps and publishes frames
// at streamFPS until ctx is cancelled. A changed animation fps takes
// effect on the next tick.
func (s *SceneService) Run(ctx context.Context, streamFPS int) {
	fps := s.Config().Animation.FPS
	ticker := time.NewTicker(tickPeriod(fps))
	defer ticker.Stop()

	var publishEvery time.Duration
	if streamFPS > 0 {
		publishEvery = time.Second / time.Duration(streamFPS)
	}

	last := time.Now()
	var lastPublish time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.mu.Lock()
			s.scene.Update(now.Sub(last))
			var frame *domain.Frame
			if publishEvery > 0 && now.Sub(lastPublish) >= publishEvery {
				f := s.scene.Frame()
				frame = &f
				lastPublish = now
			}
			current := s.scene.Config().Animation.FPS
			s.mu.Unlock()
			last = now

			if current != fps {
				fps = current
				ticker.Reset(tickPeriod(fps))
			}
			if frame != nil {
				s.eventBus.Publish(Event{Type: EventFrame, Payload: frame})
			}
		}
	}
}

func tickPeriod(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
