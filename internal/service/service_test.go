package service

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"math"
	"strings"
	"testing"
	"time"

	"nodal/internal/config"
	"nodal/internal/domain"
	"nodal/internal/repository"
	"nodal/internal/repository/sqlite"
	"nodal/internal/scene"
)

func testSceneConfig() config.SceneConfig {
	cfg := config.DefaultSceneConfig()
	cfg.Canvas.Width = 480
	cfg.Canvas.Height = 320
	cfg.Grid.CellSize = 40
	cfg.Export.Width = 640
	cfg.Export.Height = 480
	cfg.Export.FPS = 2
	cfg.Export.Duration = config.Duration(time.Second)
	return cfg
}

func newTestRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

// collect drains events currently buffered on ch
func collect(ch chan Event) []Event {
	var out []Event
	for {
		select {
		case e := <-ch:
			out = append(out, e)
		default:
			return out
		}
	}
}

func hasEvent(events []Event, typ EventType) bool {
	for _, e := range events {
		if e.Type == typ {
			return true
		}
	}
	return false
}

func TestParseScope(t *testing.T) {
	for in, want := range map[string]Scope{"": ScopeAll, "all": ScopeAll, "nodes": ScopeNodes, "connections": ScopeConnections} {
		got, err := ParseScope(in)
		if err != nil || got != want {
			t.Errorf("ParseScope(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseScope("grid"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSceneServiceRegenerate(t *testing.T) {
	bus := NewEventBus()
	ch := make(chan Event, 16)
	bus.Subscribe(ch)
	svc := NewSceneService(testSceneConfig(), bus)

	t.Run("resize", func(t *testing.T) {
		if _, err := svc.Regenerate(context.Background(), 640, 400, ScopeAll); err != nil {
			t.Fatalf("Regenerate: %v", err)
		}
		snap := svc.Snapshot()
		if snap.Graph.Width != 640 || snap.Graph.Height != 400 {
			t.Errorf("canvas %vx%v, want 640x400", snap.Graph.Width, snap.Graph.Height)
		}
		if !hasEvent(collect(ch), EventSceneRegenerated) {
			t.Error("missing scene_regenerated event")
		}
	})

	t.Run("keep size", func(t *testing.T) {
		if _, err := svc.Regenerate(context.Background(), 0, 0, ScopeAll); err != nil {
			t.Fatalf("Regenerate: %v", err)
		}
		if c := svc.Config().Canvas; c.Width != 640 || c.Height != 400 {
			t.Errorf("canvas changed to %dx%d", c.Width, c.Height)
		}
	})

	t.Run("scopes", func(t *testing.T) {
		for _, scope := range []Scope{ScopeNodes, ScopeConnections} {
			stats, err := svc.Regenerate(context.Background(), 0, 0, scope)
			if err != nil {
				t.Fatalf("Regenerate(%s): %v", scope, err)
			}
			if stats.Vertices == 0 {
				t.Errorf("%s: empty scene", scope)
			}
		}
	})

	t.Run("negative size", func(t *testing.T) {
		if _, err := svc.Regenerate(context.Background(), -1, 10, ScopeAll); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestSceneServicePersistsConfig(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	svc := NewSceneService(testSceneConfig(), NewEventBus()).WithStore(repo)
	cfg := svc.Config()
	cfg.Seed = 31337
	cfg.Animation.Mode = config.AnimPulse
	level, err := svc.ApplyConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}
	if level != scene.LevelGrid {
		t.Errorf("level = %s, want grid", level)
	}

	restored := NewSceneService(testSceneConfig(), NewEventBus()).WithStore(repo)
	ok, err := restored.Restore(ctx)
	if err != nil || !ok {
		t.Fatalf("Restore = %v, %v", ok, err)
	}
	if got := restored.Config(); got.Seed != 31337 || got.Animation.Mode != config.AnimPulse {
		t.Errorf("restored seed %d mode %s", got.Seed, got.Animation.Mode)
	}

	fresh := NewSceneService(testSceneConfig(), NewEventBus()).WithStore(newTestRepo(t))
	if ok, err := fresh.Restore(ctx); ok || err != nil {
		t.Errorf("Restore on empty store = %v, %v", ok, err)
	}
}

func TestSceneServicePlayback(t *testing.T) {
	bus := NewEventBus()
	ch := make(chan Event, 16)
	bus.Subscribe(ch)
	svc := NewSceneService(testSceneConfig(), bus)

	if st := svc.Pause(); st.Playing {
		t.Error("Pause left animation playing")
	}
	if st := svc.Toggle(); !st.Playing {
		t.Error("Toggle did not resume")
	}
	if st := svc.Play(); !st.Playing || st.Mode != "stream" {
		t.Errorf("Play = %+v", st)
	}
	if st := svc.Reset(); st.Time != 0 {
		t.Errorf("Reset left clock at %v", st.Time)
	}
	if n := len(collect(ch)); n != 4 {
		t.Errorf("got %d animation events, want 4", n)
	}
}

func TestSceneServiceFrames(t *testing.T) {
	svc := NewSceneService(testSceneConfig(), NewEventBus())

	if _, err := svc.FrameAt(0, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	a, err := svc.FrameAt(3, 10)
	if err != nil {
		t.Fatalf("FrameAt: %v", err)
	}
	b, _ := svc.FrameAt(3, 10)
	if len(a.Heads) != len(b.Heads) {
		t.Fatal("frames differ in size")
	}
	for i := range a.Heads {
		if a.Heads[i] != b.Heads[i] {
			t.Errorf("head %d differs", i)
		}
	}

	if f := svc.Frame(); f.Mode != "stream" {
		t.Errorf("live frame mode %q", f.Mode)
	}
}

func TestSceneServiceQueries(t *testing.T) {
	svc := NewSceneService(testSceneConfig(), NewEventBus())

	v, ok := svc.Nearest(240, 160)
	if !ok {
		t.Fatal("expected nearest vertex")
	}
	if d := math.Hypot(v.X-240, v.Y-160); d > 40 {
		t.Errorf("nearest vertex is %v from the query point", d)
	}
	if len(svc.Positions(60)) == 0 {
		t.Error("expected padded positions")
	}
}

func TestSceneServiceExport(t *testing.T) {
	svc := NewSceneService(testSceneConfig(), NewEventBus())

	var buf bytes.Buffer
	if err := svc.ExportPNG(&buf, true); err != nil {
		t.Fatalf("ExportPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 480 {
		t.Errorf("png size %v", b)
	}

	buf.Reset()
	if err := svc.ExportGIF(&buf); err != nil {
		t.Fatalf("ExportGIF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("GIF89a")) {
		t.Error("output is not a GIF")
	}
}

func TestSceneServiceRun(t *testing.T) {
	bus := NewEventBus()
	ch := make(chan Event, 64)
	bus.Subscribe(ch)
	svc := NewSceneService(testSceneConfig(), bus)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx, 50)
		close(done)
	}()

	timeout := time.After(2 * time.Second)
	for got := false; !got; {
		select {
		case e := <-ch:
			got = e.Type == EventFrame
		case <-timeout:
			t.Fatal("no frame event published")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestSceneServiceRunFollowsFPS(t *testing.T) {
	bus := NewEventBus()
	ch := make(chan Event, 512)
	bus.Subscribe(ch)
	cfg := testSceneConfig()
	cfg.Animation.FPS = 1
	svc := NewSceneService(cfg, bus)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Run(ctx, 120)

	cfg.Animation.FPS = 100
	if _, err := svc.ApplyConfig(ctx, cfg); err != nil {
		t.Fatalf("ApplyConfig failed: %v", err)
	}

	// One slow tick picks up the new rate, then ticks come every 10ms
	deadline := time.After(2500 * time.Millisecond)
	frames := 0
	for frames < 10 {
		select {
		case e := <-ch:
			if e.Type == EventFrame {
				frames++
			}
		case <-deadline:
			t.Fatalf("got %d frames, want at least 10 after raising fps", frames)
		}
	}
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	ch := make(chan Event, 1)
	bus.Subscribe(ch)
	bus.Unsubscribe(ch)
	bus.Publish(Event{Type: EventFrame})
	if len(ch) != 0 {
		t.Error("unsubscribed channel received an event")
	}
}

func newPresetService(t *testing.T) (*PresetService, *SceneService) {
	t.Helper()
	bus := NewEventBus()
	scenes := NewSceneService(testSceneConfig(), bus)
	return NewPresetService(newTestRepo(t), scenes, bus), scenes
}

func TestPresetSaveLoad(t *testing.T) {
	presets, scenes := newPresetService(t)
	ctx := context.Background()

	saved, err := presets.Save(ctx, "  first  ", "demo")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Name != "first" {
		t.Errorf("name = %q, want trimmed", saved.Name)
	}

	cfg := scenes.Config()
	cfg.Seed = 5
	if _, err := scenes.ApplyConfig(ctx, cfg); err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}

	if _, err := presets.Load(ctx, saved.ID); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := scenes.Config().Seed; got != saved.Settings.Seed {
		t.Errorf("seed after load = %d, want %d", got, saved.Settings.Seed)
	}

	list, err := presets.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %d presets, %v", len(list), err)
	}

	if err := presets.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := presets.Get(ctx, saved.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := presets.Load(ctx, saved.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPresetSaveValidation(t *testing.T) {
	presets, _ := newPresetService(t)
	if _, err := presets.Save(context.Background(), "   ", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPresetExportImport(t *testing.T) {
	presets, _ := newPresetService(t)
	ctx := context.Background()

	saved, err := presets.Save(ctx, "swap", "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	for _, format := range []string{"json", "yaml"} {
		var buf bytes.Buffer
		ct, err := presets.Export(ctx, saved.ID, format, &buf)
		if err != nil {
			t.Fatalf("Export(%s): %v", format, err)
		}
		if !strings.HasPrefix(ct, "application/") {
			t.Errorf("content type %q", ct)
		}

		doc := strings.Replace(buf.String(), "swap", "swap-"+format, 1)
		imported, err := presets.Import(ctx, format, strings.NewReader(doc))
		if err != nil {
			t.Fatalf("Import(%s): %v", format, err)
		}
		if imported.Settings != saved.Settings {
			t.Errorf("%s: imported settings differ", format)
		}
	}

	if _, err := presets.Export(ctx, saved.ID, "xml", &bytes.Buffer{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := presets.Import(ctx, "json", strings.NewReader("{")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPresetImportAll(t *testing.T) {
	presets, scenes := newPresetService(t)
	ctx := context.Background()

	cfg := scenes.Config()
	batch := []*domain.Preset{domain.NewPreset("one", cfg), domain.NewPreset("two", cfg)}
	n, err := presets.ImportAll(ctx, batch)
	if err != nil || n != 2 {
		t.Fatalf("ImportAll = %d, %v", n, err)
	}

	// Same names replace instead of duplicating
	cfg.Nodes.Count = 3
	if _, err := presets.ImportAll(ctx, []*domain.Preset{domain.NewPreset("one", cfg)}); err != nil {
		t.Fatalf("ImportAll: %v", err)
	}

	list, err := presets.List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("List = %d presets, %v", len(list), err)
	}
	for _, p := range list {
		if p.Name == "one" && p.Settings.Nodes.Count != 3 {
			t.Errorf("preset one has %d nodes, want 3", p.Settings.Nodes.Count)
		}
	}
}

func TestShareToken(t *testing.T) {
	presets, scenes := newPresetService(t)
	ctx := context.Background()

	token, err := presets.ShareToken()
	if err != nil {
		t.Fatalf("ShareToken: %v", err)
	}
	want := scenes.Config()

	cfg := want
	cfg.Seed = 99
	scenes.ApplyConfig(ctx, cfg)

	if _, err := presets.ApplyShareToken(ctx, token); err != nil {
		t.Fatalf("ApplyShareToken: %v", err)
	}
	if got := scenes.Config(); got != want {
		t.Errorf("config after token = %+v, want %+v", got, want)
	}

	if _, err := presets.ApplyShareToken(ctx, "%%%"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
