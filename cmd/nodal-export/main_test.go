package main

import (
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "nodal.yaml")
	data := []byte(`scene:
  canvas:
    width: 320
    height: 240
  grid:
    cell_size: 40
  export:
    width: 640
    height: 480
    fps: 2
    duration: 1s
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunPNG(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "still.png")

	if err := run(options{configPath: writeConfig(t, dir), out: out, format: "png"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 480 {
		t.Errorf("size = %dx%d", b.Dx(), b.Dy())
	}
}

func TestRunGIF(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "loop.gif")

	if err := run(options{configPath: writeConfig(t, dir), out: out, format: "gif", frames: 3}); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(g.Image) != 3 {
		t.Errorf("gif has %d frames, want 3", len(g.Image))
	}
}

func TestRunFrames(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frames")

	// Default frame count comes from export duration x fps
	if err := run(options{configPath: writeConfig(t, dir), out: out, format: "frames", transparent: true}); err != nil {
		t.Fatalf("run: %v", err)
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("wrote %d frames, want 2", len(entries))
	}
}

func TestRunUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	if err := run(options{configPath: writeConfig(t, dir), format: "bmp"}); err == nil {
		t.Error("expected error for unknown format")
	}
}
