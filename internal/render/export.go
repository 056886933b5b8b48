package render

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// Still renders the current frame of src at the export size
func Still(src Source, background bool) image.Image {
	cfg := src.Config()
	img := New(cfg).Image(src.Graph(), src.Frame(), background)
	return Resize(img, cfg.Export.Width, cfg.Export.Height)
}

// Frames renders a deterministic loop of n frames at the export size
func Frames(src Source, n int, background bool) []image.Image {
	cfg := src.Config()
	r := New(cfg)
	g := src.Graph()

	frames := make([]image.Image, n)
	for i := 0; i < n; i++ {
		img := r.Image(g, src.FrameAt(i, n), background)
		frames[i] = Resize(img, cfg.Export.Width, cfg.Export.Height)
	}
	return frames
}

// Resize scales img to w x h with Catmull-Rom filtering. It returns img
// unchanged when the size already matches or the target is empty.
func Resize(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if w <= 0 || h <= 0 || (b.Dx() == w && b.Dy() == h) {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// EncodePNG writes img as PNG
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// EncodeGIF writes frames as a looping animated GIF at fps. Frames are
// dithered onto a fixed 256 color palette.
func EncodeGIF(w io.Writer, frames []image.Image, fps int) error {
	if len(frames) == 0 {
		return fmt.Errorf("failed to encode GIF: no frames")
	}
	if fps <= 0 {
		fps = 30
	}
	delay := max(1, 100/fps)

	anim := &gif.GIF{LoopCount: 0}
	for _, img := range frames {
		b := img.Bounds()
		pal := image.NewPaletted(b, palette.Plan9)
		draw.FloydSteinberg.Draw(pal, b, img, b.Min)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("failed to encode GIF: %w", err)
	}
	return nil
}

// WriteFrames writes frames as numbered PNG files into dir and returns
// their paths
func WriteFrames(dir, prefix string, frames []image.Image) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create frame directory: %w", err)
	}

	paths := make([]string, 0, len(frames))
	for i, img := range frames {
		path := filepath.Join(dir, fmt.Sprintf("%s_%04d.png", prefix, i))
		if err := writePNG(path, img); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
