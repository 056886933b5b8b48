// Package loader reads preset documents from disk.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"nodal/internal/codec"
	"nodal/internal/domain"
)

// formatFor returns the codec format for a file extension, or "" when the
// file is not a preset document
func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// LoadFile parses a single preset document
func LoadFile(path string) (*domain.Preset, error) {
	format := formatFor(path)
	if format == "" {
		return nil, fmt.Errorf("%s: %w", path, codec.ErrUnknownFormat)
	}

	c, err := codec.ForFormat(format)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preset: %w", err)
	}
	defer f.Close()

	preset, err := c.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return preset, nil
}

// LoadDir parses every preset document directly inside dir, ordered by
// file name. Other files are ignored. A document that fails to parse
// aborts the load.
func LoadDir(dir string) ([]*domain.Preset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || formatFor(e.Name()) == "" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	presets := make([]*domain.Preset, 0, len(names))
	for _, name := range names {
		preset, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		presets = append(presets, preset)
	}
	return presets, nil
}
