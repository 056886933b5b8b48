// Package codec converts presets to and from portable documents.
package codec

import (
	"errors"
	"fmt"
	"io"

	"nodal/internal/domain"
)

// DocumentVersion is written into every exported preset document
const DocumentVersion = 1

// ErrUnknownFormat is returned for an unsupported format name
var ErrUnknownFormat = errors.New("unknown format")

// ErrMissingName is returned when a document has no preset name
var ErrMissingName = errors.New("preset name is required")

// Importer interface for importing presets from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Preset, error)
	Format() string
}

// Exporter interface for exporting presets to various formats
type Exporter interface {
	Export(preset *domain.Preset, w io.Writer) error
	Format() string
}

// Codec both imports and exports
type Codec interface {
	Importer
	Exporter
	ContentType() string
}

// ForFormat returns the codec for a format name. An empty name selects JSON.
func ForFormat(format string) (Codec, error) {
	switch format {
	case "", "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
