package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"nodal/internal/config"
	"nodal/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// ContentType returns the MIME type of exported documents
func (c *JSONCodec) ContentType() string {
	return "application/json"
}

// jsonPreset is the JSON document layout
type jsonPreset struct {
	Version  int                `json:"version"`
	Name     string             `json:"name"`
	Settings config.SceneConfig `json:"settings"`
}

// Parse imports a preset from JSON. Settings omitted from the document
// keep their defaults and every value is clamped into range.
func (c *JSONCodec) Parse(r io.Reader) (*domain.Preset, error) {
	doc := jsonPreset{Settings: config.DefaultSceneConfig()}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if doc.Name == "" {
		return nil, ErrMissingName
	}

	doc.Settings.Clamp()
	return domain.NewPreset(doc.Name, doc.Settings), nil
}

// Export exports a preset to JSON
func (c *JSONCodec) Export(preset *domain.Preset, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	doc := jsonPreset{Version: DocumentVersion, Name: preset.Name, Settings: preset.Settings}
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
