package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"nodal/internal/config"
	"nodal/internal/domain"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// ContentType returns the MIME type of exported documents
func (c *YAMLCodec) ContentType() string {
	return "application/yaml"
}

// yamlPreset represents the YAML structure for a preset
type yamlPreset struct {
	Version  int                `yaml:"version"`
	Name     string             `yaml:"name"`
	Settings config.SceneConfig `yaml:"settings"`
}

// Parse imports a preset from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Preset, error) {
	doc := yamlPreset{Settings: config.DefaultSceneConfig()}
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.Name == "" {
		return nil, ErrMissingName
	}

	doc.Settings.Clamp()
	return domain.NewPreset(doc.Name, doc.Settings), nil
}

// Export exports a preset to YAML
func (c *YAMLCodec) Export(preset *domain.Preset, w io.Writer) error {
	doc := yamlPreset{Version: DocumentVersion, Name: preset.Name, Settings: preset.Settings}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
