package domain

import (
	"time"

	"github.com/google/uuid"

	"nodal/internal/config"
)

// Preset is a named, reproducible scene configuration
type Preset struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Settings    config.SceneConfig `json:"settings"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// NewPreset creates a preset with a fresh ID
func NewPreset(name string, settings config.SceneConfig) *Preset {
	now := time.Now().UTC()
	return &Preset{
		ID:        uuid.NewString(),
		Name:      name,
		Settings:  settings,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
