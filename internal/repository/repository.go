package repository

import (
	"context"
	"errors"

	"nodal/internal/domain"
)

// ErrNotFound is returned when deleting a record that does not exist
var ErrNotFound = errors.New("not found")

// Repository defines the interface for preset data access
type Repository interface {
	// Presets
	GetPreset(ctx context.Context, id string) (*domain.Preset, error)
	GetPresetByName(ctx context.Context, name string) (*domain.Preset, error)
	ListPresets(ctx context.Context) ([]domain.Preset, error)
	SavePreset(ctx context.Context, preset *domain.Preset) error
	DeletePreset(ctx context.Context, id string) error

	// Metadata
	GetMeta(ctx context.Context, key string) ([]byte, error)
	SetMeta(ctx context.Context, key string, value []byte) error

	// Close releases resources
	Close() error
}
