package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"nodal/internal/codec"
	"nodal/internal/domain"
	"nodal/internal/repository"
	"nodal/internal/scene"
)

// PresetService provides business logic for saved scene configurations
type PresetService struct {
	repo     repository.Repository
	scenes   *SceneService
	eventBus *EventBus
}

// NewPresetService creates a new preset service
func NewPresetService(repo repository.Repository, scenes *SceneService, eventBus *EventBus) *PresetService {
	return &PresetService{
		repo:     repo,
		scenes:   scenes,
		eventBus: eventBus,
	}
}

// Save stores the live scene settings under name. Saving an existing name
// replaces its settings.
func (s *PresetService) Save(ctx context.Context, name, description string) (*domain.Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: preset name is required", ErrInvalidInput)
	}

	preset := domain.NewPreset(name, s.scenes.Config())
	preset.Description = description
	return preset, s.store(ctx, preset)
}

func (s *PresetService) store(ctx context.Context, preset *domain.Preset) error {
	if err := s.repo.SavePreset(ctx, preset); err != nil {
		return err
	}

	log.Printf("Saved preset %q (%s)", preset.Name, preset.ID)
	s.eventBus.Publish(Event{
		Type:    EventPresetSaved,
		Payload: map[string]string{"preset_id": preset.ID, "name": preset.Name},
	})
	return nil
}

// Get retrieves a single preset by ID
func (s *PresetService) Get(ctx context.Context, id string) (*domain.Preset, error) {
	preset, err := s.repo.GetPreset(ctx, id)
	if err != nil {
		return nil, err
	}
	if preset == nil {
		return nil, fmt.Errorf("preset %s: %w", id, repository.ErrNotFound)
	}
	return preset, nil
}

// List returns all presets ordered by name
func (s *PresetService) List(ctx context.Context) ([]domain.Preset, error) {
	return s.repo.ListPresets(ctx)
}

// Delete removes a preset
func (s *PresetService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeletePreset(ctx, id); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventPresetDeleted,
		Payload: map[string]string{"preset_id": id},
	})
	return nil
}

// Load applies a preset to the live scene
func (s *PresetService) Load(ctx context.Context, id string) (scene.Level, error) {
	preset, err := s.Get(ctx, id)
	if err != nil {
		return scene.LevelStyle, err
	}

	level, err := s.scenes.ApplyConfig(ctx, preset.Settings)
	if err != nil {
		return level, err
	}

	log.Printf("Loaded preset %q", preset.Name)
	s.eventBus.Publish(Event{
		Type:    EventPresetLoaded,
		Payload: map[string]string{"preset_id": preset.ID, "name": preset.Name},
	})
	return level, nil
}

// Export writes a preset in the given format and returns its content type
func (s *PresetService) Export(ctx context.Context, id, format string, w io.Writer) (string, error) {
	c, err := codec.ForFormat(format)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	preset, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	if err := c.Export(preset, w); err != nil {
		return "", err
	}
	return c.ContentType(), nil
}

// Import parses a preset document and saves it
func (s *PresetService) Import(ctx context.Context, format string, r io.Reader) (*domain.Preset, error) {
	c, err := codec.ForFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	preset, err := c.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.store(ctx, preset); err != nil {
		return nil, err
	}
	return preset, nil
}

// ImportAll saves presets loaded elsewhere, replacing any with the same
// name, and returns how many were stored
func (s *PresetService) ImportAll(ctx context.Context, presets []*domain.Preset) (int, error) {
	for i, preset := range presets {
		if err := s.store(ctx, preset); err != nil {
			return i, fmt.Errorf("preset %q: %w", preset.Name, err)
		}
	}
	return len(presets), nil
}

// ShareToken encodes the live scene settings as a URL-safe token
func (s *PresetService) ShareToken() (string, error) {
	return codec.EncodeShareToken(s.scenes.Config())
}

// ApplyShareToken decodes a share token and applies it to the live scene
func (s *PresetService) ApplyShareToken(ctx context.Context, token string) (scene.Level, error) {
	settings, err := codec.DecodeShareToken(token)
	if err != nil {
		return scene.LevelStyle, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.scenes.ApplyConfig(ctx, settings)
}
