package codec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"nodal/internal/config"
)

// ErrInvalidToken is returned when a share token cannot be decoded
var ErrInvalidToken = errors.New("invalid share token")

// EncodeShareToken packs scene settings into a URL-safe token
func EncodeShareToken(settings config.SceneConfig) (string, error) {
	data, err := json.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("failed to encode settings: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeShareToken unpacks a share token. A leading '#' from a URL fragment
// is ignored. Missing settings keep their defaults and the result is
// clamped.
func DecodeShareToken(token string) (config.SceneConfig, error) {
	token = strings.TrimPrefix(strings.TrimSpace(token), "#")
	if token == "" {
		return config.SceneConfig{}, ErrInvalidToken
	}

	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return config.SceneConfig{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	settings := config.DefaultSceneConfig()
	if err := json.Unmarshal(data, &settings); err != nil {
		return config.SceneConfig{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	settings.Clamp()
	return settings, nil
}
