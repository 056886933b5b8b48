package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"nodal/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// ============================================================================
// Time Helpers
// ============================================================================

// timeLayout is the stored timestamp format; it sorts lexically
const timeLayout = time.RFC3339Nano

// timeToText formats a timestamp for storage in UTC
func timeToText(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// textToTime parses a stored timestamp, returning the zero time for NULL
func textToTime(ns sql.NullString) (time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return time.Time{}, nil
	}
	return time.Parse(timeLayout, ns.String)
}

// ============================================================================
// JSON Marshaling Helpers
// ============================================================================

// unmarshalJSONField safely unmarshals JSON from nullable string into target
func unmarshalJSONField(ns sql.NullString, target interface{}) error {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(ns.String), target)
}

// ============================================================================
// Schema Evolution Guide
// ============================================================================
//
// To add a new column to the presets table:
// 1. Add field to presetRow struct (below)
// 2. Update scanArgs() - APPEND to end to match column order
// 3. Update presetColumns constant - APPEND to end
// 4. Update toDomain() to map new field to domain.Preset
// 5. Update presetInsertArgs() if column should be writable
// 6. Add migration in sqlite.go migrate() using addColumnIfNotExists()
// 7. Update relevant tests
//
// CRITICAL: Column order must match between:
// - presetColumns constant
// - scanArgs() return slice
// - All SELECT queries using presetColumns

// ============================================================================
// Preset Row Scanner
// ============================================================================

// presetRow holds all columns from a preset query for scanning
type presetRow struct {
	ID           string
	Name         string
	SettingsJSON sql.NullString
	CreatedAt    sql.NullString
	UpdatedAt    sql.NullString
	Description  sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match presetColumns order exactly:
// id, name, settings, created_at, updated_at, description
func (r *presetRow) scanArgs() []interface{} {
	return []interface{}{
		&r.ID,           // 1
		&r.Name,         // 2
		&r.SettingsJSON, // 3
		&r.CreatedAt,    // 4
		&r.UpdatedAt,    // 5
		&r.Description,  // 6
	}
}

// toDomain converts the scanned row to a domain.Preset
func (r *presetRow) toDomain() (*domain.Preset, error) {
	preset := &domain.Preset{
		ID:          r.ID,
		Name:        r.Name,
		Description: nullToString(r.Description),
	}

	if err := unmarshalJSONField(r.SettingsJSON, &preset.Settings); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	var err error
	if preset.CreatedAt, err = textToTime(r.CreatedAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if preset.UpdatedAt, err = textToTime(r.UpdatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return preset, nil
}

// presetColumns returns the SELECT column list for preset queries
const presetColumns = `id, name, settings, created_at, updated_at, description`

// ============================================================================
// Preset Write Helpers
// ============================================================================

// presetInsertArgs prepares arguments for preset INSERT/UPSERT
// Returns: id, name, settings, created_at, updated_at, description
func presetInsertArgs(preset *domain.Preset) ([]interface{}, error) {
	settingsJSON, err := json.Marshal(preset.Settings)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}

	return []interface{}{
		preset.ID,
		preset.Name,
		string(settingsJSON),
		timeToText(preset.CreatedAt),
		timeToText(preset.UpdatedAt),
		stringToNull(preset.Description),
	}, nil
}
