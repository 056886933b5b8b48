package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"nodal/internal/domain"
	"nodal/internal/repository"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.Repository = (*Repository)(nil)

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases shared across queries
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS presets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		settings JSON NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value JSON NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_presets_updated ON presets(updated_at);
	`

	if _, err := r.db.Exec(schema); err != nil {
		return err
	}

	return r.addColumnIfNotExists("presets", "description", "TEXT")
}

// addColumnIfNotExists adds a column to an existing table if it is missing
func (r *Repository) addColumnIfNotExists(table, column, decl string) error {
	rows, err := r.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("failed to scan column info: %w", err)
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if _, err := r.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl)); err != nil {
		return fmt.Errorf("failed to add %s.%s: %w", table, column, err)
	}
	log.Printf("Migrated %s: added column %s", table, column)
	return nil
}

// GetPreset retrieves a single preset by ID
func (r *Repository) GetPreset(ctx context.Context, id string) (*domain.Preset, error) {
	return r.getPreset(ctx, "id", id)
}

// GetPresetByName retrieves a single preset by its unique name
func (r *Repository) GetPresetByName(ctx context.Context, name string) (*domain.Preset, error) {
	return r.getPreset(ctx, "name", name)
}

func (r *Repository) getPreset(ctx context.Context, column, value string) (*domain.Preset, error) {
	var row presetRow
	err := r.db.QueryRowContext(ctx,
		`SELECT `+presetColumns+` FROM presets WHERE `+column+` = ?`, value,
	).Scan(row.scanArgs()...)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query preset: %w", err)
	}

	return row.toDomain()
}

// ListPresets returns every preset ordered by name
func (r *Repository) ListPresets(ctx context.Context) ([]domain.Preset, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+presetColumns+` FROM presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query presets: %w", err)
	}
	defer rows.Close()

	presets := []domain.Preset{}
	for rows.Next() {
		var row presetRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan preset: %w", err)
		}
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		presets = append(presets, *p)
	}

	return presets, rows.Err()
}

// SavePreset inserts a preset, or updates the settings of the preset that
// already has the same name. On return the preset carries the stored ID
// and creation time.
func (r *Repository) SavePreset(ctx context.Context, preset *domain.Preset) error {
	if preset.ID == "" {
		preset.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if preset.CreatedAt.IsZero() {
		preset.CreatedAt = now
	}
	preset.UpdatedAt = now

	args, err := presetInsertArgs(preset)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO presets (`+presetColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			settings = excluded.settings,
			updated_at = excluded.updated_at,
			description = excluded.description
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to save preset: %w", err)
	}

	var created sql.NullString
	err = r.db.QueryRowContext(ctx,
		`SELECT id, created_at FROM presets WHERE name = ?`, preset.Name,
	).Scan(&preset.ID, &created)
	if err != nil {
		return fmt.Errorf("failed to read back preset: %w", err)
	}
	if preset.CreatedAt, err = textToTime(created); err != nil {
		return fmt.Errorf("parse created_at: %w", err)
	}

	return nil
}

// DeletePreset removes a preset by ID
func (r *Repository) DeletePreset(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM presets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("preset %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

// GetMeta returns a metadata value, or nil if the key is unset
func (r *Repository) GetMeta(ctx context.Context, key string) ([]byte, error) {
	var value sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query metadata: %w", err)
	}
	return []byte(nullToString(value)), nil
}

// SetMeta stores a metadata value. Empty values clear the key.
func (r *Repository) SetMeta(ctx context.Context, key string, value []byte) error {
	if len(value) == 0 {
		_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
		if err != nil {
			return fmt.Errorf("failed to clear metadata: %w", err)
		}
		return nil
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, stringToNull(string(value)), timeToText(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}
	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
