package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSettingNotFound is returned when a settings key has never been written.
// Callers fall back to their defaults in that case.
var ErrSettingNotFound = errors.New("setting not found")

// SettingsRepository is the small keyed store for process-wide configuration
// values (operation_hours, testing_clock). Values are opaque JSON.
type SettingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepository(database *sql.DB) *SettingsRepository {
	return &SettingsRepository{DB: database}
}

func (r *SettingsRepository) Get(key string) (json.RawMessage, error) {
	var value []byte
	err := r.DB.QueryRow(`SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingNotFound
		}
		return nil, fmt.Errorf("error reading setting %q: %w", key, err)
	}
	return value, nil
}

func (r *SettingsRepository) Upsert(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error encoding setting %q: %w", key, err)
	}
	_, err = r.DB.Exec(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, key, raw)
	if err != nil {
		return fmt.Errorf("error writing setting %q: %w", key, err)
	}
	return nil
}
