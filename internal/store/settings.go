package store

import (
	"database/sql"
	"errors"
)

// Setting keys understood by the application.
const (
	// SettingDetectionEnabled holds "true"/"false" for whether the
	// camera pipeline runs. Toggled from the tray menu.
	SettingDetectionEnabled = "detection_enabled"
)

// SettingsRepository provides access to key-value application settings.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get retrieves a setting value by key. Returns ErrNotFound if the key
// has never been set.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string

	err := r.db.QueryRow(
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	return value, nil
}

// Set stores a setting value, replacing any existing value for the key.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// GetBool retrieves a boolean setting, falling back to def when the key
// is unset.
func (r *SettingsRepository) GetBool(key string, def bool) (bool, error) {
	value, err := r.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return def, nil
		}
		return def, err
	}
	return value == "true", nil
}

// SetBool stores a boolean setting.
func (r *SettingsRepository) SetBool(key string, v bool) error {
	value := "false"
	if v {
		value = "true"
	}
	return r.Set(key, value)
}
