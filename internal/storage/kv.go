package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// KV is the persistent key-value scope backed by the kv table.
// It satisfies session.Store.
type KV struct {
	db *sql.DB
}

// KV returns the persistent key-value scope of this store.
func (s *Store) KV() *KV {
	return &KV{db: s.db}
}

// Get returns the value for key and whether it was present.
// Database errors read as absent and are logged.
func (k *KV) Get(key string) (string, bool) {
	var value string
	err := k.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("failed to read key", "key", key, "error", err)
		}
		return "", false
	}
	return value, true
}

// Set stores value under key.
func (k *KV) Set(key, value string) error {
	_, err := k.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (k *KV) Delete(key string) error {
	if _, err := k.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
