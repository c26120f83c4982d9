package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sioneuhlig/eventscout/internal/shared"
)

// SQLiteSlotStore implements [SlotStore] over the storage_slots table.
type SQLiteSlotStore struct {
	db *sql.DB
}

// NewSQLiteSlotStore wraps a migrated database connection. The store owns db and closes it.
func NewSQLiteSlotStore(db *sql.DB) *SQLiteSlotStore {
	return &SQLiteSlotStore{db: db}
}

// Read retrieves a slot by key
func (s *SQLiteSlotStore) Read(key string) (*Slot, error) {
	query := `SELECT slot_key, version, payload, updated_at FROM storage_slots WHERE slot_key = ?`

	var (
		slot    Slot
		payload string
	)
	err := s.db.QueryRow(query, key).Scan(&slot.Key, &slot.Version, &payload, &slot.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSlotNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query slot %s: %v", shared.ErrStorage, key, err)
	}

	slot.Payload = []byte(payload)
	return &slot, nil
}

// Write inserts or replaces a slot
func (s *SQLiteSlotStore) Write(slot Slot) error {
	if slot.UpdatedAt.IsZero() {
		slot.UpdatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO storage_slots (slot_key, version, payload, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(slot_key) DO UPDATE SET
			version = excluded.version,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`

	if _, err := s.db.Exec(query, slot.Key, slot.Version, string(slot.Payload), slot.UpdatedAt); err != nil {
		return fmt.Errorf("%w: failed to write slot %s: %v", shared.ErrStorage, slot.Key, err)
	}
	return nil
}

// Delete removes the given slots; absent keys are ignored.
func (s *SQLiteSlotStore) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	query := fmt.Sprintf("DELETE FROM storage_slots WHERE slot_key IN (%s)", placeholders)
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("%w: failed to delete slots: %v", shared.ErrStorage, err)
	}
	return nil
}

// Keys lists slot keys starting with prefix, in key order.
func (s *SQLiteSlotStore) Keys(prefix string) ([]string, error) {
	query := `
		SELECT slot_key FROM storage_slots
		WHERE substr(slot_key, 1, length(?)) = ?
		ORDER BY slot_key
	`

	rows, err := s.db.Query(query, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list slots: %v", shared.ErrStorage, err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: failed to scan slot key: %v", shared.ErrStorage, err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteSlotStore) Close() error {
	return s.db.Close()
}

// DB exposes the connection for migration status queries.
func (s *SQLiteSlotStore) DB() *sql.DB {
	return s.db
}
