package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
)

const createSlotsTable = `
	CREATE TABLE IF NOT EXISTS kv_slots (
		slot_key   VARCHAR(191) NOT NULL PRIMARY KEY,
		slot_value MEDIUMBLOB   NOT NULL,
		updated_at DATETIME     NOT NULL
	)`

// SQL stores entries in the kv_slots table of a MySQL database.
type SQL struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

// Migrate creates the kv_slots table if it does not exist yet.
func (s *SQL) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSlotsTable); err != nil {
		return errors.Wrap(err, "create kv_slots table")
	}
	return nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT slot_value FROM kv_slots WHERE slot_key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "select slot %q", key)
	}
	return value, nil
}

func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	// Insert or Update logic (Upsert)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_slots (slot_key, slot_value, updated_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			slot_value = VALUES(slot_value),
			updated_at = VALUES(updated_at)`,
		key, value, time.Now().UTC())
	if err != nil {
		return errors.Wrapf(err, "upsert slot %q", key)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_slots WHERE slot_key = ?", key); err != nil {
		return errors.Wrapf(err, "delete slot %q", key)
	}
	return nil
}
