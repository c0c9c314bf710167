package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/sightshare/reflections/internal/api"
)

// Slot name carried over from the frontend's localStorage key so legacy
// exports and the server store stay interchangeable.
const reflectionSlot = "sightshare_volunteer_reflections"

// SQLiteStore persists the reflection collection as one serialized slot in a
// key-value table. Reads and writes move the whole collection at once; there
// is no per-record addressing, matching the storage model the app began with.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func NewStore(db *sql.DB) (api.Store, error) {
	return NewSQLiteStore(db)
}

func (s *SQLiteStore) ReadReflections() ([]*api.Reflection, error) {
	var raw string
	err := s.db.QueryRow("SELECT value FROM slots WHERE name = ?", reflectionSlot).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []*api.Reflection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read reflection slot: %w", err)
	}
	var rs []*api.Reflection
	if err := json.Unmarshal([]byte(raw), &rs); err != nil {
		log.Printf("sqlite store: corrupt reflection slot, treating as empty: %v", err)
		return []*api.Reflection{}, nil
	}
	if rs == nil {
		rs = []*api.Reflection{}
	}
	return rs, nil
}

func (s *SQLiteStore) WriteReflections(rs []*api.Reflection) error {
	b, err := json.Marshal(rs)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO slots(name, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		reflectionSlot, string(b),
	)
	if err != nil {
		return fmt.Errorf("write reflection slot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ClearReflections() error {
	if _, err := s.db.Exec("DELETE FROM slots WHERE name = ?", reflectionSlot); err != nil {
		return fmt.Errorf("clear reflection slot: %w", err)
	}
	return nil
}

var _ api.Store = (*SQLiteStore)(nil)
