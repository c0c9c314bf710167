package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/sightshare/reflections/internal/api"
	dbstore "github.com/sightshare/reflections/internal/db"
)

// MigrateIfNeeded imports a legacy browser-export snapshot into a fresh
// SQLite database. It runs only when the database file does not exist yet;
// a missing snapshot is not an error.
func MigrateIfNeeded(snapshotPath, sqlitePath string) error {
	if sqlitePath == "" {
		return errors.New("sqlite path is required")
	}
	if _, err := os.Stat(sqlitePath); err == nil {
		return nil // already migrated
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("check sqlite file: %w", err)
	}
	if snapshotPath == "" {
		return nil
	}

	legacyStore, err := api.NewMemoryStoreFromPath(snapshotPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load legacy snapshot: %w", err)
	}
	rs, err := legacyStore.ReadReflections()
	if err != nil {
		return err
	}
	if len(rs) == 0 {
		return nil
	}

	log.Printf("First run detected, importing %d reflections from legacy snapshot %s...", len(rs), snapshotPath)

	if err := os.MkdirAll(filepath.Dir(sqlitePath), 0o755); err != nil {
		return fmt.Errorf("create sqlite dir: %w", err)
	}
	sqliteDB, err := sql.Open("sqlite3", sqliteDSN(sqlitePath))
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer func() {
		if cerr := sqliteDB.Close(); cerr != nil {
			log.Printf("warning: failed to close sqlite db: %v", cerr)
		}
	}()
	if err := dbstore.RunMigrations(sqliteDB); err != nil {
		return err
	}
	store, err := dbstore.NewStore(sqliteDB)
	if err != nil {
		return err
	}
	if err := store.WriteReflections(rs); err != nil {
		return fmt.Errorf("write imported reflections: %w", err)
	}
	log.Printf("Legacy snapshot import complete")
	return nil
}
