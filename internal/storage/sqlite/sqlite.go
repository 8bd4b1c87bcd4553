// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/chitfund/internal/models"
	"github.com/mmynk/chitfund/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load retrieves the saved group, or nil if none has been saved.
func (s *SQLiteStore) Load(ctx context.Context) (*models.GroupData, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM group_snapshot WHERE id = 1",
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group snapshot: %w", err)
	}

	data, err := storage.Decode([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to load group snapshot: %w", err)
	}
	return data, nil
}

// Save replaces the stored snapshot.
func (s *SQLiteStore) Save(ctx context.Context, data *models.GroupData) error {
	raw, err := storage.Encode(data)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO group_snapshot (id, schema_version, data, members, records, loans, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			schema_version = excluded.schema_version,
			data = excluded.data,
			members = excluded.members,
			records = excluded.records,
			loans = excluded.loans,
			updated_at = excluded.updated_at`,
		data.SchemaVersion, string(raw),
		len(data.Members), len(data.Records), len(data.LoansIssued),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save group snapshot: %w", err)
	}
	return nil
}

// Info describes the stored snapshot without decoding it.
type Info struct {
	SchemaVersion int
	Members       int
	Records       int
	Loans         int
	UpdatedAt     time.Time
}

// Info returns metadata about the stored snapshot. The boolean is false
// when nothing has been saved.
func (s *SQLiteStore) Info(ctx context.Context) (Info, bool, error) {
	var (
		info      Info
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT schema_version, members, records, loans, updated_at FROM group_snapshot WHERE id = 1",
	).Scan(&info.SchemaVersion, &info.Members, &info.Records, &info.Loans, &updatedAt)
	if err == sql.ErrNoRows {
		return Info{}, false, nil
	}
	if err != nil {
		return Info{}, false, fmt.Errorf("failed to get snapshot info: %w", err)
	}
	info.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return info, true, nil
}
