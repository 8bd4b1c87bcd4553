package sqlite

import (
	"database/sql"
	"fmt"
)

// schemaVersion is the SQLite schema revision stored in PRAGMA user_version.
// It is independent of models.CurrentSchemaVersion, which versions the
// snapshot contents.
const schemaVersion = 1

// schema holds one row per saved group snapshot. Only the row with id 1 is
// used; the constraint keeps it that way.
const schema = `
CREATE TABLE IF NOT EXISTS group_snapshot (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    schema_version INTEGER NOT NULL,
    data TEXT NOT NULL,
    members INTEGER NOT NULL,
    records INTEGER NOT NULL,
    loans INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// runMigrations executes the schema setup and records the schema revision.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported %d", version, schemaVersion)
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}
