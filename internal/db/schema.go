package db

import "fmt"

// SchemaSQL holds the database schema. The workspace persists as one
// versioned snapshot document; history rows stay around for manual
// recovery.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    document TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS snapshot_history (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    document TEXT NOT NULL,
    saved_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// InitSchema applies the schema to the shared connection.
func InitSchema() error {
	conn, err := GetDB()
	if err != nil {
		return err
	}
	if _, err := conn.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
