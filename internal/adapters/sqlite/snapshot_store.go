// Package sqlite contains SQLite implementations of the secondary ports.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/agencyos/internal/models"
	"github.com/example/agencyos/internal/ports/secondary"
)

// historyDepth bounds the recovery history kept alongside the live snapshot.
const historyDepth = 20

// SnapshotStore implements secondary.SnapshotStore with SQLite. The whole
// workspace lives in a single document row; every save also appends a
// history row for manual recovery.
type SnapshotStore struct {
	db *sql.DB
}

// NewSnapshotStore creates a new SQLite snapshot store.
func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

var _ secondary.SnapshotStore = (*SnapshotStore)(nil)

// Load retrieves the persisted snapshot, or (nil, nil) for a fresh store.
func (s *SnapshotStore) Load(ctx context.Context) (*models.Snapshot, error) {
	var document string
	err := s.db.QueryRowContext(ctx, "SELECT document FROM snapshots WHERE id = 1").Scan(&document)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(document), &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// Save replaces the persisted snapshot and appends a history row.
func (s *SnapshotStore) Save(ctx context.Context, snap models.Snapshot) error {
	document, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, document, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET document = excluded.document, updated_at = CURRENT_TIMESTAMP`,
		string(document)); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO snapshot_history (document) VALUES (?)", string(document)); err != nil {
		return fmt.Errorf("failed to write snapshot history: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM snapshot_history WHERE seq <= (
			SELECT seq FROM snapshot_history ORDER BY seq DESC LIMIT 1 OFFSET ?)`,
		historyDepth); err != nil {
		return fmt.Errorf("failed to prune snapshot history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot save: %w", err)
	}
	return nil
}
