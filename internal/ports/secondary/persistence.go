// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// external systems.
package secondary

import (
	"context"

	"github.com/example/agencyos/internal/models"
)

// SnapshotStore defines the secondary port for durable snapshot persistence.
// The whole workspace persists as one document; there is no per-record
// access path.
type SnapshotStore interface {
	// Load retrieves the persisted snapshot. A store with no snapshot yet
	// returns (nil, nil).
	Load(ctx context.Context) (*models.Snapshot, error)

	// Save replaces the persisted snapshot.
	Save(ctx context.Context, snap models.Snapshot) error
}
