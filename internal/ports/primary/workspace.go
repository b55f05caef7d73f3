package primary

import (
	"context"

	"github.com/example/agencyos/internal/core/health"
	"github.com/example/agencyos/internal/models"
)

// WorkspaceService defines the primary port for workspace-level operations:
// initialization, capability resolution, and the status overview.
type WorkspaceService interface {
	// Initialize seeds a fresh workspace and stores the capability phrase
	// hashes. Fails if the workspace is already initialized.
	Initialize(ctx context.Context, ceoPhrase, teamPhrase string) error

	// ResolveOperator maps a passphrase to an operator level (ceo or team).
	ResolveOperator(ctx context.Context, phrase string) (string, error)

	// Status computes the badge counters and per-client health rows.
	Status(ctx context.Context) (*StatusReport, error)
}

// StatusReport is the aggregate view behind the status command.
type StatusReport struct {
	Badges  health.Badges
	Clients []ClientHealthRow
}

// ClientHealthRow pairs a client with its computed health.
type ClientHealthRow struct {
	Client   models.Client
	Computed string // computed from task signals
	Manual   string // the stored RelationshipHealth override, may be empty
}
