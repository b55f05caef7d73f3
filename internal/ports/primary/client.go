// Package primary defines the primary ports (driving interfaces) for the
// application. Update operations take the typed patch structs from
// internal/core so the nil-means-untouched contract is stated once.
package primary

import (
	"context"

	"github.com/example/agencyos/internal/core/client"
	"github.com/example/agencyos/internal/models"
)

// ClientService defines the primary port for client lifecycle operations.
type ClientService interface {
	// CreateClient installs a new client.
	CreateClient(ctx context.Context, req CreateClientRequest) (*models.Client, error)

	// GetClient retrieves a client by ID.
	GetClient(ctx context.Context, id int) (*models.Client, error)

	// ListClients lists clients with optional filters.
	ListClients(ctx context.Context, filters ClientFilters) ([]models.Client, error)

	// UpdateClient merges a patch; status changes fire lifecycle triggers.
	UpdateClient(ctx context.Context, id int, patch client.Patch) (*models.Client, error)

	// DeleteClient removes a client and everything bound to it.
	DeleteClient(ctx context.Context, id int) error

	// AddTimelineEvent prepends a manual or system event to the timeline.
	AddTimelineEvent(ctx context.Context, clientID int, text, kind string) error

	// ClientHealth returns the computed relationship health for a client.
	ClientHealth(ctx context.Context, clientID int) (string, error)
}

// CreateClientRequest contains parameters for installing a client.
type CreateClientRequest struct {
	Name           string
	Status         string // defaults to Lead
	RevenueGate    string
	Tier           string
	ContractValue  int
	LTV            int
	Phone          string
	Email          string
	ContactName    string
	Niche          string
	StartDate      string // YYYY-MM-DD
	ShadowAvatar   string
	BleedingNeck   string
	ContentPillars []string
	Notes          string
}

// ClientFilters contains filter options for listing clients.
type ClientFilters struct {
	Status string
	Tier   string
}
