package primary

import (
	"context"

	"github.com/example/agencyos/internal/core/vault"
	"github.com/example/agencyos/internal/models"
)

// VaultService defines the primary port for the knowledge vault.
type VaultService interface {
	// CreateEntry adds a knowledge entry. AI prompts get their variables
	// extracted from the content when none are supplied.
	CreateEntry(ctx context.Context, req CreateEntryRequest) (*models.Protocol, error)

	// GetEntry retrieves an entry by ID.
	GetEntry(ctx context.Context, id int) (*models.Protocol, error)

	// ListEntries lists entries with optional filters.
	ListEntries(ctx context.Context, filters VaultFilters) ([]models.Protocol, error)

	// UpdateEntry merges a patch.
	UpdateEntry(ctx context.Context, id int, patch vault.Patch) (*models.Protocol, error)

	// DeleteEntry removes an entry.
	DeleteEntry(ctx context.Context, id int) error

	// CopyEntry returns the entry content and increments its copy counter.
	CopyEntry(ctx context.Context, id int) (string, error)
}

// CreateEntryRequest contains parameters for adding a knowledge entry.
type CreateEntryRequest struct {
	Title           string
	Category        string
	Pillar          string
	Tags            []string
	Status          string // defaults to active
	Content         string
	PromptTool      string
	PromptVariables []string
	UsageNotes      string
	LinkedTaskTypes []string
	LinkedClientID  int
}

// VaultFilters contains filter options for listing knowledge entries.
type VaultFilters struct {
	Category string
	Status   string
	ClientID int // 0 means all clients
}
