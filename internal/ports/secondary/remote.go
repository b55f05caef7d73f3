package secondary

import (
	"context"

	"github.com/example/agencyos/internal/models"
)

// RemotePayload is the document fetched from a remote workspace. Collections
// are nil when the remote carries nothing for them; a nil collection is
// distinguishable from an empty one so a partial remote never clobbers
// local data.
type RemotePayload struct {
	Clients     []models.Client             `json:"clients"`
	Tasks       []models.Task               `json:"tasks"`
	Posts       []models.Post               `json:"posts"`
	Onboardings []models.OnboardingProtocol `json:"onboardings"`
	Protocols   []models.Protocol           `json:"protocols"`
	Settings    *models.Settings            `json:"settings"`
}

// RemoteStore defines the secondary port for the optional remote workspace.
// Fetch returns (nil, nil) when no remote is configured; any transport or
// decode failure also yields a nil payload so startup falls back to local
// state.
type RemoteStore interface {
	Fetch(ctx context.Context) (*RemotePayload, error)
}
