package primary

import (
	"context"

	"github.com/example/agencyos/internal/models"
)

// OnboardingService defines the primary port for the onboarding checklist.
type OnboardingService interface {
	// GetForClient retrieves the client's onboarding protocol.
	GetForClient(ctx context.Context, clientID int) (*models.OnboardingProtocol, error)

	// ListProtocols lists all onboarding protocols.
	ListProtocols(ctx context.Context) ([]models.OnboardingProtocol, error)

	// UpdateStep checks or unchecks one step. Completions log client
	// timeline events; the final completion marks the sprint live.
	UpdateStep(ctx context.Context, protocolID, stepID string, completed bool) (*models.OnboardingProtocol, error)

	// SetBlocked flags or unflags a protocol as externally blocked.
	SetBlocked(ctx context.Context, protocolID string, blocked bool) error
}
