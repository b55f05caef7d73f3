package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/agencyos/internal/core/client"
	"github.com/example/agencyos/internal/core/health"
	"github.com/example/agencyos/internal/models"
	"github.com/example/agencyos/internal/ports/primary"
)

// ClientServiceImpl implements the ClientService interface.
type ClientServiceImpl struct {
	state *StateContainer
}

// NewClientService creates a new ClientService backed by the state container.
func NewClientService(state *StateContainer) *ClientServiceImpl {
	return &ClientServiceImpl{state: state}
}

var _ primary.ClientService = (*ClientServiceImpl)(nil)

// CreateClient installs a new client.
func (s *ClientServiceImpl) CreateClient(ctx context.Context, req primary.CreateClientRequest) (*models.Client, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("client name is required")
	}
	status := req.Status
	if status == "" {
		status = models.ClientStatusLead
	}
	if !validClientStatus(status) {
		return nil, fmt.Errorf("unknown client status %q", status)
	}

	var id int
	next := s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		var out models.Snapshot
		out, id = client.Add(snap, models.Client{
			Name:             req.Name,
			Status:           status,
			RevenueGate:      req.RevenueGate,
			Tier:             req.Tier,
			ContractValue:    req.ContractValue,
			LTV:              req.LTV,
			Phone:            req.Phone,
			Email:            req.Email,
			ContactName:      req.ContactName,
			Niche:            req.Niche,
			StartDate:        req.StartDate,
			ShadowAvatar:     req.ShadowAvatar,
			BleedingNeck:     req.BleedingNeck,
			ContentPillars:   req.ContentPillars,
			OnboardingStatus: models.OnboardingNotStarted,
			Notes:            req.Notes,
		}, now)
		return out
	})

	c := next.Clients[next.ClientIndex(id)]
	return &c, nil
}

// GetClient retrieves a client by ID.
func (s *ClientServiceImpl) GetClient(ctx context.Context, id int) (*models.Client, error) {
	snap := s.state.Snapshot()
	i := snap.ClientIndex(id)
	if i == -1 {
		return nil, fmt.Errorf("client %d not found", id)
	}
	c := snap.Clients[i]
	return &c, nil
}

// ListClients lists clients with optional filters.
func (s *ClientServiceImpl) ListClients(ctx context.Context, filters primary.ClientFilters) ([]models.Client, error) {
	snap := s.state.Snapshot()
	var out []models.Client
	for _, c := range snap.Clients {
		if filters.Status != "" && c.Status != filters.Status {
			continue
		}
		if filters.Tier != "" && c.Tier != filters.Tier {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// UpdateClient merges a patch; status changes fire lifecycle triggers.
func (s *ClientServiceImpl) UpdateClient(ctx context.Context, id int, patch client.Patch) (*models.Client, error) {
	if patch.Status != nil && !validClientStatus(*patch.Status) {
		return nil, fmt.Errorf("unknown client status %q", *patch.Status)
	}
	if s.state.Snapshot().ClientIndex(id) == -1 {
		return nil, fmt.Errorf("client %d not found", id)
	}

	next := s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		return client.Update(snap, id, patch, now)
	})

	i := next.ClientIndex(id)
	if i == -1 {
		return nil, fmt.Errorf("client %d not found", id)
	}
	c := next.Clients[i]
	return &c, nil
}

// DeleteClient removes a client and everything bound to it.
func (s *ClientServiceImpl) DeleteClient(ctx context.Context, id int) error {
	if s.state.Snapshot().ClientIndex(id) == -1 {
		return fmt.Errorf("client %d not found", id)
	}
	s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		return client.Delete(snap, id)
	})
	return nil
}

// AddTimelineEvent prepends a manual or system event to the timeline.
func (s *ClientServiceImpl) AddTimelineEvent(ctx context.Context, clientID int, text, kind string) error {
	if text == "" {
		return fmt.Errorf("event text is required")
	}
	if kind != models.EventTypeSystem && kind != models.EventTypeManual {
		return fmt.Errorf("unknown event type %q", kind)
	}
	if s.state.Snapshot().ClientIndex(clientID) == -1 {
		return fmt.Errorf("client %d not found", clientID)
	}
	s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		return client.AddTimelineEvent(snap, clientID, text, kind, now)
	})
	return nil
}

// ClientHealth returns the computed relationship health for a client.
func (s *ClientServiceImpl) ClientHealth(ctx context.Context, clientID int) (string, error) {
	snap := s.state.Snapshot()
	if snap.ClientIndex(clientID) == -1 {
		return "", fmt.Errorf("client %d not found", clientID)
	}
	return health.Compute(snap.Tasks, clientID, s.state.Now()), nil
}

func validClientStatus(status string) bool {
	switch status {
	case models.ClientStatusLead, models.ClientStatusDiscovery, models.ClientStatusActive,
		models.ClientStatusRetainer, models.ClientStatusClosed:
		return true
	}
	return false
}
