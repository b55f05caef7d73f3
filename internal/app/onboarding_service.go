package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/agencyos/internal/core/onboarding"
	"github.com/example/agencyos/internal/models"
	"github.com/example/agencyos/internal/ports/primary"
)

// OnboardingServiceImpl implements the OnboardingService interface.
type OnboardingServiceImpl struct {
	state *StateContainer
}

// NewOnboardingService creates a new OnboardingService backed by the state
// container.
func NewOnboardingService(state *StateContainer) *OnboardingServiceImpl {
	return &OnboardingServiceImpl{state: state}
}

var _ primary.OnboardingService = (*OnboardingServiceImpl)(nil)

// GetForClient retrieves the client's onboarding protocol.
func (s *OnboardingServiceImpl) GetForClient(ctx context.Context, clientID int) (*models.OnboardingProtocol, error) {
	snap := s.state.Snapshot()
	if snap.ClientIndex(clientID) == -1 {
		return nil, fmt.Errorf("client %d not found", clientID)
	}
	i := onboarding.FindForClient(snap.Onboardings, clientID)
	if i == -1 {
		return nil, fmt.Errorf("client %d has no onboarding protocol", clientID)
	}
	ob := snap.Onboardings[i]
	return &ob, nil
}

// ListProtocols lists all onboarding protocols.
func (s *OnboardingServiceImpl) ListProtocols(ctx context.Context) ([]models.OnboardingProtocol, error) {
	snap := s.state.Snapshot()
	return append([]models.OnboardingProtocol(nil), snap.Onboardings...), nil
}

// UpdateStep checks or unchecks one step.
func (s *OnboardingServiceImpl) UpdateStep(ctx context.Context, protocolID, stepID string, completed bool) (*models.OnboardingProtocol, error) {
	if err := s.stepExists(protocolID, stepID); err != nil {
		return nil, err
	}
	next := s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		return onboarding.UpdateStep(snap, protocolID, stepID, completed, now)
	})
	ob := next.Onboardings[next.OnboardingIndex(protocolID)]
	return &ob, nil
}

// SetBlocked flags or unflags a protocol as externally blocked.
func (s *OnboardingServiceImpl) SetBlocked(ctx context.Context, protocolID string, blocked bool) error {
	if s.state.Snapshot().OnboardingIndex(protocolID) == -1 {
		return fmt.Errorf("onboarding protocol %s not found", protocolID)
	}
	s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		return onboarding.SetBlocked(snap, protocolID, blocked, now)
	})
	return nil
}

func (s *OnboardingServiceImpl) stepExists(protocolID, stepID string) error {
	snap := s.state.Snapshot()
	i := snap.OnboardingIndex(protocolID)
	if i == -1 {
		return fmt.Errorf("onboarding protocol %s not found", protocolID)
	}
	for _, step := range snap.Onboardings[i].Steps {
		if step.ID == stepID {
			return nil
		}
	}
	return fmt.Errorf("step %s not found on protocol %s", stepID, protocolID)
}
