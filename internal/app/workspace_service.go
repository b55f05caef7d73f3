package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/example/agencyos/internal/core/health"
	"github.com/example/agencyos/internal/models"
	"github.com/example/agencyos/internal/ports/primary"
)

// WorkspaceServiceImpl implements the WorkspaceService interface.
type WorkspaceServiceImpl struct {
	state *StateContainer
}

// NewWorkspaceService creates a new WorkspaceService backed by the state
// container.
func NewWorkspaceService(state *StateContainer) *WorkspaceServiceImpl {
	return &WorkspaceServiceImpl{state: state}
}

var _ primary.WorkspaceService = (*WorkspaceServiceImpl)(nil)

// Initialize seeds a fresh workspace and stores the capability phrase hashes.
func (s *WorkspaceServiceImpl) Initialize(ctx context.Context, ceoPhrase, teamPhrase string) error {
	if ceoPhrase == "" || teamPhrase == "" {
		return fmt.Errorf("both capability phrases are required")
	}
	if ceoPhrase == teamPhrase {
		return fmt.Errorf("capability phrases must differ")
	}
	if s.state.Snapshot().Settings.Initialized {
		return fmt.Errorf("workspace is already initialized")
	}

	s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		next := snap
		next.Settings = models.Settings{
			CEOPhraseHash:  hashPhrase(ceoPhrase),
			TeamPhraseHash: hashPhrase(teamPhrase),
			Initialized:    true,
			LastUpdated:    now,
		}
		return next
	})
	return nil
}

// ResolveOperator maps a passphrase to an operator level.
func (s *WorkspaceServiceImpl) ResolveOperator(ctx context.Context, phrase string) (string, error) {
	settings := s.state.Snapshot().Settings
	if !settings.Initialized {
		return "", fmt.Errorf("workspace is not initialized, run init first")
	}
	switch hashPhrase(phrase) {
	case settings.CEOPhraseHash:
		return models.AuthorCEO, nil
	case settings.TeamPhraseHash:
		return models.AuthorTeam, nil
	}
	return "", fmt.Errorf("passphrase does not match any operator")
}

// Status computes the badge counters and per-client health rows.
func (s *WorkspaceServiceImpl) Status(ctx context.Context) (*primary.StatusReport, error) {
	snap := s.state.Snapshot()
	now := s.state.Now()

	report := &primary.StatusReport{
		Badges: health.Counts(snap, now),
	}
	for _, c := range snap.Clients {
		report.Clients = append(report.Clients, primary.ClientHealthRow{
			Client:   c,
			Computed: health.Compute(snap.Tasks, c.ID, now),
			Manual:   c.RelationshipHealth,
		})
	}
	return report, nil
}

func hashPhrase(phrase string) string {
	sum := sha256.Sum256([]byte(phrase))
	return hex.EncodeToString(sum[:])
}
