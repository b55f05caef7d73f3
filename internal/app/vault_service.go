package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/agencyos/internal/core/vault"
	"github.com/example/agencyos/internal/models"
	"github.com/example/agencyos/internal/ports/primary"
)

// VaultServiceImpl implements the VaultService interface.
type VaultServiceImpl struct {
	state *StateContainer
}

// NewVaultService creates a new VaultService backed by the state container.
func NewVaultService(state *StateContainer) *VaultServiceImpl {
	return &VaultServiceImpl{state: state}
}

var _ primary.VaultService = (*VaultServiceImpl)(nil)

// CreateEntry adds a knowledge entry.
func (s *VaultServiceImpl) CreateEntry(ctx context.Context, req primary.CreateEntryRequest) (*models.Protocol, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("entry title is required")
	}
	if !validCategory(req.Category) {
		return nil, fmt.Errorf("unknown vault category %q", req.Category)
	}
	status := req.Status
	if status == "" {
		status = models.ProtocolStatusActive
	}

	var id int
	next := s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		var out models.Snapshot
		out, id = vault.Add(snap, models.Protocol{
			Title:           req.Title,
			Category:        req.Category,
			Pillar:          req.Pillar,
			Tags:            req.Tags,
			Status:          status,
			Content:         req.Content,
			PromptTool:      req.PromptTool,
			PromptVariables: req.PromptVariables,
			UsageNotes:      req.UsageNotes,
			LinkedTaskTypes: req.LinkedTaskTypes,
			LinkedClientID:  req.LinkedClientID,
		}, now)
		return out
	})

	p := next.Protocols[next.ProtocolIndex(id)]
	return &p, nil
}

// GetEntry retrieves an entry by ID.
func (s *VaultServiceImpl) GetEntry(ctx context.Context, id int) (*models.Protocol, error) {
	snap := s.state.Snapshot()
	i := snap.ProtocolIndex(id)
	if i == -1 {
		return nil, fmt.Errorf("vault entry %d not found", id)
	}
	p := snap.Protocols[i]
	return &p, nil
}

// ListEntries lists entries with optional filters.
func (s *VaultServiceImpl) ListEntries(ctx context.Context, filters primary.VaultFilters) ([]models.Protocol, error) {
	snap := s.state.Snapshot()
	var out []models.Protocol
	for _, p := range snap.Protocols {
		if filters.Category != "" && p.Category != filters.Category {
			continue
		}
		if filters.Status != "" && p.Status != filters.Status {
			continue
		}
		if filters.ClientID != 0 && p.LinkedClientID != filters.ClientID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// UpdateEntry merges a patch.
func (s *VaultServiceImpl) UpdateEntry(ctx context.Context, id int, patch vault.Patch) (*models.Protocol, error) {
	if s.state.Snapshot().ProtocolIndex(id) == -1 {
		return nil, fmt.Errorf("vault entry %d not found", id)
	}
	next := s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		return vault.Update(snap, id, patch, now)
	})
	p := next.Protocols[next.ProtocolIndex(id)]
	return &p, nil
}

// DeleteEntry removes an entry.
func (s *VaultServiceImpl) DeleteEntry(ctx context.Context, id int) error {
	if s.state.Snapshot().ProtocolIndex(id) == -1 {
		return fmt.Errorf("vault entry %d not found", id)
	}
	s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		return vault.Delete(snap, id)
	})
	return nil
}

// CopyEntry returns the entry content and increments its copy counter.
func (s *VaultServiceImpl) CopyEntry(ctx context.Context, id int) (string, error) {
	if s.state.Snapshot().ProtocolIndex(id) == -1 {
		return "", fmt.Errorf("vault entry %d not found", id)
	}
	next := s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		return vault.RecordUsage(snap, id)
	})
	return next.Protocols[next.ProtocolIndex(id)].Content, nil
}

func validCategory(category string) bool {
	switch category {
	case models.CategorySOP, models.CategoryAIPrompt, models.CategoryClientKB, models.CategoryBrandStandard:
		return true
	}
	return false
}
