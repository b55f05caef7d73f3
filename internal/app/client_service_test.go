package app

import (
	"context"
	"testing"

	"github.com/example/agencyos/internal/core/client"
	"github.com/example/agencyos/internal/models"
	"github.com/example/agencyos/internal/ports/primary"
)

func TestClientService(t *testing.T) {
	ctx := context.Background()

	t.Run("create defaults to lead", func(t *testing.T) {
		container, _ := newTestContainer(t)
		svc := NewClientService(container)
		c, err := svc.CreateClient(ctx, primary.CreateClientRequest{Name: "Acme Fitness"})
		if err != nil {
			t.Fatalf("CreateClient: %v", err)
		}
		if c.Status != models.ClientStatusLead {
			t.Errorf("Status = %q, want Lead", c.Status)
		}
		if c.OnboardingStatus != models.OnboardingNotStarted {
			t.Errorf("OnboardingStatus = %q, want not-started", c.OnboardingStatus)
		}
	})

	t.Run("create rejects empty name and bad status", func(t *testing.T) {
		container, _ := newTestContainer(t)
		svc := NewClientService(container)
		if _, err := svc.CreateClient(ctx, primary.CreateClientRequest{}); err == nil {
			t.Error("expected error for empty name")
		}
		if _, err := svc.CreateClient(ctx, primary.CreateClientRequest{Name: "X", Status: "Paused"}); err == nil {
			t.Error("expected error for unknown status")
		}
	})

	t.Run("activation through update creates onboarding", func(t *testing.T) {
		container, _ := newTestContainer(t)
		svc := NewClientService(container)
		obSvc := NewOnboardingService(container)

		c, err := svc.CreateClient(ctx, primary.CreateClientRequest{Name: "Acme Fitness"})
		if err != nil {
			t.Fatalf("CreateClient: %v", err)
		}
		active := models.ClientStatusActive
		updated, err := svc.UpdateClient(ctx, c.ID, client.Patch{Status: &active})
		if err != nil {
			t.Fatalf("UpdateClient: %v", err)
		}
		if updated.Status != models.ClientStatusActive {
			t.Errorf("Status = %q, want Active Sprint", updated.Status)
		}
		if _, err := obSvc.GetForClient(ctx, c.ID); err != nil {
			t.Errorf("GetForClient after activation: %v", err)
		}
	})

	t.Run("financials survive create and update", func(t *testing.T) {
		container, _ := newTestContainer(t)
		svc := NewClientService(container)
		c, err := svc.CreateClient(ctx, primary.CreateClientRequest{
			Name: "Acme Fitness", ContractValue: 5000, LTV: 12000,
		})
		if err != nil {
			t.Fatalf("CreateClient: %v", err)
		}
		if c.ContractValue != 5000 || c.LTV != 12000 {
			t.Errorf("ContractValue, LTV = %d, %d, want 5000, 12000", c.ContractValue, c.LTV)
		}
		ltv := 18000
		updated, err := svc.UpdateClient(ctx, c.ID, client.Patch{LTV: &ltv})
		if err != nil {
			t.Fatalf("UpdateClient: %v", err)
		}
		if updated.LTV != 18000 {
			t.Errorf("LTV = %d, want 18000", updated.LTV)
		}
	})

	t.Run("list filters by status", func(t *testing.T) {
		container, _ := newTestContainer(t)
		svc := NewClientService(container)
		if _, err := svc.CreateClient(ctx, primary.CreateClientRequest{Name: "A"}); err != nil {
			t.Fatal(err)
		}
		if _, err := svc.CreateClient(ctx, primary.CreateClientRequest{Name: "B", Status: models.ClientStatusActive}); err != nil {
			t.Fatal(err)
		}
		leads, err := svc.ListClients(ctx, primary.ClientFilters{Status: models.ClientStatusLead})
		if err != nil {
			t.Fatalf("ListClients: %v", err)
		}
		if len(leads) != 1 || leads[0].Name != "A" {
			t.Errorf("leads = %+v, want just A", leads)
		}
	})

	t.Run("delete cascades and missing ids error", func(t *testing.T) {
		container, _ := newTestContainer(t)
		svc := NewClientService(container)
		c, err := svc.CreateClient(ctx, primary.CreateClientRequest{Name: "Doomed", Status: models.ClientStatusActive})
		if err != nil {
			t.Fatal(err)
		}
		if err := svc.DeleteClient(ctx, c.ID); err != nil {
			t.Fatalf("DeleteClient: %v", err)
		}
		if _, err := svc.GetClient(ctx, c.ID); err == nil {
			t.Error("expected not-found after delete")
		}
		if err := svc.DeleteClient(ctx, c.ID); err == nil {
			t.Error("expected error deleting missing client")
		}
	})
}
