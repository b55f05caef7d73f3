package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/agencyos/internal/models"
	"github.com/example/agencyos/internal/ports/secondary"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

// mockSnapshotStore is an in-memory SnapshotStore for tests.
type mockSnapshotStore struct {
	snap    *models.Snapshot
	saves   int
	loadErr error
	saveErr error
}

func (m *mockSnapshotStore) Load(ctx context.Context) (*models.Snapshot, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.snap, nil
}

func (m *mockSnapshotStore) Save(ctx context.Context, snap models.Snapshot) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snap = &snap
	return nil
}

// mockRemoteStore returns a fixed payload.
type mockRemoteStore struct {
	payload *secondary.RemotePayload
	err     error
}

func (m *mockRemoteStore) Fetch(ctx context.Context) (*secondary.RemotePayload, error) {
	return m.payload, m.err
}

func newTestContainer(t *testing.T) (*StateContainer, *mockSnapshotStore) {
	t.Helper()
	store := &mockSnapshotStore{}
	c, err := NewStateContainer(context.Background(), store, nil, fixedNow)
	if err != nil {
		t.Fatalf("NewStateContainer: %v", err)
	}
	return c, store
}

func TestNewStateContainer(t *testing.T) {
	t.Run("empty store seeds the default workspace", func(t *testing.T) {
		c, store := newTestContainer(t)
		snap := c.Snapshot()
		if len(snap.Protocols) == 0 {
			t.Error("expected seeded vault entries")
		}
		if len(snap.Clients) != 0 {
			t.Errorf("expected empty roster, got %d clients", len(snap.Clients))
		}
		if store.saves == 0 {
			t.Error("expected initial snapshot save")
		}
	})

	t.Run("existing snapshot loads as-is", func(t *testing.T) {
		store := &mockSnapshotStore{snap: &models.Snapshot{
			Clients: []models.Client{{ID: 1, Name: "Acme"}},
		}}
		c, err := NewStateContainer(context.Background(), store, nil, fixedNow)
		if err != nil {
			t.Fatalf("NewStateContainer: %v", err)
		}
		snap := c.Snapshot()
		if len(snap.Clients) != 1 || len(snap.Protocols) != 0 {
			t.Errorf("loaded snapshot altered: %d clients, %d protocols",
				len(snap.Clients), len(snap.Protocols))
		}
	})

	t.Run("load failure propagates", func(t *testing.T) {
		store := &mockSnapshotStore{loadErr: errors.New("disk on fire")}
		if _, err := NewStateContainer(context.Background(), store, nil, fixedNow); err == nil {
			t.Error("expected error from failing load")
		}
	})

	t.Run("remote collections win over local", func(t *testing.T) {
		store := &mockSnapshotStore{snap: &models.Snapshot{
			Clients:   []models.Client{{ID: 1, Name: "Local"}},
			Protocols: []models.Protocol{{ID: 101, Title: "LOCAL SOP"}},
		}}
		remote := &mockRemoteStore{payload: &secondary.RemotePayload{
			Clients: []models.Client{{ID: 7, Name: "Remote"}},
		}}
		c, err := NewStateContainer(context.Background(), store, remote, fixedNow)
		if err != nil {
			t.Fatalf("NewStateContainer: %v", err)
		}
		snap := c.Snapshot()
		if len(snap.Clients) != 1 || snap.Clients[0].Name != "Remote" {
			t.Errorf("clients = %+v, want remote copy", snap.Clients)
		}
		// The payload carried no protocols, so local ones survive.
		if len(snap.Protocols) != 1 || snap.Protocols[0].Title != "LOCAL SOP" {
			t.Errorf("protocols = %+v, want local copy", snap.Protocols)
		}
	})

	t.Run("remote failure falls back to local", func(t *testing.T) {
		store := &mockSnapshotStore{snap: &models.Snapshot{
			Clients: []models.Client{{ID: 1, Name: "Local"}},
		}}
		remote := &mockRemoteStore{err: errors.New("network down")}
		c, err := NewStateContainer(context.Background(), store, remote, fixedNow)
		if err != nil {
			t.Fatalf("NewStateContainer: %v", err)
		}
		if got := c.Snapshot().Clients[0].Name; got != "Local" {
			t.Errorf("client = %q, want local copy", got)
		}
	})
}

func TestApply(t *testing.T) {
	t.Run("commits and persists the transition result", func(t *testing.T) {
		c, store := newTestContainer(t)
		before := store.saves
		next := c.Apply(context.Background(), func(snap models.Snapshot, now time.Time) models.Snapshot {
			out := snap
			out.Clients = append(out.Clients, models.Client{ID: 1, Name: "Acme", CreatedAt: now})
			return out
		})
		if len(next.Clients) != 1 {
			t.Fatalf("returned snapshot has %d clients, want 1", len(next.Clients))
		}
		if !next.Clients[0].CreatedAt.Equal(testNow) {
			t.Error("transition did not receive the injected clock")
		}
		if len(c.Snapshot().Clients) != 1 {
			t.Error("committed snapshot not visible to reads")
		}
		if store.saves != before+1 {
			t.Errorf("saves = %d, want %d", store.saves, before+1)
		}
	})

	t.Run("save failure does not roll back the commit", func(t *testing.T) {
		c, store := newTestContainer(t)
		store.saveErr = errors.New("disk full")
		c.Apply(context.Background(), func(snap models.Snapshot, now time.Time) models.Snapshot {
			out := snap
			out.Clients = append(out.Clients, models.Client{ID: 1, Name: "Acme"})
			return out
		})
		if len(c.Snapshot().Clients) != 1 {
			t.Error("in-memory commit lost on save failure")
		}
	})
}
