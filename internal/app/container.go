package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/agencyos/internal/ctxutil"
	"github.com/example/agencyos/internal/models"
	"github.com/example/agencyos/internal/ports/secondary"
)

// StateContainer owns the authoritative snapshot. Every mutation runs as a
// pure transition under one mutex; the result replaces the snapshot and is
// written through the store. Persistence failures are logged and swallowed
// so a broken disk never blocks an operation that already committed in
// memory.
type StateContainer struct {
	mu    sync.Mutex
	snap  models.Snapshot
	store secondary.SnapshotStore
	now   func() time.Time
}

// NewStateContainer loads the persisted snapshot, seeding a fresh workspace
// when none exists. When a remote store is supplied and yields a payload,
// remote collections win over local ones wholesale; nil remote collections
// leave local data alone.
func NewStateContainer(ctx context.Context, store secondary.SnapshotStore, remote secondary.RemoteStore, now func() time.Time) (*StateContainer, error) {
	if now == nil {
		now = time.Now
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap models.Snapshot
	if loaded != nil {
		snap = *loaded
	} else {
		snap = models.DefaultSnapshot(now())
	}

	if remote != nil {
		payload, err := remote.Fetch(ctx)
		if err != nil {
			log.Printf("remote fetch failed, using local state: %v", err)
		} else if payload != nil {
			snap = mergeRemote(snap, payload)
		}
	}

	c := &StateContainer{snap: snap, store: store, now: now}
	if err := store.Save(ctx, snap); err != nil {
		log.Printf("snapshot save failed: %v", err)
	}
	return c, nil
}

// Apply runs one transition against the current snapshot and commits the
// result, stamping the settings watermark. The returned snapshot is the
// committed one.
func (c *StateContainer) Apply(ctx context.Context, fn func(models.Snapshot, time.Time) models.Snapshot) models.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.snap = fn(c.snap, now)
	c.snap.Settings.LastUpdated = now
	if err := c.store.Save(ctx, c.snap); err != nil {
		log.Printf("snapshot save failed: %v", err)
	}
	return c.snap
}

// Snapshot returns the current snapshot for reads.
func (c *StateContainer) Snapshot() models.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Now returns the container's current time.
func (c *StateContainer) Now() time.Time {
	return c.now()
}

// operatorFrom returns the operator level carried on the context, defaulting
// to the team level when none was resolved.
func operatorFrom(ctx context.Context) string {
	if op := ctxutil.OperatorFromContext(ctx); op != "" {
		return op
	}
	return models.AuthorTeam
}

// mergeRemote overlays remote collections on the local snapshot. The merge
// is shallow and collection-wise: a non-nil remote collection replaces the
// local one entirely.
func mergeRemote(local models.Snapshot, payload *secondary.RemotePayload) models.Snapshot {
	out := local
	if payload.Clients != nil {
		out.Clients = payload.Clients
	}
	if payload.Tasks != nil {
		out.Tasks = payload.Tasks
	}
	if payload.Posts != nil {
		out.Posts = payload.Posts
	}
	if payload.Onboardings != nil {
		out.Onboardings = payload.Onboardings
	}
	if payload.Protocols != nil {
		out.Protocols = payload.Protocols
	}
	if payload.Settings != nil {
		out.Settings = *payload.Settings
	}
	return out
}
