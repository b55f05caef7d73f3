// Package client contains the pure transition logic for the client
// lifecycle: installation, status triggers, timeline events, and cascading
// deletion.
package client

import (
	"fmt"
	"time"

	"github.com/example/agencyos/internal/core/ident"
	"github.com/example/agencyos/internal/core/onboarding"
	"github.com/example/agencyos/internal/models"
)

// Add installs a new client. The draft's ID, Timeline ids, and timestamps
// are ignored. Installing a client directly into Active Sprint creates its
// onboarding protocol immediately.
func Add(s models.Snapshot, draft models.Client, now time.Time) (models.Snapshot, int) {
	ids := make([]int, len(s.Clients))
	for i := range s.Clients {
		ids[i] = s.Clients[i].ID
	}
	draft.ID = ident.Next(ids)
	draft.CreatedAt = now
	draft.UpdatedAt = now

	next := s
	next.Clients = append(append([]models.Client(nil), s.Clients...), draft)
	if draft.Status == models.ClientStatusActive {
		next.Onboardings = append(append([]models.OnboardingProtocol(nil), s.Onboardings...),
			onboarding.NewProtocol(draft.ID, now))
	}
	return next, draft.ID
}

// Patch is the typed update set for a client. Nil fields are left untouched.
type Patch struct {
	Name               *string
	Status             *string
	RevenueGate        *string
	Tier               *string
	LTV                *int
	ContractValue      *int
	Phone              *string
	Email              *string
	ContactName        *string
	Niche              *string
	StartDate          *string
	ShadowAvatar       *string
	BleedingNeck       *string
	ContentPillars     *[]string
	RelationshipHealth *string
	OnboardingStatus   *string
	Notes              *string
}

// Update merges the patch and bumps UpdatedAt. A status change fires exactly
// one trigger based on the new status:
//
//   - Active Sprint: ensure an onboarding protocol exists, log "Sprint
//     activated".
//   - Retainer: log the conversion, archive active tasks to deployed.
//   - Closed: log the closure, cancel active tasks.
//   - Discovery: log the phase start.
//   - Lead: no trigger.
//
// The status field itself can move in any direction; triggers fire on the
// new value only. Unknown ids are a no-op.
func Update(s models.Snapshot, id int, patch Patch, now time.Time) models.Snapshot {
	ci := s.ClientIndex(id)
	if ci == -1 {
		return s
	}

	c := s.Clients[ci]
	oldStatus := c.Status
	applyPatch(&c, patch)
	c.UpdatedAt = now

	next := s
	next.Clients = append([]models.Client(nil), s.Clients...)

	if patch.Status != nil && *patch.Status != oldStatus {
		date := models.DateOnly(now)
		switch *patch.Status {
		case models.ClientStatusActive:
			if onboarding.FindForClient(next.Onboardings, id) == -1 {
				next.Onboardings = append(append([]models.OnboardingProtocol(nil), s.Onboardings...),
					onboarding.NewProtocol(id, now))
			}
			prependTimeline(&c, fmt.Sprintf("Sprint activated on %s", date), models.EventTypeSystem, now)
		case models.ClientStatusRetainer:
			prependTimeline(&c, fmt.Sprintf("Converted to retainer on %s", date), models.EventTypeSystem, now)
			next.Tasks = archiveTasks(s.Tasks, id, models.TaskStatusDeployed)
		case models.ClientStatusClosed:
			prependTimeline(&c, fmt.Sprintf("Account closed on %s", date), models.EventTypeSystem, now)
			next.Tasks = archiveTasks(s.Tasks, id, models.TaskStatusCancelled)
		case models.ClientStatusDiscovery:
			prependTimeline(&c, fmt.Sprintf("Discovery phase started on %s", date), models.EventTypeSystem, now)
		}
	}

	next.Clients[ci] = c
	return next
}

// Delete removes a client and cascades to its tasks, posts, onboarding
// protocol, and client-scoped knowledge entries. Not reversible.
func Delete(s models.Snapshot, id int) models.Snapshot {
	if s.ClientIndex(id) == -1 {
		return s
	}

	next := s
	next.Clients = nil
	for _, c := range s.Clients {
		if c.ID != id {
			next.Clients = append(next.Clients, c)
		}
	}
	next.Tasks = nil
	for _, t := range s.Tasks {
		if t.ClientID != id {
			next.Tasks = append(next.Tasks, t)
		}
	}
	next.Posts = nil
	for _, p := range s.Posts {
		if p.ClientID != id {
			next.Posts = append(next.Posts, p)
		}
	}
	next.Onboardings = nil
	for _, o := range s.Onboardings {
		if o.ClientID != id {
			next.Onboardings = append(next.Onboardings, o)
		}
	}
	next.Protocols = nil
	for _, p := range s.Protocols {
		if p.Category == models.CategoryClientKB && p.LinkedClientID == id {
			continue
		}
		next.Protocols = append(next.Protocols, p)
	}
	return next
}

// AddTimelineEvent prepends an event to a client's timeline (newest first).
// Unknown ids are a no-op.
func AddTimelineEvent(s models.Snapshot, clientID int, text, kind string, now time.Time) models.Snapshot {
	ci := s.ClientIndex(clientID)
	if ci == -1 {
		return s
	}

	c := s.Clients[ci]
	prependTimeline(&c, text, kind, now)
	c.UpdatedAt = now

	next := s
	next.Clients = append([]models.Client(nil), s.Clients...)
	next.Clients[ci] = c
	return next
}

// prependTimeline allocates the next child-scoped event id and puts the
// event at the head of the timeline.
func prependTimeline(c *models.Client, text, kind string, now time.Time) {
	ids := make([]int, len(c.Timeline))
	for i := range c.Timeline {
		ids[i] = c.Timeline[i].ID
	}
	event := models.TimelineEvent{
		ID:    ident.Next(ids),
		Date:  models.DateOnly(now),
		Event: text,
		Type:  kind,
	}
	c.Timeline = append([]models.TimelineEvent{event}, c.Timeline...)
}

// archiveTasks rewrites the client's active tasks to the given terminal
// status. Stage positions are untouched; this is archival, not advancement.
func archiveTasks(tasks []models.Task, clientID int, status string) []models.Task {
	out := append([]models.Task(nil), tasks...)
	for i := range out {
		if out[i].ClientID == clientID && out[i].Status == models.TaskStatusActive {
			out[i].Status = status
		}
	}
	return out
}

func applyPatch(c *models.Client, patch Patch) {
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if patch.RevenueGate != nil {
		c.RevenueGate = *patch.RevenueGate
	}
	if patch.Tier != nil {
		c.Tier = *patch.Tier
	}
	if patch.LTV != nil {
		c.LTV = *patch.LTV
	}
	if patch.ContractValue != nil {
		c.ContractValue = *patch.ContractValue
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.ContactName != nil {
		c.ContactName = *patch.ContactName
	}
	if patch.Niche != nil {
		c.Niche = *patch.Niche
	}
	if patch.StartDate != nil {
		c.StartDate = *patch.StartDate
	}
	if patch.ShadowAvatar != nil {
		c.ShadowAvatar = *patch.ShadowAvatar
	}
	if patch.BleedingNeck != nil {
		c.BleedingNeck = *patch.BleedingNeck
	}
	if patch.ContentPillars != nil {
		c.ContentPillars = *patch.ContentPillars
	}
	if patch.RelationshipHealth != nil {
		c.RelationshipHealth = *patch.RelationshipHealth
	}
	if patch.OnboardingStatus != nil {
		c.OnboardingStatus = *patch.OnboardingStatus
	}
	if patch.Notes != nil {
		c.Notes = *patch.Notes
	}
}
