// Package task contains the pure transition logic for the fulfillment
// pipeline: creation with SOP auto-detection, stage advancement, and sprint
// generation.
package task

import (
	"fmt"
	"time"

	"github.com/example/agencyos/internal/core/ident"
	"github.com/example/agencyos/internal/core/vault"
	"github.com/example/agencyos/internal/models"
)

// Add materializes a new task, attributing the seeded log entry to author.
// The draft's ID, ActivityLog, and timestamps are ignored. When the draft
// carries no SOP reference, the first active SOP linked to the task's
// category is attached automatically and named in the seeded log entry.
func Add(s models.Snapshot, draft models.Task, author string, now time.Time) (models.Snapshot, int) {
	ids := make([]int, len(s.Tasks))
	for i := range s.Tasks {
		ids[i] = s.Tasks[i].ID
	}
	draft.ID = ident.Next(ids)
	draft.CreatedAt = now
	draft.UpdatedAt = now

	if draft.SOPReference == "" {
		if sop := vault.FindActiveSOP(s.Protocols, draft.Category); sop != nil {
			draft.SOPReference = sop.Title
		}
	}

	text := fmt.Sprintf("Task created and assigned to %s", draft.AssignedNode)
	if draft.SOPReference != "" {
		text += fmt.Sprintf(" — [ PROTOCOL DETECTED ] %s", draft.SOPReference)
	}
	draft.ActivityLog = []models.ActivityEntry{{
		Timestamp: now,
		Type:      models.ActivityCreated,
		Text:      text,
		Author:    author,
	}}

	next := s
	next.Tasks = append(append([]models.Task(nil), s.Tasks...), draft)
	return next, draft.ID
}

// Patch is the typed update set for a task. Nil fields are left untouched.
// CurrentStage is deliberately absent: stages move through AdvanceStage only.
type Patch struct {
	Name           *string
	Category       *string
	Phase          *string
	AssignedNode   *string
	Priority       *string
	Status         *string
	Deadline       *string
	EstimatedHours *int
	Brief          *string
	AssetLinks     *[]string
	SOPReference   *string
	Notes          *string
	LinkedPostID   *int
}

// Update merges the patch and bumps UpdatedAt. Unknown ids are a no-op.
func Update(s models.Snapshot, id int, patch Patch, now time.Time) models.Snapshot {
	ti := s.TaskIndex(id)
	if ti == -1 {
		return s
	}

	t := s.Tasks[ti]
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.Phase != nil {
		t.Phase = *patch.Phase
	}
	if patch.AssignedNode != nil {
		t.AssignedNode = *patch.AssignedNode
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Deadline != nil {
		t.Deadline = *patch.Deadline
	}
	if patch.EstimatedHours != nil {
		t.EstimatedHours = *patch.EstimatedHours
	}
	if patch.Brief != nil {
		t.Brief = *patch.Brief
	}
	if patch.AssetLinks != nil {
		t.AssetLinks = *patch.AssetLinks
	}
	if patch.SOPReference != nil {
		t.SOPReference = *patch.SOPReference
	}
	if patch.Notes != nil {
		t.Notes = *patch.Notes
	}
	if patch.LinkedPostID != nil {
		t.LinkedPostID = *patch.LinkedPostID
	}
	t.UpdatedAt = now

	next := s
	next.Tasks = append([]models.Task(nil), s.Tasks...)
	next.Tasks[ti] = t
	return next
}

// AdvanceStage moves a task to newStage and appends an activity entry. The
// stage must be a member of the task's pipeline; adjacency is deliberately
// not checked, so jumping and same-stage note appends are legal (a supplied
// note records a comment instead of an advance). First arrival at the
// terminal stage marks the task deployed and logs a client timeline event;
// repeating the terminal stage does not log it again. Unknown ids and
// out-of-pipeline stages are a no-op.
func AdvanceStage(s models.Snapshot, id int, newStage, author, note string, now time.Time) models.Snapshot {
	ti := s.TaskIndex(id)
	if ti == -1 {
		return s
	}

	t := s.Tasks[ti]
	if !t.InPipeline(newStage) {
		return s
	}

	entry := models.ActivityEntry{
		Timestamp: now,
		Type:      models.ActivityStageAdvance,
		From:      t.CurrentStage,
		To:        newStage,
		Text:      fmt.Sprintf("Advanced from %s to %s", t.CurrentStage, newStage),
		Author:    author,
	}
	if note != "" {
		entry.Type = models.ActivityNote
		entry.Text = note
	}

	next := s
	if t.Terminal(newStage) && t.CurrentStage != newStage {
		t.Status = models.TaskStatusDeployed
		if d, err := time.Parse("2006-01-02", t.Deadline); err == nil {
			onTime := !now.Truncate(24 * time.Hour).After(d)
			t.DeliveredOnTime = &onTime
		}
		next = logDeployment(next, t, now)
	}

	t.CurrentStage = newStage
	t.ActivityLog = append(append([]models.ActivityEntry(nil), t.ActivityLog...), entry)
	t.UpdatedAt = now

	next.Tasks = append([]models.Task(nil), next.Tasks...)
	next.Tasks[ti] = t
	return next
}

func logDeployment(s models.Snapshot, t models.Task, now time.Time) models.Snapshot {
	ci := s.ClientIndex(t.ClientID)
	if ci == -1 {
		return s
	}

	c := s.Clients[ci]
	ids := make([]int, len(c.Timeline))
	for i := range c.Timeline {
		ids[i] = c.Timeline[i].ID
	}
	date := models.DateOnly(now)
	event := models.TimelineEvent{
		ID:    ident.Next(ids),
		Date:  date,
		Event: fmt.Sprintf("Task '%s' deployed on %s", t.Name, date),
		Type:  models.EventTypeSystem,
	}
	c.Timeline = append([]models.TimelineEvent{event}, c.Timeline...)

	next := s
	next.Clients = append([]models.Client(nil), s.Clients...)
	next.Clients[ci] = c
	return next
}
