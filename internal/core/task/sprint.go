package task

import (
	"time"

	"github.com/example/agencyos/internal/core/ident"
	"github.com/example/agencyos/internal/models"
)

type sprintTemplate struct {
	name      string
	category  string
	node      string
	priority  string
	dayOffset int
	brief     string
}

// The standard 7-task phase-1 sprint. Deadlines are relative to the
// client's start date.
var sprintTemplates = []sprintTemplate{
	{"Brand & Positioning Audit", "Strategy", "Art Director", models.PriorityHigh, 3,
		"Audit current brand: logo, colors, voice, content pillars. Document what exists vs. what's needed."},
	{"Competitor Analysis", "Strategy", "Art Director", models.PriorityNormal, 4,
		"Identify 3 direct competitors. Analyze content strategy, offer structure, positioning. Surface the gap."},
	{"Website Critique", "Website", "Operations Builder", models.PriorityNormal, 5,
		"Full UX audit: friction points, headline clarity, CTA quality, mobile experience, load speed."},
	{"Shadow Avatar Refinement", "Strategy", "Art Director", models.PriorityHigh, 6,
		"Refine and finalize the shadow avatar and bleeding neck from the kickoff notes. Update the client profile."},
	{"Content Pillars & First Month Plan", "Content Production", "Art Director", models.PriorityCritical, 10,
		"Define 4-5 content pillars. Map the first month: 16 posts minimum, format specified per post."},
	{"Brand Visual Direction", "Brand Design", "Art Director", models.PriorityNormal, 12,
		"Define the visual direction: color palette, font choices, mood board."},
	{"Phase 1 Delivery + CEO Review", "Client Communication", "CEO", models.PriorityCritical, 14,
		"Review all phase 1 deliverables. Present strategy to the client. Lock scope for phase 2."},
}

// SprintSize is the number of tasks in the standard sprint batch.
var SprintSize = len(sprintTemplates)

// GenerateSprint bulk-creates the standard sprint for a client, all tasks at
// the first pipeline stage. Ids are allocated as one contiguous batch so the
// loop never reads a stale max. Returns the new ids; an unknown client is a
// no-op returning nil.
func GenerateSprint(s models.Snapshot, clientID int, now time.Time) (models.Snapshot, []int) {
	ci := s.ClientIndex(clientID)
	if ci == -1 {
		return s, nil
	}

	anchor := now
	if t, err := time.Parse("2006-01-02", s.Clients[ci].StartDate); err == nil {
		anchor = t
	}

	existing := make([]int, len(s.Tasks))
	for i := range s.Tasks {
		existing[i] = s.Tasks[i].ID
	}
	batch := ident.Sequence(existing, len(sprintTemplates))

	next := s
	next.Tasks = append([]models.Task(nil), s.Tasks...)
	for i, tpl := range sprintTemplates {
		pipeline := append([]string(nil), models.DefaultStagePipeline...)
		next.Tasks = append(next.Tasks, models.Task{
			ID:            batch[i],
			ClientID:      clientID,
			Name:          tpl.name,
			Category:      tpl.category,
			Phase:         "phase1",
			StagePipeline: pipeline,
			CurrentStage:  pipeline[0],
			AssignedNode:  tpl.node,
			Priority:      tpl.priority,
			Status:        models.TaskStatusActive,
			Deadline:      models.DateOnly(anchor.AddDate(0, 0, tpl.dayOffset)),
			Brief:         tpl.brief,
			ActivityLog: []models.ActivityEntry{{
				Timestamp: now,
				Type:      models.ActivityCreated,
				Text:      "Auto-generated Sprint Task assigned to " + tpl.node,
				Author:    models.AuthorCEO,
			}},
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return next, batch
}
