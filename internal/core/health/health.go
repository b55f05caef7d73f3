// Package health derives client relationship health and dashboard badge
// counts from the snapshot. The computed value is authoritative for reads;
// the stored RelationshipHealth field is a manual override surfaced
// alongside it.
package health

import (
	"time"

	"github.com/example/agencyos/internal/models"
)

// Compute derives a client's health from its active tasks:
//
//   - 3+ overdue tasks, no activity for more than 14 days, or no active
//     tasks at all: critical.
//   - any overdue task, or no activity for more than 7 days: at-risk.
//   - otherwise healthy.
//
// A client with no active tasks has been silent forever, so the quiet rule
// bottoms out at critical. Only tasks with status active count. A deadline
// strictly before today is overdue; unparseable deadlines are ignored.
func Compute(tasks []models.Task, clientID int, now time.Time) string {
	today := now.Truncate(24 * time.Hour)

	overdue := 0
	active := 0
	var lastActivity time.Time
	for i := range tasks {
		t := &tasks[i]
		if t.ClientID != clientID || t.Status != models.TaskStatusActive {
			continue
		}
		active++
		if d, err := time.Parse("2006-01-02", t.Deadline); err == nil && d.Before(today) {
			overdue++
		}
		if t.UpdatedAt.After(lastActivity) {
			lastActivity = t.UpdatedAt
		}
	}

	if active == 0 {
		return models.HealthCritical
	}

	days := int(now.Sub(lastActivity).Hours() / 24)
	switch {
	case overdue >= 3 || days > 14:
		return models.HealthCritical
	case overdue >= 1 || days > 7:
		return models.HealthAtRisk
	default:
		return models.HealthHealthy
	}
}

// LastActivity returns the most recent UpdatedAt among the client's active
// tasks, or the zero time when there are none.
func LastActivity(tasks []models.Task, clientID int) time.Time {
	var last time.Time
	for i := range tasks {
		t := &tasks[i]
		if t.ClientID != clientID || t.Status != models.TaskStatusActive {
			continue
		}
		if t.UpdatedAt.After(last) {
			last = t.UpdatedAt
		}
	}
	return last
}

// Badges holds the attention counters shown on the status screen.
type Badges struct {
	OverdueTasks   int // active tasks past deadline
	ActiveClients  int // Active Sprint plus Retainer
	OpenTasks      int // active tasks not yet deployed
	OpenPosts      int // posts not yet published
	OpenOnboarding int // onboarding protocols short of complete
}

// Counts computes the badge counters for the whole snapshot.
func Counts(s models.Snapshot, now time.Time) Badges {
	today := now.Truncate(24 * time.Hour)

	var b Badges
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if t.Status != models.TaskStatusActive {
			continue
		}
		b.OpenTasks++
		if d, err := time.Parse("2006-01-02", t.Deadline); err == nil && d.Before(today) {
			b.OverdueTasks++
		}
	}
	for i := range s.Clients {
		switch s.Clients[i].Status {
		case models.ClientStatusActive, models.ClientStatusRetainer:
			b.ActiveClients++
		}
	}
	for i := range s.Posts {
		if s.Posts[i].Status != models.PostStagePublished {
			b.OpenPosts++
		}
	}
	for i := range s.Onboardings {
		if s.Onboardings[i].Status != models.ProtocolCompleted {
			b.OpenOnboarding++
		}
	}
	return b
}
