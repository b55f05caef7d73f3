package task

import (
	"strings"
	"testing"
	"time"

	"github.com/example/agencyos/internal/models"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func snapshotWithSOP() models.Snapshot {
	return models.Snapshot{
		Clients: []models.Client{
			{ID: 1, Name: "Acme Fitness", Status: models.ClientStatusActive, StartDate: "2026-03-01"},
		},
		Protocols: []models.Protocol{
			{ID: 102, Title: "CONTENT PRODUCTION", Category: models.CategorySOP,
				Status: models.ProtocolStatusActive, LinkedTaskTypes: []string{"Content Production"}},
			{ID: 103, Title: "AD CREATIVE", Category: models.CategorySOP,
				Status: models.ProtocolStatusArchived, LinkedTaskTypes: []string{"Ads"}},
		},
	}
}

func newTask(id int, stage string) models.Task {
	return models.Task{
		ID:            id,
		ClientID:      1,
		Name:          "Audit",
		StagePipeline: append([]string(nil), models.DefaultStagePipeline...),
		CurrentStage:  stage,
		Status:        models.TaskStatusActive,
	}
}

func TestAdd_SOPAutoDetect(t *testing.T) {
	tests := []struct {
		name     string
		category string
		sopRef   string
		want     string
	}{
		{"matching category attaches first active SOP", "Content Production", "", "CONTENT PRODUCTION"},
		{"archived SOP is skipped", "Ads", "", ""},
		{"explicit reference wins", "Content Production", "MY OWN SOP", "MY OWN SOP"},
		{"no match leaves reference empty", "Website", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := snapshotWithSOP()
			next, id := Add(s, models.Task{
				Name: "New Task", ClientID: 1, Category: tt.category,
				AssignedNode: "Art Director", SOPReference: tt.sopRef,
			}, models.AuthorTeam, testNow)
			got := next.Tasks[next.TaskIndex(id)]
			if got.SOPReference != tt.want {
				t.Errorf("SOPReference = %q, want %q", got.SOPReference, tt.want)
			}
			if len(got.ActivityLog) != 1 || got.ActivityLog[0].Type != models.ActivityCreated {
				t.Fatalf("expected one created entry, got %+v", got.ActivityLog)
			}
			if tt.want != "" && !strings.Contains(got.ActivityLog[0].Text, "[ PROTOCOL DETECTED ]") {
				t.Errorf("created entry %q missing protocol marker", got.ActivityLog[0].Text)
			}
		})
	}
}

func TestAdvanceStage(t *testing.T) {
	t.Run("logs the transition", func(t *testing.T) {
		s := snapshotWithSOP()
		s.Tasks = []models.Task{newTask(1, "BRIEFED")}
		next := AdvanceStage(s, 1, "REVIEW", models.AuthorTeam, "", testNow)

		got := next.Tasks[0]
		if got.CurrentStage != "REVIEW" {
			t.Errorf("CurrentStage = %q, want REVIEW", got.CurrentStage)
		}
		last := got.ActivityLog[len(got.ActivityLog)-1]
		if last.Type != models.ActivityStageAdvance || last.From != "BRIEFED" || last.To != "REVIEW" {
			t.Errorf("entry = %+v, want stage_advance BRIEFED->REVIEW", last)
		}
	})

	t.Run("note replaces the generated text", func(t *testing.T) {
		s := snapshotWithSOP()
		s.Tasks = []models.Task{newTask(1, "REVIEW")}
		next := AdvanceStage(s, 1, "REVIEW", models.AuthorCEO, "Looks good, ship it", testNow)

		last := next.Tasks[0].ActivityLog[len(next.Tasks[0].ActivityLog)-1]
		if last.Type != models.ActivityNote || last.Text != "Looks good, ship it" {
			t.Errorf("entry = %+v, want note with custom text", last)
		}
	})

	t.Run("out-of-pipeline stage is a no-op", func(t *testing.T) {
		s := snapshotWithSOP()
		s.Tasks = []models.Task{newTask(1, "BRIEFED")}
		next := AdvanceStage(s, 1, "NOT A STAGE", models.AuthorTeam, "", testNow)
		if next.Tasks[0].CurrentStage != "BRIEFED" || len(next.Tasks[0].ActivityLog) != 0 {
			t.Errorf("task changed on invalid stage: %+v", next.Tasks[0])
		}
	})

	t.Run("terminal stage deploys and logs client timeline", func(t *testing.T) {
		s := snapshotWithSOP()
		task := newTask(1, "CLIENT APPROVAL")
		task.Deadline = "2026-03-20"
		s.Tasks = []models.Task{task}
		next := AdvanceStage(s, 1, "DEPLOYED", models.AuthorCEO, "", testNow)

		got := next.Tasks[0]
		if got.Status != models.TaskStatusDeployed {
			t.Errorf("Status = %q, want deployed", got.Status)
		}
		if got.DeliveredOnTime == nil || !*got.DeliveredOnTime {
			t.Errorf("DeliveredOnTime = %v, want true (deployed before deadline)", got.DeliveredOnTime)
		}
		c := next.Clients[0]
		if len(c.Timeline) != 1 {
			t.Fatalf("timeline length = %d, want 1", len(c.Timeline))
		}
		if c.Timeline[0].Event != "Task 'Audit' deployed on 2026-03-15" {
			t.Errorf("event = %q", c.Timeline[0].Event)
		}
	})

	t.Run("repeating the terminal stage does not log twice", func(t *testing.T) {
		s := snapshotWithSOP()
		s.Tasks = []models.Task{newTask(1, "CLIENT APPROVAL")}
		next := AdvanceStage(s, 1, "DEPLOYED", models.AuthorCEO, "", testNow)
		next = AdvanceStage(next, 1, "DEPLOYED", models.AuthorCEO, "", testNow)

		if got := len(next.Clients[0].Timeline); got != 1 {
			t.Errorf("timeline length = %d, want 1", got)
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s := snapshotWithSOP()
		next := AdvanceStage(s, 404, "REVIEW", models.AuthorTeam, "", testNow)
		if len(next.Tasks) != 0 {
			t.Error("tasks changed on unknown id")
		}
	})
}

func TestGenerateSprint(t *testing.T) {
	t.Run("creates the full batch at the first stage", func(t *testing.T) {
		s := snapshotWithSOP()
		s.Tasks = []models.Task{newTask(3, "REVIEW")}
		next, ids := GenerateSprint(s, 1, testNow)

		if len(ids) != SprintSize {
			t.Fatalf("batch size = %d, want %d", len(ids), SprintSize)
		}
		for i, id := range ids {
			if id != 4+i {
				t.Errorf("ids[%d] = %d, want %d (contiguous after max)", i, id, 4+i)
			}
		}
		for _, id := range ids {
			task := next.Tasks[next.TaskIndex(id)]
			if task.CurrentStage != "BRIEFED" {
				t.Errorf("task %d stage = %q, want BRIEFED", id, task.CurrentStage)
			}
			if task.Status != models.TaskStatusActive {
				t.Errorf("task %d status = %q, want active", id, task.Status)
			}
			if task.Phase != "phase1" {
				t.Errorf("task %d phase = %q, want phase1", id, task.Phase)
			}
		}
	})

	t.Run("deadlines anchor on the client start date", func(t *testing.T) {
		s := snapshotWithSOP()
		next, ids := GenerateSprint(s, 1, testNow)
		first := next.Tasks[next.TaskIndex(ids[0])]
		if first.Deadline != "2026-03-04" {
			t.Errorf("first deadline = %q, want 2026-03-04 (start + 3 days)", first.Deadline)
		}
		last := next.Tasks[next.TaskIndex(ids[len(ids)-1])]
		if last.Deadline != "2026-03-15" {
			t.Errorf("last deadline = %q, want 2026-03-15 (start + 14 days)", last.Deadline)
		}
	})

	t.Run("missing start date anchors on now", func(t *testing.T) {
		s := snapshotWithSOP()
		s.Clients[0].StartDate = ""
		next, ids := GenerateSprint(s, 1, testNow)
		first := next.Tasks[next.TaskIndex(ids[0])]
		if first.Deadline != "2026-03-18" {
			t.Errorf("first deadline = %q, want 2026-03-18 (now + 3 days)", first.Deadline)
		}
	})

	t.Run("unknown client is a no-op", func(t *testing.T) {
		s := snapshotWithSOP()
		next, ids := GenerateSprint(s, 404, testNow)
		if ids != nil || len(next.Tasks) != 0 {
			t.Errorf("expected no-op, got %d ids, %d tasks", len(ids), len(next.Tasks))
		}
	})
}
