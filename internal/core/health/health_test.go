package health

import (
	"testing"
	"time"

	"github.com/example/agencyos/internal/models"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func activeTask(clientID int, deadline string, updated time.Time) models.Task {
	return models.Task{
		ClientID:  clientID,
		Status:    models.TaskStatusActive,
		Deadline:  deadline,
		UpdatedAt: updated,
	}
}

func TestCompute(t *testing.T) {
	fresh := testNow.Add(-24 * time.Hour)
	stale := testNow.Add(-10 * 24 * time.Hour)
	dead := testNow.Add(-20 * 24 * time.Hour)

	tests := []struct {
		name  string
		tasks []models.Task
		want  string
	}{
		{
			name:  "no active tasks is critical",
			tasks: nil,
			want:  models.HealthCritical,
		},
		{
			name: "cancelled tasks do not count",
			tasks: []models.Task{
				{ClientID: 1, Status: models.TaskStatusCancelled, Deadline: "2026-01-01", UpdatedAt: fresh},
			},
			want: models.HealthCritical,
		},
		{
			name: "current tasks with recent activity are healthy",
			tasks: []models.Task{
				activeTask(1, "2026-04-01", fresh),
				activeTask(1, "2026-03-20", fresh),
			},
			want: models.HealthHealthy,
		},
		{
			name: "one overdue task is at-risk",
			tasks: []models.Task{
				activeTask(1, "2026-03-10", fresh),
				activeTask(1, "2026-04-01", fresh),
			},
			want: models.HealthAtRisk,
		},
		{
			name: "three overdue tasks is critical",
			tasks: []models.Task{
				activeTask(1, "2026-03-10", fresh),
				activeTask(1, "2026-03-11", fresh),
				activeTask(1, "2026-03-12", fresh),
			},
			want: models.HealthCritical,
		},
		{
			name: "quiet for over a week is at-risk",
			tasks: []models.Task{
				activeTask(1, "2026-04-01", stale),
			},
			want: models.HealthAtRisk,
		},
		{
			name: "quiet for over two weeks is critical",
			tasks: []models.Task{
				activeTask(1, "2026-04-01", dead),
			},
			want: models.HealthCritical,
		},
		{
			name: "other clients' tasks are ignored",
			tasks: []models.Task{
				activeTask(2, "2026-03-01", dead),
				activeTask(1, "2026-04-01", fresh),
			},
			want: models.HealthHealthy,
		},
		{
			name: "due today is not overdue",
			tasks: []models.Task{
				activeTask(1, "2026-03-15", fresh),
			},
			want: models.HealthHealthy,
		},
		{
			name: "unparseable deadline is ignored",
			tasks: []models.Task{
				activeTask(1, "soon", fresh),
			},
			want: models.HealthHealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.tasks, 1, testNow); got != tt.want {
				t.Errorf("Compute() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLastActivity(t *testing.T) {
	older := testNow.Add(-48 * time.Hour)
	newer := testNow.Add(-2 * time.Hour)
	tasks := []models.Task{
		activeTask(1, "2026-04-01", older),
		activeTask(1, "2026-04-01", newer),
		{ClientID: 1, Status: models.TaskStatusDeployed, UpdatedAt: testNow},
	}
	if got := LastActivity(tasks, 1); !got.Equal(newer) {
		t.Errorf("LastActivity() = %v, want %v", got, newer)
	}
	if got := LastActivity(tasks, 9); !got.IsZero() {
		t.Errorf("LastActivity(no tasks) = %v, want zero", got)
	}
}

func TestCounts(t *testing.T) {
	s := models.Snapshot{
		Clients: []models.Client{
			{ID: 1, Status: models.ClientStatusActive},
			{ID: 2, Status: models.ClientStatusRetainer},
			{ID: 3, Status: models.ClientStatusLead},
			{ID: 4, Status: models.ClientStatusClosed},
		},
		Tasks: []models.Task{
			activeTask(1, "2026-03-10", testNow), // overdue
			activeTask(1, "2026-04-01", testNow),
			{ClientID: 2, Status: models.TaskStatusDeployed, Deadline: "2026-03-01"},
		},
		Posts: []models.Post{
			{ID: 1, Status: models.PostStagePlanned},
			{ID: 2, Status: models.PostStagePublished},
		},
		Onboardings: []models.OnboardingProtocol{
			{ID: "a", Status: models.ProtocolOnTrack},
			{ID: "b", Status: models.ProtocolCompleted},
		},
	}

	got := Counts(s, testNow)
	want := Badges{OverdueTasks: 1, ActiveClients: 2, OpenTasks: 2, OpenPosts: 1, OpenOnboarding: 1}
	if got != want {
		t.Errorf("Counts() = %+v, want %+v", got, want)
	}
}
