package onboarding

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/example/agencyos/internal/models"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func snapshotWithProtocol() (models.Snapshot, string) {
	ob := NewProtocol(1, testNow)
	s := models.Snapshot{
		Clients: []models.Client{
			{ID: 1, Name: "Acme Fitness", Status: models.ClientStatusActive,
				OnboardingStatus: models.OnboardingNotStarted},
		},
		Onboardings: []models.OnboardingProtocol{ob},
	}
	return s, ob.ID
}

func TestNewProtocol(t *testing.T) {
	ob := NewProtocol(7, testNow)
	if ob.ClientID != 7 {
		t.Errorf("ClientID = %d, want 7", ob.ClientID)
	}
	if len(ob.Steps) != StepCount {
		t.Fatalf("steps = %d, want %d", len(ob.Steps), StepCount)
	}
	if ob.Progress != 0 || ob.Status != models.ProtocolOnTrack {
		t.Errorf("fresh protocol = progress %d status %q, want 0 on-track", ob.Progress, ob.Status)
	}
	for i, step := range ob.Steps {
		if step.ID != fmt.Sprintf("%d", i+1) {
			t.Errorf("step[%d].ID = %q, want positional", i, step.ID)
		}
		if step.Completed || step.CompletedAt != nil {
			t.Errorf("step[%d] starts completed", i)
		}
	}
	if ob.ID == "" || ob.ID == NewProtocol(7, testNow).ID {
		t.Error("protocol ids must be unique and non-empty")
	}
}

func TestProgress(t *testing.T) {
	steps := make([]models.OnboardingStep, 10)
	tests := []struct {
		done int
		want int
	}{
		{0, 0}, {1, 1}, {5, 5}, {9, 9}, {10, 10},
	}
	for _, tt := range tests {
		for i := range steps {
			steps[i].Completed = i < tt.done
		}
		if got := Progress(steps); got != tt.want {
			t.Errorf("Progress(%d done) = %d, want %d", tt.done, got, tt.want)
		}
	}
	if got := Progress(nil); got != 0 {
		t.Errorf("Progress(nil) = %d, want 0", got)
	}
}

func TestUpdateStep_Completion(t *testing.T) {
	s, id := snapshotWithProtocol()
	next := UpdateStep(s, id, "3", true, testNow)

	ob := next.Onboardings[0]
	if !ob.Steps[2].Completed || ob.Steps[2].CompletedAt == nil {
		t.Error("step 3 not marked completed")
	}
	if ob.Progress != 1 {
		t.Errorf("Progress = %d, want 1", ob.Progress)
	}
	c := next.Clients[0]
	if c.OnboardingStatus != models.OnboardingInProgress {
		t.Errorf("client OnboardingStatus = %q, want in-progress", c.OnboardingStatus)
	}
	if len(c.Timeline) != 1 || !strings.HasPrefix(c.Timeline[0].Event, "Onboarding Step 3 completed:") {
		t.Errorf("timeline = %+v, want one step event", c.Timeline)
	}
}

func TestUpdateStep_Uncomplete(t *testing.T) {
	s, id := snapshotWithProtocol()
	next := UpdateStep(s, id, "3", true, testNow)
	next = UpdateStep(next, id, "3", false, testNow.Add(time.Hour))

	ob := next.Onboardings[0]
	if ob.Steps[2].Completed || ob.Steps[2].CompletedAt != nil {
		t.Error("step 3 still marked completed")
	}
	if ob.Progress != 0 {
		t.Errorf("Progress = %d, want 0", ob.Progress)
	}
	// Unchecking does not log anything.
	if got := len(next.Clients[0].Timeline); got != 1 {
		t.Errorf("timeline length = %d, want 1", got)
	}
}

func TestUpdateStep_FinalStepGoesLive(t *testing.T) {
	s, id := snapshotWithProtocol()
	next := s
	for i := 1; i <= StepCount; i++ {
		next = UpdateStep(next, id, fmt.Sprintf("%d", i), true, testNow)
	}

	ob := next.Onboardings[0]
	if ob.Progress != 10 || ob.Status != models.ProtocolCompleted {
		t.Errorf("protocol = progress %d status %q, want 10 completed", ob.Progress, ob.Status)
	}
	c := next.Clients[0]
	if c.OnboardingStatus != models.OnboardingComplete {
		t.Errorf("client OnboardingStatus = %q, want complete", c.OnboardingStatus)
	}
	// The final completion logs the step event and the sprint-live event,
	// step event at the head.
	if len(c.Timeline) != StepCount+1 {
		t.Fatalf("timeline length = %d, want %d", len(c.Timeline), StepCount+1)
	}
	if !strings.HasPrefix(c.Timeline[0].Event, "Onboarding Step 10 completed:") {
		t.Errorf("head event = %q, want final step completion", c.Timeline[0].Event)
	}
	if !strings.HasPrefix(c.Timeline[1].Event, "Onboarding complete") {
		t.Errorf("second event = %q, want sprint live", c.Timeline[1].Event)
	}
	if c.Timeline[1].ID != c.Timeline[0].ID+1 {
		t.Errorf("event ids = %d, %d, want consecutive with sprint-live higher",
			c.Timeline[0].ID, c.Timeline[1].ID)
	}
}

func TestUpdateStep_UnknownIDs(t *testing.T) {
	s, id := snapshotWithProtocol()
	if next := UpdateStep(s, "missing", "1", true, testNow); next.Onboardings[0].Progress != 0 {
		t.Error("unknown protocol id should be a no-op")
	}
	if next := UpdateStep(s, id, "99", true, testNow); next.Onboardings[0].Progress != 0 {
		t.Error("unknown step id should be a no-op")
	}
}

func TestFindForClient(t *testing.T) {
	s, _ := snapshotWithProtocol()
	if got := FindForClient(s.Onboardings, 1); got != 0 {
		t.Errorf("FindForClient(1) = %d, want 0", got)
	}
	if got := FindForClient(s.Onboardings, 2); got != -1 {
		t.Errorf("FindForClient(2) = %d, want -1", got)
	}
}
