// Package onboarding contains the pure transition logic for the 10-step
// client onboarding checklist.
package onboarding

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/example/agencyos/internal/core/ident"
	"github.com/example/agencyos/internal/models"
)

type stepTemplate struct {
	label   string
	owner   string
	details string
}

// The fixed checklist. Step ids are positional ("1".."10").
var stepTemplates = []stepTemplate{
	{"Revenue Gate Qualified", models.OwnerCEO, "Annual revenue verified and tier assignment confirmed."},
	{"Contract Signed & Invoice Paid", models.OwnerTeam, "Digital contract executed, first invoice paid."},
	{"Intake Form Received", models.OwnerTeam, "Standard intake form returned: brand assets, competitor URLs, target audience, access credentials."},
	{"Client Workspace Created", models.OwnerTeam, "Messaging group created, shared drive initialized with Brand Assets / Deliverables / Approvals / Reports folders."},
	{"Kickoff Call Completed", models.OwnerCEO, "CEO runs the kickoff call to extract the shadow avatar and bleeding neck. Record for transcript."},
	{"Shadow Avatar & Bleeding Neck Extracted", models.OwnerCEO, "From the kickoff transcript: surface want vs shadow fear, the acute pain point. Update the client profile."},
	{"Strategy Brief Drafted", models.OwnerTeam, "Strategy brief drafted within 48h of kickoff: positioning, content pillars, competitor gaps, milestone roadmap."},
	{"Strategy Brief Approved (CEO Gate)", models.OwnerCEO, "Hard gate: no production starts until the CEO signs off."},
	{"Content Calendar Generated", models.OwnerTeam, "30-day content calendar generated, post types assigned across pillars."},
	{"Sprint Board Initialized & First Batch in Production", models.OwnerTeam, "Phase 1 sprint tasks created, first batch of posts enters production."},
}

// StepCount is the length of the fixed checklist.
var StepCount = len(stepTemplates)

// NewProtocol builds a fresh onboarding protocol for a client, all steps
// incomplete.
func NewProtocol(clientID int, now time.Time) models.OnboardingProtocol {
	steps := make([]models.OnboardingStep, len(stepTemplates))
	for i, st := range stepTemplates {
		steps[i] = models.OnboardingStep{
			ID:      fmt.Sprintf("%d", i+1),
			Label:   st.label,
			Owner:   st.owner,
			Details: st.details,
		}
	}
	return models.OnboardingProtocol{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		Steps:       steps,
		Progress:    0,
		Status:      models.ProtocolOnTrack,
		LastUpdated: now,
	}
}

// Progress maps completed steps to the 0-10 scale, rounded to the nearest
// tenth-step.
func Progress(steps []models.OnboardingStep) int {
	if len(steps) == 0 {
		return 0
	}
	done := 0
	for _, s := range steps {
		if s.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(steps)) * 10))
}

// UpdateStep flips one step's completed flag and recomputes the protocol's
// progress and status. Completing a step appends a client timeline event;
// the completion that brings progress to 10 additionally appends a
// "sprint live" event and flips the client's onboarding status to complete.
// Unknown protocol or step ids are a no-op.
func UpdateStep(s models.Snapshot, protocolID, stepID string, completed bool, now time.Time) models.Snapshot {
	oi := s.OnboardingIndex(protocolID)
	if oi == -1 {
		return s
	}

	ob := s.Onboardings[oi]
	steps := append([]models.OnboardingStep(nil), ob.Steps...)
	si := -1
	for i := range steps {
		if steps[i].ID == stepID {
			si = i
			break
		}
	}
	if si == -1 {
		return s
	}

	steps[si].Completed = completed
	if completed {
		t := now
		steps[si].CompletedAt = &t
	} else {
		steps[si].CompletedAt = nil
	}

	ob.Steps = steps
	ob.Progress = Progress(steps)
	if ob.Progress == 10 {
		ob.Status = models.ProtocolCompleted
	} else {
		ob.Status = models.ProtocolOnTrack
	}
	ob.LastUpdated = now

	next := s
	next.Onboardings = append([]models.OnboardingProtocol(nil), s.Onboardings...)
	next.Onboardings[oi] = ob

	if !completed {
		return next
	}

	ci := next.ClientIndex(ob.ClientID)
	if ci == -1 {
		return next
	}

	client := next.Clients[ci]
	date := models.DateOnly(now)
	events := []models.TimelineEvent{{
		Date:  date,
		Event: fmt.Sprintf("Onboarding Step %s completed: %s on %s", stepID, steps[si].Label, date),
		Type:  models.EventTypeSystem,
	}}
	if ob.Progress == 10 {
		events = append(events, models.TimelineEvent{
			Date:  date,
			Event: fmt.Sprintf("Onboarding complete — Sprint officially live: %s", date),
			Type:  models.EventTypeSystem,
		})
		client.OnboardingStatus = models.OnboardingComplete
	} else {
		client.OnboardingStatus = models.OnboardingInProgress
	}

	ids := make([]int, len(client.Timeline))
	for i := range client.Timeline {
		ids[i] = client.Timeline[i].ID
	}
	nextID := ident.Next(ids)
	for i := range events {
		events[i].ID = nextID + i
	}
	client.Timeline = append(events, client.Timeline...)

	next.Clients = append([]models.Client(nil), next.Clients...)
	next.Clients[ci] = client
	return next
}

// SetBlocked flags or unflags a protocol as externally blocked. Unblocking
// recomputes the status from progress. Unknown ids are a no-op.
func SetBlocked(s models.Snapshot, protocolID string, blocked bool, now time.Time) models.Snapshot {
	oi := s.OnboardingIndex(protocolID)
	if oi == -1 {
		return s
	}

	ob := s.Onboardings[oi]
	switch {
	case blocked:
		ob.Status = models.ProtocolBlocked
	case ob.Progress == 10:
		ob.Status = models.ProtocolCompleted
	default:
		ob.Status = models.ProtocolOnTrack
	}
	ob.LastUpdated = now

	next := s
	next.Onboardings = append([]models.OnboardingProtocol(nil), s.Onboardings...)
	next.Onboardings[oi] = ob
	return next
}

// FindForClient returns the index of the client's onboarding protocol, or
// -1 if none exists.
func FindForClient(onboardings []models.OnboardingProtocol, clientID int) int {
	for i := range onboardings {
		if onboardings[i].ClientID == clientID {
			return i
		}
	}
	return -1
}
