package models

import "time"

// OnboardingProtocol is the fixed 10-step checklist gating a client's
// transition from signed to fully active. At most one exists per client by
// convention (created when the client first enters Active Sprint).
type OnboardingProtocol struct {
	ID          string           `json:"id"`
	ClientID    int              `json:"clientId"`
	Steps       []OnboardingStep `json:"steps"`
	Progress    int              `json:"progress"` // 0-10, tenths of the checklist
	Status      string           `json:"status"`
	LastUpdated time.Time        `json:"lastUpdated"`
}

// OnboardingStep is one checklist item. Owner is the capability level
// required to complete it (CEO steps are elevated-only, enforced at the
// call site).
type OnboardingStep struct {
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	Completed   bool       `json:"completed"`
	Owner       string     `json:"owner"` // CEO or Team
	Details     string     `json:"details,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Onboarding protocol status constants. Blocked is never derived by the
// engine; it is set externally only.
const (
	ProtocolOnTrack   = "on-track"
	ProtocolBlocked   = "blocked"
	ProtocolCompleted = "completed"
)

// Step owner capability levels
const (
	OwnerCEO  = "CEO"
	OwnerTeam = "Team"
)
