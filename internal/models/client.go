// Package models contains domain types for the agency operations ledger.
// Persistence runs through the snapshot store in internal/adapters/sqlite.
package models

import "time"

// Client represents a business relationship moving through the lifecycle.
type Client struct {
	ID                 int             `json:"id"`
	Name               string          `json:"name"`
	Status             string          `json:"status"`
	RevenueGate        string          `json:"revenueGate"`
	Tier               string          `json:"tier"`
	LTV                int             `json:"ltv"`
	ContractValue      int             `json:"contractValue"`
	Phone              string          `json:"phone"`
	Email              string          `json:"email"`
	ContactName        string          `json:"contactName"`
	Niche              string          `json:"niche"`
	StartDate          string          `json:"startDate"` // YYYY-MM-DD
	ShadowAvatar       string          `json:"shadowAvatar"`
	BleedingNeck       string          `json:"bleedingNeck"`
	ContentPillars     []string        `json:"contentPillars"`
	RelationshipHealth string          `json:"relationshipHealth"`
	OnboardingStatus   string          `json:"onboardingStatus"`
	Notes              string          `json:"notes"`
	Timeline           []TimelineEvent `json:"timeline"` // newest first
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// TimelineEvent is one dated entry on a client's timeline.
// IDs are scoped to the owning client and increase monotonically.
type TimelineEvent struct {
	ID    int    `json:"id"`
	Date  string `json:"date"` // YYYY-MM-DD
	Event string `json:"event"`
	Type  string `json:"type"` // system or manual
}

// Client lifecycle status constants
const (
	ClientStatusLead      = "Lead"
	ClientStatusDiscovery = "Discovery"
	ClientStatusActive    = "Active Sprint"
	ClientStatusRetainer  = "Retainer"
	ClientStatusClosed    = "Closed"
)

// Relationship health constants (manual override field; the computed value
// lives in internal/core/health)
const (
	HealthHealthy  = "healthy"
	HealthAtRisk   = "at-risk"
	HealthCritical = "critical"
)

// Onboarding status constants (on the client, not the protocol)
const (
	OnboardingNotStarted = "not-started"
	OnboardingInProgress = "in-progress"
	OnboardingComplete   = "complete"
)

// Timeline event type constants
const (
	EventTypeSystem = "system"
	EventTypeManual = "manual"
)
