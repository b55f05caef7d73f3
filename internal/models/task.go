package models

import "time"

// Task is a unit of fulfillment work bound to exactly one client.
// CurrentStage moves along StagePipeline via the advance operation only.
type Task struct {
	ID              int             `json:"id"`
	ClientID        int             `json:"clientId"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Phase           string          `json:"phase"`
	StagePipeline   []string        `json:"stagePipeline"`
	CurrentStage    string          `json:"currentStage"`
	AssignedNode    string          `json:"assignedNode"`
	Priority        string          `json:"priority"`
	Status          string          `json:"status"`
	Deadline        string          `json:"deadline"` // YYYY-MM-DD
	EstimatedHours  int             `json:"estimatedHours,omitempty"`
	Brief           string          `json:"brief"`
	AssetLinks      []string        `json:"assetLinks"`
	SOPReference    string          `json:"sopReference,omitempty"` // soft link by protocol title
	ActivityLog     []ActivityEntry `json:"activityLog"`            // oldest first
	Notes           string          `json:"notes"`
	DeliveredOnTime *bool           `json:"deliveredOnTime,omitempty"` // stamped on first deployment
	LinkedPostID    int             `json:"linkedPostId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Terminal checks whether a stage is the last entry of the task's pipeline.
func (t *Task) Terminal(stage string) bool {
	return len(t.StagePipeline) > 0 && t.StagePipeline[len(t.StagePipeline)-1] == stage
}

// InPipeline reports whether stage is a member of the task's pipeline.
func (t *Task) InPipeline(stage string) bool {
	for _, s := range t.StagePipeline {
		if s == stage {
			return true
		}
	}
	return false
}

// ActivityEntry records one transition or note on a task or post.
type ActivityEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
}

// Task status constants
const (
	TaskStatusActive    = "active"
	TaskStatusDeployed  = "deployed"
	TaskStatusCancelled = "cancelled"
)

// Activity entry type constants
const (
	ActivityCreated      = "created"
	ActivityStageAdvance = "stage_advance"
	ActivityStageRegress = "stage_regress"
	ActivityNote         = "note"
	ActivityEdited       = "edited"
)

// Operator (author) constants. CEO is the elevated capability level.
const (
	AuthorCEO  = "ceo"
	AuthorTeam = "team"
)

// Task priority constants
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityNormal   = "normal"
)

// DefaultStagePipeline is the standard task approval path.
var DefaultStagePipeline = []string{
	"BRIEFED", "IN PRODUCTION", "REVIEW", "CEO APPROVAL", "CLIENT APPROVAL", "DEPLOYED",
}
