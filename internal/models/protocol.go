package models

import "time"

// Protocol is a reusable knowledge vault entry: an SOP, an AI prompt, a
// client knowledge-base capture, or a brand standard. Links to tasks and
// clients are soft references; consumers must tolerate dangling ones.
type Protocol struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Pillar   string   `json:"pillar"`
	Tags     []string `json:"tags"`
	Status   string   `json:"status"`
	Content  string   `json:"content"`

	// AI prompt specific
	PromptTool      string   `json:"promptTool,omitempty"`
	PromptVariables []string `json:"promptVariables,omitempty"` // [[VAR]] placeholders
	UsageNotes      string   `json:"usageNotes,omitempty"`
	ExampleOutput   string   `json:"exampleOutput,omitempty"`

	// Linking
	LinkedTaskTypes    []string `json:"linkedTaskTypes,omitempty"`
	LinkedClientID     int      `json:"linkedClientId,omitempty"`
	RelatedProtocolIDs []int    `json:"relatedProtocolIds,omitempty"`
	ExternalReferences []string `json:"externalReferences,omitempty"`

	CopyCount int       `json:"copyCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Protocol category constants
const (
	CategorySOP           = "sop"
	CategoryAIPrompt      = "ai-prompt"
	CategoryClientKB      = "client-knowledge-base"
	CategoryBrandStandard = "brand-standard"
)

// Protocol status constants
const (
	ProtocolStatusActive   = "active"
	ProtocolStatusDraft    = "draft"
	ProtocolStatusArchived = "archived"
)
