package models

import "time"

// Post is a content-production unit. Structurally parallel to Task but with
// its own stage vocabulary and a performance payload set after publication.
type Post struct {
	ID            int             `json:"id"`
	ClientID      int             `json:"clientId"`
	Platforms     []string        `json:"platforms"`
	PostType      string          `json:"postType"`
	ContentPillar string          `json:"contentPillar"`
	TemplateType  string          `json:"templateType,omitempty"`
	Hook          string          `json:"hook"`
	TriggerUsed   string          `json:"triggerUsed,omitempty"`
	CaptionBody   string          `json:"captionBody"`
	CTA           string          `json:"cta"`
	CTAType       string          `json:"ctaType"`
	Hashtags      string          `json:"hashtags"`
	VisualBrief   string          `json:"visualBrief"`
	ScheduledDate string          `json:"scheduledDate"` // YYYY-MM-DD
	ScheduledTime string          `json:"scheduledTime"` // HH:MM
	PublishedDate string          `json:"publishedDate,omitempty"`
	Status        string          `json:"status"` // a PostStages value
	Priority      string          `json:"priority"`
	AssignedTo    string          `json:"assignedTo"`
	LinkedTaskID  int             `json:"linkedTaskId,omitempty"`
	AssetLinks    []string        `json:"assetLinks"`
	ReferencePost string          `json:"referencePost,omitempty"`
	Performance   *Performance    `json:"performance,omitempty"` // nil until published
	ActivityLog   []ActivityEntry `json:"activityLog"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Performance holds post metrics recorded after publication. SaveRate and
// ShareRate are derived at record time and feed the breakout rule.
type Performance struct {
	Reach       int     `json:"reach"`
	Impressions int     `json:"impressions"`
	Saves       int     `json:"saves"`
	Shares      int     `json:"shares"`
	Comments    int     `json:"comments"`
	Likes       int     `json:"likes"`
	SaveRate    float64 `json:"saveRate"`
	ShareRate   float64 `json:"shareRate"`
	CEORating   string  `json:"ceoRating,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

// Post stage constants
const (
	PostStagePlanned   = "PLANNED"
	PostStagePublished = "PUBLISHED"
)

// PostStages is the standard content pipeline, PLANNED through PUBLISHED.
var PostStages = []string{
	"PLANNED", "BRIEF WRITTEN", "IN PRODUCTION", "REVIEW",
	"CEO APPROVAL", "CLIENT APPROVAL", "SCHEDULED", "PUBLISHED",
}
