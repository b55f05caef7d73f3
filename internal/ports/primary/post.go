package primary

import (
	"context"

	"github.com/example/agencyos/internal/core/post"
	"github.com/example/agencyos/internal/models"
)

// PostService defines the primary port for content pipeline operations.
type PostService interface {
	// CreatePost plans a new post.
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)

	// GetPost retrieves a post by ID.
	GetPost(ctx context.Context, id int) (*models.Post, error)

	// ListPosts lists posts with optional filters.
	ListPosts(ctx context.Context, filters PostFilters) ([]models.Post, error)

	// UpdatePost merges a patch. Recording performance for the first time
	// evaluates the breakout capture rule.
	UpdatePost(ctx context.Context, id int, patch post.Patch) (*models.Post, error)

	// AdvanceStage moves a post along the content pipeline. Reaching
	// PUBLISHED stamps the published date.
	AdvanceStage(ctx context.Context, id int, stage, author, note string) (*models.Post, error)

	// GenerateMonthly bulk-creates planned posts from planner rows and
	// returns the new post ids.
	GenerateMonthly(ctx context.Context, clientID int, rows []post.PlannerRow) ([]int, error)
}

// CreatePostRequest contains parameters for planning a post.
type CreatePostRequest struct {
	ClientID      int
	Platforms     []string
	PostType      string
	ContentPillar string
	TemplateType  string
	Hook          string
	TriggerUsed   string
	CaptionBody   string
	CTA           string
	CTAType       string
	Hashtags      string
	VisualBrief   string
	ScheduledDate string // YYYY-MM-DD
	ScheduledTime string // HH:MM
	Priority      string
	AssignedTo    string
	LinkedTaskID  int
}

// PostFilters contains filter options for listing posts.
type PostFilters struct {
	ClientID int    // 0 means all clients
	Stage    string // a PostStages value
	Platform string
}
