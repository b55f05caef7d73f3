package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/agencyos/internal/core/post"
	"github.com/example/agencyos/internal/models"
	"github.com/example/agencyos/internal/ports/primary"
)

// PostServiceImpl implements the PostService interface.
type PostServiceImpl struct {
	state *StateContainer
}

// NewPostService creates a new PostService backed by the state container.
func NewPostService(state *StateContainer) *PostServiceImpl {
	return &PostServiceImpl{state: state}
}

var _ primary.PostService = (*PostServiceImpl)(nil)

// CreatePost plans a new post.
func (s *PostServiceImpl) CreatePost(ctx context.Context, req primary.CreatePostRequest) (*models.Post, error) {
	if req.Hook == "" {
		return nil, fmt.Errorf("post hook is required")
	}
	if s.state.Snapshot().ClientIndex(req.ClientID) == -1 {
		return nil, fmt.Errorf("client %d not found", req.ClientID)
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}

	author := operatorFrom(ctx)
	var id int
	next := s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		var out models.Snapshot
		out, id = post.Add(snap, models.Post{
			ClientID:      req.ClientID,
			Platforms:     req.Platforms,
			PostType:      req.PostType,
			ContentPillar: req.ContentPillar,
			TemplateType:  req.TemplateType,
			Hook:          req.Hook,
			TriggerUsed:   req.TriggerUsed,
			CaptionBody:   req.CaptionBody,
			CTA:           req.CTA,
			CTAType:       req.CTAType,
			Hashtags:      req.Hashtags,
			VisualBrief:   req.VisualBrief,
			ScheduledDate: req.ScheduledDate,
			ScheduledTime: req.ScheduledTime,
			Status:        models.PostStagePlanned,
			Priority:      priority,
			AssignedTo:    req.AssignedTo,
			LinkedTaskID:  req.LinkedTaskID,
		}, author, now)
		return out
	})

	p := next.Posts[next.PostIndex(id)]
	return &p, nil
}

// GetPost retrieves a post by ID.
func (s *PostServiceImpl) GetPost(ctx context.Context, id int) (*models.Post, error) {
	snap := s.state.Snapshot()
	i := snap.PostIndex(id)
	if i == -1 {
		return nil, fmt.Errorf("post %d not found", id)
	}
	p := snap.Posts[i]
	return &p, nil
}

// ListPosts lists posts with optional filters.
func (s *PostServiceImpl) ListPosts(ctx context.Context, filters primary.PostFilters) ([]models.Post, error) {
	snap := s.state.Snapshot()
	var out []models.Post
	for _, p := range snap.Posts {
		if filters.ClientID != 0 && p.ClientID != filters.ClientID {
			continue
		}
		if filters.Stage != "" && p.Status != filters.Stage {
			continue
		}
		if filters.Platform != "" && !hasPlatform(p, filters.Platform) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// UpdatePost merges a patch. Recording performance for the first time
// evaluates the breakout capture rule.
func (s *PostServiceImpl) UpdatePost(ctx context.Context, id int, patch post.Patch) (*models.Post, error) {
	if s.state.Snapshot().PostIndex(id) == -1 {
		return nil, fmt.Errorf("post %d not found", id)
	}
	next := s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		return post.Update(snap, id, patch, now)
	})
	p := next.Posts[next.PostIndex(id)]
	return &p, nil
}

// AdvanceStage moves a post along the content pipeline.
func (s *PostServiceImpl) AdvanceStage(ctx context.Context, id int, stage, author, note string) (*models.Post, error) {
	if s.state.Snapshot().PostIndex(id) == -1 {
		return nil, fmt.Errorf("post %d not found", id)
	}
	if !postStageKnown(stage) {
		return nil, fmt.Errorf("unknown content stage %q", stage)
	}
	next := s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		return post.AdvanceStage(snap, id, stage, author, note, now)
	})
	p := next.Posts[next.PostIndex(id)]
	return &p, nil
}

// GenerateMonthly bulk-creates planned posts from planner rows.
func (s *PostServiceImpl) GenerateMonthly(ctx context.Context, clientID int, rows []post.PlannerRow) ([]int, error) {
	if s.state.Snapshot().ClientIndex(clientID) == -1 {
		return nil, fmt.Errorf("client %d not found", clientID)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no planner rows supplied")
	}
	var ids []int
	s.state.Apply(ctx, func(snap models.Snapshot, now time.Time) models.Snapshot {
		var out models.Snapshot
		out, ids = post.GenerateMonthly(snap, clientID, rows, now)
		return out
	})
	return ids, nil
}

func hasPlatform(p models.Post, platform string) bool {
	for _, pl := range p.Platforms {
		if pl == platform {
			return true
		}
	}
	return false
}

func postStageKnown(stage string) bool {
	for _, s := range models.PostStages {
		if s == stage {
			return true
		}
	}
	return false
}
