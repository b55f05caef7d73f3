// Package post contains the pure transition logic for the content pipeline:
// creation, stage advancement, monthly planning, and the breakout rule that
// captures top performers into the knowledge vault.
package post

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/agencyos/internal/core/ident"
	"github.com/example/agencyos/internal/models"
)

// Breakout thresholds: a published post whose save rate or share rate
// clears these is captured into the vault once.
const (
	BreakoutSaveRate  = 0.05
	BreakoutShareRate = 0.03
)

// Add materializes a new post, attributing the seeded log entry to author.
// The draft's ID, ActivityLog, and timestamps are ignored.
func Add(s models.Snapshot, draft models.Post, author string, now time.Time) (models.Snapshot, int) {
	ids := make([]int, len(s.Posts))
	for i := range s.Posts {
		ids[i] = s.Posts[i].ID
	}
	draft.ID = ident.Next(ids)
	draft.CreatedAt = now
	draft.UpdatedAt = now
	draft.ActivityLog = []models.ActivityEntry{{
		Timestamp: now,
		Type:      models.ActivityCreated,
		Text:      fmt.Sprintf("Post planned and assigned to %s", draft.AssignedTo),
		Author:    author,
	}}

	next := s
	next.Posts = append(append([]models.Post(nil), s.Posts...), draft)
	return next, draft.ID
}

// Patch is the typed update set for a post. Nil fields are left untouched.
// Status is deliberately absent: stages move through AdvanceStage only.
type Patch struct {
	Platforms     *[]string
	PostType      *string
	ContentPillar *string
	TemplateType  *string
	Hook          *string
	TriggerUsed   *string
	CaptionBody   *string
	CTA           *string
	CTAType       *string
	Hashtags      *string
	VisualBrief   *string
	ScheduledDate *string
	ScheduledTime *string
	Priority      *string
	AssignedTo    *string
	LinkedTaskID  *int
	AssetLinks    *[]string
	ReferencePost *string
	Performance   *models.Performance
}

// Update merges the patch and bumps UpdatedAt. Supplying Performance while
// the stored record's performance is still nil evaluates the breakout rule:
// save rate > 5% or share rate > 3% synthesizes a client knowledge-base
// entry and a client timeline event. The nil guard makes this fire at most
// once per post; later metric corrections never re-trigger it. Unknown ids
// are a no-op.
func Update(s models.Snapshot, id int, patch Patch, now time.Time) models.Snapshot {
	pi := s.PostIndex(id)
	if pi == -1 {
		return s
	}

	p := s.Posts[pi]
	firstPerformance := patch.Performance != nil && p.Performance == nil
	applyPatch(&p, patch)
	p.UpdatedAt = now

	next := s
	next.Posts = append([]models.Post(nil), s.Posts...)

	if patch.Performance != nil {
		perf := *patch.Performance
		if perf.Reach > 0 {
			perf.SaveRate = float64(perf.Saves) / float64(perf.Reach)
			perf.ShareRate = float64(perf.Shares) / float64(perf.Reach)
		}
		p.Performance = &perf
		// Corrections after the first recording update the numbers but
		// never re-capture.
		if firstPerformance && (perf.SaveRate > BreakoutSaveRate || perf.ShareRate > BreakoutShareRate) {
			next = captureBreakout(next, p, perf, now)
		}
	}

	next.Posts[pi] = p
	return next
}

// AdvanceStage moves a post to newStage and appends an activity entry,
// mirroring the task pipeline. First arrival at PUBLISHED stamps the
// published date and logs a client timeline event naming the platforms;
// repeating it does not log again. Unknown ids and stages outside the
// content pipeline are a no-op.
func AdvanceStage(s models.Snapshot, id int, newStage, author, note string, now time.Time) models.Snapshot {
	pi := s.PostIndex(id)
	if pi == -1 {
		return s
	}
	if !stageKnown(newStage) {
		return s
	}

	p := s.Posts[pi]
	entry := models.ActivityEntry{
		Timestamp: now,
		Type:      models.ActivityStageAdvance,
		From:      p.Status,
		To:        newStage,
		Text:      fmt.Sprintf("Advanced from %s to %s", p.Status, newStage),
		Author:    author,
	}
	if note != "" {
		entry.Type = models.ActivityNote
		entry.Text = note
	}

	next := s
	if newStage == models.PostStagePublished && p.Status != models.PostStagePublished {
		p.PublishedDate = models.DateOnly(now)
		next = logPublication(next, p, now)
	}

	p.Status = newStage
	p.ActivityLog = append(append([]models.ActivityEntry(nil), p.ActivityLog...), entry)
	p.UpdatedAt = now

	next.Posts = append([]models.Post(nil), next.Posts...)
	next.Posts[pi] = p
	return next
}

// PlannerRow is one planned post in a monthly planning batch.
type PlannerRow struct {
	Date       string
	Platform   string
	PostType   string
	Pillar     string
	HookIdea   string
	AssignedTo string
}

// GenerateMonthly bulk-creates posts from planner rows, one contiguous id
// batch, all PLANNED. Returns the new ids; an unknown client is a no-op
// returning nil.
func GenerateMonthly(s models.Snapshot, clientID int, rows []PlannerRow, now time.Time) (models.Snapshot, []int) {
	if s.ClientIndex(clientID) == -1 {
		return s, nil
	}

	existing := make([]int, len(s.Posts))
	for i := range s.Posts {
		existing[i] = s.Posts[i].ID
	}
	batch := ident.Sequence(existing, len(rows))

	next := s
	next.Posts = append([]models.Post(nil), s.Posts...)
	for i, row := range rows {
		pillar := row.Pillar
		if pillar == "" {
			pillar = "Other"
		}
		next.Posts = append(next.Posts, models.Post{
			ID:            batch[i],
			ClientID:      clientID,
			Platforms:     []string{row.Platform},
			PostType:      row.PostType,
			ContentPillar: pillar,
			TemplateType:  "Template A",
			Hook:          row.HookIdea,
			CTA:           "Link in bio",
			CTAType:       "Link in bio",
			ScheduledDate: row.Date,
			ScheduledTime: "10:00",
			Status:        models.PostStagePlanned,
			Priority:      models.PriorityNormal,
			AssignedTo:    row.AssignedTo,
			ActivityLog: []models.ActivityEntry{{
				Timestamp: now,
				Type:      models.ActivityCreated,
				Text:      "Auto-generated from Monthly Planner",
				Author:    models.AuthorCEO,
			}},
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return next, batch
}

func captureBreakout(s models.Snapshot, p models.Post, perf models.Performance, now time.Time) models.Snapshot {
	ids := make([]int, len(s.Protocols))
	for i := range s.Protocols {
		ids[i] = s.Protocols[i].ID
	}
	entry := models.Protocol{
		ID:       ident.Next(ids),
		Title:    fmt.Sprintf("Top Performer: %s", p.Hook),
		Category: models.CategoryClientKB,
		Pillar:   p.ContentPillar,
		Tags:     []string{"Auto-Generated", "High-Performance", p.PostType},
		Status:   models.ProtocolStatusActive,
		Content: fmt.Sprintf(
			"### High-Performance Post Recorded\n\n**Format:** %s\n**Hook:** %s\n**Performance:**\n- Save Rate: %.1f%%\n- Share Rate: %.1f%%\n\nThis post outperformed baseline metrics. Analyze the trigger and format used here to replicate success.",
			p.PostType, p.Hook, perf.SaveRate*100, perf.ShareRate*100),
		LinkedClientID: p.ClientID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	next := s
	next.Protocols = append(append([]models.Protocol(nil), s.Protocols...), entry)

	ci := next.ClientIndex(p.ClientID)
	if ci == -1 {
		return next
	}
	c := next.Clients[ci]
	tids := make([]int, len(c.Timeline))
	for i := range c.Timeline {
		tids[i] = c.Timeline[i].ID
	}
	c.Timeline = append([]models.TimelineEvent{{
		ID:    ident.Next(tids),
		Date:  models.DateOnly(now),
		Event: fmt.Sprintf("Top performer: %s — %.1f%% save rate", p.Hook, perf.SaveRate*100),
		Type:  models.EventTypeSystem,
	}}, c.Timeline...)

	next.Clients = append([]models.Client(nil), next.Clients...)
	next.Clients[ci] = c
	return next
}

func logPublication(s models.Snapshot, p models.Post, now time.Time) models.Snapshot {
	ci := s.ClientIndex(p.ClientID)
	if ci == -1 {
		return s
	}

	c := s.Clients[ci]
	ids := make([]int, len(c.Timeline))
	for i := range c.Timeline {
		ids[i] = c.Timeline[i].ID
	}
	date := models.DateOnly(now)
	c.Timeline = append([]models.TimelineEvent{{
		ID:    ident.Next(ids),
		Date:  date,
		Event: fmt.Sprintf("Post '%s' published on %s on %s", p.Hook, strings.Join(p.Platforms, ", "), date),
		Type:  models.EventTypeSystem,
	}}, c.Timeline...)

	next := s
	next.Clients = append([]models.Client(nil), s.Clients...)
	next.Clients[ci] = c
	return next
}

func stageKnown(stage string) bool {
	for _, s := range models.PostStages {
		if s == stage {
			return true
		}
	}
	return false
}

func applyPatch(p *models.Post, patch Patch) {
	if patch.Platforms != nil {
		p.Platforms = *patch.Platforms
	}
	if patch.PostType != nil {
		p.PostType = *patch.PostType
	}
	if patch.ContentPillar != nil {
		p.ContentPillar = *patch.ContentPillar
	}
	if patch.TemplateType != nil {
		p.TemplateType = *patch.TemplateType
	}
	if patch.Hook != nil {
		p.Hook = *patch.Hook
	}
	if patch.TriggerUsed != nil {
		p.TriggerUsed = *patch.TriggerUsed
	}
	if patch.CaptionBody != nil {
		p.CaptionBody = *patch.CaptionBody
	}
	if patch.CTA != nil {
		p.CTA = *patch.CTA
	}
	if patch.CTAType != nil {
		p.CTAType = *patch.CTAType
	}
	if patch.Hashtags != nil {
		p.Hashtags = *patch.Hashtags
	}
	if patch.VisualBrief != nil {
		p.VisualBrief = *patch.VisualBrief
	}
	if patch.ScheduledDate != nil {
		p.ScheduledDate = *patch.ScheduledDate
	}
	if patch.ScheduledTime != nil {
		p.ScheduledTime = *patch.ScheduledTime
	}
	if patch.Priority != nil {
		p.Priority = *patch.Priority
	}
	if patch.AssignedTo != nil {
		p.AssignedTo = *patch.AssignedTo
	}
	if patch.LinkedTaskID != nil {
		p.LinkedTaskID = *patch.LinkedTaskID
	}
	if patch.AssetLinks != nil {
		p.AssetLinks = *patch.AssetLinks
	}
	if patch.ReferencePost != nil {
		p.ReferencePost = *patch.ReferencePost
	}
}
