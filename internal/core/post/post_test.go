package post

import (
	"strings"
	"testing"
	"time"

	"github.com/example/agencyos/internal/models"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func snapshotWithPost() models.Snapshot {
	return models.Snapshot{
		Clients: []models.Client{
			{ID: 1, Name: "Acme Fitness", Status: models.ClientStatusActive},
		},
		Posts: []models.Post{
			{ID: 1, ClientID: 1, Hook: "Stop doing cardio wrong", PostType: "Reel",
				ContentPillar: "Education", Platforms: []string{"Instagram", "TikTok"},
				Status: models.PostStagePlanned},
		},
	}
}

func TestUpdate_BreakoutRule(t *testing.T) {
	tests := []struct {
		name         string
		perf         models.Performance
		wantBreakout bool
	}{
		{"save rate over threshold fires", models.Performance{Reach: 1000, Saves: 60, Shares: 10}, true},
		{"share rate over threshold fires", models.Performance{Reach: 1000, Saves: 10, Shares: 40}, true},
		{"both under threshold does not fire", models.Performance{Reach: 1000, Saves: 50, Shares: 30}, false},
		{"zero reach never fires", models.Performance{Reach: 0, Saves: 60, Shares: 40}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := snapshotWithPost()
			next := Update(s, 1, Patch{Performance: &tt.perf}, testNow)

			gotBreakout := len(next.Protocols) == 1
			if gotBreakout != tt.wantBreakout {
				t.Fatalf("breakout fired = %v, want %v", gotBreakout, tt.wantBreakout)
			}
			if !tt.wantBreakout {
				return
			}
			entry := next.Protocols[0]
			if entry.Title != "Top Performer: Stop doing cardio wrong" {
				t.Errorf("Title = %q", entry.Title)
			}
			if entry.Category != models.CategoryClientKB || entry.LinkedClientID != 1 {
				t.Errorf("entry = category %q client %d, want client-knowledge-base for client 1",
					entry.Category, entry.LinkedClientID)
			}
			c := next.Clients[0]
			if len(c.Timeline) != 1 || !strings.HasPrefix(c.Timeline[0].Event, "Top performer:") {
				t.Errorf("timeline = %+v, want one top-performer event", c.Timeline)
			}
		})
	}
}

func TestUpdate_BreakoutFiresAtMostOnce(t *testing.T) {
	s := snapshotWithPost()
	perf := models.Performance{Reach: 1000, Saves: 80, Shares: 50}
	next := Update(s, 1, Patch{Performance: &perf}, testNow)
	if len(next.Protocols) != 1 {
		t.Fatalf("protocols = %d, want 1 after first performance", len(next.Protocols))
	}

	// A later metric correction, still over threshold, must not re-capture.
	better := models.Performance{Reach: 2000, Saves: 300, Shares: 200}
	next = Update(next, 1, Patch{Performance: &better}, testNow.Add(time.Hour))
	if len(next.Protocols) != 1 {
		t.Errorf("protocols = %d, want 1 after correction", len(next.Protocols))
	}
}

func TestUpdate_RatesDerivedFromReach(t *testing.T) {
	s := snapshotWithPost()
	perf := models.Performance{Reach: 2000, Saves: 100, Shares: 30}
	next := Update(s, 1, Patch{Performance: &perf}, testNow)

	got := next.Posts[0].Performance
	if got == nil {
		t.Fatal("performance not stored")
	}
	if got.SaveRate != 0.05 {
		t.Errorf("SaveRate = %v, want 0.05", got.SaveRate)
	}
	if got.ShareRate != 0.015 {
		t.Errorf("ShareRate = %v, want 0.015", got.ShareRate)
	}
}

func TestAdvanceStage(t *testing.T) {
	t.Run("publication stamps date and logs client timeline", func(t *testing.T) {
		s := snapshotWithPost()
		next := AdvanceStage(s, 1, models.PostStagePublished, models.AuthorCEO, "", testNow)

		p := next.Posts[0]
		if p.Status != models.PostStagePublished {
			t.Errorf("Status = %q, want PUBLISHED", p.Status)
		}
		if p.PublishedDate != "2026-03-15" {
			t.Errorf("PublishedDate = %q, want 2026-03-15", p.PublishedDate)
		}
		c := next.Clients[0]
		if len(c.Timeline) != 1 {
			t.Fatalf("timeline length = %d, want 1", len(c.Timeline))
		}
		want := "Post 'Stop doing cardio wrong' published on Instagram, TikTok on 2026-03-15"
		if c.Timeline[0].Event != want {
			t.Errorf("event = %q, want %q", c.Timeline[0].Event, want)
		}
	})

	t.Run("republishing does not log twice", func(t *testing.T) {
		s := snapshotWithPost()
		next := AdvanceStage(s, 1, models.PostStagePublished, models.AuthorCEO, "", testNow)
		next = AdvanceStage(next, 1, models.PostStagePublished, models.AuthorCEO, "", testNow)
		if got := len(next.Clients[0].Timeline); got != 1 {
			t.Errorf("timeline length = %d, want 1", got)
		}
	})

	t.Run("intermediate stage logs activity only", func(t *testing.T) {
		s := snapshotWithPost()
		next := AdvanceStage(s, 1, "IN PRODUCTION", models.AuthorTeam, "", testNow)
		p := next.Posts[0]
		if p.Status != "IN PRODUCTION" {
			t.Errorf("Status = %q, want IN PRODUCTION", p.Status)
		}
		if len(next.Clients[0].Timeline) != 0 {
			t.Error("intermediate stage should not log a timeline event")
		}
		last := p.ActivityLog[len(p.ActivityLog)-1]
		if last.From != models.PostStagePlanned || last.To != "IN PRODUCTION" {
			t.Errorf("entry = %+v, want PLANNED->IN PRODUCTION", last)
		}
	})

	t.Run("unknown stage is a no-op", func(t *testing.T) {
		s := snapshotWithPost()
		next := AdvanceStage(s, 1, "LIMBO", models.AuthorTeam, "", testNow)
		if next.Posts[0].Status != models.PostStagePlanned {
			t.Errorf("Status = %q, want unchanged PLANNED", next.Posts[0].Status)
		}
	})
}

func TestGenerateMonthly(t *testing.T) {
	rows := []PlannerRow{
		{Date: "2026-04-01", Platform: "Instagram", PostType: "Reel", Pillar: "Education", HookIdea: "Myth busting", AssignedTo: "Art Director"},
		{Date: "2026-04-03", Platform: "TikTok", PostType: "Carousel", HookIdea: "Client win", AssignedTo: "Art Director"},
	}

	t.Run("creates contiguous planned batch with defaults", func(t *testing.T) {
		s := snapshotWithPost()
		next, ids := GenerateMonthly(s, 1, rows, testNow)
		if len(ids) != 2 || ids[0] != 2 || ids[1] != 3 {
			t.Fatalf("ids = %v, want [2 3]", ids)
		}
		first := next.Posts[next.PostIndex(2)]
		if first.Status != models.PostStagePlanned || first.TemplateType != "Template A" ||
			first.CTA != "Link in bio" || first.ScheduledTime != "10:00" {
			t.Errorf("defaults not applied: %+v", first)
		}
		second := next.Posts[next.PostIndex(3)]
		if second.ContentPillar != "Other" {
			t.Errorf("empty pillar = %q, want Other", second.ContentPillar)
		}
	})

	t.Run("unknown client is a no-op", func(t *testing.T) {
		s := snapshotWithPost()
		next, ids := GenerateMonthly(s, 404, rows, testNow)
		if ids != nil || len(next.Posts) != 1 {
			t.Errorf("expected no-op, got ids %v, %d posts", ids, len(next.Posts))
		}
	})
}
