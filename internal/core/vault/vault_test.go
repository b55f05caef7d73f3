package vault

import (
	"reflect"
	"testing"
	"time"

	"github.com/example/agencyos/internal/models"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func TestExtractVariables(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "distinct variables in order of appearance",
			content: "Write for [[NICHE]] targeting [[AVATAR]]. Tone: [[NICHE]] expert.",
			want:    []string{"[[NICHE]]", "[[AVATAR]]"},
		},
		{
			name:    "no variables",
			content: "Plain prompt with [brackets] and {braces}.",
			want:    nil,
		},
		{
			name:    "nested brackets do not match",
			content: "bad [[A[[B]]]] here",
			want:    []string{"[[B]]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractVariables(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractVariables() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindActiveSOP(t *testing.T) {
	protocols := []models.Protocol{
		{ID: 1, Title: "DRAFT SOP", Category: models.CategorySOP,
			Status: models.ProtocolStatusDraft, LinkedTaskTypes: []string{"Strategy"}},
		{ID: 2, Title: "STRATEGY SOP", Category: models.CategorySOP,
			Status: models.ProtocolStatusActive, LinkedTaskTypes: []string{"Strategy", "Website"}},
		{ID: 3, Title: "SECOND STRATEGY SOP", Category: models.CategorySOP,
			Status: models.ProtocolStatusActive, LinkedTaskTypes: []string{"Strategy"}},
		{ID: 4, Title: "NOT A SOP", Category: models.CategoryAIPrompt,
			Status: models.ProtocolStatusActive, LinkedTaskTypes: []string{"Ads"}},
	}

	t.Run("first active match wins", func(t *testing.T) {
		got := FindActiveSOP(protocols, "Strategy")
		if got == nil || got.ID != 2 {
			t.Errorf("got %+v, want id 2", got)
		}
	})
	t.Run("non-sop categories are ignored", func(t *testing.T) {
		if got := FindActiveSOP(protocols, "Ads"); got != nil {
			t.Errorf("got %+v, want nil", got)
		}
	})
	t.Run("no match returns nil", func(t *testing.T) {
		if got := FindActiveSOP(protocols, "Photography"); got != nil {
			t.Errorf("got %+v, want nil", got)
		}
	})
}

func TestAdd(t *testing.T) {
	t.Run("ai prompt auto-extracts variables", func(t *testing.T) {
		s := models.Snapshot{}
		next, id := Add(s, models.Protocol{
			Title:    "Hook Writer",
			Category: models.CategoryAIPrompt,
			Content:  "Write 10 hooks for [[NICHE]] about [[TOPIC]].",
		}, testNow)
		got := next.Protocols[next.ProtocolIndex(id)]
		want := []string{"[[NICHE]]", "[[TOPIC]]"}
		if !reflect.DeepEqual(got.PromptVariables, want) {
			t.Errorf("PromptVariables = %v, want %v", got.PromptVariables, want)
		}
	})

	t.Run("explicit variables are kept", func(t *testing.T) {
		s := models.Snapshot{}
		next, id := Add(s, models.Protocol{
			Title:           "Hook Writer",
			Category:        models.CategoryAIPrompt,
			Content:         "Write hooks for [[NICHE]].",
			PromptVariables: []string{"[[CUSTOM]]"},
		}, testNow)
		got := next.Protocols[next.ProtocolIndex(id)]
		if !reflect.DeepEqual(got.PromptVariables, []string{"[[CUSTOM]]"}) {
			t.Errorf("PromptVariables = %v, want explicit value kept", got.PromptVariables)
		}
	})

	t.Run("copy count always starts at zero", func(t *testing.T) {
		s := models.Snapshot{}
		next, id := Add(s, models.Protocol{Title: "SOP", Category: models.CategorySOP, CopyCount: 9}, testNow)
		if got := next.Protocols[next.ProtocolIndex(id)].CopyCount; got != 0 {
			t.Errorf("CopyCount = %d, want 0", got)
		}
	})
}

func TestRecordUsage(t *testing.T) {
	s := models.Snapshot{Protocols: []models.Protocol{
		{ID: 1, Title: "SOP", CopyCount: 2, UpdatedAt: testNow},
	}}
	next := RecordUsage(s, 1)
	got := next.Protocols[0]
	if got.CopyCount != 3 {
		t.Errorf("CopyCount = %d, want 3", got.CopyCount)
	}
	if !got.UpdatedAt.Equal(testNow) {
		t.Error("usage must not bump UpdatedAt")
	}
	if s.Protocols[0].CopyCount != 2 {
		t.Error("input snapshot mutated")
	}
}

func TestUpdateAndDelete(t *testing.T) {
	s := models.Snapshot{Protocols: []models.Protocol{
		{ID: 1, Title: "SOP", Status: models.ProtocolStatusDraft},
		{ID: 2, Title: "OTHER"},
	}}

	t.Run("update merges and stamps", func(t *testing.T) {
		status := models.ProtocolStatusActive
		next := Update(s, 1, Patch{Status: &status}, testNow)
		got := next.Protocols[next.ProtocolIndex(1)]
		if got.Status != models.ProtocolStatusActive || !got.UpdatedAt.Equal(testNow) {
			t.Errorf("got %+v", got)
		}
		if got.Title != "SOP" {
			t.Errorf("Title = %q, want untouched", got.Title)
		}
	})

	t.Run("delete removes only the target", func(t *testing.T) {
		next := Delete(s, 1)
		if next.ProtocolIndex(1) != -1 || next.ProtocolIndex(2) == -1 {
			t.Errorf("protocols = %+v", next.Protocols)
		}
	})

	t.Run("unknown ids are no-ops", func(t *testing.T) {
		title := "ghost"
		if next := Update(s, 99, Patch{Title: &title}, testNow); len(next.Protocols) != 2 {
			t.Error("update changed snapshot")
		}
		if next := Delete(s, 99); len(next.Protocols) != 2 {
			t.Error("delete changed snapshot")
		}
	})
}
