// Package vault contains the pure transition logic for knowledge entries
// (protocols): SOPs, AI prompts, client knowledge-base captures, and brand
// standards.
package vault

import (
	"regexp"
	"time"

	"github.com/example/agencyos/internal/core/ident"
	"github.com/example/agencyos/internal/models"
)

var variablePattern = regexp.MustCompile(`\[\[[^\[\]]+\]\]`)

// ExtractVariables returns the distinct [[VARIABLE]] placeholders in content,
// in order of first appearance.
func ExtractVariables(content string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range variablePattern.FindAllString(content, -1) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// FindActiveSOP returns the first active SOP whose linked task types include
// the given category. Order is collection order, not priority-ranked; the
// first match wins. Returns nil if nothing matches.
func FindActiveSOP(protocols []models.Protocol, category string) *models.Protocol {
	for i := range protocols {
		p := &protocols[i]
		if p.Category != models.CategorySOP || p.Status != models.ProtocolStatusActive {
			continue
		}
		for _, t := range p.LinkedTaskTypes {
			if t == category {
				return p
			}
		}
	}
	return nil
}

// Add materializes a new knowledge entry. The draft's ID, CopyCount, and
// timestamps are ignored. AI prompts with no explicit variables get them
// extracted from the content.
func Add(s models.Snapshot, draft models.Protocol, now time.Time) (models.Snapshot, int) {
	ids := make([]int, len(s.Protocols))
	for i := range s.Protocols {
		ids[i] = s.Protocols[i].ID
	}
	draft.ID = ident.Next(ids)
	draft.CopyCount = 0
	draft.CreatedAt = now
	draft.UpdatedAt = now
	if draft.Category == models.CategoryAIPrompt && len(draft.PromptVariables) == 0 {
		draft.PromptVariables = ExtractVariables(draft.Content)
	}

	next := s
	next.Protocols = append(append([]models.Protocol(nil), s.Protocols...), draft)
	return next, draft.ID
}

// Patch is the typed update set for a knowledge entry. Nil fields are left
// untouched.
type Patch struct {
	Title              *string
	Category           *string
	Pillar             *string
	Tags               *[]string
	Status             *string
	Content            *string
	PromptTool         *string
	PromptVariables    *[]string
	UsageNotes         *string
	ExampleOutput      *string
	LinkedTaskTypes    *[]string
	LinkedClientID     *int
	RelatedProtocolIDs *[]int
	ExternalReferences *[]string
}

// Update merges the patch into the entry and bumps UpdatedAt. Unknown ids
// are a no-op.
func Update(s models.Snapshot, id int, patch Patch, now time.Time) models.Snapshot {
	i := s.ProtocolIndex(id)
	if i == -1 {
		return s
	}

	p := s.Protocols[i]
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Pillar != nil {
		p.Pillar = *patch.Pillar
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.PromptTool != nil {
		p.PromptTool = *patch.PromptTool
	}
	if patch.PromptVariables != nil {
		p.PromptVariables = *patch.PromptVariables
	}
	if patch.UsageNotes != nil {
		p.UsageNotes = *patch.UsageNotes
	}
	if patch.ExampleOutput != nil {
		p.ExampleOutput = *patch.ExampleOutput
	}
	if patch.LinkedTaskTypes != nil {
		p.LinkedTaskTypes = *patch.LinkedTaskTypes
	}
	if patch.LinkedClientID != nil {
		p.LinkedClientID = *patch.LinkedClientID
	}
	if patch.RelatedProtocolIDs != nil {
		p.RelatedProtocolIDs = *patch.RelatedProtocolIDs
	}
	if patch.ExternalReferences != nil {
		p.ExternalReferences = *patch.ExternalReferences
	}
	p.UpdatedAt = now

	next := s
	next.Protocols = append([]models.Protocol(nil), s.Protocols...)
	next.Protocols[i] = p
	return next
}

// Delete removes the entry. Unknown ids are a no-op.
func Delete(s models.Snapshot, id int) models.Snapshot {
	i := s.ProtocolIndex(id)
	if i == -1 {
		return s
	}
	next := s
	next.Protocols = make([]models.Protocol, 0, len(s.Protocols)-1)
	for j := range s.Protocols {
		if j != i {
			next.Protocols = append(next.Protocols, s.Protocols[j])
		}
	}
	return next
}

// RecordUsage increments the entry's copy counter. The usage counter does
// not count as an edit, so UpdatedAt stays put.
func RecordUsage(s models.Snapshot, id int) models.Snapshot {
	i := s.ProtocolIndex(id)
	if i == -1 {
		return s
	}
	next := s
	next.Protocols = append([]models.Protocol(nil), s.Protocols...)
	next.Protocols[i].CopyCount++
	return next
}
