package models

import "time"

// DefaultSnapshot returns the snapshot seeded on first run: an empty roster
// plus the standard knowledge vault (SOPs, brand standard, starter prompts).
// Seeding the vault up front makes SOP auto-detection on task creation work
// from day one.
func DefaultSnapshot(now time.Time) Snapshot {
	return Snapshot{
		Clients:     []Client{},
		Tasks:       []Task{},
		Posts:       []Post{},
		Onboardings: []OnboardingProtocol{},
		Protocols:   seedProtocols(now),
		Settings:    Settings{},
	}
}

func seedProtocols(now time.Time) []Protocol {
	sop := func(id int, title, pillar, content string, tags, taskTypes []string) Protocol {
		return Protocol{
			ID: id, Title: title, Category: CategorySOP, Pillar: pillar,
			Tags: tags, Status: ProtocolStatusActive, Content: content,
			LinkedTaskTypes: taskTypes, CreatedAt: now, UpdatedAt: now,
		}
	}
	return []Protocol{
		sop(101, "CLIENT ONBOARDING PROTOCOL", "Operations",
			"## Onboarding\n\n1. Revenue gate qualified and contract signed.\n2. Intake form received.\n3. Client workspace created.\n4. Kickoff call: extract shadow avatar and bleeding neck.\n5. Strategy brief drafted, CEO gate, calendar generated, sprint board initialized.",
			[]string{"onboarding", "client", "setup"},
			[]string{"Client Communication"}),
		sop(102, "CONTENT PRODUCTION PROTOCOL", "Viral Engine",
			"## The HOOK → TENSION → VALUE → PROOF → CTA framework\n\nEvery caption follows this structure. Hook under 10 words, one clear CTA.",
			[]string{"content", "caption"},
			[]string{"Content Production"}),
		sop(103, "AD CREATIVE PROTOCOL", "Conversion Mechanic",
			"## Funnel structure\n\nCold: PAS. Warm: AIDA. Retargeting: testimonial and offer stack.",
			[]string{"ads", "creative"},
			[]string{"Ad Creative"}),
		sop(104, "VISUAL BRIEF WRITING PROTOCOL", "Viral Engine",
			"## Briefing the Art Director\n\nGoal, template, text on image, visual vibe, assets to use, what to avoid. If they have to ask a question, the brief failed.",
			[]string{"design", "briefs"},
			[]string{"Brand Design", "Content Production"}),
		sop(105, "SHADOW AVATAR EXTRACTION PROTOCOL", "Psychological Warfare",
			"## Extracting the shadow\n\nSurface desire vs shadow desire. Listen for hesitation in the kickoff call; that is where the truth is.",
			[]string{"strategy", "kickoff"},
			[]string{"Strategy"}),
		sop(106, "SPRINT DEBRIEF PROTOCOL", "Growth Math",
			"## 60-day sprint retrospective\n\nCollect follower delta, engagement rate, leads vs expected, viral hits. Output a formal report with the next 60-day plan.",
			[]string{"analytics", "review"},
			[]string{"Analytics", "Strategy"}),
		{
			ID: 108, Title: "VISUAL STANDARDS", Category: CategoryBrandStandard,
			Pillar: "Operations", Tags: []string{"brand", "templates"},
			Status:  ProtocolStatusActive,
			Content: "## Template system\n\nTemplate A: large typography, solid dark background. Template B: image-heavy, elegant borders. Template C: data visualization, high contrast.",
			LinkedTaskTypes: []string{"Brand Design"},
			CreatedAt:       now, UpdatedAt: now,
		},
		{
			ID: 202, Title: "SHADOW AVATAR EXTRACTION", Category: CategoryAIPrompt,
			Pillar: "Psychological Warfare", Tags: []string{"avatar", "discovery"},
			Status:  ProtocolStatusActive,
			Content: "Analyze the following kickoff notes. Identify the shadow avatar and the bleeding neck.\n\nClient Niche: [[CLIENT NICHE]]\nTarget Audience: [[TARGET AUDIENCE]]\nClient Notes: [[KICKOFF NOTES]]",
			PromptTool:      "claude",
			PromptVariables: []string{"[[CLIENT NICHE]]", "[[TARGET AUDIENCE]]", "[[KICKOFF NOTES]]"},
			UsageNotes:      "Paste raw transcripts from the kickoff call into the notes variable.",
			LinkedTaskTypes: []string{"Strategy"},
			RelatedProtocolIDs: []int{105},
			CreatedAt:          now, UpdatedAt: now,
		},
		{
			ID: 204, Title: "CAPTION WRITING — HOOK FIRST", Category: CategoryAIPrompt,
			Pillar: "Viral Engine", Tags: []string{"caption", "copywriting"},
			Status:  ProtocolStatusActive,
			Content: "Write a caption using the HOOK → TENSION → VALUE → PROOF → CTA framework.\n\nTopic: [[CONTENT TOPIC]]\nTone: [[BRAND TONE]]\nAction: [[DESIRED ACTION]]",
			PromptTool:      "claude",
			PromptVariables: []string{"[[CONTENT TOPIC]]", "[[BRAND TONE]]", "[[DESIRED ACTION]]"},
			LinkedTaskTypes: []string{"Content Production"},
			RelatedProtocolIDs: []int{102},
			CreatedAt:          now, UpdatedAt: now,
		},
	}
}
