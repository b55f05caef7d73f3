package models

import "time"

// Snapshot is the single authoritative document holding every domain
// collection. Transitions take a snapshot and return a new one; the state
// container is the only component that replaces the current snapshot.
type Snapshot struct {
	Clients     []Client             `json:"clients"`
	Tasks       []Task               `json:"tasks"`
	Posts       []Post               `json:"posts"`
	Onboardings []OnboardingProtocol `json:"onboardings"`
	Protocols   []Protocol           `json:"protocols"`
	Settings    Settings             `json:"settings"`
}

// Settings carries workspace-level state persisted with the snapshot.
type Settings struct {
	CEOPhraseHash  string    `json:"ceoPhraseHash,omitempty"`
	TeamPhraseHash string    `json:"teamPhraseHash,omitempty"`
	Initialized    bool      `json:"initialized"`
	LastUpdated    time.Time `json:"lastUpdated,omitempty"`
}

// ClientIndex returns the index of the client with the given id, or -1.
func (s Snapshot) ClientIndex(id int) int {
	for i := range s.Clients {
		if s.Clients[i].ID == id {
			return i
		}
	}
	return -1
}

// TaskIndex returns the index of the task with the given id, or -1.
func (s Snapshot) TaskIndex(id int) int {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// PostIndex returns the index of the post with the given id, or -1.
func (s Snapshot) PostIndex(id int) int {
	for i := range s.Posts {
		if s.Posts[i].ID == id {
			return i
		}
	}
	return -1
}

// OnboardingIndex returns the index of the onboarding protocol with the
// given id, or -1.
func (s Snapshot) OnboardingIndex(id string) int {
	for i := range s.Onboardings {
		if s.Onboardings[i].ID == id {
			return i
		}
	}
	return -1
}

// ProtocolIndex returns the index of the knowledge entry with the given id,
// or -1.
func (s Snapshot) ProtocolIndex(id int) int {
	for i := range s.Protocols {
		if s.Protocols[i].ID == id {
			return i
		}
	}
	return -1
}

// DateOnly formats a timestamp the way timeline events and deadlines store
// dates.
func DateOnly(t time.Time) string {
	return t.Format("2006-01-02")
}
