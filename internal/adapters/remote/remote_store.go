// Package remote fetches the shared workspace document over HTTP. The
// remote is strictly best-effort: the dashboard must come up from local
// state whenever the endpoint is missing, slow, or serving garbage.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/example/agencyos/internal/ports/secondary"
)

const fetchTimeout = 5 * time.Second

// Store implements secondary.RemoteStore against a JSON endpoint.
type Store struct {
	url    string
	apiKey string
	client *http.Client
}

// NewStore creates a remote store. An empty URL disables fetching entirely.
func NewStore(url, apiKey string) *Store {
	return &Store{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: fetchTimeout},
	}
}

var _ secondary.RemoteStore = (*Store)(nil)

// Fetch retrieves the remote payload. Every failure mode returns (nil, err)
// so the caller falls back to local state; a missing configuration returns
// (nil, nil).
func (s *Store) Fetch(ctx context.Context) (*secondary.RemotePayload, error) {
	if s.url == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build remote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("apikey", s.apiKey)
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remote workspace: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote workspace returned status %d", resp.StatusCode)
	}

	var payload secondary.RemotePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode remote workspace: %w", err)
	}
	return &payload, nil
}
