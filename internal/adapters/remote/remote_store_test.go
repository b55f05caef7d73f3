package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetch(t *testing.T) {
	t.Run("decodes a valid payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("apikey"); got != "secret" {
				t.Errorf("apikey header = %q, want secret", got)
			}
			w.Write([]byte(`{"clients":[{"id":1,"name":"Acme"}]}`))
		}))
		defer srv.Close()

		payload, err := NewStore(srv.URL, "secret").Fetch(context.Background())
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if payload == nil || len(payload.Clients) != 1 || payload.Clients[0].Name != "Acme" {
			t.Errorf("payload = %+v", payload)
		}
		if payload.Tasks != nil {
			t.Error("absent collections must stay nil")
		}
	})

	t.Run("empty url is disabled", func(t *testing.T) {
		payload, err := NewStore("", "").Fetch(context.Background())
		if payload != nil || err != nil {
			t.Errorf("got %+v, %v, want nil, nil", payload, err)
		}
	})

	t.Run("non-200 fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		if _, err := NewStore(srv.URL, "").Fetch(context.Background()); err == nil {
			t.Error("expected error for server failure")
		}
	})

	t.Run("bad json fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		if _, err := NewStore(srv.URL, "").Fetch(context.Background()); err == nil {
			t.Error("expected error for undecodable body")
		}
	})

	t.Run("unreachable host fails", func(t *testing.T) {
		if _, err := NewStore("http://127.0.0.1:1", "").Fetch(context.Background()); err == nil {
			t.Error("expected error for unreachable host")
		}
	})
}
