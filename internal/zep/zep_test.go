package zep

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQueryContextJoinsFacts(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Api-Key key" {
			t.Errorf("auth header = %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"edges":[{"fact":"LPs favor specialist agents"},{"fact":""},{"fact":"Fundraising slowed in Q2"}]}`))
	}))
	defer srv.Close()

	c := New("key")
	c.baseURL = srv.URL

	got, err := c.QueryContext(context.Background(), "placement", "fundraising")
	if err != nil {
		t.Fatalf("QueryContext: %v", err)
	}
	want := "LPs favor specialist agents\nFundraising slowed in Q2"
	if got != want {
		t.Fatalf("QueryContext = %q, want %q", got, want)
	}
}

func TestQueryContextNoGraphYet(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New("key")
	c.baseURL = srv.URL

	got, err := c.QueryContext(context.Background(), "relocation", "visas")
	if err != nil {
		t.Fatalf("QueryContext: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty context, got %q", got)
	}
}
