package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"newsgen/internal/newsflow"
)

func TestNewRejectsUnknownProvider(t *testing.T) {
	t.Parallel()
	if _, err := New(Options{Provider: "mistral", APIKey: "k"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if _, err := New(Options{Provider: ProviderOpenAI}); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestCompleteAnthropic(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "key" || r.Header.Get("anthropic-version") == "" {
			t.Errorf("anthropic headers not set")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"hello"}]}`))
	}))
	defer srv.Close()

	c, err := New(Options{Provider: ProviderAnthropic, Model: "claude-3-5-haiku-20241022", APIKey: "key", RequestsPerSecond: 100})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.baseURL = srv.URL

	got, err := c.Complete(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "hello" {
		t.Fatalf("Complete = %q", got)
	}
}

func TestCompleteOpenAIErrorStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := New(Options{Provider: ProviderOpenAI, Model: "gpt-4o-mini", APIKey: "key", RequestsPerSecond: 100})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.baseURL = srv.URL

	if _, err := c.Complete(context.Background(), "hi"); err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestParseScores(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		reply string
		want  int
	}{
		{"bare array", `[{"index":0,"score":0.9,"reason":"r"}]`, 1},
		{"fenced", "Here you go:\n```json\n[{\"index\":0,\"score\":0.5},{\"index\":1,\"score\":0.8}]\n```", 2},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseScores(tt.reply)
			if err != nil {
				t.Fatalf("parseScores: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("parsed %d items, want %d", len(got), tt.want)
			}
		})
	}

	if _, err := parseScores("no json here"); err == nil {
		t.Fatal("expected error for missing array")
	}
}

func TestAssessBatchMapsScores(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"[{\"index\":1,\"score\":1.4,\"reason\":\"big\"},{\"index\":7,\"score\":0.5}]"}]}`))
	}))
	defer srv.Close()

	c, err := New(Options{Provider: ProviderAnthropic, Model: "m", APIKey: "k", RequestsPerSecond: 100})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.baseURL = srv.URL

	items := []newsflow.NewsItem{{Title: "a"}, {Title: "b"}}
	got, err := NewAssessor(c).AssessBatch(context.Background(), "placement", items)
	if err != nil {
		t.Fatalf("AssessBatch: %v", err)
	}
	// Index 7 is out of range and dropped; score clamps to 1.
	if len(got) != 1 || got[0].Item.Title != "b" || got[0].RelevanceScore != 1 {
		t.Fatalf("unexpected assessments: %+v", got)
	}
}
