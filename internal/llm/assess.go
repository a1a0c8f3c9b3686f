package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"newsgen/internal/newsflow"
)

// Assessor scores news items for relevance with the completion client.
type Assessor struct {
	c *Client
}

var _ newsflow.Assessor = (*Assessor)(nil)

func NewAssessor(c *Client) *Assessor { return &Assessor{c: c} }

type scoredItem struct {
	Index  int     `json:"index"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

func (a *Assessor) AssessBatch(ctx context.Context, app string, items []newsflow.NewsItem) ([]newsflow.Assessment, error) {
	if len(items) == 0 {
		return nil, nil
	}

	reply, err := a.c.Complete(ctx, assessmentPrompt(app, items))
	if err != nil {
		return nil, fmt.Errorf("assess: %w", err)
	}

	scored, err := parseScores(reply)
	if err != nil {
		return nil, fmt.Errorf("assess: %w", err)
	}

	out := make([]newsflow.Assessment, 0, len(scored))
	for _, s := range scored {
		if s.Index < 0 || s.Index >= len(items) {
			continue
		}
		out = append(out, newsflow.Assessment{
			Item:           items[s.Index],
			RelevanceScore: clamp01(s.Score),
			Reason:         s.Reason,
		})
	}
	return out, nil
}

func assessmentPrompt(app string, items []newsflow.NewsItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Score each news item 0.0-1.0 for relevance to the %q directory audience.\n", app)
	b.WriteString("Reply with only a JSON array: [{\"index\":0,\"score\":0.8,\"reason\":\"...\"}].\n\n")
	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s — %s (%s)\n", i, it.Title, it.Snippet, it.Source)
	}
	return b.String()
}

// parseScores extracts the JSON array from the reply, tolerating prose or
// code fences around it.
func parseScores(reply string) ([]scoredItem, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in reply")
	}

	var scored []scoredItem
	if err := json.Unmarshal([]byte(reply[start:end+1]), &scored); err != nil {
		return nil, fmt.Errorf("parse scores: %w", err)
	}
	return scored, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
