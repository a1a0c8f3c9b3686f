// Package zep queries the Zep knowledge graph for audience context.
package zep

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"newsgen/internal/newsflow"
)

const defaultBaseURL = "https://api.getzep.com"

// Client implements newsflow.ContextStore against the Zep graph API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

var _ newsflow.ContextStore = (*Client)(nil)

func New(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type searchRequest struct {
	GroupID string `json:"group_id"`
	Query   string `json:"query"`
	Limit   int    `json:"limit"`
}

type searchResponse struct {
	Edges []struct {
		Fact string `json:"fact"`
	} `json:"edges"`
}

// QueryContext searches the app's graph for facts related to the topic and
// returns them as one newline-joined block.
func (c *Client) QueryContext(ctx context.Context, app, topic string) (string, error) {
	body, err := json.Marshal(searchRequest{
		GroupID: "news-" + app,
		Query:   topic,
		Limit:   5,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v2/graph/search", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Api-Key "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("zep: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		// No graph for this app yet.
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("zep: status %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("zep: decode: %w", err)
	}

	facts := make([]string, 0, len(sr.Edges))
	for _, e := range sr.Edges {
		if e.Fact != "" {
			facts = append(facts, e.Fact)
		}
	}
	return strings.Join(facts, "\n"), nil
}
