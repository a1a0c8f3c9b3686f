// Package search holds the news-search collaborators. Each client is a thin
// wrapper over one provider endpoint; result ranking and relevance live
// elsewhere.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"newsgen/internal/newsflow"
)

const serperEndpoint = "https://google.serper.dev/news"

// queryForApp builds the provider query for an app's news scan.
func queryForApp(app string) string {
	switch app {
	case "placement":
		return "placement agents private equity news"
	case "relocation":
		return "global relocation industry news"
	default:
		return app + " industry news"
	}
}

// Serper queries the Serper news endpoint.
type Serper struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

func NewSerper(apiKey string) *Serper {
	return &Serper{
		apiKey:   apiKey,
		endpoint: serperEndpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type serperResponse struct {
	News []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
		Source  string `json:"source"`
	} `json:"news"`
}

func (s *Serper) SearchNews(ctx context.Context, app string) ([]newsflow.NewsItem, error) {
	body, err := json.Marshal(serperRequest{Q: queryForApp(app), Num: 20})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper: status %d", resp.StatusCode)
	}

	var sr serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("serper: decode: %w", err)
	}

	items := make([]newsflow.NewsItem, 0, len(sr.News))
	for _, n := range sr.News {
		items = append(items, newsflow.NewsItem{
			Title:   n.Title,
			URL:     n.Link,
			Source:  n.Source,
			Snippet: n.Snippet,
		})
	}
	return items, nil
}
