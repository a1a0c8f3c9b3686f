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

const dataForSEOEndpoint = "https://api.dataforseo.com/v3/serp/google/news/live/advanced"

// DataForSEO queries the DataForSEO Google News SERP endpoint.
type DataForSEO struct {
	login    string
	password string
	endpoint string
	http     *http.Client
}

func NewDataForSEO(login, password string) *DataForSEO {
	return &DataForSEO{
		login:    login,
		password: password,
		endpoint: dataForSEOEndpoint,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

type dataForSEOTask struct {
	Keyword      string `json:"keyword"`
	LanguageCode string `json:"language_code"`
	LocationCode int    `json:"location_code"`
	Depth        int    `json:"depth"`
}

type dataForSEOResponse struct {
	Tasks []struct {
		Result []struct {
			Items []struct {
				Type    string `json:"type"`
				Title   string `json:"title"`
				URL     string `json:"url"`
				Domain  string `json:"domain"`
				Snippet string `json:"snippet"`
			} `json:"items"`
		} `json:"result"`
	} `json:"tasks"`
}

func (d *DataForSEO) SearchNews(ctx context.Context, app string) ([]newsflow.NewsItem, error) {
	body, err := json.Marshal([]dataForSEOTask{{
		Keyword:      queryForApp(app),
		LanguageCode: "en",
		LocationCode: 2840, // United States
		Depth:        20,
	}})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(d.login, d.password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dataforseo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dataforseo: status %d", resp.StatusCode)
	}

	var dr dataForSEOResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("dataforseo: decode: %w", err)
	}

	var items []newsflow.NewsItem
	for _, task := range dr.Tasks {
		for _, res := range task.Result {
			for _, it := range res.Items {
				if it.Type != "news_search" {
					continue
				}
				items = append(items, newsflow.NewsItem{
					Title:   it.Title,
					URL:     it.URL,
					Source:  it.Domain,
					Snippet: it.Snippet,
				})
			}
		}
	}
	return items, nil
}
