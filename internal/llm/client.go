// Package llm is a minimal chat-completion client for the three supported
// AI providers. It exposes a single Complete operation; which provider
// serves it is decided once at startup from configuration.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
	ProviderOpenAI    = "openai"
)

type Options struct {
	Provider string
	Model    string
	APIKey   string

	// RequestsPerSecond paces outgoing calls. Zero means the default of
	// one request per second.
	RequestsPerSecond float64
}

// Client issues completion requests to one provider.
type Client struct {
	provider string
	model    string
	apiKey   string
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
}

func New(opts Options) (*Client, error) {
	var base string
	switch opts.Provider {
	case ProviderAnthropic:
		base = "https://api.anthropic.com"
	case ProviderGoogle:
		base = "https://generativelanguage.googleapis.com"
	case ProviderOpenAI:
		base = "https://api.openai.com"
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", opts.Provider)
	}
	if opts.APIKey == "" {
		return nil, fmt.Errorf("llm: %s: missing API key", opts.Provider)
	}

	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Client{
		provider: opts.Provider,
		model:    opts.Model,
		apiKey:   opts.APIKey,
		baseURL:  base,
		http:     &http.Client{Timeout: 90 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(rps), 2),
	}, nil
}

func (c *Client) Provider() string { return c.provider }

// Complete sends one user prompt and returns the text of the first reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	switch c.provider {
	case ProviderAnthropic:
		return c.completeAnthropic(ctx, prompt)
	case ProviderGoogle:
		return c.completeGoogle(ctx, prompt)
	default:
		return c.completeOpenAI(ctx, prompt)
	}
}

func (c *Client) completeAnthropic(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model":      c.model,
		"max_tokens": 1024,
		"messages":   []map[string]string{{"role": "user", "content": prompt}},
	}
	var out struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	err := c.post(ctx, "/v1/messages", map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": "2023-06-01",
	}, body, &out)
	if err != nil {
		return "", err
	}
	for _, part := range out.Content {
		if part.Type == "text" {
			return part.Text, nil
		}
	}
	return "", fmt.Errorf("llm: anthropic: empty response")
}

func (c *Client) completeOpenAI(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model":    c.model,
		"messages": []map[string]string{{"role": "user", "content": prompt}},
	}
	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	err := c.post(ctx, "/v1/chat/completions", map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, body, &out)
	if err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("llm: openai: empty response")
	}
	return out.Choices[0].Message.Content, nil
}

func (c *Client) completeGoogle(ctx context.Context, prompt string) (string, error) {
	path := fmt.Sprintf("/v1beta/models/%s:generateContent?key=%s", c.model, c.apiKey)
	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := c.post(ctx, path, nil, body, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("llm: google: empty response")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

func (c *Client) post(ctx context.Context, path string, headers map[string]string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("llm: %s: %w", c.provider, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("llm: %s: status %d: %s", c.provider, resp.StatusCode, msg)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
