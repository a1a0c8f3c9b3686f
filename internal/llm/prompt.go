package llm

import (
	"context"
	"fmt"
	"strings"

	"newsgen/internal/newsflow"
)

// PromptBuilder turns an assessed news item plus context into a video
// generation prompt.
type PromptBuilder struct {
	c *Client
}

var _ newsflow.PromptBuilder = (*PromptBuilder)(nil)

func NewPromptBuilder(c *Client) *PromptBuilder { return &PromptBuilder{c: c} }

func (p *PromptBuilder) BuildVideoPrompt(ctx context.Context, req newsflow.PromptRequest) (string, error) {
	prompt, err := p.c.Complete(ctx, buildRequestText(req))
	if err != nil {
		return "", fmt.Errorf("prompt builder: %w", err)
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("prompt builder: empty prompt")
	}
	return prompt, nil
}

func buildRequestText(req newsflow.PromptRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a short video script prompt for the %q directory about this news item.\n\n", req.App)
	fmt.Fprintf(&b, "Title: %s\nSource: %s\nSummary: %s\n", req.Item.Item.Title, req.Item.Item.Source, req.Item.Item.Snippet)
	if req.Item.Reason != "" {
		fmt.Fprintf(&b, "Why it matters: %s\n", req.Item.Reason)
	}
	if req.GraphContext != "" {
		fmt.Fprintf(&b, "\nAudience context:\n%s\n", req.GraphContext)
	}
	if len(req.Recent) > 0 {
		b.WriteString("\nDo not repeat these recent articles:\n")
		for _, a := range req.Recent {
			fmt.Fprintf(&b, "- %s\n", a.Title)
		}
	}
	return b.String()
}
