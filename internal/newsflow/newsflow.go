// Package newsflow holds the news-creation workflow definition and its
// activity handlers. Handler identifiers are part of the queue contract
// between the registrar and the worker; the bodies delegate to narrow
// collaborator interfaces and carry no orchestration logic of their own.
package newsflow

import "time"

// WorkflowName identifies the workflow definition on the task queue.
const WorkflowName = "NewsCreationWorkflow"

// Activity identifiers. A dispatched unit is routed only to one of these or
// to the workflow definition; anything else is rejected at worker startup.
const (
	ActivityDataForSEOSearch = "dataforseo_news_search"
	ActivitySerperSearch     = "serper_news_search"
	ActivityAssessBatch      = "assess_news_batch"
	ActivityRecentArticles   = "get_recent_articles_from_neon"
	ActivityZepContext       = "query_zep_for_context"
	ActivityBuildPrompt      = "build_intelligent_video_prompt"
)

// WorkflowInput is the single structured payload a schedule stores in its
// action. It is copied unchanged into every triggered run.
type WorkflowInput struct {
	App                 string  `json:"app"`
	MinRelevanceScore   float64 `json:"min_relevance_score"`
	AutoCreateArticles  bool    `json:"auto_create_articles"`
	MaxArticlesToCreate int     `json:"max_articles_to_create"`
}

// DefaultInput returns the fixed defaults a new schedule is registered with.
func DefaultInput(app string) WorkflowInput {
	return WorkflowInput{
		App:                 app,
		MinRelevanceScore:   0.7,
		AutoCreateArticles:  true,
		MaxArticlesToCreate: 3,
	}
}

// NewsItem is one search hit from a news provider.
type NewsItem struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Snippet     string    `json:"snippet,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// Assessment is the relevance judgement for one news item.
type Assessment struct {
	Item           NewsItem `json:"item"`
	RelevanceScore float64  `json:"relevance_score"`
	Reason         string   `json:"reason,omitempty"`
}

// Article is a previously published article, used as dedup context.
type Article struct {
	ID        string    `json:"id"`
	App       string    `json:"app"`
	Title     string    `json:"title"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PromptRequest carries everything the prompt builder needs for one item.
type PromptRequest struct {
	App          string     `json:"app"`
	Item         Assessment `json:"item"`
	Recent       []Article  `json:"recent,omitempty"`
	GraphContext string     `json:"graph_context,omitempty"`
}

// Result summarizes one workflow run.
type Result struct {
	App      string   `json:"app"`
	Searched int      `json:"searched"`
	Assessed int      `json:"assessed"`
	Selected int      `json:"selected"`
	Prompts  []string `json:"prompts,omitempty"`
}
