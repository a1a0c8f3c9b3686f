package newsflow

import (
	"context"
	"fmt"

	"newsgen/pkg/logx"
)

// Collaborator interfaces. Implementations live at the edges (HTTP clients,
// Postgres store); activities only route to them.

type NewsSearcher interface {
	SearchNews(ctx context.Context, app string) ([]NewsItem, error)
}

type Assessor interface {
	AssessBatch(ctx context.Context, app string, items []NewsItem) ([]Assessment, error)
}

type ArticleStore interface {
	RecentArticles(ctx context.Context, app string, limit int) ([]Article, error)
}

type ContextStore interface {
	QueryContext(ctx context.Context, app, topic string) (string, error)
}

type PromptBuilder interface {
	BuildVideoPrompt(ctx context.Context, req PromptRequest) (string, error)
}

// Deps wires the collaborators into the activity set. Articles and Context
// are optional; their activities degrade to empty results when unset.
type Deps struct {
	DataForSEO NewsSearcher
	Serper     NewsSearcher
	Assessor   Assessor
	Articles   ArticleStore
	Context    ContextStore
	Prompts    PromptBuilder

	Log logx.Logger
}

// Activities is the fixed set of side-effect handlers registered on the
// queue. One method per activity identifier.
type Activities struct {
	deps Deps
}

func NewActivities(deps Deps) *Activities {
	return &Activities{deps: deps}
}

func (a *Activities) DataForSEONewsSearch(ctx context.Context, app string) ([]NewsItem, error) {
	if a.deps.DataForSEO == nil {
		return nil, fmt.Errorf("%s: searcher not configured", ActivityDataForSEOSearch)
	}
	return a.deps.DataForSEO.SearchNews(ctx, app)
}

func (a *Activities) SerperNewsSearch(ctx context.Context, app string) ([]NewsItem, error) {
	if a.deps.Serper == nil {
		return nil, fmt.Errorf("%s: searcher not configured", ActivitySerperSearch)
	}
	return a.deps.Serper.SearchNews(ctx, app)
}

func (a *Activities) AssessNewsBatch(ctx context.Context, input AssessBatchInput) ([]Assessment, error) {
	if a.deps.Assessor == nil {
		return nil, fmt.Errorf("%s: assessor not configured", ActivityAssessBatch)
	}
	return a.deps.Assessor.AssessBatch(ctx, input.App, input.Items)
}

func (a *Activities) RecentArticlesFromNeon(ctx context.Context, input RecentArticlesInput) ([]Article, error) {
	if a.deps.Articles == nil {
		a.deps.Log.Debug("article store not configured, returning no history",
			logx.String("app", input.App))
		return nil, nil
	}
	return a.deps.Articles.RecentArticles(ctx, input.App, input.Limit)
}

func (a *Activities) QueryZepForContext(ctx context.Context, input ZepQueryInput) (string, error) {
	if a.deps.Context == nil {
		return "", nil
	}
	return a.deps.Context.QueryContext(ctx, input.App, input.Topic)
}

func (a *Activities) BuildIntelligentVideoPrompt(ctx context.Context, req PromptRequest) (string, error) {
	if a.deps.Prompts == nil {
		return "", fmt.Errorf("%s: prompt builder not configured", ActivityBuildPrompt)
	}
	return a.deps.Prompts.BuildVideoPrompt(ctx, req)
}

// Activity argument types. Single-struct args keep the wire shape stable
// when fields are added.

type AssessBatchInput struct {
	App   string     `json:"app"`
	Items []NewsItem `json:"items"`
}

type RecentArticlesInput struct {
	App   string `json:"app"`
	Limit int    `json:"limit"`
}

type ZepQueryInput struct {
	App   string `json:"app"`
	Topic string `json:"topic"`
}
