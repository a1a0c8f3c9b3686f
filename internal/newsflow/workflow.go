package newsflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"newsgen/internal/orchestration"
)

// Definition is the news-creation workflow body. It only sequences activity
// dispatches by identifier; retry, persistence and replay are owned by the
// backend.
func Definition(ctx workflow.Context, input WorkflowInput) (*Result, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("news creation run starting", "app", input.App)

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: time.Second,
			MaximumAttempts: 3,
		},
	})

	res := &Result{App: input.App}

	// News research: both providers, merged and deduplicated by URL.
	var dfs, serper []NewsItem
	if err := workflow.ExecuteActivity(ctx, ActivityDataForSEOSearch, input.App).Get(ctx, &dfs); err != nil {
		return nil, err
	}
	if err := workflow.ExecuteActivity(ctx, ActivitySerperSearch, input.App).Get(ctx, &serper); err != nil {
		return nil, err
	}
	items := dedupeByURL(append(dfs, serper...))
	res.Searched = len(items)
	if len(items) == 0 {
		logger.Info("no news found", "app", input.App)
		return res, nil
	}

	var assessed []Assessment
	err := workflow.ExecuteActivity(ctx, ActivityAssessBatch, AssessBatchInput{
		App:   input.App,
		Items: items,
	}).Get(ctx, &assessed)
	if err != nil {
		return nil, err
	}
	res.Assessed = len(assessed)

	selected := selectRelevant(assessed, input.MinRelevanceScore, input.MaxArticlesToCreate)
	res.Selected = len(selected)
	if !input.AutoCreateArticles || len(selected) == 0 {
		return res, nil
	}

	// Context for the prompt builder: prior articles plus graph memory.
	var recent []Article
	err = workflow.ExecuteActivity(ctx, ActivityRecentArticles, RecentArticlesInput{
		App:   input.App,
		Limit: 20,
	}).Get(ctx, &recent)
	if err != nil {
		return nil, err
	}

	for _, sel := range selected {
		var graphCtx string
		err = workflow.ExecuteActivity(ctx, ActivityZepContext, ZepQueryInput{
			App:   input.App,
			Topic: sel.Item.Title,
		}).Get(ctx, &graphCtx)
		if err != nil {
			return nil, err
		}

		var prompt string
		err = workflow.ExecuteActivity(ctx, ActivityBuildPrompt, PromptRequest{
			App:          input.App,
			Item:         sel,
			Recent:       recent,
			GraphContext: graphCtx,
		}).Get(ctx, &prompt)
		if err != nil {
			return nil, err
		}
		res.Prompts = append(res.Prompts, prompt)
	}

	logger.Info("news creation run finished",
		"app", input.App, "searched", res.Searched, "selected", res.Selected)
	return res, nil
}

func dedupeByURL(items []NewsItem) []NewsItem {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		if it.URL == "" {
			out = append(out, it)
			continue
		}
		if _, dup := seen[it.URL]; dup {
			continue
		}
		seen[it.URL] = struct{}{}
		out = append(out, it)
	}
	return out
}

func selectRelevant(assessed []Assessment, minScore float64, max int) []Assessment {
	var out []Assessment
	for _, a := range assessed {
		if a.RelevanceScore < minScore {
			continue
		}
		out = append(out, a)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

// Registration binds the workflow definition and the full activity set for
// one queue. This is the only place handler identifiers meet handlers.
func (a *Activities) Registration() orchestration.Registration {
	return orchestration.Registration{
		Workflow: orchestration.WorkflowRegistration{
			Name:    WorkflowName,
			Handler: Definition,
		},
		Activities: []orchestration.ActivityRegistration{
			{Name: ActivityDataForSEOSearch, Handler: a.DataForSEONewsSearch},
			{Name: ActivitySerperSearch, Handler: a.SerperNewsSearch},
			{Name: ActivityAssessBatch, Handler: a.AssessNewsBatch},
			{Name: ActivityRecentArticles, Handler: a.RecentArticlesFromNeon},
			{Name: ActivityZepContext, Handler: a.QueryZepForContext},
			{Name: ActivityBuildPrompt, Handler: a.BuildIntelligentVideoPrompt},
		},
	}
}
