// The worker process binds the task queue to the news-creation workflow and
// its activity set, then serves dispatched work until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"

	"newsgen/internal/articles"
	"newsgen/internal/config"
	"newsgen/internal/dispatch"
	"newsgen/internal/llm"
	"newsgen/internal/newsflow"
	"newsgen/internal/orchestration/temporal"
	"newsgen/internal/search"
	"newsgen/internal/zep"
	"newsgen/pkg/logx"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()
	log := newLogger(cfg).With(logx.String("proc", "worker"))
	log.Info("starting", cfg.Fields()...)

	if missing := cfg.Validate(); len(missing) > 0 {
		for _, m := range missing {
			log.Error("missing required setting", logx.String("name", m))
		}
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	deps, cleanup, err := buildDeps(ctx, cfg, log)
	if err != nil {
		log.Error("collaborator setup failed", logx.Err(err))
		return 1
	}
	defer cleanup()

	client, err := temporal.Dial(ctx, temporal.Options{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		APIKey:    cfg.TemporalAPIKey,
		Log:       log,
	})
	if err != nil {
		log.Error("backend connection failed", logx.Err(err))
		return 1
	}
	defer client.Close()

	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)
	defer func() { _, _ = daemon.SdNotify(false, daemon.SdNotifyStopping) }()

	reg := newsflow.NewActivities(deps).Registration()
	if err := dispatch.Run(ctx, client, cfg.TaskQueue, reg, log); err != nil {
		log.Error("worker failed", logx.Err(err))
		return 1
	}

	log.Info("worker stopped by signal")
	return 0
}

// buildDeps wires the activity collaborators from configuration. The cleanup
// function releases whatever was opened, on every exit path.
func buildDeps(ctx context.Context, cfg config.Config, log logx.Logger) (newsflow.Deps, func(), error) {
	provider, err := cfg.AIProvider()
	if err != nil {
		return newsflow.Deps{}, nil, err
	}
	log.Info("ai provider selected",
		logx.String("provider", provider.Name),
		logx.String("model", provider.Model))

	model, err := llm.New(llm.Options{
		Provider: provider.Name,
		Model:    provider.Model,
		APIKey:   apiKeyFor(cfg, provider.Name),
	})
	if err != nil {
		return newsflow.Deps{}, nil, err
	}

	deps := newsflow.Deps{
		DataForSEO: search.NewDataForSEO(cfg.DataForSEOLogin, cfg.DataForSEOPassword),
		Serper:     search.NewSerper(cfg.SerperAPIKey),
		Assessor:   llm.NewAssessor(model),
		Prompts:    llm.NewPromptBuilder(model),
		Log:        log,
	}

	cleanup := func() {}
	if cfg.DatabaseURL != "" {
		store, err := articles.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return newsflow.Deps{}, nil, err
		}
		deps.Articles = store
		cleanup = store.Close
	} else {
		log.Warn("DATABASE_URL not set, recent-article context disabled")
	}

	if cfg.ZepAPIKey != "" {
		deps.Context = zep.New(cfg.ZepAPIKey)
	}

	return deps, cleanup, nil
}

func apiKeyFor(cfg config.Config, provider string) string {
	switch provider {
	case llm.ProviderAnthropic:
		return cfg.AnthropicAPIKey
	case llm.ProviderGoogle:
		return cfg.GoogleAPIKey
	default:
		return cfg.OpenAIAPIKey
	}
}

func newLogger(cfg config.Config) logx.Logger {
	if cfg.IsProduction() {
		return logx.NewJSON(cfg.LogLevel)
	}
	return logx.NewConsole(cfg.LogLevel)
}
