// The scheduler process ensures the recurring news-monitor schedules exist
// on the orchestration backend, then exits. Safe to run on every deploy.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"newsgen/internal/config"
	"newsgen/internal/orchestration"
	"newsgen/internal/orchestration/temporal"
	"newsgen/internal/registrar"
	"newsgen/pkg/logx"
)

func main() {
	os.Exit(run())
}

func run() int {
	var appsPath string
	flag.StringVar(&appsPath, "apps", "", "path to an apps manifest yaml (default: built-in app list)")
	flag.Parse()

	cfg := config.Load()
	log := newLogger(cfg).With(logx.String("proc", "scheduler"))
	log.Info("starting", cfg.Fields()...)

	if missing := cfg.Validate(); len(missing) > 0 {
		for _, m := range missing {
			log.Error("missing required setting", logx.String("name", m))
		}
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	apps := registrar.DefaultApps()
	if appsPath != "" {
		var err error
		if apps, err = registrar.LoadApps(appsPath); err != nil {
			log.Error("load apps manifest", logx.Err(err))
			return 1
		}
	}

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

	reg, err := registrar.New(client, registrar.Options{
		TaskQueue: cfg.TaskQueue,
		Log:       log,
	})
	if err != nil {
		log.Error("registrar setup failed", logx.Err(err))
		return 1
	}

	if err := reg.RegisterAll(ctx, apps); err != nil {
		if errors.Is(err, orchestration.ErrScheduleExists) {
			// Lost a create race to a concurrent deploy; the schedule
			// exists either way.
			log.Warn("schedule created concurrently elsewhere", logx.Err(err))
		}
		log.Error("schedule registration failed", logx.Err(err))
		return 1
	}

	log.Info("all schedules initialized", logx.Int("apps", len(apps)))
	return 0
}

func newLogger(cfg config.Config) logx.Logger {
	if cfg.IsProduction() {
		return logx.NewJSON(cfg.LogLevel)
	}
	return logx.NewConsole(cfg.LogLevel)
}
