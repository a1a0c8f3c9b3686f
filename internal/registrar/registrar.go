// Package registrar idempotently registers the recurring news-monitor
// schedules against the orchestration backend.
package registrar

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"

	"newsgen/internal/newsflow"
	"newsgen/internal/orchestration"
	"newsgen/pkg/logx"
)

// DefaultCron fires daily at 09:00 UTC.
const DefaultCron = "0 9 * * *"

const scheduleIDPrefix = "news-monitor-"

// ScheduleID derives the stable schedule key for an app.
func ScheduleID(app string) string { return scheduleIDPrefix + app }

// App is one logical application a schedule is registered for.
type App struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
}

// Outcome reports what EnsureSchedule did.
type Outcome int

const (
	// OutcomeCreated means a new schedule was registered.
	OutcomeCreated Outcome = iota
	// OutcomeExists means the schedule was already present; nothing was
	// touched. This is the expected result on every run after the first.
	OutcomeExists
)

func (o Outcome) String() string {
	if o == OutcomeExists {
		return "already exists"
	}
	return "created"
}

type Options struct {
	TaskQueue string

	// Cron overrides the trigger expression. Empty means DefaultCron.
	Cron string

	Log logx.Logger
}

// Registrar ensures schedules exist. It never mutates or deletes existing
// schedules; after creation the backend owns them entirely.
type Registrar struct {
	client orchestration.Client
	queue  string
	cron   string
	log    logx.Logger
}

// New validates the options, including parsing the cron expression with the
// standard 5-field parser, so a bad trigger fails before any backend call.
func New(client orchestration.Client, opts Options) (*Registrar, error) {
	if client == nil {
		return nil, errors.New("registrar: nil client")
	}
	if opts.TaskQueue == "" {
		return nil, errors.New("registrar: task queue is required")
	}

	spec := opts.Cron
	if spec == "" {
		spec = DefaultCron
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(spec); err != nil {
		return nil, fmt.Errorf("registrar: invalid cron %q: %w", spec, err)
	}

	return &Registrar{
		client: client,
		queue:  opts.TaskQueue,
		cron:   spec,
		log:    opts.Log,
	}, nil
}

// EnsureSchedule converges to exactly one schedule for the app:
// an existing schedule is left untouched, a missing one is created with the
// fixed defaults. Only a true not-found opens the create path; any other
// lookup failure propagates.
func (r *Registrar) EnsureSchedule(ctx context.Context, app App) (Outcome, error) {
	if app.Name == "" {
		return 0, errors.New("registrar: empty app name")
	}
	id := ScheduleID(app.Name)
	log := r.log.With(logx.String("schedule_id", id), logx.String("app", app.Name))

	_, err := r.client.DescribeSchedule(ctx, id)
	switch {
	case err == nil:
		log.Info("schedule already exists", logx.String("display_name", app.DisplayName))
		return OutcomeExists, nil
	case errors.Is(err, orchestration.ErrScheduleNotFound):
		// Create path below.
	default:
		return 0, fmt.Errorf("registrar: describe %s: %w", id, err)
	}

	log.Info("creating schedule",
		logx.String("display_name", app.DisplayName),
		logx.String("cron", r.cron))

	err = r.client.CreateSchedule(ctx, orchestration.Schedule{
		ID:   id,
		Spec: orchestration.ScheduleSpec{Cron: r.cron},
		Action: orchestration.ScheduleAction{
			Workflow:  newsflow.WorkflowName,
			Input:     newsflow.DefaultInput(app.Name),
			TaskQueue: r.queue,
			IDReuse:   orchestration.ReuseAllowDuplicate,
		},
		Overlap: orchestration.OverlapSkip,
	})
	if err != nil {
		// A concurrent creator winning the race surfaces here as
		// ErrScheduleExists; callers may treat that as benign.
		return 0, fmt.Errorf("registrar: create %s: %w", id, err)
	}

	log.Info("schedule created", logx.String("cron", r.cron))
	return OutcomeCreated, nil
}

// RegisterAll runs EnsureSchedule for each app in order, stopping at the
// first failure. Registrations are independent; sequencing is for
// predictable operator output, not correctness.
func (r *Registrar) RegisterAll(ctx context.Context, apps []App) error {
	for _, app := range apps {
		if _, err := r.EnsureSchedule(ctx, app); err != nil {
			return err
		}
	}
	return nil
}
