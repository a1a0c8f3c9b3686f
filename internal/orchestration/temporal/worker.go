package temporal

import (
	"context"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"
	sdkworker "go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"newsgen/internal/orchestration"
	"newsgen/pkg/logx"
)

// drainTimeout bounds how long Stop waits for in-flight activity
// invocations after cancellation.
const drainTimeout = time.Minute

// NewWorker binds the queue to the registration. Registration happens here,
// before the dispatch loop starts, so an unknown handler type fails at
// startup rather than at dispatch time.
func (c *Client) NewWorker(queue string, reg orchestration.Registration) (orchestration.Worker, error) {
	w := sdkworker.New(c.tc, queue, sdkworker.Options{
		WorkerStopTimeout: drainTimeout,
	})

	w.RegisterWorkflowWithOptions(reg.Workflow.Handler, workflow.RegisterOptions{
		Name: reg.Workflow.Name,
	})
	for _, a := range reg.Activities {
		w.RegisterActivityWithOptions(a.Handler, activity.RegisterOptions{
			Name: a.Name,
		})
	}

	return &queueWorker{
		w:   w,
		log: c.log.With(logx.String("queue", queue)),
	}, nil
}

// startStopper is the slice of sdkworker.Worker the lifecycle needs.
type startStopper interface {
	Start() error
	Stop()
}

type queueWorker struct {
	w   startStopper
	log logx.Logger
}

// Run starts the dispatch loop and blocks until ctx is cancelled. Stop lets
// in-flight handler invocations finish before returning.
func (qw *queueWorker) Run(ctx context.Context) error {
	if err := qw.w.Start(); err != nil {
		return fmt.Errorf("temporal: start worker: %w", err)
	}
	qw.log.Info("worker started")

	<-ctx.Done()

	qw.log.Info("worker draining", logx.Duration("timeout", drainTimeout))
	qw.w.Stop()
	qw.log.Info("worker stopped")
	return nil
}
