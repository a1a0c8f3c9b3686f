// Package dispatch is the worker runtime: it binds one task queue to one
// workflow definition plus a fixed activity set, then runs the backend's
// dispatch loop until cancelled. Retry, acking and visibility are the
// backend client's concern; this layer only validates the binding and owns
// the process-level lifecycle.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"newsgen/internal/orchestration"
	"newsgen/pkg/logx"
)

// ValidateBinding fails fast on a binding the dispatch loop could never
// serve: empty queue, empty or unnamed handler set, duplicate identifiers,
// or an activity shadowing the workflow identifier.
func ValidateBinding(queue string, reg orchestration.Registration) error {
	if queue == "" {
		return errors.New("dispatch: queue name is empty")
	}
	if reg.Workflow.Name == "" || reg.Workflow.Handler == nil {
		return errors.New("dispatch: workflow definition is required")
	}
	if len(reg.Activities) == 0 {
		return errors.New("dispatch: activity handler set is empty")
	}

	seen := make(map[string]struct{}, len(reg.Activities)+1)
	seen[reg.Workflow.Name] = struct{}{}
	for _, a := range reg.Activities {
		if a.Name == "" {
			return errors.New("dispatch: activity with empty identifier")
		}
		if a.Handler == nil {
			return fmt.Errorf("dispatch: activity %q has no handler", a.Name)
		}
		if _, dup := seen[a.Name]; dup {
			return fmt.Errorf("dispatch: duplicate handler identifier %q", a.Name)
		}
		seen[a.Name] = struct{}{}
	}
	return nil
}

// Run establishes the queue binding and blocks in the dispatch loop until
// ctx is cancelled. On cancellation, in-flight handler invocations finish
// before Run returns (graceful drain, delegated to the client). A nil
// return means a clean stop.
func Run(ctx context.Context, client orchestration.Client, queue string, reg orchestration.Registration, log logx.Logger) error {
	if err := ValidateBinding(queue, reg); err != nil {
		return err
	}

	w, err := client.NewWorker(queue, reg)
	if err != nil {
		return fmt.Errorf("dispatch: bind queue %q: %w", queue, err)
	}

	log.Info("queue bound",
		logx.String("queue", queue),
		logx.String("workflow", reg.Workflow.Name),
		logx.Int("activities", len(reg.Activities)))

	return w.Run(ctx)
}
