// Package orchestration defines the contract this system depends on from the
// external durable-workflow backend: schedule lookup/creation and worker
// queue binding. The backend itself (persistence, dispatch transport, retry
// state) lives behind this contract and is never implemented here.
package orchestration

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrScheduleNotFound reports true absence of a schedule. Only this
	// error opens the create path in the registrar; any other lookup
	// failure is a backend error and must propagate.
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrScheduleExists reports that a schedule with the same ID is
	// already registered, including the case where a concurrent caller
	// created it between lookup and create.
	ErrScheduleExists = errors.New("schedule already exists")
)

// OverlapPolicy governs what happens when a schedule trigger fires while a
// previous triggered run is still active.
type OverlapPolicy int

const (
	// OverlapSkip drops the new firing. Two runs of the same schedule
	// never execute concurrently.
	OverlapSkip OverlapPolicy = iota
	// OverlapAllow starts the new run regardless.
	OverlapAllow
)

func (p OverlapPolicy) String() string {
	switch p {
	case OverlapSkip:
		return "skip"
	case OverlapAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// IDReusePolicy governs whether a triggered run may reuse the identifier of
// a prior completed run.
type IDReusePolicy int

const (
	ReuseAllowDuplicate IDReusePolicy = iota
	ReuseRejectDuplicate
)

// ScheduleSpec is the trigger specification.
// Cron is a standard 5-field expression evaluated in UTC.
type ScheduleSpec struct {
	Cron string
}

// ScheduleAction starts the named workflow with a single structured input
// payload on the target queue.
type ScheduleAction struct {
	Workflow  string
	Input     any
	TaskQueue string
	IDReuse   IDReusePolicy
}

// Schedule is a durable, backend-owned recurring trigger. It is created once
// by the registrar and never mutated or deleted by this system.
type Schedule struct {
	ID      string
	Spec    ScheduleSpec
	Action  ScheduleAction
	Overlap OverlapPolicy
}

// ScheduleInfo describes an existing schedule as reported by the backend.
type ScheduleInfo struct {
	ID       string
	Spec     ScheduleSpec
	Overlap  OverlapPolicy
	NextRuns []time.Time
}

// WorkflowRegistration binds a workflow identifier to its definition.
// Handler is the executable definition; its concrete type is interpreted by
// the Client implementation.
type WorkflowRegistration struct {
	Name    string
	Handler any
}

// ActivityRegistration binds an activity identifier to its handler.
type ActivityRegistration struct {
	Name    string
	Handler any
}

// Registration is the fixed startup-time registry a worker binds to a queue:
// exactly one workflow definition plus an enumerated set of activities.
// Dispatched units whose identifier has no entry here are a deployment bug,
// caught at startup rather than per-unit.
type Registration struct {
	Workflow   WorkflowRegistration
	Activities []ActivityRegistration
}

// Worker is a queue binding running an indefinite dispatch loop.
type Worker interface {
	// Run blocks until ctx is cancelled. On cancellation it stops
	// accepting new units, lets in-flight handler invocations finish,
	// and returns nil. Any other return is a startup or backend failure.
	Run(ctx context.Context) error
}

// Client is a session to the orchestration backend.
// Close must be invoked on every exit path of the owning process.
type Client interface {
	// DescribeSchedule fetches an existing schedule by ID.
	// Absence is reported as ErrScheduleNotFound.
	DescribeSchedule(ctx context.Context, id string) (*ScheduleInfo, error)

	// CreateSchedule registers a new schedule. Creation is conditional:
	// if a schedule with the same ID exists the backend rejects it with
	// ErrScheduleExists, never an upsert.
	CreateSchedule(ctx context.Context, s Schedule) error

	// NewWorker binds a queue name to the given registration.
	NewWorker(queue string, reg Registration) (Worker, error)

	Close()
}
