// Package temporal implements the orchestration contract against a Temporal
// backend (local server or Temporal Cloud).
package temporal

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	sdktemporal "go.temporal.io/sdk/temporal"

	"newsgen/internal/orchestration"
	"newsgen/pkg/logx"
)

type Options struct {
	Address   string
	Namespace string

	// APIKey selects cloud mode: TLS plus static API-key credentials.
	// Empty means an unauthenticated local connection.
	APIKey string

	Log logx.Logger
}

// Client is a Temporal-backed orchestration session.
type Client struct {
	tc  client.Client
	log logx.Logger
}

var _ orchestration.Client = (*Client)(nil)

// Dial establishes the backend session. The returned client owns the
// connection; Close releases it.
func Dial(ctx context.Context, opts Options) (*Client, error) {
	co := client.Options{
		HostPort:  opts.Address,
		Namespace: opts.Namespace,
		Logger:    newLogAdapter(opts.Log),
	}
	if opts.APIKey != "" {
		co.ConnectionOptions = client.ConnectionOptions{TLS: &tls.Config{}}
		co.Credentials = client.NewAPIKeyStaticCredentials(opts.APIKey)
	}

	tc, err := client.DialContext(ctx, co)
	if err != nil {
		return nil, fmt.Errorf("temporal: connect %s: %w", opts.Address, err)
	}
	return &Client{tc: tc, log: opts.Log}, nil
}

func (c *Client) DescribeSchedule(ctx context.Context, id string) (*orchestration.ScheduleInfo, error) {
	desc, err := c.tc.ScheduleClient().GetHandle(ctx, id).Describe(ctx)
	if err != nil {
		return nil, mapScheduleErr(id, err)
	}

	info := &orchestration.ScheduleInfo{ID: id}
	if desc.Schedule.Spec != nil && len(desc.Schedule.Spec.CronExpressions) > 0 {
		info.Spec.Cron = desc.Schedule.Spec.CronExpressions[0]
	}
	if desc.Schedule.Policy != nil {
		info.Overlap = fromBackendOverlap(desc.Schedule.Policy.Overlap)
	}
	info.NextRuns = desc.Info.NextActionTimes
	return info, nil
}

func (c *Client) CreateSchedule(ctx context.Context, s orchestration.Schedule) error {
	_, err := c.tc.ScheduleClient().Create(ctx, client.ScheduleOptions{
		ID: s.ID,
		Spec: client.ScheduleSpec{
			CronExpressions: []string{s.Spec.Cron},
		},
		Action: &client.ScheduleWorkflowAction{
			Workflow:  s.Action.Workflow,
			Args:      []any{s.Action.Input},
			TaskQueue: s.Action.TaskQueue,
		},
		Overlap: toBackendOverlap(s.Overlap),
	})
	if err != nil {
		return mapScheduleErr(s.ID, err)
	}
	return nil
}

func (c *Client) Close() { c.tc.Close() }

// mapScheduleErr folds backend errors into the orchestration taxonomy.
// Anything unrecognized passes through wrapped, so callers can still
// distinguish absence from backend failure with errors.Is.
func mapScheduleErr(id string, err error) error {
	var notFound *serviceerror.NotFound
	if errors.As(err, &notFound) {
		return fmt.Errorf("schedule %q: %w", id, orchestration.ErrScheduleNotFound)
	}
	var exists *serviceerror.AlreadyExists
	if errors.As(err, &exists) || errors.Is(err, sdktemporal.ErrScheduleAlreadyRunning) {
		return fmt.Errorf("schedule %q: %w", id, orchestration.ErrScheduleExists)
	}
	return fmt.Errorf("schedule %q: backend: %w", id, err)
}

func toBackendOverlap(p orchestration.OverlapPolicy) enumspb.ScheduleOverlapPolicy {
	switch p {
	case orchestration.OverlapAllow:
		return enumspb.SCHEDULE_OVERLAP_POLICY_ALLOW_ALL
	default:
		return enumspb.SCHEDULE_OVERLAP_POLICY_SKIP
	}
}

func fromBackendOverlap(p enumspb.ScheduleOverlapPolicy) orchestration.OverlapPolicy {
	if p == enumspb.SCHEDULE_OVERLAP_POLICY_ALLOW_ALL {
		return orchestration.OverlapAllow
	}
	return orchestration.OverlapSkip
}

func toBackendReuse(p orchestration.IDReusePolicy) enumspb.WorkflowIdReusePolicy {
	if p == orchestration.ReuseRejectDuplicate {
		return enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE
	}
	return enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE
}
