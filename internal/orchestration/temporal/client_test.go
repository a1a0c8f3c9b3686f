package temporal

import (
	"errors"
	"fmt"
	"testing"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	sdktemporal "go.temporal.io/sdk/temporal"

	"newsgen/internal/orchestration"
)

func TestMapScheduleErr(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"not found", serviceerror.NewNotFound("no schedule"), orchestration.ErrScheduleNotFound},
		{"already exists", serviceerror.NewAlreadyExist("dup"), orchestration.ErrScheduleExists},
		{"sdk already registered", sdktemporal.ErrScheduleAlreadyRunning, orchestration.ErrScheduleExists},
		{"wrapped not found", fmt.Errorf("rpc: %w", serviceerror.NewNotFound("gone")), orchestration.ErrScheduleNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := mapScheduleErr("news-monitor-placement", tt.in)
			if !errors.Is(got, tt.want) {
				t.Fatalf("mapScheduleErr(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMapScheduleErrBackendFailurePropagates(t *testing.T) {
	t.Parallel()
	base := errors.New("connection reset")
	got := mapScheduleErr("news-monitor-placement", base)
	if errors.Is(got, orchestration.ErrScheduleNotFound) || errors.Is(got, orchestration.ErrScheduleExists) {
		t.Fatalf("backend failure must not be folded into absence/existence: %v", got)
	}
	if !errors.Is(got, base) {
		t.Fatalf("original cause lost: %v", got)
	}
}

func TestOverlapMappingRoundTrip(t *testing.T) {
	t.Parallel()
	if toBackendOverlap(orchestration.OverlapSkip) != enumspb.SCHEDULE_OVERLAP_POLICY_SKIP {
		t.Fatal("skip must map to SKIP")
	}
	if toBackendOverlap(orchestration.OverlapAllow) != enumspb.SCHEDULE_OVERLAP_POLICY_ALLOW_ALL {
		t.Fatal("allow must map to ALLOW_ALL")
	}
	for _, p := range []orchestration.OverlapPolicy{orchestration.OverlapSkip, orchestration.OverlapAllow} {
		if fromBackendOverlap(toBackendOverlap(p)) != p {
			t.Fatalf("round trip lost policy %v", p)
		}
	}
}

func TestReuseMapping(t *testing.T) {
	t.Parallel()
	if toBackendReuse(orchestration.ReuseAllowDuplicate) != enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE {
		t.Fatal("allow-duplicate mapping broken")
	}
	if toBackendReuse(orchestration.ReuseRejectDuplicate) != enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE {
		t.Fatal("reject-duplicate mapping broken")
	}
}
