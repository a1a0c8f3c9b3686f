package temporal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"newsgen/pkg/logx"
)

type stubLifecycle struct {
	mu       sync.Mutex
	started  bool
	stopped  bool
	startErr error

	// stopGate blocks Stop until released, standing in for in-flight
	// activity invocations being drained.
	stopGate chan struct{}
}

func (s *stubLifecycle) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
	return s.startErr
}

func (s *stubLifecycle) Stop() {
	if s.stopGate != nil {
		<-s.stopGate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

func TestQueueWorkerRunStopsAfterCancel(t *testing.T) {
	t.Parallel()
	stub := &stubLifecycle{stopGate: make(chan struct{})}
	qw := &queueWorker{w: stub, log: logx.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- qw.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	stub.mu.Lock()
	if !stub.started {
		stub.mu.Unlock()
		t.Fatal("worker not started")
	}
	if stub.stopped {
		stub.mu.Unlock()
		t.Fatal("worker stopped before cancellation")
	}
	stub.mu.Unlock()

	cancel()
	select {
	case <-done:
		t.Fatal("Run returned while drain was still in progress")
	case <-time.After(20 * time.Millisecond):
	}

	close(stub.stopGate)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after drain completed")
	}

	stub.mu.Lock()
	defer stub.mu.Unlock()
	if !stub.stopped {
		t.Fatal("worker never stopped")
	}
}

func TestQueueWorkerRunStartFailure(t *testing.T) {
	t.Parallel()
	startErr := errors.New("queue unreachable")
	qw := &queueWorker{w: &stubLifecycle{startErr: startErr}, log: logx.Nop()}

	if err := qw.Run(context.Background()); !errors.Is(err, startErr) {
		t.Fatalf("expected start error, got %v", err)
	}
}
