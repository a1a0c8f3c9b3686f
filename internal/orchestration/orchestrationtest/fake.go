// Package orchestrationtest provides an in-memory fake of the backend
// contract for package tests. It models only what the core depends on:
// conditional schedule creation, lookup, trigger firing with overlap
// policy, and queue binding.
package orchestrationtest

import (
	"context"
	"fmt"
	"sync"

	"newsgen/internal/orchestration"
)

// StartedRun is one materialized workflow run triggered from a schedule.
type StartedRun struct {
	ScheduleID string
	Workflow   string
	TaskQueue  string
	Input      any
}

// FakeClient is an in-memory orchestration.Client.
type FakeClient struct {
	mu        sync.Mutex
	schedules map[string]orchestration.Schedule
	active    map[string]int // schedule id -> in-flight runs
	runs      []StartedRun

	describeCalls map[string]int
	createCalls   map[string]int

	// Injected failures. DescribeErr replaces the not-found answer with a
	// backend failure; CreateErr fails every creation.
	DescribeErr error
	CreateErr   error

	Closed bool
}

var _ orchestration.Client = (*FakeClient)(nil)

func NewFakeClient() *FakeClient {
	return &FakeClient{
		schedules:     make(map[string]orchestration.Schedule),
		active:        make(map[string]int),
		describeCalls: make(map[string]int),
		createCalls:   make(map[string]int),
	}
}

func (f *FakeClient) DescribeSchedule(_ context.Context, id string) (*orchestration.ScheduleInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.describeCalls[id]++

	if f.DescribeErr != nil {
		return nil, f.DescribeErr
	}
	s, ok := f.schedules[id]
	if !ok {
		return nil, fmt.Errorf("schedule %q: %w", id, orchestration.ErrScheduleNotFound)
	}
	return &orchestration.ScheduleInfo{ID: s.ID, Spec: s.Spec, Overlap: s.Overlap}, nil
}

func (f *FakeClient) CreateSchedule(_ context.Context, s orchestration.Schedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls[s.ID]++

	if f.CreateErr != nil {
		return f.CreateErr
	}
	if _, exists := f.schedules[s.ID]; exists {
		return fmt.Errorf("schedule %q: %w", s.ID, orchestration.ErrScheduleExists)
	}
	f.schedules[s.ID] = s
	return nil
}

func (f *FakeClient) NewWorker(queue string, reg orchestration.Registration) (orchestration.Worker, error) {
	return &fakeWorker{}, nil
}

func (f *FakeClient) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
}

// Fire simulates the schedule's trigger firing. Under OverlapSkip a firing
// while a prior run is still active is dropped and Fire reports false.
func (f *FakeClient) Fire(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.schedules[id]
	if !ok {
		return false
	}
	if s.Overlap == orchestration.OverlapSkip && f.active[id] > 0 {
		return false
	}
	f.active[id]++
	f.runs = append(f.runs, StartedRun{
		ScheduleID: id,
		Workflow:   s.Action.Workflow,
		TaskQueue:  s.Action.TaskQueue,
		Input:      s.Action.Input,
	})
	return true
}

// FinishRun completes one in-flight run of the schedule.
func (f *FakeClient) FinishRun(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active[id] > 0 {
		f.active[id]--
	}
}

func (f *FakeClient) ActiveRuns(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active[id]
}

func (f *FakeClient) Runs() []StartedRun {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]StartedRun(nil), f.runs...)
}

func (f *FakeClient) Schedule(id string) (orchestration.Schedule, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.schedules[id]
	return s, ok
}

func (f *FakeClient) ScheduleCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.schedules)
}

func (f *FakeClient) DescribeCalls(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.describeCalls[id]
}

func (f *FakeClient) CreateCalls(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls[id]
}

// Seed installs a schedule without going through CreateSchedule bookkeeping.
func (f *FakeClient) Seed(s orchestration.Schedule) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.schedules[s.ID] = s
}

type fakeWorker struct{}

func (w *fakeWorker) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}
