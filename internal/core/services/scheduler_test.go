package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ng-youn/runsheet/internal/core/domain"
	"github.com/ng-youn/runsheet/internal/core/ports/driving"
)

// --- Mock implementations for scheduler testing ---

type mockSyncRunner struct {
	mu      sync.Mutex
	calls   int
	active  int
	overlap bool
	delay   time.Duration
	err     error
	status  driving.CycleStatus
}

func (m *mockSyncRunner) SyncOnce(_ context.Context) (driving.CycleStatus, error) {
	m.mu.Lock()
	m.calls++
	m.active++
	if m.active > 1 {
		m.overlap = true
	}
	m.mu.Unlock()

	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	m.mu.Lock()
	m.active--
	m.mu.Unlock()
	return m.status, m.err
}

func (m *mockSyncRunner) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockCycleStore struct {
	mu      sync.Mutex
	results []domain.CycleResult
	pruned  int
}

func (m *mockCycleStore) RecordCycle(_ context.Context, result *domain.CycleResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, *result)
	return nil
}

func (m *mockCycleStore) RecentCycles(_ context.Context, limit int) ([]domain.CycleResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.results) > limit {
		return m.results[len(m.results)-limit:], nil
	}
	return m.results, nil
}

func (m *mockCycleStore) PruneCycles(_ context.Context, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruned++
	return nil
}

// --- Tests ---

func TestScheduler_RunsOnInterval(t *testing.T) {
	runner := &mockSyncRunner{}
	store := &mockCycleStore{}
	sched := NewScheduler(20*time.Millisecond, runner, store)

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()

	err := sched.Start(ctx)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, runner.callCount(), 2)
}

func TestScheduler_FirstCycleWaitsForInterval(t *testing.T) {
	runner := &mockSyncRunner{}
	sched := NewScheduler(time.Hour, runner, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := sched.Start(ctx)

	require.NoError(t, err)
	assert.Zero(t, runner.callCount())
}

func TestScheduler_CycleErrorDoesNotStopLoop(t *testing.T) {
	runner := &mockSyncRunner{err: errors.New("cycle failed")}
	store := &mockCycleStore{}
	sched := NewScheduler(20*time.Millisecond, runner, store)

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()

	err := sched.Start(ctx)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, runner.callCount(), 2, "loop should survive failing cycles")

	results, err := store.RecentCycles(context.Background(), 100)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.False(t, r.Success)
		assert.Contains(t, r.Error, "cycle failed")
	}
}

func TestScheduler_NoOverlappingCycles(t *testing.T) {
	// A cycle slower than the interval must block later ticks.
	runner := &mockSyncRunner{delay: 30 * time.Millisecond}
	sched := NewScheduler(10*time.Millisecond, runner, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	err := sched.Start(ctx)

	require.NoError(t, err)
	assert.False(t, runner.overlap, "cycles must never overlap")
}

func TestScheduler_RunNowRecordsResult(t *testing.T) {
	runner := &mockSyncRunner{status: driving.CycleStatus{RowsAppended: 3, RunsSkipped: 1}}
	store := &mockCycleStore{}
	sched := NewScheduler(time.Hour, runner, store)

	err := sched.RunNow(context.Background())

	require.NoError(t, err)
	results, err := store.RecentCycles(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Equal(t, 3, results[0].RowsAppended)
	assert.Equal(t, 1, results[0].RunsSkipped)
	assert.NotEmpty(t, results[0].ID)
	assert.Equal(t, 1, store.pruned)
}

func TestScheduler_RunNowReturnsCycleError(t *testing.T) {
	runner := &mockSyncRunner{err: errors.New("boom")}
	sched := NewScheduler(time.Hour, runner, nil)

	err := sched.RunNow(context.Background())

	require.Error(t, err)
}
