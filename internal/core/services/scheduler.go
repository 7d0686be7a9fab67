package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ng-youn/runsheet/internal/core/domain"
	"github.com/ng-youn/runsheet/internal/core/ports/driven"
	"github.com/ng-youn/runsheet/internal/core/ports/driving"
	"github.com/ng-youn/runsheet/internal/logger"
)

// HistoryRetention is how many cycle results are kept after pruning.
const HistoryRetention = 100

// Scheduler fires a sync cycle on a fixed interval, forever.
//
// Cycles run synchronously on the scheduler goroutine, so a new tick
// can never overlap a cycle still in progress; ticks that elapse while
// a cycle runs are dropped. A failed cycle is logged and recorded, and
// the loop keeps waiting for the next tick. Only context cancellation
// stops the loop.
type Scheduler struct {
	interval time.Duration
	syncer   driving.SyncRunner
	store    driven.CycleStore
}

// NewScheduler creates a scheduler running syncer every interval.
// The store is optional; when nil, cycle history is not recorded.
func NewScheduler(interval time.Duration, syncer driving.SyncRunner, store driven.CycleStore) *Scheduler {
	return &Scheduler{
		interval: interval,
		syncer:   syncer,
		store:    store,
	}
}

// Start runs the scheduler loop. The first cycle fires one full
// interval after start. Start blocks until ctx is cancelled and then
// returns nil: interruption is the normal way to stop the loop.
func (s *Scheduler) Start(ctx context.Context) error {
	logger.Info("Scheduler started (interval %s)", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Scheduler stopped")
			return nil
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// RunNow executes one cycle outside the tick schedule, with the same
// error capture and bookkeeping. Used by the one-shot sync command.
func (s *Scheduler) RunNow(ctx context.Context) error {
	return s.runCycle(ctx)
}

// runCycle executes one cycle synchronously and records its outcome.
// Errors are captured here so the loop never dies with a cycle.
func (s *Scheduler) runCycle(ctx context.Context) error {
	result := &domain.CycleResult{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}
	logger.Info("Starting sync cycle %s", result.ID)

	status, err := s.syncer.SyncOnce(ctx)
	result.EndedAt = time.Now()
	result.RowsAppended = status.RowsAppended
	result.RunsSkipped = status.RunsSkipped

	if err != nil {
		result.Error = err.Error()
		logger.Error("Sync cycle %s failed: %v", result.ID, err)
	} else {
		result.Success = true
	}

	s.record(ctx, result)
	return err
}

func (s *Scheduler) record(ctx context.Context, result *domain.CycleResult) {
	if s.store == nil {
		return
	}
	if err := s.store.RecordCycle(ctx, result); err != nil {
		logger.Warn("Failed to record cycle result: %v", err)
		return
	}
	if err := s.store.PruneCycles(ctx, HistoryRetention); err != nil {
		logger.Warn("Failed to prune cycle history: %v", err)
	}
}
