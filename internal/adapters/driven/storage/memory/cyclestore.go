// Package memory provides in-memory store implementations, used when no
// data directory is available and in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ng-youn/runsheet/internal/core/domain"
	"github.com/ng-youn/runsheet/internal/core/ports/driven"
)

// Ensure CycleStore implements the interface.
var _ driven.CycleStore = (*CycleStore)(nil)

// CycleStore is an in-memory implementation of driven.CycleStore.
// History is lost on process exit.
type CycleStore struct {
	mu     sync.RWMutex
	cycles []domain.CycleResult
}

// NewCycleStore creates a new in-memory cycle store.
func NewCycleStore() *CycleStore {
	return &CycleStore{}
}

// RecordCycle logs a completed cycle's outcome.
func (s *CycleStore) RecordCycle(_ context.Context, result *domain.CycleResult) error {
	if result == nil || result.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycles = append(s.cycles, *result)
	return nil
}

// RecentCycles returns the most recent cycle results, newest first.
func (s *CycleStore) RecentCycles(_ context.Context, limit int) ([]domain.CycleResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]domain.CycleResult, len(s.cycles))
	copy(sorted, s.cycles)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartedAt.After(sorted[j].StartedAt)
	})

	if limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// PruneCycles removes old results beyond the retention limit.
func (s *CycleStore) PruneCycles(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep >= len(s.cycles) {
		return nil
	}

	sort.Slice(s.cycles, func(i, j int) bool {
		return s.cycles[i].StartedAt.After(s.cycles[j].StartedAt)
	})
	s.cycles = s.cycles[:keep]
	return nil
}
