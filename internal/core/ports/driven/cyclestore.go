package driven

import (
	"context"

	"github.com/ng-youn/runsheet/internal/core/domain"
)

// CycleStore persists sync cycle history for observability.
// It is never consulted for run deduplication.
type CycleStore interface {
	// RecordCycle logs a completed cycle's outcome.
	RecordCycle(ctx context.Context, result *domain.CycleResult) error

	// RecentCycles returns the most recent cycle results, ordered by
	// start time descending (most recent first).
	RecentCycles(ctx context.Context, limit int) ([]domain.CycleResult, error)

	// PruneCycles removes old results beyond the retention limit,
	// keeping the most recent 'keep' results.
	PruneCycles(ctx context.Context, keep int) error
}
