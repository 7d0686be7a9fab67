package driven

import (
	"context"

	"github.com/ng-youn/runsheet/internal/core/domain"
)

// RunSource fetches experiment runs from the tracking service.
type RunSource interface {
	// Runs returns all runs under the given team/project scope.
	// Iteration order of the returned slice is the order rows are
	// appended in.
	Runs(ctx context.Context, scope domain.Scope) ([]domain.Run, error)
}
