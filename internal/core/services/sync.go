package services

import (
	"context"
	"fmt"

	"github.com/ng-youn/runsheet/internal/core/domain"
	"github.com/ng-youn/runsheet/internal/core/ports/driven"
	"github.com/ng-youn/runsheet/internal/core/ports/driving"
	"github.com/ng-youn/runsheet/internal/logger"
)

// Ensure Syncer implements the interface.
var _ driving.SyncRunner = (*Syncer)(nil)

// Syncer runs the fetch→diff→build→write pipeline against one
// worksheet. The worksheet handle and run source are held for the
// process lifetime and reused across cycles; cycles themselves carry
// no state, the dedup index is re-read from the sheet every time.
type Syncer struct {
	source  driven.RunSource
	sheet   driven.Worksheet
	scope   domain.Scope
	headers []string
	user    string
}

// NewSyncer creates a syncer writing qualifying runs for user to sheet.
func NewSyncer(
	source driven.RunSource,
	sheet driven.Worksheet,
	scope domain.Scope,
	headers []string,
	user string,
) *Syncer {
	return &Syncer{
		source:  source,
		sheet:   sheet,
		scope:   scope,
		headers: headers,
		user:    user,
	}
}

// SyncOnce executes a single sync cycle.
func (s *Syncer) SyncOnce(ctx context.Context) (driving.CycleStatus, error) {
	var status driving.CycleStatus

	runs, err := s.source.Runs(ctx, s.scope)
	if err != nil {
		return status, fmt.Errorf("fetch runs for %s: %w", s.scope.Path(), err)
	}
	logger.Debug("Fetched %d runs from %s", len(runs), s.scope.Path())

	syncedIDs, err := s.syncedRunIDs(ctx)
	if err != nil {
		return status, err
	}

	rows, skipped := BuildRows(runs, syncedIDs, s.headers, s.user)
	for _, skip := range skipped {
		logger.Error("Skipping run %q: %v", skip.RunID, skip.Err)
	}
	status.RunsSkipped = len(skipped)

	if len(rows) == 0 {
		logger.Info("No new runs to add")
		return status, nil
	}

	if err := s.sheet.AppendRows(ctx, rows); err != nil {
		return status, fmt.Errorf("append %d rows: %w", len(rows), err)
	}
	status.RowsAppended = len(rows)
	logger.Info("Successfully added %d new runs", len(rows))

	return status, nil
}

// syncedRunIDs rebuilds the dedup index: the first column of every
// data row currently in the worksheet, header excluded.
func (s *Syncer) syncedRunIDs(ctx context.Context) ([]string, error) {
	values, err := s.sheet.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("read sheet values: %w", err)
	}
	if len(values) <= 1 {
		return nil, nil
	}

	ids := make([]string, 0, len(values)-1)
	for _, row := range values[1:] {
		if len(row) > 0 && row[0] != "" {
			ids = append(ids, row[0])
		}
	}
	return ids, nil
}
