package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ng-youn/runsheet/internal/core/domain"
	"github.com/ng-youn/runsheet/internal/core/ports/driven"
)

// cycleStore implements driven.CycleStore.
type cycleStore struct {
	store *Store
}

var _ driven.CycleStore = (*cycleStore)(nil)

// RecordCycle logs a completed cycle's outcome.
func (s *cycleStore) RecordCycle(ctx context.Context, result *domain.CycleResult) error {
	if result == nil || result.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sync_cycles (id, started_at, ended_at, success, error, rows_appended, runs_skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, result.ID,
		result.StartedAt.UTC().Format(time.RFC3339Nano),
		result.EndedAt.UTC().Format(time.RFC3339Nano),
		boolToInt(result.Success),
		nullString(result.Error),
		result.RowsAppended,
		result.RunsSkipped)

	if err != nil {
		return fmt.Errorf("recording cycle: %w", err)
	}
	return nil
}

// RecentCycles returns the most recent cycle results, newest first.
func (s *cycleStore) RecentCycles(ctx context.Context, limit int) ([]domain.CycleResult, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, started_at, ended_at, success, error, rows_appended, runs_skipped
		FROM sync_cycles
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying cycles: %w", err)
	}
	defer rows.Close()

	var results []domain.CycleResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		result, err := scanCycleResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cycles: %w", err)
	}

	return results, nil
}

// PruneCycles removes old results beyond the retention limit.
// Keeps the most recent 'keep' results.
func (s *cycleStore) PruneCycles(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM sync_cycles
		WHERE id NOT IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (ORDER BY started_at DESC) as rn
				FROM sync_cycles
			) WHERE rn <= ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning cycles: %w", err)
	}
	return nil
}

// scanCycleResult scans a cycle result from *sql.Rows.
func scanCycleResult(rows *sql.Rows) (*domain.CycleResult, error) {
	var result domain.CycleResult
	var startedAt, endedAt string
	var success int
	var errMsg sql.NullString

	if err := rows.Scan(&result.ID, &startedAt, &endedAt,
		&success, &errMsg, &result.RowsAppended, &result.RunsSkipped); err != nil {
		return nil, fmt.Errorf("scanning cycle: %w", err)
	}

	if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
		result.StartedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, endedAt); err == nil {
		result.EndedAt = t
	}
	result.Success = success == 1
	if errMsg.Valid {
		result.Error = errMsg.String
	}

	return &result, nil
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
