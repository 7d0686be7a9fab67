package domain

import "time"

// CycleResult records the outcome of one sync cycle. Results are kept
// for observability only; the deduplication index is always re-derived
// from the worksheet itself.
type CycleResult struct {
	// ID is a unique identifier for this cycle.
	ID string

	// StartedAt is when the cycle began.
	StartedAt time.Time

	// EndedAt is when the cycle completed.
	EndedAt time.Time

	// Success indicates whether the cycle completed without error.
	Success bool

	// Error contains the error message if Success is false.
	Error string

	// RowsAppended is the number of new run rows written to the sheet.
	RowsAppended int

	// RunsSkipped is the number of runs skipped due to per-run
	// row-construction failures.
	RunsSkipped int
}
