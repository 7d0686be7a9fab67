package driving

import "context"

// CycleStatus summarises one executed sync cycle.
type CycleStatus struct {
	// RowsAppended is the number of new run rows written to the sheet.
	RowsAppended int

	// RunsSkipped is the number of runs dropped by per-run
	// row-construction failures.
	RunsSkipped int
}

// SyncRunner executes one fetch→diff→build→write cycle.
type SyncRunner interface {
	// SyncOnce runs a single cycle and reports what it did. Any error
	// aborts the cycle but must leave the runner usable for the next
	// tick.
	SyncOnce(ctx context.Context) (CycleStatus, error)
}
