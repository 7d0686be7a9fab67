package domain

import "fmt"

// RunState is the lifecycle state of an experiment run as reported
// by the tracking service.
type RunState string

// Run states reported by the tracking API.
const (
	RunStateRunning  RunState = "running"
	RunStateFinished RunState = "finished"
	RunStateFailed   RunState = "failed"
	RunStateCrashed  RunState = "crashed"
	RunStatePending  RunState = "pending"
)

// Run represents one recorded execution of a tracked experiment.
// Runs are read-only from this system's perspective.
type Run struct {
	// ID is unique within a project and is the deduplication key.
	ID string

	// State is the run's current lifecycle state.
	State RunState

	// User is the name of the user who owns the run.
	User string

	// Config holds the run's hyperparameter configuration.
	Config map[string]any

	// Summary holds the run's summary metrics. May include a numeric
	// "_timestamp" with the epoch seconds of the last update.
	Summary map[string]any
}

// SummaryTimestampKey is the summary field carrying the run's last
// update time as epoch seconds.
const SummaryTimestampKey = "_timestamp"

// Scope identifies the team/project namespace runs are fetched from.
type Scope struct {
	Team    string
	Project string
}

// Path returns the "team/project" form used by the tracking API.
func (s Scope) Path() string {
	return fmt.Sprintf("%s/%s", s.Team, s.Project)
}
