package domain

import "fmt"

// ReservedHeaderCount is the number of leading header positions with
// fixed meaning: run id, timestamp, user name.
const ReservedHeaderCount = 3

// Settings is the validated sync configuration loaded at startup.
type Settings struct {
	// CredentialsFile is the path to the service-account key file used
	// to authenticate to the spreadsheet service.
	CredentialsFile string

	// Headers is the ordered column schema for the worksheet. The first
	// three positions are always run id, timestamp, and user name;
	// remaining headers are resolved from each run's config or summary.
	Headers []string

	// Scope is the team/project namespace to fetch runs from.
	Scope Scope
}

// Validate reports whether the settings are complete and well-formed.
func (s *Settings) Validate() error {
	if s.CredentialsFile == "" {
		return fmt.Errorf("%w: missing required key GCP_JSON", ErrConfig)
	}
	if len(s.Headers) == 0 {
		return fmt.Errorf("%w: missing required key FIXED_HEADERS", ErrConfig)
	}
	if len(s.Headers) < ReservedHeaderCount {
		return fmt.Errorf("%w: FIXED_HEADERS needs at least %d columns, got %d",
			ErrConfig, ReservedHeaderCount, len(s.Headers))
	}
	if s.Scope.Team == "" {
		return fmt.Errorf("%w: missing required key TEAM_NAME", ErrConfig)
	}
	if s.Scope.Project == "" {
		return fmt.Errorf("%w: missing required key PROJECT_NAME", ErrConfig)
	}
	return nil
}
