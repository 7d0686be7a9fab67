// Package domain defines the core business entities for runsheet.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Run: One recorded execution of a tracked experiment
//   - Settings: Validated sync configuration
//   - CycleResult: The recorded outcome of one sync cycle
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
