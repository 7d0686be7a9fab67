// Package driven defines interfaces that core services use to reach
// external systems: the experiment-tracking API, the spreadsheet
// service, and cycle-history storage. These are the "driven" ports in
// hexagonal architecture terminology - the application drives them.
//
// Implementations live in internal/connectors and internal/adapters/driven.
package driven
