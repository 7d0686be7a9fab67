// Package services contains the core sync logic: run diffing and row
// construction, worksheet preparation, the per-cycle sync pipeline,
// and the interval scheduler. Services depend only on domain types and
// ports; all I/O goes through driven interfaces.
package services
