// Package sqlite provides SQLite-backed persistence for sync cycle
// history. The database lives in the local data directory and survives
// restarts; it is never consulted for run deduplication.
package sqlite
