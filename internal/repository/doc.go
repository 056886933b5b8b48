// Package repository defines the data access interfaces for nodal.
//
// This package provides the repository abstraction layer for persisting
// presets and small pieces of server state. The actual implementation is
// in the sqlite subpackage.
//
// # Repository Interface
//
// The Repository interface covers named presets (a scene configuration
// saved under a unique name) and a key/value metadata table used to
// remember the active scene across restarts.
//
// # SQLite Implementation
//
// The sqlite implementation uses the pure Go modernc.org/sqlite driver
// with WAL mode for concurrency. Scene settings are stored as JSON so new
// configuration fields need no schema change.
//
// # Testing
//
// The sqlite repository is tested with in-memory databases.
package repository
