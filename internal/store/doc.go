// Package store provides SQLite-backed durable storage for run history.
//
// Every job of a run is recorded as one row: where it ran, what was
// flipped, the histogram, the score, or the failure that stopped it.
// Rows are content-addressed, so re-recording the same run is a no-op.
//
// # Identity
//
// Run IDs are computed in fingerprint.go via SHA-256 with domain
// separation over the record's fields in a fixed order. String fields
// are NFC-normalized first, so the same record always hashes the same
// regardless of how profile names were encoded.
//
// # Reads
//
// All queries order by created_at DESC, id COLLATE BINARY ASC. Two
// records written in the same instant still list in a stable order.
// Readers get empty slices, never nil.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
