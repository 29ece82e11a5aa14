// Package store provides SQLite-backed durable storage for matchgrid.
//
// Two concerns live here:
//   - Host key-value store: serialized session records, keyed
//     match-session-<deckID>. The session engine sees only the session.KV
//     interface; it neither knows nor cares that the backing is SQL.
//   - Deck library: imported decks and their cards, read back by the CLI
//     when a session starts.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Writes are idempotent via INSERT ... ON CONFLICT upserts: re-importing a
// deck or re-saving a session replaces the previous row rather than
// erroring.
//
// MemoryKV is an in-process session.KV for tests and the conformance
// harness - same contract, no file on disk.
package store
