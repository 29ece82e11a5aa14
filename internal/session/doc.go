// Package session implements the match session engine: the single-owner
// session record, the state machine that mutates it, the match validator,
// and the persistence adapter that round-trips the record through a host
// key-value store.
//
// ARCHITECTURE:
//
// Single-owner, synchronous operations:
// The engine holds exactly one session record at a time and every operation
// runs to completion before the next is accepted. There is no internal
// goroutine and no locking; the surrounding application is the single
// caller. This mirrors how a learner actually plays - one session, one
// device, one action at a time.
//
// Graceful degradation over errors:
// User-triggered races (a tap arriving after the session ended, a double
// pause, an unknown tile id) are expected, not exceptional. Those paths are
// silent no-ops. The engine only panics for programmer errors such as an
// empty card pool, and only returns errors where real I/O is involved
// (Save/Load against the store).
//
// INVARIANTS:
//   - Match validity is group-key equality, never content comparison.
//   - ProcessMatch acts only on selections of exactly RequiredCount tiles.
//   - Resume accumulates paused time; elapsed time never runs backwards.
//   - Load adopts stored state verbatim; it never re-derives the grid.
package session
