package session

import (
	"context"
	"fmt"
	"log/slog"
)

// KV is the host-provided persistent key-value store, string-keyed and
// string-valued. Implemented by store.Store (sqlite) in production and
// store.MemoryKV in tests and the conformance harness.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string) error
}

// SessionKey returns the deck-scoped storage key for a session record.
func SessionKey(deckID string) string {
	return "match-session-" + deckID
}

// Save serializes the current session record under its deck-scoped key.
// No-op when idle or when the engine has no store; an error surfaces only
// for real store I/O failures.
func (e *Engine) Save(ctx context.Context) error {
	if e.rec == nil || e.kv == nil {
		return nil
	}

	data, err := MarshalRecord(e.rec)
	if err != nil {
		return fmt.Errorf("save session %s: %w", e.rec.DeckID, err)
	}
	if err := e.kv.Put(ctx, SessionKey(e.rec.DeckID), data); err != nil {
		return fmt.Errorf("save session %s: %w", e.rec.DeckID, err)
	}

	slog.Debug("session saved", "deck", e.rec.DeckID, "round", e.rec.Round)
	return nil
}

// Load reads the stored session for a deck and, on success, adopts it as
// the current session and returns it for inspection (e.g. to detect an
// already-completed round).
//
// Absent data and unparseable data both return (nil, nil) - distinct from
// an error - and leave any in-memory session untouched. The caller falls
// back to starting a fresh session. Only a store I/O failure returns an
// error.
func (e *Engine) Load(ctx context.Context, deckID string) (*Record, error) {
	if e.kv == nil {
		return nil, nil
	}

	data, ok, err := e.kv.Get(ctx, SessionKey(deckID))
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", deckID, err)
	}
	if !ok {
		return nil, nil
	}

	rec := UnmarshalRecord(data)
	if rec == nil {
		slog.Warn("stored session unreadable, ignoring", "deck", deckID)
		return nil, nil
	}

	e.rec = rec
	slog.Info("session loaded",
		"deck", rec.DeckID,
		"round", rec.Round,
		"matched", rec.MatchedCount(),
		"tiles", len(rec.Grid),
	)
	return rec, nil
}
