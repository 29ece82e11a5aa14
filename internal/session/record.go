package session

import (
	"encoding/json"
	"time"

	"github.com/studykit/matchgrid/internal/deck"
)

// Record is the session record: everything needed to render, continue and
// restore one learner's match session against one deck.
//
// The full card pool supplied at session start is retained on the record
// (and serialized with it) so later rounds can regenerate the grid without
// the caller re-supplying the deck after a restore.
//
// Callers read the record every render tick to derive UI state; only the
// Engine mutates it.
type Record struct {
	DeckID    string    `json:"deck_id"`
	Round     int       `json:"round"`
	StartedAt time.Time `json:"started_at"`

	// Paused-time bookkeeping. PausedFor accumulates across pause/resume
	// cycles; PausedAt is the start of the current pause, nil while active.
	Paused    bool          `json:"paused"`
	PausedAt  *time.Time    `json:"paused_at,omitempty"`
	PausedFor time.Duration `json:"paused_for"`

	Grid            []deck.Tile      `json:"grid"`
	Selected        []string         `json:"selected"`
	CompletedGroups [][]string       `json:"completed_groups"`
	MissHistory     []int            `json:"miss_history"`
	Config          deck.MatchConfig `json:"config"`
	Pool            []deck.Card      `json:"pool"`
}

// Tile returns a pointer into the grid for the given tile id, or nil.
func (r *Record) Tile(id string) *deck.Tile {
	for i := range r.Grid {
		if r.Grid[i].ID == id {
			return &r.Grid[i]
		}
	}
	return nil
}

// RoundComplete reports whether every tile in the grid is matched.
// An empty grid is not a completed round.
func (r *Record) RoundComplete() bool {
	if len(r.Grid) == 0 {
		return false
	}
	for i := range r.Grid {
		if !r.Grid[i].Matched {
			return false
		}
	}
	return true
}

// MatchedCount returns how many tiles are already matched.
func (r *Record) MatchedCount() int {
	n := 0
	for i := range r.Grid {
		if r.Grid[i].Matched {
			n++
		}
	}
	return n
}

// Elapsed returns play time up to now, excluding time spent paused.
func (r *Record) Elapsed(now time.Time) time.Duration {
	elapsed := now.Sub(r.StartedAt) - r.PausedFor
	if r.Paused && r.PausedAt != nil {
		elapsed -= now.Sub(*r.PausedAt)
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// MarshalRecord serializes a record for the host key-value store.
func MarshalRecord(r *Record) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// UnmarshalRecord parses stored state back into a record.
//
// Stored data is untrusted: the bytes may be garbage, an older schema, or a
// record for some other feature that landed under our key. A nil record is
// returned for anything that does not parse into a shape-valid session -
// content (tile ids, group keys, pool values) is deliberately NOT
// re-validated, per the restore-verbatim contract.
func UnmarshalRecord(data string) *Record {
	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil
	}
	if !shapeValid(&rec) {
		return nil
	}
	return &rec
}

// shapeValid checks the minimum structure a record needs for the engine's
// operations to behave: an identity, a sane round counter, a grid, and a
// configuration with at least one side config.
func shapeValid(r *Record) bool {
	switch {
	case r.DeckID == "":
		return false
	case r.Round < 1:
		return false
	case len(r.Grid) == 0:
		return false
	case len(r.Config.SideConfigs) == 0:
		return false
	}
	return true
}
