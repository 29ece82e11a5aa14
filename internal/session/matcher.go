package session

import "github.com/studykit/matchgrid/internal/deck"

// MatchResult is the outcome of evaluating a selection.
// MatchedIDs is set only when IsMatch is true, in selection order.
type MatchResult struct {
	IsMatch    bool     `json:"is_match"`
	MatchedIDs []string `json:"matched_ids,omitempty"`
}

// Evaluate decides whether the selected tiles form a valid match under the
// configuration. Pure: never mutates tiles; the engine applies consequences.
//
// A selection of the wrong size - too few tiles as well as too many - is
// simply not a match. Otherwise the selection matches iff every tile shares
// the same group key.
func Evaluate(selected []deck.Tile, cfg deck.MatchConfig) MatchResult {
	if len(selected) == 0 || len(selected) != cfg.RequiredCount() {
		return MatchResult{}
	}

	key := selected[0].GroupKey
	ids := make([]string, len(selected))
	for i, t := range selected {
		if t.GroupKey != key {
			return MatchResult{}
		}
		ids[i] = t.ID
	}

	return MatchResult{IsMatch: true, MatchedIDs: ids}
}
