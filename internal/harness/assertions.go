package harness

import (
	"fmt"

	"github.com/studykit/matchgrid/internal/session"
)

// EvaluateAssertions checks every assertion against the final session
// record and returns one message per failure. A nil record (session ended
// or never adopted) fails every assertion except none being present.
func EvaluateAssertions(rec *session.Record, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluateAssertion(rec, a); err != nil {
			failures = append(failures, fmt.Sprintf("assertion %d (%s): %v", i, a.Type, err))
		}
	}
	return failures
}

func evaluateAssertion(rec *session.Record, a Assertion) error {
	if rec == nil {
		return fmt.Errorf("no session record")
	}

	switch a.Type {
	case AssertRound:
		if rec.Round != a.Want {
			return fmt.Errorf("round = %d, want %d", rec.Round, a.Want)
		}

	case AssertMatchCount:
		if got := len(rec.CompletedGroups); got != a.Want {
			return fmt.Errorf("completed groups = %d, want %d", got, a.Want)
		}

	case AssertMissCount:
		if got := len(rec.MissHistory); got != a.Want {
			return fmt.Errorf("miss history length = %d, want %d", got, a.Want)
		}

	case AssertMissContains:
		for _, idx := range rec.MissHistory {
			if idx == a.Card {
				return nil
			}
		}
		return fmt.Errorf("card %d not in miss history %v", a.Card, rec.MissHistory)

	case AssertSelectionCount:
		if got := len(rec.Selected); got != a.Want {
			return fmt.Errorf("selection size = %d, want %d", got, a.Want)
		}

	case AssertTileMatched:
		tile := rec.Tile(a.Tile)
		if tile == nil {
			return fmt.Errorf("unknown tile %q", a.Tile)
		}
		if tile.Matched != a.Value {
			return fmt.Errorf("tile %s matched = %t, want %t", a.Tile, tile.Matched, a.Value)
		}

	case AssertTileSelected:
		tile := rec.Tile(a.Tile)
		if tile == nil {
			return fmt.Errorf("unknown tile %q", a.Tile)
		}
		if tile.Selected != a.Value {
			return fmt.Errorf("tile %s selected = %t, want %t", a.Tile, tile.Selected, a.Value)
		}

	case AssertComplete:
		if got := rec.RoundComplete(); got != a.Value {
			return fmt.Errorf("round complete = %t, want %t", got, a.Value)
		}

	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}

	return nil
}
