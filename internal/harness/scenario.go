package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/studykit/matchgrid/internal/deck"
)

// Scenario defines a conformance test scenario: one scripted session
// against an inline deck.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Deck is the card pool the session plays against.
	Deck ScenarioDeck `yaml:"deck"`

	// Config shapes the grid and the match rule.
	Config ScenarioConfig `yaml:"config"`

	// Steps is the scripted action sequence, executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final session record.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ScenarioDeck is an inline deck definition. Cards are side-id -> value
// maps; card order defines the pool indices steps refer to.
type ScenarioDeck struct {
	ID    string              `yaml:"id"`
	Cards []map[string]string `yaml:"cards"`
}

// Pool converts the inline cards to the engine's card type.
func (d ScenarioDeck) Pool() []deck.Card {
	pool := make([]deck.Card, len(d.Cards))
	for i, sides := range d.Cards {
		pool[i] = deck.Card{Sides: sides}
	}
	return pool
}

// ScenarioConfig builds a match configuration.
//
// For two_way and three_way, Sides names the side identifiers and the
// counts are derived (total/2 resp. total/3). For custom, SideConfigs is
// taken verbatim.
type ScenarioConfig struct {
	Kind        deck.MatchKind    `yaml:"kind"`
	Rows        int               `yaml:"rows"`
	Cols        int               `yaml:"cols"`
	Sides       []string          `yaml:"sides,omitempty"`
	SideConfigs []deck.SideConfig `yaml:"side_configs,omitempty"`
}

// Build resolves the scenario config into a MatchConfig.
func (c ScenarioConfig) Build() (deck.MatchConfig, error) {
	switch c.Kind {
	case deck.KindTwoWay:
		if len(c.Sides) != 2 {
			return deck.MatchConfig{}, fmt.Errorf("two_way config needs exactly 2 sides, got %d", len(c.Sides))
		}
		return deck.TwoWay(c.Rows, c.Cols, c.Sides[0], c.Sides[1]), nil

	case deck.KindThreeWay:
		if len(c.Sides) != 3 {
			return deck.MatchConfig{}, fmt.Errorf("three_way config needs exactly 3 sides, got %d", len(c.Sides))
		}
		return deck.ThreeWay(c.Rows, c.Cols, c.Sides[0], c.Sides[1], c.Sides[2]), nil

	case deck.KindCustom:
		if len(c.SideConfigs) == 0 {
			return deck.MatchConfig{}, fmt.Errorf("custom config needs side_configs")
		}
		return deck.MatchConfig{
			Rows:            c.Rows,
			Cols:            c.Cols,
			Kind:            deck.KindCustom,
			SideConfigs:     c.SideConfigs,
			IncludeMastered: true,
		}, nil

	default:
		return deck.MatchConfig{}, fmt.Errorf("unknown match kind %q", c.Kind)
	}
}

// Step is one scripted action. Exactly one field should be set; a step
// with multiple actions set is rejected at load time.
type Step struct {
	// Select toggles the named tile's selection.
	Select string `yaml:"select,omitempty"`

	// Process evaluates the current selection.
	Process bool `yaml:"process,omitempty"`

	// Clear clears the selection without evaluating it.
	Clear bool `yaml:"clear,omitempty"`

	// NewRound starts the next round, optionally with explicit priority
	// card indices. An empty priority list falls back to miss history.
	NewRound *NewRoundStep `yaml:"new_round,omitempty"`

	Pause  bool `yaml:"pause,omitempty"`
	Resume bool `yaml:"resume,omitempty"`
	Save   bool `yaml:"save,omitempty"`
	Load   bool `yaml:"load,omitempty"`
	End    bool `yaml:"end,omitempty"`

	// Advance moves the fake clock forward (e.g. "30s") before the next
	// step. Used to exercise pause-duration accumulation.
	Advance string `yaml:"advance,omitempty"`
}

// NewRoundStep carries the optional priority hint for new_round.
type NewRoundStep struct {
	Priority []int `yaml:"priority,omitempty"`
}

// Assertion validates one property of the final session record.
type Assertion struct {
	// Type selects the assertion (see Assert* constants).
	Type string `yaml:"type"`

	// Want is the expected number (round, match_count, miss_count,
	// selection_count).
	Want int `yaml:"want,omitempty"`

	// Tile names a tile (tile_matched, tile_selected).
	Tile string `yaml:"tile,omitempty"`

	// Card is a pool index (miss_contains).
	Card int `yaml:"card,omitempty"`

	// Value is the expected flag (tile_matched, tile_selected, complete).
	Value bool `yaml:"value,omitempty"`
}

// Assertion type constants.
const (
	AssertRound          = "round"           // Record.Round == Want
	AssertMatchCount     = "match_count"     // len(CompletedGroups) == Want
	AssertMissCount      = "miss_count"      // len(MissHistory) == Want
	AssertMissContains   = "miss_contains"   // Card present in MissHistory
	AssertSelectionCount = "selection_count" // len(Selected) == Want
	AssertTileMatched    = "tile_matched"    // Tile's matched flag == Value
	AssertTileSelected   = "tile_selected"   // Tile's selected flag == Value
	AssertComplete       = "complete"        // RoundComplete() == Value
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks required fields and that each step sets exactly
// one action.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Deck.ID == "" {
		return fmt.Errorf("deck.id is required")
	}
	if len(s.Deck.Cards) == 0 {
		return fmt.Errorf("deck.cards must not be empty")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps must not be empty")
	}
	for i, step := range s.Steps {
		if n := step.actionCount(); n != 1 {
			return fmt.Errorf("step %d: exactly one action required, got %d", i, n)
		}
	}
	return nil
}

func (s Step) actionCount() int {
	n := 0
	if s.Select != "" {
		n++
	}
	for _, set := range []bool{s.Process, s.Clear, s.Pause, s.Resume, s.Save, s.Load, s.End} {
		if set {
			n++
		}
	}
	if s.NewRound != nil {
		n++
	}
	if s.Advance != "" {
		n++
	}
	return n
}
