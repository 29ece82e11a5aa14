package deck

// MatchKind selects how many sides of a card participate in a match.
type MatchKind string

const (
	// KindTwoWay pairs two side combinations per card (classic memory game).
	KindTwoWay MatchKind = "two_way"

	// KindThreeWay requires three tiles per group.
	KindThreeWay MatchKind = "three_way"

	// KindCustom uses whatever side configs the caller provides.
	KindCustom MatchKind = "custom"
)

// SideConfig describes one tile variant of the grid: which sides it renders
// and how many tiles of this variant the grid contains.
type SideConfig struct {
	Sides []string `json:"sides"`
	Label string   `json:"label"`
	Count int      `json:"count"`
}

// MatchConfig shapes a grid and the match rule applied to it.
//
// PRECONDITION (caller-enforced, not re-validated by the generator): the
// side config counts sum to Rows*Cols, Rows and Cols are both >= 2 and
// their product is >= 6.
type MatchConfig struct {
	Rows        int          `json:"rows"`
	Cols        int          `json:"cols"`
	Kind        MatchKind    `json:"kind"`
	SideConfigs []SideConfig `json:"side_configs"`

	// Toggles orthogonal to the grid algorithm; carried for the caller.
	TimerEnabled    bool `json:"timer_enabled"`
	AudioEnabled    bool `json:"audio_enabled"`
	IncludeMastered bool `json:"include_mastered"`
}

// RequiredCount is the number of tiles a selection must contain before a
// match can be evaluated. This generalizes two-way = 2, three-way = 3 and
// custom = however many side configs are present: all three reduce to the
// same group-equality check.
func (c MatchConfig) RequiredCount() int {
	return len(c.SideConfigs)
}

// Total is the number of tiles the grid holds.
func (c MatchConfig) Total() int {
	return c.Rows * c.Cols
}

// TwoWay builds a two-entry configuration: half the grid shows sideA, half
// shows sideB, with equal counts summing to rows*cols.
func TwoWay(rows, cols int, sideA, sideB string) MatchConfig {
	half := rows * cols / 2
	return MatchConfig{
		Rows: rows,
		Cols: cols,
		Kind: KindTwoWay,
		SideConfigs: []SideConfig{
			{Sides: []string{sideA}, Label: labelFor(sideA), Count: half},
			{Sides: []string{sideB}, Label: labelFor(sideB), Count: half},
		},
		IncludeMastered: true,
	}
}

// ThreeWay builds a three-entry configuration with equal counts.
// rows*cols should be divisible by 3; the remainder is left unassigned and
// surfaces as a short grid, per the documented precondition.
func ThreeWay(rows, cols int, sideA, sideB, sideC string) MatchConfig {
	third := rows * cols / 3
	return MatchConfig{
		Rows: rows,
		Cols: cols,
		Kind: KindThreeWay,
		SideConfigs: []SideConfig{
			{Sides: []string{sideA}, Label: labelFor(sideA), Count: third},
			{Sides: []string{sideB}, Label: labelFor(sideB), Count: third},
			{Sides: []string{sideC}, Label: labelFor(sideC), Count: third},
		},
		IncludeMastered: true,
	}
}

func labelFor(side string) string {
	return side
}
