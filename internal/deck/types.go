package deck

// Card is one entry of a deck. A card exposes zero or more named "side"
// values (side_a, side_b, ...); a tile renders one or more of those sides.
type Card struct {
	Sides map[string]string `json:"sides"`
}

// Side returns the card's value for a side identifier.
// Missing sides render as the empty string - the engine does not validate
// deck content.
func (c Card) Side(id string) string {
	return c.Sides[id]
}

// Deck is an ordered card pool with a stable identity.
// Card order matters: the underlying-card index stored on every tile is an
// index into Cards.
type Deck struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// Position is a 0-based (row, column) grid coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Tile is one visible grid cell.
//
// GroupKey is the only thing that defines match membership: every tile that
// must be collected together to form one match carries the same GroupKey.
// With consistently generated side configs all tiles of a group originate
// from the same CardIndex, but when the caller supplies mismatched entry
// counts a group may be incomplete - the engine accepts that as a caller
// configuration error rather than correcting it.
type Tile struct {
	ID        string   `json:"id"`
	CardIndex int      `json:"card_index"`
	Sides     []string `json:"sides"`
	Content   string   `json:"content"`
	GroupKey  string   `json:"group_key"`
	Matched   bool     `json:"matched"`
	Selected  bool     `json:"selected"`
	Position  Position `json:"position"`
}
