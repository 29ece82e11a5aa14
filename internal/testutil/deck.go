package testutil

import "github.com/studykit/matchgrid/internal/deck"

// FruitDeck returns the canonical four-card fixture used across packages:
// term on side_a, definition on side_b.
func FruitDeck() deck.Deck {
	return deck.Deck{
		ID:   "fruits",
		Name: "Fruit Basics",
		Cards: []deck.Card{
			{Sides: map[string]string{"side_a": "Apple", "side_b": "RedFruit"}},
			{Sides: map[string]string{"side_a": "Banana", "side_b": "YellowFruit"}},
			{Sides: map[string]string{"side_a": "Cherry", "side_b": "SmallRedFruit"}},
			{Sides: map[string]string{"side_a": "Date", "side_b": "BrownFruit"}},
		},
	}
}

// TriDeck returns a three-sided fixture for three-way configurations:
// term, translation and hint.
func TriDeck() deck.Deck {
	return deck.Deck{
		ID:   "numbers",
		Name: "Numbers",
		Cards: []deck.Card{
			{Sides: map[string]string{"side_a": "One", "side_b": "Uno", "side_c": "1"}},
			{Sides: map[string]string{"side_a": "Two", "side_b": "Dos", "side_c": "2"}},
			{Sides: map[string]string{"side_a": "Three", "side_b": "Tres", "side_c": "3"}},
			{Sides: map[string]string{"side_a": "Four", "side_b": "Cuatro", "side_c": "4"}},
		},
	}
}
