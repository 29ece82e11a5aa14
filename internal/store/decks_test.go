package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studykit/matchgrid/internal/deck"
	"github.com/studykit/matchgrid/internal/testutil"
)

func TestWriteDeck_ReadDeck_Roundtrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	want := testutil.FruitDeck()
	require.NoError(t, s.WriteDeck(ctx, want))

	got, err := s.ReadDeck(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteDeck_ReimportReplacesCards(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.WriteDeck(ctx, testutil.FruitDeck()))

	// Shorter re-import: stale cards must not survive.
	smaller := deck.Deck{
		ID:   "fruits",
		Name: "Fruit Basics v2",
		Cards: []deck.Card{
			{Sides: map[string]string{"side_a": "Apple", "side_b": "RedFruit"}},
		},
	}
	require.NoError(t, s.WriteDeck(ctx, smaller))

	got, err := s.ReadDeck(ctx, "fruits")
	require.NoError(t, err)
	assert.Equal(t, "Fruit Basics v2", got.Name)
	require.Len(t, got.Cards, 1)
	assert.Equal(t, "Apple", got.Cards[0].Side("side_a"))
}

func TestReadDeck_PreservesCardOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	d := testutil.TriDeck()
	require.NoError(t, s.WriteDeck(ctx, d))

	got, err := s.ReadDeck(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, got.Cards, 4)
	assert.Equal(t, "One", got.Cards[0].Side("side_a"))
	assert.Equal(t, "Cuatro", got.Cards[3].Side("side_b"))
}

func TestReadDeck_Unknown(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ReadDeck(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrDeckNotFound)
}

func TestListDecks(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	infos, err := s.ListDecks(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)

	require.NoError(t, s.WriteDeck(ctx, testutil.TriDeck()))
	require.NoError(t, s.WriteDeck(ctx, testutil.FruitDeck()))
	require.NoError(t, s.WriteDeck(ctx, deck.Deck{ID: "empty", Name: "No Cards"}))

	infos, err = s.ListDecks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []DeckInfo{
		{ID: "empty", Name: "No Cards", Cards: 0},
		{ID: "fruits", Name: "Fruit Basics", Cards: 4},
		{ID: "numbers", Name: "Numbers", Cards: 4},
	}, infos)
}

func TestWriteDeck_CascadeDeleteRemovesCards(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.WriteDeck(ctx, testutil.FruitDeck()))

	_, err := s.DB().ExecContext(ctx, `DELETE FROM decks WHERE id = 'fruits'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM cards WHERE deck_id = 'fruits'`).Scan(&count))
	assert.Zero(t, count, "foreign key cascade should remove orphaned cards")
}
