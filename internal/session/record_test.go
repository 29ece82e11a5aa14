package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studykit/matchgrid/internal/deck"
)

func validRecord() *Record {
	return &Record{
		DeckID:    "fruits",
		Round:     2,
		StartedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Grid: []deck.Tile{
			{ID: "tile-0", GroupKey: "group-0", Content: "Apple"},
			{ID: "tile-1", GroupKey: "group-0", Content: "RedFruit", Matched: true},
		},
		Selected:        []string{},
		CompletedGroups: [][]string{},
		MissHistory:     []int{1, 3},
		Config:          deck.TwoWay(2, 3, "side_a", "side_b"),
		Pool: []deck.Card{
			{Sides: map[string]string{"side_a": "Apple", "side_b": "RedFruit"}},
		},
	}
}

func TestRecord_Tile(t *testing.T) {
	rec := validRecord()

	got := rec.Tile("tile-1")
	require.NotNil(t, got)
	assert.Equal(t, "RedFruit", got.Content)

	// Pointer into the grid, not a copy.
	got.Selected = true
	assert.True(t, rec.Grid[1].Selected)

	assert.Nil(t, rec.Tile("no-such-tile"))
}

func TestRecord_RoundComplete(t *testing.T) {
	rec := validRecord()
	assert.False(t, rec.RoundComplete(), "one unmatched tile remains")

	rec.Grid[0].Matched = true
	assert.True(t, rec.RoundComplete())

	empty := &Record{}
	assert.False(t, empty.RoundComplete(), "an empty grid is not a completed round")
}

func TestRecord_MatchedCount(t *testing.T) {
	rec := validRecord()
	assert.Equal(t, 1, rec.MatchedCount())

	rec.Grid[0].Matched = true
	assert.Equal(t, 2, rec.MatchedCount())
}

func TestRecord_Elapsed(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("simple elapsed", func(t *testing.T) {
		rec := &Record{StartedAt: start}
		assert.Equal(t, 90*time.Second, rec.Elapsed(start.Add(90*time.Second)))
	})

	t.Run("accumulated pauses excluded", func(t *testing.T) {
		rec := &Record{StartedAt: start, PausedFor: 30 * time.Second}
		assert.Equal(t, time.Minute, rec.Elapsed(start.Add(90*time.Second)))
	})

	t.Run("live pause excluded", func(t *testing.T) {
		pausedAt := start.Add(time.Minute)
		rec := &Record{StartedAt: start, Paused: true, PausedAt: &pausedAt}
		assert.Equal(t, time.Minute, rec.Elapsed(start.Add(5*time.Minute)))
	})

	t.Run("never negative", func(t *testing.T) {
		rec := &Record{StartedAt: start, PausedFor: time.Hour}
		assert.Equal(t, time.Duration(0), rec.Elapsed(start.Add(time.Minute)))
	})
}

func TestMarshalRecord_Roundtrip(t *testing.T) {
	rec := validRecord()

	data, err := MarshalRecord(rec)
	require.NoError(t, err)

	got := UnmarshalRecord(data)
	require.NotNil(t, got)
	assert.Equal(t, rec, got)
}

func TestUnmarshalRecord_RejectsGarbage(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"not json", "{{{"},
		{"wrong type", `"a string"`},
		{"empty object", `{}`},
		{"missing deck id", `{"round":1,"grid":[{"id":"t"}],"config":{"side_configs":[{"sides":["a"],"count":1}]}}`},
		{"zero round", `{"deck_id":"d","round":0,"grid":[{"id":"t"}],"config":{"side_configs":[{"sides":["a"],"count":1}]}}`},
		{"empty grid", `{"deck_id":"d","round":1,"grid":[],"config":{"side_configs":[{"sides":["a"],"count":1}]}}`},
		{"no side configs", `{"deck_id":"d","round":1,"grid":[{"id":"t"}],"config":{"side_configs":[]}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, UnmarshalRecord(tc.data))
		})
	}
}

func TestUnmarshalRecord_RestoresVerbatim(t *testing.T) {
	// Shape is checked, content is not: odd group keys and an empty pool
	// come back exactly as stored.
	data := `{
		"deck_id": "weird",
		"round": 7,
		"started_at": "2024-01-01T00:00:00Z",
		"paused": false,
		"paused_for": 0,
		"grid": [{"id": "x", "card_index": 99, "group_key": "not-a-normal-key"}],
		"selected": ["x"],
		"completed_groups": [],
		"miss_history": [99],
		"config": {"rows": 2, "cols": 3, "kind": "two_way",
			"side_configs": [{"sides": ["side_a"], "count": 3}, {"sides": ["side_b"], "count": 3}]},
		"pool": []
	}`

	rec := UnmarshalRecord(data)
	require.NotNil(t, rec)
	assert.Equal(t, "weird", rec.DeckID)
	assert.Equal(t, 7, rec.Round)
	assert.Equal(t, "not-a-normal-key", rec.Grid[0].GroupKey)
	assert.Equal(t, 99, rec.Grid[0].CardIndex)
	assert.Equal(t, []string{"x"}, rec.Selected)
	assert.Equal(t, []int{99}, rec.MissHistory)
}
