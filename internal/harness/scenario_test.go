package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studykit/matchgrid/internal/deck"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalScenario = `
name: minimal
deck:
  id: d
  cards:
    - side_a: A
      side_b: B
config:
  kind: two_way
  rows: 2
  cols: 3
  sides: [side_a, side_b]
steps:
  - select: tile-0
`

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenarioFile(t, minimalScenario)

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "minimal", s.Name)
	assert.Equal(t, "d", s.Deck.ID)
	require.Len(t, s.Steps, 1)
	assert.Equal(t, "tile-0", s.Steps[0].Select)
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	// "assertion" (singular) is the typo strict decoding exists to catch.
	path := writeScenarioFile(t, minimalScenario+`
assertion:
  - type: round
    want: 1
`)

	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestLoadScenario_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{
			name: "missing name",
			content: `
deck:
  id: d
  cards:
    - side_a: A
steps:
  - select: t
`,
		},
		{
			name: "missing deck id",
			content: `
name: s
deck:
  cards:
    - side_a: A
steps:
  - select: t
`,
		},
		{
			name: "no cards",
			content: `
name: s
deck:
  id: d
  cards: []
steps:
  - select: t
`,
		},
		{
			name: "no steps",
			content: `
name: s
deck:
  id: d
  cards:
    - side_a: A
steps: []
`,
		},
		{
			name: "step with two actions",
			content: `
name: s
deck:
  id: d
  cards:
    - side_a: A
steps:
  - select: t
    process: true
`,
		},
		{
			name: "step with no action",
			content: `
name: s
deck:
  id: d
  cards:
    - side_a: A
steps:
  - {}
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenarioFile(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestScenarioConfig_Build(t *testing.T) {
	t.Run("two_way", func(t *testing.T) {
		cfg, err := ScenarioConfig{
			Kind: deck.KindTwoWay, Rows: 2, Cols: 3,
			Sides: []string{"side_a", "side_b"},
		}.Build()
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.RequiredCount())
		assert.Equal(t, 3, cfg.SideConfigs[0].Count)
	})

	t.Run("three_way", func(t *testing.T) {
		cfg, err := ScenarioConfig{
			Kind: deck.KindThreeWay, Rows: 2, Cols: 3,
			Sides: []string{"side_a", "side_b", "side_c"},
		}.Build()
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.RequiredCount())
	})

	t.Run("custom takes side configs verbatim", func(t *testing.T) {
		cfg, err := ScenarioConfig{
			Kind: deck.KindCustom, Rows: 2, Cols: 3,
			SideConfigs: []deck.SideConfig{
				{Sides: []string{"side_a", "side_b"}, Count: 3},
				{Sides: []string{"side_c"}, Count: 3},
			},
		}.Build()
		require.NoError(t, err)
		assert.Equal(t, deck.KindCustom, cfg.Kind)
		assert.Equal(t, []string{"side_a", "side_b"}, cfg.SideConfigs[0].Sides)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := ScenarioConfig{Kind: deck.KindTwoWay, Sides: []string{"only_one"}}.Build()
		assert.Error(t, err)

		_, err = ScenarioConfig{Kind: deck.KindThreeWay, Sides: []string{"a", "b"}}.Build()
		assert.Error(t, err)

		_, err = ScenarioConfig{Kind: deck.KindCustom}.Build()
		assert.Error(t, err)

		_, err = ScenarioConfig{Kind: "four_way"}.Build()
		assert.Error(t, err)
	})
}

func TestScenarioDeck_Pool(t *testing.T) {
	d := ScenarioDeck{
		ID: "d",
		Cards: []map[string]string{
			{"side_a": "A", "side_b": "B"},
			{"side_a": "C"},
		},
	}

	pool := d.Pool()
	require.Len(t, pool, 2)
	assert.Equal(t, "A", pool[0].Side("side_a"))
	assert.Equal(t, "", pool[1].Side("side_b"))
}
