package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDeckCUE = `
package decks

deck: fruits: {
	name: "Fruit Basics"
	cards: [
		{side_a: "Apple", side_b: "RedFruit"},
		{side_a: "Banana", side_b: "YellowFruit"},
	]
}
`

func writeDeckFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadDecksValid(t *testing.T) {
	tmpDir := t.TempDir()
	writeDeckFile(t, tmpDir, "fruits.cue", validDeckCUE)

	result, errs := LoadDecks(tmpDir, LoadModeCollectAll)
	require.Empty(t, errs)
	require.NotNil(t, result)

	assert.Equal(t, 1, result.FileCount)
	require.Len(t, result.Decks, 1)

	d := result.Decks[0]
	assert.Equal(t, "fruits", d.ID)
	assert.Equal(t, "Fruit Basics", d.Name)
	require.Len(t, d.Cards, 2)
	assert.Equal(t, "Apple", d.Cards[0].Side("side_a"))
	assert.Equal(t, "YellowFruit", d.Cards[1].Side("side_b"))
}

func TestLoadDecksMultipleFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeDeckFile(t, tmpDir, "fruits.cue", validDeckCUE)
	writeDeckFile(t, tmpDir, "numbers.cue", `
package decks

deck: numbers: {
	name: "Numbers"
	cards: [
		{side_a: "One", side_b: "Uno", side_c: "1"},
	]
}
`)

	result, errs := LoadDecks(tmpDir, LoadModeCollectAll)
	require.Empty(t, errs)

	assert.Equal(t, 2, result.FileCount)
	assert.Len(t, result.Decks, 2)
}

func TestLoadDecksNonExistentDirectory(t *testing.T) {
	result, errs := LoadDecks("/nonexistent/directory/path", LoadModeCollectAll)
	assert.Nil(t, result)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), ErrCodeNotFound)
}

func TestLoadDecksEmptyDirectory(t *testing.T) {
	result, errs := LoadDecks(t.TempDir(), LoadModeCollectAll)
	assert.Nil(t, result)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), ErrCodeNoFiles)
}

func TestLoadDecksPathIsAFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "not-a-dir.cue")
	require.NoError(t, os.WriteFile(path, []byte(validDeckCUE), 0644))

	result, errs := LoadDecks(path, LoadModeCollectAll)
	assert.Nil(t, result)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), ErrCodeNotFound)
}

func TestLoadDecksMissingName(t *testing.T) {
	tmpDir := t.TempDir()
	writeDeckFile(t, tmpDir, "bad.cue", `
package decks

deck: broken: {
	cards: [{side_a: "A"}]
}
`)

	_, errs := LoadDecks(tmpDir, LoadModeCollectAll)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), ErrCodeDeckSchema)
}

func TestLoadDecksEmptyName(t *testing.T) {
	tmpDir := t.TempDir()
	writeDeckFile(t, tmpDir, "bad.cue", `
package decks

deck: broken: {
	name: ""
	cards: [{side_a: "A"}]
}
`)

	_, errs := LoadDecks(tmpDir, LoadModeCollectAll)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), ErrCodeDeckSchema)
}

func TestLoadDecksNonStringSideRejected(t *testing.T) {
	tmpDir := t.TempDir()
	writeDeckFile(t, tmpDir, "bad.cue", `
package decks

deck: broken: {
	name: "Broken"
	cards: [{side_a: 42}]
}
`)

	_, errs := LoadDecks(tmpDir, LoadModeCollectAll)
	assert.NotEmpty(t, errs)
}

func TestLoadDecksEmptyCards(t *testing.T) {
	tmpDir := t.TempDir()
	writeDeckFile(t, tmpDir, "empty.cue", `
package decks

deck: hollow: {
	name: "Hollow"
	cards: []
}
`)

	result, errs := LoadDecks(tmpDir, LoadModeCollectAll)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), ErrCodeDeckEmpty)
	assert.Empty(t, result.Decks)
}

func TestLoadDecksNoDecksDeclared(t *testing.T) {
	tmpDir := t.TempDir()
	writeDeckFile(t, tmpDir, "stray.cue", "package decks\n\nunrelated: {x: 1}\n")

	result, errs := LoadDecks(tmpDir, LoadModeCollectAll)
	require.NotEmpty(t, errs)
	assert.Empty(t, result.Decks)
}

func TestLoadDecksFailFastStopsAtFirstError(t *testing.T) {
	tmpDir := t.TempDir()
	writeDeckFile(t, tmpDir, "decks.cue", `
package decks

deck: a: {
	name: "A"
	cards: []
}
deck: b: {
	name: "B"
	cards: []
}
`)

	_, errs := LoadDecks(tmpDir, LoadModeFailFast)
	assert.Len(t, errs, 1)
}

func TestLoadDecksCollectAllGathersEverything(t *testing.T) {
	tmpDir := t.TempDir()
	writeDeckFile(t, tmpDir, "decks.cue", `
package decks

deck: a: {
	name: "A"
	cards: []
}
deck: b: {
	name: "B"
	cards: []
}
deck: good: {
	name: "Good"
	cards: [{side_a: "x", side_b: "y"}]
}
`)

	result, errs := LoadDecks(tmpDir, LoadModeCollectAll)
	assert.Len(t, errs, 2)
	require.Len(t, result.Decks, 1)
	assert.Equal(t, "good", result.Decks[0].ID)
}

func TestFindCUEFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeDeckFile(t, tmpDir, "a.cue", "x: 1")
	writeDeckFile(t, tmpDir, "ignore.txt", "not cue")
	subDir := filepath.Join(tmpDir, "nested")
	require.NoError(t, os.Mkdir(subDir, 0755))
	writeDeckFile(t, subDir, "b.cue", "y: 2")

	files, err := FindCUEFiles(tmpDir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}
