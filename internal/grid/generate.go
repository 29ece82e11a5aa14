package grid

import (
	"fmt"

	"github.com/studykit/matchgrid/internal/deck"
)

// Option configures a Generate call.
type Option func(*generator)

// WithPriority seeds card selection with the given pool indices before the
// normal sampling procedure fills the remaining groups. Used by round
// continuation to bring previously missed cards back first. Duplicates are
// ignored; hints beyond the group count are truncated.
func WithPriority(indices []int) Option {
	return func(g *generator) {
		g.priority = indices
	}
}

// WithExcluded removes pool indices from sampling (mastered cards, per the
// mastery provider). Priority hints are not filtered: a card the learner
// just missed takes part even if it is marked mastered elsewhere.
// If exclusion would empty the pool the filter is ignored entirely, so the
// grid still fills.
func WithExcluded(indices map[int]bool) Option {
	return func(g *generator) {
		g.excluded = indices
	}
}

// WithShuffler overrides the default wall-clock-seeded shuffler.
func WithShuffler(s Shuffler) Option {
	return func(g *generator) {
		g.shuffler = s
	}
}

// WithIDGenerator overrides the default UUIDv7 tile id generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(g *generator) {
		g.ids = ids
	}
}

type generator struct {
	priority []int
	excluded map[int]bool
	shuffler Shuffler
	ids      IDGenerator
}

// Generate builds the grid for one round: exactly as many tiles as the
// side config counts request, shuffled, with row-major positions over the
// configured dimensions.
//
// Algorithm:
//  1. numGroups = max side config count.
//  2. Select numGroups cards: priority hints first, then distinct samples
//     from the (mastery-filtered) pool, cycling i mod poolSize once the
//     pool is exhausted so small decks still fill the grid.
//  3. Selected card i gets group key "group-<i>".
//  4. Each side config emits Count tiles; tile j draws from selected card
//     j mod numGroups and renders that config's sides.
//  5. Shuffle all tiles, then assign positions row-major and unique ids.
//
// Generate panics on an empty pool - passing no cards is a programmer
// error, not a user-triggered race.
func Generate(pool []deck.Card, cfg deck.MatchConfig, opts ...Option) []deck.Tile {
	if len(pool) == 0 {
		panic("grid: card pool is empty")
	}

	g := &generator{}
	for _, opt := range opts {
		opt(g)
	}
	if g.shuffler == nil {
		g.shuffler = NewRandShuffler()
	}
	if g.ids == nil {
		g.ids = UUIDGenerator{}
	}

	numGroups := 0
	for _, sc := range cfg.SideConfigs {
		if sc.Count > numGroups {
			numGroups = sc.Count
		}
	}

	selected := g.selectCards(len(pool), numGroups)

	tiles := make([]deck.Tile, 0, cfg.Total())
	for _, sc := range cfg.SideConfigs {
		for j := 0; j < sc.Count; j++ {
			cardIndex := selected[j%numGroups]
			tiles = append(tiles, deck.Tile{
				CardIndex: cardIndex,
				Sides:     sc.Sides,
				Content:   deck.Compose(pool[cardIndex], sc.Sides),
				GroupKey:  fmt.Sprintf("group-%d", j%numGroups),
			})
		}
	}

	g.shuffler.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})

	for i := range tiles {
		tiles[i].ID = g.ids.NextID()
		tiles[i].Position = deck.Position{Row: i / cfg.Cols, Col: i % cfg.Cols}
	}

	return tiles
}

// selectCards picks numGroups pool indices: priority hints first, then a
// shuffled walk over the candidate indices, then cycling.
func (g *generator) selectCards(poolSize, numGroups int) []int {
	selected := make([]int, 0, numGroups)
	seen := make(map[int]bool, numGroups)

	for _, idx := range g.priority {
		if len(selected) == numGroups {
			break
		}
		if idx < 0 || idx >= poolSize || seen[idx] {
			continue
		}
		selected = append(selected, idx)
		seen[idx] = true
	}

	candidates := g.candidates(poolSize)
	order := make([]int, len(candidates))
	copy(order, candidates)
	g.shuffler.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	for _, idx := range order {
		if len(selected) == numGroups {
			break
		}
		if seen[idx] {
			continue
		}
		selected = append(selected, idx)
		seen[idx] = true
	}

	// Pool smaller than the group count: cycle so the grid always fills.
	for i := 0; len(selected) < numGroups; i++ {
		selected = append(selected, candidates[i%len(candidates)])
	}

	return selected
}

// candidates returns the sampleable pool indices after mastery exclusion.
// Falls back to the full pool when exclusion would leave nothing to sample.
func (g *generator) candidates(poolSize int) []int {
	candidates := make([]int, 0, poolSize)
	for i := 0; i < poolSize; i++ {
		if !g.excluded[i] {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		for i := 0; i < poolSize; i++ {
			candidates = append(candidates, i)
		}
	}
	return candidates
}
