package grid

import (
	"math/rand"
	"time"
)

// Shuffler abstracts the two places Generate uses randomness: sampling
// cards from the pool and shuffling the emitted tiles.
// Implemented by randShuffler (production) and FixedOrder (tests).
type Shuffler interface {
	// Shuffle pseudo-randomizes the order of n elements via swap.
	Shuffle(n int, swap func(i, j int))
}

// NewRandShuffler returns a Shuffler backed by math/rand, seeded from the
// wall clock.
func NewRandShuffler() Shuffler {
	return randShuffler{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededShuffler returns a Shuffler backed by math/rand with a fixed
// seed. Same seed, same grid.
func NewSeededShuffler(seed int64) Shuffler {
	return randShuffler{rng: rand.New(rand.NewSource(seed))}
}

type randShuffler struct {
	rng *rand.Rand
}

func (s randShuffler) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}

// FixedOrder is the identity shuffler: it leaves every sequence untouched.
//
// With FixedOrder, card selection walks the pool in index order and tiles
// stay in emission order (all tiles of the first side config, then the
// second, and so on). The conformance harness relies on this to hand-write
// golden grids.
type FixedOrder struct{}

func (FixedOrder) Shuffle(int, func(i, j int)) {}
