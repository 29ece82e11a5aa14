package grid

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces unique tile ids.
// Implemented by UUIDGenerator (production) and SequentialGenerator (tests).
type IDGenerator interface {
	NextID() string
}

// UUIDGenerator generates time-sortable UUIDv7 tile ids.
//
// UUIDv7 embeds a timestamp in the most significant bits, so tile ids sort
// by creation time, which is convenient when eyeballing persisted sessions.
//
// Thread-safety: UUIDGenerator is stateless and safe for concurrent use.
type UUIDGenerator struct{}

// NextID creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDGenerator) NextID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SequentialGenerator returns "tile-0", "tile-1", ... in order.
//
// This enables deterministic grid generation for golden-file comparison:
// tests can predict exactly which id every tile receives.
//
// Thread-safety: safe for concurrent use via internal mutex, though grid
// generation itself is single-threaded.
type SequentialGenerator struct {
	mu   sync.Mutex
	next int
}

// NewSequentialGenerator creates a generator starting at "tile-0".
func NewSequentialGenerator() *SequentialGenerator {
	return &SequentialGenerator{}
}

// NextID returns the next sequential tile id.
func (g *SequentialGenerator) NextID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := fmt.Sprintf("tile-%d", g.next)
	g.next++
	return id
}
