package session

import (
	"log/slog"
	"time"

	"github.com/studykit/matchgrid/internal/deck"
	"github.com/studykit/matchgrid/internal/grid"
)

// MasteryProvider supplies the pool indices a learner has already mastered
// for a deck. Consulted at grid generation when the configuration excludes
// mastered cards; the engine itself does no mastery bookkeeping.
type MasteryProvider interface {
	MasteredIndices(deckID string) map[int]bool
}

// Engine is the single-owner session state machine.
//
// All operations are synchronous and run to completion; ordering is
// caller-determined. Operations against a missing session are silent
// no-ops - a stale UI event arriving after End() is an expected race, not
// a programming error.
type Engine struct {
	rec      *Record
	kv       KV
	mastery  MasteryProvider
	now      func() time.Time
	gridOpts []grid.Option
}

// Option configures an Engine.
type Option func(*Engine)

// WithMastery installs a mastery provider. Without one, every card is
// sampleable regardless of the include-mastered toggle.
func WithMastery(m MasteryProvider) Option {
	return func(e *Engine) { e.mastery = m }
}

// WithNow overrides the wall clock. Tests use a deterministic clock so
// elapsed-time assertions are exact.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithGridOptions forwards options (shuffler, id generator) to every grid
// generation this engine performs.
func WithGridOptions(opts ...grid.Option) Option {
	return func(e *Engine) { e.gridOpts = opts }
}

// New creates an engine persisting through kv. A nil kv is allowed for
// purely in-memory play; Save and Load then degrade to no-ops.
func New(kv KV, opts ...Option) *Engine {
	e := &Engine{
		kv:  kv,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Record returns the current session record, or nil when idle.
// Callers read it every render tick; only the engine mutates it.
func (e *Engine) Record() *Record {
	return e.rec
}

// Start begins a session for a deck at round 1, generating the initial
// grid. Any existing session is simply overwritten - ending the previous
// one first is the caller's responsibility.
//
// The pool is copied so later rounds see the cards as they were at start,
// regardless of what the caller does with its slice afterwards.
func (e *Engine) Start(deckID string, cfg deck.MatchConfig, pool []deck.Card) *Record {
	poolCopy := make([]deck.Card, len(pool))
	copy(poolCopy, pool)

	e.rec = &Record{
		DeckID:          deckID,
		Round:           1,
		StartedAt:       e.now(),
		Grid:            grid.Generate(poolCopy, cfg, e.generateOpts(deckID, cfg, nil)...),
		Selected:        []string{},
		CompletedGroups: [][]string{},
		MissHistory:     []int{},
		Config:          cfg,
		Pool:            poolCopy,
	}

	slog.Info("session started",
		"deck", deckID,
		"kind", cfg.Kind,
		"tiles", len(e.rec.Grid),
		"pool", len(poolCopy),
	)

	return e.rec
}

// Pause marks the session paused and remembers when, so Resume can
// accumulate the time spent. No-op when idle or already paused.
func (e *Engine) Pause() {
	if e.rec == nil || e.rec.Paused {
		return
	}
	at := e.now()
	e.rec.Paused = true
	e.rec.PausedAt = &at
	slog.Debug("session paused", "deck", e.rec.DeckID)
}

// Resume clears the pause flag and folds the pause into PausedFor.
// Elapsed time is never reset - it is computed by the caller from
// StartedAt minus the accumulated paused duration.
func (e *Engine) Resume() {
	if e.rec == nil || !e.rec.Paused {
		return
	}
	if e.rec.PausedAt != nil {
		e.rec.PausedFor += e.now().Sub(*e.rec.PausedAt)
	}
	e.rec.Paused = false
	e.rec.PausedAt = nil
	slog.Debug("session resumed", "deck", e.rec.DeckID, "paused_for", e.rec.PausedFor)
}

// SelectTile toggles a tile's membership in the selection: select if
// absent, deselect if present. No-op when idle, when the id is unknown, or
// when the tile is already matched.
func (e *Engine) SelectTile(id string) {
	if e.rec == nil {
		return
	}
	tile := e.rec.Tile(id)
	if tile == nil || tile.Matched {
		return
	}

	for i, sel := range e.rec.Selected {
		if sel == id {
			e.rec.Selected = append(e.rec.Selected[:i], e.rec.Selected[i+1:]...)
			tile.Selected = false
			return
		}
	}
	e.rec.Selected = append(e.rec.Selected, id)
	tile.Selected = true
}

// ClearSelection empties the selection and clears every tile's selected
// flag. Performs no match evaluation - the caller invokes it after the
// "show the wrong answer" beat.
func (e *Engine) ClearSelection() {
	if e.rec == nil {
		return
	}
	for i := range e.rec.Grid {
		e.rec.Grid[i].Selected = false
	}
	e.rec.Selected = e.rec.Selected[:0]
}

// ProcessMatch evaluates the current selection and applies the result.
//
// On a match, the selected tiles become matched, the group is recorded, and
// the selection is cleared. On a real mismatch - exactly RequiredCount
// tiles selected, differing group keys - each selected tile's card index is
// recorded in the round's miss history (deduplicated) and the selection is
// left in place for the caller to clear. An under- or over-sized selection
// changes nothing.
//
// The validator's result is returned to the caller unchanged.
func (e *Engine) ProcessMatch() MatchResult {
	if e.rec == nil {
		return MatchResult{}
	}

	selected := make([]deck.Tile, 0, len(e.rec.Selected))
	for _, id := range e.rec.Selected {
		if tile := e.rec.Tile(id); tile != nil {
			selected = append(selected, *tile)
		}
	}

	result := Evaluate(selected, e.rec.Config)

	if result.IsMatch {
		for _, id := range result.MatchedIDs {
			if tile := e.rec.Tile(id); tile != nil {
				tile.Matched = true
				tile.Selected = false
			}
		}
		e.rec.CompletedGroups = append(e.rec.CompletedGroups, result.MatchedIDs)
		e.rec.Selected = []string{}

		slog.Debug("match completed",
			"deck", e.rec.DeckID,
			"groups", len(e.rec.CompletedGroups),
			"matched", e.rec.MatchedCount(),
		)
		return result
	}

	// Only a full-sized selection counts as a real mismatch worth
	// remembering; "not enough selected yet" is not a miss.
	if len(selected) == e.rec.Config.RequiredCount() {
		for _, tile := range selected {
			e.recordMiss(tile.CardIndex)
		}
		slog.Debug("mismatch recorded",
			"deck", e.rec.DeckID,
			"miss_history", len(e.rec.MissHistory),
		)
	}

	return result
}

// recordMiss appends a card index to the miss history exactly once.
func (e *Engine) recordMiss(cardIndex int) {
	for _, idx := range e.rec.MissHistory {
		if idx == cardIndex {
			return
		}
	}
	e.rec.MissHistory = append(e.rec.MissHistory, cardIndex)
}

// StartNewRound resets round-scoped state, increments the round counter and
// regenerates the grid from the retained card pool.
//
// Card selection priority comes from the caller's indices; a nil argument
// falls back to the round's own miss history, so the default continuation
// brings previously missed cards back first.
func (e *Engine) StartNewRound(priority []int) *Record {
	if e.rec == nil {
		return nil
	}

	if priority == nil && len(e.rec.MissHistory) > 0 {
		priority = e.rec.MissHistory
	}

	e.rec.Round++
	e.rec.Selected = []string{}
	e.rec.CompletedGroups = [][]string{}
	e.rec.Grid = grid.Generate(e.rec.Pool, e.rec.Config, e.generateOpts(e.rec.DeckID, e.rec.Config, priority)...)
	e.rec.MissHistory = []int{}

	slog.Info("new round started",
		"deck", e.rec.DeckID,
		"round", e.rec.Round,
		"priority", len(priority),
	)

	return e.rec
}

// End discards the session record, returning the engine to idle. Persisted
// state for the deck is left untouched; a later Load can resurrect it.
func (e *Engine) End() {
	if e.rec == nil {
		return
	}
	slog.Info("session ended", "deck", e.rec.DeckID, "round", e.rec.Round)
	e.rec = nil
}

// generateOpts assembles the grid options for one generation: the engine's
// standing options plus per-call priority and mastery exclusion.
func (e *Engine) generateOpts(deckID string, cfg deck.MatchConfig, priority []int) []grid.Option {
	opts := make([]grid.Option, 0, len(e.gridOpts)+2)
	opts = append(opts, e.gridOpts...)
	if len(priority) > 0 {
		opts = append(opts, grid.WithPriority(priority))
	}
	if !cfg.IncludeMastered && e.mastery != nil {
		opts = append(opts, grid.WithExcluded(e.mastery.MasteredIndices(deckID)))
	}
	return opts
}
