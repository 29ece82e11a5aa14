package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/studykit/matchgrid/internal/grid"
	"github.com/studykit/matchgrid/internal/session"
	"github.com/studykit/matchgrid/internal/store"
	"github.com/studykit/matchgrid/internal/testutil"
)

// harnessEpoch is the fixed start instant of every scenario clock.
var harnessEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Harness executes one scenario against a real engine with deterministic
// collaborators injected.
type Harness struct {
	engine *session.Engine
	kv     *store.MemoryKV
	clock  *testutil.WallClock
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory key-value store, a frozen
// fake clock, sequential tile ids and the identity shuffler, so repeated
// runs produce byte-identical traces.
func Run(scenario *Scenario) (*Result, error) {
	cfg, err := scenario.Config.Build()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	kv := store.NewMemoryKV()
	clock := testutil.NewWallClock(harnessEpoch)

	h := &Harness{
		kv:    kv,
		clock: clock,
		engine: session.New(kv,
			session.WithNow(clock.Now),
			session.WithGridOptions(
				grid.WithShuffler(grid.FixedOrder{}),
				grid.WithIDGenerator(grid.NewSequentialGenerator()),
			),
		),
	}

	h.engine.Start(scenario.Deck.ID, cfg, scenario.Deck.Pool())

	result := NewResult()
	ctx := context.Background()

	for i, step := range scenario.Steps {
		event, err := h.executeStep(ctx, scenario, step)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: step %d: %w", scenario.Name, i, err)
		}
		result.Trace = append(result.Trace, event)
	}

	for _, errMsg := range EvaluateAssertions(h.engine.Record(), scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeStep runs one scripted action and snapshots the outcome.
func (h *Harness) executeStep(ctx context.Context, scenario *Scenario, step Step) (TraceEvent, error) {
	var event TraceEvent

	switch {
	case step.Select != "":
		h.engine.SelectTile(step.Select)
		event = TraceEvent{Type: "select", Tile: step.Select}

	case step.Process:
		res := h.engine.ProcessMatch()
		event = TraceEvent{
			Type:       "process",
			IsMatch:    boolPtr(res.IsMatch),
			MatchedIDs: res.MatchedIDs,
		}

	case step.Clear:
		h.engine.ClearSelection()
		event = TraceEvent{Type: "clear"}

	case step.NewRound != nil:
		h.engine.StartNewRound(step.NewRound.Priority)
		event = TraceEvent{Type: "new_round"}

	case step.Pause:
		h.engine.Pause()
		event = TraceEvent{Type: "pause", Paused: h.pausedPtr()}

	case step.Resume:
		h.engine.Resume()
		event = TraceEvent{Type: "resume", Paused: h.pausedPtr()}

	case step.Save:
		if err := h.engine.Save(ctx); err != nil {
			return TraceEvent{}, fmt.Errorf("save: %w", err)
		}
		event = TraceEvent{Type: "save"}

	case step.Load:
		rec, err := h.engine.Load(ctx, scenario.Deck.ID)
		if err != nil {
			return TraceEvent{}, fmt.Errorf("load: %w", err)
		}
		event = TraceEvent{Type: "load", Loaded: boolPtr(rec != nil)}

	case step.End:
		h.engine.End()
		event = TraceEvent{Type: "end"}

	case step.Advance != "":
		d, err := time.ParseDuration(step.Advance)
		if err != nil {
			return TraceEvent{}, fmt.Errorf("advance %q: %w", step.Advance, err)
		}
		h.clock.Advance(d)
		event = TraceEvent{Type: "advance"}

	default:
		return TraceEvent{}, fmt.Errorf("step has no action")
	}

	if rec := h.engine.Record(); rec != nil {
		event.Round = rec.Round
		event.Selected = len(rec.Selected)
		event.Matched = rec.MatchedCount()
		if len(rec.MissHistory) > 0 {
			event.MissHistory = append([]int{}, rec.MissHistory...)
		}
	}

	return event, nil
}

func (h *Harness) pausedPtr() *bool {
	if rec := h.engine.Record(); rec != nil {
		return boolPtr(rec.Paused)
	}
	return nil
}
