package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/studykit/matchgrid/internal/deck"
	"github.com/studykit/matchgrid/internal/session"
	"github.com/studykit/matchgrid/internal/store"
)

// playOptions holds flags for the play command.
type playOptions struct {
	Rows   int
	Cols   int
	Mode   string
	Sides  []string
	Resume bool
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	playOpts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play <deck-id>",
		Short: "Play a match session against an imported deck",
		Long: `Start (or resume) an interactive match session.

Tiles are numbered; enter a number to toggle its selection. When the
selection reaches the required size it is evaluated automatically. The
session is saved after every evaluation, so an interrupted game can be
picked up with --resume.

Commands during play:
  <number>  toggle tile selection
  n         start the next round (after clearing the grid)
  p / r     pause / resume the timer
  q         save and quit`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(rootOpts, playOpts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&playOpts.Rows, "rows", 3, "grid rows")
	cmd.Flags().IntVar(&playOpts.Cols, "cols", 4, "grid columns")
	cmd.Flags().StringVar(&playOpts.Mode, "mode", "two_way", "match mode (two_way|three_way)")
	cmd.Flags().StringSliceVar(&playOpts.Sides, "sides", nil, "side identifiers to match (defaults per mode)")
	cmd.Flags().BoolVar(&playOpts.Resume, "resume", false, "resume the saved session for this deck")

	return cmd
}

func runPlay(opts *RootOptions, playOpts *playOptions, deckID string, cmd *cobra.Command) error {
	st, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	eng := session.New(st)

	rec, err := resolveSession(ctx, eng, st, deckID, playOpts, out)
	if err != nil {
		return err
	}

	return playLoop(ctx, eng, rec, cmd.InOrStdin(), out)
}

// resolveSession loads the saved session when --resume was given and a
// usable one exists, otherwise starts a fresh session from the deck
// library.
func resolveSession(ctx context.Context, eng *session.Engine, st *store.Store, deckID string, playOpts *playOptions, out io.Writer) (*session.Record, error) {
	if playOpts.Resume {
		rec, err := eng.Load(ctx, deckID)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "load session", err)
		}
		if rec != nil && !rec.RoundComplete() {
			fmt.Fprintf(out, "Resuming round %d (%d/%d matched)\n", rec.Round, rec.MatchedCount(), len(rec.Grid))
			if rec.Paused {
				eng.Resume()
			}
			return rec, nil
		}
		// No stored state, corrupt state, or a finished round: fall
		// through to a fresh start.
		fmt.Fprintln(out, "Nothing to resume, starting fresh.")
	}

	d, err := st.ReadDeck(ctx, deckID)
	if err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("deck %q is not imported (try: matchgrid decks import)", deckID))
		}
		return nil, WrapExitError(ExitCommandError, "read deck", err)
	}

	cfg, err := buildPlayConfig(playOpts)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	return eng.Start(deckID, cfg, d.Cards), nil
}

// buildPlayConfig turns play flags into a match configuration.
func buildPlayConfig(playOpts *playOptions) (deck.MatchConfig, error) {
	total := playOpts.Rows * playOpts.Cols
	if playOpts.Rows < 2 || playOpts.Cols < 2 || total < 6 {
		return deck.MatchConfig{}, fmt.Errorf("grid must be at least 2x2 with 6 tiles, got %dx%d", playOpts.Rows, playOpts.Cols)
	}

	switch playOpts.Mode {
	case string(deck.KindTwoWay):
		sides := playOpts.Sides
		if len(sides) == 0 {
			sides = []string{"side_a", "side_b"}
		}
		if len(sides) != 2 {
			return deck.MatchConfig{}, fmt.Errorf("two_way needs exactly 2 sides, got %d", len(sides))
		}
		if total%2 != 0 {
			return deck.MatchConfig{}, fmt.Errorf("two_way needs an even tile count, got %d", total)
		}
		return deck.TwoWay(playOpts.Rows, playOpts.Cols, sides[0], sides[1]), nil

	case string(deck.KindThreeWay):
		sides := playOpts.Sides
		if len(sides) == 0 {
			sides = []string{"side_a", "side_b", "side_c"}
		}
		if len(sides) != 3 {
			return deck.MatchConfig{}, fmt.Errorf("three_way needs exactly 3 sides, got %d", len(sides))
		}
		if total%3 != 0 {
			return deck.MatchConfig{}, fmt.Errorf("three_way needs a tile count divisible by 3, got %d", total)
		}
		return deck.ThreeWay(playOpts.Rows, playOpts.Cols, sides[0], sides[1], sides[2]), nil

	default:
		return deck.MatchConfig{}, fmt.Errorf("unknown mode %q", playOpts.Mode)
	}
}

// playLoop runs the interactive command loop until the player quits.
func playLoop(ctx context.Context, eng *session.Engine, rec *session.Record, in io.Reader, out io.Writer) error {
	renderGrid(out, rec)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())

		switch input {
		case "":
			continue

		case "q":
			if err := eng.Save(ctx); err != nil {
				return WrapExitError(ExitCommandError, "save session", err)
			}
			fmt.Fprintln(out, "Saved. Bye.")
			return nil

		case "p":
			eng.Pause()
			fmt.Fprintln(out, "Paused.")
			continue

		case "r":
			eng.Resume()
			fmt.Fprintln(out, "Resumed.")
			continue

		case "n":
			if !rec.RoundComplete() {
				fmt.Fprintln(out, "Finish the round first.")
				continue
			}
			rec = eng.StartNewRound(nil)
			fmt.Fprintf(out, "Round %d!\n", rec.Round)
			renderGrid(out, rec)
			continue
		}

		num, err := strconv.Atoi(input)
		if err != nil || num < 1 || num > len(rec.Grid) {
			fmt.Fprintln(out, "Enter a tile number, n, p, r or q.")
			continue
		}

		eng.SelectTile(rec.Grid[num-1].ID)

		if len(rec.Selected) == rec.Config.RequiredCount() {
			result := eng.ProcessMatch()
			if result.IsMatch {
				fmt.Fprintln(out, "Match!")
			} else {
				fmt.Fprintln(out, "No match.")
				eng.ClearSelection()
			}
			if err := eng.Save(ctx); err != nil {
				return WrapExitError(ExitCommandError, "save session", err)
			}
		}

		renderGrid(out, rec)

		if rec.RoundComplete() {
			fmt.Fprintf(out, "Round %d complete in %s. Enter n for the next round or q to quit.\n",
				rec.Round, rec.Elapsed(time.Now()).Round(time.Second))
		}
	}

	return scanner.Err()
}

// renderGrid prints the current grid, numbering tiles in position order.
// Matched tiles show as dashes, selected tiles are bracketed.
func renderGrid(out io.Writer, rec *session.Record) {
	fmt.Fprintln(out)
	for row := 0; row < rec.Config.Rows; row++ {
		for col := 0; col < rec.Config.Cols; col++ {
			idx := row*rec.Config.Cols + col
			if idx >= len(rec.Grid) {
				break
			}
			tile := rec.Grid[idx]
			label := strings.ReplaceAll(tile.Content, deck.ContentSeparator, "/")
			switch {
			case tile.Matched:
				label = "---"
			case tile.Selected:
				label = "[" + label + "]"
			}
			fmt.Fprintf(out, "%3d:%-18s", idx+1, label)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out)
}
