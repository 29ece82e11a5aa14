package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studykit/matchgrid/internal/store"
)

// NewDecksCommand creates the decks command group.
func NewDecksCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decks",
		Short: "Manage the deck library",
	}

	cmd.AddCommand(newDecksImportCommand(rootOpts))
	cmd.AddCommand(newDecksListCommand(rootOpts))

	return cmd
}

func newDecksImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <deck-dir>",
		Short: "Import CUE deck files into the library",
		Long: `Validate and import every deck found in a directory of CUE files.

Re-importing an existing deck replaces its cards wholesale. Saved sessions
reference cards by pool index, so re-import a deck only when no session
for it needs resuming.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecksImport(rootOpts, args[0], cmd)
		},
	}
}

func runDecksImport(opts *RootOptions, deckDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result, loadErrors := LoadDecks(deckDir, LoadModeFailFast)
	if len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			formatter.Error(loadErr.Code, loadErr.Message, nil)
		} else {
			formatter.Error(ErrCodeGeneric, loadErrors[0].Error(), nil)
		}
		return NewExitError(ExitFailure, "import aborted: deck files invalid")
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	for _, d := range result.Decks {
		if err := st.WriteDeck(ctx, d); err != nil {
			formatter.Error(ErrCodeStore, err.Error(), nil)
			return NewExitError(ExitCommandError, "import failed")
		}
		formatter.VerboseLog("imported deck %s (%d cards)", d.ID, len(d.Cards))
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]any{"imported": len(result.Decks)})
	}
	fmt.Fprintf(formatter.Writer, "Imported %d deck(s)\n", len(result.Decks))
	return nil
}

func newDecksListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List decks in the library",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecksList(rootOpts, cmd)
		},
	}
}

func runDecksList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer st.Close()

	infos, err := st.ListDecks(cmd.Context())
	if err != nil {
		formatter.Error(ErrCodeStore, err.Error(), nil)
		return NewExitError(ExitCommandError, "list failed")
	}

	if opts.Format == "json" {
		return formatter.Success(infos)
	}

	if len(infos) == 0 {
		fmt.Fprintln(formatter.Writer, "No decks imported yet.")
		return nil
	}
	for _, info := range infos {
		fmt.Fprintf(formatter.Writer, "%-20s %-30s %d cards\n", info.ID, info.Name, info.Cards)
	}
	return nil
}
