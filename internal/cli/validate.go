package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ValidationIssue is one problem found in a deck directory.
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationReport holds validation results for a deck directory.
type ValidationReport struct {
	Valid  bool              `json:"valid"`
	Decks  int               `json:"decks"`
	Files  int               `json:"files"`
	Issues []ValidationIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <deck-dir>",
		Short: "Validate deck CUE files without importing them",
		Long: `Validate CUE deck definitions against the deck schema.

Checks syntax, schema conformance and that every deck has cards, without
touching the database. All problems are collected and reported together.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, deckDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	result, loadErrors := LoadDecks(deckDir, LoadModeCollectAll)

	// Hard load failures (directory not found, no files) have no report to
	// build - surface them directly.
	if result == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			formatter.Error(loadErr.Code, loadErr.Message, nil)
		} else {
			formatter.Error(ErrCodeGeneric, loadErrors[0].Error(), nil)
		}
		return NewExitError(ExitCommandError, "validation could not run")
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", result.FileCount, deckDir)

	report := ValidationReport{
		Valid: len(loadErrors) == 0,
		Decks: len(result.Decks),
		Files: result.FileCount,
	}
	for _, err := range loadErrors {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			report.Issues = append(report.Issues, ValidationIssue{Code: loadErr.Code, Message: loadErr.Error()})
		} else {
			report.Issues = append(report.Issues, ValidationIssue{Code: ErrCodeGeneric, Message: err.Error()})
		}
	}

	if opts.Format == "json" {
		if err := formatter.Success(report); err != nil {
			return err
		}
	} else {
		if report.Valid {
			fmt.Fprintf(formatter.Writer, "OK: %d deck(s) in %d file(s)\n", report.Decks, report.Files)
		} else {
			for _, issue := range report.Issues {
				fmt.Fprintf(formatter.Writer, "Error [%s]: %s\n", issue.Code, issue.Message)
			}
		}
	}

	if !report.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation issue(s)", len(report.Issues)))
	}
	return nil
}
