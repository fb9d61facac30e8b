package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"subtransfer/internal/align"
	"subtransfer/internal/journal"
)

var errJournalDisabled = errors.New("the run journal is disabled (journal.enabled = false)")

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded import runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(ctx, func(store *journal.Store) error {
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if asJSON {
					if runs == nil {
						runs = []journal.Run{}
					}
					return writeJSON(cmd, runs)
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded yet")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						shortID(run.ID),
						run.StartedAt.Local().Format("2006-01-02 15:04"),
						string(run.Status),
						filepath.Base(run.ScriptPath),
						filepath.Base(run.SubtitlePath),
						strconv.Itoa(run.Applied),
						strconv.Itoa(run.Warnings),
						strconv.Itoa(run.Errors),
					})
				}
				fmt.Fprintln(out, renderTable([]column{
					{title: "Run"},
					{title: "Started"},
					{title: "Status"},
					{title: "Script"},
					{title: "Subtitle"},
					{title: "Lines", right: true},
					{title: "Warn", right: true},
					{title: "Err", right: true},
				}, rows))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print runs as JSON")

	cmd.AddCommand(newHistoryShowCommand(ctx))
	cmd.AddCommand(newHistoryPruneCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <run>",
		Short: "Show one run and its diagnostics",
		Long:  "Show one run. The run ID may be shortened to any unique prefix.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(ctx, func(store *journal.Store) error {
				run, err := store.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				diags, err := store.Diagnostics(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				if asJSON {
					if diags == nil {
						diags = []align.Diagnostic{}
					}
					return writeJSON(cmd, struct {
						Run         *journal.Run       `json:"run"`
						Diagnostics []align.Diagnostic `json:"diagnostics"`
					}{run, diags})
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintf(out, "Run:       %s\n", run.ID)
				fmt.Fprintf(out, "Status:    %s\n", run.Status)
				fmt.Fprintf(out, "Started:   %s (%s)\n", run.StartedAt.Local().Format(time.DateTime), run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
				fmt.Fprintf(out, "Script:    %s\n", run.ScriptPath)
				fmt.Fprintf(out, "Subtitle:  %s\n", run.SubtitlePath)
				if run.Filters != "" {
					fmt.Fprintf(out, "Filters:   %s\n", run.Filters)
				}
				fmt.Fprintf(out, "Blocks:    %d (%d written, %d duplicates, %d skipped, %d missing)\n",
					run.Blocks, run.Applied, run.Duplicates, run.Skipped, run.Missing)
				fmt.Fprintf(out, "Cues:      %d (%d overflow)\n", run.Cues, run.Overflow)
				if run.ErrorMessage != "" {
					fmt.Fprintf(out, "Error:     %s\n", paint(colorize, ansiRed, run.ErrorMessage))
				}
				if rows := diagnosticRows(diags, true, colorize); len(rows) > 0 {
					fmt.Fprintln(out, renderTable(diagnosticColumns, rows))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run as JSON")
	return cmd
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var keepDays int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete runs older than the retention window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keepDays < 0 {
				return fmt.Errorf("--keep-days must not be negative")
			}
			return withJournal(ctx, func(store *journal.Store) error {
				cutoff := time.Now().AddDate(0, 0, -keepDays)
				removed, err := store.Prune(cmd.Context(), cutoff)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", pluralize(int(removed), "run", "runs"))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&keepDays, "keep-days", 90, "Keep runs started within this many days")
	return cmd
}

func withJournal(ctx *commandContext, fn func(*journal.Store) error) error {
	store, err := ctx.openJournal()
	if err != nil {
		return err
	}
	if store == nil {
		return errJournalDisabled
	}
	defer store.Close()
	return fn(store)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
