package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"subtransfer/internal/align"
	"subtransfer/internal/config"
	"subtransfer/internal/cues"
	"subtransfer/internal/journal"
	"subtransfer/internal/logging"
	"subtransfer/internal/script"
	"subtransfer/internal/textfilter"
)

type importFlags struct {
	overrideNames bool
	dupeAll       bool
	filters       string
	dryRun        bool
	noBackup      bool
	verbose       bool
	json          bool
}

// importResult is the JSON shape of `import --json`.
type importResult struct {
	Run    journal.Run  `json:"run"`
	Report align.Report `json:"report"`
	Backup string       `json:"backup,omitempty"`
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <script> <subtitle>",
		Short: "Fill a script file with the lines of a subtitle file",
		Long: `Align the cues of an .ass, .srt or .txt subtitle file with the blocks of a
translation script and write the translations into the script.

Problems such as missing choices, gender duplicates or a subtitle file that
is too long or too short are listed after the run; none of them stop it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyImportFlags(cmd, cfg, flags); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := ctx.openJournal()
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}

			result, runErr := runImport(cmd.Context(), cfg, logger, args[0], args[1], flags.dryRun)
			if store != nil {
				if err := store.RecordRun(context.WithoutCancel(cmd.Context()), &result.Run, result.Report.Diagnostics); err != nil {
					logging.WarnWithContext(logger, "run not recorded", "journal_write_failed",
						logging.String(logging.FieldRunID, result.Run.ID),
						logging.Error(err),
						logging.String(logging.FieldErrorHint, "check journal.path or disable the journal"),
						logging.String(logging.FieldImpact, "run missing from history"),
					)
				}
			}
			if runErr != nil {
				return runErr
			}

			if flags.json {
				return writeJSON(cmd, result)
			}
			printImportSummary(cmd, result, flags.verbose)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.overrideNames, "override-names", false, "Replace speaker names that are already translated")
	cmd.Flags().BoolVar(&flags.dupeAll, "dupe-all", false, "Also check monologue and player lines for gender duplicates")
	cmd.Flags().StringVar(&flags.filters, "filter", "", "Comma separated text filters: "+strings.Join(textfilter.Known(), ", "))
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "Align and report without writing the script")
	cmd.Flags().BoolVar(&flags.noBackup, "no-backup", false, "Do not copy the script to <script>.bak before writing")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Also list informational diagnostics")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Print the run as JSON")
	return cmd
}

// applyImportFlags layers explicitly set flags over the loaded config.
func applyImportFlags(cmd *cobra.Command, cfg *config.Config, flags importFlags) error {
	if cmd.Flags().Changed("override-names") {
		cfg.Align.OverrideNames = flags.overrideNames
	}
	if cmd.Flags().Changed("dupe-all") {
		cfg.Align.DupeCheckAll = flags.dupeAll
	}
	if cmd.Flags().Changed("filter") {
		set, err := textfilter.Parse(flags.filters)
		if err != nil {
			return err
		}
		cfg.Align.Filters = set.Names()
	}
	if flags.noBackup {
		cfg.Align.Backup = false
	}
	return nil
}

// runImport performs one import. The returned result is filled in as far as
// the run got, so failed runs can still be journaled.
func runImport(ctx context.Context, cfg *config.Config, logger *slog.Logger, scriptPath, subtitlePath string, dryRun bool) (importResult, error) {
	started := time.Now()
	result := importResult{Run: journal.Run{
		ID:           uuid.NewString(),
		StartedAt:    started,
		Status:       journal.StatusFailed,
		ScriptPath:   absPath(scriptPath),
		SubtitlePath: absPath(subtitlePath),
		Filters:      strings.Join(cfg.Align.Filters, ","),
	}}
	ctx = logging.WithRunID(ctx, result.Run.ID)
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "import"))

	err := importInto(ctx, cfg, logger, &result, dryRun)
	result.Run.FinishedAt = time.Now()
	if err != nil {
		result.Run.ErrorMessage = err.Error()
		logger.Error("import failed", logging.Error(err))
		return result, err
	}
	if dryRun {
		result.Run.Status = journal.StatusDryRun
	} else {
		result.Run.Status = journal.StatusSaved
	}
	return result, nil
}

func importInto(ctx context.Context, cfg *config.Config, logger *slog.Logger, result *importResult, dryRun bool) error {
	opts, err := align.FromConfig(cfg.Align)
	if err != nil {
		return err
	}

	format, err := cues.FormatOf(result.Run.SubtitlePath)
	if err != nil {
		return err
	}
	result.Run.Format = string(format)

	list, err := cues.Load(result.Run.SubtitlePath, cues.Options{
		Filters:        opts.Filters,
		ChoiceSpeakers: cfg.Align.ChoiceSpeakers,
	})
	if err != nil {
		return err
	}
	logger.Debug("subtitle loaded",
		logging.String(logging.FieldPath, result.Run.SubtitlePath),
		logging.Int("cues", len(list)),
	)

	file, err := script.Open(result.Run.ScriptPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.Warn("script unlock failed", logging.Error(cerr))
		}
	}()
	logger.Debug("script opened",
		logging.String(logging.FieldPath, file.Path()),
		logging.String(logging.FieldScriptKind, file.Kind()),
		logging.String("bundle", file.Bundle()),
		logging.Int("blocks", len(file.Blocks())),
	)
	if err := ctx.Err(); err != nil {
		return err
	}

	engine := align.NewEngine(opts, logger)
	report := engine.Run(file.Kind(), file.Blocks(), list)
	result.Report = report
	result.Run.Absorb(report)

	if dryRun {
		logger.Info("dry run, script left unchanged", logging.String(logging.FieldPath, file.Path()))
		return nil
	}
	if cfg.Align.Backup {
		backup, err := file.Backup()
		if err != nil {
			return err
		}
		result.Backup = backup
	}
	if err := file.Save(); err != nil {
		return err
	}
	logger.Info("script saved",
		logging.String(logging.FieldPath, file.Path()),
		logging.Int("applied", report.Applied),
	)
	return nil
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func printImportSummary(cmd *cobra.Command, result importResult, verbose bool) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	report := result.Report

	verb := "Imported"
	if result.Run.Status == journal.StatusDryRun {
		verb = "Dry run:"
	}
	fmt.Fprintf(out, "%s %s into %s (%s, %s)\n",
		verb,
		pluralize(report.Consumed, "cue", "cues"),
		filepath.Base(result.Run.ScriptPath),
		pluralize(report.Applied, "line", "lines")+" written",
		pluralize(report.Duplicates, "duplicate", "duplicates"),
	)
	if result.Backup != "" {
		fmt.Fprintf(out, "Backup: %s\n", result.Backup)
	}

	rows := diagnosticRows(report.Diagnostics, verbose, colorize)
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(diagnosticColumns, rows))
	}

	warnings := report.Count(align.SeverityWarning)
	errs := report.Count(align.SeverityError)
	switch {
	case errs > 0:
		fmt.Fprintln(out, paint(colorize, ansiRed, fmt.Sprintf("%s, %s", pluralize(errs, "error", "errors"), pluralize(warnings, "warning", "warnings"))))
	case warnings > 0:
		fmt.Fprintln(out, paint(colorize, ansiYellow, pluralize(warnings, "warning", "warnings")))
	default:
		fmt.Fprintln(out, paint(colorize, ansiGreen, "No problems found"))
	}
	fmt.Fprintf(out, "Run %s\n", result.Run.ID)
}
