package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"subtransfer/internal/align"
)

// Status is the outcome of an import run.
type Status string

const (
	// StatusSaved: blocks were written back to the script file.
	StatusSaved Status = "saved"
	// StatusDryRun: alignment ran but nothing was written.
	StatusDryRun Status = "dry_run"
	// StatusFailed: the run stopped on a fatal error.
	StatusFailed Status = "failed"
)

var (
	// ErrRunNotFound is returned when no run matches an ID.
	ErrRunNotFound = errors.New("run not found")
	// ErrAmbiguousRun is returned when an ID prefix matches several runs.
	ErrAmbiguousRun = errors.New("run id prefix is ambiguous")
)

// Run is one recorded import.
type Run struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	Status       Status    `json:"status"`
	ScriptPath   string    `json:"script_path"`
	SubtitlePath string    `json:"subtitle_path"`
	Format       string    `json:"format,omitempty"`
	ScriptKind   string    `json:"script_kind,omitempty"`
	Filters      string    `json:"filters,omitempty"`
	Blocks       int       `json:"blocks"`
	Cues         int       `json:"cues"`
	Applied      int       `json:"applied"`
	Duplicates   int       `json:"duplicates"`
	Skipped      int       `json:"skipped"`
	Missing      int       `json:"missing"`
	Overflow     int       `json:"overflow"`
	Warnings     int       `json:"warnings"`
	Errors       int       `json:"errors"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// Absorb copies the counters of an alignment report into the run.
func (r *Run) Absorb(report align.Report) {
	r.ScriptKind = report.ScriptKind
	r.Blocks = report.Blocks
	r.Cues = report.Cues
	r.Applied = report.Applied
	r.Duplicates = report.Duplicates
	r.Skipped = report.Skipped
	r.Missing = report.Missing
	r.Overflow = report.Overflow
	r.Warnings = report.Count(align.SeverityWarning)
	r.Errors = report.Count(align.SeverityError)
}

const runColumns = "id, started_at, finished_at, status, script_path, subtitle_path, format, script_kind, filters, blocks, cues, applied, duplicates, skipped, missing, overflow, warnings, errors, error_message"

// RecordRun stores run and its diagnostics in one transaction.
func (s *Store) RecordRun(ctx context.Context, run *Run, diagnostics []align.Diagnostic) error {
	if run == nil || run.ID == "" {
		return errors.New("run id is required")
	}
	return retryOnBusy(ctx, func() error {
		return s.recordRun(ctx, run, diagnostics)
	})
}

func (s *Store) recordRun(ctx context.Context, run *Run, diagnostics []align.Diagnostic) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(timeLayout),
		run.FinishedAt.UTC().Format(timeLayout),
		run.Status,
		run.ScriptPath,
		run.SubtitlePath,
		nullableString(run.Format),
		nullableString(run.ScriptKind),
		nullableString(run.Filters),
		run.Blocks,
		run.Cues,
		run.Applied,
		run.Duplicates,
		run.Skipped,
		run.Missing,
		run.Overflow,
		run.Warnings,
		run.Errors,
		nullableString(run.ErrorMessage),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO diagnostics (run_id, seq, kind, severity, block, cue, text, message) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare diagnostic insert: %w", err)
	}
	defer stmt.Close()
	for i, d := range diagnostics {
		if _, err := stmt.ExecContext(ctx, run.ID, i, d.Kind, d.Severity, d.Block, d.Cue, nullableString(d.Text), d.Message); err != nil {
			return fmt.Errorf("insert diagnostic %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first. A limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRun fetches a run by its full ID or a unique prefix of it.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	if id == "" {
		return nil, ErrRunNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR substr(id, 1, ?) = ? ORDER BY id LIMIT 2`,
		id, len(id), id)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var found []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.ID == id {
			return run, nil
		}
		found = append(found, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRun, id)
	}
}

// Diagnostics returns a run's diagnostics in the order they were raised.
func (s *Store) Diagnostics(ctx context.Context, runID string) ([]align.Diagnostic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, severity, block, cue, text, message FROM diagnostics WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("list diagnostics: %w", err)
	}
	defer rows.Close()

	var out []align.Diagnostic
	for rows.Next() {
		var (
			d    align.Diagnostic
			text sql.NullString
		)
		if err := rows.Scan(&d.Kind, &d.Severity, &d.Block, &d.Cue, &text, &d.Message); err != nil {
			return nil, fmt.Errorf("scan diagnostic: %w", err)
		}
		d.Text = text.String
		out = append(out, d)
	}
	return out, rows.Err()
}

// Prune deletes runs that started before cutoff and returns how many went.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoff.UTC().Format(timeLayout))
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return removed, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run                               Run
		startedRaw, finishedRaw           string
		status                            string
		format, kind, filters, errMessage sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&startedRaw,
		&finishedRaw,
		&status,
		&run.ScriptPath,
		&run.SubtitlePath,
		&format,
		&kind,
		&filters,
		&run.Blocks,
		&run.Cues,
		&run.Applied,
		&run.Duplicates,
		&run.Skipped,
		&run.Missing,
		&run.Overflow,
		&run.Warnings,
		&run.Errors,
		&errMessage,
	); err != nil {
		return nil, err
	}
	run.StartedAt = parseTimeString(startedRaw)
	run.FinishedAt = parseTimeString(finishedRaw)
	run.Status = Status(status)
	run.Format = format.String
	run.ScriptKind = kind.String
	run.Filters = filters.String
	run.ErrorMessage = errMessage.String
	return &run, nil
}
