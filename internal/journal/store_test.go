package journal_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"subtransfer/internal/align"
	"subtransfer/internal/journal"
	"subtransfer/internal/testsupport"
)

func mustOpen(t *testing.T) *journal.Store {
	t.Helper()
	store, err := journal.Open(testsupport.NewConfig(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRun(id string, started time.Time) *journal.Run {
	return &journal.Run{
		ID:           id,
		StartedAt:    started,
		FinishedAt:   started.Add(time.Second),
		Status:       journal.StatusSaved,
		ScriptPath:   "/scripts/010010001.json",
		SubtitlePath: "/subs/010010001.ass",
		Format:       "ass",
		Filters:      "npre",
	}
}

func TestRecordAndFetchRun(t *testing.T) {
	store := mustOpen(t)
	ctx := context.Background()

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	run := sampleRun("6f1c2b9e-0000-4000-8000-000000000001", started)
	diags := []align.Diagnostic{
		{Kind: align.KindDuplicate, Severity: align.SeverityInfo, Block: 4, Cue: 3, Text: "Hi", Message: "copied"},
		{Kind: align.KindShortage, Severity: align.SeverityWarning, Block: 9, Cue: -1, Message: "1 block"},
	}
	run.Absorb(align.Report{
		ScriptKind:  "story",
		Blocks:      10,
		Cues:        9,
		Applied:     8,
		Duplicates:  1,
		Diagnostics: diags,
	})
	if err := store.RecordRun(ctx, run, diags); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	got, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.ScriptKind != "story" || got.Applied != 8 || got.Warnings != 1 || got.Errors != 0 {
		t.Fatalf("unexpected run: %+v", got)
	}
	if !got.StartedAt.Equal(started) || got.Status != journal.StatusSaved {
		t.Fatalf("unexpected run metadata: %+v", got)
	}

	stored, err := store.Diagnostics(ctx, run.ID)
	if err != nil {
		t.Fatalf("Diagnostics: %v", err)
	}
	if len(stored) != 2 || stored[0] != diags[0] || stored[1] != diags[1] {
		t.Fatalf("diagnostics = %+v", stored)
	}
}

func TestGetRunByPrefix(t *testing.T) {
	store := mustOpen(t)
	ctx := context.Background()
	now := time.Now()
	for _, id := range []string{"abc-111", "abd-222"} {
		if err := store.RecordRun(ctx, sampleRun(id, now), nil); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	if run, err := store.GetRun(ctx, "abc"); err != nil || run.ID != "abc-111" {
		t.Fatalf("GetRun(abc) = %v, %v", run, err)
	}
	if _, err := store.GetRun(ctx, "ab"); !errors.Is(err, journal.ErrAmbiguousRun) {
		t.Fatalf("expected ambiguous error, got %v", err)
	}
	if _, err := store.GetRun(ctx, "zzz"); !errors.Is(err, journal.ErrRunNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store := mustOpen(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		if err := store.RecordRun(ctx, sampleRun(id, base.Add(time.Duration(i)*time.Hour)), nil); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "run-c" || runs[1].ID != "run-b" {
		t.Fatalf("unexpected order: %+v", runs)
	}

	all, err := store.ListRuns(ctx, 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("ListRuns(0) = %d runs, %v", len(all), err)
	}
}

func TestPruneCascadesDiagnostics(t *testing.T) {
	store := mustOpen(t)
	ctx := context.Background()
	old := sampleRun("old", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	fresh := sampleRun("fresh", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	diag := []align.Diagnostic{{Kind: align.KindOverflow, Severity: align.SeverityWarning, Block: -1, Cue: 4, Message: "full"}}
	for _, run := range []*journal.Run{old, fresh} {
		if err := store.RecordRun(ctx, run, diag); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	removed, err := store.Prune(ctx, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if d, err := store.Diagnostics(ctx, "old"); err != nil || len(d) != 0 {
		t.Fatalf("diagnostics of pruned run survived: %v %v", d, err)
	}
	if d, err := store.Diagnostics(ctx, "fresh"); err != nil || len(d) != 1 {
		t.Fatalf("diagnostics of kept run lost: %v %v", d, err)
	}
}

func TestRecordRunRejectsDuplicateID(t *testing.T) {
	store := mustOpen(t)
	ctx := context.Background()
	run := sampleRun("same", time.Now())
	if err := store.RecordRun(ctx, run, nil); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := store.RecordRun(ctx, run, nil); err == nil {
		t.Fatal("expected primary key violation")
	}
	if err := store.RecordRun(ctx, &journal.Run{}, nil); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	store, err := journal.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := journal.OpenPath(path); !errors.Is(err, journal.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
