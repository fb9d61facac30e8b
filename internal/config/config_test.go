package config_test

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"subtransfer/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved != filepath.Join(tempHome, ".config", "subtransfer", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if want := filepath.Join(tempHome, ".local", "share", "subtransfer", "logs"); cfg.Paths.LogDir != want {
		t.Fatalf("log dir = %q, want %q", cfg.Paths.LogDir, want)
	}
	if want := filepath.Join(tempHome, ".local", "share", "subtransfer", "journal.db"); cfg.Journal.Path != want {
		t.Fatalf("journal path = %q, want %q", cfg.Journal.Path, want)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" || cfg.Logging.Color != "auto" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if len(cfg.Align.Filters) != 0 || cfg.Align.OverrideNames || cfg.Align.DupeCheckAll {
		t.Fatalf("unexpected align defaults: %+v", cfg.Align)
	}
	if !slices.Contains(cfg.Align.SkipNames, "") || !slices.Contains(cfg.Align.SkipNames, "<username>") {
		t.Fatalf("skip names lost the blank and player entries: %q", cfg.Align.SkipNames)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile("subtransfer.toml", []byte("[align]\noverride_names = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "subtransfer.toml" {
		t.Fatalf("expected project config, got %q exists=%v", resolved, exists)
	}
	if !cfg.Align.OverrideNames {
		t.Fatal("expected override_names from project config")
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[logging]
level = "DEBUG"
format = " JSON "

[align]
filters = ["BRAK", "npre", "brak", " "]
dupe_check_all = true
choice_speakers = ["Trainer", "trainer"]

[journal]
path = "~/runs.db"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SUBTRANSFER_LOG_LEVEL", "warn")
	t.Setenv("SUBTRANSFER_JOURNAL_ENABLED", "false")

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected explicit config to exist")
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("env override ignored, level = %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("format not normalized: %q", cfg.Logging.Format)
	}
	if !slices.Equal(cfg.Align.Filters, []string{"brak", "npre"}) {
		t.Fatalf("filters = %q", cfg.Align.Filters)
	}
	if !slices.Equal(cfg.Align.ChoiceSpeakers, []string{"trainer"}) {
		t.Fatalf("choice speakers = %q", cfg.Align.ChoiceSpeakers)
	}
	if !cfg.Align.DupeCheckAll || cfg.Journal.Enabled {
		t.Fatalf("unexpected values: %+v %+v", cfg.Align, cfg.Journal)
	}
	if !filepath.IsAbs(cfg.Journal.Path) || !strings.HasSuffix(cfg.Journal.Path, "runs.db") {
		t.Fatalf("journal path not expanded: %q", cfg.Journal.Path)
	}
}

func TestLoadEnvFilters(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SUBTRANSFER_FILTERS", "npre,brak")
	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !slices.Equal(cfg.Align.Filters, []string{"npre", "brak"}) {
		t.Fatalf("filters = %q", cfg.Align.Filters)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[align]\noverride_name = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "unknown filter", mutate: func(c *config.Config) { c.Align.Filters = []string{"caps"} }, wantErr: "align.filters"},
		{name: "threshold too high", mutate: func(c *config.Config) { c.Align.SimilarityThreshold = 1.5 }, wantErr: "similarity_threshold"},
		{name: "bad dummy pattern", mutate: func(c *config.Config) { c.Align.DummyTextPattern = "([" }, wantErr: "dummy_text_pattern"},
		{name: "bad format", mutate: func(c *config.Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
		{name: "bad color", mutate: func(c *config.Config) { c.Logging.Color = "sometimes" }, wantErr: "logging.color"},
		{name: "journal without path", mutate: func(c *config.Config) { c.Journal.Path = "" }, wantErr: "journal.path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	var sample config.Config
	if err := toml.Unmarshal([]byte(config.SampleConfig()), &sample); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	def := config.Default()
	if sample.Logging != def.Logging || sample.Paths != def.Paths || sample.Journal != def.Journal {
		t.Fatalf("sample diverges from defaults:\n%+v\n%+v", sample, def)
	}
	if !slices.Equal(sample.Align.SkipNames, def.Align.SkipNames) ||
		sample.Align.DummyTextPattern != def.Align.DummyTextPattern ||
		sample.Align.TitleLogoMarker != def.Align.TitleLogoMarker ||
		sample.Align.Backup != def.Align.Backup {
		t.Fatalf("sample align section diverges: %+v", sample.Align)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	t.Setenv("HOME", t.TempDir())
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("sample config does not load: exists=%v err=%v", exists, err)
	}
}
