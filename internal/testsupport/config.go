package testsupport

import (
	"path/filepath"
	"testing"

	"subtransfer/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Console logging is forced to plain text so output stays stable.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Journal.Path = filepath.Join(base, "journal.db")
	cfgVal.Logging.Color = "never"
	cfgVal.Align.Backup = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithFilters activates the named text filters.
func WithFilters(names ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Align.Filters = append([]string(nil), names...)
	}
}

// WithoutJournal disables run history.
func WithoutJournal() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = false
	}
}

// WithBackup enables the .bak copy written before a script is saved.
func WithBackup() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Align.Backup = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Journal.Path)
}
