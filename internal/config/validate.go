package config

import (
	"errors"
	"fmt"
	"regexp"

	"subtransfer/internal/textfilter"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateAlign(); err != nil {
		return err
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		return errors.New("journal.path must be set when the journal is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("logging.color: unsupported value %q (use auto, always or never)", c.Logging.Color)
	}
	return nil
}

func (c *Config) validateAlign() error {
	if _, err := textfilter.NewSet(c.Align.Filters...); err != nil {
		return fmt.Errorf("align.filters: %w", err)
	}
	if c.Align.SimilarityThreshold <= 0 || c.Align.SimilarityThreshold >= 1 {
		return errors.New("align.similarity_threshold must be between 0 and 1")
	}
	if c.Align.DummyTextPattern != "" {
		if _, err := regexp.Compile(c.Align.DummyTextPattern); err != nil {
			return fmt.Errorf("align.dummy_text_pattern: %w", err)
		}
	}
	return nil
}
