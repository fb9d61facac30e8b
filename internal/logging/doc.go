// Package logging assembles the slog loggers used by subtransfer.
//
// A run logs human-readable lines to the terminal and, when a log directory
// is configured, JSON lines to a file beside them. Attribute helpers and the
// Field* keys keep the shape of records uniform so a run's diagnostics can be
// grepped by run ID or block index.
package logging
