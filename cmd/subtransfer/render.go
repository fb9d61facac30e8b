package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"subtransfer/internal/align"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shouldColorize(writer io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func paint(colorize bool, color, value string) string {
	if !colorize || color == "" {
		return value
	}
	return color + value + ansiReset
}

func severityColor(sev align.Severity) string {
	switch sev {
	case align.SeverityError:
		return ansiRed
	case align.SeverityWarning:
		return ansiYellow
	default:
		return ansiBlue
	}
}

// diagnosticColumns is shared by import and history show.
var diagnosticColumns = []column{
	{title: "Severity"},
	{title: "Kind"},
	{title: "Block", right: true},
	{title: "Cue", right: true},
	{title: "Message", maxWidth: 72},
}

func diagnosticRows(diags []align.Diagnostic, includeInfo, colorize bool) [][]string {
	rows := make([][]string, 0, len(diags))
	for _, d := range diags {
		if d.Severity == align.SeverityInfo && !includeInfo {
			continue
		}
		rows = append(rows, []string{
			paint(colorize, severityColor(d.Severity), strings.ToUpper(string(d.Severity))),
			string(d.Kind),
			optionalIndex(d.Block),
			optionalIndex(d.Cue),
			d.Message,
		})
	}
	return rows
}

func optionalIndex(v int) string {
	if v < 0 {
		return "-"
	}
	return strconv.Itoa(v)
}

// truncate shortens s to at most limit runes on a single line.
func truncate(s string, limit int) string {
	s = strings.ReplaceAll(s, "\n", " / ")
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
