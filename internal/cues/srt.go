package cues

import (
	"fmt"
	"strconv"
	"strings"
)

// parseSRT reads SubRip captions. A caption with an index and timing line
// but no text yields an empty cue so deliberately untranslated lines keep
// their position.
func parseSRT(content string) ([]Cue, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}

	var cues []Cue
	for n, block := range splitSRTBlocks(content) {
		lines := strings.Split(block, "\n")
		if len(lines) < 2 {
			return nil, fmt.Errorf("caption %d: expected index and timing lines", n+1)
		}
		if _, err := strconv.Atoi(strings.TrimSpace(lines[0])); err != nil {
			return nil, fmt.Errorf("caption %d: invalid index %q", n+1, lines[0])
		}
		start, end, ok := strings.Cut(lines[1], "-->")
		if !ok {
			return nil, fmt.Errorf("caption %d: missing timing arrow", n+1)
		}
		startAt, err := parseSRTTimestamp(start)
		if err != nil {
			return nil, fmt.Errorf("caption %d: %w", n+1, err)
		}
		endAt, err := parseSRTTimestamp(firstField(end))
		if err != nil {
			return nil, fmt.Errorf("caption %d: %w", n+1, err)
		}

		cue := newCue(strings.Join(lines[2:], "\n"), "", "")
		cue.Start, cue.End = startAt, endAt
		cues = append(cues, cue)
	}
	return cues, nil
}

// splitSRTBlocks separates captions on blank lines, tolerating runs of
// several blank or whitespace-only lines.
func splitSRTBlocks(content string) []string {
	var (
		blocks  []string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
	}
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, strings.TrimRight(line, " \t"))
	}
	flush()
	return blocks
}

// firstField drops SRT position hints such as "X1:40 X2:600" after the end
// timestamp.
func firstField(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
