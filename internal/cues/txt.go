package cues

import (
	"strings"

	"subtransfer/internal/textutil"
)

// parseTXT yields one cue per line that looks like translated text. Blank
// lines and lines still in the source language are dropped.
func parseTXT(content string) ([]Cue, error) {
	var cues []Cue
	for _, line := range strings.Split(content, "\n") {
		if !textutil.LooksTranslated(line) {
			continue
		}
		cues = append(cues, newCue(strings.TrimSpace(line), "", ""))
	}
	return cues, nil
}
