package cues

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Effect tags recognized on cues.
const (
	EffectNone   = ""
	EffectChoice = "choice"
	EffectSkip   = "skip"
	EffectSplit  = "split"
)

var lower = cases.Lower(language.Und)

// Cue is one translated line in file order.
type Cue struct {
	// Text is the cleaned line text; it may contain newlines.
	Text string `json:"text"`
	// Speaker is the lower-cased speaker name, empty when unknown.
	Speaker string `json:"speaker,omitempty"`
	// Effect is the lower-cased structural tag.
	Effect string `json:"effect,omitempty"`
	// Start and End are caption timings; zero for plain text input.
	Start time.Duration `json:"start,omitempty"`
	End   time.Duration `json:"end,omitempty"`
}

func newCue(text, speaker, effect string) Cue {
	return Cue{
		Text:    text,
		Speaker: lower.String(strings.TrimSpace(speaker)),
		Effect:  lower.String(strings.TrimSpace(effect)),
	}
}

// IsChoice reports whether the cue translates the options of a choice block.
func (c Cue) IsChoice() bool {
	return c.Effect == EffectChoice
}

// Role returns the structural role the engine acts on. Split tags and
// unrecognized effects count as normal lines.
func (c Cue) Role() string {
	switch {
	case c.Effect == EffectChoice:
		return EffectChoice
	case strings.HasPrefix(c.Effect, EffectSplit):
		return EffectSplit
	default:
		return EffectNone
	}
}
