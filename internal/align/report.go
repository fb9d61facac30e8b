package align

import "fmt"

// Severity grades a diagnostic.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Kind names what a diagnostic is about.
type Kind string

const (
	// KindDuplicate: a gender duplicate block was filled from its predecessor.
	KindDuplicate Kind = "gender_duplicate"
	// KindTrailingDuplicate: the last unfilled block was a duplicate, so the
	// input only looks complete.
	KindTrailingDuplicate Kind = "trailing_duplicate"
	// KindDuplicatePastEnd: a duplicate was the last block, leaving no block
	// for the cue that triggered it.
	KindDuplicatePastEnd Kind = "duplicate_past_end"
	// KindChoiceWithoutBlock: a choice cue arrived but the previous block has
	// no choices.
	KindChoiceWithoutBlock Kind = "choice_without_block"
	// KindChoiceIndex: more choice cues than the block has options.
	KindChoiceIndex Kind = "choice_index_out_of_range"
	// KindChoiceMissing: a choice block received no choice cue.
	KindChoiceMissing Kind = "choice_missing"
	// KindChoiceCount: choice option counts differ between two blocks.
	KindChoiceCount Kind = "choice_count_mismatch"
	// KindUntranslated: an empty cue left its block untouched.
	KindUntranslated Kind = "untranslated_line"
	// KindOverflow: a cue arrived after every block was filled.
	KindOverflow Kind = "cue_overflow"
	// KindShortage: blocks were left without cues.
	KindShortage Kind = "cue_shortage"
)

type kindInfo struct {
	severity Severity
	hint     string
	impact   string
}

var kinds = map[Kind]kindInfo{
	KindDuplicate:          {SeverityInfo, "verify the repeated line really is a gender variant", "block copied from the previous block"},
	KindTrailingDuplicate:  {SeverityWarning, "check that the subtitle file is not missing its last line", "last block copied from the previous block"},
	KindDuplicatePastEnd:   {SeverityError, "subtitle file probably does not match this script", "cue text was not applied"},
	KindChoiceWithoutBlock: {SeverityError, "remove the choice tag or align the cue with its choice block", "choice cue discarded"},
	KindChoiceIndex:        {SeverityError, "remove surplus choice cues for this block", "choice cue discarded"},
	KindChoiceMissing:      {SeverityWarning, "add a choice cue after the line that presents the choice", "choice options left untranslated"},
	KindChoiceCount:        {SeverityError, "translate this block's choices by hand", "choice options not copied"},
	KindUntranslated:       {SeverityWarning, "fill in the empty subtitle line", "block keeps its previous translation"},
	KindOverflow:           {SeverityWarning, "split the subtitle file or pick the next script part", "cue not applied"},
	KindShortage:           {SeverityWarning, "check the subtitle file for missing lines", "blocks left untranslated"},
}

// Severity returns the kind's fixed severity.
func (k Kind) Severity() Severity {
	if info, ok := kinds[k]; ok {
		return info.severity
	}
	return SeverityWarning
}

// Diagnostic is one reported condition.
type Diagnostic struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	// Block is the blockIdx of the affected block, or -1.
	Block int `json:"block"`
	// Cue is the 0-based position of the triggering cue, or -1.
	Cue     int    `json:"cue"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Block < 0 {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: block %d: %s", d.Severity, d.Block, d.Message)
}

// Report summarizes one run.
type Report struct {
	ScriptKind string `json:"script_kind"`
	Blocks     int    `json:"blocks"`
	Cues       int    `json:"cues"`
	// Consumed counts cues the run acted on, applied or not.
	Consumed int `json:"consumed"`
	// Applied counts blocks whose text was written from a cue.
	Applied int `json:"applied"`
	// Choices counts choice cues written into choice options.
	Choices    int `json:"choices"`
	Duplicates int `json:"duplicates"`
	Skipped    int `json:"skipped"`
	Missing    int `json:"missing"`
	Overflow   int `json:"overflow"`
	// Cursor is the index of the first block no cue reached.
	Cursor      int          `json:"cursor"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Count returns how many diagnostics have the given severity.
func (r Report) Count(sev Severity) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Clean reports whether the run produced no warnings or errors.
func (r Report) Clean() bool {
	return r.Count(SeverityWarning) == 0 && r.Count(SeverityError) == 0
}

// Filter returns diagnostics of the given kind.
func (r Report) Filter(kind Kind) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}
