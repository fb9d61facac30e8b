package align

import (
	"subtransfer/internal/script"
	"subtransfer/internal/textutil"
)

// Detector decides whether a block repeats its predecessor because the game
// branches the line on the protagonist's gender. It is a heuristic; callers
// log every positive result so false matches can be reviewed.
type Detector struct {
	opts Options
}

// NewDetector builds a detector for the given options.
func NewDetector(opts Options) Detector {
	return Detector{opts: opts}
}

// IsDuplicate reports whether blocks[idx] duplicates blocks[idx-1] in a
// script of the given kind. Only those two blocks are consulted.
func (d Detector) IsDuplicate(kind string, blocks []script.Block, idx int) bool {
	if kind != d.opts.NarrativeKind {
		return false
	}
	if idx <= 0 || idx >= len(blocks) {
		return false
	}
	prev, cur := &blocks[idx-1], &blocks[idx]
	if !d.opts.DupeCheckAll && d.opts.skipName(cur.SourceName) {
		return false
	}
	if cur.SourceName != prev.SourceName {
		return false
	}
	return textutil.Ratio(cur.SourceText, prev.SourceText) > d.opts.SimilarityThreshold
}
