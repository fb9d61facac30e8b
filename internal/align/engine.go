package align

import (
	"fmt"
	"log/slog"
	"strings"

	"subtransfer/internal/cues"
	"subtransfer/internal/logging"
	"subtransfer/internal/script"
	"subtransfer/internal/textfilter"
)

const noChoiceBlock = -1

// Engine transfers cue text into script blocks.
type Engine struct {
	opts     Options
	detector Detector
	logger   *slog.Logger
}

// NewEngine returns an engine for opts. A nil logger discards output.
func NewEngine(opts Options, logger *slog.Logger) *Engine {
	return &Engine{
		opts:     opts,
		detector: NewDetector(opts),
		logger:   logging.NewComponentLogger(logger, "align"),
	}
}

// state is the cursor record threaded through one run.
type state struct {
	// cursor is the index of the next block to receive a normal cue.
	cursor int
	// lastChoiceBlock is the cursor value at which the current choice
	// sequence began, or noChoiceBlock.
	lastChoiceBlock int
	// fanout counts choice cues applied since the last normal cue.
	fanout int
}

type run struct {
	engine *Engine
	kind   string
	blocks []script.Block
	cues   []cues.Cue
	report Report
	logger *slog.Logger
}

// Run walks cues in order and writes them into blocks in place. Problems are
// collected in the returned report; Run itself never fails.
func (e *Engine) Run(kind string, blocks []script.Block, list []cues.Cue) Report {
	r := &run{
		engine: e,
		kind:   kind,
		blocks: blocks,
		cues:   list,
		report: Report{ScriptKind: kind, Blocks: len(blocks), Cues: len(list)},
		logger: e.logger.With(logging.String(logging.FieldScriptKind, kind)),
	}
	st := &state{lastChoiceBlock: noChoiceBlock}
	for pos, cue := range list {
		if !r.step(st, pos, cue) {
			r.overflow(pos)
			break
		}
		r.report.Consumed++
	}
	r.finish(st)
	r.report.Cursor = st.cursor
	r.logger.Info("alignment finished",
		logging.Int("cues", r.report.Cues),
		logging.Int("blocks", r.report.Blocks),
		logging.Int("applied", r.report.Applied),
		logging.Int("duplicates", r.report.Duplicates),
		logging.Int("diagnostics", len(r.report.Diagnostics)),
	)
	return r.report
}

func (r *run) narrative() bool {
	return r.kind == r.engine.opts.NarrativeKind
}

// step handles one cue. It returns false when no block is left for it.
func (r *run) step(st *state, pos int, cue cues.Cue) bool {
	if st.cursor >= len(r.blocks) {
		return false
	}
	r.autoSkip(st)
	if st.cursor >= len(r.blocks) {
		return false
	}

	if r.narrative() {
		if cue.IsChoice() {
			r.applyChoice(st, pos, cue)
			return true
		}
		if st.cursor > 0 && r.blocks[st.cursor-1].HasChoices() && st.lastChoiceBlock != st.cursor {
			prev := r.blocks[st.cursor-1]
			r.diagnose(KindChoiceMissing, prev.Index, pos, cue.Text,
				fmt.Sprintf("block has %d choices but no choice cue came before %q", len(prev.Choices), cue.Text))
		}
		st.fanout = 0
	}

	if r.engine.detector.IsDuplicate(r.kind, r.blocks, st.cursor) {
		r.forwardDuplicate(st, pos, cue)
		return true
	}

	r.apply(st.cursor, pos, cue)
	st.cursor++
	return true
}

// autoSkip advances past title-logo and placeholder blocks.
func (r *run) autoSkip(st *state) {
	for st.cursor < len(r.blocks) && r.skippable(r.blocks[st.cursor]) {
		r.logger.Debug("skipping untranslatable block",
			logging.Int(logging.FieldBlockIndex, r.blocks[st.cursor].Index))
		r.report.Skipped++
		st.cursor++
	}
}

func (r *run) skippable(b script.Block) bool {
	opts := r.engine.opts
	if opts.TitleLogoMarker != "" && strings.HasPrefix(b.SourceText, opts.TitleLogoMarker) {
		return true
	}
	return opts.DummyText != nil && opts.DummyText.MatchString(b.SourceText)
}

func (r *run) applyChoice(st *state, pos int, cue cues.Cue) {
	if st.cursor == 0 || !r.blocks[st.cursor-1].HasChoices() {
		blockIdx := -1
		if st.cursor > 0 {
			blockIdx = r.blocks[st.cursor-1].Index
		}
		r.diagnose(KindChoiceWithoutBlock, blockIdx, pos, cue.Text,
			fmt.Sprintf("choice cue %q has no choice block to go into", cue.Text))
		return
	}
	target := &r.blocks[st.cursor-1]

	if st.lastChoiceBlock == st.cursor {
		if st.fanout >= len(target.Choices) {
			r.diagnose(KindChoiceIndex, target.Index, pos, cue.Text,
				fmt.Sprintf("choice cue %d exceeds the block's %d choices", st.fanout+1, len(target.Choices)))
		} else {
			r.writeChoice(target, st.fanout, pos, cue.Text)
		}
		st.fanout++
		return
	}

	// First cue of the sequence goes into every option; later cues refine
	// individual options.
	for i := range target.Choices {
		r.writeChoice(target, i, pos, cue.Text)
	}
	st.lastChoiceBlock = st.cursor
	st.fanout = 1
}

func (r *run) writeChoice(b *script.Block, i, pos int, text string) {
	if text == "" {
		r.diagnose(KindUntranslated, b.Index, pos, text, fmt.Sprintf("empty choice cue for option %d", i+1))
		return
	}
	entry := &b.Choices[i]
	entry.TranslatedText = textfilter.Apply(text, entry.SourceText, r.engine.opts.Filters)
	r.report.Choices++
}

// forwardDuplicate fills the duplicate at the cursor from its predecessor and
// hands the cue to the block after it.
func (r *run) forwardDuplicate(st *state, pos int, cue cues.Cue) {
	idx := st.cursor
	r.copyForward(idx, pos, KindDuplicate)
	if idx+1 >= len(r.blocks) {
		r.diagnose(KindDuplicatePastEnd, r.blocks[idx].Index, pos, cue.Text,
			fmt.Sprintf("duplicate is the last block, no block left for %q", cue.Text))
		st.cursor = idx + 1
		return
	}
	r.apply(idx+1, pos, cue)
	st.cursor = idx + 2
}

// copyForward copies blocks[idx-1]'s translation into blocks[idx].
func (r *run) copyForward(idx, pos int, kind Kind) {
	prev, cur := &r.blocks[idx-1], &r.blocks[idx]
	if prev.TranslatedText == "" {
		r.diagnose(KindUntranslated, cur.Index, pos, "",
			fmt.Sprintf("block %d has no translation to copy", prev.Index))
	} else {
		cur.TranslatedText = textfilter.Apply(prev.TranslatedText, cur.SourceText, r.engine.opts.Filters)
	}
	r.applyName(cur, prev.TranslatedName)
	r.report.Duplicates++
	r.diagnose(kind, cur.Index, pos, prev.TranslatedText,
		fmt.Sprintf("copied translation from block %d", prev.Index))

	if !prev.HasChoices() || !cur.HasChoices() {
		return
	}
	if len(prev.Choices) != len(cur.Choices) {
		r.diagnose(KindChoiceCount, cur.Index, pos, "",
			fmt.Sprintf("block has %d choices, block %d has %d", len(cur.Choices), prev.Index, len(prev.Choices)))
		return
	}
	for i := range cur.Choices {
		cur.Choices[i].TranslatedText = textfilter.Apply(prev.Choices[i].TranslatedText, cur.Choices[i].SourceText, r.engine.opts.Filters)
	}
}

// apply writes a normal cue into blocks[idx].
func (r *run) apply(idx, pos int, cue cues.Cue) {
	b := &r.blocks[idx]
	if cue.Text == "" {
		r.diagnose(KindUntranslated, b.Index, pos, "", "subtitle line is empty")
		return
	}
	b.TranslatedText = textfilter.Apply(cue.Text, b.SourceText, r.engine.opts.Filters)
	r.applyName(b, cue.Speaker)
	r.report.Applied++
}

func (r *run) applyName(b *script.Block, name string) {
	if !b.Named {
		return
	}
	if r.engine.opts.skipName(b.SourceName) {
		b.TranslatedName = ""
		return
	}
	if name != "" && (b.TranslatedName == "" || r.engine.opts.OverrideNames) {
		b.TranslatedName = name
	}
}

// overflow reports every cue from pos on.
func (r *run) overflow(pos int) {
	for i := pos; i < len(r.cues); i++ {
		msg := fmt.Sprintf("script is full, %q was not applied", r.cues[i].Text)
		if i == pos {
			msg = fmt.Sprintf("script filled after %d blocks; the next part starts at %q", len(r.blocks), r.cues[i].Text)
		}
		r.diagnose(KindOverflow, -1, i, r.cues[i].Text, msg)
		r.report.Overflow++
	}
}

// finish handles blocks left after the last cue.
func (r *run) finish(st *state) {
	r.autoSkip(st)
	if st.cursor >= len(r.blocks) {
		return
	}
	if r.engine.detector.IsDuplicate(r.kind, r.blocks, st.cursor) {
		r.copyForward(st.cursor, -1, KindTrailingDuplicate)
		st.cursor++
		r.autoSkip(st)
		if st.cursor >= len(r.blocks) {
			return
		}
	}
	missing := len(r.blocks) - st.cursor
	r.report.Missing = missing
	r.diagnose(KindShortage, r.blocks[st.cursor].Index, -1, "",
		fmt.Sprintf("%d blocks received no cue, starting at block %d", missing, r.blocks[st.cursor].Index))
}

func (r *run) diagnose(kind Kind, block, cue int, text, msg string) {
	d := Diagnostic{
		Kind:     kind,
		Severity: kind.Severity(),
		Block:    block,
		Cue:      cue,
		Text:     text,
		Message:  msg,
	}
	r.report.Diagnostics = append(r.report.Diagnostics, d)

	info := kinds[kind]
	attrs := []logging.Attr{
		logging.Int(logging.FieldBlockIndex, block),
		logging.Int(logging.FieldCueIndex, cue),
		logging.String(logging.FieldErrorHint, info.hint),
		logging.String(logging.FieldImpact, info.impact),
	}
	switch d.Severity {
	case SeverityError:
		logging.ErrorWithContext(r.logger, msg, string(kind), attrs...)
	case SeverityWarning:
		logging.WarnWithContext(r.logger, msg, string(kind), attrs...)
	default:
		r.logger.Info(msg, logging.Args(append(attrs, logging.String(logging.FieldEventType, string(kind)))...)...)
	}
}
