// Package align fills a script's blocks from an ordered list of translated
// cues.
//
// Engine.Run walks both sequences once. Most cues map to the next block, but
// three situations break the one-to-one walk:
//
//   - Choice cues translate the options of the block just written. The first
//     choice cue is copied to every option; further consecutive choice cues
//     fill options one by one. Copying a lone translation to all options is
//     an approximation that suits the common single-translation case, not a
//     guaranteed mapping.
//   - Story scripts repeat some lines once per protagonist gender. The
//     Detector spots such a block from its speaker and source text and the
//     engine copies the previous translation into it without consuming a cue.
//   - Title-logo and dummy-text blocks never receive translator input and
//     are skipped.
//
// Nothing that goes wrong during a run is returned as an error. Every
// mismatch becomes a Diagnostic in the Report and a log line, keyed by the
// block's index, and the run moves on.
package align
