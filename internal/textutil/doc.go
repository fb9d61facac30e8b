// Package textutil provides text comparison helpers shared by the cue
// normalizer and the alignment engine.
//
// The primary use cases are:
//   - Scoring how alike two source lines are (Ratio) for duplicate detection
//   - Deciding whether a plain-text line looks like translated text
//   - Normalizing line endings and byte order marks from subtitle files
//
// Ratio works on runes, not bytes, so Japanese source text compares by
// character.
package textutil
