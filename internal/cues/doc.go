// Package cues turns translator-authored subtitle files into an ordered list
// of Cue values the alignment engine consumes.
//
// Three formats are supported, selected by the file's three-character
// extension: Advanced SubStation (ass), SubRip (srt) and plain text (txt).
// ASS carries speaker names and effect tags that mark choices, skipped
// events and multi-row "split" screens; SRT and TXT carry text only.
// Files are decoded whole, honouring UTF-8 and UTF-16 byte order marks.
package cues
