// Package textfilter holds the optional per-line transforms an import run can
// enable: extracting "Name: text" prefixes into the speaker field ("npre")
// and unwrapping lines fully enclosed in parentheses ("brak").
//
// Filters are pure string functions. The alignment engine applies Apply to
// every text it writes; the cue normalizer applies SplitNamePrefix while
// building cues.
package textfilter
