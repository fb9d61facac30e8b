package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// LooksTranslated reports whether a plain-text line looks like target
// language text rather than leftover source text. The line must contain at
// least one letter and no East Asian wide or full-width letters.
func LooksTranslated(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	letters := 0
	for _, r := range line {
		if !unicode.IsLetter(r) {
			continue
		}
		if IsWideRune(r) {
			return false
		}
		letters++
	}
	return letters > 0
}

// IsWideRune reports whether r occupies two cells in East Asian layouts.
func IsWideRune(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}

// NarrowRune maps a full-width rune to its narrow equivalent. Runes without
// a narrow form are returned unchanged.
func NarrowRune(r rune) rune {
	if narrow := width.LookupRune(r).Narrow(); narrow != 0 {
		return narrow
	}
	return r
}
