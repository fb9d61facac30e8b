package textfilter

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"subtransfer/internal/textutil"
)

// Filter names one optional text transform.
type Filter string

const (
	// NamePrefix moves a leading "Name: " into the cue speaker.
	NamePrefix Filter = "npre"
	// Brackets strips parentheses enclosing a whole line.
	Brackets Filter = "brak"
)

var known = []Filter{NamePrefix, Brackets}

// Set is the collection of filters active for one run.
type Set map[Filter]struct{}

// NewSet builds a Set from filter names. Names are trimmed and lower-cased;
// blanks are ignored and unknown names are an error.
func NewSet(names ...string) (Set, error) {
	set := make(Set, len(names))
	for _, raw := range names {
		name := Filter(strings.ToLower(strings.TrimSpace(raw)))
		if name == "" {
			continue
		}
		if !slices.Contains(known, name) {
			return nil, fmt.Errorf("unknown filter %q (supported: %s)", raw, strings.Join(Known(), ", "))
		}
		set[name] = struct{}{}
	}
	return set, nil
}

// Parse splits a comma separated list such as "npre,brak".
func Parse(list string) (Set, error) {
	return NewSet(strings.Split(list, ",")...)
}

// Known returns the supported filter names.
func Known() []string {
	out := make([]string, len(known))
	for i, f := range known {
		out[i] = string(f)
	}
	return out
}

// Has reports whether f is active.
func (s Set) Has(f Filter) bool {
	_, ok := s[f]
	return ok
}

// Names returns the active filter names in sorted order.
func (s Set) Names() []string {
	out := make([]string, 0, len(s))
	for f := range s {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

func (s Set) String() string {
	return strings.Join(s.Names(), ",")
}

var (
	bracketPattern    = regexp.MustCompile(`(?s)^\((.+)\)$`)
	namePrefixPattern = regexp.MustCompile(`(?s)^(.+): (.+)$`)
)

// Apply runs the write-time filters on text destined for a field whose
// source-language value is source.
func Apply(text, source string, set Set) string {
	if strings.TrimSpace(text) == "" || len(set) == 0 {
		return text
	}
	if set.Has(Brackets) && !sourceParenthesized(source) {
		if m := bracketPattern.FindStringSubmatch(text); m != nil {
			text = m[1]
		}
	}
	return text
}

// sourceParenthesized reports whether the source line opens with a
// parenthesis, full-width or not.
func sourceParenthesized(source string) bool {
	r, size := utf8.DecodeRuneInString(source)
	if size == 0 {
		return false
	}
	return textutil.NarrowRune(r) == '('
}

// SplitNamePrefix splits "Name: text" into its speaker and text parts.
// ok is false when text carries no prefix.
func SplitNamePrefix(text string) (name, rest string, ok bool) {
	m := namePrefixPattern.FindStringSubmatch(text)
	if m == nil {
		return "", text, false
	}
	return m[1], m[2], true
}
