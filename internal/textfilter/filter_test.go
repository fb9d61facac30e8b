package textfilter

import (
	"reflect"
	"testing"
)

func mustSet(t *testing.T, names ...string) Set {
	t.Helper()
	set, err := NewSet(names...)
	if err != nil {
		t.Fatalf("NewSet(%v): %v", names, err)
	}
	return set
}

func TestParse(t *testing.T) {
	set, err := Parse(" NPRE , brak,, ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := set.Names(); !reflect.DeepEqual(got, []string{"brak", "npre"}) {
		t.Fatalf("Names() = %v", got)
	}
	if _, err := Parse("npre,shout"); err == nil {
		t.Fatal("expected error for unknown filter")
	}
}

func TestApplyBrackets(t *testing.T) {
	brak := mustSet(t, "brak")
	tests := []struct {
		name   string
		text   string
		source string
		set    Set
		want   string
	}{
		{"unwraps", "(Thinking...)", "考え中", brak, "Thinking..."},
		{"multiline", "(Line one\nline two)", "独り言", brak, "Line one\nline two"},
		{"source full-width paren", "(Thinking...)", "（考え中）", brak, "(Thinking...)"},
		{"source ascii paren", "(Thinking...)", "(考え中)", brak, "(Thinking...)"},
		{"partial parens", "(Sigh) fine.", "はぁ", brak, "(Sigh) fine."},
		{"filter inactive", "(Thinking...)", "考え中", nil, "(Thinking...)"},
		{"empty", "", "考え中", brak, ""},
		{"whitespace only", "  \n ", "考え中", brak, "  \n "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Apply(tt.text, tt.source, tt.set); got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestApplyIdempotentOnceUnwrapped(t *testing.T) {
	brak := mustSet(t, "brak")
	for _, text := range []string{"(Hmm.)", "Plain line", "(a) and (b)"} {
		once := Apply(text, "src", brak)
		twice := Apply(once, "src", brak)
		if bracketPattern.MatchString(once) {
			continue
		}
		if once != twice {
			t.Errorf("Apply not idempotent for %q: %q then %q", text, once, twice)
		}
	}
}

func TestSplitNamePrefix(t *testing.T) {
	name, rest, ok := SplitNamePrefix("Alice: Hello there")
	if !ok || name != "Alice" || rest != "Hello there" {
		t.Fatalf("SplitNamePrefix = %q, %q, %v", name, rest, ok)
	}
	if _, rest, ok := SplitNamePrefix("No prefix here"); ok || rest != "No prefix here" {
		t.Fatalf("expected no prefix, got %q, %v", rest, ok)
	}
	name, rest, ok = SplitNamePrefix("Bob: first\nsecond")
	if !ok || name != "Bob" || rest != "first\nsecond" {
		t.Fatalf("multiline SplitNamePrefix = %q, %q, %v", name, rest, ok)
	}
}
