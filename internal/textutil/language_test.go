package textutil

import "testing"

func TestLooksTranslated(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Hello there!", true},
		{"  Trainer, wait up!  ", true},
		{"", false},
		{"   \t", false},
		{"...!?", false},
		{"こんにちは", false},
		{"Hello こんにちは", false},
		{"Ｈｅｌｌｏ", false},
		{"Café au lait", true},
		{"\"Wait!\" ―", true},
	}

	for _, tt := range tests {
		if got := LooksTranslated(tt.line); got != tt.want {
			t.Errorf("LooksTranslated(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestNarrowRune(t *testing.T) {
	if got := NarrowRune('（'); got != '(' {
		t.Fatalf("NarrowRune(full-width paren) = %q, want '('", got)
	}
	if got := NarrowRune('('); got != '(' {
		t.Fatalf("NarrowRune(ascii paren) = %q, want '('", got)
	}
	if got := NarrowRune('あ'); got != 'あ' {
		t.Fatalf("NarrowRune(hiragana) = %q, want unchanged", got)
	}
}

func TestNormalizeNewlines(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a\r\nb", "a\nb"},
		{"a\rb", "a\nb"},
		{"\ufeffa\nb", "a\nb"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := NormalizeNewlines(tt.in); got != tt.want {
			t.Errorf("NormalizeNewlines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
