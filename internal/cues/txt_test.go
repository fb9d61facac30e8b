package cues

import (
	"reflect"
	"testing"
)

func TestParseTXT(t *testing.T) {
	content := "First line\n\n\n   \nこれは原文\nSecond line  \n...\n"
	cues, err := Parse(FormatTXT, content, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := make([]string, len(cues))
	for i, c := range cues {
		got[i] = c.Text
	}
	if want := []string{"First line", "Second line"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for _, c := range cues {
		if c.Speaker != "" || c.Effect != "" {
			t.Fatalf("txt cues carry no structure: %#v", c)
		}
	}
}
