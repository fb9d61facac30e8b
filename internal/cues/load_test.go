package cues

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf16"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"chapter.ass", FormatASS, false},
		{"/tmp/CHAPTER.SRT", FormatSRT, false},
		{"notes.txt", FormatTXT, false},
		{"movie.vtt", "", true},
		{"a", "", true},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("FormatOf(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("FormatOf(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestLoadUnsupportedFormatNamesFile(t *testing.T) {
	_, err := Load("/nowhere/subs.vtt", Options{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	for _, want := range []string{"/nowhere/subs.vtt", "supported: ass, srt, txt"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q should mention %s", err, want)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.srt"), Options{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadUTF8BOMAndCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subs.srt")
	content := "\ufeff1\r\n00:00:01,000 --> 00:00:02,000\r\nHello\r\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cues, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cues) != 1 || cues[0].Text != "Hello" {
		t.Fatalf("unexpected cues %#v", cues)
	}
}

func TestLoadUTF16(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subs.txt")
	units := utf16.Encode([]rune("\ufeffHello there\nGeneral Kenobi\n"))
	data := make([]byte, 0, len(units)*2)
	for _, u := range units {
		data = append(data, byte(u), byte(u>>8))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cues, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cues) != 2 || cues[1].Text != "General Kenobi" {
		t.Fatalf("unexpected cues %#v", cues)
	}
}
