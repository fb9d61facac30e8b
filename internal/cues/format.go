package cues

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a subtitle file syntax.
type Format string

const (
	FormatASS Format = "ass"
	FormatSRT Format = "srt"
	FormatTXT Format = "txt"
)

// ErrUnsupportedFormat is returned for extensions other than ass, srt and txt.
var ErrUnsupportedFormat = errors.New("unsupported subtitle format")

type parser func(content string) ([]Cue, error)

var parsers = map[Format]parser{
	FormatASS: parseASS,
	FormatSRT: parseSRT,
	FormatTXT: parseTXT,
}

// FormatOf returns the format named by the last three characters of path.
func FormatOf(path string) (Format, error) {
	base := filepath.Base(path)
	if len(base) < 3 {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	tag := Format(strings.ToLower(base[len(base)-3:]))
	if _, ok := parsers[tag]; !ok {
		return "", fmt.Errorf("%w %q (supported: %s): %s", ErrUnsupportedFormat, string(tag), formatList(), path)
	}
	return tag, nil
}

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatASS, FormatSRT, FormatTXT}
}

func formatList() string {
	names := make([]string, 0, len(parsers))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
