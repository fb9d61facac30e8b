package cues

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"subtransfer/internal/textfilter"
	"subtransfer/internal/textutil"
)

// DefaultChoiceSpeaker marks SRT captions spoken by the player character as
// choice translations.
const DefaultChoiceSpeaker = "trainer"

// choiceMarker prefixes lines authored as choice translations.
const choiceMarker = ">"

// Options tunes cue preprocessing.
type Options struct {
	// Filters are the active text filters; only npre is used here.
	Filters textfilter.Set
	// ChoiceSpeakers are lower-cased speaker names whose SRT captions are
	// tagged as choices. Nil selects DefaultChoiceSpeaker.
	ChoiceSpeakers []string
}

// Load reads path and parses it with the format its extension names.
func Load(path string, opts Options) ([]Cue, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open subtitle %s: %w", path, err)
	}
	defer file.Close()

	content, err := decode(file)
	if err != nil {
		return nil, fmt.Errorf("read subtitle %s: %w", path, err)
	}
	cues, err := Parse(format, content, opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s subtitle %s: %w", format, path, err)
	}
	return cues, nil
}

// decode returns the file text, transcoding UTF-16 when a byte order mark
// says so and dropping any UTF-8 BOM.
func decode(r io.Reader) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return "", err
	}
	return textutil.NormalizeNewlines(string(data)), nil
}

// Parse converts already decoded content.
func Parse(format Format, content string, opts Options) ([]Cue, error) {
	parse, ok := parsers[format]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, string(format))
	}
	cues, err := parse(textutil.NormalizeNewlines(content))
	if err != nil {
		return nil, err
	}
	preprocess(cues, format, opts)
	return cues, nil
}

func preprocess(cues []Cue, format Format, opts Options) {
	speakers := opts.ChoiceSpeakers
	if speakers == nil {
		speakers = []string{DefaultChoiceSpeaker}
	}
	for i := range cues {
		cue := &cues[i]
		if opts.Filters.Has(textfilter.NamePrefix) {
			if name, rest, ok := textfilter.SplitNamePrefix(cue.Text); ok {
				cue.Speaker = lower.String(strings.TrimSpace(name))
				cue.Text = rest
			}
		}
		if format != FormatSRT || cue.Effect != EffectNone {
			continue
		}
		if strings.HasPrefix(cue.Text, choiceMarker) {
			cue.Effect = EffectChoice
			cue.Text = strings.TrimPrefix(cue.Text, choiceMarker)
			continue
		}
		for _, name := range speakers {
			if cue.Speaker != "" && cue.Speaker == name {
				cue.Effect = EffectChoice
				break
			}
		}
	}
}
