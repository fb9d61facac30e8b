package cues

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrNoEvents is returned for ASS files without an [Events] section.
var ErrNoEvents = errors.New("no [Events] section")

var defaultEventFields = []string{"layer", "start", "end", "style", "name", "marginl", "marginr", "marginv", "effect", "text"}

var (
	keptStylePattern = regexp.MustCompile(`(?i)MainText|Default|Button`)
	emphasisPattern  = regexp.MustCompile(`\{\\([ib])([01])\}`)
	overridePattern  = regexp.MustCompile(`\{.+?\}`)
)

const (
	nameplateSpeaker = "Nameplate"
	choiceSpeaker    = "Choice"
	buttonStyle      = "Button"
)

type assEvent struct {
	style  string
	name   string
	effect string
	text   string
	start  string
	end    string
}

func parseASS(content string) ([]Cue, error) {
	events, err := readASSEvents(content)
	if err != nil {
		return nil, err
	}

	var cues []Cue
	lastSplit := ""
	inSplit := false
	for n, ev := range events {
		effect := strings.ToLower(strings.TrimSpace(ev.effect))
		if strings.HasPrefix(effect, EffectSkip) {
			continue
		}
		if ev.name == nameplateSpeaker {
			continue
		}
		if !keptStylePattern.MatchString(ev.style) {
			continue
		}

		if strings.HasPrefix(effect, EffectSplit) {
			id := strings.TrimPrefix(effect, EffectSplit)
			if inSplit && id == lastSplit && len(cues) > 0 {
				cues[len(cues)-1].Text += "\n" + cleanASSText(ev.text)
				continue
			}
			lastSplit, inSplit = id, true
		} else {
			lastSplit, inSplit = "", false
		}

		cue := newCue(cleanASSText(ev.text), ev.name, effect)
		if (cue.Effect == EffectNone && strings.HasSuffix(ev.style, buttonStyle)) || ev.name == choiceSpeaker {
			cue.Effect = EffectChoice
		}
		if cue.Start, err = optionalASSTimestamp(ev.start); err != nil {
			return nil, fmt.Errorf("dialogue %d: start: %w", n+1, err)
		}
		if cue.End, err = optionalASSTimestamp(ev.end); err != nil {
			return nil, fmt.Errorf("dialogue %d: end: %w", n+1, err)
		}
		cues = append(cues, cue)
	}
	return cues, nil
}

// optionalASSTimestamp parses value when the section's Format carries the
// field at all.
func optionalASSTimestamp(value string) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	return parseASSTimestamp(value)
}

func readASSEvents(content string) ([]assEvent, error) {
	var (
		events   []assEvent
		fields   []string
		inEvents bool
		seen     bool
	)
	for n, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inEvents = strings.EqualFold(line, "[Events]")
			seen = seen || inEvents
			continue
		}
		if !inEvents {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "format":
			fields = fields[:0]
			for _, f := range strings.Split(value, ",") {
				fields = append(fields, strings.ToLower(strings.TrimSpace(f)))
			}
		case "dialogue":
			if len(fields) == 0 {
				fields = append(fields, defaultEventFields...)
			}
			ev, err := splitASSEvent(strings.TrimLeft(value, " "), fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n+1, err)
			}
			events = append(events, ev)
		}
	}
	if !seen {
		return nil, ErrNoEvents
	}
	return events, nil
}

// splitASSEvent maps a Dialogue value onto the section's Format fields. The
// final field (Text) keeps any commas it contains.
func splitASSEvent(value string, fields []string) (assEvent, error) {
	parts := strings.SplitN(value, ",", len(fields))
	if len(parts) != len(fields) {
		return assEvent{}, fmt.Errorf("dialogue has %d fields, format declares %d", len(parts), len(fields))
	}
	var ev assEvent
	for i, field := range fields {
		v := parts[i]
		if field != "text" {
			v = strings.TrimSpace(v)
		}
		switch field {
		case "style":
			ev.style = v
		case "name", "actor":
			ev.name = v
		case "effect":
			ev.effect = v
		case "text":
			ev.text = v
		case "start":
			ev.start = v
		case "end":
			ev.end = v
		}
	}
	return ev, nil
}

// cleanASSText turns override blocks into plain text: italic and bold
// toggles become <i>/</i> and <b>/</b>, other overrides are dropped, hard
// breaks become newlines and one leading choice marker is removed.
func cleanASSText(text string) string {
	text = emphasisPattern.ReplaceAllStringFunc(text, func(tag string) string {
		m := emphasisPattern.FindStringSubmatch(tag)
		if m[2] == "1" {
			return "<" + m[1] + ">"
		}
		return "</" + m[1] + ">"
	})
	text = overridePattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, `\N`, "\n")
	return strings.TrimPrefix(text, choiceMarker)
}
