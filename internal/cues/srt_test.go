package cues

import (
	"testing"
	"time"

	"subtransfer/internal/textfilter"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:02,500
Hi there.

2
00:00:03,000 --> 00:00:04,000

3
00:00:05,000 --> 00:00:06,000 X1:40 X2:600
Two
lines

4
00:00:07,000 --> 00:00:08,000
>Let's battle!

5
00:00:09,000 --> 00:00:10,000
Trainer: Sure thing
`

func TestParseSRT(t *testing.T) {
	cues, err := Parse(FormatSRT, sampleSRT, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cues) != 5 {
		t.Fatalf("expected 5 cues, got %d", len(cues))
	}
	if cues[0].Text != "Hi there." || cues[0].Start != time.Second || cues[0].End != 2500*time.Millisecond {
		t.Errorf("cue 0 = %#v", cues[0])
	}
	if cues[1].Text != "" {
		t.Errorf("expected empty caption to keep its slot, got %q", cues[1].Text)
	}
	if cues[2].Text != "Two\nlines" {
		t.Errorf("cue 2 text = %q", cues[2].Text)
	}
	if !cues[3].IsChoice() || cues[3].Text != "Let's battle!" {
		t.Errorf("cue 3 should be a choice without marker, got %#v", cues[3])
	}
	if cues[4].IsChoice() || cues[4].Speaker != "" {
		t.Errorf("cue 4 must stay plain without npre, got %#v", cues[4])
	}
}

func TestParseSRTNamePrefix(t *testing.T) {
	filters, err := textfilter.NewSet("npre")
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	cues, err := Parse(FormatSRT, sampleSRT, Options{Filters: filters})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	last := cues[4]
	if last.Speaker != "trainer" || last.Text != "Sure thing" {
		t.Fatalf("npre not applied: %#v", last)
	}
	if !last.IsChoice() {
		t.Fatalf("trainer caption should be tagged as choice: %#v", last)
	}
}

func TestParseSRTCustomChoiceSpeakers(t *testing.T) {
	filters, _ := textfilter.NewSet("npre")
	cues, err := Parse(FormatSRT, sampleSRT, Options{Filters: filters, ChoiceSpeakers: []string{"player"}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cues[4].IsChoice() {
		t.Fatalf("trainer is not a choice speaker here: %#v", cues[4])
	}
}

func TestParseSRTMalformed(t *testing.T) {
	tests := map[string]string{
		"bad index":  "one\n00:00:01,000 --> 00:00:02,000\ntext\n",
		"no arrow":   "1\n00:00:01,000 00:00:02,000\ntext\n",
		"bad time":   "1\n00:00:01 --> 00:00:02,000\ntext\n",
		"lone index": "1\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(FormatSRT, content, Options{}); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}

func TestNamePrefixLowercasesSpeaker(t *testing.T) {
	filters, _ := textfilter.NewSet("npre")
	cues, err := Parse(FormatSRT, "1\n00:00:01,000 --> 00:00:02,000\nAlice: Hello there\n", Options{Filters: filters})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cues[0].Speaker != "alice" || cues[0].Text != "Hello there" {
		t.Fatalf("got %#v", cues[0])
	}
}
