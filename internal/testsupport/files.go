package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ScriptBlock describes one block of a fixture script file.
type ScriptBlock struct {
	Index   int
	Text    string
	Name    *string
	Choices []string
}

// Named returns a pointer to name for ScriptBlock.Name.
func Named(name string) *string { return &name }

// WriteScript writes a translation script of the given kind and returns its
// path. Blocks without a Name carry no name fields at all.
func WriteScript(t testing.TB, dir, kind string, blocks ...ScriptBlock) string {
	t.Helper()

	text := make([]map[string]any, 0, len(blocks))
	for _, b := range blocks {
		entry := map[string]any{
			"blockIdx": b.Index,
			"jpText":   b.Text,
			"enText":   "",
		}
		if b.Name != nil {
			entry["jpName"] = *b.Name
			entry["enName"] = ""
		}
		if len(b.Choices) > 0 {
			choices := make([]map[string]string, 0, len(b.Choices))
			for _, c := range b.Choices {
				choices = append(choices, map[string]string{"jpText": c, "enText": ""})
			}
			entry["choices"] = choices
		}
		text = append(text, entry)
	}
	doc := map[string]any{
		"version": 1,
		"type":    kind,
		"bundle":  "story/data/01/0001/storytimeline_010010001",
		"text":    text,
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		t.Fatalf("marshal script: %v", err)
	}
	return WriteFile(t, filepath.Join(dir, "script.json"), string(data))
}
