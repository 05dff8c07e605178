package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quayle-dev/cssprobe/pkg/complexity"
	"github.com/quayle-dev/cssprobe/pkg/css"
	"github.com/quayle-dev/cssprobe/pkg/viewport"
)

func sampleResult() *MediaResult {
	bp := 768
	typ := "max-width"
	records := []css.MediaQuery{{
		Condition:  "(max-width: 768px)",
		Breakpoint: &bp,
		Type:       &typ,
		Rules: []css.StyleRule{
			{Selector: ".navbar", Properties: map[string]string{"display": "none"}},
		},
	}}
	return &MediaResult{
		Summary:      css.Summary{TotalMediaQueries: 1, UniqueBreakpoints: []int{768}},
		MediaQueries: records,
		Breakpoints:  map[string][]css.MediaQuery{"max-width-768": records},
		Complexity:   complexity.Score(records),
	}
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath("media-queries", "www.example.com", "media-queries")
	if !strings.HasPrefix(path, filepath.Join("analysis", "media-queries")) {
		t.Fatalf("unexpected prefix: %s", path)
	}
	if !strings.HasSuffix(path, "www-example-com-media-queries.json") {
		t.Fatalf("unexpected suffix: %s", path)
	}
}

func TestWriteJSONRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.json")
	if err := WriteJSON(path, sampleResult()); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var decoded MediaResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Summary.TotalMediaQueries != 1 {
		t.Fatalf("summary lost in roundtrip: %+v", decoded.Summary)
	}
	if decoded.Complexity == nil || decoded.Complexity.Level != complexity.LevelSimple {
		t.Fatalf("complexity lost in roundtrip: %+v", decoded.Complexity)
	}
}

func TestNullBreakpointSerialization(t *testing.T) {
	record := css.MediaQuery{Condition: "print", Rules: []css.StyleRule{}}
	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"breakpoint":null`) || !strings.Contains(string(data), `"type":null`) {
		t.Fatalf("breakpoint/type must serialize as null, got %s", data)
	}
}

func TestWriteMarkdown(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "out.json")
	data := struct {
		URL    string
		Date   string
		Result *MediaResult
	}{"https://example.com", "2026-08-28", sampleResult()}

	mdPath, err := WriteMarkdown(jsonPath, MediaMarkdownTemplate, data)
	if err != nil {
		t.Fatalf("write markdown: %v", err)
	}
	if !strings.HasSuffix(mdPath, ".md") {
		t.Fatalf("unexpected markdown path: %s", mdPath)
	}

	content, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(content), "Media Query Analysis") {
		t.Fatalf("markdown missing heading:\n%s", content)
	}
	if !strings.Contains(string(content), "768px") {
		t.Fatalf("markdown missing breakpoint:\n%s", content)
	}
}

func TestWriteMenuMarkdown(t *testing.T) {
	menu := &viewport.MenuReport{
		URL:            "https://example.com",
		Width:          375,
		ToggleSelector: ".hamburger",
		ToggleFound:    true,
		Revealed: []viewport.Element{
			{Selector: "nav.mobile", X: 0, Y: 56, Width: 375, Height: 400},
		},
	}
	data := struct {
		Date string
		Menu *viewport.MenuReport
	}{"2026-08-28", menu}

	mdPath, err := WriteMarkdown(filepath.Join(t.TempDir(), "menu.json"), MenuMarkdownTemplate, data)
	if err != nil {
		t.Fatalf("write markdown: %v", err)
	}
	content, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(content), ".hamburger") {
		t.Fatalf("markdown missing toggle selector:\n%s", content)
	}
	if !strings.Contains(string(content), "nav.mobile") {
		t.Fatalf("markdown missing revealed element:\n%s", content)
	}

	data.Menu = &viewport.MenuReport{URL: "https://example.com", Width: 375}
	mdPath, err = WriteMarkdown(filepath.Join(t.TempDir(), "menu.json"), MenuMarkdownTemplate, data)
	if err != nil {
		t.Fatalf("write markdown without toggle: %v", err)
	}
	content, err = os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(content), "No menu toggle was found") {
		t.Fatalf("markdown missing no-toggle message:\n%s", content)
	}
}

func TestPrintMediaSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintMediaSummary(&buf, "https://example.com", sampleResult())

	out := buf.String()
	if !strings.Contains(out, "https://example.com") {
		t.Fatalf("summary missing URL:\n%s", out)
	}
	if !strings.Contains(out, "Simple") {
		t.Fatalf("summary missing level:\n%s", out)
	}
}
