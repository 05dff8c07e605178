package css

import (
	"encoding/json"
	"reflect"
	"testing"
)

func styleRule(selector string, props map[string]string) Rule {
	return Rule{Kind: KindStyle, Selector: selector, Properties: props}
}

func mediaRule(condition string, children ...Rule) Rule {
	return Rule{Kind: KindMedia, Condition: condition, Children: children}
}

func sheet(rules ...Rule) Sheet {
	return Sheet{Href: "https://example.com/main.css", Accessible: true, Rules: rules}
}

func TestExtractSingleQuery(t *testing.T) {
	model := []Sheet{sheet(
		mediaRule("screen and (max-width: 768px)",
			styleRule(".navbar", map[string]string{"flex-direction": "column"}),
		),
	)}

	a := Extract(model)

	if a.Summary.TotalMediaQueries != 1 {
		t.Fatalf("expected 1 media query, got %d", a.Summary.TotalMediaQueries)
	}
	if !reflect.DeepEqual(a.Summary.UniqueBreakpoints, []int{768}) {
		t.Fatalf("expected unique breakpoints [768], got %v", a.Summary.UniqueBreakpoints)
	}

	mq := a.MediaQueries[0]
	if mq.Breakpoint == nil || *mq.Breakpoint != 768 {
		t.Fatalf("expected breakpoint 768, got %v", mq.Breakpoint)
	}
	if mq.Type == nil || *mq.Type != "max-width" {
		t.Fatalf("expected type max-width, got %v", mq.Type)
	}
	if len(a.Breakpoints["max-width-768"]) != 1 {
		t.Fatalf("expected one record in max-width-768 bucket, got %v", a.Breakpoints)
	}
}

func TestExtractDeterministic(t *testing.T) {
	model := []Sheet{sheet(
		mediaRule("(min-width: 480px)", styleRule(".a", map[string]string{"display": "none"})),
		mediaRule("(max-width: 1024px)",
			styleRule(".b", map[string]string{"color": "red", "margin": "0"}),
			styleRule(".c", map[string]string{"padding": "1rem"}),
		),
		mediaRule("print", styleRule(".d", map[string]string{"display": "block"})),
	)}

	first := Extract(model)
	second := Extract(model)

	fj, _ := json.Marshal(first)
	sj, _ := json.Marshal(second)
	if string(fj) != string(sj) {
		t.Fatalf("extraction not deterministic:\n%s\n%s", fj, sj)
	}
}

func TestExtractClassificationExclusivity(t *testing.T) {
	model := []Sheet{sheet(
		mediaRule("(min-width: 480px)"),
		mediaRule("(max-width: 768px)"),
		mediaRule("(orientation: landscape)"),
		mediaRule("print"),
		mediaRule("(min-width: 768px) and (max-width: 1024px)"),
	)}

	a := Extract(model)
	for _, mq := range a.MediaQueries {
		if (mq.Breakpoint == nil) != (mq.Type == nil) {
			t.Fatalf("breakpoint/type nil mismatch for %q", mq.Condition)
		}
		if mq.Type != nil && *mq.Type != "min-width" && *mq.Type != "max-width" {
			t.Fatalf("unexpected type %q for %q", *mq.Type, mq.Condition)
		}
	}
}

func TestParseBreakpoint(t *testing.T) {
	tests := []struct {
		condition string
		value     int
		typ       string
		ok        bool
	}{
		{"screen and (max-width: 768px)", 768, "max-width", true},
		{"(min-width:480px)", 480, "min-width", true},
		{"(min-width: 768px) and (max-width: 1024px)", 768, "min-width", true}, // min-width wins on closed ranges
		{"(orientation: landscape)", 0, "", false},
		{"print", 0, "", false},
		{"(max-height: 600px)", 0, "", false},
	}

	for _, tc := range tests {
		value, typ, ok := ParseBreakpoint(tc.condition)
		if value != tc.value || typ != tc.typ || ok != tc.ok {
			t.Fatalf("ParseBreakpoint(%q) = (%d, %q, %v), expected (%d, %q, %v)",
				tc.condition, value, typ, ok, tc.value, tc.typ, tc.ok)
		}
	}
}

func TestExtractSkipsInaccessibleSheets(t *testing.T) {
	model := []Sheet{
		sheet(mediaRule("(max-width: 768px)", styleRule(".nav", map[string]string{"display": "none"}))),
		{Href: "https://cdn.example.net/vendor.css", Accessible: false},
	}

	a := Extract(model)
	if a.Summary.TotalMediaQueries != 1 {
		t.Fatalf("expected only first sheet's query, got %d", a.Summary.TotalMediaQueries)
	}
	if InaccessibleCount(model) != 1 {
		t.Fatalf("expected 1 inaccessible sheet, got %d", InaccessibleCount(model))
	}
}

func TestExtractEmptyModel(t *testing.T) {
	a := Extract(nil)
	if a.Summary.TotalMediaQueries != 0 {
		t.Fatalf("expected 0 queries, got %d", a.Summary.TotalMediaQueries)
	}
	if a.MediaQueries == nil || a.Breakpoints == nil || a.Summary.UniqueBreakpoints == nil {
		t.Fatal("empty extraction must still be well-formed")
	}
}

func TestExtractSkipsNonStyleChildren(t *testing.T) {
	model := []Sheet{sheet(
		mediaRule("(max-width: 600px)",
			Rule{Kind: KindOther, Condition: "@supports (display: grid)"},
		),
	)}

	a := Extract(model)
	if len(a.MediaQueries) != 1 {
		t.Fatalf("expected the media record to survive, got %d", len(a.MediaQueries))
	}
	if len(a.MediaQueries[0].Rules) != 0 {
		t.Fatalf("expected empty rule list, got %v", a.MediaQueries[0].Rules)
	}
}

func TestExtractGroupsByTypeAndValue(t *testing.T) {
	model := []Sheet{sheet(
		mediaRule("(min-width: 768px)", styleRule(".a", map[string]string{"display": "flex"})),
		mediaRule("(max-width: 768px)", styleRule(".b", map[string]string{"display": "block"})),
	)}

	a := Extract(model)
	if len(a.Breakpoints) != 2 {
		t.Fatalf("min and max at 768 must be distinct buckets, got %v", a.Breakpoints)
	}
	if !reflect.DeepEqual(a.Summary.UniqueBreakpoints, []int{768}) {
		t.Fatalf("expected one unique pixel value, got %v", a.Summary.UniqueBreakpoints)
	}
}
