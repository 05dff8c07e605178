package static

import (
	"testing"

	"github.com/quayle-dev/cssprobe/pkg/css"
)

func TestParseCSSMediaBlock(t *testing.T) {
	text := `
.header { display: flex; }
@media screen and (max-width: 768px) {
  .navbar { flex-direction: column; background-color: #fff; }
  .footer { display: none; }
}
`
	rules := ParseCSS(text)

	if len(rules) != 2 {
		t.Fatalf("expected 2 top-level rules, got %d: %+v", len(rules), rules)
	}
	if rules[0].Kind != css.KindStyle || rules[0].Selector != ".header" {
		t.Fatalf("unexpected first rule: %+v", rules[0])
	}

	media := rules[1]
	if media.Kind != css.KindMedia {
		t.Fatalf("expected media rule, got %+v", media)
	}
	if media.Condition != "screen and (max-width: 768px)" {
		t.Fatalf("unexpected condition %q", media.Condition)
	}
	if len(media.Children) != 2 {
		t.Fatalf("expected 2 nested rules, got %d", len(media.Children))
	}
	if media.Children[0].Properties["flex-direction"] != "column" {
		t.Fatalf("unexpected nested properties: %v", media.Children[0].Properties)
	}
}

func TestParseCSSFontFace(t *testing.T) {
	text := `
@font-face {
  font-family: "Inter";
  src: url(/fonts/inter.woff2) format("woff2");
  font-weight: 400 700;
}
`
	rules := ParseCSS(text)
	if len(rules) != 1 || rules[0].Kind != css.KindFontFace {
		t.Fatalf("expected one font-face rule, got %+v", rules)
	}
	if rules[0].Properties["font-family"] != `"Inter"` {
		t.Fatalf("unexpected font-family: %q", rules[0].Properties["font-family"])
	}
}

func TestParseCSSIgnoresComments(t *testing.T) {
	text := `/* @media (max-width: 100px) { .fake {} } */ .real { color: red; }`
	rules := ParseCSS(text)
	if len(rules) != 1 || rules[0].Selector != ".real" {
		t.Fatalf("comment content leaked into rules: %+v", rules)
	}
}

func TestParseCSSAtStatements(t *testing.T) {
	text := `@import url("base.css"); @charset "utf-8"; .a { margin: 0; }`
	rules := ParseCSS(text)
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d: %+v", len(rules), rules)
	}
	if rules[0].Kind != css.KindOther || rules[1].Kind != css.KindOther {
		t.Fatalf("at-statements should be KindOther: %+v", rules[:2])
	}
}

func TestParseCSSKeepsSemicolonsInsideURLs(t *testing.T) {
	text := `.logo { background: url(data:image/svg+xml;base64,abc123); color: blue; }`
	rules := ParseCSS(text)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %+v", rules)
	}
	props := rules[0].Properties
	if props["background"] != "url(data:image/svg+xml;base64,abc123)" {
		t.Fatalf("data URI split incorrectly: %q", props["background"])
	}
	if props["color"] != "blue" {
		t.Fatalf("declaration after data URI lost: %v", props)
	}
}

func TestParseCSSLastDeclarationWins(t *testing.T) {
	text := `.a { color: red; color: blue }`
	rules := ParseCSS(text)
	if rules[0].Properties["color"] != "blue" {
		t.Fatalf("expected last declaration to win, got %q", rules[0].Properties["color"])
	}
}

func TestParseCSSNestedAtRuleInsideMedia(t *testing.T) {
	text := `
@media (max-width: 600px) {
  @supports (display: grid) {
    .grid { display: grid; }
  }
}
`
	rules := ParseCSS(text)
	if len(rules) != 1 || rules[0].Kind != css.KindMedia {
		t.Fatalf("expected one media rule, got %+v", rules)
	}
	// The nested @supports is recorded as KindOther; the extractor will see a
	// media block with no style children.
	for _, child := range rules[0].Children {
		if child.Kind == css.KindStyle {
			t.Fatalf("@supports content must not surface as a direct style child: %+v", child)
		}
	}
}

func TestSameSite(t *testing.T) {
	tests := []struct {
		page, sheet string
		want        bool
	}{
		{"www.example.com", "www.example.com", true},
		{"www.example.com", "cdn.example.com", true},
		{"www.example.com", "", true}, // relative href
		{"www.example.com", "cdn.example.net", false},
		{"example.co.uk", "assets.example.co.uk", true},
		{"example.co.uk", "other.co.uk", false},
	}
	for _, tc := range tests {
		if got := sameSite(tc.page, tc.sheet); got != tc.want {
			t.Fatalf("sameSite(%q, %q) = %v, expected %v", tc.page, tc.sheet, got, tc.want)
		}
	}
}
