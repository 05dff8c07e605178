// Package css holds the stylesheet model shared by every analyzer, plus the
// media-query extraction and filtering logic that operates on it. The model is
// produced by a provider (headless browser or static fetcher); everything in
// this package is a pure data transformation over it.
package css

// RuleKind discriminates the rule variants a provider can emit.
type RuleKind string

const (
	KindStyle    RuleKind = "style"
	KindMedia    RuleKind = "media"
	KindFontFace RuleKind = "font-face"
	KindOther    RuleKind = "other"
)

// Rule is one top-level (or media-nested) rule of a stylesheet.
// Media rules carry Condition and Children; style and font-face rules carry
// Selector (empty for font-face) and Properties.
type Rule struct {
	Kind       RuleKind          `json:"kind"`
	Condition  string            `json:"condition,omitempty"`
	Selector   string            `json:"selector,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
	Children   []Rule            `json:"children,omitempty"`
}

// Sheet is one stylesheet as seen by a provider. A cross-origin sheet the
// provider could not read arrives with Accessible=false and no rules; the
// extractor skips it rather than failing the run.
type Sheet struct {
	Href       string `json:"href"`
	Accessible bool   `json:"accessible"`
	Rules      []Rule `json:"rules"`
}

// StyleRule is one selector block nested inside a media query.
type StyleRule struct {
	Selector   string            `json:"selector"`
	Properties map[string]string `json:"properties"`
}

// MediaQuery is one @media block. Breakpoint and Type are both nil when the
// condition carries no pixel width clause (orientation or print queries), and
// both non-nil otherwise.
type MediaQuery struct {
	Condition  string      `json:"condition"`
	Breakpoint *int        `json:"breakpoint"`
	Type       *string     `json:"type"`
	Rules      []StyleRule `json:"rules"`
}

// Key returns the breakpoint bucket key ("max-width-768"), or "" for records
// without a width clause.
func (m *MediaQuery) Key() string {
	if m.Breakpoint == nil || m.Type == nil {
		return ""
	}
	return breakpointKey(*m.Type, *m.Breakpoint)
}

// Summary carries the extraction totals reported to the user.
type Summary struct {
	TotalMediaQueries int   `json:"totalMediaQueries"`
	UniqueBreakpoints []int `json:"uniqueBreakpoints"`
}

// Analysis is the extractor output: the flat record list in traversal order,
// plus the records grouped by breakpoint bucket.
type Analysis struct {
	Summary      Summary                 `json:"summary"`
	MediaQueries []MediaQuery            `json:"mediaQueries"`
	Breakpoints  map[string][]MediaQuery `json:"breakpoints"`
}
