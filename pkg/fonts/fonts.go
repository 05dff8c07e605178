// Package fonts inventories typography from the stylesheet model: @font-face
// declarations and the distinct font-family stacks style rules actually use.
package fonts

import (
	"sort"
	"strings"

	"github.com/quayle-dev/cssprobe/pkg/css"
)

// Face is one @font-face declaration.
type Face struct {
	Family  string `json:"family"`
	Src     string `json:"src,omitempty"`
	Weight  string `json:"weight,omitempty"`
	Style   string `json:"style,omitempty"`
	Display string `json:"display,omitempty"`
}

// StackUsage records one distinct font-family value and the selectors that
// declare it.
type StackUsage struct {
	Stack     string   `json:"stack"`
	Selectors []string `json:"selectors"`
}

// Inventory is the font analyzer artifact.
type Inventory struct {
	URL    string       `json:"url"`
	Faces  []Face       `json:"faces"`
	Stacks []StackUsage `json:"stacks"`
}

// Collect walks every accessible sheet, including rules nested under media
// queries, and builds the typography inventory. Output ordering is stable:
// faces in traversal order, stacks sorted by value.
func Collect(sheets []css.Sheet) *Inventory {
	inv := &Inventory{Faces: []Face{}, Stacks: []StackUsage{}}
	stacks := map[string][]string{}

	for _, sheet := range sheets {
		if !sheet.Accessible {
			continue
		}
		walkRules(sheet.Rules, inv, stacks)
	}

	values := make([]string, 0, len(stacks))
	for stack := range stacks {
		values = append(values, stack)
	}
	sort.Strings(values)
	for _, stack := range values {
		selectors := stacks[stack]
		sort.Strings(selectors)
		inv.Stacks = append(inv.Stacks, StackUsage{Stack: stack, Selectors: dedupe(selectors)})
	}
	return inv
}

func walkRules(rules []css.Rule, inv *Inventory, stacks map[string][]string) {
	for _, rule := range rules {
		switch rule.Kind {
		case css.KindFontFace:
			inv.Faces = append(inv.Faces, Face{
				Family:  strings.Trim(rule.Properties["font-family"], `"'`),
				Src:     rule.Properties["src"],
				Weight:  rule.Properties["font-weight"],
				Style:   rule.Properties["font-style"],
				Display: rule.Properties["font-display"],
			})
		case css.KindStyle:
			if stack, ok := rule.Properties["font-family"]; ok {
				stacks[stack] = append(stacks[stack], rule.Selector)
			}
		case css.KindMedia:
			walkRules(rule.Children, inv, stacks)
		}
	}
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	var prev string
	for i, s := range sorted {
		if i == 0 || s != prev {
			out = append(out, s)
		}
		prev = s
	}
	return out
}
