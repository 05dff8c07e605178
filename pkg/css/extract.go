package css

import (
	"fmt"
	"regexp"
	"sort"
)

var (
	minWidthRe = regexp.MustCompile(`min-width:\s*(\d+)px`)
	maxWidthRe = regexp.MustCompile(`max-width:\s*(\d+)px`)
)

func breakpointKey(typ string, value int) string {
	return fmt.Sprintf("%s-%d", typ, value)
}

// ParseBreakpoint pulls the pixel breakpoint out of a media condition.
// min-width is checked first; a closed range like
// "(min-width: 768px) and (max-width: 1024px)" is therefore classified as
// min-width only. That single-classification behavior is intentional and
// relied upon by downstream grouping.
func ParseBreakpoint(condition string) (value int, typ string, ok bool) {
	if m := minWidthRe.FindStringSubmatch(condition); m != nil {
		return atoiDigits(m[1]), "min-width", true
	}
	if m := maxWidthRe.FindStringSubmatch(condition); m != nil {
		return atoiDigits(m[1]), "max-width", true
	}
	return 0, "", false
}

// atoiDigits converts a \d+ regex capture. The pattern guarantees digits only,
// so overflow aside there is no error path.
func atoiDigits(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

// Extract walks every accessible sheet of the model and inventories its
// @media blocks. Inaccessible sheets are skipped (callers decide whether to
// log them). Zero media queries yields a valid empty Analysis, never an
// error.
func Extract(sheets []Sheet) *Analysis {
	analysis := &Analysis{
		MediaQueries: []MediaQuery{},
		Breakpoints:  map[string][]MediaQuery{},
	}
	seen := map[int]struct{}{}

	for _, sheet := range sheets {
		if !sheet.Accessible {
			continue
		}
		for _, rule := range sheet.Rules {
			if rule.Kind != KindMedia {
				continue
			}
			mq := MediaQuery{Condition: rule.Condition, Rules: []StyleRule{}}
			if value, typ, ok := ParseBreakpoint(rule.Condition); ok {
				v, t := value, typ
				mq.Breakpoint = &v
				mq.Type = &t
				seen[value] = struct{}{}
			}
			for _, child := range rule.Children {
				if child.Kind != KindStyle {
					continue
				}
				props := make(map[string]string, len(child.Properties))
				for name, val := range child.Properties {
					props[name] = val
				}
				mq.Rules = append(mq.Rules, StyleRule{Selector: child.Selector, Properties: props})
			}
			analysis.MediaQueries = append(analysis.MediaQueries, mq)
			if key := mq.Key(); key != "" {
				analysis.Breakpoints[key] = append(analysis.Breakpoints[key], mq)
			}
		}
	}

	analysis.Summary.TotalMediaQueries = len(analysis.MediaQueries)
	unique := make([]int, 0, len(seen))
	for bp := range seen {
		unique = append(unique, bp)
	}
	sort.Ints(unique)
	analysis.Summary.UniqueBreakpoints = unique

	return analysis
}

// InaccessibleCount reports how many sheets of the model could not be read,
// so callers can warn about under-reporting.
func InaccessibleCount(sheets []Sheet) int {
	n := 0
	for _, s := range sheets {
		if !s.Accessible {
			n++
		}
	}
	return n
}
