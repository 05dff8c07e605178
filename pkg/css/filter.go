package css

import "strings"

// Filter narrows records to the style rules matching the given property and
// selector substrings. Records whose rule list becomes empty are dropped
// entirely. Empty filter strings match everything; filtering is pure and
// idempotent.
//
// The property match is deliberately loose and bidirectional: a rule matches
// when any declared property name contains the filter, or the filter contains
// the property name. Selector matching is a plain case-sensitive substring
// test.
func Filter(records []MediaQuery, propertyFilter, selectorFilter string) []MediaQuery {
	out := []MediaQuery{}
	for _, mq := range records {
		kept := []StyleRule{}
		for _, rule := range mq.Rules {
			if selectorFilter != "" && !strings.Contains(rule.Selector, selectorFilter) {
				continue
			}
			if propertyFilter != "" && !matchesProperty(rule.Properties, propertyFilter) {
				continue
			}
			kept = append(kept, rule)
		}
		if len(kept) == 0 {
			continue
		}
		filtered := mq
		filtered.Rules = kept
		out = append(out, filtered)
	}
	return out
}

func matchesProperty(properties map[string]string, filter string) bool {
	for name := range properties {
		if strings.Contains(name, filter) || strings.Contains(filter, name) {
			return true
		}
	}
	return false
}
