package static

import (
	"strings"

	"github.com/quayle-dev/cssprobe/pkg/css"
)

// ParseCSS tokenizes raw stylesheet text into the shared rule model. It is a
// block scanner, not a full CSS parser: it only needs to find @media blocks,
// @font-face declarations, and plain style rules, which covers everything the
// analyzers consume.
func ParseCSS(text string) []css.Rule {
	return parseRules(stripComments(text))
}

func parseRules(text string) []css.Rule {
	var rules []css.Rule
	i := 0
	n := len(text)

	for i < n {
		// prelude: everything up to the next '{' or ';' at this level
		start := i
		for i < n && text[i] != '{' && text[i] != ';' {
			if text[i] == '"' || text[i] == '\'' {
				i = skipString(text, i)
				continue
			}
			i++
		}
		prelude := strings.TrimSpace(text[start:i])

		if i >= n || text[i] == ';' {
			// at-statement (@import, @charset) or trailing garbage
			if strings.HasPrefix(prelude, "@") {
				rules = append(rules, css.Rule{Kind: css.KindOther, Condition: prelude})
			}
			i++
			continue
		}

		// text[i] == '{'
		body, next := readBlock(text, i)
		i = next
		if prelude == "" {
			continue
		}

		switch {
		case strings.HasPrefix(prelude, "@media"):
			rules = append(rules, css.Rule{
				Kind:      css.KindMedia,
				Condition: strings.TrimSpace(strings.TrimPrefix(prelude, "@media")),
				Children:  parseRules(body),
			})
		case strings.HasPrefix(prelude, "@font-face"):
			rules = append(rules, css.Rule{
				Kind:       css.KindFontFace,
				Properties: parseDeclarations(body),
			})
		case strings.HasPrefix(prelude, "@"):
			// @supports, @keyframes and friends: recorded but not analyzed
			rules = append(rules, css.Rule{Kind: css.KindOther, Condition: prelude})
		default:
			rules = append(rules, css.Rule{
				Kind:       css.KindStyle,
				Selector:   collapseWhitespace(prelude),
				Properties: parseDeclarations(body),
			})
		}
	}
	return rules
}

// readBlock returns the balanced content after the '{' at text[open], and the
// index just past the closing '}'.
func readBlock(text string, open int) (string, int) {
	depth := 0
	i := open
	n := len(text)
	for i < n {
		switch text[i] {
		case '"', '\'':
			i = skipString(text, i)
			continue
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[open+1 : i], i + 1
			}
		}
		i++
	}
	return text[open+1:], n
}

func skipString(text string, i int) int {
	quote := text[i]
	i++
	for i < len(text) {
		if text[i] == '\\' {
			i += 2
			continue
		}
		if text[i] == quote {
			return i + 1
		}
		i++
	}
	return i
}

// parseDeclarations splits a declaration block into a property map. A
// repeated property keeps the last value, matching CSS semantics within one
// rule. Declaration order is not preserved.
func parseDeclarations(body string) map[string]string {
	props := map[string]string{}
	for _, decl := range splitDeclarations(body) {
		colon := strings.Index(decl, ":")
		if colon <= 0 {
			continue
		}
		name := strings.TrimSpace(decl[:colon])
		value := strings.TrimSpace(decl[colon+1:])
		if name == "" || value == "" {
			continue
		}
		props[name] = value
	}
	return props
}

// splitDeclarations splits on ';' while respecting quotes and parentheses, so
// data URIs and url(...) values survive intact.
func splitDeclarations(body string) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '"', '\'':
			i = skipString(body, i) - 1
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				out = append(out, body[start:i])
				start = i + 1
			}
		}
	}
	if start < len(body) {
		out = append(out, body[start:])
	}
	return out
}

func stripComments(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		if i+1 < len(text) && text[i] == '/' && text[i+1] == '*' {
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				break
			}
			i += end + 4
			continue
		}
		if text[i] == '"' || text[i] == '\'' {
			next := skipString(text, i)
			b.WriteString(text[i:next])
			i = next
			continue
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
