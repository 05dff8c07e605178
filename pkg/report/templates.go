package report

// MediaMarkdownTemplate renders the media-query artifact as a Markdown report.
const MediaMarkdownTemplate = `# Media Query Analysis

**URL**: {{.URL}}
**Generated**: {{.Date}}

## Summary

| Metric | Value |
|---|---|
| Total media queries | {{.Result.Summary.TotalMediaQueries}} |
| Unique breakpoints | {{range .Result.Summary.UniqueBreakpoints}}{{.}}px {{end}} |
| Complexity score | {{.Result.Complexity.Score}}/100 ({{.Result.Complexity.Level}}) |

{{.Result.Complexity.Recommendation}}

## Complexity breakdown

| Metric | Value |
|---|---|
| Distinct breakpoint buckets | {{.Result.Complexity.Breakdown.BreakpointCount}} |
| Avg. properties per breakpoint | {{.Result.Complexity.Breakdown.PropertyChangesPerBreakpoint}} |
| Nested/combined conditions | {{.Result.Complexity.Breakdown.NestedQueries}} |
| Overlapping breakpoint pairs | {{.Result.Complexity.Breakdown.Overlaps}} |
| Total queries | {{.Result.Complexity.Breakdown.TotalQueries}} |
{{if .Result.Complexity.ProblemBreakpoints}}
## Problem breakpoints
{{range .Result.Complexity.ProblemBreakpoints}}
- **{{.Breakpoint}}**: {{.Reason}}{{end}}
{{end}}
## Media queries
{{range .Result.MediaQueries}}
### ` + "`{{.Condition}}`" + `
{{range .Rules}}
- ` + "`{{.Selector}}`" + ` ({{len .Properties}} properties){{end}}
{{end}}`

// ResponsiveMarkdownTemplate renders the responsive snapshot as Markdown.
const ResponsiveMarkdownTemplate = `# Responsive Behavior

**URL**: {{.Snapshot.URL}}
**Title**: {{.Snapshot.Title}}
**Generated**: {{.Date}}

| Width | Document | Overflow | Visible nav elements |
|---|---|---|---|
{{range .Snapshot.Viewports}}| {{.Width}}px | {{.ScrollWidth}}x{{.ScrollHeight}} | {{if .HasHorizontalOverflow}}yes{{else}}no{{end}} | {{.VisibleNavElements}} |
{{end}}`

// MenuMarkdownTemplate renders the mobile-menu probe as Markdown.
const MenuMarkdownTemplate = `# Mobile Menu

**URL**: {{.Menu.URL}}
**Viewport**: {{.Menu.Width}}px
**Generated**: {{.Date}}

{{if .Menu.ToggleFound}}Toggle: ` + "`{{.Menu.ToggleSelector}}`" + `

## Revealed elements
{{range .Menu.Revealed}}
- ` + "`{{.Selector}}`" + ` ({{printf "%.0f" .Width}}x{{printf "%.0f" .Height}} at {{printf "%.0f" .X}},{{printf "%.0f" .Y}}){{end}}
{{else}}No menu toggle was found at this width.
{{end}}`

// FontsMarkdownTemplate renders the typography inventory as Markdown.
const FontsMarkdownTemplate = `# Font Inventory

**URL**: {{.Inventory.URL}}
**Generated**: {{.Date}}

## @font-face declarations
{{range .Inventory.Faces}}
- **{{.Family}}**{{if .Weight}} (weight {{.Weight}}){{end}}{{if .Display}}, display: {{.Display}}{{end}}{{end}}

## Font stacks in use
{{range .Inventory.Stacks}}
- ` + "`{{.Stack}}`" + ` ({{len .Selectors}} selectors){{end}}
`
