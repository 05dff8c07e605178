// Package report writes the analysis artifacts (pretty-printed JSON, optional
// Markdown) and prints the human-readable stdout summaries.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"text/template"
	"time"

	"github.com/quayle-dev/cssprobe/internal/utils"
	"github.com/quayle-dev/cssprobe/pkg/complexity"
	"github.com/quayle-dev/cssprobe/pkg/css"
)

// MediaResult is the persisted shape of the media-query analyzer.
type MediaResult struct {
	Summary      css.Summary                 `json:"summary"`
	MediaQueries []css.MediaQuery            `json:"mediaQueries"`
	Breakpoints  map[string][]css.MediaQuery `json:"breakpoints"`
	Complexity   *complexity.Result          `json:"complexity"`
}

// DefaultPath synthesizes the artifact path for a tool:
// analysis/<dir>/<YYYY-MM-DD>/<host-slug>-<suffix>.json
func DefaultPath(dir, host, suffix string) string {
	return filepath.Join(
		"analysis", dir,
		time.Now().Format("2006-01-02"),
		utils.Slugify(host)+"-"+suffix+".json",
	)
}

// WriteJSON writes v pretty-printed to path, creating directories as needed.
func WriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// WriteMarkdown renders tmpl with data next to the JSON artifact (same path,
// .md extension).
func WriteMarkdown(jsonPath, tmpl string, data any) (string, error) {
	path := jsonPath[:len(jsonPath)-len(filepath.Ext(jsonPath))] + ".md"
	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parsing report template: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()
	if err := t.Execute(file, data); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return path, nil
}

// PrintMediaSummary writes the formatted media-query report to w.
func PrintMediaSummary(w io.Writer, url string, result *MediaResult) {
	fmt.Fprintf(w, "Media query analysis for %s\n\n", url)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "Media queries:\t%d\n", result.Summary.TotalMediaQueries)
	fmt.Fprintf(tw, "Unique breakpoints:\t%v\n", result.Summary.UniqueBreakpoints)
	if c := result.Complexity; c != nil {
		fmt.Fprintf(tw, "Complexity:\t%d/100 (%s)\n", c.Score, c.Level)
		fmt.Fprintf(tw, "Breakpoint buckets:\t%d\n", c.Breakdown.BreakpointCount)
		fmt.Fprintf(tw, "Properties per breakpoint:\t%d\n", c.Breakdown.PropertyChangesPerBreakpoint)
		fmt.Fprintf(tw, "Nested/combined queries:\t%d\n", c.Breakdown.NestedQueries)
		fmt.Fprintf(tw, "Overlapping breakpoints:\t%d\n", c.Breakdown.Overlaps)
	}
	tw.Flush()

	if c := result.Complexity; c != nil {
		fmt.Fprintf(w, "\n%s\n", c.Recommendation)
		if len(c.ProblemBreakpoints) > 0 {
			fmt.Fprintln(w, "\nProblem breakpoints:")
			for _, p := range c.ProblemBreakpoints {
				fmt.Fprintf(w, "  %s: %s\n", p.Breakpoint, p.Reason)
			}
		}
	}
}
