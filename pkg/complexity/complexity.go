// Package complexity turns a flat media-query record list into a 0-100
// responsive-complexity score. It is a deterministic pure function of its
// input: no I/O, no clock, and identical output for identical records.
package complexity

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/quayle-dev/cssprobe/pkg/css"
)

// Breakdown carries the five metrics feeding the weighted score.
type Breakdown struct {
	BreakpointCount              int `json:"breakpointCount"`
	PropertyChangesPerBreakpoint int `json:"propertyChangesPerBreakpoint"`
	NestedQueries                int `json:"nestedQueries"`
	Overlaps                     int `json:"overlaps"`
	TotalQueries                 int `json:"totalQueries"`
}

// ProblemBreakpoint flags a breakpoint whose rule set is disproportionately
// large relative to the site's average.
type ProblemBreakpoint struct {
	Breakpoint    string `json:"breakpoint"`
	PropertyCount int    `json:"propertyCount"`
	Reason        string `json:"reason"`
}

// Result is the scorer output.
type Result struct {
	Score              int                 `json:"score"`
	Level              string              `json:"level"`
	Recommendation     string              `json:"recommendation"`
	Breakdown          Breakdown           `json:"breakdown"`
	ProblemBreakpoints []ProblemBreakpoint `json:"problemBreakpoints"`
}

const (
	LevelSimple           = "Simple"
	LevelModerate         = "Moderate"
	LevelComplex          = "Complex"
	LevelVeryComplex      = "Very Complex"
	LevelExtremelyComplex = "Extremely Complex"
)

var recommendations = map[string]string{
	LevelSimple:           "Straightforward responsive design; a quick pass over the few breakpoints is enough.",
	LevelModerate:         "Manageable breakpoint strategy; review each breakpoint once and spot-check layouts between them.",
	LevelComplex:          "Substantial responsive behavior; analyze every breakpoint individually and test intermediate widths.",
	LevelVeryComplex:      "Heavy breakpoint usage; budget significant time per breakpoint and map which components change where.",
	LevelExtremelyComplex: "Extremely intricate responsive design; consider analyzing one page section at a time across all breakpoints.",
}

// media features that make a condition count as nested/combined even with few
// and-joined clauses.
var nestedFeatures = []string{"orientation", "resolution", "aspect-ratio", "hover", "pointer"}

// Score computes the composite complexity of an extraction run. It always
// scores the unfiltered record list; the display filter runs after scoring.
// An empty input yields the zero result (score 0, level Simple), never an
// error.
func Score(records []css.MediaQuery) *Result {
	if len(records) == 0 {
		return &Result{
			Score:              0,
			Level:              LevelSimple,
			Recommendation:     recommendations[LevelSimple],
			ProblemBreakpoints: []ProblemBreakpoint{},
		}
	}

	buckets := propertyBuckets(records)
	breakdown := Breakdown{
		BreakpointCount: len(buckets),
		NestedQueries:   countNested(records),
		Overlaps:        countOverlaps(records),
		TotalQueries:    len(records),
	}

	mean := 0.0
	if len(buckets) > 0 {
		total := 0
		for _, count := range buckets {
			total += count
		}
		mean = float64(total) / float64(len(buckets))
		breakdown.PropertyChangesPerBreakpoint = int(math.Round(mean))
	}

	score := breakpointPoints(breakdown.BreakpointCount) +
		densityPoints(len(buckets), mean) +
		nestedPoints(breakdown.NestedQueries) +
		overlapPoints(breakdown.Overlaps) +
		volumePoints(breakdown.TotalQueries)

	level := levelFor(score)
	return &Result{
		Score:              score,
		Level:              level,
		Recommendation:     recommendations[level],
		Breakdown:          breakdown,
		ProblemBreakpoints: problemBreakpoints(buckets, mean),
	}
}

// propertyBuckets sums declared properties per distinct (type, breakpoint)
// bucket. Records without a width clause do not contribute.
func propertyBuckets(records []css.MediaQuery) map[string]int {
	buckets := map[string]int{}
	for _, mq := range records {
		key := mq.Key()
		if key == "" {
			continue
		}
		count := 0
		for _, rule := range mq.Rules {
			count += len(rule.Properties)
		}
		buckets[key] += count
	}
	return buckets
}

func countNested(records []css.MediaQuery) int {
	n := 0
	for _, mq := range records {
		if strings.Count(mq.Condition, " and ") >= 2 {
			n++
			continue
		}
		for _, feature := range nestedFeatures {
			if strings.Contains(mq.Condition, feature) {
				n++
				break
			}
		}
	}
	return n
}

// countOverlaps counts (min-width, max-width) breakpoint value pairs within
// one pixel of each other. Values are deduplicated first so repeated records
// at the same breakpoint do not inflate the count.
func countOverlaps(records []css.MediaQuery) int {
	minSet := map[int]struct{}{}
	maxSet := map[int]struct{}{}
	for _, mq := range records {
		if mq.Breakpoint == nil {
			continue
		}
		if *mq.Type == "min-width" {
			minSet[*mq.Breakpoint] = struct{}{}
		} else {
			maxSet[*mq.Breakpoint] = struct{}{}
		}
	}
	n := 0
	for minVal := range minSet {
		for maxVal := range maxSet {
			diff := minVal - maxVal
			if diff < 0 {
				diff = -diff
			}
			if diff <= 1 {
				n++
			}
		}
	}
	return n
}

func breakpointPoints(count int) int {
	switch {
	case count == 0:
		return 0
	case count <= 3:
		return 5
	case count <= 5:
		return 10
	case count <= 7:
		return 15
	case count <= 10:
		return 20
	default:
		return 25
	}
}

func densityPoints(bucketCount int, mean float64) int {
	if bucketCount == 0 {
		return 0
	}
	switch {
	case mean <= 5:
		return 5
	case mean <= 15:
		return 12
	case mean <= 30:
		return 20
	default:
		return 30
	}
}

func nestedPoints(count int) int {
	switch {
	case count == 0:
		return 0
	case count <= 2:
		return 5
	case count <= 5:
		return 12
	default:
		return 20
	}
}

func overlapPoints(count int) int {
	switch {
	case count == 0:
		return 0
	case count <= 2:
		return 5
	case count <= 5:
		return 10
	default:
		return 15
	}
}

func volumePoints(count int) int {
	switch {
	case count <= 10:
		return 2
	case count <= 25:
		return 5
	case count <= 50:
		return 7
	default:
		return 10
	}
}

func levelFor(score int) string {
	switch {
	case score <= 20:
		return LevelSimple
	case score <= 40:
		return LevelModerate
	case score <= 60:
		return LevelComplex
	case score <= 80:
		return LevelVeryComplex
	default:
		return LevelExtremelyComplex
	}
}

// problemBreakpoints flags buckets whose property count is both strictly
// above 1.5x the mean and above an absolute floor of 20 properties. The floor
// keeps uniformly sparse but slightly uneven sites from being flagged. Keys
// are sorted so output is stable across runs.
func problemBreakpoints(buckets map[string]int, mean float64) []ProblemBreakpoint {
	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	problems := []ProblemBreakpoint{}
	for _, key := range keys {
		count := buckets[key]
		if float64(count) > 1.5*mean && count > 20 {
			problems = append(problems, ProblemBreakpoint{
				Breakpoint:    key,
				PropertyCount: count,
				Reason:        fmt.Sprintf("%d properties vs. a site average of %.1f per breakpoint", count, mean),
			})
		}
	}
	return problems
}
