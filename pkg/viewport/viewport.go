// Package viewport holds the result shapes and pure helpers for the
// responsive-behavior and mobile-menu analyzers. The browser package fills
// these in; everything here is serializable and side-effect free.
package viewport

import (
	"math"
	"strconv"
)

// DefaultWidths are the viewport widths probed when the user does not pass
// --widths: phone, small tablet, tablet, laptop, desktop.
var DefaultWidths = []int{375, 480, 768, 1024, 1280}

// Metrics captures document geometry at one viewport width.
type Metrics struct {
	Width                 int    `json:"width"`
	InnerWidth            int    `json:"innerWidth"`
	InnerHeight           int    `json:"innerHeight"`
	ScrollWidth           int    `json:"scrollWidth"`
	ScrollHeight          int    `json:"scrollHeight"`
	HasHorizontalOverflow bool   `json:"hasHorizontalOverflow"`
	VisibleNavElements    int    `json:"visibleNavElements"`
	Screenshot            string `json:"screenshot,omitempty"`
}

// Snapshot is the responsive analyzer artifact.
type Snapshot struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Viewports []Metrics `json:"viewports"`
}

// Element describes one visible element by a short selector and its box.
type Element struct {
	Selector string  `json:"selector"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// MenuReport is the mobile-menu analyzer artifact.
type MenuReport struct {
	URL            string    `json:"url"`
	Width          int       `json:"width"`
	ToggleSelector string    `json:"toggleSelector"`
	ToggleFound    bool      `json:"toggleFound"`
	Revealed       []Element `json:"revealed"`
}

// DiffRevealed returns the elements visible after the toggle click that were
// not visible before it, matched by selector and box.
func DiffRevealed(before, after []Element) []Element {
	seen := make(map[string]struct{}, len(before))
	for _, el := range before {
		seen[elementKey(el)] = struct{}{}
	}
	revealed := []Element{}
	for _, el := range after {
		if _, ok := seen[elementKey(el)]; !ok {
			revealed = append(revealed, el)
		}
	}
	return revealed
}

func elementKey(el Element) string {
	// Position changes count as newly revealed: a nav sliding in from
	// off-screen has the same selector but a new box.
	return el.Selector + "|" + boxKey(el)
}

func boxKey(el Element) string {
	return fmtFloat(el.X) + "," + fmtFloat(el.Y) + "," + fmtFloat(el.Width) + "," + fmtFloat(el.Height)
}

// fmtFloat rounds to whole pixels so sub-pixel jitter does not defeat the
// diff.
func fmtFloat(f float64) string {
	return strconv.Itoa(int(math.Round(f)))
}
