package browser

import (
	"fmt"
	"time"

	"github.com/quayle-dev/cssprobe/pkg/viewport"
)

// ViewportMetrics measures the document at the current viewport size.
func (s *Session) ViewportMetrics() (*viewport.Metrics, error) {
	var raw struct {
		InnerWidth            int  `json:"innerWidth"`
		InnerHeight           int  `json:"innerHeight"`
		ScrollWidth           int  `json:"scrollWidth"`
		ScrollHeight          int  `json:"scrollHeight"`
		HasHorizontalOverflow bool `json:"hasHorizontalOverflow"`
		VisibleNavElements    int  `json:"visibleNavElements"`
	}
	if err := s.Evaluate(viewportMetricsJS, &raw); err != nil {
		return nil, fmt.Errorf("measuring viewport: %w", err)
	}
	return &viewport.Metrics{
		Width:                 raw.InnerWidth,
		InnerWidth:            raw.InnerWidth,
		InnerHeight:           raw.InnerHeight,
		ScrollWidth:           raw.ScrollWidth,
		ScrollHeight:          raw.ScrollHeight,
		HasHorizontalOverflow: raw.HasHorizontalOverflow,
		VisibleNavElements:    raw.VisibleNavElements,
	}, nil
}

// MenuProbe looks for a hamburger-style toggle on the loaded page, clicks it,
// and reports which navigation elements became visible. ToggleFound=false is
// a valid result, not an error.
func (s *Session) MenuProbe() (*viewport.MenuReport, error) {
	report := &viewport.MenuReport{Revealed: []viewport.Element{}}

	var toggle *string
	if err := s.Evaluate(findMenuToggleJS, &toggle); err != nil {
		return nil, fmt.Errorf("searching for menu toggle: %w", err)
	}
	if toggle == nil {
		return report, nil
	}
	report.ToggleFound = true
	report.ToggleSelector = *toggle

	var before []viewport.Element
	if err := s.Evaluate(visibleMenuElementsJS, &before); err != nil {
		return nil, fmt.Errorf("snapshotting visible elements: %w", err)
	}

	if err := s.Click(*toggle); err != nil {
		return nil, err
	}
	// Give CSS transitions time to finish before measuring.
	if err := s.Sleep(500 * time.Millisecond); err != nil {
		return nil, err
	}

	var after []viewport.Element
	if err := s.Evaluate(visibleMenuElementsJS, &after); err != nil {
		return nil, fmt.Errorf("snapshotting revealed elements: %w", err)
	}

	report.Revealed = viewport.DiffRevealed(before, after)
	return report, nil
}
