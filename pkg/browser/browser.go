// Package browser drives a headless Chrome instance through chromedp. It is
// the page-automation collaborator the analyzers depend on: load a URL and
// wait for it to settle, build the stylesheet model from the live CSSOM, take
// screenshots, emulate viewports, and click elements. All analysis logic
// lives outside this package.
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/quayle-dev/cssprobe/pkg/css"
)

type Options struct {
	Timeout    time.Duration
	ChromePath string
	UserAgent  string
	Width      int
	Height     int
}

// Session owns one browser tab. Close releases the browser on every exit
// path; callers defer it immediately after New succeeds.
type Session struct {
	ctx     context.Context
	cancels []context.CancelFunc

	mu       sync.Mutex
	inflight map[network.RequestID]struct{}
	lastSeen time.Time
}

func New(parent context.Context, opts Options) (*Session, error) {
	allocOpts := chromedp.DefaultExecAllocatorOptions[:]
	if opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromePath))
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.Width > 0 && opts.Height > 0 {
		allocOpts = append(allocOpts, chromedp.WindowSize(opts.Width, opts.Height))
	}

	s := &Session{
		inflight: map[network.RequestID]struct{}{},
		lastSeen: time.Now(),
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, allocOpts...)
	s.cancels = append(s.cancels, cancelAlloc)

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	s.cancels = append(s.cancels, cancelTab)

	s.ctx = tabCtx
	if opts.Timeout > 0 {
		timeoutCtx, cancelTimeout := context.WithTimeout(tabCtx, opts.Timeout)
		s.ctx = timeoutCtx
		s.cancels = append(s.cancels, cancelTimeout)
	}

	// Track request lifecycle so Navigate can wait for network quiescence.
	chromedp.ListenTarget(s.ctx, func(ev interface{}) {
		switch e := ev.(type) {
		case *network.EventRequestWillBeSent:
			s.mu.Lock()
			s.inflight[e.RequestID] = struct{}{}
			s.lastSeen = time.Now()
			s.mu.Unlock()
		case *network.EventLoadingFinished:
			s.requestDone(e.RequestID)
		case *network.EventLoadingFailed:
			s.requestDone(e.RequestID)
		}
	})

	// Start the browser now so launch failures surface here, not on the
	// first navigation.
	if err := chromedp.Run(s.ctx, network.Enable()); err != nil {
		s.Close()
		return nil, fmt.Errorf("launching browser: %w", err)
	}
	return s, nil
}

func (s *Session) requestDone(id network.RequestID) {
	s.mu.Lock()
	delete(s.inflight, id)
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// waitNetworkIdle blocks until no request has been in flight for quiet, or
// gives up after max. Best effort: a page that never settles does not fail
// the run, it just gets analyzed as-is.
func (s *Session) waitNetworkIdle(max, quiet time.Duration) {
	deadline := time.Now().Add(max)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		idle := len(s.inflight) == 0 && time.Since(s.lastSeen) >= quiet
		s.mu.Unlock()
		if idle {
			return
		}
		select {
		case <-s.ctx.Done():
			return
		case <-time.After(100 * time.Millisecond):
		}
	}
}

func (s *Session) Close() {
	for i := len(s.cancels) - 1; i >= 0; i-- {
		s.cancels[i]()
	}
}

// Navigate loads the URL, waits for the document body, and then for the
// network to go quiet so late-loading stylesheets are in the CSSOM.
func (s *Session) Navigate(url string) error {
	err := chromedp.Run(s.ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	s.waitNetworkIdle(5*time.Second, 500*time.Millisecond)
	return nil
}

// Stylesheets builds the stylesheet model from the loaded page's CSSOM.
// Cross-origin sheets come back with Accessible=false because reading their
// cssRules throws inside the page.
func (s *Session) Stylesheets() ([]css.Sheet, error) {
	var sheets []css.Sheet
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(stylesheetModelJS, &sheets)); err != nil {
		return nil, fmt.Errorf("reading stylesheets: %w", err)
	}
	return sheets, nil
}

// Title returns the loaded document's title.
func (s *Session) Title() (string, error) {
	var title string
	if err := chromedp.Run(s.ctx, chromedp.Title(&title)); err != nil {
		return "", err
	}
	return title, nil
}

// SetViewport emulates a viewport of the given CSS pixel size.
func (s *Session) SetViewport(width, height int) error {
	if err := chromedp.Run(s.ctx, chromedp.EmulateViewport(int64(width), int64(height))); err != nil {
		return fmt.Errorf("emulating %dx%d viewport: %w", width, height, err)
	}
	return nil
}

// Screenshot captures the full page as PNG.
func (s *Session) Screenshot() ([]byte, error) {
	var buf []byte
	if err := chromedp.Run(s.ctx, chromedp.FullScreenshot(&buf, 90)); err != nil {
		return nil, fmt.Errorf("capturing screenshot: %w", err)
	}
	return buf, nil
}

// Click clicks the first element matching the selector.
func (s *Session) Click(selector string) error {
	if err := chromedp.Run(s.ctx, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("clicking %q: %w", selector, err)
	}
	return nil
}

// Evaluate runs a script in the page and unmarshals its result into out.
func (s *Session) Evaluate(script string, out any) error {
	return chromedp.Run(s.ctx, chromedp.Evaluate(script, out))
}

// Sleep gives the page time to run transitions before a measurement.
func (s *Session) Sleep(d time.Duration) error {
	return chromedp.Run(s.ctx, chromedp.Sleep(d))
}
