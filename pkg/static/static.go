// Package static builds the stylesheet model without a browser: it fetches
// the page HTML, collects inline <style> blocks, and follows same-site
// <link rel="stylesheet"> references. Third-party stylesheets are reported as
// inaccessible, mirroring what a browser's same-origin policy would let the
// in-page extractor see.
package static

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/weppos/publicsuffix-go/publicsuffix"

	"github.com/quayle-dev/cssprobe/internal/utils"
	"github.com/quayle-dev/cssprobe/pkg/css"
	"github.com/quayle-dev/cssprobe/pkg/fetch"
)

type Provider struct {
	client *retryablehttp.Client
}

func NewProvider(client *retryablehttp.Client) *Provider {
	return &Provider{client: client}
}

// Stylesheets fetches pageURL and returns its stylesheet model plus the page
// title. A linked stylesheet that cannot be retrieved is returned with
// Accessible=false rather than failing the run.
func (p *Provider) Stylesheets(pageURL string) ([]css.Sheet, string, error) {
	resp, err := fetch.Get(p.client, pageURL)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", pageURL, err)
	}

	base, err := url.Parse(resp.FinalURL)
	if err != nil {
		return nil, "", fmt.Errorf("parsing final URL: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, "", fmt.Errorf("parsing HTML: %w", err)
	}

	var sheets []css.Sheet

	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		if strings.TrimSpace(text) == "" {
			return
		}
		sheets = append(sheets, css.Sheet{
			Accessible: true,
			Rules:      ParseCSS(text),
		})
	})

	doc.Find("link[rel='stylesheet']").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			utils.Log.Warnf("skipping unparseable stylesheet href %q", href)
			return
		}
		abs := base.ResolveReference(ref)

		if !sameSite(base.Hostname(), abs.Hostname()) {
			sheets = append(sheets, css.Sheet{Href: abs.String(), Accessible: false})
			return
		}

		cssResp, err := fetch.Get(p.client, abs.String())
		if err != nil {
			utils.Log.Warnf("could not fetch stylesheet %s: %v", abs, err)
			sheets = append(sheets, css.Sheet{Href: abs.String(), Accessible: false})
			return
		}
		sheets = append(sheets, css.Sheet{
			Href:       abs.String(),
			Accessible: true,
			Rules:      ParseCSS(string(cssResp.Body)),
		})
	})

	return sheets, resp.Title, nil
}

// sameSite compares registrable domains, so cdn.example.com counts as
// same-site for www.example.com while cdn.example.net does not.
func sameSite(pageHost, sheetHost string) bool {
	if sheetHost == "" || strings.EqualFold(pageHost, sheetHost) {
		return true
	}
	pageDomain, err := publicsuffix.Domain(pageHost)
	if err != nil {
		return false
	}
	sheetDomain, err := publicsuffix.Domain(sheetHost)
	if err != nil {
		return false
	}
	return strings.EqualFold(pageDomain, sheetDomain)
}
