package cmd

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quayle-dev/cssprobe/internal/utils"
	"github.com/quayle-dev/cssprobe/pkg/browser"
	"github.com/quayle-dev/cssprobe/pkg/cache"
	"github.com/quayle-dev/cssprobe/pkg/css"
	"github.com/quayle-dev/cssprobe/pkg/fetch"
	"github.com/quayle-dev/cssprobe/pkg/static"
)

// openCache returns the cache store, or nil when caching is disabled or the
// store cannot be opened. A broken cache never blocks an analysis run.
func openCache(cmd *cobra.Command) *cache.Store {
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		return nil
	}
	path := filepath.Join(viper.GetString("cache.dir"), "cache.sqlite")
	store, err := cache.Open(path)
	if err != nil {
		utils.Log.Warnf("cache unavailable (%v), continuing without it", err)
		return nil
	}
	return store
}

func cacheTTL() time.Duration {
	ttl, err := time.ParseDuration(viper.GetString("cache.ttl"))
	if err != nil || ttl <= 0 {
		return 24 * time.Hour
	}
	return ttl
}

// navigationTimeout resolves the --timeout flag over the config default.
func navigationTimeout(cmd *cobra.Command) time.Duration {
	if raw, _ := cmd.Flags().GetString("timeout"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			return d
		}
		utils.Log.Warnf("ignoring unparseable --timeout %q", raw)
	}
	if d, err := time.ParseDuration(viper.GetString("browser.timeout")); err == nil && d > 0 {
		return d
	}
	return 30 * time.Second
}

func browserOptions(cmd *cobra.Command) browser.Options {
	return browser.Options{
		Timeout:    navigationTimeout(cmd),
		ChromePath: viper.GetString("browser.chrome_path"),
		UserAgent:  viper.GetString("browser.user_agent"),
	}
}

// stylesheetModel loads the target page and returns its stylesheet model and
// title, through a headless browser or, with useStatic, plain HTTP.
func stylesheetModel(cmd *cobra.Command, targetURL string, useStatic bool) ([]css.Sheet, string, error) {
	if useStatic {
		proxy, _ := cmd.Flags().GetString("proxy")
		client, err := fetch.NewClient(navigationTimeout(cmd), proxy)
		if err != nil {
			return nil, "", err
		}
		return static.NewProvider(client).Stylesheets(targetURL)
	}

	session, err := browser.New(context.Background(), browserOptions(cmd))
	if err != nil {
		return nil, "", err
	}
	defer session.Close()

	if err := session.Navigate(targetURL); err != nil {
		return nil, "", err
	}
	sheets, err := session.Stylesheets()
	if err != nil {
		return nil, "", err
	}
	title, err := session.Title()
	if err != nil {
		title = ""
	}
	return sheets, title, nil
}

func warnInaccessible(sheets []css.Sheet) {
	for _, sheet := range sheets {
		if !sheet.Accessible {
			href := sheet.Href
			if href == "" {
				href = "(inline)"
			}
			utils.Log.Warnf("skipping inaccessible stylesheet %s; results will under-report its media queries", href)
		}
	}
}
