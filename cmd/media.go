package cmd

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quayle-dev/cssprobe/internal/utils"
	"github.com/quayle-dev/cssprobe/pkg/cache"
	"github.com/quayle-dev/cssprobe/pkg/complexity"
	"github.com/quayle-dev/cssprobe/pkg/css"
	"github.com/quayle-dev/cssprobe/pkg/report"
)

// mediaCmd represents the media command
var mediaCmd = &cobra.Command{
	Use:   "media <url>",
	Short: "Extract media queries and score their complexity",
	Long: `Loads the target page, inventories every @media rule across its accessible
stylesheets, groups them by breakpoint, and computes a 0-100 responsive
complexity score.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := utils.ParseTargetURL(args[0])
		if err != nil {
			return err
		}
		targetURL := target.String()

		propertyFilter, _ := cmd.Flags().GetString("property")
		selectorFilter, _ := cmd.Flags().GetString("selector")
		output, _ := cmd.Flags().GetString("output")
		force, _ := cmd.Flags().GetBool("force")
		useStatic, _ := cmd.Flags().GetBool("static")
		markdown, _ := cmd.Flags().GetBool("markdown")

		if output == "" {
			output = report.DefaultPath("media-queries", target.Hostname(), "media-queries")
		}

		store := openCache(cmd)
		if store != nil {
			defer store.Close()
		}
		key := cache.Key("media", targetURL)
		ctx := context.Background()

		var result *report.MediaResult

		if store != nil && !force {
			if payload, ok, err := store.Get(ctx, key); err != nil {
				utils.Log.Warnf("cache read failed: %v", err)
			} else if ok {
				var cached report.MediaResult
				if err := json.Unmarshal(payload, &cached); err != nil {
					utils.Log.Warnf("discarding corrupt cache entry: %v", err)
				} else {
					utils.Log.Debugf("cache hit for %s", targetURL)
					result = &cached
				}
			}
		}

		if result == nil {
			sheets, _, err := stylesheetModel(cmd, targetURL, useStatic)
			if err != nil {
				return err
			}
			warnInaccessible(sheets)

			analysis := css.Extract(sheets)
			// Complexity always reflects the full extraction; the filters
			// below only narrow what is displayed and persisted.
			result = &report.MediaResult{
				Summary:      analysis.Summary,
				MediaQueries: analysis.MediaQueries,
				Breakpoints:  analysis.Breakpoints,
				Complexity:   complexity.Score(analysis.MediaQueries),
			}

			if store != nil {
				if payload, err := json.Marshal(result); err == nil {
					if err := store.Put(ctx, key, targetURL, "media", payload, cacheTTL()); err != nil {
						utils.Log.Warnf("cache write failed: %v", err)
					}
				}
			}
		}

		if propertyFilter != "" || selectorFilter != "" {
			filtered := css.Filter(result.MediaQueries, propertyFilter, selectorFilter)
			result.MediaQueries = filtered
			result.Breakpoints = groupByBreakpoint(filtered)
		}

		if err := report.WriteJSON(output, result); err != nil {
			return err
		}
		utils.Log.Infof("wrote %s", output)

		if markdown {
			data := struct {
				URL    string
				Date   string
				Result *report.MediaResult
			}{targetURL, time.Now().Format("2006-01-02"), result}
			mdPath, err := report.WriteMarkdown(output, report.MediaMarkdownTemplate, data)
			if err != nil {
				return err
			}
			utils.Log.Infof("wrote %s", mdPath)
		}

		report.PrintMediaSummary(os.Stdout, targetURL, result)
		return nil
	},
}

func groupByBreakpoint(records []css.MediaQuery) map[string][]css.MediaQuery {
	buckets := map[string][]css.MediaQuery{}
	for _, mq := range records {
		if key := mq.Key(); key != "" {
			buckets[key] = append(buckets[key], mq)
		}
	}
	return buckets
}

func init() {
	rootCmd.AddCommand(mediaCmd)

	mediaCmd.Flags().StringP("property", "p", "", "Only show rules whose property names loosely match this substring")
	mediaCmd.Flags().StringP("selector", "s", "", "Only show rules whose selector contains this substring (case-sensitive)")
	mediaCmd.Flags().StringP("output", "o", "", "JSON output path (default: analysis/media-queries/<date>/<host>-media-queries.json)")
	mediaCmd.Flags().BoolP("force", "f", false, "Bypass the cache read (still writes on success)")
	mediaCmd.Flags().BoolP("static", "", false, "Fetch stylesheets over plain HTTP instead of a headless browser")
}
