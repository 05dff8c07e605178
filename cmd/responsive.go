package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/quayle-dev/cssprobe/internal/utils"
	"github.com/quayle-dev/cssprobe/pkg/browser"
	"github.com/quayle-dev/cssprobe/pkg/cache"
	"github.com/quayle-dev/cssprobe/pkg/report"
	"github.com/quayle-dev/cssprobe/pkg/viewport"
)

// responsiveCmd represents the responsive command
var responsiveCmd = &cobra.Command{
	Use:   "responsive <url>",
	Short: "Capture layout geometry and screenshots at multiple viewport widths",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := utils.ParseTargetURL(args[0])
		if err != nil {
			return err
		}
		targetURL := target.String()

		output, _ := cmd.Flags().GetString("output")
		force, _ := cmd.Flags().GetBool("force")
		markdown, _ := cmd.Flags().GetBool("markdown")
		widthsFlag, _ := cmd.Flags().GetString("widths")
		noScreenshots, _ := cmd.Flags().GetBool("no-screenshots")

		widths, err := parseWidths(widthsFlag)
		if err != nil {
			return err
		}

		if output == "" {
			output = report.DefaultPath("responsive", target.Hostname(), "responsive")
		}

		store := openCache(cmd)
		if store != nil {
			defer store.Close()
		}
		key := cache.Key("responsive|"+widthsKey(widths), targetURL)
		ctx := context.Background()

		var snapshot *viewport.Snapshot

		if store != nil && !force {
			if payload, ok, err := store.Get(ctx, key); err != nil {
				utils.Log.Warnf("cache read failed: %v", err)
			} else if ok {
				var cached viewport.Snapshot
				if err := json.Unmarshal(payload, &cached); err == nil {
					snapshot = &cached
				}
			}
		}

		if snapshot == nil {
			snapshot, err = captureSnapshot(cmd, targetURL, widths, output, noScreenshots)
			if err != nil {
				return err
			}
			if store != nil {
				if payload, err := json.Marshal(snapshot); err == nil {
					if err := store.Put(ctx, key, targetURL, "responsive", payload, cacheTTL()); err != nil {
						utils.Log.Warnf("cache write failed: %v", err)
					}
				}
			}
		}

		if err := report.WriteJSON(output, snapshot); err != nil {
			return err
		}
		utils.Log.Infof("wrote %s", output)

		if markdown {
			data := struct {
				Date     string
				Snapshot *viewport.Snapshot
			}{time.Now().Format("2006-01-02"), snapshot}
			mdPath, err := report.WriteMarkdown(output, report.ResponsiveMarkdownTemplate, data)
			if err != nil {
				return err
			}
			utils.Log.Infof("wrote %s", mdPath)
		}

		printSnapshot(snapshot)
		return nil
	},
}

func captureSnapshot(cmd *cobra.Command, targetURL string, widths []int, output string, noScreenshots bool) (*viewport.Snapshot, error) {
	session, err := browser.New(context.Background(), browserOptions(cmd))
	if err != nil {
		return nil, err
	}
	defer session.Close()

	if err := session.Navigate(targetURL); err != nil {
		return nil, err
	}
	title, _ := session.Title()

	snapshot := &viewport.Snapshot{URL: targetURL, Title: title}
	for _, width := range widths {
		if err := session.SetViewport(width, 900); err != nil {
			return nil, err
		}
		// Let the layout settle at the new width.
		if err := session.Sleep(300 * time.Millisecond); err != nil {
			return nil, err
		}
		metrics, err := session.ViewportMetrics()
		if err != nil {
			return nil, err
		}
		metrics.Width = width

		if !noScreenshots {
			png, err := session.Screenshot()
			if err != nil {
				utils.Log.Warnf("screenshot at %dpx failed: %v", width, err)
			} else {
				shotPath := strings.TrimSuffix(output, ".json") + "-" + strconv.Itoa(width) + "px.png"
				if err := os.MkdirAll(filepath.Dir(shotPath), 0o755); err == nil {
					if err := os.WriteFile(shotPath, png, 0o644); err == nil {
						metrics.Screenshot = shotPath
					}
				}
			}
		}
		snapshot.Viewports = append(snapshot.Viewports, *metrics)
	}
	return snapshot, nil
}

func parseWidths(flag string) ([]int, error) {
	if strings.TrimSpace(flag) == "" {
		return viewport.DefaultWidths, nil
	}
	var widths []int
	for _, part := range strings.Split(flag, ",") {
		w, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || w <= 0 {
			return nil, fmt.Errorf("invalid viewport width %q", part)
		}
		widths = append(widths, w)
	}
	sort.Ints(widths)
	return widths, nil
}

// widthsKey canonicalizes the parsed width list for cache keying, so
// "375,768" and "375, 768" (or any reordering) share one cache entry.
func widthsKey(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strconv.Itoa(w)
	}
	return strings.Join(parts, ",")
}

func printSnapshot(snapshot *viewport.Snapshot) {
	fmt.Printf("Responsive behavior of %s\n\n", snapshot.URL)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "WIDTH\tDOCUMENT\tOVERFLOW\tNAV ELEMENTS\t")
	for _, v := range snapshot.Viewports {
		overflow := "no"
		if v.HasHorizontalOverflow {
			overflow = "yes"
		}
		fmt.Fprintf(w, "%dpx\t%dx%d\t%s\t%d\t\n", v.Width, v.ScrollWidth, v.ScrollHeight, overflow, v.VisibleNavElements)
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(responsiveCmd)

	responsiveCmd.Flags().StringP("widths", "w", "", "Comma-separated viewport widths in px (default: 375,480,768,1024,1280)")
	responsiveCmd.Flags().StringP("output", "o", "", "JSON output path (default: analysis/responsive/<date>/<host>-responsive.json)")
	responsiveCmd.Flags().BoolP("force", "f", false, "Bypass the cache read (still writes on success)")
	responsiveCmd.Flags().BoolP("no-screenshots", "", false, "Skip screenshot capture")
}
