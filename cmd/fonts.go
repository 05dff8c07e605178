package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quayle-dev/cssprobe/internal/utils"
	"github.com/quayle-dev/cssprobe/pkg/cache"
	"github.com/quayle-dev/cssprobe/pkg/fonts"
	"github.com/quayle-dev/cssprobe/pkg/report"
)

// fontsCmd represents the fonts command
var fontsCmd = &cobra.Command{
	Use:   "fonts <url>",
	Short: "Inventory @font-face declarations and font stacks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := utils.ParseTargetURL(args[0])
		if err != nil {
			return err
		}
		targetURL := target.String()

		output, _ := cmd.Flags().GetString("output")
		force, _ := cmd.Flags().GetBool("force")
		useStatic, _ := cmd.Flags().GetBool("static")
		markdown, _ := cmd.Flags().GetBool("markdown")

		if output == "" {
			output = report.DefaultPath("fonts", target.Hostname(), "fonts")
		}

		store := openCache(cmd)
		if store != nil {
			defer store.Close()
		}
		key := cache.Key("fonts", targetURL)
		ctx := context.Background()

		var inv *fonts.Inventory

		if store != nil && !force {
			if payload, ok, err := store.Get(ctx, key); err != nil {
				utils.Log.Warnf("cache read failed: %v", err)
			} else if ok {
				var cached fonts.Inventory
				if err := json.Unmarshal(payload, &cached); err == nil {
					inv = &cached
				}
			}
		}

		if inv == nil {
			sheets, _, err := stylesheetModel(cmd, targetURL, useStatic)
			if err != nil {
				return err
			}
			warnInaccessible(sheets)

			inv = fonts.Collect(sheets)
			inv.URL = targetURL

			if store != nil {
				if payload, err := json.Marshal(inv); err == nil {
					if err := store.Put(ctx, key, targetURL, "fonts", payload, cacheTTL()); err != nil {
						utils.Log.Warnf("cache write failed: %v", err)
					}
				}
			}
		}

		if err := report.WriteJSON(output, inv); err != nil {
			return err
		}
		utils.Log.Infof("wrote %s", output)

		if markdown {
			data := struct {
				Date      string
				Inventory *fonts.Inventory
			}{time.Now().Format("2006-01-02"), inv}
			mdPath, err := report.WriteMarkdown(output, report.FontsMarkdownTemplate, data)
			if err != nil {
				return err
			}
			utils.Log.Infof("wrote %s", mdPath)
		}

		fmt.Printf("%d @font-face declarations, %d font stacks in use on %s\n",
			len(inv.Faces), len(inv.Stacks), targetURL)
		for _, face := range inv.Faces {
			fmt.Printf("  @font-face %s", face.Family)
			if face.Weight != "" {
				fmt.Printf(" (weight %s)", face.Weight)
			}
			fmt.Println()
		}
		for _, stack := range inv.Stacks {
			fmt.Printf("  %s (%d selectors)\n", stack.Stack, len(stack.Selectors))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fontsCmd)

	fontsCmd.Flags().StringP("output", "o", "", "JSON output path (default: analysis/fonts/<date>/<host>-fonts.json)")
	fontsCmd.Flags().BoolP("force", "f", false, "Bypass the cache read (still writes on success)")
	fontsCmd.Flags().BoolP("static", "", false, "Fetch stylesheets over plain HTTP instead of a headless browser")
}
