package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quayle-dev/cssprobe/internal/utils"
	"github.com/quayle-dev/cssprobe/pkg/browser"
	"github.com/quayle-dev/cssprobe/pkg/report"
	"github.com/quayle-dev/cssprobe/pkg/viewport"
)

// menuCmd represents the menu command
var menuCmd = &cobra.Command{
	Use:   "menu <url>",
	Short: "Find and open the mobile navigation menu, reporting what appears",
	Long: `Loads the page at a mobile viewport width, looks for a hamburger-style
toggle, clicks it, and reports which navigation elements became visible.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := utils.ParseTargetURL(args[0])
		if err != nil {
			return err
		}
		targetURL := target.String()

		width, _ := cmd.Flags().GetInt("width")
		output, _ := cmd.Flags().GetString("output")
		markdown, _ := cmd.Flags().GetBool("markdown")
		if output == "" {
			output = report.DefaultPath("mobile-menu", target.Hostname(), "mobile-menu")
		}

		session, err := browser.New(context.Background(), browserOptions(cmd))
		if err != nil {
			return err
		}
		defer session.Close()

		if err := session.SetViewport(width, 800); err != nil {
			return err
		}
		if err := session.Navigate(targetURL); err != nil {
			return err
		}

		menu, err := session.MenuProbe()
		if err != nil {
			return err
		}
		menu.URL = targetURL
		menu.Width = width

		if err := report.WriteJSON(output, menu); err != nil {
			return err
		}
		utils.Log.Infof("wrote %s", output)

		if markdown {
			data := struct {
				Date string
				Menu *viewport.MenuReport
			}{time.Now().Format("2006-01-02"), menu}
			mdPath, err := report.WriteMarkdown(output, report.MenuMarkdownTemplate, data)
			if err != nil {
				return err
			}
			utils.Log.Infof("wrote %s", mdPath)
		}

		if !menu.ToggleFound {
			fmt.Printf("No menu toggle found on %s at %dpx\n", targetURL, width)
			return nil
		}
		fmt.Printf("Menu toggle %q revealed %d elements at %dpx:\n", menu.ToggleSelector, len(menu.Revealed), width)
		for _, el := range menu.Revealed {
			fmt.Printf("  %s (%.0fx%.0f at %.0f,%.0f)\n", el.Selector, el.Width, el.Height, el.X, el.Y)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)

	menuCmd.Flags().IntP("width", "w", 375, "Mobile viewport width in px")
	menuCmd.Flags().StringP("output", "o", "", "JSON output path (default: analysis/mobile-menu/<date>/<host>-mobile-menu.json)")
}
