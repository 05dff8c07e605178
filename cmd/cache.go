package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tidwall/gjson"

	"github.com/quayle-dev/cssprobe/pkg/cache"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the analysis cache",
}

func cachePath() string {
	return filepath.Join(viper.GetString("cache.dir"), "cache.sqlite")
}

// cacheStatsCmd represents the cache stats command
var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print cached analyses, grouped by host",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cachePath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Println("Cache is empty.")
			return nil
		}

		store, err := cache.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Entries(context.Background())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("Cache is empty.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "HOST\tTOOL\tQUERIES\tBYTES\tEXPIRES\t")
		for _, e := range entries {
			// The media payload carries its own summary; other tools show "-".
			queries := "-"
			if n := gjson.GetBytes(e.Payload, "summary.totalMediaQueries"); n.Exists() {
				queries = n.String()
			}
			expires := e.ExpiresAt.Format("2006-01-02 15:04")
			if e.Expired {
				expires = "expired"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t\n", e.Host, e.Tool, queries, e.Bytes, expires)
		}
		w.Flush()
		return nil
	},
}

// cacheClearCmd represents the cache clear command
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove expired cache entries (or everything with --all)",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		store, err := cache.Open(cachePath())
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Clear(context.Background(), all)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d cache entries.\n", n)
		return nil
	},
}

// cacheShellCmd represents the cache shell command
var cacheShellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive sqlite3 shell on the cache database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cachePath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("cache database not found: %s", path)
		}

		sqlitePath, err := exec.LookPath("sqlite3")
		if err != nil {
			return fmt.Errorf("sqlite3 command not found in your PATH. Please install it to use the cache shell")
		}

		fmt.Println("--> Cache schema:")
		schemaCmd := exec.Command(sqlitePath, path, ".schema")
		schemaCmd.Stdout = os.Stdout
		schemaCmd.Stderr = os.Stderr
		if err := schemaCmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: couldn't retrieve schema: %v\n", err)
		}
		fmt.Println("\n--> Starting interactive shell... (Ctrl+D to exit)")

		c := exec.Command(sqlitePath, path)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr

		return c.Run()
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheShellCmd)

	cacheClearCmd.Flags().BoolP("all", "", false, "Remove every entry, not just expired ones")
}
