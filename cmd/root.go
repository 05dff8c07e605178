package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/quayle-dev/cssprobe/internal/utils"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `
	                              _
	  ___ ___ ___ _ __  _ __ ___ | |__   ___
	 / __/ __/ __| '_ \| '__/ _ \| '_ \ / _ \
	| (__\__ \__ \ |_) | | | (_) | |_) |  __/
	 \___|___/___/ .__/|_|  \___/|_.__/ \___|
	             |_|
`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cssprobe",
	Short: "Scrape a webpage's rendered CSS and responsive behavior for manual recreation.",
	Long: LOGO + `cssprobe loads a target webpage, inventories its media queries, breakpoints,
fonts and responsive behavior, and writes JSON/Markdown artifacts you can use
to recreate the design by hand.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cssprobe: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cssprobe.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("proxy", "", "", "HTTP proxy for the static fetch path (example: http://127.0.0.1:8080)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().BoolP("no-cache", "", false, "Disable the result cache entirely")
	rootCmd.PersistentFlags().BoolP("markdown", "m", false, "Also write a Markdown report next to the JSON artifact")
	rootCmd.PersistentFlags().StringP("timeout", "", "", "Navigation timeout (overrides browser.timeout from config)")
	rootCmd.PersistentFlags().StringP("cache-dir", "", "", "Cache directory (overrides cache.dir from config)")
	_ = viper.BindPFlag("cache.dir", rootCmd.PersistentFlags().Lookup("cache-dir"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".cssprobe")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := filepath.Join(home, ".cssprobe.yaml")
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	home, _ := homedir.Dir()
	viper.SetDefault("cache.dir", filepath.Join(home, ".cssprobe"))
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("browser.timeout", "30s")
	viper.SetDefault("browser.chrome_path", "")
	viper.SetDefault("browser.user_agent", "")

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
