package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	siteDir   string
	noHistory bool

	appConfig *Config
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sensei",
	Short: "Keep the Shortcut Sensei pages consistent",
	Long: `sensei rewrites the hand-authored pages of the Shortcut Sensei site so that
every page carries the same header, footer, title and shared assets. It can
also serve the site locally and re-sync pages as they are edited.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig()
	},
}

// Execute runs the root command. Only startup and configuration errors
// produce a non-zero exit status.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "sensei.json", "config file, created with defaults when missing")
	rootCmd.PersistentFlags().StringVar(&siteDir, "dir", "", "site directory (overrides site_dir from the config)")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "do not record runs in the history database")
}

func initializeConfig() error {
	config, err := LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if siteDir != "" {
		config.Server.SiteDir = siteDir
	}
	if noHistory {
		config.Server.HistoryEnabled = false
	}
	appConfig = config
	logger = newLogger(config.Server.LogLevel)
	logger.Debug("Configuration loaded", "path", cfgFile, "site_dir", config.Server.SiteDir)
	return nil
}
