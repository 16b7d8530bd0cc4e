package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"karolbroda.com/platter/internal/config"
)

var (
	// global flags
	configPath   string
	catalogURL   string
	audioDriver  string
	mprisService string
	logFile      string
	logLevel     string
	hideHelp     bool
)

var rootCmd = &cobra.Command{
	Use:   "platter",
	Short: "retro turntable for the terminal",
	Long: `platter is a retro turntable for the terminal.
dig through the music catalog, drag a record onto the platter and listen to its preview.

when run without a subcommand, it starts the interactive TUI.`,
	Version: "0.1.0",
	RunE: func(cmd *cobra.Command, args []string) error {
		// default behavior: run the TUI
		return runTurntable(cmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a toml config file")
	rootCmd.PersistentFlags().StringVar(&catalogURL, "catalog-url", "", "custom catalog search url")
	rootCmd.PersistentFlags().StringVarP(&audioDriver, "audio", "a", "", "audio driver (mpris or silent)")
	rootCmd.PersistentFlags().StringVarP(&mprisService, "mpris-service", "m", "", "mpris service name (e.g., org.mpris.MediaPlayer2.mpv)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&hideHelp, "hide-help", "H", false, "hide the key help line")
}

// loadConfig reads the config file and environment, then applies any flags
// the user actually set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("catalog-url") {
		cfg.Catalog.URL = catalogURL
	}
	if flags.Changed("audio") {
		cfg.Audio.Driver = audioDriver
	}
	if flags.Changed("mpris-service") {
		cfg.Audio.MprisService = mprisService
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("hide-help") {
		cfg.UI.HideHelp = hideHelp
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
